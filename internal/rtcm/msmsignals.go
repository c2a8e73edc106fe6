package rtcm

// MSM signal-ID tables, one per constellation (RTCM 10403.3 table
// 3.5-91 et seq.).
var (
	msmSigGPS = [32]string{
		"", "1C", "1P", "1W", "", "", "", "2C", "2P", "2W", "", "",
		"", "", "2S", "2L", "2X", "", "", "", "", "5I", "5Q", "5X",
		"", "", "", "", "", "1S", "1L", "1X",
	}
	msmSigGLO = [32]string{
		"", "1C", "1P", "", "", "", "", "2C", "2P", "", "", "",
		"", "", "", "", "", "", "", "", "", "", "", "",
		"", "", "", "", "", "", "", "",
	}
	msmSigGAL = [32]string{
		"", "1C", "1A", "1B", "1X", "1Z", "", "6C", "6A", "6B", "6X", "6Z",
		"", "7I", "7Q", "7X", "", "8I", "8Q", "8X", "", "5I", "5Q", "5X",
		"", "", "", "", "", "", "", "",
	}
	msmSigQZS = [32]string{
		"", "1C", "", "", "", "", "", "", "6S", "6L", "6X", "",
		"", "", "2S", "2L", "2X", "", "", "", "", "5I", "5Q", "5X",
		"", "", "", "", "", "1S", "1L", "1X",
	}
	msmSigSBS = [32]string{
		"", "1C", "", "", "", "", "", "", "", "", "", "",
		"", "", "", "", "", "", "", "", "", "5I", "5Q", "5X",
		"", "", "", "", "", "", "", "",
	}
	msmSigCMP = [32]string{
		"", "2I", "2Q", "2X", "", "", "", "6I", "6Q", "6X", "", "",
		"", "7I", "7Q", "7X", "", "", "", "", "", "5D", "5P", "5X",
		"", "", "", "", "", "1D", "1P", "1X",
	}
	msmSigIRN = [32]string{
		"", "", "", "", "", "", "", "", "", "", "", "",
		"", "", "", "", "", "", "", "", "", "5A", "", "",
		"", "", "", "", "", "", "", "",
	}
)
