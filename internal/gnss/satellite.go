package gnss

import "fmt"

// obsCodes is the RINEX 3.04 tracking-code table; index 0 and the
// trailing entry are the empty "no code" sentinels, giving ~68
// distinct non-empty values.
var obsCodes = [...]string{
	"", "1C", "1P", "1W", "1Y", "1M", "1N", "1S", "1L", "1E",
	"1A", "1B", "1X", "1Z", "2C", "2D", "2S", "2L", "2X", "2P",
	"2W", "2Y", "2M", "2N", "5I", "5Q", "5X", "7I", "7Q", "7X",
	"6A", "6B", "6C", "6X", "6Z", "6S", "6L", "8L", "8Q", "8X",
	"2I", "2Q", "6I", "6Q", "3I", "3Q", "3X", "1I", "1Q", "5A",
	"5B", "5C", "9A", "9B", "9C", "9X", "1D", "5D", "5P", "5Z",
	"6E", "7D", "7P", "7Z", "8D", "8P", "4A", "4B", "4X", "",
}

// codePriority ranks tracking codes within a frequency index, highest
// priority first, per system . Index matches the Code2Idx family's system order:
// GPS, GLO, GAL, QZS, SBS, CMP, IRN.
var codePriority = [7][MAXFREQ]string{
	{"CPYWMNSL", "PYWCMNDLSX", "IQX", "", "", "", ""},
	{"CPABX", "PCABX", "IQX", "", "", "", ""},
	{"CABXZ", "IQX", "IQX", "ABCXZ", "IQX", "", ""},
	{"CLSXZ", "LSX", "IQXDPZ", "LSXEZ", "", "", ""},
	{"C", "IQX", "", "", "", "", ""},
	{"IQXDPAN", "IQXDPZ", "DPX", "IQXA", "DPX", "", ""},
	{"ABCX", "ABCX", "", "", "", "", ""},
}

// Obs2Code maps an obs-code label ("1C","2W",...) to its numeric code.
func Obs2Code(obs string) uint8 {
	for i := 1; obsCodes[i] != ""; i++ {
		if obsCodes[i] == obs {
			return uint8(i)
		}
	}
	return CodeNone
}

// Code2Obs is the inverse of Obs2Code.
func Code2Obs(code uint8) string {
	if int(code) >= len(obsCodes) {
		return ""
	}
	return obsCodes[code]
}

// Code2FreqGPS returns the GPS/QZS-style frequency index and sets the
// carrier frequency for the given code.
func Code2FreqGPS(code uint8, freq *float64) int {
	obs := Code2Obs(code)
	if obs == "" {
		return -1
	}
	switch obs[0] {
	case '1':
		*freq = FREQ1
		return 0
	case '2':
		*freq = FREQ2
		return 1
	case '5':
		*freq = FREQ5
		return 2
	}
	return -1
}

// Code2FreqGLO resolves a GLONASS FDMA frequency given the satellite's
// frequency channel number (fcn, offset -7..+6).
func Code2FreqGLO(code uint8, fcn int, freq *float64) int {
	if fcn < -7 || fcn > 6 {
		return -1
	}
	obs := Code2Obs(code)
	if obs == "" {
		return -1
	}
	switch obs[0] {
	case '1':
		*freq = FREQ1GLO + DFRQ1GLO*float64(fcn)
		return 0
	case '2':
		*freq = FREQ2GLO + DFRQ2GLO*float64(fcn)
		return 1
	case '3':
		*freq = FREQ3GLO
		return 2
	case '4':
		*freq = FREQ1aGLO
		return 0
	case '6':
		*freq = FREQ2aGLO
		return 1
	}
	return -1
}

func Code2FreqGAL(code uint8, freq *float64) int {
	obs := Code2Obs(code)
	if obs == "" {
		return -1
	}
	switch obs[0] {
	case '1':
		*freq = FREQ1
		return 0
	case '7':
		*freq = FREQ7
		return 1
	case '5':
		*freq = FREQ5
		return 2
	case '6':
		*freq = FREQ6
		return 3
	case '8':
		*freq = FREQ8
		return 4
	}
	return -1
}

func Code2FreqQZS(code uint8, freq *float64) int {
	obs := Code2Obs(code)
	if obs == "" {
		return -1
	}
	switch obs[0] {
	case '1':
		*freq = FREQ1
		return 0
	case '2':
		*freq = FREQ2
		return 1
	case '5':
		*freq = FREQ5
		return 2
	case '6':
		*freq = FREQ6
		return 3
	}
	return -1
}

func Code2FreqSBS(code uint8, freq *float64) int {
	obs := Code2Obs(code)
	if obs == "" {
		return -1
	}
	switch obs[0] {
	case '1':
		*freq = FREQ1
		return 0
	case '5':
		*freq = FREQ5
		return 1
	}
	return -1
}

func Code2FreqBDS(code uint8, freq *float64) int {
	obs := Code2Obs(code)
	if obs == "" {
		return -1
	}
	switch obs[0] {
	case '1':
		*freq = FREQ1
		return 0
	case '2':
		*freq = FREQ1CMP
		return 0
	case '7':
		*freq = FREQ2CMP
		return 1
	case '5':
		*freq = FREQ5
		return 2
	case '6':
		*freq = FREQ3CMP
		return 3
	case '8':
		*freq = FREQ8
		return 4
	}
	return -1
}

func Code2FreqIRN(code uint8, freq *float64) int {
	obs := Code2Obs(code)
	if obs == "" {
		return -1
	}
	switch obs[0] {
	case '5':
		*freq = FREQ5
		return 0
	case '9':
		*freq = FREQ9
		return 1
	}
	return -1
}

// Code2Freq resolves the carrier frequency of (sys, code), with fcn
// only meaningful for GLONASS.
func Code2Freq(sys int, code uint8, fcn int) float64 {
	var freq float64
	switch sys {
	case SysGPS:
		Code2FreqGPS(code, &freq)
	case SysGLO:
		Code2FreqGLO(code, fcn, &freq)
	case SysGAL:
		Code2FreqGAL(code, &freq)
	case SysQZS:
		Code2FreqQZS(code, &freq)
	case SysSBS:
		Code2FreqSBS(code, &freq)
	case SysCMP:
		Code2FreqBDS(code, &freq)
	case SysIRN:
		Code2FreqIRN(code, &freq)
	}
	return freq
}

// Code2Idx resolves the frequency-index slot for a (system, code)
// pair, or -1 if the code does not map to any tracked frequency of
// that system. Some Galileo, QZSS and BeiDou codes resolve to an index
// of NFREQ or above.
func Code2Idx(sys int, code uint8) int {
	var freq float64
	switch sys {
	case SysGPS:
		return Code2FreqGPS(code, &freq)
	case SysGLO:
		return Code2FreqGLO(code, 0, &freq)
	case SysGAL:
		return Code2FreqGAL(code, &freq)
	case SysQZS:
		return Code2FreqQZS(code, &freq)
	case SysSBS:
		return Code2FreqSBS(code, &freq)
	case SysCMP:
		return Code2FreqBDS(code, &freq)
	case SysIRN:
		return Code2FreqIRN(code, &freq)
	}
	return -1
}

func sysPriorityRow(sys int) int {
	switch sys {
	case SysGPS:
		return 0
	case SysGLO:
		return 1
	case SysGAL:
		return 2
	case SysQZS:
		return 3
	case SysSBS:
		return 4
	case SysCMP:
		return 5
	case SysIRN:
		return 6
	}
	return -1
}

// CodePriority ranks code within its (system, frequency-index) class:
// 14 for the highest-priority code, descending, 0 if code is unranked
// or unknown. Used to resolve MSM signal collisions onto one
// frequency-index slot.
func CodePriority(sys int, code uint8) int {
	row := sysPriorityRow(sys)
	if row < 0 {
		return 0
	}
	idx := Code2Idx(sys, code)
	if idx < 0 || idx >= MAXFREQ {
		return 0
	}
	obs := Code2Obs(code)
	if obs == "" {
		return 0
	}
	pos := -1
	for i, c := range codePriority[row][idx] {
		if byte(c) == obs[1] {
			pos = i
			break
		}
	}
	if pos < 0 {
		return 0
	}
	return 14 - pos
}

// SatNo converts a (system, prn) pair into the module-wide contiguous
// satellite handle, or 0 if out of range.
func SatNo(sys, prn int) int {
	if prn <= 0 {
		return 0
	}
	switch sys {
	case SysGPS:
		if prn < MinPRNGPS || prn > MaxPRNGPS {
			return 0
		}
		return prn - MinPRNGPS + 1
	case SysGLO:
		if prn < MinPRNGLO || prn > MaxPRNGLO {
			return 0
		}
		return NSatGPS + prn - MinPRNGLO + 1
	case SysGAL:
		if prn < MinPRNGAL || prn > MaxPRNGAL {
			return 0
		}
		return NSatGPS + NSatGLO + prn - MinPRNGAL + 1
	case SysQZS:
		if prn < MinPRNQZS || prn > MaxPRNQZS {
			return 0
		}
		return NSatGPS + NSatGLO + NSatGAL + prn - MinPRNQZS + 1
	case SysCMP:
		if prn < MinPRNCMP || prn > MaxPRNCMP {
			return 0
		}
		return NSatGPS + NSatGLO + NSatGAL + NSatQZS + prn - MinPRNCMP + 1
	case SysIRN:
		if prn < MinPRNIRN || prn > MaxPRNIRN {
			return 0
		}
		return NSatGPS + NSatGLO + NSatGAL + NSatQZS + NSatCMP + prn - MinPRNIRN + 1
	case SysLEO:
		if prn < MinPRNLEO || prn > MaxPRNLEO {
			return 0
		}
		return NSatGPS + NSatGLO + NSatGAL + NSatQZS + NSatCMP + NSatIRN + prn - MinPRNLEO + 1
	case SysSBS:
		if prn < MinPRNSBS || prn > MaxPRNSBS {
			return 0
		}
		return NSatGPS + NSatGLO + NSatGAL + NSatQZS + NSatCMP + NSatIRN + NSatLEO + prn - MinPRNSBS + 1
	}
	return 0
}

// SatSys is the inverse of SatNo: it returns the system and, via prn,
// the PRN/slot number for a satellite handle.
func SatSys(sat int, prn *int) int {
	sys := SysNone
	switch {
	case sat <= 0 || sat > MaxSat:
		sat = 0
	case sat <= NSatGPS:
		sys = SysGPS
		sat += MinPRNGPS - 1
	default:
		if sat -= NSatGPS; sat <= NSatGLO {
			sys = SysGLO
			sat += MinPRNGLO - 1
		} else if sat -= NSatGLO; sat <= NSatGAL {
			sys = SysGAL
			sat += MinPRNGAL - 1
		} else if sat -= NSatGAL; sat <= NSatQZS {
			sys = SysQZS
			sat += MinPRNQZS - 1
		} else if sat -= NSatQZS; sat <= NSatCMP {
			sys = SysCMP
			sat += MinPRNCMP - 1
		} else if sat -= NSatCMP; sat <= NSatIRN {
			sys = SysIRN
			sat += MinPRNIRN - 1
		} else if sat -= NSatIRN; sat <= NSatLEO {
			sys = SysLEO
			sat += MinPRNLEO - 1
		} else if sat -= NSatLEO; sat <= NSatSBS {
			sys = SysSBS
			sat += MinPRNSBS - 1
		} else {
			sat = 0
		}
	}
	if prn != nil {
		*prn = sat
	}
	return sys
}

// SatID renders a satellite handle as its RINEX-style identifier
// ("G12", "R03", "E07", ...).
func SatID(sat int) string {
	var prn int
	switch SatSys(sat, &prn) {
	case SysGPS:
		return fmt.Sprintf("G%02d", prn-MinPRNGPS+1)
	case SysGLO:
		return fmt.Sprintf("R%02d", prn-MinPRNGLO+1)
	case SysGAL:
		return fmt.Sprintf("E%02d", prn-MinPRNGAL+1)
	case SysQZS:
		return fmt.Sprintf("J%02d", prn-MinPRNQZS+1)
	case SysCMP:
		return fmt.Sprintf("C%02d", prn-MinPRNCMP+1)
	case SysIRN:
		return fmt.Sprintf("I%02d", prn-MinPRNIRN+1)
	case SysLEO:
		return fmt.Sprintf("L%02d", prn-MinPRNLEO+1)
	case SysSBS:
		return fmt.Sprintf("%03d", prn)
	}
	return ""
}
