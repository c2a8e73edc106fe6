package rtcm

import "gnssppp/internal/rtcmopt"

// optInt extracts the -STA=<id> station filter from a raw option
// string, reusing the shared grammar parser.
func optInt(opt, key string) (int, bool) {
	parsed, err := rtcmopt.Parse(opt)
	if err != nil || key != "-STA=" {
		return 0, false
	}
	return parsed.StaID, parsed.HasStaID
}

// parseOpt is the shared entry point decoders use to read flag-style
// options (-EPHALL, -GALINAV, ...) without re-parsing per call site.
func parseOpt(opt string) (rtcmopt.Options, error) {
	return rtcmopt.Parse(opt)
}
