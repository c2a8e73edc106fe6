// Package rtcmopt parses the RTCM receiver-option string ("-STA=2003
// -EPHALL -GALINAV ...") into a structured Options value with a
// single up-front grammar pass, instead of each decoder re-scanning
// the raw string with its own strings.Contains/Sscanf call.
package rtcmopt

import (
	"fmt"
	"strconv"
	"strings"
)

// Options is the parsed form of an RTCM decoder option string such as
// "-STA=2003 -EPHALL -GALINAV -RT_INP".
type Options struct {
	StaID        int
	HasStaID     bool
	EphAll       bool // decode every ephemeris even if IODE is unchanged
	GalINav      bool // ignore MT1045 (Galileo F/NAV) in favor of I/NAV
	GalFNav      bool // ignore MT1046 (Galileo I/NAV) in favor of F/NAV
	RTInp        bool // timestamp messages by arrival time, not decoded TOW
	InvPRR       bool // invert pseudorange-rate sign for legacy receivers
	GapReSion    int  // epochs of phase outage before resetting ionosphere state
	HasGapReSion bool
	Raw          string
}

// Parse tokenizes an option string on whitespace and recognizes the
// flags above; unrecognized tokens are ignored (forward-compatible
// with option flags this decoder doesn't act on).
func Parse(s string) (Options, error) {
	opt := Options{Raw: s}
	for _, tok := range strings.Fields(s) {
		switch {
		case strings.HasPrefix(tok, "-STA="):
			v, err := strconv.Atoi(strings.TrimPrefix(tok, "-STA="))
			if err != nil {
				return opt, fmt.Errorf("rtcmopt: bad -STA= value %q: %w", tok, err)
			}
			opt.StaID, opt.HasStaID = v, true
		case tok == "-EPHALL":
			opt.EphAll = true
		case tok == "-GALINAV":
			opt.GalINav = true
		case tok == "-GALFNAV":
			opt.GalFNav = true
		case tok == "-RT_INP":
			opt.RTInp = true
		case tok == "-INVPRR":
			opt.InvPRR = true
		case strings.HasPrefix(tok, "-GAP_RESION="):
			v, err := strconv.Atoi(strings.TrimPrefix(tok, "-GAP_RESION="))
			if err != nil {
				return opt, fmt.Errorf("rtcmopt: bad -GAP_RESION= value %q: %w", tok, err)
			}
			opt.GapReSion, opt.HasGapReSion = v, true
		}
	}
	return opt, nil
}
