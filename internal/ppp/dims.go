// Package ppp implements the Precise Point Positioning Extended Kalman
// Filter: a compressed-state estimator that fuses multi-frequency
// pseudorange/carrier-phase observations against satellite positions
// and clocks supplied by an external collaborator.
package ppp

import "gnssppp/internal/gnss"

// Mode enumerates the PPP positioning modes a ProcessingOptions.Mode
// value can select.
const (
	ModeKinematic = 6
	ModeStatic    = 7
	ModeFixed     = 8
)

// Ionosphere/troposphere option values relevant to state sizing
const (
	IonoOptOff  = 0
	IonoOptEst  = 4
	IonoOptIFLC = 5

	TropOptOff  = 0
	TropOptEst  = 2
	TropOptEstG = 3
)

// NSYS is the number of constellations carrying an independent
// inter-system receiver clock offset state (GPS/GLO/GAL/CMP/IRN).
const NSYS = 5

// NF is the number of estimated frequencies: 1 in iono-free
// combination mode, opt.Nf otherwise.
func NF(opt *gnss.ProcessingOptions) int {
	if opt.IonoOpt == IonoOptIFLC {
		return 1
	}
	return opt.Nf
}

// NP is the number of position-domain states: 9 (pos+vel+acc) under
// dynamics, 3 otherwise. gnssppp's ProcessingOptions has no separate
// dynamics flag; a kinematic-without-dynamics filter is the supported
// shape, so NP always returns 3.
func NP(opt *gnss.ProcessingOptions) int { return 3 }

// NC is the number of inter-system receiver clock states.
func NC(opt *gnss.ProcessingOptions) int { return NSYS }

// NT is the number of tropospheric ZTD(+gradient) states.
func NT(opt *gnss.ProcessingOptions) int {
	switch {
	case opt.TropOpt < TropOptEst:
		return 0
	case opt.TropOpt == TropOptEst:
		return 1
	default:
		return 3
	}
}

// NI is the number of per-satellite ionosphere states.
func NI(opt *gnss.ProcessingOptions) int {
	if opt.IonoOpt == IonoOptEst {
		return gnss.MaxSat
	}
	return 0
}

// ND is 1 iff an L5-receiver DCB state is estimated (3-frequency mode).
func ND(opt *gnss.ProcessingOptions) int {
	if opt.Nf >= 3 {
		return 1
	}
	return 0
}

// NR is the number of "rover" (non-ambiguity) states.
func NR(opt *gnss.ProcessingOptions) int {
	return NP(opt) + NC(opt) + NT(opt) + NI(opt) + ND(opt)
}

// NB is the number of phase-ambiguity states.
func NB(opt *gnss.ProcessingOptions) int { return NF(opt) * gnss.MaxSat }

// NX is the total filter state dimension.
func NX(opt *gnss.ProcessingOptions) int { return NR(opt) + NB(opt) }

// IC is the state index of constellation s's clock offset.
func IC(s int, opt *gnss.ProcessingOptions) int { return NP(opt) + s }

// IT is the state index of the ZTD (wet-delay) state.
func IT(opt *gnss.ProcessingOptions) int { return NP(opt) + NC(opt) }

// II is the state index of satellite sat's ionosphere state (1-based sat).
func II(sat int, opt *gnss.ProcessingOptions) int {
	return NP(opt) + NC(opt) + NT(opt) + sat - 1
}

// ID is the state index of the L5-receiver-DCB state.
func ID(opt *gnss.ProcessingOptions) int { return NP(opt) + NC(opt) + NT(opt) + NI(opt) }

// IB is the state index of satellite sat's frequency-f ambiguity (1-based sat).
func IB(sat, f int, opt *gnss.ProcessingOptions) int {
	return NR(opt) + gnss.MaxSat*f + sat - 1
}

// clockSlot maps a navigation system to its inter-system clock slot.
func clockSlot(sys int) int {
	switch sys {
	case gnss.SysGLO:
		return 1
	case gnss.SysGAL:
		return 2
	case gnss.SysCMP:
		return 3
	case gnss.SysIRN:
		return 4
	default:
		return 0
	}
}
