package ppp

import (
	"math"

	"gnssppp/internal/gnss"
	"gnssppp/internal/trace"
)

// freqOf resolves an observation's per-slot carrier frequency. Signal
// selection (code->frequency) is already resolved at decode time by
// the RTCM layer (gnss.Code2Freq); PPP only needs the GPS/GLO
// frequency-number-independent case here, so fcn is always 0.
func freqOf(sys int, code uint8) float64 {
	if code == gnss.CodeNone {
		return 0.0
	}
	return gnss.Code2Freq(sys, code, 0)
}

// GfMeas computes the geometry-free phase combination L1/f1 - L2/f2
// (scaled to metres), a slip-detector input.
func GfMeas(sys int, o *gnss.ObsD) float64 {
	f1 := freqOf(sys, o.Code[0])
	f2 := freqOf(sys, o.Code[1])
	if f1 == 0.0 || f2 == 0.0 || o.L[0] == 0.0 || o.L[1] == 0.0 {
		return 0.0
	}
	return (o.L[0]/f1 - o.L[1]/f2) * gnss.CLIGHT
}

// MWMeas computes the Melbourne-Wübbena wide-lane combination,
// a second slip-detector input.
func MWMeas(sys int, o *gnss.ObsD) float64 {
	f1 := freqOf(sys, o.Code[0])
	f2 := freqOf(sys, o.Code[1])
	if f1 == 0.0 || f2 == 0.0 || o.L[0] == 0.0 || o.L[1] == 0.0 || o.P[0] == 0.0 || o.P[1] == 0.0 {
		return 0.0
	}
	return (o.L[0]-o.L[1])*gnss.CLIGHT/(f1-f2) - (f1*o.P[0]+f2*o.P[1])/(f1+f2)
}

// detectSlipLL flags a slip on any frequency whose LLI bit 0 is set
func (f *Filter) detectSlipLL(obs []gnss.ObsD) {
	for i := range obs {
		for j := 0; j < f.Opt.Nf; j++ {
			if obs[i].L[j] == 0.0 || obs[i].LLI[j]&3 == 0 {
				continue
			}
			f.Ssat[obs[i].Sat-1].Slip[j] = 1
		}
	}
}

// detectSlipGF flags a slip when the geometry-free combination jumps
// by more than opt.ThresSlip between epochs.
func (f *Filter) detectSlipGF(sys int, obs []gnss.ObsD) {
	for i := range obs {
		g1 := GfMeas(sys, &obs[i])
		if g1 == 0.0 {
			continue
		}
		ss := &f.Ssat[obs[i].Sat-1]
		g0 := ss.Gf
		ss.Gf = g1
		if g0 != 0.0 && math.Abs(g1-g0) > f.Opt.ThresSlip {
			trace.Trace(2, "ppp: gf slip sat=%d gf0=%.3f gf1=%.3f", obs[i].Sat, g0, g1)
			for j := 0; j < f.Opt.Nf; j++ {
				ss.Slip[j] |= 1
			}
		}
	}
}

// threshMWJump is the Melbourne-Wübbena jump threshold, in metres of
// wide-lane-equivalent combination.
const threshMWJump = 10.0

// detectSlipMW flags a slip when the Melbourne-Wübbena combination
// jumps by more than threshMWJump.
func (f *Filter) detectSlipMW(sys int, obs []gnss.ObsD) {
	for i := range obs {
		w1 := MWMeas(sys, &obs[i])
		if w1 == 0.0 {
			continue
		}
		ss := &f.Ssat[obs[i].Sat-1]
		w0 := ss.Mw
		ss.Mw = w1
		if w0 != 0.0 && math.Abs(w1-w0) > threshMWJump {
			trace.Trace(2, "ppp: mw slip sat=%d mw0=%.3f mw1=%.3f", obs[i].Sat, w0, w1)
			for j := 0; j < f.Opt.Nf; j++ {
				ss.Slip[j] |= 1
			}
		}
	}
}
