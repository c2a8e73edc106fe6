package ppp

import (
	"math"

	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
	"gnssppp/internal/trace"
)

// dayBoundary reports whether t falls on an exact GPS day boundary,
// scaled to tenths of a second to absorb floating-point jitter
func dayBoundary(t gnsstime.Time) bool {
	_, tow := gnsstime.ToGPS(t)
	return int(math.Round(tow*10))%864000 == 0
}

// updateBias runs cycle-slip detection and the phase-ambiguity time
// update: outage-driven resets, day-boundary mass reset, and
// phase-code coherence correction.
func (f *Filter) updateBias(sys int, obs []gnss.ObsD, dayBoundaryEnabled bool) {
	clkJump := dayBoundaryEnabled && len(obs) > 0 && dayBoundary(obs[0].Time)

	for i := range f.Ssat {
		for j := 0; j < gnss.NFREQ; j++ {
			f.Ssat[i].Slip[j] = 0
		}
	}
	f.detectSlipLL(obs)
	f.detectSlipGF(sys, obs)
	f.detectSlipMW(sys, obs)

	nf := NF(&f.Opt)
	for freq := 0; freq < nf; freq++ {
		for i := range f.Ssat {
			f.Ssat[i].Outc[freq]++
			if clkJump || int(f.Ssat[i].Outc[freq]) > maxOutageDefault {
				f.initx(0.0, 0.0, IB(i+1, freq, &f.Opt))
			}
		}

		bias := make([]float64, len(obs))
		slip := make([]bool, len(obs))
		var offset float64
		var k int

		for i := range obs {
			sat := obs[i].Sat
			j := IB(sat, freq, &f.Opt)
			slip[i] = f.Ssat[sat-1].Slip[freq] > 0

			if f.Opt.IonoOpt == IonoOptIFLC {
				bias[i] = ifLCBias(sys, &obs[i])
			} else if obs[i].L[freq] != 0.0 && obs[i].P[freq] != 0.0 {
				freq1 := freqOf(sys, obs[i].Code[0])
				freq2 := freqOf(sys, obs[i].Code[1])
				freqN := freqOf(sys, obs[i].Code[freq])
				if obs[i].P[0] == 0.0 || obs[i].P[1] == 0.0 || freq1 == 0.0 || freq2 == 0.0 || freqN == 0.0 {
					continue
				}
				ion := (obs[i].P[0] - obs[i].P[1]) / (1.0 - (freq1/freq2)*(freq1/freq2))
				bias[i] = obs[i].L[freq]*gnss.CLIGHT/freqN - obs[i].P[freq] + 2.0*ion*(freq1/freqN)*(freq1/freqN)
			}
			if f.X[j] == 0.0 || slip[i] || bias[i] == 0.0 {
				continue
			}
			offset += bias[i] - f.X[j]
			k++
		}
		if k >= 2 && math.Abs(offset/float64(k)) > 0.0005*gnss.CLIGHT {
			corr := offset / float64(k)
			for i := 0; i < gnss.MaxSat; i++ {
				j := IB(i+1, freq, &f.Opt)
				if f.X[j] != 0.0 {
					f.X[j] += corr
				}
			}
			trace.Trace(2, "ppp: phase-code jump corrected n=%d dt=%.9fs", k, corr/gnss.CLIGHT)
		}
		for i := range obs {
			sat := obs[i].Sat
			j := IB(sat, freq, &f.Opt)
			f.P[j+j*f.Nx] += f.Opt.Prn[0] * f.Opt.Prn[0] * math.Abs(f.tt)
			if bias[i] == 0.0 || (f.X[j] != 0.0 && !slip[i]) {
				continue
			}
			f.initx(bias[i], varBias, j)
		}
	}
}

// maxOutageDefault bounds consecutive missed epochs before an
// ambiguity state is dropped.
const maxOutageDefault = 30

// ifLCBias computes the iono-free-combination phase-minus-code bias
// candidate for the ambiguity update.
func ifLCBias(sys int, o *gnss.ObsD) float64 {
	f1 := freqOf(sys, o.Code[0])
	f2 := freqOf(sys, o.Code[1])
	if f1 == 0.0 || f2 == 0.0 {
		return 0.0
	}
	c1 := (f1 * f1) / (f1*f1 - f2*f2)
	c2 := -(f2 * f2) / (f1*f1 - f2*f2)
	var lc, pc float64
	if o.L[0] != 0.0 && o.L[1] != 0.0 {
		lc = c1*(o.L[0]*gnss.CLIGHT/f1) + c2*(o.L[1]*gnss.CLIGHT/f2)
	}
	if o.P[0] != 0.0 && o.P[1] != 0.0 {
		pc = c1*o.P[0] + c2*o.P[1]
	}
	if lc == 0.0 || pc == 0.0 {
		return 0.0
	}
	return lc - pc
}
