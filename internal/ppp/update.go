package ppp

import (
	"math"

	"gnssppp/internal/gnss"
	"gnssppp/internal/rtcmopt"
)

// Initial-variance constants, named after the RTKLIB-lineage VAR_*
// constants.
const (
	varPos  = 60.0 * 60.0
	varClk  = 60.0 * 60.0
	varZTD  = 0.6 * 0.6
	varGrad = 0.01 * 0.01
	varDCB  = 30.0 * 30.0
	varBias = 60.0 * 60.0
	varIono = 60.0 * 60.0

	gapReIonoDefault = 120
)

// updatePos performs the position-state time update. gnssppp's filter
// only supports the kinematic-without-dynamics and static cases (NP
// is always 3, see dims.go); the dynamics/velocity/acceleration
// branch a position time-update implements is not modeled here.
func (f *Filter) updatePos(singlePoint [3]float64) {
	switch f.Opt.Mode {
	case ModeFixed:
		for i := 0; i < 3; i++ {
			f.initx(f.Sol.Rr[i], 1e-8, i)
		}
	case ModeStatic:
		if norm3(f.X[:3]) <= 0.0 {
			for i := 0; i < 3; i++ {
				f.initx(singlePoint[i], varPos, i)
			}
			return
		}
		for i := 0; i < 3; i++ {
			f.P[i*(1+f.Nx)] += f.Opt.Prn[5] * f.Opt.Prn[5] * math.Abs(f.tt)
		}
	default: // kinematic without dynamics
		for i := 0; i < 3; i++ {
			f.initx(singlePoint[i], varPos, i)
		}
	}
}

func norm3(v []float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}

// updateClk reinitializes every constellation's clock state as white
// noise each epoch.
func (f *Filter) updateClk(dtr [NSYS]float64) {
	for i := 0; i < NSYS; i++ {
		f.initx(gnss.CLIGHT*dtr[i], varClk, IC(i, &f.Opt))
	}
}

// updateTrop initializes or grows the ZTD (and optional gradient)
// state. Deriving the initial ZTD from a Saastamoinen model is
// outside this package's scope, so the initial value here is a
// nominal 2.3m zenith delay, a documented simplification.
func (f *Filter) updateTrop() {
	i := IT(&f.Opt)
	if f.Opt.TropOpt < TropOptEst {
		return
	}
	if f.X[i] == 0.0 {
		f.initx(2.3, varZTD, i)
		if f.Opt.TropOpt >= TropOptEstG {
			for j := i + 1; j < i+3; j++ {
				f.initx(1e-6, varGrad, j)
			}
		}
		return
	}
	f.P[i+i*f.Nx] += f.Opt.Prn[2] * f.Opt.Prn[2] * math.Abs(f.tt)
	if f.Opt.TropOpt >= TropOptEstG {
		for j := i + 1; j < i+3; j++ {
			f.P[j+j*f.Nx] += (f.Opt.Prn[2] * 0.1) * (f.Opt.Prn[2] * 0.1) * math.Abs(f.tt)
		}
	}
}

// updateIono resets expired per-satellite ionosphere states and
// initializes fresh ones from the geometry-free pseudorange
// difference.
func (f *Filter) updateIono(sys int, obs []gnss.ObsD) {
	if f.Opt.IonoOpt != IonoOptEst {
		return
	}
	gapReIono := gapReIonoDefault
	if opt, err := rtcmopt.Parse(f.Opt.RnxOpt); err == nil && opt.HasGapReSion {
		gapReIono = opt.GapReSion
	}
	for s := 0; s < gnss.MaxSat; s++ {
		j := II(s+1, &f.Opt)
		if f.X[j] != 0.0 && int(f.Ssat[s].Outc[0]) > gapReIono {
			f.X[j] = 0.0
		}
	}
	for i := range obs {
		sat := obs[i].Sat
		j := II(sat, &f.Opt)
		if f.X[j] != 0.0 {
			sinel := math.Sin(math.Max(f.Ssat[sat-1].Azel[1], 5.0*gnss.D2R))
			f.P[j+j*f.Nx] += (f.Opt.Prn[1] / sinel) * (f.Opt.Prn[1] / sinel) * math.Abs(f.tt)
			continue
		}
		freq1 := freqOf(sys, obs[i].Code[0])
		freq2 := freqOf(sys, obs[i].Code[1])
		if obs[i].P[0] == 0.0 || obs[i].P[1] == 0.0 || freq1 == 0.0 || freq2 == 0.0 {
			continue
		}
		ion := (obs[i].P[0] - obs[i].P[1]) / ((gnss.FREQ1/freq1)*(gnss.FREQ1/freq1) - (gnss.FREQ1/freq2)*(gnss.FREQ1/freq2))
		f.initx(ion, varIono, j)
	}
}

// updateDCB initializes the L5-receiver-DCB state once.
func (f *Filter) updateDCB() {
	if ND(&f.Opt) == 0 {
		return
	}
	i := ID(&f.Opt)
	if f.X[i] == 0.0 {
		f.initx(1e-6, varDCB, i)
	}
}
