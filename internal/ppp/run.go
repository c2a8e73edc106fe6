package ppp

import (
	"math"

	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
	"gnssppp/internal/linalg"
	"gnssppp/internal/trace"
)

// maxIter bounds the iterative reweighting loop.
const maxIter = 8

// maxStdFix is a position standard-deviation ceiling that Run does not
// consult: this package does not implement ambiguity fixing, and Run
// never reports StatusFix.
const maxStdFix = 0.1

// Run advances the filter by one epoch: temporal state update,
// satellite position/clock evaluation via sp, then iterative
// measurement updates until the post-fit residuals pass THRES_REJECT
// or maxIter is exhausted.
// dayBoundaryReset enables the day-boundary ambiguity mass-reset check
// ; singlePoint is a standalone (e.g.
// single-point code) position used to seed/propagate the position
// state.
func (f *Filter) Run(obs []gnss.ObsD, sp SatPosProvider, singlePoint [3]float64, dayBoundaryReset bool) {
	if len(obs) == 0 {
		f.Sol.Status = StatusNone
		return
	}
	t := obs[0].Time
	if f.Sol.Time != (gnsstime.Time{}) {
		f.tt = gnsstime.Sub(t, f.Sol.Time)
	}

	for i := range f.Ssat {
		f.Ssat[i].Valid = false
		for j := 0; j < gnss.NFREQ; j++ {
			f.Ssat[i].Vsat[j] = false
		}
	}

	sys := make([]int, len(obs))
	for i := range obs {
		sys[i] = gnss.SatSys(obs[i].Sat, nil)
	}

	f.updatePos(singlePoint)
	var dtr [NSYS]float64
	f.updateClk(dtr)
	f.updateTrop()
	for _, s := range distinctSystems(sys) {
		f.updateIono(s, filterSys(obs, sys, s))
	}
	f.updateDCB()
	for _, s := range distinctSystems(sys) {
		f.updateBias(s, filterSys(obs, sys, s), dayBoundaryReset)
	}

	rs, dts, pVar, svh := sp.SatPositions(t, obs)

	ep := &epoch{
		obs:  obs,
		sys:  sys,
		rs:   rs,
		dts:  dts,
		pVar: pVar,
		svh:  svh,
		az:   make([]float64, len(obs)),
		el:   make([]float64, len(obs)),
		excl: make([]bool, len(obs)),
	}
	for i := range obs {
		if svh[i] < 0 {
			ep.excl[i] = true
		}
	}

	xp := make([]float64, f.Nx)
	Pp := make([]float64, f.Nx*f.Nx)

	f.Sol.Status = StatusNone
	iter := 0
	for ; iter < maxIter; iter++ {
		copy(xp, f.X)
		copy(Pp, f.P)

		v, H, R, nv, _ := f.residual(ep, xp, false)
		if nv == 0 {
			trace.Trace(2, "ppp: no valid observations iter=%d", iter+1)
			break
		}
		if err := linalg.Filter(xp, Pp, H, v, R, f.Nx, nv); err != nil {
			trace.Trace(2, "ppp: filter error iter=%d err=%v", iter+1, err)
			break
		}
		_, _, _, postNv, ok := f.residual(ep, xp, true)
		if ok && postNv > 0 {
			copy(f.X, xp)
			copy(f.P, Pp)
			f.Sol.Status = StatusPPP
			break
		}
	}
	if iter >= maxIter {
		trace.Trace(2, "ppp: iteration overflow")
	}

	f.Sol.Time = t
	if f.Sol.Status == StatusPPP {
		f.Sol.Rr[0], f.Sol.Rr[1], f.Sol.Rr[2] = f.X[0], f.X[1], f.X[2]
		for i := 0; i < 3; i++ {
			f.Sol.Std[i] = math.Sqrt(f.P[i+i*f.Nx])
		}
		for i := 0; i < NSYS; i++ {
			f.Sol.Dtr[i] = f.X[IC(i, &f.Opt)] / gnss.CLIGHT
		}
		n := 0
		for i := range obs {
			if ep.excl[i] {
				continue
			}
			n++
			ss := &f.Ssat[obs[i].Sat-1]
			ss.Valid = true
			for j := 0; j < gnss.NFREQ; j++ {
				if ss.Vsat[j] {
					ss.Outc[j] = 0
				}
			}
		}
		f.Sol.NSat = n
	}
}

// distinctSystems returns the set of systems present in sys, in first-
// seen order.
func distinctSystems(sys []int) []int {
	var out []int
	seen := map[int]bool{}
	for _, s := range sys {
		if s != 0 && !seen[s] {
			seen[s] = true
			out = append(out, s)
		}
	}
	return out
}

// filterSys returns the subset of obs whose resolved system equals s.
// The temporal-update functions take a single sys per call ; a mixed-constellation epoch is processed one system's
// observation subset at a time rather than threading sys per
// observation through every update function.
func filterSys(obs []gnss.ObsD, sys []int, s int) []gnss.ObsD {
	out := make([]gnss.ObsD, 0, len(obs))
	for i, o := range obs {
		if sys[i] == s {
			out = append(out, o)
		}
	}
	return out
}
