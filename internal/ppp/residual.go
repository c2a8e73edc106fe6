package ppp

import (
	"math"

	"gnssppp/internal/gnss"
	"gnssppp/internal/trace"
)

// varianceErr is the per-measurement variance model: a base code/phase
// error factor scaled by elevation, matching the shape of the
// a simplified elevation-scaled variance model, without antenna/receiver-type lookup
// tables (outside this package's scope).
func varianceErr(sys int, el float64, isCode bool) float64 {
	efact := 1.0
	switch sys {
	case gnss.SysGLO:
		efact = gnss.EfactGLO
	case gnss.SysSBS:
		efact = gnss.EfactSBS
	}
	a, b := 0.003, 0.003
	if isCode {
		a, b = 0.3, 0.3
	}
	sinel := math.Sin(el)
	if sinel < 0.1 {
		sinel = 0.1
	}
	v := a*a + b*b/(sinel*sinel)
	return efact * efact * v
}

// epoch bundles one PPP call's per-satellite observation, geometry
// and slant-factor products, threaded through residual computation so
// the iterative loop need not recompute them each pass.
type epoch struct {
	obs  []gnss.ObsD
	sys  []int
	rs   [][6]float64
	dts  [][2]float64
	pVar []float64
	svh  []int
	pos  [3]float64
	az   []float64
	el   []float64
	e    [][3]float64
	excl []bool
}

// residual builds pre-fit (post==false) or post-fit (post==true)
// residuals v, design matrix H and measurement covariance R over the
// active (non-excluded) observations.
// On a post-fit pass it permanently excludes (from ep.excl) the single
// worst observation whose residual exceeds THRES_REJECT sigma, mirroring
// the usual "reject satellite with large and max
// post-fit residual" step, and reports ok=false so the caller retries.
func (f *Filter) residual(ep *epoch, x []float64, post bool) (v, H, R []float64, nv int, ok bool) {
	nx := f.Nx
	maxnv := len(ep.obs)*NF(&f.Opt)*2 + gnss.MaxSat + 3
	v = make([]float64, maxnv)
	H = make([]float64, nx*maxnv)
	vars := make([]float64, maxnv)

	var worstV float64
	worstObs, worstFreq := -1, -1

	rr := [3]float64{x[0], x[1], x[2]}
	pos := ecef2pos(rr)

	for i := range ep.obs {
		if ep.excl[i] {
			continue
		}
		sat := ep.obs[i].Sat
		sys := ep.sys[i]

		r, e := geoDist([3]float64{ep.rs[i][0], ep.rs[i][1], ep.rs[i][2]}, rr)
		if r <= 0.0 {
			ep.excl[i] = true
			continue
		}
		az, el := satAzel(pos, e)
		ep.az[i], ep.el[i] = az, el
		f.Ssat[sat-1].Azel[0], f.Ssat[sat-1].Azel[1] = az, el
		if el < f.Opt.Elmin {
			ep.excl[i] = true
			continue
		}

		dtrp := 0.0
		if f.Opt.TropOpt >= TropOptEst {
			dtrp = tropMapf(el) * x[IT(&f.Opt)]
		}
		clkSlot := clockSlot(sys)
		cdtr := x[IC(clkSlot, &f.Opt)]

		for j := 0; j < 2*NF(&f.Opt); j++ {
			freq := j / 2
			isCode := j%2 == 1

			var y float64
			if !isCode {
				y = ep.obs[i].L[freq] * gnss.CLIGHT / freqOf(sys, ep.obs[i].Code[freq])
			} else {
				y = ep.obs[i].P[freq]
			}
			if y == 0.0 {
				continue
			}
			fr := freqOf(sys, ep.obs[i].Code[freq])
			if fr == 0.0 {
				continue
			}
			C := (gnss.FREQ1 / fr) * (gnss.FREQ1 / fr) * ionMapf(pos, el)
			if !isCode {
				C *= -1.0
			}

			row := make([]float64, nx)
			row[0], row[1], row[2] = -e[0], -e[1], -e[2]
			row[IC(clkSlot, &f.Opt)] = 1.0
			if f.Opt.TropOpt >= TropOptEst {
				row[IT(&f.Opt)] = tropMapf(el)
			}
			var dcb float64
			if f.Opt.IonoOpt == IonoOptEst {
				if x[II(sat, &f.Opt)] == 0.0 {
					continue
				}
				row[II(sat, &f.Opt)] = C
			}
			if freq == 2 && isCode {
				dcb = x[ID(&f.Opt)]
				row[ID(&f.Opt)] = 1.0
			}
			var bias float64
			if !isCode {
				bias = x[IB(sat, freq, &f.Opt)]
				if bias == 0.0 {
					continue
				}
				row[IB(sat, freq, &f.Opt)] = 1.0
			}

			dion := 0.0
			if f.Opt.IonoOpt == IonoOptEst {
				dion = x[II(sat, &f.Opt)]
			}
			resid := y - (r + cdtr - gnss.CLIGHT*ep.dts[i][0] + dtrp + C*dion + dcb + bias)

			if !post && f.Opt.MaxInno > 0.0 && math.Abs(resid) > f.Opt.MaxInno {
				trace.Trace(2, "ppp: prefit outlier sat=%d freq=%d res=%.3f", sat, freq, resid)
				ep.excl[i] = true
				f.Ssat[sat-1].Rejc[freq]++
				continue
			}

			copy(H[nv*nx:nv*nx+nx], row)
			v[nv] = resid
			vars[nv] = varianceErr(sys, el, isCode) + ep.pVar[i]
			if !isCode {
				f.Ssat[sat-1].ResPhas[freq] = resid
			} else {
				f.Ssat[sat-1].ResCode[freq] = resid
			}
			if post && math.Abs(resid) > math.Sqrt(vars[nv])*threshReject {
				if worstObs < 0 || math.Abs(resid) > math.Abs(worstV) {
					worstV = resid
					worstObs = i
					worstFreq = freq
				}
			}
			if !isCode {
				f.Ssat[sat-1].Vsat[freq] = true
			}
			nv++
		}
	}
	ok = true
	if post && worstObs >= 0 {
		sat := ep.obs[worstObs].Sat
		trace.Trace(2, "ppp: outlier rejected sat=%d freq=%d res=%.4f", sat, worstFreq, worstV)
		ep.excl[worstObs] = true
		f.Ssat[sat-1].Rejc[worstFreq]++
		ok = false
	}

	R = make([]float64, nv*nv)
	for i := 0; i < nv; i++ {
		R[i+i*nv] = vars[i]
	}
	return v[:nv], compressH(H, nx, nv), R, nv, ok
}

// compressH trims H's allocated-but-unused column tail down to nv
// columns (H was sized for the worst-case observation count).
func compressH(h []float64, nx, nv int) []float64 {
	out := make([]float64, nx*nv)
	for j := 0; j < nv; j++ {
		copy(out[j*nx:j*nx+nx], h[j*nx:j*nx+nx])
	}
	return out
}

// threshReject is THRES_REJECT.
const threshReject = 4.0
