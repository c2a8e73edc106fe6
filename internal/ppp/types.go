package ppp

import (
	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
)

// Solution status codes.
const (
	StatusNone = iota
	StatusSingle
	StatusPPP
	StatusFix
)

// Solution is one epoch's PPP result.
type Solution struct {
	Time   gnsstime.Time
	Rr     [3]float64 // ECEF position (m)
	Std    [3]float64
	Dtr    [NSYS]float64 // receiver clock offsets per constellation (s)
	Status int
	NSat   int
}

// SatStatus tracks one satellite's slip/outage/ambiguity bookkeeping
// across epochs.
type SatStatus struct {
	Valid   bool
	Azel    [2]float64
	Vsat    [gnss.NFREQ]bool
	Slip    [gnss.NFREQ]uint8
	Outc    [gnss.NFREQ]uint32
	Rejc    [gnss.NFREQ]uint32
	Gf      float64
	Mw      float64
	Phw     float64
	ResCode [gnss.NFREQ]float64
	ResPhas [gnss.NFREQ]float64
}

// SatPosProvider supplies satellite ECEF position/velocity, clock
// offset/drift and position-variance for one epoch's observations.
// Evaluating broadcast/precise ephemerides is outside this package's
// scope ; the PPP engine only consumes this interface.
type SatPosProvider interface {
	SatPositions(t gnsstime.Time, obs []gnss.ObsD) (rs [][6]float64, dts [][2]float64, posVar []float64, svh []int)
}

// Filter is one rover's PPP estimator state: the compressed-state
// vector/covariance, per-satellite bookkeeping and the running
// solution.
type Filter struct {
	Opt gnss.ProcessingOptions

	Nx     int
	X, P   []float64
	Xa, Pa []float64

	Ssat [gnss.MaxSat]SatStatus
	Sol  Solution

	tt float64 // time step since previous epoch (s)
}

// NewFilter allocates a Filter sized for opt's configuration.
func NewFilter(opt gnss.ProcessingOptions) *Filter {
	nx := NX(&opt)
	return &Filter{
		Opt: opt,
		Nx:  nx,
		X:   make([]float64, nx),
		P:   make([]float64, nx*nx),
		Xa:  make([]float64, nx),
		Pa:  make([]float64, nx*nx),
	}
}

// initx (re)initializes state i to value xi with variance vari,
// zeroing its covariance row/column.
func (f *Filter) initx(xi, vari float64, i int) {
	f.X[i] = xi
	for j := 0; j < f.Nx; j++ {
		if i == j {
			f.P[i+j*f.Nx] = vari
		} else {
			f.P[i+j*f.Nx] = 0.0
			f.P[j+i*f.Nx] = 0.0
		}
	}
}
