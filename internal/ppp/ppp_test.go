package ppp

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
)

// RINEX tracking-code table indices for GPS L1C/L2C, used to resolve
// carrier frequency via gnss.Code2Freq in these synthetic observations.
const (
	codeL1C = 1
	codeL2C = 14
)

// fixedSatPosProvider reports a fixed set of satellite positions and
// zero clock/variance terms, letting a test fully control the
// geometry a residual equation sees.
type fixedSatPosProvider struct {
	rs [][6]float64
}

func (p fixedSatPosProvider) SatPositions(t gnsstime.Time, obs []gnss.ObsD) ([][6]float64, [][2]float64, []float64, []int) {
	dts := make([][2]float64, len(obs))
	pVar := make([]float64, len(obs))
	svh := make([]int, len(obs))
	return p.rs, dts, pVar, svh
}

// enuDelta converts a unit line-of-sight vector expressed in local
// ENU coordinates at geodetic position pos into an ECEF delta.
func enuDelta(pos [3]float64, enu [3]float64) [3]float64 {
	rot := xyz2enu(pos)
	var d [3]float64
	for k := 0; k < 3; k++ {
		for i := 0; i < 3; i++ {
			d[k] += rot[i*3+k] * enu[i]
		}
	}
	return d
}

func baseOpt() gnss.ProcessingOptions {
	return gnss.ProcessingOptions{
		Mode:      ModeKinematic,
		Nf:        2,
		NavSys:    gnss.SysGPS,
		Elmin:     10.0 * gnss.D2R,
		IonoOpt:   IonoOptOff,
		TropOpt:   TropOptOff,
		ThresSlip: 0.05,
		MaxInno:   1000.0,
		Prn:       [6]float64{1e-4, 1e-3, 1e-4, 1e-4, 1e-4, 1.0},
	}
}

// buildScenarioE constructs 8 GPS satellites evenly spaced in azimuth
// at 45 degrees elevation, with exactly zero-noise observations:
// pseudorange equals true geometric range and carrier phase equals
// true range plus a fixed per-satellite ambiguity.
func buildScenarioE(t *testing.T, rr [3]float64) ([]gnss.ObsD, fixedSatPosProvider) {
	pos := ecef2pos(rr)
	const rng = 2.0e7
	const el = 45.0 * gnss.D2R

	var obs []gnss.ObsD
	var rs [][6]float64
	for i := 0; i < 8; i++ {
		az := float64(i) * (2 * gnss.PI / 8)
		enu := [3]float64{math.Sin(az) * math.Cos(el), math.Cos(az) * math.Cos(el), math.Sin(el)}
		d := enuDelta(pos, enu)
		satPos := [3]float64{rr[0] + d[0]*rng, rr[1] + d[1]*rng, rr[2] + d[2]*rng}

		r, _ := geoDist(satPos, rr)
		require.Greater(t, r, 0.0)

		sat := i + 1 // GPS PRN i+1
		biasL1 := 12345.678 + float64(i)
		biasL2 := 23456.789 + float64(i)

		var o gnss.ObsD
		o.Time = gnsstime.FromGPS(2000, 100.0)
		o.Sat = sat
		o.Code[0] = codeL1C
		o.Code[1] = codeL2C
		o.P[0] = r
		o.P[1] = r
		o.L[0] = (r + biasL1) * gnss.FREQ1 / gnss.CLIGHT
		o.L[1] = (r + biasL2) * gnss.FREQ2 / gnss.CLIGHT
		obs = append(obs, o)
		rs = append(rs, [6]float64{satPos[0], satPos[1], satPos[2], 0, 0, 0})
	}
	return obs, fixedSatPosProvider{rs: rs}
}

func TestScenarioE_ZeroNoiseConverges(t *testing.T) {
	rr := [3]float64{-2694892.315, -4263672.417, 3858520.933}
	obs, sp := buildScenarioE(t, rr)

	f := NewFilter(baseOpt())
	f.Run(obs, sp, rr, false)

	require.Equal(t, StatusPPP, f.Sol.Status)
	dx := f.Sol.Rr[0] - rr[0]
	dy := f.Sol.Rr[1] - rr[1]
	dz := f.Sol.Rr[2] - rr[2]
	assert.Less(t, math.Sqrt(dx*dx+dy*dy+dz*dz), 0.01)
	assert.Equal(t, 8, f.Sol.NSat)
}

func TestStatSnapshot_ReportsTrackedSatellites(t *testing.T) {
	rr := [3]float64{-2694892.315, -4263672.417, 3858520.933}
	obs, sp := buildScenarioE(t, rr)

	f := NewFilter(baseOpt())
	f.Run(obs, sp, rr, false)
	require.Equal(t, StatusPPP, f.Sol.Status)

	snap := f.StatSnapshot()
	require.Len(t, snap, 8)
	for _, s := range snap {
		assert.Greater(t, s.Sat, 0)
		assert.Greater(t, s.El, 0.0)
	}
}

func TestScenarioF_OutlierPseudorangeRejected(t *testing.T) {
	rr := [3]float64{-2694892.315, -4263672.417, 3858520.933}
	obs, sp := buildScenarioE(t, rr)
	obs[3].P[0] += 100.0

	f := NewFilter(baseOpt())
	f.Run(obs, sp, rr, false)

	require.Equal(t, StatusPPP, f.Sol.Status)
	assert.Greater(t, f.Ssat[obs[3].Sat-1].Rejc[0]+f.Ssat[obs[3].Sat-1].Rejc[1], uint32(0))
	assert.Equal(t, 7, f.Sol.NSat)

	dx := f.Sol.Rr[0] - rr[0]
	dy := f.Sol.Rr[1] - rr[1]
	dz := f.Sol.Rr[2] - rr[2]
	assert.Less(t, math.Sqrt(dx*dx+dy*dy+dz*dz), 0.01)
}

func TestDayBoundary_ExactGPSMidnight(t *testing.T) {
	t0 := gnsstime.FromGPS(2200, 0.0)
	assert.True(t, dayBoundary(t0))

	t1 := gnsstime.FromGPS(2200, 43200.0)
	assert.False(t, dayBoundary(t1))
}

func TestUpdateBias_DayBoundaryResetsAllAmbiguities(t *testing.T) {
	opt := baseOpt()
	f := NewFilter(opt)

	sat := 1
	f.initx(123.456, varBias, IB(sat, 0, &opt))
	f.initx(234.567, varBias, IB(sat, 1, &opt))
	require.NotZero(t, f.X[IB(sat, 0, &opt)])

	obs := []gnss.ObsD{{Time: gnsstime.FromGPS(2200, 0.0), Sat: sat, Code: [gnss.NFREQ + gnss.NEXOBS]uint8{codeL1C, codeL2C}}}
	f.updateBias(gnss.SysGPS, obs, true)

	assert.Zero(t, f.X[IB(sat, 0, &opt)])
	assert.Zero(t, f.X[IB(sat, 1, &opt)])
}

func TestDetectSlipGF_JumpFlagged(t *testing.T) {
	opt := baseOpt()
	f := NewFilter(opt)
	sat := 3

	mkObs := func(l1, l2 float64) gnss.ObsD {
		var o gnss.ObsD
		o.Sat = sat
		o.Code[0], o.Code[1] = codeL1C, codeL2C
		o.L[0], o.L[1] = l1, l2
		return o
	}

	l1Baseline := 1.0e7*gnss.FREQ2/gnss.FREQ1 - 1000.0

	o1 := mkObs(1.0e7, l1Baseline)
	f.detectSlipGF(gnss.SysGPS, []gnss.ObsD{o1})
	assert.Zero(t, f.Ssat[sat-1].Slip[0])

	o2 := mkObs(1.0e7+10000.0, l1Baseline)
	f.detectSlipGF(gnss.SysGPS, []gnss.ObsD{o2})
	assert.NotZero(t, f.Ssat[sat-1].Slip[0])
}

func TestDetectSlipMW_JumpFlagged(t *testing.T) {
	opt := baseOpt()
	f := NewFilter(opt)
	sat := 4

	mkObs := func(extra float64) gnss.ObsD {
		var o gnss.ObsD
		o.Sat = sat
		o.Code[0], o.Code[1] = codeL1C, codeL2C
		o.P[0], o.P[1] = 2.0e7, 2.0e7
		o.L[0] = (2.0e7 + extra) * gnss.FREQ1 / gnss.CLIGHT
		o.L[1] = (2.0e7 + extra) * gnss.FREQ2 / gnss.CLIGHT
		return o
	}

	o1 := mkObs(5.0)
	f.detectSlipMW(gnss.SysGPS, []gnss.ObsD{o1})
	assert.Zero(t, f.Ssat[sat-1].Slip[0])

	o2 := mkObs(500.0)
	f.detectSlipMW(gnss.SysGPS, []gnss.ObsD{o2})
	assert.NotZero(t, f.Ssat[sat-1].Slip[0])
}

func TestStateDimensions_DualFreqNoIonoNoTrop(t *testing.T) {
	opt := baseOpt()
	assert.Equal(t, 3, NP(&opt))
	assert.Equal(t, NSYS, NC(&opt))
	assert.Equal(t, 0, NT(&opt))
	assert.Equal(t, 0, NI(&opt))
	assert.Equal(t, 0, ND(&opt))
	assert.Equal(t, 2, NF(&opt))
	assert.Equal(t, NP(&opt)+NC(&opt)+NF(&opt)*gnss.MaxSat, NX(&opt))
}
