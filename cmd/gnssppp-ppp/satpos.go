package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
)

// csvSatPosRow is one satellite's position/clock at one epoch, as
// produced by an external orbit evaluator (broadcast or precise).
// Evaluating ephemerides is outside this module's scope , so this
// adapter is a demo/reference data source, not a production orbit
// propagator: operationally a caller would point it at whatever
// orbit tool they already run and reformat its output to this shape.
type csvSatPosRow struct {
	sat    int
	rs     [6]float64 // ECEF pos/vel, m, m/s
	dts    [2]float64 // clock bias/drift, s, s/s
	posVar float64
	svh    int
	t      gnsstime.Time
}

// csvSatPosProvider implements ppp.SatPosProvider by looking up the
// closest-in-time row loaded from a CSV file for each satellite in an
// epoch's observations.
type csvSatPosProvider struct {
	rows    []csvSatPosRow
	maxSkew float64 // seconds; rows farther than this from the query time are ignored
}

// loadCSVSatPos reads a CSV file with the header:
//
//	week,sow,sat,x,y,z,vx,vy,vz,clk,clkdrift,var,svh
//
// one row per (epoch, satellite). week/sow are GPS week and
// seconds-of-week, matching gnsstime.FromGPS.
func loadCSVSatPos(path string, maxSkew float64) (*csvSatPosProvider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("satpos: open %s: %w", path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = 13
	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("satpos: read header: %w", err)
	}
	_ = header

	p := &csvSatPosProvider{maxSkew: maxSkew}
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("satpos: read %s: %w", path, err)
		}
		row, err := parseCSVSatPosRow(rec)
		if err != nil {
			return nil, fmt.Errorf("satpos: %s: %w", path, err)
		}
		p.rows = append(p.rows, row)
	}
	return p, nil
}

func parseCSVSatPosRow(rec []string) (csvSatPosRow, error) {
	var row csvSatPosRow
	vals := make([]float64, 0, 11)
	for i := 0; i < 2; i++ { // week, sow
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return row, fmt.Errorf("field %d: %w", i, err)
		}
		vals = append(vals, v)
	}
	sat, err := strconv.Atoi(rec[2])
	if err != nil {
		return row, fmt.Errorf("field 2 (sat): %w", err)
	}
	for i := 3; i < 12; i++ {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return row, fmt.Errorf("field %d: %w", i, err)
		}
		vals = append(vals, v)
	}
	svh, err := strconv.Atoi(rec[12])
	if err != nil {
		return row, fmt.Errorf("field 12 (svh): %w", err)
	}

	row.t = gnsstime.FromGPS(int(vals[0]), vals[1])
	row.sat = sat
	copy(row.rs[:], vals[2:8])
	row.dts[0], row.dts[1] = vals[8], vals[9]
	row.posVar = vals[10]
	row.svh = svh
	return row, nil
}

// SatPositions implements ppp.SatPosProvider by picking, for each
// observed satellite, the loaded row closest in time to t (within
// maxSkew); satellites with no row within tolerance are reported
// unhealthy (svh=-1) so the filter excludes them rather than using
// stale geometry.
func (p *csvSatPosProvider) SatPositions(t gnsstime.Time, obs []gnss.ObsD) ([][6]float64, [][2]float64, []float64, []int) {
	rs := make([][6]float64, len(obs))
	dts := make([][2]float64, len(obs))
	posVar := make([]float64, len(obs))
	svh := make([]int, len(obs))

	for i, o := range obs {
		best := -1
		bestSkew := p.maxSkew
		for j, row := range p.rows {
			if row.sat != o.Sat {
				continue
			}
			skew := gnsstime.Sub(t, row.t)
			if skew < 0 {
				skew = -skew
			}
			if skew <= bestSkew {
				best = j
				bestSkew = skew
			}
		}
		if best < 0 {
			svh[i] = -1
			continue
		}
		rs[i] = p.rows[best].rs
		dts[i] = p.rows[best].dts
		posVar[i] = p.rows[best].posVar
		svh[i] = p.rows[best].svh
	}
	return rs, dts, posVar, svh
}
