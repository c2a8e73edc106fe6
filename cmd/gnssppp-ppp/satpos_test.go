package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
)

func writeCSV(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "satpos.csv")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadCSVSatPos_ParsesRows(t *testing.T) {
	body := "week,sow,sat,x,y,z,vx,vy,vz,clk,clkdrift,var,svh\n" +
		"2000,302400,3,1e7,2e7,3e7,1,2,3,1e-6,1e-9,1.0,0\n"
	path := writeCSV(t, body)

	p, err := loadCSVSatPos(path, 0.5)
	require.NoError(t, err)
	require.Len(t, p.rows, 1)
	assert.Equal(t, 3, p.rows[0].sat)
	assert.Equal(t, [6]float64{1e7, 2e7, 3e7, 1, 2, 3}, p.rows[0].rs)
	assert.Equal(t, 0, p.rows[0].svh)
}

func TestSatPositions_MarksMissingSatUnhealthy(t *testing.T) {
	body := "week,sow,sat,x,y,z,vx,vy,vz,clk,clkdrift,var,svh\n" +
		"2000,302400,3,1e7,2e7,3e7,1,2,3,1e-6,1e-9,1.0,0\n"
	path := writeCSV(t, body)
	p, err := loadCSVSatPos(path, 0.5)
	require.NoError(t, err)

	t0 := gnsstime.FromGPS(2000, 302400)
	obs := []gnss.ObsD{{Sat: 3, Time: t0}, {Sat: 7, Time: t0}}
	rs, _, _, svh := p.SatPositions(t0, obs)

	assert.Equal(t, 0, svh[0])
	assert.Equal(t, [6]float64{1e7, 2e7, 3e7, 1, 2, 3}, rs[0])
	assert.Equal(t, -1, svh[1])
}

func TestSatPositions_RejectsRowOutsideSkew(t *testing.T) {
	body := "week,sow,sat,x,y,z,vx,vy,vz,clk,clkdrift,var,svh\n" +
		"2000,302400,3,1e7,2e7,3e7,1,2,3,1e-6,1e-9,1.0,0\n"
	path := writeCSV(t, body)
	p, err := loadCSVSatPos(path, 0.1)
	require.NoError(t, err)

	tFar := gnsstime.FromGPS(2000, 302410)
	obs := []gnss.ObsD{{Sat: 3, Time: tFar}}
	_, _, _, svh := p.SatPositions(tFar, obs)
	assert.Equal(t, -1, svh[0])
}
