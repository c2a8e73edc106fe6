package gnss

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSatNoRoundTrip(t *testing.T) {
	sat := SatNo(SysGLO, 12)
	assert.NotZero(t, sat)
	var prn int
	sys := SatSys(sat, &prn)
	assert.Equal(t, SysGLO, sys)
	assert.Equal(t, 12, prn)
	assert.Equal(t, "R12", SatID(sat))
}

func TestSatNoOutOfRange(t *testing.T) {
	assert.Zero(t, SatNo(SysGPS, 99))
	assert.Zero(t, SatNo(SysSBS, 1))
}

func TestCode2ObsRoundTrip(t *testing.T) {
	code := Obs2Code("1C")
	assert.NotZero(t, code)
	assert.Equal(t, "1C", Code2Obs(code))
}

func TestCode2FreqGPS(t *testing.T) {
	code := Obs2Code("2W")
	assert.Equal(t, FREQ2, Code2Freq(SysGPS, code, 0))
	assert.Equal(t, 1, Code2Idx(SysGPS, code))
}

func TestCode2FreqGLOUsesChannel(t *testing.T) {
	code := Obs2Code("1C")
	base := Code2Freq(SysGLO, code, 0)
	shifted := Code2Freq(SysGLO, code, 3)
	assert.NotEqual(t, base, shifted)
	assert.InDelta(t, FREQ1GLO+DFRQ1GLO*3, shifted, 1e-3)
}

func TestCodePriorityOrdersHighestFirst(t *testing.T) {
	c1 := Obs2Code("1C")
	p1 := Obs2Code("1P")
	assert.Greater(t, CodePriority(SysGPS, c1), CodePriority(SysGPS, p1))
}
