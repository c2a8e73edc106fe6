package gnsstime

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGPSWeekRoundTrip(t *testing.T) {
	tt := FromGPS(2000, 302000.0)
	week, tow := ToGPS(tt)
	assert.Equal(t, 2000, week)
	assert.InDelta(t, 302000.0, tow, 1e-6)
}

func TestBDTOffsetIsFourteenSeconds(t *testing.T) {
	gps := FromGPS(2000, 100000.0)
	bdt := GPSToBDT(gps)
	assert.InDelta(t, -14.0, Sub(bdt, gps), 1e-9)
	assert.InDelta(t, 0, Sub(BDTToGPS(bdt), gps), 1e-9)
}

func TestGLOOffsetIsThreeHoursPlusLeap(t *testing.T) {
	gps := FromGPS(2000, 100000.0)
	glo := GPSToGLO(gps)
	// GLONASS = UTC+3h; UTC trails GPS by the leap-second count, so the
	// raw GPS->GLO delta is 3h minus the current leap offset.
	assert.InDelta(t, 3*3600-18, Sub(glo, gps), 1e-6)
	assert.InDelta(t, 0, Sub(GLOToGPS(glo), gps), 1e-6)
}

func TestUTCLeapSecondRoundTrip(t *testing.T) {
	gps := FromGPS(2000, 100000.0)
	utc := GPSToUTC(gps)
	assert.InDelta(t, -18.0, Sub(utc, gps), 1e-9)
	assert.InDelta(t, 0, Sub(UTCToGPS(utc), gps), 1e-9)
}
