// Package gnsstime implements GnssTime: a composite integer-seconds
// plus fractional-seconds timestamp, and the total conversions between
// GPS, UTC, Galileo (GST), BeiDou (BDT) and GLONASS time systems.
package gnsstime

import (
	"fmt"
	"math"
)

// Time is the composite GnssTime representation: whole seconds since
// the Unix epoch plus a sub-second fraction in [0,1).
type Time struct {
	Sec  uint64  // whole seconds (time_t-like, UTC epoch base)
	Frac float64 // fractional second, invariant: 0 <= Frac < 1
}

var (
	gpsEpoch = [6]float64{1980, 1, 6, 0, 0, 0}
	gstEpoch = [6]float64{1999, 8, 22, 0, 0, 0}
	bdtEpoch = [6]float64{2006, 1, 1, 0, 0, 0}
)

// leaps holds the UTC-GPST leap second table in descending date order
// (year, month, day, h, m, s, utc-gpst).
var leaps = [][7]float64{
	{2017, 1, 1, 0, 0, 0, -18},
	{2015, 7, 1, 0, 0, 0, -17},
	{2012, 7, 1, 0, 0, 0, -16},
	{2009, 1, 1, 0, 0, 0, -15},
	{2006, 1, 1, 0, 0, 0, -14},
	{1999, 1, 1, 0, 0, 0, -13},
	{1997, 7, 1, 0, 0, 0, -12},
	{1996, 1, 1, 0, 0, 0, -11},
	{1994, 7, 1, 0, 0, 0, -10},
	{1993, 7, 1, 0, 0, 0, -9},
	{1992, 7, 1, 0, 0, 0, -8},
	{1991, 1, 1, 0, 0, 0, -7},
	{1990, 1, 1, 0, 0, 0, -6},
	{1988, 1, 1, 0, 0, 0, -5},
	{1985, 7, 1, 0, 0, 0, -4},
	{1983, 7, 1, 0, 0, 0, -3},
	{1982, 7, 1, 0, 0, 0, -2},
	{1981, 7, 1, 0, 0, 0, -1},
}

// FromEpoch builds a Time from a calendar epoch {year,month,day,h,m,s}.
func FromEpoch(ep [6]float64) Time {
	doy := [12]int{1, 32, 60, 91, 121, 152, 182, 213, 244, 274, 305, 335}
	year, mon, day := int(ep[0]), int(ep[1]), int(ep[2])
	if year < 1970 || year > 2099 || mon < 1 || mon > 12 {
		return Time{}
	}
	var days int
	if year%4 == 0 && mon >= 3 {
		days = (year-1970)*365 + (year-1969)/4 + doy[mon-1] + day - 2 + 1
	} else {
		days = (year-1970)*365 + (year-1969)/4 + doy[mon-1] + day - 2
	}
	sec := int(math.Floor(ep[5]))
	return Time{
		Sec:  uint64(days*86400 + int(ep[3])*3600 + int(ep[4])*60 + sec),
		Frac: ep[5] - float64(sec),
	}
}

// Epoch decomposes t back into a calendar epoch.
func (t Time) Epoch() [6]float64 {
	mday := [48]int{
		31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31,
		31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31,
		31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31,
		31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31,
	}
	days := int(t.Sec / 86400)
	sec := int(t.Sec - uint64(days*86400))
	mon := 0
	day := days % 1461
	for ; mon < 48; mon++ {
		if day >= mday[mon] {
			day -= mday[mon]
		} else {
			break
		}
	}
	return [6]float64{
		float64(1970 + days/1461*4 + mon/12),
		float64(mon%12 + 1),
		float64(day + 1),
		float64(sec / 3600),
		float64(sec % 3600 / 60),
		float64(sec%60) + t.Frac,
	}
}

// Add returns t advanced by sec seconds (may be negative).
func Add(t Time, sec float64) Time {
	t.Frac += sec
	whole := math.Floor(t.Frac)
	t.Sec += uint64(int64(whole))
	t.Frac -= whole
	return t
}

// Sub returns t1-t2 in seconds.
func Sub(t1, t2 Time) float64 {
	return float64(t1.Sec) - float64(t2.Sec) + t1.Frac - t2.Frac
}

func weekSystem(epoch [6]float64, week int, sec float64) Time {
	t := FromEpoch(epoch)
	if sec < -1e9 || sec > 1e9 {
		sec = 0
	}
	t.Sec += uint64(86400*7*week) + uint64(int64(sec))
	t.Frac = sec - float64(int64(sec))
	return t
}

func toWeekSystem(epoch [6]float64, t Time) (week int, tow float64) {
	t0 := FromEpoch(epoch)
	sec := int64(t.Sec) - int64(t0.Sec)
	w := int(sec / (86400 * 7))
	return w, float64(sec)-float64(w*86400*7) + t.Frac
}

// FromGPS builds a Time from GPS week + time-of-week (seconds).
func FromGPS(week int, tow float64) Time { return weekSystem(gpsEpoch, week, tow) }

// ToGPS decomposes t into GPS week + time-of-week.
func ToGPS(t Time) (week int, tow float64) { return toWeekSystem(gpsEpoch, t) }

// FromGST builds a Time from Galileo System Time week + time-of-week.
func FromGST(week int, tow float64) Time { return weekSystem(gstEpoch, week, tow) }

// ToGST decomposes t into Galileo week + time-of-week.
func ToGST(t Time) (week int, tow float64) { return toWeekSystem(gstEpoch, t) }

// FromBDT builds a Time from BeiDou Time week + time-of-week.
func FromBDT(week int, tow float64) Time { return weekSystem(bdtEpoch, week, tow) }

// ToBDT decomposes t into BeiDou week + time-of-week.
func ToBDT(t Time) (week int, tow float64) { return toWeekSystem(bdtEpoch, t) }

// GPSToUTC converts GPS time to UTC, leap-second aware.
func GPSToUTC(t Time) Time {
	for _, ls := range leaps {
		tu := Add(t, ls[6])
		if Sub(tu, FromEpoch([6]float64{ls[0], ls[1], ls[2], ls[3], ls[4], ls[5]})) >= 0 {
			return tu
		}
	}
	return t
}

// UTCToGPS converts UTC to GPS time, leap-second aware.
func UTCToGPS(t Time) Time {
	for _, ls := range leaps {
		if Sub(t, FromEpoch([6]float64{ls[0], ls[1], ls[2], ls[3], ls[4], ls[5]})) >= 0 {
			return Add(t, -ls[6])
		}
	}
	return t
}

// GPSToBDT applies the fixed, leap-second-free BDT = GPST - 14s offset.
func GPSToBDT(t Time) Time { return Add(t, -14.0) }

// BDTToGPS applies the inverse of GPSToBDT.
func BDTToGPS(t Time) Time { return Add(t, 14.0) }

// GPSToGLO applies the GLONASS broadcast convention: GLONASS time is
// UTC+3h (Moscow time), leap-second aware via GPS<->UTC.
func GPSToGLO(t Time) Time { return Add(GPSToUTC(t), 3*3600) }

// GLOToGPS is the inverse of GPSToGLO.
func GLOToGPS(t Time) Time { return UTCToGPS(Add(t, -3*3600)) }

// DaySeconds splits t into (seconds-of-day, start-of-day).
func DaySeconds(t Time) (sec float64, day Time) {
	ep := t.Epoch()
	sec = ep[3]*3600 + ep[4]*60 + ep[5]
	ep[3], ep[4], ep[5] = 0, 0, 0
	return sec, FromEpoch(ep)
}

// String renders t as "yyyy/mm/dd hh:mm:ss.sss" with 3 decimals.
func (t Time) String() string {
	return t.Format(3)
}

// Format renders t with n decimal digits of sub-second precision.
func (t Time) Format(n int) string {
	if n < 0 {
		n = 0
	} else if n > 12 {
		n = 12
	}
	if 1.0-t.Frac < 0.5/math.Pow(10, float64(n)) {
		t.Sec++
		t.Frac = 0
	}
	ep := t.Epoch()
	if n == 0 {
		return fmt.Sprintf("%04.0f/%02.0f/%02.0f %02.0f:%02.0f:%02.0f", ep[0], ep[1], ep[2], ep[3], ep[4], ep[5])
	}
	return fmt.Sprintf("%04.0f/%02.0f/%02.0f %02.0f:%02.0f:%0*.*f", ep[0], ep[1], ep[2], ep[3], ep[4], n+3, n, ep[5])
}
