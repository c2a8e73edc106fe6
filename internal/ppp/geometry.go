package ppp

import (
	"math"

	"gnssppp/internal/gnss"
)

// ecef2pos converts an ECEF position to geodetic {lat,lon,h} (rad,rad,m)
// on the WGS84 ellipsoid.
func ecef2pos(r [3]float64) (pos [3]float64) {
	e2 := gnss.FE_WGS84 * (2.0 - gnss.FE_WGS84)
	r2 := r[0]*r[0] + r[1]*r[1]
	var z, zk, sinp, v float64
	z = r[2]
	v = gnss.RE_WGS84
	for math.Abs(z-zk) >= 1e-4 {
		zk = z
		sinp = z / math.Sqrt(r2+z*z)
		v = gnss.RE_WGS84 / math.Sqrt(1.0-e2*sinp*sinp)
		z = r[2] + v*e2*sinp
	}
	switch {
	case r2 > 1e-12:
		pos[0] = math.Atan(z / math.Sqrt(r2))
	case r[2] > 0.0:
		pos[0] = gnss.PI / 2.0
	default:
		pos[0] = -gnss.PI / 2.0
	}
	if r2 > 1e-12 {
		pos[1] = math.Atan2(r[1], r[0])
	}
	pos[2] = math.Sqrt(r2+z*z) - v
	return pos
}

// xyz2enu builds the ECEF->local-ENU rotation matrix (row-major 3x3)
// at geodetic position pos.
func xyz2enu(pos [3]float64) (e [9]float64) {
	sinp, cosp := math.Sin(pos[0]), math.Cos(pos[0])
	sinl, cosl := math.Sin(pos[1]), math.Cos(pos[1])
	e[0], e[1], e[2] = -sinl, cosl, 0.0
	e[3], e[4], e[5] = -sinp*cosl, -sinp*sinl, cosp
	e[6], e[7], e[8] = cosp*cosl, cosp*sinl, sinp
	return e
}

func ecef2enu(pos [3]float64, r [3]float64) (enu [3]float64) {
	e := xyz2enu(pos)
	for i := 0; i < 3; i++ {
		enu[i] = e[i*3]*r[0] + e[i*3+1]*r[1] + e[i*3+2]*r[2]
	}
	return enu
}

// geoDist returns the geometric range between satellite position rs
// and receiver position rr, corrected for Earth rotation during
// signal travel time, and the receiver-to-satellite unit vector e.
func geoDist(rs, rr [3]float64) (r float64, e [3]float64) {
	if math.Sqrt(rs[0]*rs[0]+rs[1]*rs[1]+rs[2]*rs[2]) < gnss.RE_WGS84 {
		return -1.0, e
	}
	for i := 0; i < 3; i++ {
		e[i] = rs[i] - rr[i]
	}
	r = math.Sqrt(e[0]*e[0] + e[1]*e[1] + e[2]*e[2])
	for i := 0; i < 3; i++ {
		e[i] /= r
	}
	return r + gnss.OMGE*(rs[0]*rr[1]-rs[1]*rr[0])/gnss.CLIGHT, e
}

// satAzel computes satellite azimuth/elevation given the receiver's
// geodetic position and the receiver-to-satellite unit vector.
func satAzel(pos [3]float64, e [3]float64) (az, el float64) {
	el = gnss.PI / 2.0
	if pos[2] <= -gnss.RE_WGS84 {
		return 0.0, el
	}
	enu := ecef2enu(pos, e)
	if enu[0]*enu[0]+enu[1]*enu[1] >= 1e-12 {
		az = math.Atan2(enu[0], enu[1])
	}
	if az < 0.0 {
		az += 2 * gnss.PI
	}
	el = math.Asin(enu[2])
	return az, el
}

// ionMapf is the single-layer ionospheric slant mapping function.
func ionMapf(pos [3]float64, el float64) float64 {
	if pos[2] >= gnss.HION {
		return 1.0
	}
	return 1.0 / math.Cos(math.Asin((gnss.RE_WGS84+pos[2])/(gnss.RE_WGS84+gnss.HION)*math.Sin(gnss.PI/2.0-el)))
}

// tropMapf is a simplified 1/sin(el) tropospheric mapping function.
// A Niell-style mapping function needs coefficient tables that are
// outside this package's scope, so a cosecant mapping is used here
// instead, a documented simplification.
func tropMapf(el float64) float64 {
	return 1.0 / math.Sin(math.Max(el, 5.0*gnss.D2R))
}
