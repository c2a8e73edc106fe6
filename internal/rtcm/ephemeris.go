package rtcm

import (
	"math"

	"gnssppp/internal/bitio"
	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
)

// Scale factors for GPS-style broadcast ephemeris fields (RTCM v3 and
// ICD-GPS-200 fixed-point conventions), matching the usual
// P2_n = 2^-n and SC2RAD = pi/2^31 semicircle-to-radian constants.
const (
	sc2Rad = 3.1415926535897932 / (1 << 31)
	p2_5   = 0.03125
	p2_6   = 0.015625
	p2_11  = 4.882812500000000e-04
	p2_19  = 1.907348632812500e-06
	p2_20  = 9.536743164062500e-07
	p2_28  = 3.725290298461914e-09
	p2_29  = 1.862645149230957e-09
	p2_30  = 9.313225746154785e-10
	p2_31  = 4.656612873077393e-10
	p2_32  = 2.328306436538696e-10
	p2_33  = 1.164153218269348e-10
	p2_34  = 5.820766091346741e-11
	p2_40  = 9.094947017729282e-13
	p2_41  = 4.547473508864641e-13
	p2_43  = 1.136868377216160e-13
	p2_46  = 1.421085471520200e-14
	p2_50  = 8.881784197001252e-16
	p2_55  = 2.775557561562891e-17
	p2_59  = 1.734723475976807e-18
	p2_66  = 1.355252715606880e-20
)

// decodeType1019 decodes a GPS/SBAS Keplerian broadcast ephemeris.
// A stale IODE (unchanged from the stored ephemeris) is a no-op
// unless -EPHALL is set, matching the usual broadcast-ephemeris
// dedup behavior.
func (d *Decoder) decodeType1019() (int, error) {
	i := 24 + 12
	if i+476 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1019, Message: "length error"}
	}
	var eph gnss.Eph
	prn := int(bitio.GetUint(d.buf[:], i, 6))
	i += 6
	week := int(bitio.GetUint(d.buf[:], i, 10))
	i += 10
	eph.Sva = int(bitio.GetUint(d.buf[:], i, 4))
	i += 4
	eph.Code = int(bitio.GetUint(d.buf[:], i, 2))
	i += 2
	eph.Idot = float64(bitio.GetInt(d.buf[:], i, 14)) * p2_43 * sc2Rad
	i += 14
	eph.Iode = int(bitio.GetUint(d.buf[:], i, 8))
	i += 8
	toc := float64(bitio.GetUint(d.buf[:], i, 16)) * 16.0
	i += 16
	eph.F2 = float64(bitio.GetInt(d.buf[:], i, 8)) * p2_55
	i += 8
	eph.F1 = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_43
	i += 16
	eph.F0 = float64(bitio.GetInt(d.buf[:], i, 22)) * p2_31
	i += 22
	eph.Iodc = int(bitio.GetUint(d.buf[:], i, 10))
	i += 10
	eph.Crs = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_5
	i += 16
	eph.Deln = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_43 * sc2Rad
	i += 16
	eph.M0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Cuc = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_29
	i += 16
	eph.E = float64(bitio.GetUint(d.buf[:], i, 32)) * p2_33
	i += 32
	eph.Cus = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_29
	i += 16
	sqrtA := float64(bitio.GetUint(d.buf[:], i, 32)) * p2_19
	i += 32
	eph.Toes = float64(bitio.GetUint(d.buf[:], i, 16)) * 16.0
	i += 16
	eph.Cic = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_29
	i += 16
	eph.OMG0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Cis = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_29
	i += 16
	eph.I0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Crc = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_5
	i += 16
	eph.Omg = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.OMGd = float64(bitio.GetInt(d.buf[:], i, 24)) * p2_43 * sc2Rad
	i += 24
	eph.Tgd[0] = float64(bitio.GetInt(d.buf[:], i, 8)) * p2_31
	i += 8
	eph.Svh = int(bitio.GetUint(d.buf[:], i, 6))
	i += 6
	eph.Flag = int(bitio.GetUint(d.buf[:], i, 1))
	i += 1
	eph.Fit = 4.0
	if bitio.GetUint(d.buf[:], i, 1) > 0 {
		eph.Fit = 0.0
	}

	sys := gnss.SysGPS
	if prn >= 40 {
		sys = gnss.SysSBS
		prn += 80
	}
	sat := gnss.SatNo(sys, prn)
	if sat == 0 {
		return 0, &DecodeError{Kind: KindFieldRange, Type: 1019, Message: "bad prn"}
	}
	eph.Sat = sat
	eph.Week = adjGPSWeek(week, d.Time)
	tt := gnsstime.Sub(gnsstime.FromGPS(eph.Week, eph.Toes), d.Time)
	if tt < -302400.0 {
		eph.Week++
	} else if tt >= 302400.0 {
		eph.Week--
	}
	eph.Toe = gnsstime.FromGPS(eph.Week, eph.Toes)
	eph.Toc = gnsstime.FromGPS(eph.Week, toc)
	eph.Ttr = d.Time
	eph.A = sqrtA * sqrtA

	opt, _ := parseOpt(d.Opt)
	if !opt.EphAll {
		if prior := d.findEph(sat, 0); prior != nil && prior.Iode == eph.Iode {
			return statusUnchanged, nil
		}
	}
	d.storeEph(sat, eph)
	d.EphSat = sat
	d.EphSet = 0
	return statusEph, nil
}

// adjGPSWeek folds a 10-bit modulo-1024 GPS week field onto the
// decoder's current time, an AdjGpsWeek-style week
// rollover correction.
func adjGPSWeek(week int, cur gnsstime.Time) int {
	if cur == (gnsstime.Time{}) {
		return week
	}
	curWeek, _ := gnsstime.ToGPS(cur)
	return week + (curWeek-week+512)/1024*1024
}

// findEph looks up the stored ephemeris for (sat, set); set is always
// 0 except for Galileo, where 1 selects the F/NAV message instead of
// I/NAV.
func (d *Decoder) findEph(sat, set int) *gnss.Eph {
	if d.Nav == nil {
		return nil
	}
	for i := range d.Nav.Ephs {
		if d.Nav.Ephs[i].Sat == sat && d.Nav.Ephs[i].Set == set {
			return &d.Nav.Ephs[i]
		}
	}
	return nil
}

func (d *Decoder) storeEph(sat int, eph gnss.Eph) {
	if d.Nav == nil {
		return
	}
	for i := range d.Nav.Ephs {
		if d.Nav.Ephs[i].Sat == sat && d.Nav.Ephs[i].Set == eph.Set {
			d.Nav.Ephs[i] = eph
			return
		}
	}
	d.Nav.Ephs = append(d.Nav.Ephs, eph)
}

// findGeph/storeGeph are the GLONASS state-vector-ephemeris analogues
// of findEph/storeEph.
func (d *Decoder) findGeph(sat int) *gnss.GEph {
	if d.Nav == nil {
		return nil
	}
	for i := range d.Nav.Geph {
		if d.Nav.Geph[i].Sat == sat {
			return &d.Nav.Geph[i]
		}
	}
	return nil
}

func (d *Decoder) storeGeph(sat int, geph gnss.GEph) {
	if d.Nav == nil {
		return
	}
	for i := range d.Nav.Geph {
		if d.Nav.Geph[i].Sat == sat {
			d.Nav.Geph[i] = geph
			return
		}
	}
	d.Nav.Geph = append(d.Nav.Geph, geph)
}

// adjBDTWeek folds a 13-bit modulo-8192 BeiDou week field onto the
// decoder's current time, mirroring adjGPSWeek's rollover handling in
// BDT's own epoch.
func adjBDTWeek(week int, cur gnsstime.Time) int {
	if cur == (gnsstime.Time{}) {
		return week
	}
	curWeek, _ := gnsstime.ToBDT(gnsstime.GPSToBDT(cur))
	return week + (curWeek-week+4096)/8192*8192
}

// decodeType1020 decodes a GLONASS state-vector broadcast ephemeris:
// position/velocity/acceleration in PZ-90 at a quarter-hour reference
// time tb, plus clock and frequency-bias terms. GLONASS fields are
// sign-magnitude rather than two's complement, so every signed value
// goes through bitio.GetSignMagnitude instead of GetInt.
func (d *Decoder) decodeType1020() (int, error) {
	i := 24 + 12
	if i+348 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1020, Message: "length error"}
	}
	var geph gnss.GEph
	prn := int(bitio.GetUint(d.buf[:], i, 6))
	i += 6
	geph.Frq = int(bitio.GetUint(d.buf[:], i, 5)) - 7
	i += 5 + 2 + 2
	tkH := float64(bitio.GetUint(d.buf[:], i, 5))
	i += 5
	tkM := float64(bitio.GetUint(d.buf[:], i, 6))
	i += 6
	tkS := float64(bitio.GetUint(d.buf[:], i, 1)) * 30.0
	i += 1
	bn := int(bitio.GetUint(d.buf[:], i, 1))
	i += 1 + 1
	tb := int(bitio.GetUint(d.buf[:], i, 7))
	i += 7
	geph.Vel[0] = float64(bitio.GetSignMagnitude(d.buf[:], i, 24)) * p2_20 * 1e3
	i += 24
	geph.Pos[0] = float64(bitio.GetSignMagnitude(d.buf[:], i, 27)) * p2_11 * 1e3
	i += 27
	geph.Acc[0] = float64(bitio.GetSignMagnitude(d.buf[:], i, 5)) * p2_30 * 1e3
	i += 5
	geph.Vel[1] = float64(bitio.GetSignMagnitude(d.buf[:], i, 24)) * p2_20 * 1e3
	i += 24
	geph.Pos[1] = float64(bitio.GetSignMagnitude(d.buf[:], i, 27)) * p2_11 * 1e3
	i += 27
	geph.Acc[1] = float64(bitio.GetSignMagnitude(d.buf[:], i, 5)) * p2_30 * 1e3
	i += 5
	geph.Vel[2] = float64(bitio.GetSignMagnitude(d.buf[:], i, 24)) * p2_20 * 1e3
	i += 24
	geph.Pos[2] = float64(bitio.GetSignMagnitude(d.buf[:], i, 27)) * p2_11 * 1e3
	i += 27
	geph.Acc[2] = float64(bitio.GetSignMagnitude(d.buf[:], i, 5)) * p2_30 * 1e3
	i += 5 + 1
	geph.Gamn = float64(bitio.GetSignMagnitude(d.buf[:], i, 11)) * p2_40
	i += 11 + 3
	geph.Taun = float64(bitio.GetSignMagnitude(d.buf[:], i, 22)) * p2_30
	i += 22
	geph.DTaun = float64(bitio.GetSignMagnitude(d.buf[:], i, 5)) * p2_30
	i += 5
	geph.Age = int(bitio.GetUint(d.buf[:], i, 5))

	sat := gnss.SatNo(gnss.SysGLO, prn)
	if sat == 0 {
		return 0, &DecodeError{Kind: KindFieldRange, Type: 1020, Message: "bad prn"}
	}
	geph.Sat = sat
	geph.Svh = bn
	geph.Iode = tb & 0x7F

	week, tow := gnsstime.ToGPS(d.Time)
	tod := math.Mod(tow, 86400.0)
	tow -= tod
	tof := tkH*3600.0 + tkM*60.0 + tkS - 10800.0 // lt->utc
	if tof < tod-43200.0 {
		tof += 86400.0
	} else if tof > tod+43200.0 {
		tof -= 86400.0
	}
	geph.Tof = gnsstime.UTCToGPS(gnsstime.FromGPS(week, tow+tof))
	toe := float64(tb)*900.0 - 10800.0 // lt->utc
	if toe < tod-43200.0 {
		toe += 86400.0
	} else if toe > tod+43200.0 {
		toe -= 86400.0
	}
	geph.Toe = gnsstime.UTCToGPS(gnsstime.FromGPS(week, tow+toe))

	opt, _ := parseOpt(d.Opt)
	if !opt.EphAll {
		if prior := d.findGeph(sat); prior != nil &&
			math.Abs(gnsstime.Sub(geph.Toe, prior.Toe)) < 1.0 && geph.Svh == prior.Svh {
			return statusUnchanged, nil
		}
	}
	d.storeGeph(sat, geph)
	d.EphSat = sat
	d.EphSet = 0
	return statusEph, nil
}

// decodeType1041 decodes an IRNSS/NavIC Keplerian broadcast ephemeris.
func (d *Decoder) decodeType1041() (int, error) {
	i := 24 + 12
	if i+470 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1041, Message: "length error"}
	}
	var eph gnss.Eph
	prn := int(bitio.GetUint(d.buf[:], i, 6))
	i += 6
	week := int(bitio.GetUint(d.buf[:], i, 10))
	i += 10
	eph.F0 = float64(bitio.GetInt(d.buf[:], i, 22)) * p2_31
	i += 22
	eph.F1 = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_43
	i += 16
	eph.F2 = float64(bitio.GetInt(d.buf[:], i, 8)) * p2_55
	i += 8
	eph.Sva = int(bitio.GetUint(d.buf[:], i, 4))
	i += 4
	toc := float64(bitio.GetUint(d.buf[:], i, 16)) * 16.0
	i += 16
	eph.Tgd[0] = float64(bitio.GetInt(d.buf[:], i, 8)) * p2_31
	i += 8
	eph.Deln = float64(bitio.GetInt(d.buf[:], i, 22)) * p2_41 * sc2Rad
	i += 22
	eph.Iode = int(bitio.GetUint(d.buf[:], i, 8))
	i += 8 + 10 // IODEC
	eph.Svh = int(bitio.GetUint(d.buf[:], i, 2))
	i += 2 // L5+S flag
	eph.Cuc = float64(bitio.GetInt(d.buf[:], i, 15)) * p2_28
	i += 15
	eph.Cus = float64(bitio.GetInt(d.buf[:], i, 15)) * p2_28
	i += 15
	eph.Cic = float64(bitio.GetInt(d.buf[:], i, 15)) * p2_28
	i += 15
	eph.Cis = float64(bitio.GetInt(d.buf[:], i, 15)) * p2_28
	i += 15
	eph.Crc = float64(bitio.GetInt(d.buf[:], i, 15)) * 0.0625
	i += 15
	eph.Crs = float64(bitio.GetInt(d.buf[:], i, 15)) * 0.0625
	i += 15
	eph.Idot = float64(bitio.GetInt(d.buf[:], i, 14)) * p2_43 * sc2Rad
	i += 14
	eph.M0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Toes = float64(bitio.GetUint(d.buf[:], i, 16)) * 16.0
	i += 16
	eph.E = float64(bitio.GetUint(d.buf[:], i, 32)) * p2_33
	i += 32
	sqrtA := float64(bitio.GetUint(d.buf[:], i, 32)) * p2_19
	i += 32
	eph.OMG0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Omg = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.OMGd = float64(bitio.GetInt(d.buf[:], i, 22)) * p2_41 * sc2Rad
	i += 22
	eph.I0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad

	sat := gnss.SatNo(gnss.SysIRN, prn)
	if sat == 0 {
		return 0, &DecodeError{Kind: KindFieldRange, Type: 1041, Message: "bad prn"}
	}
	eph.Sat = sat
	eph.Week = adjGPSWeek(week, d.Time)
	tt := gnsstime.Sub(gnsstime.FromGPS(eph.Week, eph.Toes), d.Time)
	if tt < -302400.0 {
		eph.Week++
	} else if tt >= 302400.0 {
		eph.Week--
	}
	eph.Toe = gnsstime.FromGPS(eph.Week, eph.Toes)
	eph.Toc = gnsstime.FromGPS(eph.Week, toc)
	eph.Ttr = d.Time
	eph.A = sqrtA * sqrtA
	eph.Iodc = eph.Iode

	opt, _ := parseOpt(d.Opt)
	if !opt.EphAll {
		if prior := d.findEph(sat, 0); prior != nil && prior.Iode == eph.Iode {
			return statusUnchanged, nil
		}
	}
	d.storeEph(sat, eph)
	d.EphSat = sat
	d.EphSet = 0
	return statusEph, nil
}

// decodeType1044 decodes a QZSS Keplerian broadcast ephemeris.
func (d *Decoder) decodeType1044() (int, error) {
	i := 24 + 12
	if i+473 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1044, Message: "length error"}
	}
	var eph gnss.Eph
	prn := int(bitio.GetUint(d.buf[:], i, 4)) + 192
	i += 4
	toc := float64(bitio.GetUint(d.buf[:], i, 16)) * 16.0
	i += 16
	eph.F2 = float64(bitio.GetInt(d.buf[:], i, 8)) * p2_55
	i += 8
	eph.F1 = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_43
	i += 16
	eph.F0 = float64(bitio.GetInt(d.buf[:], i, 22)) * p2_31
	i += 22
	eph.Iode = int(bitio.GetUint(d.buf[:], i, 8))
	i += 8
	eph.Crs = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_5
	i += 16
	eph.Deln = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_43 * sc2Rad
	i += 16
	eph.M0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Cuc = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_29
	i += 16
	eph.E = float64(bitio.GetUint(d.buf[:], i, 32)) * p2_33
	i += 32
	eph.Cus = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_29
	i += 16
	sqrtA := float64(bitio.GetUint(d.buf[:], i, 32)) * p2_19
	i += 32
	eph.Toes = float64(bitio.GetUint(d.buf[:], i, 16)) * 16.0
	i += 16
	eph.Cic = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_29
	i += 16
	eph.OMG0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Cis = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_29
	i += 16
	eph.I0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Crc = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_5
	i += 16
	eph.Omg = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.OMGd = float64(bitio.GetInt(d.buf[:], i, 24)) * p2_43 * sc2Rad
	i += 24
	eph.Idot = float64(bitio.GetInt(d.buf[:], i, 14)) * p2_43 * sc2Rad
	i += 14
	eph.Code = int(bitio.GetUint(d.buf[:], i, 2))
	i += 2
	week := int(bitio.GetUint(d.buf[:], i, 10))
	i += 10
	eph.Sva = int(bitio.GetUint(d.buf[:], i, 4))
	i += 4
	eph.Svh = int(bitio.GetUint(d.buf[:], i, 6))
	i += 6
	eph.Tgd[0] = float64(bitio.GetInt(d.buf[:], i, 8)) * p2_31
	i += 8
	eph.Iodc = int(bitio.GetUint(d.buf[:], i, 10))
	i += 10
	eph.Fit = 2.0
	if bitio.GetUint(d.buf[:], i, 1) > 0 {
		eph.Fit = 0.0
	}

	sat := gnss.SatNo(gnss.SysQZS, prn)
	if sat == 0 {
		return 0, &DecodeError{Kind: KindFieldRange, Type: 1044, Message: "bad prn"}
	}
	eph.Sat = sat
	eph.Week = adjGPSWeek(week, d.Time)
	tt := gnsstime.Sub(gnsstime.FromGPS(eph.Week, eph.Toes), d.Time)
	if tt < -302400.0 {
		eph.Week++
	} else if tt >= 302400.0 {
		eph.Week--
	}
	eph.Toe = gnsstime.FromGPS(eph.Week, eph.Toes)
	eph.Toc = gnsstime.FromGPS(eph.Week, toc)
	eph.Ttr = d.Time
	eph.A = sqrtA * sqrtA
	eph.Flag = 1

	opt, _ := parseOpt(d.Opt)
	if !opt.EphAll {
		if prior := d.findEph(sat, 0); prior != nil && prior.Iode == eph.Iode && prior.Iodc == eph.Iodc {
			return statusUnchanged, nil
		}
	}
	d.storeEph(sat, eph)
	d.EphSat = sat
	d.EphSet = 0
	return statusEph, nil
}

// decodeGalEph decodes the Keplerian broadcast ephemeris body shared
// by Galileo's F/NAV (1045) and I/NAV (1046) messages, up through the
// navigation-data-source/TGD fields both messages carry identically.
func (d *Decoder) decodeGalEph() (eph gnss.Eph, week int, toc float64, i int) {
	i = 24 + 12
	prn := int(bitio.GetUint(d.buf[:], i, 6))
	i += 6
	week = int(bitio.GetUint(d.buf[:], i, 12))
	i += 12
	eph.Iode = int(bitio.GetUint(d.buf[:], i, 10))
	i += 10
	eph.Sva = int(bitio.GetUint(d.buf[:], i, 8))
	i += 8
	eph.Idot = float64(bitio.GetInt(d.buf[:], i, 14)) * p2_43 * sc2Rad
	i += 14
	toc = float64(bitio.GetUint(d.buf[:], i, 14)) * 60.0
	i += 14
	eph.F2 = float64(bitio.GetInt(d.buf[:], i, 6)) * p2_59
	i += 6
	eph.F1 = float64(bitio.GetInt(d.buf[:], i, 21)) * p2_46
	i += 21
	eph.F0 = float64(bitio.GetInt(d.buf[:], i, 31)) * p2_34
	i += 31
	eph.Crs = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_5
	i += 16
	eph.Deln = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_43 * sc2Rad
	i += 16
	eph.M0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Cuc = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_29
	i += 16
	eph.E = float64(bitio.GetUint(d.buf[:], i, 32)) * p2_33
	i += 32
	eph.Cus = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_29
	i += 16
	sqrtA := float64(bitio.GetUint(d.buf[:], i, 32)) * p2_19
	i += 32
	eph.Toes = float64(bitio.GetUint(d.buf[:], i, 14)) * 60.0
	i += 14
	eph.Cic = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_29
	i += 16
	eph.OMG0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Cis = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_29
	i += 16
	eph.I0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Crc = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_5
	i += 16
	eph.Omg = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.OMGd = float64(bitio.GetInt(d.buf[:], i, 24)) * p2_43 * sc2Rad
	i += 24
	eph.A = sqrtA * sqrtA
	eph.Sat = gnss.SatNo(gnss.SysGAL, prn)
	return eph, week, toc, i
}

// decodeType1045 decodes a Galileo F/NAV (E5a) satellite ephemeris,
// stored as Eph.Set 1 so it doesn't overwrite the I/NAV message's
// independent broadcast of the same satellite's orbit.
func (d *Decoder) decodeType1045() (int, error) {
	if i := 24 + 12; i+484 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1045, Message: "length error"}
	}
	eph, week, toc, i := d.decodeGalEph()
	if eph.Sat == 0 {
		return 0, &DecodeError{Kind: KindFieldRange, Type: 1045, Message: "bad prn"}
	}
	eph.Tgd[0] = float64(bitio.GetInt(d.buf[:], i, 10)) * p2_32 // E5a/E1
	i += 10
	e5aHS := int(bitio.GetUint(d.buf[:], i, 2))
	i += 2
	e5aDVS := int(bitio.GetUint(d.buf[:], i, 1))

	opt, _ := parseOpt(d.Opt)
	if opt.GalINav {
		return statusOK, nil
	}

	eph.Set = 1
	eph.Week = week + 1024 // gal-week = gst-week + 1024
	tt := gnsstime.Sub(gnsstime.FromGPS(eph.Week, eph.Toes), d.Time)
	if tt < -302400.0 {
		eph.Week++
	} else if tt >= 302400.0 {
		eph.Week--
	}
	eph.Toe = gnsstime.FromGPS(eph.Week, eph.Toes)
	eph.Toc = gnsstime.FromGPS(eph.Week, toc)
	eph.Ttr = d.Time
	eph.Svh = (e5aHS << 4) + (e5aDVS << 3)
	eph.Code = (1 << 1) + (1 << 8) // F/NAV+E5a
	eph.Iodc = eph.Iode

	if !opt.EphAll {
		if prior := d.findEph(eph.Sat, 1); prior != nil && prior.Iode == eph.Iode {
			return statusUnchanged, nil
		}
	}
	d.storeEph(eph.Sat, eph)
	d.EphSat = eph.Sat
	d.EphSet = 1
	return statusEph, nil
}

// decodeType1046 decodes a Galileo I/NAV (E1/E5b) satellite
// ephemeris, stored as Eph.Set 0.
func (d *Decoder) decodeType1046() (int, error) {
	if i := 24 + 12; i+492 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1046, Message: "length error"}
	}
	eph, week, toc, i := d.decodeGalEph()
	if eph.Sat == 0 {
		return 0, &DecodeError{Kind: KindFieldRange, Type: 1046, Message: "bad prn"}
	}
	eph.Tgd[0] = float64(bitio.GetInt(d.buf[:], i, 10)) * p2_32 // E5a/E1
	i += 10
	eph.Tgd[1] = float64(bitio.GetInt(d.buf[:], i, 10)) * p2_32 // E5b/E1
	i += 10
	e5bHS := int(bitio.GetUint(d.buf[:], i, 2))
	i += 2
	e5bDVS := int(bitio.GetUint(d.buf[:], i, 1))
	i += 1
	e1HS := int(bitio.GetUint(d.buf[:], i, 2))
	i += 2
	e1DVS := int(bitio.GetUint(d.buf[:], i, 1))

	opt, _ := parseOpt(d.Opt)
	if opt.GalFNav {
		return statusOK, nil
	}

	eph.Set = 0
	eph.Week = week + 1024
	tt := gnsstime.Sub(gnsstime.FromGPS(eph.Week, eph.Toes), d.Time)
	if tt < -302400.0 {
		eph.Week++
	} else if tt >= 302400.0 {
		eph.Week--
	}
	eph.Toe = gnsstime.FromGPS(eph.Week, eph.Toes)
	eph.Toc = gnsstime.FromGPS(eph.Week, toc)
	eph.Ttr = d.Time
	eph.Svh = (e5bHS << 7) + (e5bDVS << 6) + (e1HS << 1) + (e1DVS << 0)
	eph.Code = (1 << 0) + (1 << 2) + (1 << 9) // I/NAV+E1+E5b
	eph.Iodc = eph.Iode

	if !opt.EphAll {
		if prior := d.findEph(eph.Sat, 0); prior != nil && prior.Iode == eph.Iode {
			return statusUnchanged, nil
		}
	}
	d.storeEph(eph.Sat, eph)
	d.EphSat = eph.Sat
	d.EphSet = 0
	return statusEph, nil
}

// decodeType1042 decodes a BeiDou Keplerian broadcast ephemeris; its
// epoch fields are in BeiDou Time (BDT), folded to GPS time via the
// fixed 14-second BDT/GPST offset.
func (d *Decoder) decodeType1042() (int, error) {
	i := 24 + 12
	if i+499 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1042, Message: "length error"}
	}
	var eph gnss.Eph
	prn := int(bitio.GetUint(d.buf[:], i, 6))
	i += 6
	week := int(bitio.GetUint(d.buf[:], i, 13))
	i += 13
	eph.Sva = int(bitio.GetUint(d.buf[:], i, 4))
	i += 4
	eph.Idot = float64(bitio.GetInt(d.buf[:], i, 14)) * p2_43 * sc2Rad
	i += 14
	eph.Iode = int(bitio.GetUint(d.buf[:], i, 5))
	i += 5 // AODE
	toc := float64(bitio.GetUint(d.buf[:], i, 17)) * 8.0
	i += 17
	eph.F2 = float64(bitio.GetInt(d.buf[:], i, 11)) * p2_66
	i += 11
	eph.F1 = float64(bitio.GetInt(d.buf[:], i, 22)) * p2_50
	i += 22
	eph.F0 = float64(bitio.GetInt(d.buf[:], i, 24)) * p2_33
	i += 24
	eph.Iodc = int(bitio.GetUint(d.buf[:], i, 5))
	i += 5 // AODC
	eph.Crs = float64(bitio.GetInt(d.buf[:], i, 18)) * p2_6
	i += 18
	eph.Deln = float64(bitio.GetInt(d.buf[:], i, 16)) * p2_43 * sc2Rad
	i += 16
	eph.M0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Cuc = float64(bitio.GetInt(d.buf[:], i, 18)) * p2_31
	i += 18
	eph.E = float64(bitio.GetUint(d.buf[:], i, 32)) * p2_33
	i += 32
	eph.Cus = float64(bitio.GetInt(d.buf[:], i, 18)) * p2_31
	i += 18
	sqrtA := float64(bitio.GetUint(d.buf[:], i, 32)) * p2_19
	i += 32
	eph.Toes = float64(bitio.GetUint(d.buf[:], i, 17)) * 8.0
	i += 17
	eph.Cic = float64(bitio.GetInt(d.buf[:], i, 18)) * p2_31
	i += 18
	eph.OMG0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Cis = float64(bitio.GetInt(d.buf[:], i, 18)) * p2_31
	i += 18
	eph.I0 = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.Crc = float64(bitio.GetInt(d.buf[:], i, 18)) * p2_6
	i += 18
	eph.Omg = float64(bitio.GetInt(d.buf[:], i, 32)) * p2_31 * sc2Rad
	i += 32
	eph.OMGd = float64(bitio.GetInt(d.buf[:], i, 24)) * p2_43 * sc2Rad
	i += 24
	eph.Tgd[0] = float64(bitio.GetInt(d.buf[:], i, 10)) * 1e-10
	i += 10
	eph.Tgd[1] = float64(bitio.GetInt(d.buf[:], i, 10)) * 1e-10
	i += 10
	eph.Svh = int(bitio.GetUint(d.buf[:], i, 1))

	sat := gnss.SatNo(gnss.SysCMP, prn)
	if sat == 0 {
		return 0, &DecodeError{Kind: KindFieldRange, Type: 1042, Message: "bad prn"}
	}
	eph.Sat = sat
	eph.Week = adjBDTWeek(week, d.Time)
	tt := gnsstime.Sub(gnsstime.BDTToGPS(gnsstime.FromBDT(eph.Week, eph.Toes)), d.Time)
	if tt < -302400.0 {
		eph.Week++
	} else if tt >= 302400.0 {
		eph.Week--
	}
	eph.Toe = gnsstime.BDTToGPS(gnsstime.FromBDT(eph.Week, eph.Toes))
	eph.Toc = gnsstime.BDTToGPS(gnsstime.FromBDT(eph.Week, toc))
	eph.Ttr = d.Time
	eph.A = sqrtA * sqrtA

	opt, _ := parseOpt(d.Opt)
	if !opt.EphAll {
		if prior := d.findEph(sat, 0); prior != nil &&
			gnsstime.Sub(eph.Toe, prior.Toe) == 0.0 && eph.Iode == prior.Iode && eph.Iodc == prior.Iodc {
			return statusUnchanged, nil
		}
	}
	d.storeEph(sat, eph)
	d.EphSat = sat
	d.EphSet = 0
	return statusEph, nil
}
