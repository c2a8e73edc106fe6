package rtcm

import (
	"math"

	"gnssppp/internal/bitio"
	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
)

// prUnitGPS is the RTCM v3 GPS pseudorange ambiguity unit.
const prUnitGPS = 299792.458

// prUnitGLO is the RTCM v3 GLONASS pseudorange ambiguity unit.
const prUnitGLO = 599584.916

// adjWeek folds a 30-bit time-of-week field onto the decoder's
// current GPS week, handling the week rollover an AdjWeek-style helper
// performs against wall-clock time: a reported tow more than half a
// week away from the decoder's running time is assumed to belong to
// the adjacent week rather than the current one.
func (d *Decoder) adjWeek(tow float64) {
	week, towPrev := gnsstime.ToGPS(d.Time)
	switch {
	case tow < towPrev-302400.0:
		tow += 604800.0
	case tow > towPrev+302400.0:
		tow -= 604800.0
	}
	d.Time = gnsstime.FromGPS(week, tow)
	d.week = week
}

// adjCP returns cp unchanged. The decoder keeps no previous
// carrier-phase value per satellite and frequency, so a phase that
// jumps by more than 750 cycles from one epoch to the next is not
// unwrapped by ±1500 cycles.
func (d *Decoder) adjCP(sat, idx int, cp float64) float64 {
	return cp
}

func lossOfLock(lock int) uint8 {
	if lock < 0 {
		return 1
	}
	return 0
}

func snRatio(snr float64) uint16 {
	if snr <= 0.0 || snr >= 100.0 {
		return 0
	}
	return uint16(snr/gnss.SNRUnit + 0.5)
}

// decodeHead1001 decodes the shared 1001-1004 message header and
// returns the satellite count and sync flag, or a *DecodeError on a
// length/station-ID failure.
func (d *Decoder) decodeHead1001() (nsat, sync int, err error) {
	i := 24
	ctype := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12
	if i+52 > d.msgLen*8 {
		return 0, 0, &DecodeError{Kind: KindFraming, Type: ctype, Message: "header too short"}
	}
	staid := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12
	tow := float64(bitio.GetUint(d.buf[:], i, 30)) * 0.001
	i += 30
	sync = int(bitio.GetUint(d.buf[:], i, 1))
	i += 1
	nsat = int(bitio.GetUint(d.buf[:], i, 5))

	if !d.testStaID(staid) {
		return 0, 0, &DecodeError{Kind: KindSemantic, Type: ctype, Message: "station id mismatch"}
	}
	d.adjWeek(tow)
	return nsat, sync, nil
}

func retsync(sync int, flag *int) int {
	if sync > 0 {
		*flag = 1
	} else {
		*flag = 0
	}
	if sync > 0 {
		return 0
	}
	return 1
}

// obsIndex finds or appends this epoch's observation slot for sat,
// resetting the accumulation buffer on an epoch boundary.
func (d *Decoder) obsIndex(sat int) int {
	if len(d.ObsData.Data) > 0 {
		tt := gnsstime.Sub(d.ObsData.Data[0].Time, d.Time)
		if d.ObsFlag > 0 || math.Abs(tt) > 1e-9 {
			d.ObsData.Data = nil
			d.ObsFlag = 0
		}
	}
	for i := range d.ObsData.Data {
		if d.ObsData.Data[i].Sat == sat {
			return i
		}
	}
	if len(d.ObsData.Data) >= gnss.MaxObs {
		return -1
	}
	rec := gnss.ObsD{Time: d.Time, Sat: sat}
	d.ObsData.Data = append(d.ObsData.Data, rec)
	return len(d.ObsData.Data) - 1
}

func (d *Decoder) decodeType1001() (int, error) {
	nsat, sync, err := d.decodeHead1001()
	if err != nil {
		return 0, err
	}
	_ = nsat
	return retsync(sync, &d.ObsFlag), nil
}

func (d *Decoder) decodeType1003() (int, error) {
	nsat, sync, err := d.decodeHead1001()
	if err != nil {
		return 0, err
	}
	_ = nsat
	return retsync(sync, &d.ObsFlag), nil
}

var code1C = gnss.Obs2Code("1C")
var code1P = gnss.Obs2Code("1P")

// decodeType1002 decodes extended L1-only GPS RTK observables.
func (d *Decoder) decodeType1002() (int, error) {
	i := 24 + 64
	nsat, sync, err := d.decodeHead1001()
	if err != nil {
		return 0, err
	}
	freq := gnss.FREQ1
	for j := 0; j < nsat && len(d.ObsData.Data) < gnss.MaxObs+1 && i+74 <= d.msgLen*8; j++ {
		prn := int(bitio.GetUint(d.buf[:], i, 6))
		i += 6
		code := int(bitio.GetUint(d.buf[:], i, 1))
		i += 1
		pr1 := float64(bitio.GetUint(d.buf[:], i, 24))
		i += 24
		ppr1 := bitio.GetInt(d.buf[:], i, 20)
		i += 20
		lock1 := int(bitio.GetUint(d.buf[:], i, 7))
		i += 7
		amb := int(bitio.GetUint(d.buf[:], i, 8))
		i += 8
		cnr1 := float64(bitio.GetUint(d.buf[:], i, 8))
		i += 8

		sys := gnss.SysGPS
		if prn >= 40 {
			sys = gnss.SysSBS
			prn += 80
		}
		sat := gnss.SatNo(sys, prn)
		if sat == 0 {
			continue
		}
		idx := d.obsIndex(sat)
		if idx < 0 {
			continue
		}
		pr := pr1*0.02 + float64(amb)*prUnitGPS
		d.ObsData.Data[idx].P[0] = pr
		if ppr1 != int32(0xFFF80000) {
			cp := d.adjCP(sat, 0, float64(ppr1)*0.0005*freq/gnss.CLIGHT)
			d.ObsData.Data[idx].L[0] = pr*freq/gnss.CLIGHT + cp
		}
		d.ObsData.Data[idx].LLI[0] = lossOfLock(lock1)
		d.ObsData.Data[idx].SNR[0] = snRatio(cnr1 * 0.25)
		if code > 0 {
			d.ObsData.Data[idx].Code[0] = code1P
		} else {
			d.ObsData.Data[idx].Code[0] = code1C
		}
	}
	return retsync(sync, &d.ObsFlag), nil
}

var l2codes = [4]uint8{
	gnss.Obs2Code("2X"),
	gnss.Obs2Code("2P"),
	gnss.Obs2Code("2D"),
	gnss.Obs2Code("2W"),
}

// adjDayGLOT folds a GLONASS time-of-day field onto the decoder's
// current running time, the same half-window rollover rule adjWeek
// applies to a GPS time-of-week field.
func (d *Decoder) adjDayGLOT(tod float64) {
	week, tow := gnsstime.ToGPS(d.Time)
	todPrev := math.Mod(tow, 86400.0)
	tow -= todPrev
	switch {
	case tod < todPrev-43200.0:
		tod += 86400.0
	case tod > todPrev+43200.0:
		tod -= 86400.0
	}
	d.Time = gnsstime.FromGPS(week, tow+tod)
}

// decodeHead1009 decodes the shared 1009-1012 GLONASS message header
// and returns the satellite count, or an error on a length/station-ID
// failure.
func (d *Decoder) decodeHead1009() (nsat, sync int, err error) {
	i := 24
	ctype := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12
	if i+61 > d.msgLen*8 {
		return 0, 0, &DecodeError{Kind: KindFraming, Type: ctype, Message: "header too short"}
	}
	staid := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12
	tod := float64(bitio.GetUint(d.buf[:], i, 27)) * 0.001
	i += 27
	sync = int(bitio.GetUint(d.buf[:], i, 1))
	i += 1
	nsat = int(bitio.GetUint(d.buf[:], i, 5))

	if !d.testStaID(staid) {
		return 0, 0, &DecodeError{Kind: KindSemantic, Type: ctype, Message: "station id mismatch"}
	}
	d.adjDayGLOT(tod)
	return nsat, sync, nil
}

func (d *Decoder) decodeType1009() (int, error) {
	nsat, sync, err := d.decodeHead1009()
	if err != nil {
		return 0, err
	}
	_ = nsat
	return retsync(sync, &d.ObsFlag), nil
}

func (d *Decoder) decodeType1011() (int, error) {
	nsat, sync, err := d.decodeHead1009()
	if err != nil {
		return 0, err
	}
	_ = nsat
	return retsync(sync, &d.ObsFlag), nil
}

// decodeType1010 decodes extended L1-only GLONASS RTK observables.
func (d *Decoder) decodeType1010() (int, error) {
	i := 24 + 61
	nsat, sync, err := d.decodeHead1009()
	if err != nil {
		return 0, err
	}
	for j := 0; j < nsat && len(d.ObsData.Data) < gnss.MaxObs+1 && i+79 <= d.msgLen*8; j++ {
		prn := int(bitio.GetUint(d.buf[:], i, 6))
		i += 6
		code := int(bitio.GetUint(d.buf[:], i, 1))
		i += 1
		fcn := int(bitio.GetUint(d.buf[:], i, 5))
		i += 5
		pr1 := float64(bitio.GetUint(d.buf[:], i, 25))
		i += 25
		ppr1 := bitio.GetInt(d.buf[:], i, 20)
		i += 20
		lock1 := int(bitio.GetUint(d.buf[:], i, 7))
		i += 7
		amb := int(bitio.GetUint(d.buf[:], i, 7))
		i += 7
		cnr1 := float64(bitio.GetUint(d.buf[:], i, 8))
		i += 8

		sat := gnss.SatNo(gnss.SysGLO, prn)
		if sat == 0 || prn < 1 || prn > gnss.NSatGLO {
			continue
		}
		d.glonassFCN[prn-1] = fcn - 7
		sigCode := code1C
		if code > 0 {
			sigCode = code1P
		}
		freq1 := gnss.Code2Freq(gnss.SysGLO, sigCode, fcn-7)
		idx := d.obsIndex(sat)
		if idx < 0 {
			continue
		}
		pr := pr1*0.02 + float64(amb)*prUnitGLO
		d.ObsData.Data[idx].P[0] = pr
		if ppr1 != int32(0xFFF80000) {
			cp := d.adjCP(sat, 0, float64(ppr1)*0.0005*freq1/gnss.CLIGHT)
			d.ObsData.Data[idx].L[0] = pr*freq1/gnss.CLIGHT + cp
		}
		d.ObsData.Data[idx].LLI[0] = lossOfLock(lock1)
		d.ObsData.Data[idx].SNR[0] = snRatio(cnr1 * 0.25)
		d.ObsData.Data[idx].Code[0] = sigCode
	}
	return retsync(sync, &d.ObsFlag), nil
}

var code2C = gnss.Obs2Code("2C")
var code2P = gnss.Obs2Code("2P")

// decodeType1012 decodes extended L1&L2 GLONASS RTK observables.
func (d *Decoder) decodeType1012() (int, error) {
	i := 24 + 61
	nsat, sync, err := d.decodeHead1009()
	if err != nil {
		return 0, err
	}
	for j := 0; j < nsat && len(d.ObsData.Data) < gnss.MaxObs+1 && i+130 <= d.msgLen*8; j++ {
		prn := int(bitio.GetUint(d.buf[:], i, 6))
		i += 6
		code1 := int(bitio.GetUint(d.buf[:], i, 1))
		i += 1
		fcn := int(bitio.GetUint(d.buf[:], i, 5))
		i += 5
		pr1 := float64(bitio.GetUint(d.buf[:], i, 25))
		i += 25
		ppr1 := bitio.GetInt(d.buf[:], i, 20)
		i += 20
		lock1 := int(bitio.GetUint(d.buf[:], i, 7))
		i += 7
		amb := int(bitio.GetUint(d.buf[:], i, 7))
		i += 7
		cnr1 := float64(bitio.GetUint(d.buf[:], i, 8))
		i += 8
		code2 := int(bitio.GetUint(d.buf[:], i, 2))
		i += 2
		pr21 := bitio.GetInt(d.buf[:], i, 14)
		i += 14
		ppr2 := bitio.GetInt(d.buf[:], i, 20)
		i += 20
		lock2 := int(bitio.GetUint(d.buf[:], i, 7))
		i += 7
		cnr2 := float64(bitio.GetUint(d.buf[:], i, 8))
		i += 8

		sat := gnss.SatNo(gnss.SysGLO, prn)
		if sat == 0 || prn < 1 || prn > gnss.NSatGLO {
			continue
		}
		d.glonassFCN[prn-1] = fcn - 7
		sigCode1 := code1C
		if code1 > 0 {
			sigCode1 = code1P
		}
		sigCode2 := code2C
		if code2 > 0 {
			sigCode2 = code2P
		}
		freq1 := gnss.Code2Freq(gnss.SysGLO, sigCode1, fcn-7)
		freq2 := gnss.Code2Freq(gnss.SysGLO, sigCode2, fcn-7)
		idx := d.obsIndex(sat)
		if idx < 0 {
			continue
		}
		pr := pr1*0.02 + float64(amb)*prUnitGLO
		d.ObsData.Data[idx].P[0] = pr
		if ppr1 != int32(0xFFF80000) {
			cp := d.adjCP(sat, 0, float64(ppr1)*0.0005*freq1/gnss.CLIGHT)
			d.ObsData.Data[idx].L[0] = pr*freq1/gnss.CLIGHT + cp
		}
		d.ObsData.Data[idx].LLI[0] = lossOfLock(lock1)
		d.ObsData.Data[idx].SNR[0] = snRatio(cnr1 * 0.25)
		d.ObsData.Data[idx].Code[0] = sigCode1

		if pr21 != int32(0xFFFFE000) {
			d.ObsData.Data[idx].P[1] = pr + float64(pr21)*0.02
		}
		if ppr2 != int32(0xFFF80000) {
			cp2 := d.adjCP(sat, 1, float64(ppr2)*0.0005*freq2/gnss.CLIGHT)
			d.ObsData.Data[idx].L[1] = pr*freq2/gnss.CLIGHT + cp2
		}
		d.ObsData.Data[idx].LLI[1] = lossOfLock(lock2)
		d.ObsData.Data[idx].SNR[1] = snRatio(cnr2 * 0.25)
		d.ObsData.Data[idx].Code[1] = sigCode2
	}
	return retsync(sync, &d.ObsFlag), nil
}

// decodeType1004 decodes extended L1&L2 GPS RTK observables — the
// richest legacy message.
func (d *Decoder) decodeType1004() (int, error) {
	i := 24 + 64
	nsat, sync, err := d.decodeHead1001()
	if err != nil {
		return 0, err
	}
	freq := [2]float64{gnss.FREQ1, gnss.FREQ2}
	for j := 0; j < nsat && len(d.ObsData.Data) < gnss.MaxObs+1 && i+125 <= d.msgLen*8; j++ {
		prn := int(bitio.GetUint(d.buf[:], i, 6))
		i += 6
		code1 := int(bitio.GetUint(d.buf[:], i, 1))
		i += 1
		pr1 := float64(bitio.GetUint(d.buf[:], i, 24))
		i += 24
		ppr1 := bitio.GetInt(d.buf[:], i, 20)
		i += 20
		lock1 := int(bitio.GetUint(d.buf[:], i, 7))
		i += 7
		amb := int(bitio.GetUint(d.buf[:], i, 8))
		i += 8
		cnr1 := float64(bitio.GetUint(d.buf[:], i, 8))
		i += 8
		code2 := int(bitio.GetUint(d.buf[:], i, 2))
		i += 2
		pr21 := bitio.GetInt(d.buf[:], i, 14)
		i += 14
		ppr2 := bitio.GetInt(d.buf[:], i, 20)
		i += 20
		lock2 := int(bitio.GetUint(d.buf[:], i, 7))
		i += 7
		cnr2 := float64(bitio.GetUint(d.buf[:], i, 8))
		i += 8

		sys := gnss.SysGPS
		if prn >= 40 {
			sys = gnss.SysSBS
			prn += 80
		}
		sat := gnss.SatNo(sys, prn)
		if sat == 0 {
			continue
		}
		idx := d.obsIndex(sat)
		if idx < 0 {
			continue
		}
		pr := pr1*0.02 + float64(amb)*prUnitGPS
		d.ObsData.Data[idx].P[0] = pr
		if ppr1 != int32(0xFFF80000) {
			cp := d.adjCP(sat, 0, float64(ppr1)*0.0005*freq[0]/gnss.CLIGHT)
			d.ObsData.Data[idx].L[0] = pr*freq[0]/gnss.CLIGHT + cp
		}
		d.ObsData.Data[idx].LLI[0] = lossOfLock(lock1)
		d.ObsData.Data[idx].SNR[0] = snRatio(cnr1 * 0.25)
		if code1 > 0 {
			d.ObsData.Data[idx].Code[0] = code1P
		} else {
			d.ObsData.Data[idx].Code[0] = code1C
		}

		if pr21 != int32(0xFFFFE000) {
			d.ObsData.Data[idx].P[1] = pr + float64(pr21)*0.02
		}
		if ppr2 != int32(0xFFF80000) {
			cp2 := d.adjCP(sat, 1, float64(ppr2)*0.0005*freq[1]/gnss.CLIGHT)
			d.ObsData.Data[idx].L[1] = pr*freq[1]/gnss.CLIGHT + cp2
		}
		d.ObsData.Data[idx].LLI[1] = lossOfLock(lock2)
		d.ObsData.Data[idx].SNR[1] = snRatio(cnr2 * 0.25)
		d.ObsData.Data[idx].Code[1] = l2codes[code2]
	}
	return retsync(sync, &d.ObsFlag), nil
}
