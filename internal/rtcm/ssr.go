package rtcm

import (
	"gnssppp/internal/bitio"
	"gnssppp/internal/gnss"
)

// ssrUDInterval maps the RTCM update-interval code to seconds
var ssrUDInterval = [16]float64{
	1, 2, 5, 10, 15, 30, 60, 120, 240, 300, 600, 900, 1800, 3600, 7200, 10800,
}

// selectSSRSys returns the per-system SSR field widths that vary
// across the RTCM SSR1-6 messages: np is the satellite-ID field
// width, ni is the IODE/IODCRC width, offp is the satellite-ID offset
// (QZSS and SBAS number their PRNs outside the 1-destination range
// SatNo expects), and miss reports a system this decoder does not
// carry SSR corrections for (IRNSS has no standardized SSR message).
func selectSSRSys(sys int) (np, ni, offp int, miss bool) {
	switch sys {
	case gnss.SysGPS:
		return 6, 8, 0, false
	case gnss.SysGLO:
		return 5, 8, 0, false
	case gnss.SysGAL:
		return 6, 10, 0, false
	case gnss.SysQZS:
		return 4, 8, 192, false
	case gnss.SysCMP:
		return 6, 10, 0, false
	case gnss.SysSBS:
		return 6, 9, 120, false
	default:
		return 0, 0, 0, true
	}
}

// decodeSSREpoch decodes the GNSS-time-of-week epoch field common to
// every RTCM SSR subtype and folds it onto the decoder's running
// time, returning the bit offset where the rest of the header starts.
func (d *Decoder) decodeSSREpoch(sys int) int {
	i := 24 + 12
	tow := float64(bitio.GetUint(d.buf[:], i, 20)) * 0.001
	i += 20
	if sys == gnss.SysCMP {
		tow += 14.0 // bdt -> gpst
	}
	d.adjWeek(tow)
	return i
}

func (d *Decoder) decodeSSR1Head(sys int) (nsat, sync, iod int, udint float64, refd int, hsize int, err error) {
	ctype := int(bitio.GetUint(d.buf[:], 24, 12))
	ns, _, _, miss := selectSSRSys(sys)
	if miss {
		return 0, 0, 0, 0, 0, 0, &DecodeError{Kind: KindFieldRange, Type: ctype, Message: "system not supported"}
	}
	i0 := 24 + 12
	if i0+50+ns > d.msgLen*8 {
		return 0, 0, 0, 0, 0, 0, &DecodeError{Kind: KindFraming, Type: ctype, Message: "length error"}
	}
	i := d.decodeSSREpoch(sys)
	udi := int(bitio.GetUint(d.buf[:], i, 4))
	i += 4
	sync = int(bitio.GetUint(d.buf[:], i, 1))
	i += 1
	refd = int(bitio.GetUint(d.buf[:], i, 1))
	i += 1
	iod = int(bitio.GetUint(d.buf[:], i, 4))
	i += 4
	i += 16 // provider id
	i += 4  // solution id
	nsat = int(bitio.GetUint(d.buf[:], i, ns))
	i += ns
	udint = ssrUDInterval[udi]
	return nsat, sync, iod, udint, refd, i, nil
}

func (d *Decoder) decodeSSR2Head(sys int) (nsat, sync, iod int, udint float64, hsize int, err error) {
	ctype := int(bitio.GetUint(d.buf[:], 24, 12))
	ns, _, _, miss := selectSSRSys(sys)
	if miss {
		return 0, 0, 0, 0, 0, &DecodeError{Kind: KindFieldRange, Type: ctype, Message: "system not supported"}
	}
	i0 := 24 + 12
	if i0+49+ns > d.msgLen*8 {
		return 0, 0, 0, 0, 0, &DecodeError{Kind: KindFraming, Type: ctype, Message: "length error"}
	}
	i := d.decodeSSREpoch(sys)
	udi := int(bitio.GetUint(d.buf[:], i, 4))
	i += 4
	sync = int(bitio.GetUint(d.buf[:], i, 1))
	i += 1
	iod = int(bitio.GetUint(d.buf[:], i, 4))
	i += 4
	i += 16
	i += 4
	nsat = int(bitio.GetUint(d.buf[:], i, ns))
	i += ns
	udint = ssrUDInterval[udi]
	return nsat, sync, iod, udint, i, nil
}

// decodeSSR1 decodes GPS/GLO/GAL/QZS/CMP/SBS SSR orbit corrections
// (delta radial/along/cross position and velocity per satellite):
// messages 1057 (GPS) and 1063 (GLONASS) in the dispatch table, and
// the orbit subtype of the 4076 IGS-SSR container for every system.
func (d *Decoder) decodeSSR1(sys int) (int, error) {
	np, ni, offp, _ := selectSSRSys(sys)
	nsat, sync, iod, udint, refd, i, err := d.decodeSSR1Head(sys)
	if err != nil {
		return 0, err
	}
	for j := 0; j < nsat && i+121+np+ni <= d.msgLen*8; j++ {
		prn := int(bitio.GetUint(d.buf[:], i, np))
		i += np
		iode := int(bitio.GetUint(d.buf[:], i, ni))
		i += ni
		var deph, ddeph [3]float64
		deph[0] = float64(bitio.GetInt(d.buf[:], i, 22)) * 1e-4
		i += 22
		deph[1] = float64(bitio.GetInt(d.buf[:], i, 20)) * 4e-4
		i += 20
		deph[2] = float64(bitio.GetInt(d.buf[:], i, 20)) * 4e-4
		i += 20
		ddeph[0] = float64(bitio.GetInt(d.buf[:], i, 21)) * 1e-6
		i += 21
		ddeph[1] = float64(bitio.GetInt(d.buf[:], i, 19)) * 4e-6
		i += 19
		ddeph[2] = float64(bitio.GetInt(d.buf[:], i, 19)) * 4e-6
		i += 19

		sat := gnss.SatNo(sys, prn+offp)
		if sat == 0 || d.Nav == nil {
			continue
		}
		ssr := &d.Nav.Ssr[sat-1]
		ssr.T0[0] = d.Time
		ssr.Udi[0] = udint
		ssr.Iod[0] = iod
		ssr.Iode = iode
		ssr.Refd = refd
		ssr.Deph, ssr.Ddeph = deph, ddeph
		ssr.Update = 1
	}
	return ssrStatus(sync), nil
}

// decodeSSR2 decodes SSR clock corrections (delta C0/C1/C2
// clock-polynomial coefficients per satellite): GPS message 1058 and
// its counterparts for every other tracked system.
func (d *Decoder) decodeSSR2(sys int) (int, error) {
	np, _, offp, _ := selectSSRSys(sys)
	nsat, sync, iod, udint, i, err := d.decodeSSR2Head(sys)
	if err != nil {
		return 0, err
	}
	for j := 0; j < nsat && i+70+np <= d.msgLen*8; j++ {
		prn := int(bitio.GetUint(d.buf[:], i, np))
		i += np
		var dclk [3]float64
		dclk[0] = float64(bitio.GetInt(d.buf[:], i, 22)) * 1e-4
		i += 22
		dclk[1] = float64(bitio.GetInt(d.buf[:], i, 21)) * 1e-6
		i += 21
		dclk[2] = float64(bitio.GetInt(d.buf[:], i, 27)) * 2e-8
		i += 27

		sat := gnss.SatNo(sys, prn+offp)
		if sat == 0 || d.Nav == nil {
			continue
		}
		ssr := &d.Nav.Ssr[sat-1]
		ssr.T0[1] = d.Time
		ssr.Udi[1] = udint
		ssr.Iod[1] = iod
		ssr.Dclk = dclk
		ssr.Update = 1
	}
	return ssrStatus(sync), nil
}

// ssrCodeSignal maps an SSR code-bias signal/tracking-mode indicator
// to its RINEX code, reusing the MSM signal tables: both fields share
// the same RTCM per-system signal enumeration.
func ssrCodeSignal(sys int, mode int) uint8 {
	return gnss.Obs2Code(msmSignalLabel(sys, uint8(mode+1)))
}

// decodeSSR3 decodes SSR code-bias corrections: a variable number of
// per-signal biases (in meters) for each satellite, GPS message 1059
// and its counterparts for every other tracked system.
func (d *Decoder) decodeSSR3(sys int) (int, error) {
	np, _, offp, _ := selectSSRSys(sys)
	nsat, sync, iod, udint, i, err := d.decodeSSR2Head(sys)
	if err != nil {
		return 0, err
	}
	for j := 0; j < nsat && i+np+5 <= d.msgLen*8; j++ {
		prn := int(bitio.GetUint(d.buf[:], i, np))
		i += np
		ncode := int(bitio.GetUint(d.buf[:], i, 5))
		i += 5

		sat := gnss.SatNo(sys, prn+offp)
		var cbias [gnss.MaxCode]float32
		for k := 0; k < ncode && i+19 <= d.msgLen*8; k++ {
			mode := int(bitio.GetUint(d.buf[:], i, 5))
			i += 5
			bias := float64(bitio.GetInt(d.buf[:], i, 14)) * 0.01
			i += 14
			code := ssrCodeSignal(sys, mode)
			if sat == 0 || code == gnss.CodeNone || int(code) >= len(cbias) {
				continue
			}
			cbias[code] = float32(bias)
		}
		if sat == 0 || d.Nav == nil {
			continue
		}
		ssr := &d.Nav.Ssr[sat-1]
		ssr.T0[4] = d.Time
		ssr.Udi[4] = udint
		ssr.Iod[4] = iod
		ssr.Cbias = cbias
		ssr.Update = 1
	}
	return ssrStatus(sync), nil
}

// decodeSSR4 decodes combined SSR orbit+clock corrections: decodeSSR1
// and decodeSSR2's fields back to back for each satellite, GPS
// message 1060 and its counterparts for every other tracked system.
func (d *Decoder) decodeSSR4(sys int) (int, error) {
	np, ni, offp, _ := selectSSRSys(sys)
	nsat, sync, iod, udint, refd, i, err := d.decodeSSR1Head(sys)
	if err != nil {
		return 0, err
	}
	for j := 0; j < nsat && i+191+np+ni <= d.msgLen*8; j++ {
		prn := int(bitio.GetUint(d.buf[:], i, np))
		i += np
		iode := int(bitio.GetUint(d.buf[:], i, ni))
		i += ni
		var deph, ddeph, dclk [3]float64
		deph[0] = float64(bitio.GetInt(d.buf[:], i, 22)) * 1e-4
		i += 22
		deph[1] = float64(bitio.GetInt(d.buf[:], i, 20)) * 4e-4
		i += 20
		deph[2] = float64(bitio.GetInt(d.buf[:], i, 20)) * 4e-4
		i += 20
		ddeph[0] = float64(bitio.GetInt(d.buf[:], i, 21)) * 1e-6
		i += 21
		ddeph[1] = float64(bitio.GetInt(d.buf[:], i, 19)) * 4e-6
		i += 19
		ddeph[2] = float64(bitio.GetInt(d.buf[:], i, 19)) * 4e-6
		i += 19
		dclk[0] = float64(bitio.GetInt(d.buf[:], i, 22)) * 1e-4
		i += 22
		dclk[1] = float64(bitio.GetInt(d.buf[:], i, 21)) * 1e-6
		i += 21
		dclk[2] = float64(bitio.GetInt(d.buf[:], i, 27)) * 2e-8
		i += 27

		sat := gnss.SatNo(sys, prn+offp)
		if sat == 0 || d.Nav == nil {
			continue
		}
		ssr := &d.Nav.Ssr[sat-1]
		ssr.T0[0], ssr.T0[1] = d.Time, d.Time
		ssr.Udi[0], ssr.Udi[1] = udint, udint
		ssr.Iod[0], ssr.Iod[1] = iod, iod
		ssr.Iode = iode
		ssr.Refd = refd
		ssr.Deph, ssr.Ddeph = deph, ddeph
		ssr.Dclk = dclk
		ssr.Update = 1
	}
	return ssrStatus(sync), nil
}

// decodeSSR5 decodes SSR user range accuracy class/value pairs per
// satellite: GPS message 1061 and its counterparts for every other
// tracked system.
func (d *Decoder) decodeSSR5(sys int) (int, error) {
	np, _, offp, _ := selectSSRSys(sys)
	nsat, sync, iod, udint, i, err := d.decodeSSR2Head(sys)
	if err != nil {
		return 0, err
	}
	for j := 0; j < nsat && i+np+6 <= d.msgLen*8; j++ {
		prn := int(bitio.GetUint(d.buf[:], i, np))
		i += np
		ura := int(bitio.GetUint(d.buf[:], i, 6))
		i += 6

		sat := gnss.SatNo(sys, prn+offp)
		if sat == 0 || d.Nav == nil {
			continue
		}
		ssr := &d.Nav.Ssr[sat-1]
		ssr.T0[3] = d.Time
		ssr.Udi[3] = udint
		ssr.Iod[3] = iod
		ssr.Ura = ura
		ssr.Update = 1
	}
	return ssrStatus(sync), nil
}

// decodeSSR6 decodes SSR high-rate clock corrections, a
// faster-cadence supplement to decodeSSR2's clock-polynomial C0 term:
// GPS message 1062 and its counterparts for every other tracked
// system.
func (d *Decoder) decodeSSR6(sys int) (int, error) {
	np, _, offp, _ := selectSSRSys(sys)
	nsat, sync, iod, udint, i, err := d.decodeSSR2Head(sys)
	if err != nil {
		return 0, err
	}
	for j := 0; j < nsat && i+np+22 <= d.msgLen*8; j++ {
		prn := int(bitio.GetUint(d.buf[:], i, np))
		i += np
		hrc := float64(bitio.GetInt(d.buf[:], i, 22)) * 1e-4
		i += 22

		sat := gnss.SatNo(sys, prn+offp)
		if sat == 0 || d.Nav == nil {
			continue
		}
		ssr := &d.Nav.Ssr[sat-1]
		ssr.T0[2] = d.Time
		ssr.Udi[2] = udint
		ssr.Iod[2] = iod
		ssr.Brclk = hrc
		ssr.Update = 1
	}
	return ssrStatus(sync), nil
}

// ssrStatus maps an SSR message's multiple-message bit to a status:
// statusOK while further messages of the same epoch follow, and
// statusUnchanged for the last (or only) message. It does not touch
// ObsFlag.
func ssrStatus(sync int) int {
	if sync > 0 {
		return statusOK
	}
	return statusUnchanged
}
