package rtcm

import (
	"fmt"

	"gnssppp/internal/bitio"
)

// decodeType1005 decodes the stationary reference station ARP
// message: a 38-bit split signed ECEF position at 0.1mm resolution
// per axis.
func (d *Decoder) decodeType1005() (int, error) {
	i := 24 + 12
	if i+140 != d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1005, Message: "length mismatch"}
	}
	staid := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12
	itrf := int(bitio.GetUint(d.buf[:], i, 6))
	i += 6 + 4
	var rr [3]float64
	rr[0] = float64(bitio.GetSplit38(d.buf[:], i))
	i += 38 + 2
	rr[1] = float64(bitio.GetSplit38(d.buf[:], i))
	i += 38 + 2
	rr[2] = float64(bitio.GetSplit38(d.buf[:], i))

	if !d.testStaID(staid) {
		return 0, &DecodeError{Kind: KindSemantic, Type: 1005, Message: "station id mismatch"}
	}
	d.Sta.Name = fmt.Sprintf("%04d", staid)
	d.Sta.DelType = 0
	for j := 0; j < 3; j++ {
		d.Sta.Pos[j] = rr[j] * 0.0001
		d.Sta.Del[j] = 0.0
	}
	d.Sta.Hgt = 0.0
	d.Sta.Itrf = itrf
	return statusOK, nil
}

// decodeType1007 decodes the antenna descriptor message.
func (d *Decoder) decodeType1007() (int, error) {
	i := 24 + 12
	n := int(bitio.GetUint(d.buf[:], i+12, 8))
	if i+28+8*n > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1007, Message: "length error"}
	}
	staid := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12 + 8
	des := make([]byte, 0, n)
	for j := 0; j < n && j < 31; j++ {
		des = append(des, byte(bitio.GetUint(d.buf[:], i, 8)))
		i += 8
	}
	setup := int(bitio.GetUint(d.buf[:], i, 8))

	if !d.testStaID(staid) {
		return 0, &DecodeError{Kind: KindSemantic, Type: 1007, Message: "station id mismatch"}
	}
	d.Sta.Name = fmt.Sprintf("%04d", staid)
	d.Sta.AntDes = string(des)
	d.Sta.AntSetup = setup
	d.Sta.AntSno = ""
	return statusOK, nil
}

// decodeType1008 decodes the antenna descriptor plus serial number.
func (d *Decoder) decodeType1008() (int, error) {
	i := 24 + 12
	n := int(bitio.GetUint(d.buf[:], i+12, 8))
	m := int(bitio.GetUint(d.buf[:], i+28+8*n, 8))
	if i+36+8*(n+m) > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1008, Message: "length error"}
	}
	staid := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12 + 8
	des := make([]byte, 0, n)
	for j := 0; j < n && j < 31; j++ {
		des = append(des, byte(bitio.GetUint(d.buf[:], i, 8)))
		i += 8
	}
	setup := int(bitio.GetUint(d.buf[:], i, 8))
	i += 8 + 8
	sno := make([]byte, 0, m)
	for j := 0; j < m && j < 31; j++ {
		sno = append(sno, byte(bitio.GetUint(d.buf[:], i, 8)))
		i += 8
	}

	if !d.testStaID(staid) {
		return 0, &DecodeError{Kind: KindSemantic, Type: 1008, Message: "station id mismatch"}
	}
	d.Sta.Name = fmt.Sprintf("%04d", staid)
	d.Sta.AntDes = string(des)
	d.Sta.AntSetup = setup
	d.Sta.AntSno = string(sno)
	return statusOK, nil
}

// decodeType1029 decodes a UNICODE text message (UTF-8 code units)
// tagged with its originating station and an MJD+time-of-day stamp;
// the text itself is held only for diagnostic display.
func (d *Decoder) decodeType1029() (int, error) {
	i := 24 + 12
	if i+60 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1029, Message: "length error"}
	}
	staid := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12
	i += 16 // mjd
	i += 17 // time of day
	nchar := int(bitio.GetUint(d.buf[:], i, 7))
	i += 7
	i += 8 // code-page/unit indicator
	if i+nchar*8 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1029, Message: "text length error"}
	}
	text := make([]byte, 0, nchar)
	for j := 0; j < nchar && j < 126; j++ {
		text = append(text, byte(bitio.GetUint(d.buf[:], i, 8)))
		i += 8
	}
	_ = staid
	d.Msg = string(text)
	return statusOK, nil
}

// decodeType1033 decodes the receiver+antenna descriptor message: a
// cascade of five length-prefixed strings (antenna descriptor, antenna
// serial number, receiver type, firmware version, receiver serial
// number), each length peeked from the frame before the previous
// field's bytes are known to have been consumed.
func (d *Decoder) decodeType1033() (int, error) {
	i := 24 + 12
	n := int(bitio.GetUint(d.buf[:], i+12, 8))
	m := int(bitio.GetUint(d.buf[:], i+28+8*n, 8))
	n1 := int(bitio.GetUint(d.buf[:], i+36+8*(n+m), 8))
	n2 := int(bitio.GetUint(d.buf[:], i+44+8*(n+m+n1), 8))
	n3 := int(bitio.GetUint(d.buf[:], i+52+8*(n+m+n1+n2), 8))
	if i+60+8*(n+m+n1+n2+n3) > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1033, Message: "length error"}
	}
	staid := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12 + 8
	des := make([]byte, 0, n)
	for j := 0; j < n && j < 31; j++ {
		des = append(des, byte(bitio.GetUint(d.buf[:], i, 8)))
		i += 8
	}
	setup := int(bitio.GetUint(d.buf[:], i, 8))
	i += 8 + 8
	sno := make([]byte, 0, m)
	for j := 0; j < m && j < 31; j++ {
		sno = append(sno, byte(bitio.GetUint(d.buf[:], i, 8)))
		i += 8
	}
	i += 8
	rec := make([]byte, 0, n1)
	for j := 0; j < n1 && j < 31; j++ {
		rec = append(rec, byte(bitio.GetUint(d.buf[:], i, 8)))
		i += 8
	}
	i += 8
	ver := make([]byte, 0, n2)
	for j := 0; j < n2 && j < 31; j++ {
		ver = append(ver, byte(bitio.GetUint(d.buf[:], i, 8)))
		i += 8
	}
	i += 8
	rsn := make([]byte, 0, n3)
	for j := 0; j < n3 && j < 31; j++ {
		rsn = append(rsn, byte(bitio.GetUint(d.buf[:], i, 8)))
		i += 8
	}

	if !d.testStaID(staid) {
		return 0, &DecodeError{Kind: KindSemantic, Type: 1033, Message: "station id mismatch"}
	}
	d.Sta.Name = fmt.Sprintf("%04d", staid)
	d.Sta.AntDes = string(des)
	d.Sta.AntSetup = setup
	d.Sta.AntSno = string(sno)
	d.Sta.RecType = string(rec)
	d.Sta.RecVer = string(ver)
	d.Sta.RecSN = string(rsn)
	return statusOK, nil
}

// decodeType1230 decodes GLONASS code-phase biases: per-signal offsets
// applied to resolve the GLONASS inter-channel bias ambiguity, one
// per tracked code among L1 C/A, L1 P, L2 C/A, L2 P.
func (d *Decoder) decodeType1230() (int, error) {
	i := 24 + 12
	if i+20 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1230, Message: "length error"}
	}
	staid := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12
	align := int(bitio.GetUint(d.buf[:], i, 1))
	i += 1
	i += 3 // reserved
	mask := int(bitio.GetUint(d.buf[:], i, 4))
	i += 4

	if !d.testStaID(staid) {
		return 0, &DecodeError{Kind: KindSemantic, Type: 1230, Message: "station id mismatch"}
	}
	d.Sta.GloCpAlign = align
	for j := 0; j < 4; j++ {
		if mask&(8>>j) == 0 {
			continue
		}
		if i+16 > d.msgLen*8 {
			break
		}
		d.Sta.GloCpBias[j] = float64(bitio.GetInt(d.buf[:], i, 16)) * 0.02
		i += 16
	}
	return statusOK, nil
}

// decodeType1006 decodes 1005's message plus an antenna-height field.
func (d *Decoder) decodeType1006() (int, error) {
	i := 24 + 12
	if i+156 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 1006, Message: "length error"}
	}
	staid := int(bitio.GetUint(d.buf[:], i, 12))
	i += 12
	itrf := int(bitio.GetUint(d.buf[:], i, 6))
	i += 6 + 4
	var rr [3]float64
	rr[0] = float64(bitio.GetSplit38(d.buf[:], i))
	i += 38 + 2
	rr[1] = float64(bitio.GetSplit38(d.buf[:], i))
	i += 38 + 2
	rr[2] = float64(bitio.GetSplit38(d.buf[:], i))
	i += 38
	anth := float64(bitio.GetUint(d.buf[:], i, 16))

	if !d.testStaID(staid) {
		return 0, &DecodeError{Kind: KindSemantic, Type: 1006, Message: "station id mismatch"}
	}
	d.Sta.Name = fmt.Sprintf("%04d", staid)
	d.Sta.DelType = 1
	for j := 0; j < 3; j++ {
		d.Sta.Pos[j] = rr[j] * 0.0001
		d.Sta.Del[j] = 0.0
	}
	d.Sta.Hgt = anth * 0.0001
	d.Sta.Itrf = itrf
	return statusOK, nil
}
