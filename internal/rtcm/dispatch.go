package rtcm

import "gnssppp/internal/gnss"

// decodeFunc decodes the frame currently buffered in d.buf (message
// type already known to the caller) and returns the legacy
// status code (see statusOK/statusEph/statusUnchanged) or an error.
//
// dispatch replaces a single giant switch statement
// (rtcm3.go DecodeRtcm3) with a data table keyed by message type, per
// the re-architecture guidance that "switch-heavy
// dispatchers... should become data tables": adding a message type is
// now a map entry, not a new switch arm threaded through shared
// control flow. The MSM and SSR blocks below are themselves built
// from (system, base-type) tables rather than typed out per
// constellation, so a system this decoder doesn't track yet is a
// one-line addition, not 7 or 6 new map entries.
type decodeFunc func(*Decoder) (int, error)

var dispatch = buildDispatch()

// msmSystem is one constellation's MSM1-7 block, numbered base+0
// through base+6.
type msmSystem struct {
	sys  int
	base int
}

// ssrSystem is one constellation's standardized (non-draft) SSR1-6
// block, numbered orbit..orbit+5. Only GPS and GLONASS reached final
// RTCM numbering for these messages; every other tracked system's SSR
// products arrive only via the 4076 IGS-SSR container.
type ssrSystem struct {
	sys   int
	orbit int
}

func buildDispatch() map[int]decodeFunc {
	m := map[int]decodeFunc{
		1001: (*Decoder).decodeType1001,
		1002: (*Decoder).decodeType1002,
		1003: (*Decoder).decodeType1003,
		1004: (*Decoder).decodeType1004,
		1005: (*Decoder).decodeType1005,
		1006: (*Decoder).decodeType1006,
		1007: (*Decoder).decodeType1007,
		1008: (*Decoder).decodeType1008,
		1009: (*Decoder).decodeType1009,
		1010: (*Decoder).decodeType1010,
		1011: (*Decoder).decodeType1011,
		1012: (*Decoder).decodeType1012,
		1019: (*Decoder).decodeType1019,
		1020: (*Decoder).decodeType1020,
		1029: (*Decoder).decodeType1029,
		1033: (*Decoder).decodeType1033,
		1041: (*Decoder).decodeType1041,
		1042: (*Decoder).decodeType1042,
		1044: (*Decoder).decodeType1044,
		1045: (*Decoder).decodeType1045,
		1046: (*Decoder).decodeType1046,
		1230: (*Decoder).decodeType1230,
		4073: (*Decoder).decodeType4073,
		4076: (*Decoder).decodeType4076,
	}

	for _, s := range []msmSystem{
		{gnss.SysGPS, 1071},
		{gnss.SysGLO, 1081},
		{gnss.SysGAL, 1091},
		{gnss.SysSBS, 1101},
		{gnss.SysQZS, 1111},
		{gnss.SysCMP, 1121},
		{gnss.SysIRN, 1131},
	} {
		sys, base := s.sys, s.base
		m[base+0] = func(d *Decoder) (int, error) { return d.decodeMSM0(sys) }
		m[base+1] = func(d *Decoder) (int, error) { return d.decodeMSM0(sys) }
		m[base+2] = func(d *Decoder) (int, error) { return d.decodeMSM0(sys) }
		m[base+3] = func(d *Decoder) (int, error) { return d.decodeMSM4(sys) }
		m[base+4] = func(d *Decoder) (int, error) { return d.decodeMSM5(sys) }
		m[base+5] = func(d *Decoder) (int, error) { return d.decodeMSM6(sys) }
		m[base+6] = func(d *Decoder) (int, error) { return d.decodeMSM7(sys) }
	}

	for _, s := range []ssrSystem{
		{gnss.SysGPS, 1057},
		{gnss.SysGLO, 1063},
	} {
		sys, orbit := s.sys, s.orbit
		m[orbit+0] = func(d *Decoder) (int, error) { return d.decodeSSR1(sys) }
		m[orbit+1] = func(d *Decoder) (int, error) { return d.decodeSSR2(sys) }
		m[orbit+2] = func(d *Decoder) (int, error) { return d.decodeSSR3(sys) }
		m[orbit+3] = func(d *Decoder) (int, error) { return d.decodeSSR4(sys) }
		m[orbit+4] = func(d *Decoder) (int, error) { return d.decodeSSR5(sys) }
		m[orbit+5] = func(d *Decoder) (int, error) { return d.decodeSSR6(sys) }
	}

	return m
}
