package rtcm

import (
	"gnssppp/internal/bitio"
	"gnssppp/internal/gnss"
)

// decodeType4073 decodes the Mitsubishi Electric proprietary message.
// Its payload (QZSS L6-band orbit/clock relay framing) duplicates
// products this decoder already gets through the standardized SSR
// messages, so only the frame length is checked; neither the subtype
// nor the rest of the payload is read.
func (d *Decoder) decodeType4073() (int, error) {
	i := 24 + 12 + 12
	if i+4 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 4073, Message: "length error"}
	}
	return statusOK, nil
}

// decodeType4076 decodes the IGS State Space Representation message:
// a proprietary container standardizing the same six SSR sub-streams
// (orbit, clock, code bias, combined orbit+clock, URA, high-rate
// clock) this decoder already supports for RTCM's own SSR1-6
// messages, across the tracked GNSS constellations. Wiring this
// single container covers every IGS-SSR product without committing
// to the non-final, per-system 1240-1299 numbering the draft RTCM SSR
// messages used before 4076 was standardized.
func (d *Decoder) decodeType4076() (int, error) {
	i := 24 + 12
	if i+11 > d.msgLen*8 {
		return 0, &DecodeError{Kind: KindFraming, Type: 4076, Message: "length error"}
	}
	i += 3 // IGS SSR version
	subtype := int(bitio.GetUint(d.buf[:], i, 8))

	sys, ssrSub, ok := igsSSRSubtype(subtype)
	if !ok {
		return statusOK, nil
	}
	switch ssrSub {
	case 1:
		return d.decodeSSR1(sys)
	case 2:
		return d.decodeSSR2(sys)
	case 3:
		return d.decodeSSR4(sys)
	case 4:
		return d.decodeSSR3(sys)
	case 5:
		return d.decodeSSR6(sys)
	case 6:
		return d.decodeSSR5(sys)
	default:
		// SSR7 (phase bias) is intentionally unsupported: ambiguity
		// resolution is out of scope for a float-solution PPP filter.
		return statusOK, nil
	}
}

// igsSSRSubtype decodes the IGS-SSR message's 8-bit subtype field
// into a (system, ssr-message-number) pair, following the subtype
// group layout the IGS SSR format assigns per constellation.
func igsSSRSubtype(subtype int) (sys, ssrSub int, ok bool) {
	group := subtype / 20
	offset := subtype % 20
	switch group {
	case 1:
		sys = gnss.SysGPS
	case 2:
		sys = gnss.SysGLO
	case 3:
		sys = gnss.SysGAL
	case 4:
		sys = gnss.SysQZS
	case 5:
		sys = gnss.SysCMP
	case 6:
		sys = gnss.SysSBS
	default:
		return 0, 0, false
	}
	// within-group offsets: +1=orbit, +2=clock, +3=combined
	// orbit+clock, +4=code bias, +5=phase bias, +6=ura, +7=hr-clock.
	switch offset {
	case 1:
		return sys, 1, true
	case 2:
		return sys, 2, true
	case 3:
		return sys, 3, true
	case 4:
		return sys, 4, true
	case 5:
		return sys, 7, true
	case 6:
		return sys, 6, true
	case 7:
		return sys, 5, true
	}
	return 0, 0, false
}
