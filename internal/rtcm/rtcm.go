// Package rtcm implements the RTCM v3 wire-format codec: frame
// synchronization over a preamble-delimited byte stream, CRC-24Q
// validation, and per-message-type decoding into the shared GNSS data
// model.
package rtcm

import (
	"time"

	"github.com/google/uuid"

	"gnssppp/internal/bitio"
	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
	"gnssppp/internal/trace"
)

// Preamble is the fixed RTCM v3 frame start byte.
const Preamble = 0xD3

// MaxFrame bounds the largest RTCM v3 frame this decoder buffers:
// 3-byte header + 1023-byte max payload + 3-byte CRC.
const MaxFrame = 1029

// Decoder holds one RTCM v3 byte-stream's synchronization and
// decoding state. It is not safe for concurrent use from multiple
// goroutines.
type Decoder struct {
	buf     [MaxFrame]byte
	nbyte   int
	msgLen  int
	StaID   int
	Time    gnsstime.Time
	ObsFlag int
	ObsData gnss.Obs
	Nav     *gnss.NavigationStore
	Sta     gnss.Sta
	Opt     string

	// Msg holds the text of the most recently decoded 1029 UNICODE
	// text message, for diagnostic display only.
	Msg string

	// SessionID identifies this Decoder instance in log output so
	// several concurrent streams (one decoder per stream)
	// can be told apart in shared logs.
	SessionID string

	// EphSat/EphSet record the satellite/set most recently updated by
	// a successful ephemeris decode, an
	// out-of-band signal to callers that want to react to new
	// ephemeris without re-scanning the whole store.
	EphSat int
	EphSet int

	glonassFCN [gnss.NSatGLO]int
	week       int
}

// NewDecoder constructs a Decoder bound to the given navigation
// store. opt is the receiver-option string.
func NewDecoder(nav *gnss.NavigationStore, opt string) *Decoder {
	return &Decoder{Nav: nav, Opt: opt, SessionID: uuid.NewString()}
}

// Result reports what a successful Input call decoded.
type Result struct {
	Type int // RTCM message type, 0 if the byte only advanced framing
	Sat  int // satellite whose ephemeris the message stored, 0 otherwise
}

// Input feeds one byte of an RTCM v3 stream into the decoder. It
// returns (nil, nil) while still synchronizing or buffering a frame,
// a non-nil Result once a complete, CRC-valid message has been
// decoded, and an error for framing or decode failures.
func (d *Decoder) Input(b byte) (*Result, error) {
	trace.Trace(4, "rtcm input: data=%02x", b)

	if d.nbyte == 0 {
		if b != Preamble {
			return nil, nil
		}
		d.buf[0] = b
		d.nbyte = 1
		return nil, nil
	}
	if d.nbyte >= MaxFrame {
		d.nbyte = 0
		return nil, &DecodeError{Kind: KindFraming, Message: "frame overflow"}
	}
	d.buf[d.nbyte] = b
	d.nbyte++

	if d.nbyte == 3 {
		d.msgLen = int(bitio.GetUint(d.buf[:], 14, 10)) + 3
	}
	if d.nbyte < 3 || d.nbyte < d.msgLen+3 {
		return nil, nil
	}
	d.nbyte = 0

	want := bitio.GetUint(d.buf[:], d.msgLen*8, 24)
	got := bitio.CRC24Q(d.buf[:d.msgLen])
	if got != want {
		trace.TraceFields(2, trace.Fields{"session_id": d.SessionID, "len": d.msgLen}, "rtcm3 parity error")
		return nil, &DecodeError{Kind: KindFraming, Message: "CRC-24Q mismatch"}
	}
	return d.decodeMessage()
}

// messageType reads the 12-bit message-type field of the currently
// buffered frame.
func (d *Decoder) messageType() int {
	return int(bitio.GetUint(d.buf[:], 24, 12))
}

// stampRealTimeInput, under the -RT_INP option, stamps d.Time from
// wall-clock arrival time floored to the second instead of leaving it
// to be derived from each message's decoded time-of-week field —
// for a receiver whose TOW field cannot be trusted (playback re-framed
// from another source, buffered/delayed link).
func (d *Decoder) stampRealTimeInput() {
	opt, _ := parseOpt(d.Opt)
	if !opt.RTInp {
		return
	}
	now := time.Now().UTC()
	wall := gnsstime.FromEpoch([6]float64{
		float64(now.Year()), float64(now.Month()), float64(now.Day()),
		float64(now.Hour()), float64(now.Minute()), float64(now.Second()),
	})
	week, tow := gnsstime.ToGPS(gnsstime.UTCToGPS(wall))
	d.Time = gnsstime.FromGPS(week, tow)
}

func (d *Decoder) decodeMessage() (*Result, error) {
	d.stampRealTimeInput()
	ctype := d.messageType()
	fn, ok := dispatch[ctype]
	if !ok {
		trace.Trace(3, "rtcm3 %d not supported message", ctype)
		return &Result{Type: ctype}, nil
	}
	status, err := fn(d)
	if err != nil {
		return nil, err
	}
	res := &Result{Type: ctype}
	if status == statusEph {
		res.Sat = d.EphSat
	}
	return res, nil
}

// testStaID enforces the -STA= option and the per-stream station-ID
// consistency invariant.
func (d *Decoder) testStaID(staid int) bool {
	if id, ok := optInt(d.Opt, "-STA="); ok && staid != id {
		return false
	}
	if d.StaID == 0 || d.ObsFlag > 0 {
		d.StaID = staid
		return true
	}
	if staid != d.StaID {
		trace.TraceFields(2, trace.Fields{"session_id": d.SessionID, "staid": staid, "want": d.StaID}, "rtcm3 staid invalid")
		d.StaID = 0
		return false
	}
	return true
}

// Decoder status codes. 1 is left to retsync, which returns it for a
// completed observation epoch.
const (
	statusOK        = 0
	statusEph       = 2
	statusUnchanged = 3
)
