package rtcm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gnssppp/internal/bitio"
	"gnssppp/internal/gnss"
	"gnssppp/internal/gnsstime"
)

// buildType1005 packs a synthetic 1005 station-ARP message for the
// given station id and ECEF position, returning a complete
// preamble+length+payload+CRC frame.
func buildType1005(staid int, ecefX, ecefY, ecefZ float64) []byte {
	payload := make([]byte, 19) // 12(type)+12(staid)+6(itrf)+4(reserved)+38+2+38+2+38 bits = 152 bits = 19 bytes
	bitio.SetUint(payload, 0, 12, 1005)
	bitio.SetUint(payload, 12, 12, uint32(staid))
	bitio.SetUint(payload, 24, 6, 0) // itrf
	i := 30 + 4
	setSplit38(payload, i, int64(ecefX/0.0001))
	i += 40
	setSplit38(payload, i, int64(ecefY/0.0001))
	i += 40
	setSplit38(payload, i, int64(ecefZ/0.0001))

	return frameWithCRC(payload)
}

func setSplit38(buf []byte, pos int, v int64) {
	u := uint64(v) & ((1 << 38) - 1)
	bitio.SetUint(buf, pos, 32, uint32(u>>6))
	bitio.SetUint(buf, pos+32, 6, uint32(u&0x3F))
}

func frameWithCRC(payload []byte) []byte {
	frame := make([]byte, 3+len(payload)+3)
	frame[0] = Preamble
	bitio.SetUint(frame, 8, 6, 0)
	bitio.SetUint(frame, 14, 10, uint32(len(payload)))
	copy(frame[3:], payload)
	crc := bitio.CRC24Q(frame[:3+len(payload)])
	bitio.SetUint(frame, (3+len(payload))*8, 24, crc)
	return frame
}

func feedAll(t *testing.T, d *Decoder, frame []byte) *Result {
	t.Helper()
	var last *Result
	for _, b := range frame {
		res, err := d.Input(b)
		require.NoError(t, err)
		if res != nil {
			last = res
		}
	}
	return last
}

// Scenario A : decode a 1005 frame; expect the station
// record populated with the ARP coordinates within 0.5mm and ITRF 0.
func TestScenarioA_Decode1005StationARP(t *testing.T) {
	frame := buildType1005(1234, 3973204.88, 1005308.80, 4890200.00)
	d := NewDecoder(&gnss.NavigationStore{}, "")
	res := feedAll(t, d, frame)

	require.NotNil(t, res)
	assert.Equal(t, 1005, res.Type)
	assert.Equal(t, 1234, d.StaID)
	assert.Equal(t, 0, d.Sta.Itrf)
	assert.InDelta(t, 3973204.88, d.Sta.Pos[0], 5e-4)
	assert.InDelta(t, 1005308.80, d.Sta.Pos[1], 5e-4)
	assert.InDelta(t, 4890200.00, d.Sta.Pos[2], 5e-4)
}

func TestCRCFailureResetsSynchronization(t *testing.T) {
	frame := buildType1005(1234, 0, 0, 0)
	frame[len(frame)-1] ^= 0xFF // corrupt CRC
	d := NewDecoder(&gnss.NavigationStore{}, "")
	for _, b := range frame {
		_, err := d.Input(b)
		if err != nil {
			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, KindFraming, de.Kind)
		}
	}
	assert.Equal(t, 0, d.nbyte, "decoder must resynchronize after a CRC failure")
}

// Scenario C : decode a 1019 ephemeris for PRN 5 and
// expect a stale IODE on re-decode to be a no-op.
func TestScenarioC_EphemerisDedup(t *testing.T) {
	nav := &gnss.NavigationStore{}
	d := NewDecoder(nav, "")
	d.Time = gnsstime.FromGPS(2000, 302000.0)

	frame := buildType1019(5, 42, 302400, 2000)
	res := feedAll(t, d, frame)
	require.NotNil(t, res)
	sat := gnss.SatNo(gnss.SysGPS, 5)
	require.NotZero(t, sat)
	assert.Equal(t, sat, res.Sat)
	assert.Equal(t, 42, nav.Ephs[0].Iode)

	// re-decode the identical frame: unchanged IODE must be a no-op
	d2 := NewDecoder(nav, "")
	d2.Time = d.Time
	res2 := feedAll(t, d2, frame)
	require.NotNil(t, res2)
	assert.Zero(t, res2.Sat, "unchanged ephemeris must not report a touched satellite")
}

func buildType1019(prn, iode int, toes float64, week int) []byte {
	payload := make([]byte, 62) // 12+476 bits padded to byte boundary
	i := 0
	bitio.SetUint(payload, i, 12, 1019)
	i += 12
	bitio.SetUint(payload, i, 6, uint32(prn))
	i += 6
	bitio.SetUint(payload, i, 10, uint32(week%1024))
	i += 10
	i += 4 // sva
	i += 2 // code
	i += 14 // idot
	bitio.SetUint(payload, i, 8, uint32(iode))
	i += 8
	i += 16 // toc
	i += 8  // f2
	i += 16 // f1
	i += 22 // f0
	i += 10 // iodc
	i += 16 // crs
	i += 16 // deln
	i += 32 // m0
	i += 16 // cuc
	i += 32 // e
	i += 16 // cus
	i += 32 // sqrtA
	bitio.SetUint(payload, i, 16, uint32(toes/16.0))
	i += 16
	i += 16 // cic
	i += 32 // omg0
	i += 16 // cis
	i += 32 // i0
	i += 16 // crc
	i += 32 // omg
	i += 24 // omgd
	i += 8  // tgd
	i += 6  // svh
	i += 1  // flag
	i += 1  // fit
	return frameWithCRC(payload)
}

// buildType1077 packs a synthetic 1077 MSM7-GPS message for 6
// satellites each reporting 2 signals (1C, 2W) on every cell.
func buildType1077(staid int, prns []int, tow float64) []byte {
	nsat := len(prns)
	nsig := 2
	ncell := nsat * nsig
	bodyBits := 181 + nsat*36 + ncell*80
	payload := make([]byte, (bodyBits+7)/8)

	i := 0
	bitio.SetUint(payload, i, 12, 1077)
	i += 12
	bitio.SetUint(payload, i, 12, uint32(staid))
	i += 12
	bitio.SetUint(payload, i, 30, uint32(tow*1000.0))
	i += 30
	i += 1 // sync
	i += 3 // iod
	i += 7 // session time
	i += 2 // clock steering
	i += 2 // external clock
	i += 1 // smoothing indicator
	i += 3 // smoothing interval

	satMaskPos := i
	for _, prn := range prns {
		bitio.SetUint(payload, satMaskPos+prn-1, 1, 1)
	}
	i += 64

	sigMaskPos := i
	bitio.SetUint(payload, sigMaskPos+1, 1, 1) // bit 2: "1C"
	bitio.SetUint(payload, sigMaskPos+9, 1, 1) // bit 10: "2W"
	i += 32

	for j := 0; j < ncell; j++ {
		bitio.SetUint(payload, i, 1, 1)
		i++
	}

	for range prns {
		bitio.SetUint(payload, i, 8, 100) // whole-ms range
		i += 8
	}
	i += nsat * 4 // extended satellite info
	for range prns {
		bitio.SetUint(payload, i, 10, 500) // range modulo-ms remainder
		i += 10
	}
	for range prns {
		bitio.SetInt(payload, i, 14, 100) // phaserange-rate
		i += 14
	}
	for j := 0; j < ncell; j++ {
		bitio.SetInt(payload, i, 20, 1000) // fine pseudorange
		i += 20
	}
	for j := 0; j < ncell; j++ {
		bitio.SetInt(payload, i, 24, -2000) // fine phaserange
		i += 24
	}
	for j := 0; j < ncell; j++ {
		bitio.SetUint(payload, i, 10, 5) // lock-time indicator
		i += 10
	}
	for j := 0; j < ncell; j++ {
		i += 1 // half-cycle ambiguity
	}
	for j := 0; j < ncell; j++ {
		bitio.SetUint(payload, i, 10, 500) // CNR
		i += 10
	}
	for j := 0; j < ncell; j++ {
		bitio.SetInt(payload, i, 15, 50) // fine phaserange-rate
		i += 15
	}
	return frameWithCRC(payload)
}

// Scenario B : decode a 1077 MSM7-GPS message carrying 6
// satellites x 2 signals (1C, 2W) and expect every satellite to end
// up with populated pseudorange/phaserange on both frequency slots.
func TestScenarioB_DecodeMSM7SixSatTwoSignal(t *testing.T) {
	prns := []int{2, 5, 10, 15, 21, 30}
	frame := buildType1077(1234, prns, 200000.0)
	d := NewDecoder(&gnss.NavigationStore{}, "")
	res := feedAll(t, d, frame)

	require.NotNil(t, res)
	assert.Equal(t, 1077, res.Type)
	require.Len(t, d.ObsData.Data, len(prns))

	rng := 100.0*rangeMS + 500.0*p2_10*rangeMS
	wantP := rng + 1000.0*p2_29*rangeMS
	for i, prn := range prns {
		sat := gnss.SatNo(gnss.SysGPS, prn)
		rec := d.ObsData.Data[i]
		assert.Equal(t, sat, rec.Sat)
		assert.InDelta(t, wantP, rec.P[0], 1e-6, "L1 pseudorange for PRN %d", prn)
		assert.InDelta(t, wantP, rec.P[1], 1e-6, "L2 pseudorange for PRN %d", prn)
		assert.NotZero(t, rec.L[0], "L1 carrier phase for PRN %d", prn)
		assert.NotZero(t, rec.L[1], "L2 carrier phase for PRN %d", prn)
		assert.Equal(t, code1C, rec.Code[0])
		assert.NotZero(t, rec.SNR[0])
	}
}

func TestNewDecoder_AssignsDistinctSessionID(t *testing.T) {
	d1 := NewDecoder(&gnss.NavigationStore{}, "")
	d2 := NewDecoder(&gnss.NavigationStore{}, "")
	assert.NotEmpty(t, d1.SessionID)
	assert.NotEqual(t, d1.SessionID, d2.SessionID)
}
