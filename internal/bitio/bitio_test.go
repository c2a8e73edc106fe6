package bitio

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUintRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	SetUint(buf, 6, 10, 613)
	require.EqualValues(t, 613, GetUint(buf, 6, 10))
}

func TestIntSignExtension(t *testing.T) {
	buf := make([]byte, 8)
	SetInt(buf, 0, 20, -12345)
	assert.EqualValues(t, -12345, GetInt(buf, 0, 20))

	SetInt(buf, 20, 14, 8191)
	assert.EqualValues(t, 8191, GetInt(buf, 20, 14))
}

func TestSignMagnitude(t *testing.T) {
	buf := make([]byte, 8)
	// sign bit set + magnitude 100
	SetUint(buf, 0, 1, 1)
	SetUint(buf, 1, 25, 100)
	assert.EqualValues(t, -100, GetSignMagnitude(buf, 0, 26))

	buf2 := make([]byte, 8)
	SetUint(buf2, 0, 1, 0)
	SetUint(buf2, 1, 25, 4242)
	assert.EqualValues(t, 4242, GetSignMagnitude(buf2, 0, 26))
}

func TestSplit38RoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	want := int64(-39732048800) // ~ -0.1mm scaled ECEF-like value
	v := uint64(want) & ((1 << 38) - 1)
	SetUint(buf, 0, 32, uint32(v>>6))
	SetUint(buf, 32, 6, uint32(v&0x3F))
	assert.EqualValues(t, want, GetSplit38(buf, 0))
}

func TestCRC24QDetectsCorruption(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	payload := make([]byte, 64)
	rng.Read(payload)

	crc := CRC24Q(payload)

	for prefix := 0; prefix <= 3; prefix++ {
		framed := append(make([]byte, prefix), payload...)
		got := CRC24Q(framed[prefix:])
		assert.Equal(t, crc, got, "crc must be independent of stream offset once payload is isolated")
	}

	corrupted := append([]byte(nil), payload...)
	corrupted[10] ^= 0xFF
	assert.NotEqual(t, crc, CRC24Q(corrupted), "single-byte corruption must flip the CRC")
}
