package forensics

import (
	"encoding/binary"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func filetimeBytes(ticks uint64, padding int) []byte {
	b := make([]byte, FiletimeSize+padding)
	binary.LittleEndian.PutUint64(b, ticks)
	return b
}

func TestDecodeTicks(t *testing.T) {
	dec := NewDecoder(time.UTC)
	tests := []struct {
		name  string
		ticks uint64
		want  string
	}{
		{"unix epoch", 116444736000000000, "1970-01-01 00:00:00"},
		{"zero ticks", 0, "1601-01-01 00:00:00"},
		{"new year 2023", 133170048000000000, "2023-01-01 00:00:00"},
		{"sub-second truncated", 133444736001234567, "2023-11-14 22:13:20"},
		{"before epoch", 116444735990000000, "1969-12-31 23:59:59"},
		{"just under a second before epoch", 116444735999999999, "1969-12-31 23:59:59"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := dec.DecodeTicks(tt.ticks)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDecodeTicks_OutOfRange(t *testing.T) {
	dec := NewDecoder(nil)

	_, err := dec.DecodeTicks(math.MaxUint64)
	assert.ErrorIs(t, err, ErrOutOfRange)

	last := TimeToFiletime(time.Date(9999, 12, 31, 23, 59, 59, 0, time.UTC))
	got, err := dec.DecodeTicks(last)
	require.NoError(t, err)
	assert.Equal(t, "9999-12-31 23:59:59", got)

	_, err = dec.DecodeTicks(last + ticksPerSecond)
	assert.ErrorIs(t, err, ErrOutOfRange)
}

func TestDecode_Location(t *testing.T) {
	dec := NewDecoder(time.FixedZone("UTC+8", 8*3600))
	got, err := dec.Decode(filetimeBytes(116444736000000000, 0))
	require.NoError(t, err)
	assert.Equal(t, "1970-01-01 08:00:00", got)
	assert.Equal(t, "UTC+8", dec.Location().String())
}

func TestDecode_Payload(t *testing.T) {
	dec := NewDecoder(time.UTC)

	got, err := dec.Decode(filetimeBytes(133170048000000000, 16))
	require.NoError(t, err)
	assert.Equal(t, "2023-01-01 00:00:00", got)

	for _, size := range []int{0, 1, 7} {
		_, err := dec.Decode(make([]byte, size))
		assert.ErrorIs(t, err, ErrShortPayload, "size %d", size)
	}
}

func TestDecode_Idempotent(t *testing.T) {
	dec := NewDecoder(time.UTC)
	raw := filetimeBytes(133444736001234567, 8)

	first, err := dec.Decode(raw)
	require.NoError(t, err)
	second, err := dec.Decode(raw)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFiletimeRoundTrip(t *testing.T) {
	ts := time.Date(2019, 5, 21, 10, 4, 33, 0, time.UTC)
	assert.True(t, ts.Equal(FiletimeToTime(TimeToFiletime(ts))))
	assert.Equal(t, time.UTC, FiletimeToTime(0).Location())
}
