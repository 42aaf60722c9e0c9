package forensics

import (
	"encoding/binary"
	"errors"
	"fmt"
	"time"
)

const (
	// 1601 到 1970 偏移秒数
	epochDiff = 11644473600
	// FILETIME 以 100ns 为单位
	ticksPerSecond = 10000000
	// FiletimeSize is the number of payload bytes holding the timestamp.
	FiletimeSize = 8
	// DateLayout renders timestamps as YYYY-MM-DD HH:MM:SS.
	DateLayout = "2006-01-02 15:04:05"
)

var (
	// ErrShortPayload means the value holds fewer than FiletimeSize bytes.
	ErrShortPayload = errors.New("payload too short for a FILETIME")
	// ErrOutOfRange means the timestamp does not fit a four digit year.
	ErrOutOfRange = errors.New("timestamp out of representable range")
)

// FiletimeToTime converts Windows FILETIME ticks to a UTC time truncated
// to whole seconds. Ticks before 1970 yield dates before the Unix epoch;
// zero ticks yield 1601-01-01 00:00:00.
func FiletimeToTime(ft uint64) time.Time {
	seconds := int64(ft / ticksPerSecond)
	return time.Unix(seconds-epochDiff, 0).UTC()
}

// TimeToFiletime is the inverse of FiletimeToTime for times after 1601.
func TimeToFiletime(t time.Time) uint64 {
	return uint64(t.Unix()+epochDiff) * ticksPerSecond
}

// Decoder renders FILETIME values as calendar strings in a fixed location.
// It holds no mutable state and is safe for concurrent use.
type Decoder struct {
	loc *time.Location
}

// NewDecoder returns a Decoder rendering in loc; nil means UTC.
func NewDecoder(loc *time.Location) *Decoder {
	if loc == nil {
		loc = time.UTC
	}
	return &Decoder{loc: loc}
}

// Location reports where timestamps are rendered.
func (d *Decoder) Location() *time.Location {
	return d.loc
}

// DecodeTicks formats ticks as DateLayout.
func (d *Decoder) DecodeTicks(ticks uint64) (string, error) {
	t := FiletimeToTime(ticks).In(d.loc)
	if y := t.Year(); y < 0 || y > 9999 {
		return "", fmt.Errorf("year %d: %w", y, ErrOutOfRange)
	}
	return t.Format(DateLayout), nil
}

// Decode reads the little-endian FILETIME at the start of raw. Bytes past
// the first eight are ignored.
func (d *Decoder) Decode(raw []byte) (string, error) {
	if len(raw) < FiletimeSize {
		return "", fmt.Errorf("%d bytes: %w", len(raw), ErrShortPayload)
	}
	return d.DecodeTicks(binary.LittleEndian.Uint64(raw[:FiletimeSize]))
}
