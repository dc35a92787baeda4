package types

import (
	"math"
	"time"
)

// DisplayLayout renders timestamps as YYYY-MM-DD HH:mm:ss.
const DisplayLayout = "2006-01-02 15:04:05"

// FormatTimestamp formats t with DisplayLayout. The zero time formats as "".
func FormatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(DisplayLayout)
}

// ParseTimestamp parses a DisplayLayout string as UTC.
func ParseTimestamp(s string) (time.Time, error) {
	return time.ParseInLocation(DisplayLayout, s, time.UTC)
}

// MustParseTimestamp is like ParseTimestamp but panics on error.
// Use for hardcoded values.
func MustParseTimestamp(s string) time.Time {
	t, err := ParseTimestamp(s)
	if err != nil {
		panic(err)
	}
	return t
}

// DiffSeconds returns the whole seconds from start to end, truncated toward
// zero. It is negative when end precedes start by at least a second.
// Unlike time.Sub it does not saturate for gaps beyond ~292 years; spans
// wider than int64 seconds clamp to math.MaxInt64 or math.MinInt64.
func DiffSeconds(start, end time.Time) int64 {
	a, b := end.Unix(), start.Unix()
	secs := a - b
	if (a^b)&(a^secs) < 0 {
		if a >= 0 {
			return math.MaxInt64
		}
		return math.MinInt64
	}

	nanos := end.Nanosecond() - start.Nanosecond()
	switch {
	case secs > 0 && nanos < 0:
		secs--
	case secs < 0 && nanos > 0:
		secs++
	}
	return secs
}
