package types

import (
	"errors"
	"math"
	"testing"
	"time"
)

func TestDiffSeconds(t *testing.T) {
	base := time.Date(2024, 7, 12, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  time.Time
		want int64
	}{
		{"Same instant", base, 0},
		{"Thirty seconds", base.Add(30 * time.Second), 30},
		{"Sub-second truncates", base.Add(30*time.Second + 900*time.Millisecond), 30},
		{"Half second before", base.Add(-500 * time.Millisecond), 0},
		{"One second before", base.Add(-time.Second), -1},
		{"One and a half seconds before", base.Add(-1500 * time.Millisecond), -1},
		{"Ten thousand years", base.AddDate(10000, 0, 0), base.AddDate(10000, 0, 0).Unix() - base.Unix()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiffSeconds(base, tt.end); got != tt.want {
				t.Errorf("DiffSeconds: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestDiffSecondsClampsWideSpans(t *testing.T) {
	tests := []struct {
		name       string
		start, end time.Time
		want       int64
	}{
		{"Forward past int64", time.Unix(math.MinInt64/2-10, 0), time.Unix(math.MaxInt64/2+10, 0), math.MaxInt64},
		{"Backward past int64", time.Unix(math.MaxInt64/2+10, 0), time.Unix(math.MinInt64/2-10, 0), math.MinInt64},
		{"Largest representable", time.Unix(0, 0), time.Unix(math.MaxInt64-10, 0), math.MaxInt64 - 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DiffSeconds(tt.start, tt.end); got != tt.want {
				t.Errorf("DiffSeconds: got %d, want %d", got, tt.want)
			}
		})
	}
}

func TestTimestampFormatting(t *testing.T) {
	ts := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if got := FormatTimestamp(ts); got != "2024-01-01 00:00:00" {
		t.Errorf("FormatTimestamp: got %q", got)
	}
	if got := FormatTimestamp(time.Time{}); got != "" {
		t.Errorf("FormatTimestamp(zero): got %q, want empty", got)
	}

	parsed, err := ParseTimestamp("2024-07-12 09:01:31")
	if err != nil {
		t.Fatalf("ParseTimestamp: %v", err)
	}
	if !parsed.Equal(time.Date(2024, 7, 12, 9, 1, 31, 0, time.UTC)) {
		t.Errorf("ParseTimestamp: got %v", parsed)
	}

	if _, err := ParseTimestamp("2024-07-12T09:01:31Z"); err == nil {
		t.Error("expected error for non-display layout")
	}
}

func TestErrorKinds(t *testing.T) {
	err := error(Capacity("No more spots."))

	if err.Error() != "No more spots." {
		t.Errorf("message: got %q", err.Error())
	}
	if !errors.Is(err, ErrCapacity) {
		t.Error("expected errors.Is(err, ErrCapacity)")
	}
	if errors.Is(err, ErrValidation) {
		t.Error("capacity error must not match ErrValidation")
	}

	var gerr *Error
	if !errors.As(err, &gerr) || gerr.Kind != ErrCapacity {
		t.Errorf("errors.As: got %+v", gerr)
	}
}
