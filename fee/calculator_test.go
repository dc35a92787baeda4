package fee_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/xraph/garage/fee"
	"github.com/xraph/garage/types"
)

func TestDefaultScheduleBoundaries(t *testing.T) {
	checkin := types.MustParseTimestamp("2024-07-12 09:00:00")

	tests := []struct {
		checkout string
		dollars  int64
	}{
		{"2024-07-12 09:00:00", 0},
		{"2024-07-12 09:00:01", 1},
		{"2024-07-12 09:00:29", 1},
		{"2024-07-12 09:00:30", 1},
		{"2024-07-12 09:00:31", 2},
		{"2024-07-12 09:00:59", 2},
		{"2024-07-12 09:01:00", 2},
		{"2024-07-12 09:01:01", 3},
		{"2024-07-12 09:01:29", 3},
		{"2024-07-12 09:01:30", 3},
		{"2024-07-12 09:01:31", 4},
		{"2024-07-12 09:01:59", 4},
		{"2024-07-12 09:02:00", 4},
		{"2024-07-12 09:02:01", 4},
		{"2025-12-31 11:59:59", 4},
	}

	s := fee.Default()
	for _, tt := range tests {
		t.Run(tt.checkout, func(t *testing.T) {
			got, err := s.Calculate(checkin, types.MustParseTimestamp(tt.checkout))
			if err != nil {
				t.Fatalf("Calculate: %v", err)
			}
			if got.Major() != tt.dollars {
				t.Errorf("fee: got %s, want %d dollars", got, tt.dollars)
			}
			if got.Currency != types.DefaultCurrency {
				t.Errorf("currency: got %q", got.Currency)
			}
		})
	}
}

func TestTenThousandYearsIsCapped(t *testing.T) {
	checkin := types.MustParseTimestamp("2024-07-12 09:00:00")
	got, err := fee.Default().Calculate(checkin, checkin.AddDate(10000, 0, 0))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !got.Equal(types.CAD(400)) {
		t.Errorf("fee: got %s, want C$4.00", got)
	}
}

func TestExtremeSpansStayCapped(t *testing.T) {
	tests := []struct {
		name              string
		checkin, checkout time.Time
	}{
		{"Near int64 seconds", time.Unix(0, 0), time.Unix(math.MaxInt64-10, 0)},
		{"Wider than int64 seconds", time.Unix(math.MinInt64/2-10, 0), time.Unix(math.MaxInt64/2+10, 0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := fee.Default().Calculate(tt.checkin, tt.checkout)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !got.Equal(types.CAD(400)) {
				t.Errorf("got %s, want %s", got, types.CAD(400))
			}
		})
	}
}

func TestBlocksDoesNotOverflow(t *testing.T) {
	if got := fee.Default().Blocks(math.MaxInt64); got != 4 {
		t.Errorf("capped Blocks: got %d, want 4", got)
	}

	uncapped := fee.Schedule{BlockSize: 30 * time.Second, BlockRate: types.CAD(100)}
	if got, want := uncapped.Blocks(math.MaxInt64), int64(math.MaxInt64/30+1); got != want {
		t.Errorf("uncapped Blocks: got %d, want %d", got, want)
	}
	if got := uncapped.Blocks(60); got != 2 {
		t.Errorf("uncapped Blocks(60): got %d, want 2", got)
	}
}

func TestCheckoutBeforeCheckin(t *testing.T) {
	checkin := types.MustParseTimestamp("2024-01-01 00:00:00")
	checkout := types.MustParseTimestamp("2023-12-31 23:59:59")

	_, err := fee.Default().Calculate(checkin, checkout)
	if !errors.Is(err, types.ErrTemporal) {
		t.Fatalf("expected ErrTemporal, got %v", err)
	}
	if err.Error() != "Checkout cannot take place before checkin." {
		t.Errorf("message: got %q", err.Error())
	}
}

func TestSubSecondEarlyCheckoutIsFree(t *testing.T) {
	checkin := types.MustParseTimestamp("2024-01-01 00:00:00")

	got, err := fee.Default().Calculate(checkin, checkin.Add(-500*time.Millisecond))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !got.IsZero() {
		t.Errorf("fee: got %s, want zero", got)
	}
}

func TestMonotonic(t *testing.T) {
	s := fee.Default()
	checkin := types.MustParseTimestamp("2024-07-12 09:00:00")

	prev := int64(0)
	for sec := 0; sec <= 600; sec++ {
		got, err := s.Calculate(checkin, checkin.Add(time.Duration(sec)*time.Second))
		if err != nil {
			t.Fatalf("Calculate(%ds): %v", sec, err)
		}
		if got.Amount < prev {
			t.Fatalf("fee decreased at %ds: %d < %d", sec, got.Amount, prev)
		}
		if sec >= 121 && got.Amount != 400 {
			t.Fatalf("fee at %ds: got %d, want capped 400", sec, got.Amount)
		}
		prev = got.Amount
	}
}

func TestCustomSchedule(t *testing.T) {
	s := fee.Schedule{BlockSize: time.Minute, BlockRate: types.USD(250)}
	checkin := types.MustParseTimestamp("2024-07-12 09:00:00")

	got, err := s.Calculate(checkin, checkin.Add(10*time.Minute+time.Second))
	if err != nil {
		t.Fatalf("Calculate: %v", err)
	}
	if !got.Equal(types.USD(2750)) {
		t.Errorf("uncapped fee: got %s, want $27.50", got)
	}

	if _, capped := s.MaxFee(); capped {
		t.Error("schedule without MaxBlocks should be uncapped")
	}
	if maxFee, capped := fee.Default().MaxFee(); !capped || !maxFee.Equal(types.CAD(400)) {
		t.Errorf("default MaxFee: got %s, %v", maxFee, capped)
	}
}

func TestScheduleValidate(t *testing.T) {
	tests := []struct {
		name    string
		s       fee.Schedule
		wantErr bool
	}{
		{"Default", fee.Default(), false},
		{"Zero block", fee.Schedule{BlockRate: types.CAD(100)}, true},
		{"Fractional block", fee.Schedule{BlockSize: 1500 * time.Millisecond, BlockRate: types.CAD(100)}, true},
		{"Negative rate", fee.Schedule{BlockSize: time.Second, BlockRate: types.CAD(-1)}, true},
		{"Missing currency", fee.Schedule{BlockSize: time.Second, BlockRate: types.Money{Amount: 1}}, true},
		{"Negative cap", fee.Schedule{BlockSize: time.Second, BlockRate: types.CAD(1), MaxBlocks: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.s.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate: got %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, types.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestCalculatorFunc(t *testing.T) {
	var c fee.Calculator = fee.CalculatorFunc(func(_, _ time.Time) (types.Money, error) {
		return types.CAD(100), nil
	})

	got, err := c.Calculate(time.Time{}, time.Time{})
	if err != nil || !got.Equal(types.CAD(100)) {
		t.Errorf("CalculatorFunc: got %s, %v", got, err)
	}
}
