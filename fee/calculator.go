// Package fee computes parking fees from stay duration.
//
// The default schedule bills one dollar per started 30-second block and
// stops charging after four blocks:
//
//	0s        -> 0
//	1s..30s   -> 1
//	31s..60s  -> 2
//	61s..90s  -> 3
//	91s and up -> 4
package fee

import (
	"errors"
	"time"

	"github.com/xraph/garage/types"
)

// MsgCheckoutBeforeCheckin is returned for negative stays.
const MsgCheckoutBeforeCheckin = "Checkout cannot take place before checkin."

// Default schedule values.
const (
	DefaultBlockSize = 30 * time.Second
	DefaultBlockRate = 100 // minor units per block
	DefaultMaxBlocks = 4
)

// Calculator maps a stay to a fee.
type Calculator interface {
	Calculate(checkin, checkout time.Time) (types.Money, error)
}

// CalculatorFunc adapts a plain function to a Calculator.
type CalculatorFunc func(checkin, checkout time.Time) (types.Money, error)

// Calculate implements Calculator.
func (f CalculatorFunc) Calculate(checkin, checkout time.Time) (types.Money, error) {
	return f(checkin, checkout)
}

// Schedule is a block tariff. Partial blocks round up.
type Schedule struct {
	BlockSize time.Duration `json:"block_size"`
	BlockRate types.Money   `json:"block_rate"`
	// MaxBlocks caps the billed blocks. Zero means uncapped.
	MaxBlocks int64 `json:"max_blocks"`
}

var _ Calculator = Schedule{}

// Default returns the standard garage tariff.
func Default() Schedule {
	return Schedule{
		BlockSize: DefaultBlockSize,
		BlockRate: types.Money{Amount: DefaultBlockRate, Currency: types.DefaultCurrency},
		MaxBlocks: DefaultMaxBlocks,
	}
}

// Calculate returns the fee for a stay from checkin to checkout.
// Durations are measured in whole seconds; a negative duration is an
// ErrTemporal failure and zero costs nothing.
func (s Schedule) Calculate(checkin, checkout time.Time) (types.Money, error) {
	diff := types.DiffSeconds(checkin, checkout)
	if diff < 0 {
		return types.Money{}, types.Temporal(MsgCheckoutBeforeCheckin)
	}

	return s.BlockRate.Multiply(s.Blocks(diff)), nil
}

// Blocks returns the billed block count for a stay of diff seconds.
func (s Schedule) Blocks(diff int64) int64 {
	if diff <= 0 {
		return 0
	}
	size := int64(s.BlockSize / time.Second)
	if size < 1 {
		size = 1
	}
	blocks := diff / size
	if s.MaxBlocks > 0 && blocks >= s.MaxBlocks {
		return s.MaxBlocks
	}
	if diff%size != 0 {
		blocks++
	}
	if s.MaxBlocks > 0 && blocks > s.MaxBlocks {
		blocks = s.MaxBlocks
	}
	return blocks
}

// MaxFee returns the most a single stay can cost, and false when uncapped.
func (s Schedule) MaxFee() (types.Money, bool) {
	if s.MaxBlocks <= 0 {
		return types.Money{}, false
	}
	return s.BlockRate.Multiply(s.MaxBlocks), true
}

// Validate checks the schedule can be used for billing.
func (s Schedule) Validate() error {
	var errs []error
	if s.BlockSize < time.Second {
		errs = append(errs, types.Validation("Block size must be at least one second."))
	} else if s.BlockSize%time.Second != 0 {
		errs = append(errs, types.Validation("Block size must be a whole number of seconds."))
	}
	if s.BlockRate.IsNegative() {
		errs = append(errs, types.Validation("Block rate must not be negative."))
	}
	if s.BlockRate.Currency == "" {
		errs = append(errs, types.Validation("Block rate needs a currency."))
	}
	if s.MaxBlocks < 0 {
		errs = append(errs, types.Validation("Max blocks must not be negative."))
	}
	return errors.Join(errs...)
}
