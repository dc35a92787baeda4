package garage

import (
	"errors"

	"github.com/xraph/garage/fee"
	"github.com/xraph/garage/store"
	"github.com/xraph/garage/types"
)

// Sentinel errors. Every rejection wraps exactly one of these, so callers
// branch with errors.Is and show err.Error() to the driver.
var (
	ErrValidation     = types.ErrValidation
	ErrCapacity       = types.ErrCapacity
	ErrDuplicatePlate = types.ErrDuplicatePlate
	ErrNotFound       = types.ErrNotFound
	ErrTemporal       = types.ErrTemporal

	// Store errors
	ErrStoreClosed = store.ErrClosed
)

// Messages carried by rejections raised in this package.
const (
	MsgNoMoreSpots           = "No more spots."
	MsgTooManyCars           = "Too many cars for that number of spots."
	MsgTotalSpotsNotPositive = "Total spots must be positive."
	MsgStoreNotEmpty         = "Store must be empty."
	MsgMissingCheckoutTime   = "Missing check out time."
	MsgCheckoutBeforeCheckin = "Checkout must not take place before checkin."

	// MsgNegativeStay is returned by the fee calculator.
	MsgNegativeStay = fee.MsgCheckoutBeforeCheckin
)

// Error is a rejection with a driver-facing message.
type Error = types.Error

// IsValidation returns true if the input was malformed.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsCapacity returns true if the garage has no room.
func IsCapacity(err error) bool { return errors.Is(err, ErrCapacity) }

// IsDuplicatePlate returns true if the plate is already parked.
func IsDuplicatePlate(err error) bool { return errors.Is(err, ErrDuplicatePlate) }

// IsNotFound returns true if the plate is not parked.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsTemporal returns true if the timestamps are out of order.
func IsTemporal(err error) bool { return errors.Is(err, ErrTemporal) }

// IsRejection returns true if err is any business rejection, as opposed to
// a store or context failure.
func IsRejection(err error) bool {
	return IsValidation(err) ||
		IsCapacity(err) ||
		IsDuplicatePlate(err) ||
		IsNotFound(err) ||
		IsTemporal(err)
}
