// Package spot defines the records a garage keeps for parked cars.
package spot

import (
	"time"

	"github.com/xraph/garage/id"
	"github.com/xraph/garage/types"
)

// Validation messages shared by check-in and initialization.
const (
	MsgMissingPlate       = "Missing license plate."
	MsgMissingCheckinTime = "Missing check in time."
)

// Spot is one occupied parking spot.
type Spot struct {
	LicensePlate string    `json:"license_plate" yaml:"license_plate"`
	CheckinTime  time.Time `json:"checkin_time" yaml:"checkin_time"`
}

// Validate reports a missing plate or check-in time.
func (s Spot) Validate() error {
	if s.LicensePlate == "" {
		return types.Validation(MsgMissingPlate)
	}
	if s.CheckinTime.IsZero() {
		return types.Validation(MsgMissingCheckinTime)
	}
	return nil
}

// CheckedOutCar is the result of a successful checkout. It is not stored.
type CheckedOutCar struct {
	Spot
	ReceiptID    id.ReceiptID `json:"receipt_id"`
	CheckoutTime time.Time    `json:"checkout_time"`
	Fees         types.Money  `json:"fees"`
}

// Duration returns how long the car was parked.
func (c CheckedOutCar) Duration() time.Duration {
	return c.CheckoutTime.Sub(c.CheckinTime)
}

// Payload is what the gate submits for a check-in or checkout.
// A zero Timestamp means the time was not provided.
type Payload struct {
	LicensePlate string    `json:"license_plate"`
	Timestamp    time.Time `json:"timestamp"`
}

// ListOpts pages through occupants in check-in order.
type ListOpts struct {
	Limit  int
	Offset int
}

// Occupancy messages.
const (
	MsgDuplicatePlate = "This car is already parked here."
	MsgNotParked      = "No such car is parked here."
)
