package garage

import (
	"github.com/xraph/garage/spot"
	"github.com/xraph/garage/types"
)

// Re-export common types for convenience so users don't have to import the
// spot and types packages.

// Money is re-exported from types package.
type Money = types.Money

// Spot is a car parked in the garage.
type Spot = spot.Spot

// CheckedOutCar is a car that has left, with its fee.
type CheckedOutCar = spot.CheckedOutCar

// Payload is the input to Checkin and Checkout.
type Payload = spot.Payload

// Re-export Money constructors
var (
	CAD  = types.CAD
	USD  = types.USD
	Zero = types.Zero
)

// Re-export timestamp helpers
var (
	ParseTimestamp     = types.ParseTimestamp
	FormatTimestamp    = types.FormatTimestamp
	MustParseTimestamp = types.MustParseTimestamp
)

