package audithook

// Action constants for audit events.
const (
	// Occupancy actions
	ActionCarCheckedIn     = "car.checked_in"
	ActionCarCheckedOut    = "car.checked_out"
	ActionCheckinRejected  = "checkin.rejected"
	ActionCheckoutRejected = "checkout.rejected"

	// Garage actions
	ActionGarageStarted = "garage.started"
	ActionGarageStopped = "garage.stopped"
	ActionGarageFull    = "garage.full"
)

// Resource constants for audit events.
const (
	ResourceSpot    = "spot"
	ResourceReceipt = "receipt"
	ResourceGarage  = "garage"
)

// Category constants for audit events.
const (
	CategoryOccupancy = "occupancy"
	CategoryBilling   = "billing"
	CategoryLifecycle = "lifecycle"
)

// Severity levels for audit events.
const (
	SeverityInfo    = "info"
	SeverityWarning = "warning"
)

// Outcome values for audit events.
const (
	OutcomeSuccess = "success"
	OutcomeFailure = "failure"
)
