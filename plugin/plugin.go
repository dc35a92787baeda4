// Package plugin provides lifecycle hooks for garages.
// A plugin implements Plugin plus any of the hook interfaces it cares about.
package plugin

import (
	"context"

	"github.com/xraph/garage/id"
	"github.com/xraph/garage/spot"
)

// Plugin is the base interface that all plugins must implement.
type Plugin interface {
	Name() string
}

// ──────────────────────────────────────────────────
// Lifecycle hooks
// ──────────────────────────────────────────────────

// OnInit is called when the garage starts.
type OnInit interface {
	Plugin
	OnInit(ctx context.Context, garageID id.GarageID) error
}

// OnShutdown is called when the garage stops.
type OnShutdown interface {
	Plugin
	OnShutdown(ctx context.Context, garageID id.GarageID) error
}

// ──────────────────────────────────────────────────
// Occupancy hooks
// ──────────────────────────────────────────────────

// OnCarCheckedIn is called after a car takes a spot.
type OnCarCheckedIn interface {
	Plugin
	OnCarCheckedIn(ctx context.Context, garageID id.GarageID, s *spot.Spot) error
}

// OnCarCheckedOut is called after a car leaves and its fee is computed.
type OnCarCheckedOut interface {
	Plugin
	OnCarCheckedOut(ctx context.Context, garageID id.GarageID, car *spot.CheckedOutCar) error
}

// OnCheckinRejected is called when a check-in fails validation.
type OnCheckinRejected interface {
	Plugin
	OnCheckinRejected(ctx context.Context, garageID id.GarageID, payload spot.Payload, err error) error
}

// OnCheckoutRejected is called when a checkout fails validation.
type OnCheckoutRejected interface {
	Plugin
	OnCheckoutRejected(ctx context.Context, garageID id.GarageID, payload spot.Payload, err error) error
}

// OnGarageFull is called when a check-in takes the last free spot.
type OnGarageFull interface {
	Plugin
	OnGarageFull(ctx context.Context, garageID id.GarageID, totalSpots int) error
}
