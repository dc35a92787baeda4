// Package store defines where a garage keeps its occupants.
package store

import (
	"context"
	"errors"

	"github.com/xraph/garage/spot"
)

// ErrClosed is returned by every call on a closed store.
var ErrClosed = errors.New("garage: store is closed")

// Store holds the occupied spots of one garage, keyed by license plate.
//
// Each mutating call applies completely or not at all. Callers own the
// capacity rule; a Store only guards plate uniqueness.
type Store interface {
	// Get returns the spot parked under plate, or an ErrNotFound error.
	Get(ctx context.Context, plate string) (*spot.Spot, error)
	// List returns occupants in check-in order.
	List(ctx context.Context, opts spot.ListOpts) ([]*spot.Spot, error)
	Count(ctx context.Context) (int, error)

	// Insert adds s, or returns an ErrDuplicatePlate error if the plate is taken.
	Insert(ctx context.Context, s *spot.Spot) error
	// Remove deletes and returns the spot parked under plate, or an ErrNotFound error.
	Remove(ctx context.Context, plate string) (*spot.Spot, error)

	Ping(ctx context.Context) error
	Close() error
}
