package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/xraph/garage/spot"
	"github.com/xraph/garage/store"
	"github.com/xraph/garage/types"
)

// compile-time interface check
var _ store.Store = (*Store)(nil)

// Store keeps occupants in process memory for the life of the session.
type Store struct {
	mu sync.RWMutex

	spots  map[string]spot.Spot
	order  []string // plates in check-in order
	closed bool
}

func New() *Store {
	return &Store{
		spots: make(map[string]spot.Spot),
		order: make([]string, 0),
	}
}

func (s *Store) Get(_ context.Context, plate string) (*spot.Spot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrClosed
	}
	if sp, ok := s.spots[plate]; ok {
		return &sp, nil
	}
	return nil, types.NotFound(spot.MsgNotParked)
}

func (s *Store) List(_ context.Context, opts spot.ListOpts) ([]*spot.Spot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, store.ErrClosed
	}

	start := opts.Offset
	if start > len(s.order) {
		start = len(s.order)
	}
	end := start + opts.Limit
	if opts.Limit == 0 || end > len(s.order) {
		end = len(s.order)
	}

	result := make([]*spot.Spot, 0, end-start)
	for _, plate := range s.order[start:end] {
		sp := s.spots[plate]
		result = append(result, &sp)
	}
	return result, nil
}

func (s *Store) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, store.ErrClosed
	}
	return len(s.order), nil
}

func (s *Store) Insert(_ context.Context, sp *spot.Spot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return store.ErrClosed
	}
	if _, exists := s.spots[sp.LicensePlate]; exists {
		return types.DuplicatePlate(spot.MsgDuplicatePlate)
	}
	s.spots[sp.LicensePlate] = *sp
	s.order = append(s.order, sp.LicensePlate)
	return nil
}

func (s *Store) Remove(_ context.Context, plate string) (*spot.Spot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, store.ErrClosed
	}
	sp, ok := s.spots[plate]
	if !ok {
		return nil, types.NotFound(spot.MsgNotParked)
	}
	delete(s.spots, plate)
	if i := slices.Index(s.order, plate); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
	return &sp, nil
}

func (s *Store) Ping(_ context.Context) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return store.ErrClosed
	}
	return nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.closed = true
	return nil
}
