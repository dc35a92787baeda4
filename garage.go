package garage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/garage/fee"
	"github.com/xraph/garage/id"
	"github.com/xraph/garage/plugin"
	"github.com/xraph/garage/spot"
	"github.com/xraph/garage/store"
	"github.com/xraph/garage/store/memory"
	"github.com/xraph/garage/types"
)

// Garage is a fixed-capacity parking garage.
// It is the only writer of its store.
type Garage struct {
	id      id.GarageID
	total   int
	store   store.Store
	fees    fee.Calculator
	plugins *plugin.Registry
	logger  *slog.Logger
	now     func() time.Time

	// pending holds WithPlugin plugins until every option has run.
	pending []plugin.Plugin

	// mu serializes validate-then-mutate sequences.
	mu sync.Mutex
}

// New validates snap and returns a garage holding its occupants.
func New(snap Snapshot, opts ...Option) (*Garage, error) {
	g := &Garage{
		id:      id.NewGarageID(),
		total:   snap.TotalSpots,
		fees:    fee.Default(),
		plugins: plugin.NewRegistry(),
		logger:  slog.Default(),
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(g)
	}

	g.plugins.WithLogger(g.logger)
	for _, p := range g.pending {
		_ = g.plugins.Register(p) //nolint:errcheck // best-effort plugin registration during init
	}
	g.pending = nil

	if g.store == nil {
		g.store = memory.New()
	}

	if err := validateSnapshot(snap); err != nil {
		return nil, err
	}
	if s, ok := g.fees.(fee.Schedule); ok {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	ctx := context.Background()
	n, err := g.store.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("garage: count occupants: %w", err)
	}
	if n > 0 {
		return nil, types.Validation(MsgStoreNotEmpty)
	}
	for i := range snap.Occupants {
		occupant := snap.Occupants[i]
		if err := g.store.Insert(ctx, &occupant); err != nil {
			return nil, fmt.Errorf("garage: seed %q: %w", occupant.LicensePlate, err)
		}
	}

	return g, nil
}

func validateSnapshot(snap Snapshot) error {
	if snap.TotalSpots <= 0 {
		return types.Validation(MsgTotalSpotsNotPositive)
	}
	if len(snap.Occupants) > snap.TotalSpots {
		return types.Capacity(MsgTooManyCars)
	}

	seen := make(map[string]struct{}, len(snap.Occupants))
	for _, occupant := range snap.Occupants {
		if err := occupant.Validate(); err != nil {
			return err
		}
		if _, dup := seen[occupant.LicensePlate]; dup {
			return types.DuplicatePlate(spot.MsgDuplicatePlate)
		}
		seen[occupant.LicensePlate] = struct{}{}
	}
	return nil
}

// Option configures a Garage.
type Option func(*Garage)

// WithStore sets the occupancy store. It must be empty.
func WithStore(s store.Store) Option {
	return func(g *Garage) {
		g.store = s
	}
}

// WithFeeCalculator replaces the default fee schedule.
func WithFeeCalculator(c fee.Calculator) Option {
	return func(g *Garage) {
		g.fees = c
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Garage) {
		g.logger = logger
	}
}

// WithPlugin registers a plugin. Plugins are registered after all options
// are applied, in the order given.
func WithPlugin(p plugin.Plugin) Option {
	return func(g *Garage) {
		g.pending = append(g.pending, p)
	}
}

// WithPluginTimeout bounds each plugin hook call.
func WithPluginTimeout(d time.Duration) Option {
	return func(g *Garage) {
		g.plugins.WithTimeout(d)
	}
}

// WithClock sets the clock used by CheckinNow and CheckoutNow.
func WithClock(now func() time.Time) Option {
	return func(g *Garage) {
		g.now = now
	}
}

// Start checks the store and initializes plugins.
func (g *Garage) Start(ctx context.Context) error {
	if err := g.store.Ping(ctx); err != nil {
		return fmt.Errorf("garage: ping store: %w", err)
	}

	g.plugins.EmitInit(ctx, g.id)

	g.logger.Info("garage started",
		"garage_id", g.id.String(),
		"total_spots", g.total,
		"plugins", g.plugins.Count(),
	)
	return nil
}

// Stop shuts plugins down and closes the store.
func (g *Garage) Stop(ctx context.Context) error {
	g.plugins.EmitShutdown(ctx, g.id)

	g.logger.Info("garage stopped", "garage_id", g.id.String())
	return g.store.Close()
}

// ID returns the garage's identifier.
func (g *Garage) ID() id.GarageID { return g.id }

// TotalSpots returns the capacity.
func (g *Garage) TotalSpots() int { return g.total }

// Plugins returns the plugin registry.
func (g *Garage) Plugins() *plugin.Registry { return g.plugins }

// ──────────────────────────────────────────────────
// Check-in / checkout
// ──────────────────────────────────────────────────

// Checkin parks the car described by p.
//
// Checks run in this order and the first failure wins: free capacity,
// license plate present, timestamp present, plate not already parked.
func (g *Garage) Checkin(ctx context.Context, p spot.Payload) (*spot.Spot, error) {
	parked, full, err := g.checkin(ctx, p)
	if err != nil {
		g.plugins.EmitCheckinRejected(ctx, g.id, p, err)
		return nil, err
	}

	g.logger.Debug("car checked in",
		"garage_id", g.id.String(),
		"plate", parked.LicensePlate,
		"checkin_time", types.FormatTimestamp(parked.CheckinTime),
	)

	event := *parked
	g.plugins.EmitCarCheckedIn(ctx, g.id, &event)
	if full {
		g.plugins.EmitGarageFull(ctx, g.id, g.total)
	}
	return parked, nil
}

func (g *Garage) checkin(ctx context.Context, p spot.Payload) (*spot.Spot, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	n, err := g.store.Count(ctx)
	if err != nil {
		return nil, false, fmt.Errorf("garage: count occupants: %w", err)
	}
	if n >= g.total {
		return nil, false, types.Capacity(MsgNoMoreSpots)
	}
	if p.LicensePlate == "" {
		return nil, false, types.Validation(spot.MsgMissingPlate)
	}
	if p.Timestamp.IsZero() {
		return nil, false, types.Validation(spot.MsgMissingCheckinTime)
	}

	_, err = g.store.Get(ctx, p.LicensePlate)
	switch {
	case err == nil:
		return nil, false, types.DuplicatePlate(spot.MsgDuplicatePlate)
	case !errors.Is(err, types.ErrNotFound):
		return nil, false, fmt.Errorf("garage: look up %q: %w", p.LicensePlate, err)
	}

	parked := &spot.Spot{
		LicensePlate: p.LicensePlate,
		CheckinTime:  p.Timestamp,
	}
	if err := g.store.Insert(ctx, parked); err != nil {
		return nil, false, fmt.Errorf("garage: park %q: %w", p.LicensePlate, err)
	}
	return parked, n+1 == g.total, nil
}

// Checkout releases the spot held by p.LicensePlate and bills the stay.
//
// Checks run in this order: plate parked, timestamp present, timestamp not
// before check-in. A checkout at the check-in instant is a free stay.
func (g *Garage) Checkout(ctx context.Context, p spot.Payload) (*spot.CheckedOutCar, error) {
	car, err := g.checkout(ctx, p)
	if err != nil {
		g.plugins.EmitCheckoutRejected(ctx, g.id, p, err)
		return nil, err
	}

	g.logger.Debug("car checked out",
		"garage_id", g.id.String(),
		"plate", car.LicensePlate,
		"receipt_id", car.ReceiptID.String(),
		"duration", car.Duration(),
		"fees", car.Fees.String(),
	)

	event := *car
	g.plugins.EmitCarCheckedOut(ctx, g.id, &event)
	return car, nil
}

func (g *Garage) checkout(ctx context.Context, p spot.Payload) (*spot.CheckedOutCar, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	occupant, err := g.lookup(ctx, p.LicensePlate)
	if err != nil {
		return nil, err
	}
	if p.Timestamp.IsZero() {
		return nil, types.Validation(MsgMissingCheckoutTime)
	}
	if p.Timestamp.Before(occupant.CheckinTime) {
		return nil, types.Temporal(MsgCheckoutBeforeCheckin)
	}

	fees, err := g.fees.Calculate(occupant.CheckinTime, p.Timestamp)
	if err != nil {
		return nil, err
	}

	removed, err := g.store.Remove(ctx, p.LicensePlate)
	if err != nil {
		return nil, fmt.Errorf("garage: release %q: %w", p.LicensePlate, err)
	}

	return &spot.CheckedOutCar{
		Spot:         *removed,
		ReceiptID:    id.NewReceiptID(),
		CheckoutTime: p.Timestamp,
		Fees:         fees,
	}, nil
}

// CheckinNow checks plate in at the garage clock's current time.
func (g *Garage) CheckinNow(ctx context.Context, plate string) (*spot.Spot, error) {
	return g.Checkin(ctx, spot.Payload{LicensePlate: plate, Timestamp: g.now()})
}

// CheckoutNow checks plate out at the garage clock's current time.
func (g *Garage) CheckoutNow(ctx context.Context, plate string) (*spot.CheckedOutCar, error) {
	return g.Checkout(ctx, spot.Payload{LicensePlate: plate, Timestamp: g.now()})
}

// PreviewFees returns what plate would owe if it left at the given time.
// It never changes the garage. A draft time before check-in yields the
// calculator's ErrTemporal error rather than a fee.
func (g *Garage) PreviewFees(ctx context.Context, plate string, at time.Time) (types.Money, error) {
	occupant, err := g.lookup(ctx, plate)
	if err != nil {
		return types.Money{}, err
	}
	return g.fees.Calculate(occupant.CheckinTime, at)
}

// ──────────────────────────────────────────────────
// Queries
// ──────────────────────────────────────────────────

// State returns a copy of the current occupancy.
func (g *Garage) State(ctx context.Context) (Snapshot, error) {
	spots, err := g.store.List(ctx, spot.ListOpts{})
	if err != nil {
		return Snapshot{}, fmt.Errorf("garage: list occupants: %w", err)
	}

	snap := Snapshot{
		TotalSpots: g.total,
		Occupants:  make([]spot.Spot, 0, len(spots)),
	}
	for _, s := range spots {
		snap.Occupants = append(snap.Occupants, *s)
	}
	return snap, nil
}

// Occupants pages through parked cars in check-in order.
func (g *Garage) Occupants(ctx context.Context, opts spot.ListOpts) ([]*spot.Spot, error) {
	spots, err := g.store.List(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("garage: list occupants: %w", err)
	}
	return spots, nil
}

// Occupant returns the spot held by plate.
func (g *Garage) Occupant(ctx context.Context, plate string) (*spot.Spot, error) {
	return g.lookup(ctx, plate)
}

// FreeSpots returns how many spots are open.
func (g *Garage) FreeSpots(ctx context.Context) (int, error) {
	n, err := g.store.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("garage: count occupants: %w", err)
	}
	return g.total - n, nil
}

func (g *Garage) lookup(ctx context.Context, plate string) (*spot.Spot, error) {
	occupant, err := g.store.Get(ctx, plate)
	switch {
	case errors.Is(err, types.ErrNotFound):
		return nil, types.NotFound(spot.MsgNotParked)
	case err != nil:
		return nil, fmt.Errorf("garage: look up %q: %w", plate, err)
	}
	return occupant, nil
}

// Fee bills a stay with the default schedule.
func Fee(checkin, checkout time.Time) (types.Money, error) {
	return fee.Default().Calculate(checkin, checkout)
}
