package plugin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/xraph/garage/id"
	"github.com/xraph/garage/spot"
)

// DefaultTimeout bounds a single hook call.
const DefaultTimeout = 5 * time.Second

// Registry manages registered plugins and dispatches hooks to them.
// Hook lists are cached per interface at registration time.
type Registry struct {
	mu      sync.RWMutex
	plugins []Plugin
	logger  *slog.Logger
	timeout time.Duration

	onInit             []OnInit
	onShutdown         []OnShutdown
	onCarCheckedIn     []OnCarCheckedIn
	onCarCheckedOut    []OnCarCheckedOut
	onCheckinRejected  []OnCheckinRejected
	onCheckoutRejected []OnCheckoutRejected
	onGarageFull       []OnGarageFull
}

// NewRegistry creates a new plugin registry.
func NewRegistry() *Registry {
	return &Registry{
		logger:  slog.Default(),
		timeout: DefaultTimeout,
	}
}

// WithLogger sets the logger for the registry.
func (r *Registry) WithLogger(logger *slog.Logger) *Registry {
	r.logger = logger
	return r
}

// WithTimeout sets the per-hook timeout. Non-positive values are ignored.
func (r *Registry) WithTimeout(d time.Duration) *Registry {
	if d > 0 {
		r.timeout = d
	}
	return r
}

// Register adds a plugin to the registry and caches its hook interfaces.
func (r *Registry) Register(p Plugin) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.plugins {
		if existing.Name() == p.Name() {
			return fmt.Errorf("plugin: duplicate registration: %s", p.Name())
		}
	}

	r.plugins = append(r.plugins, p)

	var hooks []string
	if v, ok := p.(OnInit); ok {
		r.onInit = append(r.onInit, v)
		hooks = append(hooks, "OnInit")
	}
	if v, ok := p.(OnShutdown); ok {
		r.onShutdown = append(r.onShutdown, v)
		hooks = append(hooks, "OnShutdown")
	}
	if v, ok := p.(OnCarCheckedIn); ok {
		r.onCarCheckedIn = append(r.onCarCheckedIn, v)
		hooks = append(hooks, "OnCarCheckedIn")
	}
	if v, ok := p.(OnCarCheckedOut); ok {
		r.onCarCheckedOut = append(r.onCarCheckedOut, v)
		hooks = append(hooks, "OnCarCheckedOut")
	}
	if v, ok := p.(OnCheckinRejected); ok {
		r.onCheckinRejected = append(r.onCheckinRejected, v)
		hooks = append(hooks, "OnCheckinRejected")
	}
	if v, ok := p.(OnCheckoutRejected); ok {
		r.onCheckoutRejected = append(r.onCheckoutRejected, v)
		hooks = append(hooks, "OnCheckoutRejected")
	}
	if v, ok := p.(OnGarageFull); ok {
		r.onGarageFull = append(r.onGarageFull, v)
		hooks = append(hooks, "OnGarageFull")
	}

	r.logger.Info("plugin registered",
		"name", p.Name(),
		"interfaces", hooks,
	)

	return nil
}

// Get returns a plugin by name, or nil.
func (r *Registry) Get(name string) Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.plugins {
		if p.Name() == name {
			return p
		}
	}
	return nil
}

// List returns all registered plugins.
func (r *Registry) List() []Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Plugin, len(r.plugins))
	copy(result, r.plugins)
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}

// ──────────────────────────────────────────────────
// Event emission
// ──────────────────────────────────────────────────

// EmitInit calls OnInit for all plugins that implement it.
func (r *Registry) EmitInit(ctx context.Context, garageID id.GarageID) {
	r.mu.RLock()
	plugins := r.onInit
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(ctx, p.Name(), "OnInit", func(ctx context.Context) error {
			return p.OnInit(ctx, garageID)
		})
	}
}

// EmitShutdown calls OnShutdown for all plugins that implement it.
func (r *Registry) EmitShutdown(ctx context.Context, garageID id.GarageID) {
	r.mu.RLock()
	plugins := r.onShutdown
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(ctx, p.Name(), "OnShutdown", func(ctx context.Context) error {
			return p.OnShutdown(ctx, garageID)
		})
	}
}

// EmitCarCheckedIn emits a car checked in event.
func (r *Registry) EmitCarCheckedIn(ctx context.Context, garageID id.GarageID, s *spot.Spot) {
	r.mu.RLock()
	plugins := r.onCarCheckedIn
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(ctx, p.Name(), "OnCarCheckedIn", func(ctx context.Context) error {
			return p.OnCarCheckedIn(ctx, garageID, s)
		})
	}
}

// EmitCarCheckedOut emits a car checked out event.
func (r *Registry) EmitCarCheckedOut(ctx context.Context, garageID id.GarageID, car *spot.CheckedOutCar) {
	r.mu.RLock()
	plugins := r.onCarCheckedOut
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(ctx, p.Name(), "OnCarCheckedOut", func(ctx context.Context) error {
			return p.OnCarCheckedOut(ctx, garageID, car)
		})
	}
}

// EmitCheckinRejected emits a check-in rejected event.
func (r *Registry) EmitCheckinRejected(ctx context.Context, garageID id.GarageID, payload spot.Payload, cause error) {
	r.mu.RLock()
	plugins := r.onCheckinRejected
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(ctx, p.Name(), "OnCheckinRejected", func(ctx context.Context) error {
			return p.OnCheckinRejected(ctx, garageID, payload, cause)
		})
	}
}

// EmitCheckoutRejected emits a checkout rejected event.
func (r *Registry) EmitCheckoutRejected(ctx context.Context, garageID id.GarageID, payload spot.Payload, cause error) {
	r.mu.RLock()
	plugins := r.onCheckoutRejected
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(ctx, p.Name(), "OnCheckoutRejected", func(ctx context.Context) error {
			return p.OnCheckoutRejected(ctx, garageID, payload, cause)
		})
	}
}

// EmitGarageFull emits a garage full event.
func (r *Registry) EmitGarageFull(ctx context.Context, garageID id.GarageID, totalSpots int) {
	r.mu.RLock()
	plugins := r.onGarageFull
	r.mu.RUnlock()

	for _, p := range plugins {
		r.call(ctx, p.Name(), "OnGarageFull", func(ctx context.Context) error {
			return p.OnGarageFull(ctx, garageID, totalSpots)
		})
	}
}

// call runs one hook and logs its failure. Hooks never fail the caller.
func (r *Registry) call(ctx context.Context, pluginName, hook string, fn func(context.Context) error) {
	if err := r.callWithTimeout(ctx, pluginName, fn); err != nil {
		r.logger.Warn("plugin "+hook+" failed",
			"plugin", pluginName,
			"error", err,
		)
	}
}

// callWithTimeout calls a plugin function with a timeout. The hook's context
// is cancelled when the call returns or times out.
func (r *Registry) callWithTimeout(ctx context.Context, pluginName string, fn func(context.Context) error) error {
	hookCtx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	done := make(chan error, 1)

	go func() {
		done <- fn(hookCtx)
	}()

	select {
	case err := <-done:
		return err
	case <-hookCtx.Done():
		if errors.Is(hookCtx.Err(), context.DeadlineExceeded) && ctx.Err() == nil {
			return fmt.Errorf("plugin timeout: %s", pluginName)
		}
		return ctx.Err()
	}
}
