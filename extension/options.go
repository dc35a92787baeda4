package extension

import (
	"time"

	"github.com/xraph/garage"
	audithook "github.com/xraph/garage/audit_hook"
	"github.com/xraph/garage/observability"
	"github.com/xraph/garage/plugin"
	"github.com/xraph/garage/store"
)

// Option configures the garage Forge extension.
type Option func(*Extension)

// WithStore sets the store for the garage.
func WithStore(s store.Store) Option {
	return func(e *Extension) {
		e.store = s
	}
}

// WithGarageOption passes a garage.Option through to the underlying garage.
func WithGarageOption(opt garage.Option) Option {
	return func(e *Extension) {
		e.garageOpts = append(e.garageOpts, opt)
	}
}

// WithPlugin registers a garage plugin.
func WithPlugin(p plugin.Plugin) Option {
	return func(e *Extension) {
		e.garageOpts = append(e.garageOpts, garage.WithPlugin(p))
	}
}

// WithMetricFactory records occupancy metrics through factory.
func WithMetricFactory(factory observability.MetricFactory) Option {
	return WithPlugin(observability.NewMetricsExtension(factory))
}

// WithAuditRecorder sends occupancy events to r.
func WithAuditRecorder(r audithook.Recorder, opts ...audithook.Option) Option {
	return WithPlugin(audithook.New(r, opts...))
}

// WithConfig sets the Forge extension configuration.
func WithConfig(cfg Config) Option {
	return func(e *Extension) { e.config = cfg }
}

// WithTotalSpots sets the garage capacity.
func WithTotalSpots(n int) Option {
	return func(e *Extension) { e.config.TotalSpots = n }
}

// WithSnapshotFile seeds the garage from a YAML snapshot.
func WithSnapshotFile(path string) Option {
	return func(e *Extension) { e.config.SnapshotFile = path }
}

// WithPluginTimeout bounds each plugin hook call.
func WithPluginTimeout(d time.Duration) Option {
	return func(e *Extension) { e.config.PluginTimeout = d }
}

// WithRequireConfig requires config to be present in YAML files.
// If true and no config is found, Register returns an error.
func WithRequireConfig(require bool) Option {
	return func(e *Extension) { e.config.RequireConfig = require }
}
