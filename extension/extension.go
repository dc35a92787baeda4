// Package extension provides the Forge extension adapter for the garage.
//
// It implements the forge.Extension interface to run a garage inside a
// Forge application with DI registration and lifecycle management.
//
// Configuration can be provided programmatically via Option functions
// or via YAML configuration files under "extensions.garage" or "garage" keys.
package extension

import (
	"context"
	"errors"
	"fmt"

	"github.com/xraph/forge"
	"github.com/xraph/vessel"

	"github.com/xraph/garage"
	"github.com/xraph/garage/store"
	"github.com/xraph/garage/store/memory"
)

// ExtensionName is the name registered with Forge.
const ExtensionName = "garage"

// ExtensionDescription is the human-readable description.
const ExtensionDescription = "Parking garage occupancy ledger"

// ExtensionVersion is the semantic version.
const ExtensionVersion = "0.1.0"

// Ensure Extension implements forge.Extension at compile time.
var _ forge.Extension = (*Extension)(nil)

// Extension adapts a garage as a Forge extension.
type Extension struct {
	*forge.BaseExtension

	config     Config
	garage     *garage.Garage
	store      store.Store
	garageOpts []garage.Option
}

// New creates a new garage Forge extension with the given options.
func New(opts ...Option) *Extension {
	e := &Extension{
		BaseExtension: forge.NewBaseExtension(ExtensionName, ExtensionVersion, ExtensionDescription),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Garage returns the underlying garage.
// This is nil until Register is called.
func (e *Extension) Garage() *garage.Garage { return e.garage }

// Register implements [forge.Extension]. It loads configuration,
// builds the garage, and registers it in the DI container.
func (e *Extension) Register(fapp forge.App) error {
	if err := e.BaseExtension.Register(fapp); err != nil {
		return err
	}

	if err := e.loadConfiguration(); err != nil {
		return err
	}

	if err := e.buildGarage(); err != nil {
		return err
	}

	e.Logger().Debug("garage: built",
		forge.F("garage_id", e.garage.ID().String()),
		forge.F("total_spots", e.garage.TotalSpots()),
		forge.F("snapshot_file", e.config.SnapshotFile),
	)

	return vessel.Provide(fapp.Container(), func() (*garage.Garage, error) {
		return e.garage, nil
	})
}

// Start implements [forge.Extension].
func (e *Extension) Start(ctx context.Context) error {
	if e.garage == nil {
		return errors.New("garage: extension not initialized")
	}

	if err := e.garage.Start(ctx); err != nil {
		return err
	}

	e.MarkStarted()
	return nil
}

// Stop implements [forge.Extension].
func (e *Extension) Stop(ctx context.Context) error {
	defer e.MarkStopped()

	if e.garage != nil {
		return e.garage.Stop(ctx)
	}
	return nil
}

// Health implements [forge.Extension].
func (e *Extension) Health(ctx context.Context) error {
	if e.store == nil {
		return errors.New("garage: store not initialized")
	}
	return e.store.Ping(ctx)
}

// buildGarage seeds and constructs the garage from the resolved config.
func (e *Extension) buildGarage() error {
	snap, err := e.loadSnapshot()
	if err != nil {
		return err
	}

	// Use memory store if no store was provided programmatically.
	if e.store == nil {
		e.store = memory.New()
	}

	g, err := garage.New(snap, e.buildGarageOpts()...)
	if err != nil {
		return fmt.Errorf("garage: build: %w", err)
	}
	e.garage = g
	return nil
}

// buildGarageOpts constructs garage.Option values from the resolved config.
// Pass-through options come last so they override config-derived ones.
func (e *Extension) buildGarageOpts() []garage.Option {
	opts := make([]garage.Option, 0, len(e.garageOpts)+3)
	opts = append(opts,
		garage.WithStore(e.store),
		garage.WithFeeCalculator(e.config.Schedule()),
		garage.WithPluginTimeout(e.config.PluginTimeout),
	)
	return append(opts, e.garageOpts...)
}

// loadSnapshot reads the configured snapshot file, or returns an empty
// garage of the configured size.
func (e *Extension) loadSnapshot() (garage.Snapshot, error) {
	if e.config.SnapshotFile == "" {
		return garage.Snapshot{TotalSpots: e.config.TotalSpots}, nil
	}

	snap, err := garage.LoadSnapshotFile(e.config.SnapshotFile)
	if err != nil {
		return garage.Snapshot{}, err
	}
	if snap.TotalSpots == 0 {
		snap.TotalSpots = e.config.TotalSpots
	}
	return snap, nil
}

// --- Config Loading ---

// loadConfiguration loads config from YAML files or programmatic sources.
func (e *Extension) loadConfiguration() error {
	programmaticConfig := e.config

	// Try loading from config file.
	fileConfig, configLoaded := e.tryLoadFromConfigFile()

	if !configLoaded {
		if programmaticConfig.RequireConfig {
			return errors.New("garage: configuration is required but not found in config files; " +
				"ensure 'extensions.garage' or 'garage' key exists in your config")
		}

		e.config = mergeWithDefaults(programmaticConfig)
	} else {
		e.config = mergeConfigurations(fileConfig, programmaticConfig)
	}

	e.Logger().Debug("garage: configuration loaded",
		forge.F("total_spots", e.config.TotalSpots),
		forge.F("block_size", e.config.BlockSize),
		forge.F("block_rate", e.config.BlockRate),
		forge.F("currency", e.config.Currency),
		forge.F("max_blocks", e.config.MaxBlocks),
		forge.F("snapshot_file", e.config.SnapshotFile),
	)

	return nil
}

// tryLoadFromConfigFile attempts to load config from YAML files.
func (e *Extension) tryLoadFromConfigFile() (Config, bool) {
	cm := e.App().Config()

	for _, key := range []string{"extensions.garage", "garage"} {
		if !cm.IsSet(key) {
			continue
		}
		var cfg Config
		if err := cm.Bind(key, &cfg); err != nil {
			e.Logger().Warn("garage: failed to bind config",
				forge.F("key", key),
				forge.F("error", err.Error()),
			)
			continue
		}
		e.Logger().Debug("garage: loaded config from file", forge.F("key", key))
		return cfg, true
	}

	return Config{}, false
}

// mergeWithDefaults fills zero-valued fields with defaults.
func mergeWithDefaults(cfg Config) Config {
	defaults := DefaultConfig()
	if cfg.TotalSpots == 0 {
		cfg.TotalSpots = defaults.TotalSpots
	}
	if cfg.BlockSize == 0 {
		cfg.BlockSize = defaults.BlockSize
	}
	if cfg.BlockRate == 0 {
		cfg.BlockRate = defaults.BlockRate
	}
	if cfg.Currency == "" {
		cfg.Currency = defaults.Currency
	}
	if cfg.MaxBlocks == 0 {
		cfg.MaxBlocks = defaults.MaxBlocks
	}
	if cfg.PluginTimeout == 0 {
		cfg.PluginTimeout = defaults.PluginTimeout
	}
	return cfg
}

// mergeConfigurations merges YAML config with programmatic options.
// YAML config takes precedence; programmatic values fill gaps.
func mergeConfigurations(yamlConfig, programmaticConfig Config) Config {
	if yamlConfig.TotalSpots == 0 {
		yamlConfig.TotalSpots = programmaticConfig.TotalSpots
	}
	if yamlConfig.BlockSize == 0 {
		yamlConfig.BlockSize = programmaticConfig.BlockSize
	}
	if yamlConfig.BlockRate == 0 {
		yamlConfig.BlockRate = programmaticConfig.BlockRate
	}
	if yamlConfig.Currency == "" {
		yamlConfig.Currency = programmaticConfig.Currency
	}
	if yamlConfig.MaxBlocks == 0 {
		yamlConfig.MaxBlocks = programmaticConfig.MaxBlocks
	}
	if yamlConfig.PluginTimeout == 0 {
		yamlConfig.PluginTimeout = programmaticConfig.PluginTimeout
	}
	if yamlConfig.SnapshotFile == "" {
		yamlConfig.SnapshotFile = programmaticConfig.SnapshotFile
	}

	// Fill remaining zeros with defaults.
	return mergeWithDefaults(yamlConfig)
}
