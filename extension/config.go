package extension

import (
	"time"

	"github.com/xraph/garage/fee"
	"github.com/xraph/garage/types"
)

// Config holds the garage extension configuration.
// Fields can be set programmatically via Option functions or loaded from
// YAML configuration files (under "extensions.garage" or "garage" keys).
type Config struct {
	// TotalSpots is the garage capacity (default: 3).
	TotalSpots int `json:"total_spots" mapstructure:"total_spots" yaml:"total_spots"`

	// BlockSize is the billing block length (default: 30s).
	BlockSize time.Duration `json:"block_size" mapstructure:"block_size" yaml:"block_size"`

	// BlockRate is the price of one block in minor units (default: 100).
	BlockRate int64 `json:"block_rate" mapstructure:"block_rate" yaml:"block_rate"`

	// Currency is the ISO 4217 code fees are billed in (default: "cad").
	Currency string `json:"currency" mapstructure:"currency" yaml:"currency"`

	// MaxBlocks caps billed blocks per stay (default: 4). A negative value
	// removes the cap.
	MaxBlocks int64 `json:"max_blocks" mapstructure:"max_blocks" yaml:"max_blocks"`

	// PluginTimeout bounds each plugin hook call (default: 5s).
	PluginTimeout time.Duration `json:"plugin_timeout" mapstructure:"plugin_timeout" yaml:"plugin_timeout"`

	// SnapshotFile is an optional YAML file with the initial occupants.
	SnapshotFile string `json:"snapshot_file" mapstructure:"snapshot_file" yaml:"snapshot_file"`

	// RequireConfig requires config to be present in YAML files.
	// If true and no config is found, Register returns an error.
	RequireConfig bool `json:"-" yaml:"-"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		TotalSpots:    3,
		BlockSize:     fee.DefaultBlockSize,
		BlockRate:     fee.DefaultBlockRate,
		Currency:      types.DefaultCurrency,
		MaxBlocks:     fee.DefaultMaxBlocks,
		PluginTimeout: 5 * time.Second,
	}
}

// Schedule returns the fee schedule described by the config.
func (c Config) Schedule() fee.Schedule {
	maxBlocks := c.MaxBlocks
	if maxBlocks < 0 {
		maxBlocks = 0
	}
	return fee.Schedule{
		BlockSize: c.BlockSize,
		BlockRate: types.Money{Amount: c.BlockRate, Currency: c.Currency},
		MaxBlocks: maxBlocks,
	}
}
