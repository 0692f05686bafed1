// Package config loads the gridscope YAML configuration file: table engine
// defaults plus the logging section. Missing files yield the documented
// defaults; malformed files and incompatible schema versions fail fast.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/Masterminds/semver/v3"
	"gopkg.in/yaml.v3"

	"github.com/gridscope/gridscope/internal/logging"
	"github.com/gridscope/gridscope/internal/table"
)

// DefaultPath is where Load looks when no explicit path is given.
const DefaultPath = "gridscope.yaml"

// supportedSchema is the semver constraint a config file's version must
// satisfy.
const supportedSchema = "^1.0"

// ErrIncompatibleVersion is returned when the config file declares a schema
// version outside the supported range.
var ErrIncompatibleVersion = errors.New("incompatible config version")

// TableConfig carries the engine construction defaults.
type TableConfig struct {
	// Height is the total component height.
	Height float64 `yaml:"height"`
	// RowHeight is the uniform row height.
	RowHeight float64 `yaml:"rowHeight"`
	// Overscan is the number of extra rows rendered on each side of the
	// visible range.
	Overscan int `yaml:"overscan"`
}

// Config is the full configuration file.
type Config struct {
	// Version is the config schema version, checked against the supported
	// range. Empty means current.
	Version string         `yaml:"version"`
	Table   TableConfig    `yaml:"table"`
	Logging logging.Config `yaml:"logging"`
}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		Table: TableConfig{
			Height:    table.DefaultHeight,
			RowHeight: table.DefaultRowHeight,
			Overscan:  table.DefaultOverscan,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads and validates the configuration at path. A missing file is not
// an error; the defaults are returned instead. Unset fields inherit their
// defaults.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	cfg.applyDefaults()

	if err := cfg.checkVersion(); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// applyDefaults fills zeroed fields so a partial file behaves like the
// defaults it omits.
func (c *Config) applyDefaults() {
	def := Default()
	if c.Table.Height == 0 {
		c.Table.Height = def.Table.Height
	}
	if c.Table.RowHeight == 0 {
		c.Table.RowHeight = def.Table.RowHeight
	}
	if c.Logging.Level == "" {
		c.Logging.Level = def.Logging.Level
	}
	if c.Logging.Format == "" {
		c.Logging.Format = def.Logging.Format
	}
	if c.Logging.Output == "" {
		c.Logging.Output = def.Logging.Output
	}
}

// checkVersion validates the declared schema version against the supported
// constraint.
func (c *Config) checkVersion() error {
	if c.Version == "" {
		return nil
	}
	ver, err := semver.NewVersion(c.Version)
	if err != nil {
		return fmt.Errorf("%w: cannot parse %q: %w", ErrIncompatibleVersion, c.Version, err)
	}
	constraint, err := semver.NewConstraint(supportedSchema)
	if err != nil {
		return fmt.Errorf("parsing schema constraint: %w", err)
	}
	if !constraint.Check(ver) {
		return fmt.Errorf("%w: %s does not satisfy %s", ErrIncompatibleVersion, c.Version, supportedSchema)
	}
	return nil
}

// validate rejects values the engine would refuse at construction time, so
// bad config surfaces here rather than deep inside a command.
func (c *Config) validate() error {
	if c.Table.Height <= 0 {
		return fmt.Errorf("table.height must be positive, got %v", c.Table.Height)
	}
	if c.Table.RowHeight <= 0 {
		return fmt.Errorf("table.rowHeight must be positive, got %v", c.Table.RowHeight)
	}
	if c.Table.Overscan < 0 {
		return fmt.Errorf("table.overscan must not be negative, got %d", c.Table.Overscan)
	}
	return nil
}
