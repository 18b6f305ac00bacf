// Package config loads the YAML configuration of the csh command.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BiagiVarnoux/costsheet"
	"github.com/Rhymond/go-money"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Storage backends.
const (
	BackendJSONL    = "jsonl"
	BackendBigtable = "bigtable"
)

// Config represents the complete csh configuration
type Config struct {
	Display DisplayConfig `yaml:"display"`
	// Strict selects the ordered recalculation, with cycle detection
	Strict bool        `yaml:"strict"`
	Grid   GridConfig  `yaml:"grid"`
	Store  StoreConfig `yaml:"store"`
}

// DisplayConfig configures number rendering
type DisplayConfig struct {
	// Locale is a BCP 47 tag (default: en)
	Locale string `yaml:"locale"`
	// Decimals is the number of fraction digits displayed (default: 2)
	Decimals int `yaml:"decimals"`
	// Currency is the ISO code used for price cells (empty = plain numbers)
	Currency string `yaml:"currency"`
}

// GridConfig is the extent of a new sheet
type GridConfig struct {
	Rows int `yaml:"rows"`
	Cols int `yaml:"cols"`
}

// StoreConfig selects where sheets are persisted
type StoreConfig struct {
	// Backend is "jsonl" (default) or "bigtable"
	Backend  string         `yaml:"backend"`
	Dir      string         `yaml:"dir"`
	Bigtable BigtableConfig `yaml:"bigtable"`
}

// BigtableConfig locates the Bigtable table holding the sheets
type BigtableConfig struct {
	Project  string `yaml:"project"`
	Instance string `yaml:"instance"`
	Table    string `yaml:"table"`
	Family   string `yaml:"family"`
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() *Config {
	return &Config{
		Display: DisplayConfig{
			Locale:   "en",
			Decimals: 2,
		},
		Grid: GridConfig{Rows: 20, Cols: 8},
		Store: StoreConfig{
			Backend: BackendJSONL,
			Dir:     ".",
			Bigtable: BigtableConfig{
				Table:  "costsheets",
				Family: "cell",
			},
		},
	}
}

// Validate checks that the configuration is valid
func (c *Config) Validate() error {
	if _, err := language.Parse(c.Display.Locale); err != nil {
		return fmt.Errorf("display.locale %q is invalid: %w", c.Display.Locale, err)
	}
	if c.Display.Decimals < 0 || c.Display.Decimals > 10 {
		return fmt.Errorf("display.decimals must be between 0 and 10")
	}
	if c.Display.Currency != "" && money.GetCurrency(c.Display.Currency) == nil {
		return fmt.Errorf("display.currency %q is not a known currency", c.Display.Currency)
	}
	if err := costsheet.CheckExtent(c.Grid.Rows, c.Grid.Cols); err != nil {
		return fmt.Errorf("grid: %w", err)
	}
	switch c.Store.Backend {
	case BackendJSONL:
		if c.Store.Dir == "" {
			return fmt.Errorf("store.dir is required")
		}
	case BackendBigtable:
		bt := c.Store.Bigtable
		if bt.Project == "" || bt.Instance == "" || bt.Table == "" || bt.Family == "" {
			return fmt.Errorf("store.bigtable requires project, instance, table and family")
		}
	default:
		return fmt.Errorf("store.backend %q is unknown", c.Store.Backend)
	}
	return nil
}

// NumberFormat returns the display format of numbers.
func (c *Config) NumberFormat() costsheet.NumberFormat {
	tag, err := language.Parse(c.Display.Locale)
	if err != nil {
		tag = language.English
	}
	return costsheet.NumberFormat{Locale: tag, Decimals: c.Display.Decimals}
}

// Mode returns the recalculation mode.
func (c *Config) Mode() costsheet.Mode {
	if c.Strict {
		return costsheet.Ordered
	}
	return costsheet.TwoPass
}

// LoadFromFile loads configuration from a YAML file
func LoadFromFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	return config, nil
}

// Load loads and validates the configuration at path. A missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	config, err := LoadFromFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		config, err = DefaultConfig(), nil
	}
	if err != nil {
		return nil, err
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}
	return config, nil
}

// SaveToFile saves configuration to a YAML file
func (c *Config) SaveToFile(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}
