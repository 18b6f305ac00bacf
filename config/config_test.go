package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/BiagiVarnoux/costsheet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, "en", cfg.Display.Locale)
	assert.Equal(t, 2, cfg.Display.Decimals)
	assert.Empty(t, cfg.Display.Currency)
	assert.False(t, cfg.Strict)
	assert.Equal(t, GridConfig{Rows: 20, Cols: 8}, cfg.Grid)
	assert.Equal(t, BackendJSONL, cfg.Store.Backend)
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, "en", cfg.NumberFormat().Locale.String())
	assert.Equal(t, 2, cfg.NumberFormat().Decimals)
	assert.Equal(t, costsheet.TwoPass, cfg.Mode())
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr bool
	}{
		{
			name:    "valid default config",
			modify:  func(c *Config) {},
			wantErr: false,
		},
		{
			name:    "currency",
			modify:  func(c *Config) { c.Display.Currency = "EUR" },
			wantErr: false,
		},
		{
			name:    "unknown currency",
			modify:  func(c *Config) { c.Display.Currency = "ZZZ" },
			wantErr: true,
		},
		{
			name:    "invalid locale",
			modify:  func(c *Config) { c.Display.Locale = "not a locale" },
			wantErr: true,
		},
		{
			name:    "negative decimals",
			modify:  func(c *Config) { c.Display.Decimals = -1 },
			wantErr: true,
		},
		{
			name:    "negative rows",
			modify:  func(c *Config) { c.Grid.Rows = -1 },
			wantErr: true,
		},
		{
			name:    "oversized grid",
			modify:  func(c *Config) { c.Grid.Rows, c.Grid.Cols = 100000, 100 },
			wantErr: true,
		},
		{
			name:    "unknown backend",
			modify:  func(c *Config) { c.Store.Backend = "s3" },
			wantErr: true,
		},
		{
			name:    "bigtable without project",
			modify:  func(c *Config) { c.Store.Backend = BackendBigtable },
			wantErr: true,
		},
		{
			name: "bigtable",
			modify: func(c *Config) {
				c.Store.Backend = BackendBigtable
				c.Store.Bigtable.Project = "p"
				c.Store.Bigtable.Instance = "i"
			},
			wantErr: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.modify(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadFromFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "costsheet.yaml")
	content := `
display:
  locale: fr
  currency: EUR
strict: true
store:
  backend: bigtable
  bigtable:
    project: acme
    instance: sheets
`
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))

	cfg, err := LoadFromFile(configPath)
	require.NoError(t, err)

	assert.Equal(t, "fr", cfg.Display.Locale)
	assert.Equal(t, "EUR", cfg.Display.Currency)
	// Unset values keep their defaults.
	assert.Equal(t, 2, cfg.Display.Decimals)
	assert.Equal(t, "costsheets", cfg.Store.Bigtable.Table)
	assert.Equal(t, "cell", cfg.Store.Bigtable.Family)
	assert.Equal(t, costsheet.Ordered, cfg.Mode())
	assert.Equal(t, "fr", cfg.NumberFormat().Locale.String())
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFileErrors(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid: [1, 2"), 0644))
	_, err = LoadFromFile(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Load(filepath.Join(dir, "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)

	path := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store:\n  backend: s3\n"), 0644))
	_, err = Load(path)
	assert.ErrorContains(t, err, "store.backend")
}

func TestSaveToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "costsheet.yaml")

	cfg := DefaultConfig()
	cfg.Display.Currency = "USD"
	cfg.Grid.Rows = 50
	require.NoError(t, cfg.SaveToFile(path))

	loaded, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}
