package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 0.001, cfg.Epsilon)
	assert.Equal(t, 6, cfg.Precision)
	assert.True(t, cfg.Graph)
	assert.True(t, cfg.HistoryEnabled)
	assert.Contains(t, cfg.HistoryPath, ".eqstat")
	require.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"epsilon: 0.05\nprecision: 3\ngraph: false\nchart_height: 20\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.05, cfg.Epsilon)
	assert.Equal(t, 3, cfg.Precision)
	assert.False(t, cfg.Graph)
	assert.Equal(t, 20, cfg.ChartHeight)
	// Untouched fields keep their defaults.
	assert.Equal(t, 70, cfg.ChartWidth)
}

func TestLoad_ExplicitFileMustExist(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("epsilon: 0.05\n"), 0644))

	t.Setenv("EQSTAT_EPSILON", "0.25")
	t.Setenv("EQSTAT_GRAPH", "false")
	t.Setenv("EQSTAT_HISTORY_PATH", "/tmp/other.db")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 0.25, cfg.Epsilon)
	assert.False(t, cfg.Graph)
	assert.Equal(t, "/tmp/other.db", cfg.HistoryPath)
}

func TestLoad_InvalidEnvValuesIgnored(t *testing.T) {
	t.Setenv("HOME", t.TempDir()) // keep a real ~/.eqstat/config.yaml out of the test
	t.Setenv("EQSTAT_EPSILON", "not-a-number")
	t.Setenv("EQSTAT_PRECISION", "-4")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.001, cfg.Epsilon)
	assert.Equal(t, 6, cfg.Precision)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults are valid", func(c *Config) {}, false},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }, true},
		{"negative epsilon", func(c *Config) { c.Epsilon = -1 }, true},
		{"precision too large", func(c *Config) { c.Precision = 13 }, true},
		{"zero chart height", func(c *Config) { c.ChartHeight = 0 }, true},
		{"history enabled without path", func(c *Config) { c.HistoryPath = "" }, true},
		{"no path needed when history disabled", func(c *Config) {
			c.HistoryEnabled = false
			c.HistoryPath = ""
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
