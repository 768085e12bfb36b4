// Package config loads eqstat settings from defaults, an optional YAML
// file, and EQSTAT_* environment variables, in that order of precedence
// (environment wins).
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the tool-level settings. None of these affect the core
// contract: the engine takes its criterion per run and the stagnation
// window is fixed.
type Config struct {
	// Epsilon is the default convergence threshold offered when the user
	// does not supply one.
	// Default: 0.001
	Epsilon float64 `yaml:"epsilon"`

	// Precision is the number of decimal places used when rendering values.
	// Display-only; the engine never rounds.
	// Default: 6
	Precision int `yaml:"precision"`

	// Graph controls whether the convergence chart is shown by default.
	// Default: true
	Graph bool `yaml:"graph"`

	// ChartHeight and ChartWidth size the terminal chart.
	// Defaults: 12 rows, 70 columns
	ChartHeight int `yaml:"chart_height"`
	ChartWidth  int `yaml:"chart_width"`

	// HistoryEnabled controls whether completed runs are recorded.
	// Default: true
	HistoryEnabled bool `yaml:"history_enabled"`

	// HistoryPath is where the run log database lives.
	// Default: ~/.eqstat/history.db
	HistoryPath string `yaml:"history_path"`
}

// Default returns the built-in configuration.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return &Config{
		Epsilon:        0.001,
		Precision:      6,
		Graph:          true,
		ChartHeight:    12,
		ChartWidth:     70,
		HistoryEnabled: true,
		HistoryPath:    filepath.Join(home, ".eqstat", "history.db"),
	}
}

// DefaultPath returns the conventional config file location,
// ~/.eqstat/config.yaml.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".eqstat", "config.yaml")
}

// Load builds the effective configuration. When path is non-empty the file
// must exist and parse; when empty, the default location is used if
// present and skipped otherwise. Environment variables are applied last.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if path == "" {
		path = DefaultPath()
	}
	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			if explicit || !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overrides fields from EQSTAT_* environment variables.
func (c *Config) applyEnv() {
	if val := os.Getenv("EQSTAT_EPSILON"); val != "" {
		if eps, err := strconv.ParseFloat(val, 64); err == nil && eps > 0 {
			c.Epsilon = eps
		}
	}
	if val := os.Getenv("EQSTAT_PRECISION"); val != "" {
		if p, err := strconv.Atoi(val); err == nil && p >= 0 {
			c.Precision = p
		}
	}
	if val := os.Getenv("EQSTAT_GRAPH"); val != "" {
		c.Graph = parseBool(val)
	}
	if val := os.Getenv("EQSTAT_CHART_HEIGHT"); val != "" {
		if h, err := strconv.Atoi(val); err == nil && h > 0 {
			c.ChartHeight = h
		}
	}
	if val := os.Getenv("EQSTAT_CHART_WIDTH"); val != "" {
		if w, err := strconv.Atoi(val); err == nil && w > 0 {
			c.ChartWidth = w
		}
	}
	if val := os.Getenv("EQSTAT_HISTORY_ENABLED"); val != "" {
		c.HistoryEnabled = parseBool(val)
	}
	if val := os.Getenv("EQSTAT_HISTORY_PATH"); val != "" {
		c.HistoryPath = val
	}
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive, got %g", c.Epsilon)
	}
	if c.Precision < 0 || c.Precision > 12 {
		return fmt.Errorf("precision must be between 0 and 12, got %d", c.Precision)
	}
	if c.ChartHeight <= 0 || c.ChartWidth <= 0 {
		return fmt.Errorf("chart dimensions must be positive, got %dx%d", c.ChartWidth, c.ChartHeight)
	}
	if c.HistoryEnabled && c.HistoryPath == "" {
		return fmt.Errorf("history_path must be set when history is enabled")
	}
	return nil
}

func parseBool(val string) bool {
	switch strings.ToLower(val) {
	case "true", "1", "yes", "on":
		return true
	default:
		return false
	}
}
