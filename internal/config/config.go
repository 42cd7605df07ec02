// Package config loads shelfmap service configuration from defaults, an
// optional YAML file and SHELFMAP_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "SHELFMAP_"

// Config holds all shelfmap configuration.
type Config struct {
	// HTTP listen address
	Addr string `yaml:"addr" env:"ADDR"`

	// Data files. Relative file names resolve against DataDir.
	DataDir     string `yaml:"data_dir" env:"DATA_DIR"`
	Spreadsheet string `yaml:"spreadsheet" env:"SPREADSHEET"`
	Overlays    string `yaml:"overlays" env:"OVERLAYS"`
	Assignments string `yaml:"assignments" env:"ASSIGNMENTS"`

	// SQLite database written by the import command
	DBPath string `yaml:"db_path" env:"DB_PATH"`

	// Reload automatically when data files change
	Watch         bool          `yaml:"watch" env:"WATCH"`
	WatchDebounce time.Duration `yaml:"watch_debounce" env:"WATCH_DEBOUNCE"`

	// Logging
	LogLevel  string `yaml:"log_level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log_format" env:"LOG_FORMAT"` // json, console

	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() *Config {
	return &Config{
		Addr:            ":8080",
		DataDir:         "data",
		Spreadsheet:     "Biblioteca MHC.xlsx",
		Overlays:        "areas.csv",
		Assignments:     "mapping.csv",
		DBPath:          filepath.Join("db", "biblioteca.db"),
		WatchDebounce:   500 * time.Millisecond,
		LogLevel:        "info",
		LogFormat:       "json",
		ShutdownTimeout: 5 * time.Second,
	}
}

// Load builds a Config from defaults, the YAML file at path (skipped when
// path is empty) and the environment. It does not validate: callers apply
// their own overrides first and then call Validate.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Validate checks required fields and value ranges.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Addr) == "" {
		errs = append(errs, errors.New("addr is required"))
	}
	if strings.TrimSpace(c.DataDir) == "" {
		errs = append(errs, errors.New("data_dir is required"))
	}
	if strings.TrimSpace(c.Spreadsheet) == "" {
		errs = append(errs, errors.New("spreadsheet is required"))
	}
	switch c.LogFormat {
	case "json", "console":
	default:
		errs = append(errs, fmt.Errorf("invalid log_format: %q (must be json or console)", c.LogFormat))
	}
	if c.WatchDebounce <= 0 {
		errs = append(errs, errors.New("watch_debounce must be positive"))
	}
	if c.ShutdownTimeout <= 0 {
		errs = append(errs, errors.New("shutdown_timeout must be positive"))
	}
	return errors.Join(errs...)
}

// SpreadsheetPath returns the spreadsheet path resolved against DataDir.
func (c *Config) SpreadsheetPath() string {
	return c.resolve(c.Spreadsheet)
}

// OverlaysPath returns the overlay CSV path resolved against DataDir.
func (c *Config) OverlaysPath() string {
	return c.resolve(c.Overlays)
}

// AssignmentsPath returns the row assignment CSV path resolved against DataDir.
func (c *Config) AssignmentsPath() string {
	return c.resolve(c.Assignments)
}

func (c *Config) resolve(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.DataDir, name)
}
