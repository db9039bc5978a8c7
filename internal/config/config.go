// Package config loads the latan command-line configuration.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/born-ml/latan/internal/asciifile"
)

// Config holds the settings shared by all latan commands.
type Config struct {
	Precision int    `yaml:"precision"` // Digits after the decimal point of written values
	LogLevel  string `yaml:"log_level"` // debug, info, warn or error
	NoColor   bool   `yaml:"no_color"`  // Disable colored log output
	Workers   int    `yaml:"workers"`   // Files inspected concurrently, 0 for one per CPU
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Precision: asciifile.DefaultPrecision,
		LogLevel:  "info",
	}
}

// Load reads a YAML configuration file on top of Default. A missing file is
// not an error.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	//nolint:gosec // G304: Config path comes from the command line
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return Config{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks value ranges.
func (c Config) Validate() error {
	if c.Precision < 1 || c.Precision > asciifile.MaxPrecision {
		return fmt.Errorf("precision %d out of range [1, %d]", c.Precision, asciifile.MaxPrecision)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", c.Workers)
	}
	return nil
}

// Level returns the configured log level.
func (c Config) Level() slog.Level {
	lvl, err := ParseLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return lvl
}

// ParseLevel converts a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("unknown log level %q", s)
	}
}

// Marshal renders the configuration as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
