package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Color modes for diagnostic rendering.
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Options is the semcore.yaml configuration.
type Options struct {
	// Strict halts analysis of a module at the first diagnostic.
	// When false, a failing top-level declaration is skipped and its siblings are still analyzed.
	Strict bool `yaml:"strict"`

	// Color is one of "auto", "always" or "never". Defaults to "auto".
	Color string `yaml:"color,omitempty"`

	// LogLevel is a slog level name ("debug", "info", "warn", "error"). Defaults to "warn".
	LogLevel string `yaml:"log_level,omitempty"`

	// StorePath is an SQLite database where analysis results are persisted.
	// Empty disables persistence.
	StorePath string `yaml:"store,omitempty"`

	// ReportPath receives a YAML analysis report. Empty disables the report file.
	ReportPath string `yaml:"report,omitempty"`
}

// DefaultOptions returns the configuration used when no file is present.
func DefaultOptions() Options {
	return Options{
		Color:    ColorAuto,
		LogLevel: "warn",
	}
}

// Load reads and validates a configuration file.
// A missing file is not an error: defaults are returned.
func Load(path string) (Options, error) {
	opts := DefaultOptions()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return opts, nil
		}
		return opts, fmt.Errorf("reading config %s: %w", path, err)
	}

	opts, err = Parse(data)
	if err != nil {
		return opts, fmt.Errorf("%s: %w", path, err)
	}
	return opts, nil
}

// Parse decodes configuration from YAML bytes and validates it.
func Parse(data []byte) (Options, error) {
	opts := DefaultOptions()
	if err := yaml.Unmarshal(data, &opts); err != nil {
		return opts, fmt.Errorf("parsing config: %w", err)
	}
	if opts.Color == "" {
		opts.Color = ColorAuto
	}
	if opts.LogLevel == "" {
		opts.LogLevel = "warn"
	}
	if err := opts.Validate(); err != nil {
		return opts, err
	}
	return opts, nil
}

// Validate checks enumerated fields.
func (o Options) Validate() error {
	switch o.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("invalid color mode %q: must be auto, always or never", o.Color)
	}
	if _, err := ParseLogLevel(o.LogLevel); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level of LogLevel. Invalid names fall back to warn.
func (o Options) Level() slog.Level {
	lvl, err := ParseLogLevel(o.LogLevel)
	if err != nil {
		return slog.LevelWarn
	}
	return lvl
}

// ParseLogLevel maps a level name to a slog.Level.
func ParseLogLevel(name string) (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(strings.ToUpper(name))); err != nil {
		return slog.LevelWarn, fmt.Errorf("invalid log level %q", name)
	}
	return lvl, nil
}
