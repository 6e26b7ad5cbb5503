// Package logging builds the daemon's zerolog loggers: console or JSON
// output on stderr, optionally mirrored to a rotated file in the state
// directory.
package logging

import (
	"io"
	"os"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration.
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	// File, when set, mirrors output to a size-rotated log file.
	File string
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a zerolog logger with the given configuration.
func New(cfg Config) zerolog.Logger {
	var output io.Writer = os.Stderr

	switch cfg.Format {
	case "console":
		output = zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: cfg.TimeFormat,
		}
	case "json":
		// JSON is the default zerolog format
		output = os.Stderr
	}

	if cfg.File != "" {
		if rotator, err := NewRotator(cfg.File, 10, 3, 7, true); err == nil {
			output = io.MultiWriter(output, rotator)
		}
	}

	return zerolog.New(output).
		Level(cfg.Level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a level name to a zerolog level, falling back to info.
func ParseLevel(level string) zerolog.Level {
	switch level {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	default:
		return zerolog.InfoLevel
	}
}

// ApplyEnv overlays environment overrides onto a logging configuration.
// LEDGE_LOG_LEVEL: trace, debug, info, warn, error
// LEDGE_LOG_FORMAT: json, console
// LEDGE_LOG_FILE: path to a rotated log file
func ApplyEnv(cfg Config) Config {
	if level := os.Getenv("LEDGE_LOG_LEVEL"); level != "" {
		cfg.Level = ParseLevel(level)
	}

	if format := os.Getenv("LEDGE_LOG_FORMAT"); format != "" {
		switch format {
		case "json", "console":
			cfg.Format = format
		}
	}

	if file := os.Getenv("LEDGE_LOG_FILE"); file != "" {
		cfg.File = file
	}

	return cfg
}
