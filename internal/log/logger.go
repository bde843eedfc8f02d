// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"cmp"
	"io"
	"os"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// DefaultService is attached to every entry when no service name is configured.
const DefaultService = "clipgate"

// Config captures options for configuring the global logger.
type Config struct {
	Level   string    // optional log level ("debug", "info", etc.)
	Output  io.Writer // optional writer (defaults to os.Stdout)
	Service string    // optional service name attached to every log entry
	Version string    // optional build version attached to every log entry
	Console bool      // human readable output instead of JSON lines
}

var (
	mu   sync.RWMutex
	base zerolog.Logger
)

// Configure replaces the process-wide logger. main calls it once with
// defaults before the configuration is loaded and again on every reload.
// An unparsable level falls back to info.
func Configure(cfg Config) {
	level, err := zerolog.ParseLevel(cfg.Level)
	if err != nil || cfg.Level == "" {
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)
	zerolog.TimeFieldFormat = time.RFC3339

	l := zerolog.New(writerFor(cfg)).With().
		Timestamp().
		Str("service", cmp.Or(cfg.Service, DefaultService)).
		Str("version", cfg.Version).
		Logger()

	mu.Lock()
	base = l
	mu.Unlock()
}

func writerFor(cfg Config) io.Writer {
	out := cfg.Output
	if out == nil {
		out = os.Stdout
	}
	if !cfg.Console {
		return out
	}
	return zerolog.ConsoleWriter{Out: out, TimeFormat: time.RFC3339}
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child of Base tagged with component.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str(FieldComponent, component).Logger()
}

func init() {
	Configure(Config{})
}
