// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ManuGH/clipgate/internal/log"
)

// Environment keys understood by the loader.
const (
	EnvVideoPath        = "CLIPGATE_VIDEO_PATH"
	EnvVideoMimeType    = "CLIPGATE_VIDEO_MIME_TYPE"
	EnvListen           = "CLIPGATE_LISTEN"
	EnvBindInterface    = "CLIPGATE_BIND_INTERFACE"
	EnvAllowedOrigins   = "CLIPGATE_ALLOWED_ORIGINS"
	EnvDebug            = "CLIPGATE_DEBUG"
	EnvLogLevel         = "CLIPGATE_LOG_LEVEL"
	EnvLogService       = "CLIPGATE_LOG_SERVICE"
	EnvMetricsEnabled   = "CLIPGATE_METRICS_ENABLED"
	EnvMetricsAddr      = "CLIPGATE_METRICS_ADDR"
	EnvTracingEnabled   = "CLIPGATE_TRACING_ENABLED"
	EnvTracingExporter  = "CLIPGATE_TRACING_EXPORTER"
	EnvTracingEndpoint  = "CLIPGATE_TRACING_ENDPOINT"
	EnvTracingSample    = "CLIPGATE_TRACING_SAMPLE_RATE"
	EnvRateLimitEnabled = "CLIPGATE_RATELIMIT_ENABLED"
	EnvRateLimitRPM     = "CLIPGATE_RATELIMIT_RPM"
	EnvReadTimeout      = "CLIPGATE_READ_TIMEOUT"
	EnvWriteTimeout     = "CLIPGATE_WRITE_TIMEOUT"
	EnvIdleTimeout      = "CLIPGATE_IDLE_TIMEOUT"
	EnvShutdownTimeout  = "CLIPGATE_SHUTDOWN_TIMEOUT"
	EnvConfigPath       = "CLIPGATE_CONFIG"
)

// envParser turns a trimmed, non-empty variable into a typed value.
type envParser[T any] func(string) (T, error)

// envValue returns the parsed variable, or fallback when it is unset, blank
// or malformed. Malformed values are logged and never fatal.
func envValue[T any](key string, fallback T, parse envParser[T]) T {
	raw, ok := os.LookupEnv(key)
	raw = strings.TrimSpace(raw)
	if !ok || raw == "" {
		return fallback
	}
	logger := log.WithComponent("config")
	v, err := parse(raw)
	if err != nil {
		logger.Warn().
			Str("key", key).
			Str("value", raw).
			Str("fallback", fmt.Sprint(fallback)).
			Err(err).
			Msg("ignoring malformed environment variable")
		return fallback
	}
	logger.Debug().Str("key", key).Str("source", "environment").Msg("environment override")
	return v
}

func parseString(s string) (string, error) { return s, nil }

func parseFloat(s string) (float64, error) { return strconv.ParseFloat(s, 64) }

// parseList splits on commas. A list with no usable items is an error so the
// fallback wins.
func parseList(s string) ([]string, error) {
	var out []string
	for item := range strings.SplitSeq(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("no items")
	}
	return out, nil
}

// parseBool also accepts yes and no.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "on":
		return true, nil
	case "no", "off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
