// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

var allEnvKeys = []string{
	EnvVideoPath, EnvVideoMimeType, EnvListen, EnvBindInterface, EnvAllowedOrigins,
	EnvDebug, EnvLogLevel, EnvLogService, EnvMetricsEnabled, EnvMetricsAddr,
	EnvTracingEnabled, EnvTracingExporter, EnvTracingEndpoint, EnvTracingSample,
	EnvRateLimitEnabled, EnvRateLimitRPM, EnvReadTimeout, EnvWriteTimeout,
	EnvIdleTimeout, EnvShutdownTimeout, EnvConfigPath,
}

// clearEnv blanks every CLIPGATE_* key; empty values fall back to defaults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range allEnvKeys {
		t.Setenv(k, "")
	}
}

func writeConfig(t *testing.T, dir, body string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}
