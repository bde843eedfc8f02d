// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := NewLoader("", "v1.0.0").Load()
	require.NoError(t, err)

	want := Defaults()
	want.Version = "v1.0.0"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("defaults mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, DefaultVideoPath, cfg.Video.Path)
	assert.Equal(t, "video/mp4", cfg.Video.MimeType)
	assert.Equal(t, "0.0.0.0:5000", cfg.Server.ListenAddr)
	assert.Equal(t, []string{"*"}, cfg.AllowedOrigins)
	assert.True(t, cfg.Debug)
	assert.Equal(t, "debug", cfg.EffectiveLogLevel())
	assert.Zero(t, cfg.Server.WriteTimeout)
	assert.False(t, cfg.RateLimit.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, `
debug: false
logLevel: warn
video:
  path: /srv/videos/sample.mp4
  mimeType: video/webm
api:
  listenAddr: 127.0.0.1:8081
  allowedOrigins:
    - http://localhost:3000
server:
  readTimeout: 10s
  shutdownTimeout: 3s
metrics:
  enabled: true
  listenAddr: 127.0.0.1:9191
rateLimit:
  enabled: true
  requestsPerMinute: 5
`)

	cfg, err := NewLoader(path, "test").Load()
	require.NoError(t, err)

	assert.False(t, cfg.Debug)
	assert.Equal(t, "warn", cfg.EffectiveLogLevel())
	assert.Equal(t, "/srv/videos/sample.mp4", cfg.Video.Path)
	assert.Equal(t, "video/webm", cfg.Video.MimeType)
	assert.Equal(t, "127.0.0.1:8081", cfg.Server.ListenAddr)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, 10*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 3*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, DefaultIdleTimeout, cfg.Server.IdleTimeout)
	assert.True(t, cfg.Metrics.Enabled)
	assert.Equal(t, "127.0.0.1:9191", cfg.Metrics.ListenAddr)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 5, cfg.RateLimit.RequestsPerMinute)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), `
video:
  path: /from/file.mp4
api:
  listenAddr: 127.0.0.1:8081
`)
	t.Setenv(EnvVideoPath, "/from/env.mp4")
	t.Setenv(EnvListen, "127.0.0.1:9000")
	t.Setenv(EnvAllowedOrigins, "http://a.example, http://b.example,")
	t.Setenv(EnvDebug, "false")
	t.Setenv(EnvWriteTimeout, "1m")

	l := NewLoader(path, "")
	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, "/from/env.mp4", cfg.Video.Path)
	assert.Equal(t, "127.0.0.1:9000", cfg.Server.ListenAddr)
	assert.Equal(t, []string{"http://a.example", "http://b.example"}, cfg.AllowedOrigins)
	assert.False(t, cfg.Debug)
	assert.Equal(t, "info", cfg.EffectiveLogLevel())
	assert.Equal(t, time.Minute, cfg.Server.WriteTimeout)
}

func TestLoad_RelativeVideoPathResolvedAgainstConfigDir(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := writeConfig(t, dir, "video:\n  path: media/clip.mp4\n")

	cfg, err := NewLoader(path, "").Load()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "media", "clip.mp4"), cfg.Video.Path)
}

func TestLoad_UnknownFieldRejected(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "video:\n  file: /x.mp4\n")

	_, err := NewLoader(path, "").Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownConfigField)
}

func TestLoad_MultipleDocumentsRejected(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "debug: true\n---\ndebug: false\n")

	_, err := NewLoader(path, "").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "single YAML document")
}

func TestLoad_EmptyFileUsesDefaults(t *testing.T) {
	clearEnv(t)
	path := writeConfig(t, t.TempDir(), "")

	cfg, err := NewLoader(path, "").Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultVideoPath, cfg.Video.Path)
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	clearEnv(t)
	_, err := NewLoader(filepath.Join(t.TempDir(), "config.json"), "").Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only YAML is supported")
}

func TestLoad_MissingFile(t *testing.T) {
	clearEnv(t)
	_, err := NewLoader(filepath.Join(t.TempDir(), "absent.yaml"), "").Load()
	require.Error(t, err)
}

func TestLoad_InvalidEnvFailsValidation(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvTracingSample, "1.5")

	_, err := NewLoader("", "").Load()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestLoad_BindInterfaceLiteralHost(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvBindInterface, "127.0.0.1")

	cfg, err := NewLoader("", "").Load()
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:5000", cfg.Server.ListenAddr)
}

func TestLoad_VideoFileNeedNotExist(t *testing.T) {
	clearEnv(t)
	t.Setenv(EnvVideoPath, filepath.Join(t.TempDir(), "nope.mp4"))

	_, err := NewLoader("", "").Load()
	assert.NoError(t, err)
}
