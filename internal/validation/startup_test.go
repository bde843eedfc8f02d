// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package validation

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuGH/clipgate/internal/config"
	"github.com/ManuGH/clipgate/internal/video"
)

func cfgWithVideo(path string) config.AppConfig {
	cfg := config.Defaults()
	cfg.Video.Path = path
	return cfg
}

func TestPerformStartupChecks(t *testing.T) {
	dir := t.TempDir()
	readable := filepath.Join(dir, "clip.mp4")
	require.NoError(t, os.WriteFile(readable, []byte("data"), 0o600))
	empty := filepath.Join(dir, "empty.mp4")
	require.NoError(t, os.WriteFile(empty, nil, 0o600))

	tests := []struct {
		name     string
		path     string
		wantErr  bool
		notFound bool
	}{
		{name: "readable file", path: readable},
		{name: "missing file", path: filepath.Join(dir, "missing.mp4"), wantErr: true, notFound: true},
		{name: "directory", path: dir, wantErr: true, notFound: true},
		{name: "empty file", path: empty, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := PerformStartupChecks(cfgWithVideo(tt.path))
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrVideoNotServable)
			assert.Equal(t, tt.notFound, errors.Is(err, video.ErrNotFound))
		})
	}
}
