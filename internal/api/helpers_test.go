// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package api

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ManuGH/clipgate/internal/config"
)

// testConfig returns defaults pointed at videoPath.
func testConfig(videoPath string) config.AppConfig {
	cfg := config.Defaults()
	cfg.Version = "test"
	cfg.Video.Path = videoPath
	return cfg
}

// writeVideo writes data to a fresh temp file and returns its path.
func writeVideo(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample_video.mp4")
	require.NoError(t, os.WriteFile(path, data, 0o600))
	return path
}

// patternBytes returns n bytes of a repeating 0..255 pattern.
func patternBytes(n int) []byte {
	out := make([]byte, n)
	for i := range out {
		out[i] = byte(i % 256)
	}
	return out
}

func postAsk(t *testing.T, h http.Handler, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/ask", bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
