// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

func captureLogs(t *testing.T, cfg Config) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	cfg.Output = &buf
	Configure(cfg)
	t.Cleanup(func() {
		Configure(Config{Output: io.Discard})
	})
	return &buf
}

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("decode %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestConfigure_ServiceAndComponent(t *testing.T) {
	buf := captureLogs(t, Config{Level: "info", Service: "svc", Version: "v9"})

	l := WithComponent("daemon")
	l.Info().Msg("started")

	entries := decodeLines(t, buf)
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	e := entries[0]
	if e["service"] != "svc" || e["version"] != "v9" || e[FieldComponent] != "daemon" {
		t.Errorf("unexpected fields: %v", e)
	}
}

func TestConfigure_DefaultService(t *testing.T) {
	buf := captureLogs(t, Config{Level: "info"})

	l := Base()
	l.Info().Msg("x")

	entries := decodeLines(t, buf)
	if entries[0]["service"] != DefaultService {
		t.Errorf("expected default service %q, got %v", DefaultService, entries[0]["service"])
	}
}

func TestConfigure_BadLevelFallsBackToInfo(t *testing.T) {
	captureLogs(t, Config{Level: "loud"})
	if zerolog.GlobalLevel() != zerolog.InfoLevel {
		t.Errorf("expected info level, got %s", zerolog.GlobalLevel())
	}
}

func TestConfigure_LevelFilters(t *testing.T) {
	buf := captureLogs(t, Config{Level: "warn"})

	l := Base()
	l.Info().Msg("dropped")
	l.Warn().Msg("kept")

	entries := decodeLines(t, buf)
	if len(entries) != 1 || entries[0]["message"] != "kept" {
		t.Errorf("expected only the warn entry, got %v", entries)
	}
	if zerolog.GlobalLevel() != zerolog.WarnLevel {
		t.Errorf("expected global level warn, got %s", zerolog.GlobalLevel())
	}
}

func TestConfigure_ConsoleWriter(t *testing.T) {
	buf := captureLogs(t, Config{Level: "debug", Console: true})

	l := Base()
	l.Debug().Msg("human readable")

	out := buf.String()
	if !strings.Contains(out, "human readable") {
		t.Fatalf("expected message in console output, got %q", out)
	}
	if strings.HasPrefix(strings.TrimSpace(out), "{") {
		t.Errorf("expected non-JSON console output, got %q", out)
	}
}

func TestMiddleware_LogsHandledRequest(t *testing.T) {
	buf := captureLogs(t, Config{Level: "debug"})

	r := chi.NewRouter()
	r.Use(Middleware())
	r.Post("/api/ask", func(w http.ResponseWriter, r *http.Request) {
		FromContext(r.Context()).Debug().Msg("inside handler")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("nope"))
	})

	req := httptest.NewRequest(http.MethodPost, "/api/ask", nil)
	req = req.WithContext(ContextWithRequestID(req.Context(), "rid-42"))
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	entries := decodeLines(t, buf)
	if len(entries) != 2 {
		t.Fatalf("expected handler + access entries, got %d: %v", len(entries), entries)
	}
	if entries[0][FieldRequestID] != "rid-42" {
		t.Errorf("handler logger should carry request id, got %v", entries[0])
	}

	access := entries[1]
	if access[FieldEvent] != "request.handled" {
		t.Errorf("expected request.handled event, got %v", access[FieldEvent])
	}
	if access["level"] != "warn" {
		t.Errorf("expected warn level for 404, got %v", access["level"])
	}
	if access[FieldRoute] != "/api/ask" {
		t.Errorf("expected route pattern, got %v", access[FieldRoute])
	}
	if access[FieldStatus] != float64(http.StatusNotFound) {
		t.Errorf("expected status 404, got %v", access[FieldStatus])
	}
	if access[FieldBytes] != float64(4) {
		t.Errorf("expected 4 bytes, got %v", access[FieldBytes])
	}
	if access[FieldOrigin] != "http://example.com" {
		t.Errorf("expected origin, got %v", access[FieldOrigin])
	}
}
