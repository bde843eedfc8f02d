// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/ManuGH/clipgate/internal/log"
)

func verboseRequested(r *http.Request) bool {
	v, err := strconv.ParseBool(r.URL.Query().Get("verbose"))
	return err == nil && v
}

func writeCheckResponse(w http.ResponseWriter, r *http.Request, code int, body any, event string) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger := log.WithComponentFromContext(r.Context(), "health")
		logger.Error().
			Err(err).
			Str(log.FieldEvent, event+".encode_error").
			Msg("failed to encode check response")
	}
}

// ServeHealth is the liveness handler. It always answers 200.
func (m *Manager) ServeHealth(w http.ResponseWriter, r *http.Request) {
	verbose := verboseRequested(r)
	resp := m.Health(r.Context(), verbose)
	writeCheckResponse(w, r, http.StatusOK, resp, "health")

	logger := log.WithComponentFromContext(r.Context(), "health")
	logger.Debug().
		Str(log.FieldEvent, "health.checked").
		Str("status", string(resp.Status)).
		Bool("verbose", verbose).
		Msg("health check performed")
}

// ServeReady is the readiness handler: 200 when ready, 503 otherwise.
// Component results are only included with verbose=true.
func (m *Manager) ServeReady(w http.ResponseWriter, r *http.Request) {
	verbose := verboseRequested(r)
	resp := m.Ready(r.Context())
	if !verbose {
		resp.Checks = nil
	}

	code := http.StatusOK
	if !resp.Ready {
		code = http.StatusServiceUnavailable
	}
	writeCheckResponse(w, r, code, resp, "readiness")

	logger := log.WithComponentFromContext(r.Context(), "readiness")
	logger.Debug().
		Str(log.FieldEvent, "readiness.checked").
		Str("status", string(resp.Status)).
		Bool("ready", resp.Ready).
		Msg("readiness check performed")
}
