// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_CrossOriginPostAllowed(t *testing.T) {
	r := NewRouter(StackConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
	})
	r.Post("/api/ask", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodPost, "/api/ask", nil)
	req.Host = "api.example.com"
	req.Header.Set("Origin", "http://localhost:3000")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "http://localhost:3000", w.Header().Get("Access-Control-Allow-Origin"))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))
}

func TestStack_RateLimitOnlyWhenEnabled(t *testing.T) {
	tests := []struct {
		name     string
		enabled  bool
		wantLast int
	}{
		{name: "disabled", enabled: false, wantLast: http.StatusOK},
		{name: "enabled", enabled: true, wantLast: http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := NewRouter(StackConfig{EnableRateLimit: tt.enabled, RateLimitRequestsRPM: 2})
			r.Post("/api/ask", func(w http.ResponseWriter, _ *http.Request) {})

			var last int
			for i := 0; i < 3; i++ {
				req := httptest.NewRequest(http.MethodPost, "/api/ask", nil)
				req.RemoteAddr = "10.1.1.1:4000"
				w := httptest.NewRecorder()
				r.ServeHTTP(w, req)
				last = w.Code
			}
			assert.Equal(t, tt.wantLast, last)
		})
	}
}

func TestStack_MethodNotAllowed(t *testing.T) {
	r := NewRouter(StackConfig{EnableCORS: true})
	r.Post("/api/ask", func(http.ResponseWriter, *http.Request) {})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/ask", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
