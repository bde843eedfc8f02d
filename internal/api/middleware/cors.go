// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package middleware

import (
	"net/http"
	"strings"
)

const (
	corsAllowMethods = "GET, POST, OPTIONS"
	corsAllowHeaders = "Content-Type, X-Request-ID, Authorization"
	corsMaxAge       = "600"
)

// CORS returns a middleware that sets Cross-Origin Resource Sharing headers.
// An empty list or a "*" entry allows every origin; the request origin is reflected.
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, origin := range allowedOrigins {
		allowed[strings.TrimSpace(origin)] = true
	}
	allowAll := len(allowed) == 0 || allowed["*"]

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")

			h := w.Header()
			h.Add("Vary", "Origin")
			switch {
			case origin == "":
				// Non-browser clients (curl, backend-to-backend).
				h.Set("Access-Control-Allow-Origin", "*")
			case allowAll || allowed[origin]:
				h.Set("Access-Control-Allow-Origin", origin)
			}
			// Unlisted origins get no allow header and the browser blocks the response.

			h.Set("Access-Control-Allow-Methods", corsAllowMethods)
			h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
			h.Set("Access-Control-Expose-Headers", "Content-Length, X-Request-ID")
			h.Set("Access-Control-Max-Age", corsMaxAge)

			if r.Method == http.MethodOptions {
				h.Set("Allow", corsAllowMethods)
				w.WriteHeader(http.StatusNoContent)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
