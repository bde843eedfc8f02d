// SPDX-License-Identifier: MIT

package api

import (
	"net/http"
	"strconv"
)

// Fixed error payloads. The ask endpoint contract requires these exact bytes.
var (
	bodyVideoNotFound = []byte(`{"error":"Video not found"}`)
	bodyInternalError = []byte(`{"error":"Internal server error"}`)
)

// writeRawJSON writes pre-encoded JSON with an explicit Content-Length.
func writeRawJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Length", strconv.Itoa(len(body)))
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// writeVideoNotFound writes the 404 answer for a missing video file.
func writeVideoNotFound(w http.ResponseWriter) {
	writeRawJSON(w, http.StatusNotFound, bodyVideoNotFound)
}

// writeInternalError writes a generic 500 without leaking the cause.
func writeInternalError(w http.ResponseWriter) {
	writeRawJSON(w, http.StatusInternalServerError, bodyInternalError)
}
