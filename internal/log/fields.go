// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldRequestID = "request_id"
	FieldTraceID   = "trace_id"

	// Process fields
	FieldEvent     = "event"
	FieldComponent = "component"

	// HTTP fields
	FieldMethod     = "method"
	FieldRoute      = "route"
	FieldStatus     = "status"
	FieldBytes      = "bytes"
	FieldDuration   = "duration"
	FieldRemoteAddr = "remote_addr"
	FieldOrigin     = "origin"
	FieldUserAgent  = "user_agent"

	// Media fields
	FieldPath     = "path"
	FieldMimeType = "mime_type"
	FieldSize     = "size"

	// Network fields
	FieldListenAddr = "listen_addr"
)
