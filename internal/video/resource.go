// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package video describes the single file served by the ask endpoint.
package video

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultMimeType is the content type used when none is configured.
const DefaultMimeType = "video/mp4"

// ErrNotFound is returned when the configured path does not name an existing regular file.
var ErrNotFound = errors.New("video not found")

// Resource is an immutable reference to a video file on local disk.
type Resource struct {
	Path     string
	MimeType string
}

// NewResource returns a Resource, falling back to DefaultMimeType for an empty mime type.
func NewResource(path, mimeType string) Resource {
	if mimeType == "" {
		mimeType = DefaultMimeType
	}
	return Resource{Path: path, MimeType: mimeType}
}

// Stat reports the file info of the resource. Any stat failure (missing,
// ENOTDIR, ENAMETOOLONG, symlink loops) and anything that is not a regular
// file yield ErrNotFound; the cause stays in the chain.
func (r Resource) Stat() (fs.FileInfo, error) {
	info, err := os.Stat(r.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s is not a regular file", ErrNotFound, r.Path)
	}
	return info, nil
}

// Open checks the resource and opens it read-only. The file is never opened
// when Stat fails.
func (r Resource) Open() (*os.File, fs.FileInfo, error) {
	info, err := r.Stat()
	if err != nil {
		return nil, nil, err
	}
	// #nosec G304 -- the path is operator configuration, not request input
	f, err := os.Open(r.Path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			// Removed between stat and open.
			return nil, nil, fmt.Errorf("%w: %s", ErrNotFound, r.Path)
		}
		return nil, nil, fmt.Errorf("open video %s: %w", r.Path, err)
	}
	return f, info, nil
}
