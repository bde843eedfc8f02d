// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader resolves an AppConfig from defaults, an optional YAML file and
// CLIPGATE_* environment variables, in increasing order of precedence.
// A Loader holds no mutable state, so concurrent Loads are safe.
type Loader struct {
	configPath string
	version    string
}

// NewLoader returns a loader for configPath. An empty path skips the file layer.
func NewLoader(configPath, version string) *Loader {
	return &Loader{configPath: configPath, version: version}
}

// Path returns the config file path the loader reads, if any.
func (l *Loader) Path() string {
	return l.configPath
}

// Load builds and validates the configuration. On a validation failure the
// merged config is still returned next to the error.
func (l *Loader) Load() (AppConfig, error) {
	var cfg AppConfig
	l.setDefaults(&cfg)

	if l.configPath != "" {
		fc, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		l.mergeFileConfig(&cfg, fc)
	}

	if err := l.mergeEnvConfig(&cfg); err != nil {
		return cfg, fmt.Errorf("apply environment: %w", err)
	}
	cfg.Version = l.version

	if err := Validate(cfg); err != nil {
		return cfg, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

func (l *Loader) loadFile(path string) (*FileConfig, error) {
	path = filepath.Clean(path)
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
	default:
		return nil, fmt.Errorf("unsupported config format %q: only YAML is supported", ext)
	}

	// #nosec G304 -- the operator chooses the config path
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return parseFileConfig(data)
}

// parseFileConfig decodes exactly one YAML document and rejects unknown keys.
// An empty document yields an empty FileConfig.
func parseFileConfig(data []byte) (*FileConfig, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	fc := &FileConfig{}
	switch err := dec.Decode(fc); {
	case errors.Is(err, io.EOF):
		return fc, nil
	case err != nil && isUnknownField(err):
		return nil, fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
	case err != nil:
		return nil, fmt.Errorf("parse yaml: %w", err)
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, errors.New("config file must contain a single YAML document")
	}
	return fc, nil
}

// isUnknownField reports whether err came from KnownFields rejecting a key.
// yaml.v3 only exposes this through the message text.
func isUnknownField(err error) bool {
	var te *yaml.TypeError
	if !errors.As(err, &te) {
		return false
	}
	for _, msg := range te.Errors {
		if strings.Contains(msg, "not found in type") {
			return true
		}
	}
	return false
}
