// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config provides configuration management for clipgate.
//
// Configuration is resolved with the precedence ENV > YAML file > defaults
// into an immutable AppConfig. Reloads build a fresh AppConfig and swap it
// atomically (see ConfigHolder).
package config
