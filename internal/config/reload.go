// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"

	"github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/metrics"
)

const defaultReloadDebounce = 500 * time.Millisecond

// ConfigHolder publishes the active AppConfig and swaps it on reload.
// A reload that fails to load or validate leaves the active config in place.
type ConfigHolder struct {
	loader   *Loader
	logger   zerolog.Logger
	debounce time.Duration

	// reloadMu orders reloads so listeners see configs in activation order.
	reloadMu sync.Mutex

	mu      sync.RWMutex
	current AppConfig

	watchMu sync.Mutex
	watcher *fsnotify.Watcher

	subsMu sync.RWMutex
	subs   []chan<- AppConfig
}

// NewConfigHolder starts out with initial, which loader produced.
func NewConfigHolder(initial AppConfig, loader *Loader) *ConfigHolder {
	return &ConfigHolder{
		loader:   loader,
		logger:   log.WithComponent("config"),
		debounce: defaultReloadDebounce,
		current:  initial,
	}
}

// Get returns a copy of the active configuration.
func (h *ConfigHolder) Get() AppConfig {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current.Clone()
}

// Reload runs the loader again and, on success, activates the result and
// notifies listeners. Concurrent calls (watcher and SIGHUP) run one at a time.
func (h *ConfigHolder) Reload(_ context.Context) error {
	h.reloadMu.Lock()
	defer h.reloadMu.Unlock()

	next, err := h.loader.Load()
	if err != nil {
		metrics.RecordConfigReload(false)
		h.logger.Error().Err(err).Str(log.FieldEvent, "config.reload_failed").Msg("configuration rejected")
		return fmt.Errorf("reload config: %w", err)
	}

	h.mu.Lock()
	prev := h.current
	h.current = next
	h.mu.Unlock()

	metrics.RecordConfigReload(true)
	h.reportChanges(prev, next)
	h.broadcast(next)
	h.logger.Info().Str(log.FieldEvent, "config.reloaded").Msg("configuration reloaded")
	return nil
}

// StartWatcher reloads whenever the config file changes. The directory is
// watched rather than the file so editors that write a temp file and rename
// it over the original are seen too. Without a file it does nothing.
func (h *ConfigHolder) StartWatcher(ctx context.Context) error {
	path := h.loader.Path()
	if path == "" {
		h.logger.Debug().Str(log.FieldEvent, "config.watcher_disabled").Msg("no config file to watch")
		return nil
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(path), err)
	}

	h.watchMu.Lock()
	h.watcher = w
	h.watchMu.Unlock()

	h.logger.Info().Str(log.FieldEvent, "config.watcher_started").Str(log.FieldPath, path).Msg("watching config file")
	go h.watch(ctx, w, filepath.Clean(path))
	return nil
}

// relevant reports whether ev may have changed the content at target.
func relevant(ev fsnotify.Event, target string) bool {
	if filepath.Clean(ev.Name) != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}

func (h *ConfigHolder) watch(ctx context.Context, w *fsnotify.Watcher, target string) {
	var pending *time.Timer
	defer func() {
		if pending != nil {
			pending.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			_ = w.Close()
			return

		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if !relevant(ev, target) {
				continue
			}
			// Editors emit bursts; only the last event of a burst reloads.
			if pending != nil {
				pending.Stop()
			}
			pending = time.AfterFunc(h.debounce, func() {
				if ctx.Err() == nil {
					_ = h.Reload(ctx)
				}
			})

		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			h.logger.Warn().Err(err).Str(log.FieldEvent, "config.watcher_error").Msg("config watcher error")
		}
	}
}

// Stop closes the watcher, if one is running.
func (h *ConfigHolder) Stop() {
	h.watchMu.Lock()
	defer h.watchMu.Unlock()
	if h.watcher != nil {
		_ = h.watcher.Close()
		h.watcher = nil
	}
}

// RegisterListener subscribes ch to accepted configs. Sends never block, so
// a listener whose buffer is full misses that update.
func (h *ConfigHolder) RegisterListener(ch chan<- AppConfig) {
	h.subsMu.Lock()
	defer h.subsMu.Unlock()
	h.subs = append(h.subs, ch)
}

func (h *ConfigHolder) broadcast(cfg AppConfig) {
	h.subsMu.RLock()
	defer h.subsMu.RUnlock()
	for _, ch := range h.subs {
		select {
		case ch <- cfg.Clone():
		default:
			h.logger.Warn().Str(log.FieldEvent, "config.listener_skip").Msg("listener busy, update dropped")
		}
	}
}

// reportChanges logs what a reload changed. Only the video and the log
// settings apply live; everything else waits for a restart.
func (h *ConfigHolder) reportChanges(prev, next AppConfig) {
	if prev.Video != next.Video {
		h.logger.Info().
			Str(log.FieldEvent, "config.video_changed").
			Str(log.FieldPath, next.Video.Path).
			Str(log.FieldMimeType, next.Video.MimeType).
			Msg("serving new video")
	}
	if prev.EffectiveLogLevel() != next.EffectiveLogLevel() {
		h.logger.Info().
			Str(log.FieldEvent, "config.log_level_changed").
			Str("level", next.EffectiveLogLevel()).
			Msg("log level changed")
	}

	var restart []string
	if !slices.Equal(prev.AllowedOrigins, next.AllowedOrigins) {
		restart = append(restart, "api.allowedOrigins")
	}
	if prev.Server != next.Server {
		restart = append(restart, "server")
	}
	if prev.Metrics != next.Metrics {
		restart = append(restart, "metrics")
	}
	if prev.Tracing != next.Tracing {
		restart = append(restart, "tracing")
	}
	if prev.RateLimit != next.RateLimit {
		restart = append(restart, "rateLimit")
	}
	if len(restart) > 0 {
		h.logger.Warn().
			Str(log.FieldEvent, "config.restart_required").
			Strs("sections", restart).
			Msg("changed settings take effect after restart")
	}
}
