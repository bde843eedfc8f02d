// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package daemon

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/clipgate/internal/config"
	"github.com/ManuGH/clipgate/internal/log"
)

// ConfigApplier receives every configuration the holder accepts.
type ConfigApplier interface {
	ApplyConfig(cfg config.AppConfig)
}

// ApplierFunc adapts a function to ConfigApplier.
type ApplierFunc func(cfg config.AppConfig)

// ApplyConfig calls f(cfg).
func (f ApplierFunc) ApplyConfig(cfg config.AppConfig) { f(cfg) }

// App ties the listeners to the configuration lifecycle: file watching,
// SIGHUP reloads and fan-out of accepted configs to appliers.
type App struct {
	logger   zerolog.Logger
	manager  Manager
	holder   *config.ConfigHolder
	appliers []ConfigApplier

	// reloadSignal triggers holder.Reload; nil disables it.
	reloadSignal os.Signal
}

// NewApp wires manager and holder. A nil holder runs the listeners with a
// fixed configuration.
func NewApp(logger zerolog.Logger, manager Manager, holder *config.ConfigHolder, appliers ...ConfigApplier) *App {
	return &App{
		logger:       logger.With().Str(log.FieldComponent, "app").Logger(),
		manager:      manager,
		holder:       holder,
		appliers:     appliers,
		reloadSignal: syscall.SIGHUP,
	}
}

// Run blocks until ctx is done or a listener fails.
func (a *App) Run(ctx context.Context) error {
	if a.manager == nil {
		return ErrMissingManager
	}

	g, ctx := errgroup.WithContext(ctx)

	if a.holder != nil {
		// A missing watcher only costs automatic reloads.
		if err := a.holder.StartWatcher(ctx); err != nil {
			a.logger.Warn().Err(err).Str(log.FieldEvent, "config.watcher_start_failed").Msg("config file will not be watched")
		}
		if len(a.appliers) > 0 {
			updates := make(chan config.AppConfig, 1)
			a.holder.RegisterListener(updates)
			g.Go(func() error { return a.applyLoop(ctx, updates) })
		}
		if a.reloadSignal != nil {
			g.Go(func() error { return a.signalLoop(ctx) })
		}
	}

	g.Go(func() error {
		if err := a.manager.Start(ctx); err != nil {
			_ = a.manager.Shutdown(context.Background())
			return err
		}
		return nil
	})

	return g.Wait()
}

// applyLoop treats each update as a wake-up and applies the holder's active
// config, so an update dropped on a full channel is caught up by the next one.
func (a *App) applyLoop(ctx context.Context, updates <-chan config.AppConfig) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-updates:
			cfg := a.holder.Get()
			for _, ap := range a.appliers {
				ap.ApplyConfig(cfg)
			}
		}
	}
}

func (a *App) signalLoop(ctx context.Context) error {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, a.reloadSignal)
	defer signal.Stop(sigs)

	for {
		select {
		case <-ctx.Done():
			return nil
		case sig := <-sigs:
			a.logger.Info().
				Str(log.FieldEvent, "config.reload_signal").
				Str("signal", sig.String()).
				Msg("reloading configuration")
			if err := a.holder.Reload(ctx); err != nil {
				a.logger.Warn().
					Err(err).
					Str(log.FieldEvent, "config.reload_failed").
					Msg("reload rejected, previous configuration stays active")
			}
		}
	}
}
