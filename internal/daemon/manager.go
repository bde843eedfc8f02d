// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package daemon runs the clipgate HTTP listeners and owns their lifecycle.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/ManuGH/clipgate/internal/config"
	"github.com/ManuGH/clipgate/internal/log"
)

// fallbackShutdownTimeout bounds shutdown when the config carries no timeout.
const fallbackShutdownTimeout = 15 * time.Second

// Listener names, also used as log fields.
const (
	listenerAPI     = "api"
	listenerMetrics = "metrics"
)

// ShutdownHook performs cleanup during graceful shutdown.
// Hooks run in reverse registration order (LIFO) after the listeners closed.
type ShutdownHook func(ctx context.Context) error

// Manager binds the listeners and tears them down again.
type Manager interface {
	// Start binds every listener, then blocks until ctx is cancelled or a server fails.
	Start(ctx context.Context) error

	// Shutdown drains the listeners and runs the shutdown hooks.
	Shutdown(ctx context.Context) error

	// RegisterShutdownHook adds a hook to run during Shutdown.
	RegisterShutdownHook(name string, hook ShutdownHook)
}

// listener is one HTTP server together with the address it should bind.
type listener struct {
	name string
	addr string
	srv  *http.Server

	bound net.Addr
}

type namedHook struct {
	name string
	hook ShutdownHook
}

type manager struct {
	serverCfg config.ServerConfig
	logger    zerolog.Logger

	// listeners are bound in order and shut down in reverse.
	listeners []*listener
	ready     chan struct{}

	mu       sync.Mutex
	hooks    []namedHook
	started  bool
	stopping bool
}

// NewManager validates deps and prepares the API listener and, when
// deps.MetricsAddr is set, a separate metrics listener.
func NewManager(serverCfg config.ServerConfig, deps Deps) (Manager, error) {
	if err := deps.Validate(); err != nil {
		return nil, fmt.Errorf("invalid dependencies: %w", err)
	}
	if serverCfg.ShutdownTimeout <= 0 {
		serverCfg.ShutdownTimeout = fallbackShutdownTimeout
	}

	m := &manager{
		serverCfg: serverCfg,
		logger:    deps.Logger.With().Str(log.FieldComponent, "manager").Logger(),
		ready:     make(chan struct{}),
	}

	if deps.MetricsAddr != "" {
		m.listeners = append(m.listeners, &listener{
			name: listenerMetrics,
			addr: deps.MetricsAddr,
			srv: &http.Server{
				Handler:           deps.MetricsHandler,
				ReadHeaderTimeout: serverCfg.ReadTimeout / 2,
			},
		})
	}
	m.listeners = append(m.listeners, &listener{
		name: listenerAPI,
		addr: serverCfg.ListenAddr,
		srv: &http.Server{
			Handler:           deps.APIHandler,
			ReadTimeout:       serverCfg.ReadTimeout,
			ReadHeaderTimeout: serverCfg.ReadTimeout / 2,
			WriteTimeout:      serverCfg.WriteTimeout,
			IdleTimeout:       serverCfg.IdleTimeout,
			MaxHeaderBytes:    serverCfg.MaxHeaderBytes,
		},
	})
	return m, nil
}

func (m *manager) Start(ctx context.Context) error {
	if ctx == nil {
		return errors.New("start context is nil")
	}

	m.mu.Lock()
	if m.started {
		m.mu.Unlock()
		return ErrManagerAlreadyStarted
	}
	m.started = true
	m.mu.Unlock()

	m.logger.Info().
		Str(log.FieldListenAddr, m.serverCfg.ListenAddr).
		Dur("read_timeout", m.serverCfg.ReadTimeout).
		Dur("write_timeout", m.serverCfg.WriteTimeout).
		Dur("shutdown_timeout", m.serverCfg.ShutdownTimeout).
		Msg("starting daemon manager")

	serveErr := make(chan error, len(m.listeners))
	for _, l := range m.listeners {
		ln, err := net.Listen("tcp", l.addr)
		if err != nil {
			err = fmt.Errorf("%w: %s listener on %s: %w", ErrServerStartFailed, l.name, l.addr, err)
			m.logger.Error().Err(err).Str(log.FieldEvent, "server.start_failed").Msg("failed to bind listener")
			return m.stopAfter(ctx, err)
		}
		m.mu.Lock()
		l.bound = ln.Addr()
		m.mu.Unlock()
		m.serve(l, ln, serveErr)
	}
	close(m.ready)

	select {
	case err := <-serveErr:
		m.logger.Error().Err(err).Msg("server failed, initiating shutdown")
		return m.stopAfter(ctx, err)
	case <-ctx.Done():
		m.logger.Info().Msg("shutdown signal received")
		return m.stopAfter(ctx, nil)
	}
}

// serve runs l on ln in the background and reports unexpected exits on errs.
func (m *manager) serve(l *listener, ln net.Listener, errs chan<- error) {
	m.logger.Info().
		Str(log.FieldListenAddr, ln.Addr().String()).
		Str(log.FieldEvent, l.name+".server.listening").
		Msgf("%s server listening", l.name)

	go func() {
		if err := l.srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			m.logger.Error().
				Err(err).
				Str(log.FieldEvent, l.name+".server.failed").
				Msgf("%s server failed", l.name)
			errs <- fmt.Errorf("%s server: %w", l.name, err)
		}
	}()
}

// stopAfter shuts down on a context detached from ctx's cancellation and
// joins cause with any shutdown error.
func (m *manager) stopAfter(ctx context.Context, cause error) error {
	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.serverCfg.ShutdownTimeout)
	defer cancel()
	if err := m.Shutdown(shutdownCtx); err != nil {
		if cause == nil {
			return err
		}
		return errors.Join(cause, err)
	}
	return cause
}

// boundAddrs blocks until every listener is bound. metricsAddr is nil when metrics are off.
func (m *manager) boundAddrs(ctx context.Context) (apiAddr, metricsAddr net.Addr, err error) {
	select {
	case <-m.ready:
	case <-ctx.Done():
		return nil, nil, ctx.Err()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, l := range m.listeners {
		switch l.name {
		case listenerAPI:
			apiAddr = l.bound
		case listenerMetrics:
			metricsAddr = l.bound
		}
	}
	return apiAddr, metricsAddr, nil
}

func (m *manager) Shutdown(ctx context.Context) error {
	if ctx == nil {
		return errors.New("shutdown context is nil")
	}

	m.mu.Lock()
	switch {
	case m.stopping:
		m.mu.Unlock()
		return nil
	case !m.started:
		m.mu.Unlock()
		return ErrManagerNotStarted
	}
	m.stopping = true
	hooks := append([]namedHook(nil), m.hooks...)
	m.mu.Unlock()

	m.logger.Info().Msg("shutting down daemon manager")

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), m.serverCfg.ShutdownTimeout)
	defer cancel()

	var errs []error
	for i := len(m.listeners) - 1; i >= 0; i-- {
		l := m.listeners[i]
		// Shutdown on a server that never served returns immediately.
		if err := l.srv.Shutdown(shutdownCtx); err != nil {
			errs = append(errs, fmt.Errorf("%s server shutdown: %w", l.name, err))
		}
	}

	for i := len(hooks) - 1; i >= 0; i-- {
		h := hooks[i]
		start := time.Now()
		err := h.hook(shutdownCtx)
		ev := m.logger.Debug()
		if err != nil {
			ev = m.logger.Error().Err(err)
			errs = append(errs, fmt.Errorf("hook %s: %w", h.name, err))
		}
		ev.Str("hook", h.name).Dur(log.FieldDuration, time.Since(start)).Msg("shutdown hook finished")
	}

	if len(errs) > 0 {
		m.logger.Error().Int("error_count", len(errs)).Msg("shutdown completed with errors")
		return fmt.Errorf("shutdown errors: %w", errors.Join(errs...))
	}
	m.logger.Info().Msg("daemon manager stopped cleanly")
	return nil
}

func (m *manager) RegisterShutdownHook(name string, hook ShutdownHook) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.hooks = append(m.hooks, namedHook{name: name, hook: hook})
}
