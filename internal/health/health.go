// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package health serves liveness and readiness endpoints backed by pluggable component checks.
package health

import (
	"context"
	"sync"
	"time"
)

// Status is the outcome of a check or of a whole endpoint.
type Status string

const (
	StatusHealthy   Status = "healthy"
	StatusDegraded  Status = "degraded"
	StatusUnhealthy Status = "unhealthy"
)

// severity orders statuses so the worst one wins when folding results.
func (s Status) severity() int {
	switch s {
	case StatusHealthy:
		return 0
	case StatusDegraded:
		return 1
	default:
		return 2
	}
}

// DefaultCheckTimeout bounds a single component check.
const DefaultCheckTimeout = 2 * time.Second

// CheckResult is the outcome of one component check.
type CheckResult struct {
	Status     Status `json:"status"`
	Message    string `json:"message,omitempty"`
	Error      string `json:"error,omitempty"`
	DurationMS int64  `json:"duration_ms"`
}

// HealthResponse is the body of the liveness endpoint.
type HealthResponse struct {
	Status    Status                 `json:"status"`
	Version   string                 `json:"version,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
	Uptime    int64                  `json:"uptime_seconds"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// ReadinessResponse is the body of the readiness endpoint.
type ReadinessResponse struct {
	Ready     bool                   `json:"ready"`
	Status    Status                 `json:"status"`
	Timestamp time.Time              `json:"timestamp"`
	Checks    map[string]CheckResult `json:"checks,omitempty"`
}

// Checker is one named component check.
type Checker interface {
	Name() string
	Check(ctx context.Context) CheckResult
}

type funcChecker struct {
	name string
	fn   func(ctx context.Context) CheckResult
}

func (f funcChecker) Name() string                          { return f.name }
func (f funcChecker) Check(ctx context.Context) CheckResult { return f.fn(ctx) }

// CheckerFunc adapts fn to a Checker called name.
func CheckerFunc(name string, fn func(ctx context.Context) CheckResult) Checker {
	return funcChecker{name: name, fn: fn}
}

// Manager runs the registered checks for both endpoints.
type Manager struct {
	version      string
	startTime    time.Time
	checkTimeout time.Duration

	mu       sync.RWMutex
	checkers []Checker
}

// NewManager returns a Manager reporting version in liveness responses.
func NewManager(version string) *Manager {
	return &Manager{
		version:      version,
		startTime:    time.Now(),
		checkTimeout: DefaultCheckTimeout,
	}
}

// RegisterChecker adds c to every subsequent health or readiness call.
func (m *Manager) RegisterChecker(c Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.checkers = append(m.checkers, c)
}

func (m *Manager) registered() []Checker {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]Checker(nil), m.checkers...)
}

// run executes checkers concurrently, each under its own timeout, and returns
// the results keyed by name together with the worst status seen.
func (m *Manager) run(ctx context.Context, checkers []Checker) (map[string]CheckResult, Status) {
	results := make([]CheckResult, len(checkers))
	var wg sync.WaitGroup
	for i, c := range checkers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = m.runOne(ctx, c)
		}()
	}
	wg.Wait()

	byName := make(map[string]CheckResult, len(checkers))
	overall := StatusHealthy
	for i, c := range checkers {
		byName[c.Name()] = results[i]
		if results[i].Status.severity() > overall.severity() {
			overall = results[i].Status
		}
	}
	return byName, overall
}

// runOne bounds c by checkTimeout even when c ignores its context, such as a
// stat stuck on a dead network mount. The abandoned call finishes in the
// background and its result is discarded.
func (m *Manager) runOne(ctx context.Context, c Checker) CheckResult {
	checkCtx, cancel := context.WithTimeout(ctx, m.checkTimeout)
	defer cancel()

	start := time.Now()
	done := make(chan CheckResult, 1)
	go func() { done <- c.Check(checkCtx) }()

	var res CheckResult
	select {
	case res = <-done:
	case <-checkCtx.Done():
		res = CheckResult{Status: StatusUnhealthy, Error: "check timed out", Message: checkCtx.Err().Error()}
	}
	res.DurationMS = time.Since(start).Milliseconds()
	return res
}

// Health answers the liveness check. The process is alive regardless of
// component state; verbose runs the checks and reports their folded status.
func (m *Manager) Health(ctx context.Context, verbose bool) HealthResponse {
	resp := HealthResponse{
		Status:    StatusHealthy,
		Version:   m.version,
		Timestamp: time.Now().UTC(),
		Uptime:    int64(time.Since(m.startTime).Seconds()),
	}
	if !verbose {
		return resp
	}
	if checkers := m.registered(); len(checkers) > 0 {
		resp.Checks, resp.Status = m.run(ctx, checkers)
	}
	return resp
}

// Ready answers the readiness check. Only an unhealthy check makes the
// service not ready; degraded is still ready.
func (m *Manager) Ready(ctx context.Context) ReadinessResponse {
	resp := ReadinessResponse{
		Ready:     true,
		Status:    StatusHealthy,
		Timestamp: time.Now().UTC(),
	}
	if checkers := m.registered(); len(checkers) > 0 {
		resp.Checks, resp.Status = m.run(ctx, checkers)
		resp.Ready = resp.Status != StatusUnhealthy
	}
	return resp
}
