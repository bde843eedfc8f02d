// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixed(name string, status Status) Checker {
	return CheckerFunc(name, func(context.Context) CheckResult {
		return CheckResult{Status: status}
	})
}

func TestManager_Health(t *testing.T) {
	m := NewManager("v1.0.0")

	resp := m.Health(context.Background(), true)
	assert.Equal(t, StatusHealthy, resp.Status)
	assert.Equal(t, "v1.0.0", resp.Version)
	assert.GreaterOrEqual(t, resp.Uptime, int64(0))
	assert.Nil(t, resp.Checks)

	m.RegisterChecker(fixed("healthy", StatusHealthy))
	m.RegisterChecker(fixed("degraded", StatusDegraded))

	resp = m.Health(context.Background(), false)
	assert.Equal(t, StatusHealthy, resp.Status, "liveness ignores components unless verbose")
	assert.Nil(t, resp.Checks)

	resp = m.Health(context.Background(), true)
	assert.Equal(t, StatusDegraded, resp.Status)
	assert.Len(t, resp.Checks, 2)
	assert.Equal(t, StatusDegraded, resp.Checks["degraded"].Status)
}

func TestManager_Ready(t *testing.T) {
	tests := []struct {
		name       string
		checkers   []Checker
		wantReady  bool
		wantStatus Status
	}{
		{name: "no checkers", wantReady: true, wantStatus: StatusHealthy},
		{
			name:       "all healthy",
			checkers:   []Checker{fixed("a", StatusHealthy), fixed("b", StatusHealthy)},
			wantReady:  true,
			wantStatus: StatusHealthy,
		},
		{
			name:       "degraded is still ready",
			checkers:   []Checker{fixed("a", StatusDegraded)},
			wantReady:  true,
			wantStatus: StatusDegraded,
		},
		{
			name:       "unhealthy wins regardless of order",
			checkers:   []Checker{fixed("a", StatusDegraded), fixed("b", StatusUnhealthy), fixed("c", StatusHealthy)},
			wantReady:  false,
			wantStatus: StatusUnhealthy,
		},
		{
			name:       "informational unhealthy stays ready",
			checkers:   []Checker{Informational(fixed("a", StatusUnhealthy))},
			wantReady:  true,
			wantStatus: StatusDegraded,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewManager("v1.0.0")
			for _, c := range tt.checkers {
				m.RegisterChecker(c)
			}
			resp := m.Ready(context.Background())
			assert.Equal(t, tt.wantReady, resp.Ready)
			assert.Equal(t, tt.wantStatus, resp.Status)
			assert.Len(t, resp.Checks, len(tt.checkers))
		})
	}
}

func TestManager_ChecksRunConcurrentlyUnderTimeout(t *testing.T) {
	m := NewManager("v1.0.0")
	m.checkTimeout = 50 * time.Millisecond

	slow := func(name string) Checker {
		return CheckerFunc(name, func(ctx context.Context) CheckResult {
			<-ctx.Done()
			return CheckResult{Status: StatusUnhealthy, Error: ctx.Err().Error()}
		})
	}
	m.RegisterChecker(slow("a"))
	m.RegisterChecker(slow("b"))
	m.RegisterChecker(slow("c"))

	start := time.Now()
	resp := m.Ready(context.Background())

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.False(t, resp.Ready)
	for name, res := range resp.Checks {
		assert.Equal(t, StatusUnhealthy, res.Status, name)
		assert.GreaterOrEqual(t, res.DurationMS, int64(40), name)
	}
}

func TestManager_CheckIgnoringContextIsCutOff(t *testing.T) {
	m := NewManager("v1.0.0")
	m.checkTimeout = 50 * time.Millisecond

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	m.RegisterChecker(CheckerFunc("stuck", func(context.Context) CheckResult {
		<-release
		return CheckResult{Status: StatusHealthy}
	}))

	start := time.Now()
	resp := m.Ready(context.Background())

	assert.Less(t, time.Since(start), 500*time.Millisecond)
	assert.False(t, resp.Ready)
	require.Contains(t, resp.Checks, "stuck")
	assert.Equal(t, "check timed out", resp.Checks["stuck"].Error)
}

func TestStatusSeverity(t *testing.T) {
	assert.Less(t, StatusHealthy.severity(), StatusDegraded.severity())
	assert.Less(t, StatusDegraded.severity(), StatusUnhealthy.severity())
	assert.Equal(t, StatusUnhealthy.severity(), Status("bogus").severity())
}
