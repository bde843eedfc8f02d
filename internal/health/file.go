// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package health

import (
	"context"
	"os"
)

// NewFileChecker reports whether path() names a non-empty regular file.
// path is evaluated on every check so a reloaded location is followed.
func NewFileChecker(name string, path func() string) Checker {
	return CheckerFunc(name, func(context.Context) CheckResult {
		return checkFile(path())
	})
}

func checkFile(path string) CheckResult {
	if path == "" {
		return CheckResult{Status: StatusUnhealthy, Message: "not configured"}
	}

	info, err := os.Stat(path)
	switch {
	case err != nil:
		// Same rule as the ask handler: any stat failure means absent.
		return CheckResult{Status: StatusUnhealthy, Error: "file not found", Message: path}
	case !info.Mode().IsRegular():
		return CheckResult{Status: StatusUnhealthy, Error: "not a regular file", Message: path}
	case info.Size() == 0:
		return CheckResult{Status: StatusDegraded, Message: "file is empty"}
	}
	return CheckResult{Status: StatusHealthy, Message: "file exists"}
}

type informational struct {
	Checker
}

// Informational downgrades c's unhealthy results to degraded so it never flips readiness.
func Informational(c Checker) Checker {
	return informational{Checker: c}
}

func (i informational) Check(ctx context.Context) CheckResult {
	res := i.Checker.Check(ctx)
	if res.Status == StatusUnhealthy {
		res.Status = StatusDegraded
	}
	return res
}
