// SPDX-License-Identifier: MIT

package main

import (
	"flag"
	"fmt"
	"io"
	"net/http"
	"time"
)

func runHealthcheckCLI(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("healthcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	mode := fs.String("mode", "ready", "healthcheck mode: ready (default) or live")
	addr := fs.String("addr", "localhost:5000", "API address to check")
	timeout := fs.Duration("timeout", 5*time.Second, "check timeout")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	var path string
	switch *mode {
	case "ready":
		path = "/readyz"
	case "live":
		path = "/healthz"
	default:
		fmt.Fprintf(stderr, "Unknown healthcheck mode: %s (use ready or live)\n", *mode)
		return 2
	}

	url := fmt.Sprintf("http://%s%s", *addr, path)
	client := http.Client{
		Timeout: *timeout,
	}

	resp, err := client.Get(url)
	if err != nil {
		fmt.Fprintf(stderr, "Healthcheck failed (network): %v\n", err)
		return 1
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		fmt.Fprintf(stderr, "Healthcheck failed (status): %s\n", resp.Status)
		return 1
	}

	fmt.Fprintf(stdout, "Healthcheck successful (%s)\n", *mode)
	return 0
}
