// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ManuGH/clipgate/internal/api"
	"github.com/ManuGH/clipgate/internal/config"
	"github.com/ManuGH/clipgate/internal/daemon"
	cglog "github.com/ManuGH/clipgate/internal/log"
	"github.com/ManuGH/clipgate/internal/metrics"
	"github.com/ManuGH/clipgate/internal/telemetry"
	"github.com/ManuGH/clipgate/internal/validation"
	"github.com/ManuGH/clipgate/internal/version"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "config":
			os.Exit(runConfigCLI(os.Args[2:], os.Stdout, os.Stderr))
		case "healthcheck":
			os.Exit(runHealthcheckCLI(os.Args[2:], os.Stdout, os.Stderr))
		}
	}

	showVersion := flag.Bool("version", false, "print version and exit")
	configPath := flag.String("config", "", "path to config file (YAML)")
	flag.Parse()

	if *showVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	// Safe defaults until the config is loaded.
	cglog.Configure(cglog.Config{
		Level:   "info",
		Service: cglog.DefaultService,
		Version: version.Version,
	})
	logger := cglog.WithComponent("daemon")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, resolveConfigPath(*configPath)); err != nil {
		logger.Fatal().
			Err(err).
			Str(cglog.FieldEvent, "daemon.failed").
			Msg("daemon failed")
	}

	logger.Info().Msg("server exiting")
}

// resolveConfigPath prefers the -config flag over CLIPGATE_CONFIG. Empty means env and defaults only.
func resolveConfigPath(flagValue string) string {
	if p := strings.TrimSpace(flagValue); p != "" {
		return p
	}
	return strings.TrimSpace(os.Getenv(config.EnvConfigPath))
}

// run loads the configuration, wires every component and blocks until ctx is cancelled.
func run(ctx context.Context, configPath string) error {
	loader := config.NewLoader(configPath, version.Version)
	cfg, err := loader.Load()
	if err != nil {
		return fmt.Errorf("load configuration (path %q): %w", configPath, err)
	}

	configureLogging(cfg, os.Stdout)
	logger := cglog.WithComponent("daemon")

	source := "env+defaults"
	if configPath != "" {
		source = "file"
	}
	logger.Info().
		Str(cglog.FieldEvent, "config.loaded").
		Str("source", source).
		Str(cglog.FieldPath, configPath).
		Msg("configuration loaded")

	logger.Info().
		Str(cglog.FieldEvent, "startup").
		Str("version", version.Version).
		Str("commit", version.Commit).
		Str("build_date", version.Date).
		Str(cglog.FieldListenAddr, cfg.Server.ListenAddr).
		Str(cglog.FieldPath, cfg.Video.Path).
		Str(cglog.FieldMimeType, cfg.Video.MimeType).
		Msg("starting clipgate")

	metrics.RecordBuildInfo(version.Version, version.Commit)

	if err := validation.PerformStartupChecks(cfg); err != nil {
		logger.Warn().
			Err(err).
			Str(cglog.FieldEvent, "startup.check_failed").
			Msg("video is not servable yet, /api/ask answers 404 until it is")
	}

	tp, err := telemetry.NewProvider(ctx, telemetry.Config{
		Enabled:        cfg.Tracing.Enabled,
		ServiceName:    serviceName(cfg),
		ServiceVersion: version.Version,
		ExporterType:   cfg.Tracing.Exporter,
		Endpoint:       cfg.Tracing.Endpoint,
		SamplingRate:   cfg.Tracing.SamplingRate,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	srv := api.New(cfg)

	deps := daemon.Deps{
		Logger:     logger,
		APIHandler: srv.Handler(),
	}
	if cfg.Metrics.Enabled {
		deps.MetricsHandler = promhttp.Handler()
		deps.MetricsAddr = cfg.Metrics.ListenAddr
	}

	mgr, err := daemon.NewManager(cfg.Server, deps)
	if err != nil {
		_ = tp.Shutdown(context.WithoutCancel(ctx))
		return fmt.Errorf("create daemon manager: %w", err)
	}
	mgr.RegisterShutdownHook("telemetry", tp.Shutdown)

	cfgHolder := config.NewConfigHolder(cfg, loader)
	defer cfgHolder.Stop()

	app := daemon.NewApp(logger, mgr, cfgHolder,
		srv,
		daemon.ApplierFunc(func(next config.AppConfig) { configureLogging(next, os.Stdout) }),
	)
	return app.Run(ctx)
}

func configureLogging(cfg config.AppConfig, out io.Writer) {
	cglog.Configure(cglog.Config{
		Level:   cfg.EffectiveLogLevel(),
		Output:  out,
		Service: serviceName(cfg),
		Version: cfg.Version,
		Console: cfg.Debug,
	})
}

func serviceName(cfg config.AppConfig) string {
	if cfg.LogService != "" {
		return cfg.LogService
	}
	return cglog.DefaultService
}
