package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/pshcalc/pshcalc/internal/app"
	"github.com/pshcalc/pshcalc/internal/config"
	"github.com/pshcalc/pshcalc/internal/observability"
	"github.com/pshcalc/pshcalc/internal/report"
	"github.com/pshcalc/pshcalc/internal/server"
)

// runJob loads the configuration, applies the subcommand's job parameters,
// runs the job and prints the report. A signal cancels the job; the partial
// result is still printed.
func runJob(cmd *cobra.Command, opts *rootOptions, kind config.JobKind, job func(*config.JobConfig) error) error {
	cfg, err := loadConfig(cmd, opts)
	if err != nil {
		return err
	}
	cfg.Job.Kind = kind
	if err := job(&cfg.Job); err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg.Log, cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	sm := server.NewShutdownManager(server.DefaultShutdownConfig())
	sm.OnShutdownStart(cancel)

	var appOpts []app.Option
	if cfg.Metrics.Enabled {
		metrics := observability.NewMetrics()
		ms := server.NewMetricsServer(cfg.Metrics.Addr, metrics.Handler(), logger)
		if err := ms.Start(); err != nil {
			return err
		}
		sm.RegisterCloser(ms)
		appOpts = append(appOpts, app.WithMetrics(metrics))
	}

	application, err := app.New(cfg, logger, appOpts...)
	if err != nil {
		sm.Shutdown(context.Background(), "startup failed")
		return err
	}

	go func() {
		if err := sm.ListenForSignals(ctx); err != nil {
			logger.Warn("shutdown error", "error", err)
		}
	}()

	res, runErr := application.Run(ctx)
	runErr = interrupted(sm, runErr)

	if err := sm.Shutdown(context.Background(), "job finished"); err != nil {
		logger.Warn("shutdown error", "error", err)
	}
	if res != nil {
		if err := report.Write(cmd.OutOrStdout(), res); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return runErr
}

// interrupted attaches the shutdown reason to err when the job was stopped
// by a shutdown rather than failing on its own.
func interrupted(sm *server.ShutdownManager, err error) error {
	if err == nil || !sm.IsShuttingDown() {
		return err
	}
	return fmt.Errorf("interrupted (%s): %w", sm.Reason(), err)
}

// loadConfig applies defaults, then the config file, then the environment,
// then flags.
func loadConfig(cmd *cobra.Command, opts *rootOptions) (*config.Config, error) {
	var cfg *config.Config
	var err error

	if opts.configFile != "" {
		cfg, err = config.LoadFromFile(opts.configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	} else {
		cfg = config.DefaultConfig()
	}

	if err := config.LoadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	flags := cmd.Flags()
	if flags.Changed("log-level") {
		cfg.Log.Level = opts.logLevel
	}
	if flags.Changed("log-format") {
		cfg.Log.Format = opts.logFormat
	}
	if flags.Changed("metrics-addr") {
		cfg.Metrics.Addr = opts.metricsAddr
		cfg.Metrics.Enabled = opts.metricsAddr != ""
	}
	if flags.Changed("progress") {
		cfg.Progress.Interval = opts.progress
	}
	if flags.Changed("list") {
		cfg.Output.List = opts.list
	}
	if flags.Changed("limit") {
		cfg.Output.Limit = opts.limit
	}

	return cfg, nil
}

// newLogger builds the slog logger described by cfg, writing to w.
func newLogger(cfg config.LogConfig, w io.Writer) (*slog.Logger, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
	}

	handlerOpts := &slog.HandlerOptions{Level: level}
	switch cfg.Format {
	case "json":
		return slog.New(slog.NewJSONHandler(w, handlerOpts)), nil
	case "text", "":
		return slog.New(slog.NewTextHandler(w, handlerOpts)), nil
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}
}
