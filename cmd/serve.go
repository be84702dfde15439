package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bryan-cox/ticktock/internal/reminder"
	"github.com/bryan-cox/ticktock/internal/server"
	"github.com/bryan-cox/ticktock/internal/service"
	"github.com/bryan-cox/ticktock/internal/store"
	"github.com/bryan-cox/ticktock/internal/telemetry"
)

const shutdownTimeout = 10 * time.Second

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the timesheet backend.",
	Long:  `Serves the timesheet HTTP API, exposes Prometheus metrics, and runs the weekly reminder scan.`,
	RunE:  runServeCommand,
}

func init() {
	serveCmd.Flags().String("http-addr", ":5000", "HTTP listen address")
	serveCmd.Flags().String("metrics-addr", ":9090", "Prometheus metrics address; empty disables it")
	serveCmd.Flags().String("reminder-schedule", reminder.DefaultSchedule, "cron schedule (with seconds) for the reminder scan")

	bindFlag("http_addr", serveCmd.Flags(), "http-addr")
	bindFlag("metrics_addr", serveCmd.Flags(), "metrics-addr")
	bindFlag("reminder_schedule", serveCmd.Flags(), "reminder-schedule")
}

func runServeCommand(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	logger := slog.Default().With(slog.String("component", "server"))

	st, err := store.Open(cfg.Store, cfg.StorePath(), logger)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer func() { _ = st.Close() }()

	timesheets := service.NewTimesheetService(st, logger)
	auth := service.NewAuthService(st, logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	telemetry.StartMetricsServer(ctx, cfg.MetricsAddr, logger)

	rem, err := reminder.New(timesheets, cfg.ReminderSchedule, logger.With(slog.String("component", "reminder")))
	if err != nil {
		return err
	}
	rem.Start()
	defer rem.Stop()

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           server.New(timesheets, auth, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server starting",
			slog.String("addr", cfg.HTTPAddr),
			slog.String("store", cfg.Store),
			slog.String("path", cfg.StorePath()),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
	case <-ctx.Done():
		logger.Info("shutting down")
	}

	shutCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	logger.Info("stopped cleanly")
	return nil
}
