package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"stocksphere/internal/handlers"
	"stocksphere/internal/jobs/background"
	"stocksphere/internal/middleware"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and background jobs",
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := setup(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return a.serve(ctx)
	},
}

func (a *app) serve(ctx context.Context) error {
	if err := a.store.Initialize(ctx); err != nil {
		// Reads fall back to the seed, so the API stays usable.
		a.log.Error("store initialization failed", zap.Error(err))
	}

	var backups background.Backuper
	var backupPinger handlers.Pinger
	if a.snapshots != nil {
		backups = a.snapshots
		backupPinger = a.snapshots
	}

	scheduler, err := background.NewJobScheduler(a.alerts, backups, background.Intervals{
		Alerts: a.cfg.Jobs.AlertInterval.Duration,
		Backup: a.cfg.Jobs.BackupInterval.Duration,
	}, a.log)
	if err != nil {
		return err
	}
	scheduler.Start()
	defer func() {
		if err := scheduler.Stop(); err != nil {
			a.log.Warn("scheduler shutdown", zap.Error(err))
		}
	}()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(echoMiddleware.RequestID())
	e.Use(middleware.RequestLogger(a.log))
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())
	e.Pre(echoMiddleware.RemoveTrailingSlash())

	routes := &handlers.Routes{
		Health:       handlers.NewHealthHandlers(version, a.store, backupPinger),
		Auth:         handlers.NewAuthHandlers(a.sessions, a.log),
		Inventory:    handlers.NewInventoryHandlers(a.store, a.log),
		Suppliers:    handlers.NewSupplierHandlers(a.store, a.log),
		Transactions: handlers.NewTransactionHandlers(a.store, a.log),
		Dashboard:    handlers.NewDashboardHandlers(a.analytics, a.log),
		Jobs:         handlers.NewJobHandlers(scheduler, a.alerts, a.log),
	}
	routes.Register(e,
		middleware.NewVersionMiddleware(version),
		middleware.NewAuditMiddleware(a.log),
		middleware.Protect(a.sessions, a.log),
	)

	addr := fmt.Sprintf(":%d", a.cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		a.log.Info("stocksphere server starting",
			zap.String("version", version),
			zap.String("addr", addr),
			zap.String("backend", a.cfg.Storage.Backend),
			zap.Bool("auth", a.sessions.Enabled()),
			zap.Bool("backups", a.snapshots != nil),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}
