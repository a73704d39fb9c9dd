package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/investment-tracker-backend/internal/api"
	"github.com/ndewijer/investment-tracker-backend/internal/app"
	"github.com/ndewijer/investment-tracker-backend/internal/config"
	"github.com/ndewijer/investment-tracker-backend/internal/logging"
	"github.com/ndewijer/investment-tracker-backend/internal/scheduler"
	"github.com/ndewijer/investment-tracker-backend/internal/version"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logger := logging.New(cfg.Logging)
	log.Logger = logger

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(ctx, cfg, logger, app.Options{})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to initialise application")
	}

	// The dispatcher logs its own failures.
	application.Dispatcher.Start(context.Background())

	sched, err := scheduler.New(cfg.Snapshot.Cron, application.Services.Snapshots, cfg.Snapshot.Timeout, logging.Component(logger, "scheduler"))
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create snapshot scheduler")
	}
	sched.Start()

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      api.NewRouter(application.Services, cfg, logging.Component(logger, "http")),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	serverErr := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", cfg.Server.Addr).Str("version", version.Version).Msg("starting server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	exitCode := 0
	select {
	case <-ctx.Done():
	case err := <-serverErr:
		logger.Error().Err(err).Msg("server failed")
		exitCode = 1
	}

	logger.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
		exitCode = 1
	}
	if err := sched.Stop(shutdownCtx); err != nil {
		logger.Warn().Err(err).Msg("snapshot scheduler did not stop in time")
	}
	application.Dispatcher.Stop()
	if err := application.Close(); err != nil {
		logger.Warn().Err(err).Msg("failed to release resources")
	}

	logger.Info().Msg("server exited")
	os.Exit(exitCode)
}
