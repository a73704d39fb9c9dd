// Package app wires configuration, storage, pricing and services into one
// process-wide object shared by the HTTP server and the command line tool.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/api"
	"github.com/ndewijer/investment-tracker-backend/internal/config"
	"github.com/ndewijer/investment-tracker-backend/internal/database"
	"github.com/ndewijer/investment-tracker-backend/internal/logging"
	"github.com/ndewijer/investment-tracker-backend/internal/pricing"
	"github.com/ndewijer/investment-tracker-backend/internal/repository"
	"github.com/ndewijer/investment-tracker-backend/internal/secret"
	"github.com/ndewijer/investment-tracker-backend/internal/service"
	"github.com/ndewijer/investment-tracker-backend/internal/yahoo"
)

// App holds the opened resources and the services built on them.
type App struct {
	Config     *config.Config
	Log        zerolog.Logger
	DB         *sql.DB
	Prices     *pricing.Chain
	Dispatcher *service.SnapshotDispatcher
	Services   api.Services

	cache *pricing.RedisCache
}

// Options tunes New.
type Options struct {
	// SkipMigrations leaves the schema untouched, for the migrate subcommands.
	SkipMigrations bool
}

// New opens the database, applies migrations and builds every service.
// The snapshot dispatcher is created but not started.
func New(ctx context.Context, cfg *config.Config, log zerolog.Logger, opts Options) (*App, error) {
	if dir := filepath.Dir(cfg.Database.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	log.Info().Str("path", cfg.Database.Path).Msg("connected to database")

	if !opts.SkipMigrations {
		if err := database.Migrate(db, logging.Component(log, "migrate")); err != nil {
			db.Close()
			return nil, err
		}
	}

	a := &App{Config: cfg, Log: log, DB: db}

	var cache pricing.Cache
	if cfg.Redis.Addr != "" {
		rc, err := pricing.NewRedisCache(ctx, pricing.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			// Prices still resolve without the cache.
			log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("price cache unavailable")
		} else {
			a.cache = rc
			cache = rc
		}
	}

	client := yahoo.NewFinanceClient(
		yahoo.WithBaseURL(cfg.Pricing.YahooBaseURL),
		yahoo.WithRateLimit(cfg.Pricing.RateLimit, cfg.Pricing.RateBurst),
	)
	a.Prices = pricing.NewYahooChain(client, cache, cfg.Pricing.CacheTTL, cfg.Pricing.Timeout, logging.Component(log, "pricing"))

	var box *secret.Box
	if cfg.Security.EncryptionKey != "" {
		if box, err = secret.NewBox(cfg.Security.EncryptionKey); err != nil {
			a.Close()
			return nil, fmt.Errorf("invalid ENCRYPTION_KEY: %w", err)
		}
	}

	// Create repositories
	userRepo := repository.NewUserRepository(db)
	holdingRepo := repository.NewHoldingRepository(db)
	transactionRepo := repository.NewTransactionRepository(db)
	snapshotRepo := repository.NewSnapshotRepository(db)

	// Create services
	portfolioService := service.NewPortfolioService(userRepo, holdingRepo, a.Prices, logging.Component(log, "portfolio"))
	snapshotService := service.NewSnapshotService(userRepo, snapshotRepo, portfolioService, logging.Component(log, "snapshot"), nil)
	a.Dispatcher = service.NewSnapshotDispatcher(snapshotService, logging.Component(log, "dispatcher"), cfg.Snapshot.Timeout)

	a.Services = api.Services{
		System: service.NewSystemService(db, map[string]bool{
			"price_cache": a.cache != nil,
			"encryption":  box != nil,
			"auth":        cfg.Auth.JWTSecret != "",
		}),
		Trade:        service.NewTradeService(db, userRepo, holdingRepo, transactionRepo, a.Prices, a.Dispatcher, logging.Component(log, "trade")),
		Funds:        service.NewFundsService(db, userRepo, holdingRepo, transactionRepo, a.Dispatcher, logging.Component(log, "funds")),
		Portfolio:    portfolioService,
		Transactions: service.NewTransactionService(transactionRepo),
		Snapshots:    snapshotService,
		Market:       service.NewMarketService(a.Prices, logging.Component(log, "market")),
		Accounts:     service.NewAccountService(db, repository.NewAccountRepository(db), box, logging.Component(log, "account")),
		Goals:        service.NewGoalService(repository.NewGoalRepository(db)),
		Sips:         service.NewSipService(repository.NewSipRepository(db)),
	}

	return a, nil
}

// Close releases the cache connection and the database.
func (a *App) Close() error {
	var errs []error
	if a.cache != nil {
		errs = append(errs, a.cache.Close())
	}
	errs = append(errs, a.DB.Close())
	return errors.Join(errs...)
}
