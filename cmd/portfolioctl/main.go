// portfolioctl runs maintenance tasks against the investment tracker database.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ndewijer/investment-tracker-backend/internal/app"
	"github.com/ndewijer/investment-tracker-backend/internal/config"
	"github.com/ndewijer/investment-tracker-backend/internal/logging"
	"github.com/ndewijer/investment-tracker-backend/internal/version"
)

var (
	dbPath  string
	verbose bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "portfolioctl",
		Short:         "Investment tracker maintenance tool",
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Database path (defaults to DB_PATH)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	// Subcommands
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(snapshotCmd())
	rootCmd.AddCommand(quoteCmd())
	rootCmd.AddCommand(keygenCmd())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// loadConfig applies the command line overrides on top of the environment.
func loadConfig() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, zerolog.Nop(), err
	}
	if dbPath != "" {
		cfg.Database.Path = dbPath
	}
	if verbose {
		cfg.Logging.Level = "debug"
	}
	// Logs go to stderr so command output stays machine readable.
	cfg.Logging.Format = "console"
	return cfg, logging.New(cfg.Logging), nil
}

func openApp(ctx context.Context, opts app.Options) (*app.App, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return app.New(ctx, cfg, log, opts)
}
