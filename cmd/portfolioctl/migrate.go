package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndewijer/investment-tracker-backend/internal/app"
	"github.com/ndewijer/investment-tracker-backend/internal/database"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the database schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), app.Options{SkipMigrations: true})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := database.Migrate(a.DB, a.Log); err != nil {
				return err
			}
			return printVersion(cmd, a)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back the most recent migration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), app.Options{SkipMigrations: true})
			if err != nil {
				return err
			}
			defer a.Close()

			if err := database.MigrateDown(a.DB, a.Log); err != nil {
				return err
			}
			return printVersion(cmd, a)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show applied and pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), app.Options{SkipMigrations: true})
			if err != nil {
				return err
			}
			defer a.Close()

			return database.MigrationStatus(a.DB, a.Log)
		},
	})

	return cmd
}

func printVersion(cmd *cobra.Command, a *app.App) error {
	v, err := database.SchemaVersion(a.DB)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema version %d\n", v)
	return nil
}
