package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ndewijer/investment-tracker-backend/internal/app"
	"github.com/ndewijer/investment-tracker-backend/internal/secret"
)

func quoteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "quote <symbol>...",
		Short: "Resolve current prices through the configured provider chain",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(cmd.Context(), app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			var failed int
			for _, symbol := range args {
				q, err := a.Services.Market.Quote(cmd.Context(), symbol)
				if err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", symbol, err)
					failed++
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-8s %12s  %s\n", q.Symbol, q.Price.StringFixed(2), q.Source)
			}
			if failed > 0 {
				return fmt.Errorf("%d symbol(s) could not be priced", failed)
			}
			return nil
		},
	}
}

func keygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Print a new ENCRYPTION_KEY value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			key, err := secret.GenerateKey()
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), key)
			return nil
		},
	}
}
