package main

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/ndewijer/investment-tracker-backend/internal/app"
)

func snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Portfolio snapshot tasks",
	}

	var (
		owner   string
		timeout time.Duration
	)
	capture := &cobra.Command{
		Use:   "capture",
		Short: "Capture today's snapshot for every user, or one user with --owner",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if timeout > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, timeout)
				defer cancel()
			}

			a, err := openApp(ctx, app.Options{})
			if err != nil {
				return err
			}
			defer a.Close()

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")

			if owner != "" {
				snap, err := a.Services.Snapshots.CaptureForUser(ctx, owner)
				if err != nil {
					return fmt.Errorf("capture for %s: %w", owner, err)
				}
				return enc.Encode(snap)
			}

			report, err := a.Services.Snapshots.CaptureSnapshots(ctx)
			if err != nil {
				return err
			}
			if err := enc.Encode(report); err != nil {
				return err
			}
			if len(report.Failed) > 0 {
				return fmt.Errorf("%d of %d users could not be captured", len(report.Failed), report.Captured+len(report.Failed))
			}
			return nil
		},
	}
	capture.Flags().StringVar(&owner, "owner", "", "Capture only this owner id")
	capture.Flags().DurationVar(&timeout, "timeout", 10*time.Minute, "Abort the run after this long")

	cmd.AddCommand(capture)
	return cmd
}
