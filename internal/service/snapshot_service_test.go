package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/testutil"
)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// TestSnapshotService_CaptureSnapshots covers the daily capture run.
//
// WHY: the run must write at most one row per user and day, and a single
// user that cannot be valued must not stop the others.
func TestSnapshotService_CaptureSnapshots(t *testing.T) {
	ctx := context.Background()
	morning := time.Date(2026, 6, 1, 9, 0, 0, 0, time.Local)

	t.Run("captures every user and is idempotent per day", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		prices := testutil.NewMockPriceSource().WithPrice("AAPL", "120")
		clock := morning
		svc := testutil.NewTestSnapshotService(t, db, prices, func() time.Time { return clock })

		user := testutil.NewUser().WithCash("30").Build(t, db)
		testutil.NewHolding(user.ID).WithSymbol("AAPL").WithQuantity(10).WithAveragePrice("100").Build(t, db)
		testutil.NewUser().Build(t, db)

		report, err := svc.CaptureSnapshots(ctx)
		if err != nil {
			t.Fatalf("CaptureSnapshots() returned unexpected error: %v", err)
		}
		if report.Captured != 2 || len(report.Failed) != 0 {
			t.Fatalf("Expected 2 captures and no failures, got %+v", report)
		}

		prices.WithPrice("AAPL", "130")
		clock = morning.Add(10 * time.Hour)
		if _, err := svc.CaptureSnapshots(ctx); err != nil {
			t.Fatalf("second CaptureSnapshots() returned unexpected error: %v", err)
		}
		if n := testutil.CountRows(t, db, "portfolio_snapshot"); n != 2 {
			t.Fatalf("Expected 2 snapshot rows after same-day rerun, got %d", n)
		}

		snapshots, err := svc.ListSnapshots(ctx, user.ID)
		if err != nil {
			t.Fatalf("ListSnapshots() returned unexpected error: %v", err)
		}
		s := snapshots[0]
		if !s.TotalValue.Equal(mustDecimal("1330")) || !s.UnrealizedPnL.Equal(mustDecimal("300")) {
			t.Errorf("Expected latest net worth 1330 and pnl 300, got %s/%s", s.TotalValue, s.UnrealizedPnL)
		}
		if !s.InvestedAmount.Equal(mustDecimal("1000")) || !s.CashBalance.Equal(mustDecimal("30")) {
			t.Errorf("Expected invested 1000 and cash 30, got %s and %s", s.InvestedAmount, s.CashBalance)
		}
	})

	t.Run("next day adds a new row", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		clock := morning
		svc := testutil.NewTestSnapshotService(t, db, testutil.NewMockPriceSource(), func() time.Time { return clock })
		user := testutil.NewUser().WithCash("10").Build(t, db)

		if _, err := svc.CaptureSnapshots(ctx); err != nil {
			t.Fatalf("CaptureSnapshots() returned unexpected error: %v", err)
		}
		clock = morning.AddDate(0, 0, 1)
		if _, err := svc.CaptureSnapshots(ctx); err != nil {
			t.Fatalf("CaptureSnapshots() returned unexpected error: %v", err)
		}

		snapshots, err := svc.ListSnapshots(ctx, user.ID)
		if err != nil {
			t.Fatalf("ListSnapshots() returned unexpected error: %v", err)
		}
		if len(snapshots) != 2 || !snapshots[0].Date.Before(snapshots[1].Date) {
			t.Errorf("Expected two snapshots oldest first, got %+v", snapshots)
		}
	})

	t.Run("skips users that cannot be valued", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db, testutil.NewMockPriceSource(), fixedClock(morning))

		good := testutil.NewUser().WithID("a-good").Build(t, db)
		bad := testutil.NewUser().WithID("b-bad").Build(t, db)
		testutil.NewHolding(bad.ID).WithSymbol("NOPE").Build(t, db)
		later := testutil.NewUser().WithID("c-later").Build(t, db)

		report, err := svc.CaptureSnapshots(ctx)
		if err != nil {
			t.Fatalf("CaptureSnapshots() returned unexpected error: %v", err)
		}
		if report.Captured != 2 {
			t.Errorf("Expected 2 captures, got %d", report.Captured)
		}
		if len(report.Failed) != 1 || report.Failed[0].UserID != bad.ID {
			t.Errorf("Expected only %s to fail, got %+v", bad.ID, report.Failed)
		}
		for _, id := range []string{good.ID, later.ID} {
			snapshots, err := svc.ListSnapshots(ctx, id)
			if err != nil || len(snapshots) != 1 {
				t.Errorf("Expected one snapshot for %s, got %d (%v)", id, len(snapshots), err)
			}
		}
	})
}

func TestSnapshotService_CaptureForUser(t *testing.T) {
	ctx := context.Background()

	t.Run("requires an existing user", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := testutil.NewTestSnapshotService(t, db, testutil.NewMockPriceSource(), nil)

		if _, err := svc.CaptureForUser(ctx, "ghost"); !errors.Is(err, apperrors.ErrUserNotFound) {
			t.Errorf("Expected ErrUserNotFound, got %v", err)
		}
	})

	t.Run("stores the date at local midnight", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		now := time.Date(2026, 2, 28, 23, 59, 0, 0, time.Local)
		svc := testutil.NewTestSnapshotService(t, db, testutil.NewMockPriceSource(), fixedClock(now))
		user := testutil.NewUser().Build(t, db)

		snap, err := svc.CaptureForUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("CaptureForUser() returned unexpected error: %v", err)
		}
		if y, m, d := snap.Date.Date(); y != 2026 || m != time.February || d != 28 {
			t.Errorf("Expected 2026-02-28, got %s", snap.Date)
		}
	})

	t.Run("total value is net worth including cash", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		prices := testutil.NewMockPriceSource().WithPrice("AAPL", "120")
		svc := testutil.NewTestSnapshotService(t, db, prices, nil)
		user := testutil.NewUser().WithCash("30").Build(t, db)
		testutil.NewHolding(user.ID).WithSymbol("AAPL").WithQuantity(10).WithAveragePrice("100").Build(t, db)

		snap, err := svc.CaptureForUser(ctx, user.ID)
		if err != nil {
			t.Fatalf("CaptureForUser() returned unexpected error: %v", err)
		}
		if !snap.TotalValue.Equal(mustDecimal("1230")) {
			t.Errorf("Expected total value 1230 (1200 holdings + 30 cash), got %s", snap.TotalValue)
		}
		if !snap.CashBalance.Equal(mustDecimal("30")) || !snap.InvestedAmount.Equal(mustDecimal("1000")) {
			t.Errorf("Expected cash 30 and invested 1000, got %s and %s", snap.CashBalance, snap.InvestedAmount)
		}
	})
}
