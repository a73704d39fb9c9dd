package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// RatioPrecision is the number of decimal places ratios are rounded to
// (half-up) before being scaled to a percentage.
const RatioPrecision = 4

// maxWriteAttempts bounds retries of a unit of work that lost an optimistic update.
const maxWriteAttempts = 3

var hundred = decimal.NewFromInt(100)

// PriceSource supplies current prices for ticker symbols.
type PriceSource interface {
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
	Quote(ctx context.Context, symbol string) (model.Quote, error)
}

// SnapshotTrigger requests a best-effort refresh of an owner's snapshot for today.
// Implementations must not block the caller.
type SnapshotTrigger interface {
	Trigger(ownerID string)
}

// NoopTrigger discards snapshot requests.
type NoopTrigger struct{}

// Trigger implements SnapshotTrigger.
func (NoopTrigger) Trigger(string) {}

// percentage returns round4(part/whole)*100, or zero when whole is zero.
//
// Example:
//
//	percentage(200, 1000) // 20.00
//	percentage(1, 3)      // 33.33
func percentage(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.DivRound(whole, RatioPrecision).Mul(hundred)
}

// normalizeSymbol trims and uppercases a ticker.
func normalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// inTx runs fn inside one database transaction, retrying the whole unit when it
// lost an optimistic update to a concurrent writer.
func inTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	var err error
	for attempt := 1; attempt <= maxWriteAttempts; attempt++ {
		err = runTx(ctx, db, fn)
		if !errors.Is(err, apperrors.ErrVersionConflict) && !errors.Is(err, apperrors.ErrDuplicateEntry) {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
	}
	return fmt.Errorf("gave up after %d attempts: %w", maxWriteAttempts, err)
}

func runTx(ctx context.Context, db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback() // no-op after commit
	}()

	if err := fn(tx); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}
