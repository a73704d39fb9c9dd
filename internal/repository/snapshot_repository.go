package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// SnapshotRepository provides data access methods for the portfolio_snapshot table.
// There is one row per (user_id, date); writes are upserts.
type SnapshotRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewSnapshotRepository creates a new SnapshotRepository with the provided database connection.
func NewSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

// WithTx returns a new SnapshotRepository scoped to the provided transaction.
func (r *SnapshotRepository) WithTx(tx *sql.Tx) *SnapshotRepository {
	return &SnapshotRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *SnapshotRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// UpsertSnapshot inserts the snapshot or overwrites the values of the existing
// row for the same owner and date. The existing row keeps its id.
func (r *SnapshotRepository) UpsertSnapshot(ctx context.Context, s model.PortfolioSnapshot) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}

	query := `
		INSERT INTO portfolio_snapshot
			(id, user_id, date, total_value, invested_amount, cash_balance, unrealized_pnl, realized_pnl)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (user_id, date) DO UPDATE SET
			total_value = excluded.total_value,
			invested_amount = excluded.invested_amount,
			cash_balance = excluded.cash_balance,
			unrealized_pnl = excluded.unrealized_pnl,
			realized_pnl = excluded.realized_pnl
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		s.ID,
		s.UserID,
		FormatDate(s.Date),
		s.TotalValue.String(),
		s.InvestedAmount.String(),
		s.CashBalance.String(),
		s.UnrealizedPnL.String(),
		s.RealizedPnL.String(),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert portfolio_snapshot: %w", err)
	}
	return nil
}

// GetSnapshot returns the owner's snapshot for the calendar date of day.
func (r *SnapshotRepository) GetSnapshot(ctx context.Context, userID string, day time.Time) (model.PortfolioSnapshot, error) {
	query := `
		SELECT id, user_id, date, total_value, invested_amount, cash_balance, unrealized_pnl, realized_pnl
		FROM portfolio_snapshot
		WHERE user_id = ? AND date = ?
	`

	s, err := scanSnapshot(r.getQuerier().QueryRowContext(ctx, query, userID, FormatDate(day)))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.PortfolioSnapshot{}, apperrors.ErrSnapshotNotFound
		}
		return model.PortfolioSnapshot{}, fmt.Errorf("failed to query portfolio_snapshot table: %w", err)
	}
	return s, nil
}

// ListSnapshots returns the owner's snapshots ordered by date ascending.
func (r *SnapshotRepository) ListSnapshots(ctx context.Context, userID string) ([]model.PortfolioSnapshot, error) {
	query := `
		SELECT id, user_id, date, total_value, invested_amount, cash_balance, unrealized_pnl, realized_pnl
		FROM portfolio_snapshot
		WHERE user_id = ?
		ORDER BY date ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_snapshot table: %w", err)
	}
	defer rows.Close()

	snapshots := []model.PortfolioSnapshot{}
	for rows.Next() {
		s, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_snapshot table results: %w", err)
		}
		snapshots = append(snapshots, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_snapshot table: %w", err)
	}

	return snapshots, nil
}

func scanSnapshot(row rowScanner) (model.PortfolioSnapshot, error) {
	var s model.PortfolioSnapshot
	var dateStr string
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&dateStr,
		&s.TotalValue,
		&s.InvestedAmount,
		&s.CashBalance,
		&s.UnrealizedPnL,
		&s.RealizedPnL,
	); err != nil {
		return model.PortfolioSnapshot{}, err
	}

	date, err := ParseTime(dateStr)
	if err != nil {
		return model.PortfolioSnapshot{}, err
	}
	s.Date = date

	return s, nil
}
