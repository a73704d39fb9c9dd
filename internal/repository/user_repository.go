package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// UserRepository provides data access methods for the users table.
// Balance updates are guarded by the version column.
type UserRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewUserRepository creates a new UserRepository with the provided database connection.
func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

// WithTx returns a new UserRepository scoped to the provided transaction.
func (r *UserRepository) WithTx(tx *sql.Tx) *UserRepository {
	return &UserRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *UserRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetUser returns the user with the given id, or apperrors.ErrUserNotFound.
func (r *UserRepository) GetUser(ctx context.Context, id string) (model.User, error) {
	query := `
		SELECT id, cash_balance, realized_pnl, version, created_at, updated_at
		FROM users
		WHERE id = ?
	`

	var u model.User
	var createdAtStr, updatedAtStr string
	err := r.getQuerier().QueryRowContext(ctx, query, id).Scan(
		&u.ID,
		&u.CashBalance,
		&u.RealizedPnL,
		&u.Version,
		&createdAtStr,
		&updatedAtStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.User{}, apperrors.ErrUserNotFound
		}
		return model.User{}, fmt.Errorf("failed to query users table: %w", err)
	}

	if u.CreatedAt, err = ParseTime(createdAtStr); err != nil {
		return model.User{}, err
	}
	if u.UpdatedAt, err = ParseTime(updatedAtStr); err != nil {
		return model.User{}, err
	}

	return u, nil
}

// EnsureUser returns the user, creating it with zero balances when absent.
// Concurrent creators converge on the same row.
func (r *UserRepository) EnsureUser(ctx context.Context, id string) (model.User, error) {
	now := FormatTimestamp(time.Now())
	query := `
		INSERT INTO users (id, cash_balance, realized_pnl, version, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)
		ON CONFLICT (id) DO NOTHING
	`

	zero := decimal.Zero.String()
	if _, err := r.getQuerier().ExecContext(ctx, query, id, zero, zero, now, now); err != nil {
		return model.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return r.GetUser(ctx, id)
}

// UpdateBalances writes the cash balance and realized P&L if the stored version
// still equals u.Version. On success the returned user carries the new version.
// A stale version yields apperrors.ErrVersionConflict.
func (r *UserRepository) UpdateBalances(ctx context.Context, u model.User) (model.User, error) {
	now := time.Now()
	query := `
		UPDATE users
		SET cash_balance = ?, realized_pnl = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		u.CashBalance.String(),
		u.RealizedPnL.String(),
		FormatTimestamp(now),
		u.ID,
		u.Version,
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	if err := checkAffected(result, apperrors.ErrVersionConflict); err != nil {
		return model.User{}, err
	}

	u.Version++
	u.UpdatedAt = now.UTC()
	return u, nil
}

// ListUserIDs returns every user id in ascending order.
func (r *UserRepository) ListUserIDs(ctx context.Context) ([]string, error) {
	rows, err := r.getQuerier().QueryContext(ctx, `SELECT id FROM users ORDER BY id ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query users table: %w", err)
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan users table results: %w", err)
		}
		ids = append(ids, id)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users table: %w", err)
	}

	return ids, nil
}
