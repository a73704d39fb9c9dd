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

// HoldingRepository provides data access methods for the holding table.
// Rows are unique per (user_id, symbol) and updates are version-checked.
type HoldingRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewHoldingRepository creates a new HoldingRepository with the provided database connection.
func NewHoldingRepository(db *sql.DB) *HoldingRepository {
	return &HoldingRepository{db: db}
}

// WithTx returns a new HoldingRepository scoped to the provided transaction.
func (r *HoldingRepository) WithTx(tx *sql.Tx) *HoldingRepository {
	return &HoldingRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *HoldingRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// GetHolding returns the owner's holding for symbol, or apperrors.ErrHoldingNotFound.
func (r *HoldingRepository) GetHolding(ctx context.Context, userID, symbol string) (model.Holding, error) {
	query := `
		SELECT id, user_id, symbol, quantity, average_price, version, updated_at
		FROM holding
		WHERE user_id = ? AND symbol = ?
	`

	h, err := scanHolding(r.getQuerier().QueryRowContext(ctx, query, userID, symbol))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Holding{}, apperrors.ErrHoldingNotFound
		}
		return model.Holding{}, fmt.Errorf("failed to query holding table: %w", err)
	}
	return h, nil
}

// ListHoldings returns the owner's holdings ordered by symbol.
func (r *HoldingRepository) ListHoldings(ctx context.Context, userID string) ([]model.Holding, error) {
	query := `
		SELECT id, user_id, symbol, quantity, average_price, version, updated_at
		FROM holding
		WHERE user_id = ?
		ORDER BY symbol ASC
	`

	rows, err := r.getQuerier().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query holding table: %w", err)
	}
	defer rows.Close()

	holdings := []model.Holding{}
	for rows.Next() {
		h, err := scanHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan holding table results: %w", err)
		}
		holdings = append(holdings, h)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating holding table: %w", err)
	}

	return holdings, nil
}

// InsertHolding creates a new position. A racing insert for the same
// (user, symbol) yields apperrors.ErrDuplicateEntry.
func (r *HoldingRepository) InsertHolding(ctx context.Context, h model.Holding) (model.Holding, error) {
	if h.ID == "" {
		h.ID = uuid.New().String()
	}
	h.Version = 1
	h.UpdatedAt = time.Now().UTC()

	query := `
		INSERT INTO holding (id, user_id, symbol, quantity, average_price, version, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		h.ID,
		h.UserID,
		h.Symbol,
		h.Quantity,
		h.AveragePrice.String(),
		h.Version,
		FormatTimestamp(h.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return model.Holding{}, fmt.Errorf("%w: holding %s for user %s", apperrors.ErrDuplicateEntry, h.Symbol, h.UserID)
		}
		return model.Holding{}, fmt.Errorf("failed to insert holding: %w", err)
	}

	return h, nil
}

// UpdateHolding writes quantity and average price if the stored version still
// equals h.Version, returning the holding with its new version.
func (r *HoldingRepository) UpdateHolding(ctx context.Context, h model.Holding) (model.Holding, error) {
	now := time.Now().UTC()
	query := `
		UPDATE holding
		SET quantity = ?, average_price = ?, version = version + 1, updated_at = ?
		WHERE id = ? AND version = ?
	`

	result, err := r.getQuerier().ExecContext(ctx, query,
		h.Quantity,
		h.AveragePrice.String(),
		FormatTimestamp(now),
		h.ID,
		h.Version,
	)
	if err != nil {
		return model.Holding{}, fmt.Errorf("failed to update holding: %w", err)
	}
	if err := checkAffected(result, apperrors.ErrVersionConflict); err != nil {
		return model.Holding{}, err
	}

	h.Version++
	h.UpdatedAt = now
	return h, nil
}

// DeleteHolding removes a closed position if its version is unchanged.
func (r *HoldingRepository) DeleteHolding(ctx context.Context, h model.Holding) error {
	query := `DELETE FROM holding WHERE id = ? AND version = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, h.ID, h.Version)
	if err != nil {
		return fmt.Errorf("failed to delete holding: %w", err)
	}

	return checkAffected(result, apperrors.ErrVersionConflict)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHolding(row rowScanner) (model.Holding, error) {
	var h model.Holding
	var updatedAtStr string
	if err := row.Scan(
		&h.ID,
		&h.UserID,
		&h.Symbol,
		&h.Quantity,
		&h.AveragePrice,
		&h.Version,
		&updatedAtStr,
	); err != nil {
		return model.Holding{}, err
	}

	updatedAt, err := ParseTime(updatedAtStr)
	if err != nil {
		return model.Holding{}, err
	}
	h.UpdatedAt = updatedAt

	return h, nil
}
