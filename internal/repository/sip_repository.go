package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// SipRepository provides data access methods for the sip table.
type SipRepository struct {
	db *sql.DB
}

// NewSipRepository creates a new SipRepository with the provided database connection.
func NewSipRepository(db *sql.DB) *SipRepository {
	return &SipRepository{db: db}
}

const sipColumns = `id, user_id, fund, amount, frequency, next_date, status`

// GetSip returns the SIP with the given id regardless of owner.
func (r *SipRepository) GetSip(ctx context.Context, id string) (model.Sip, error) {
	query := `SELECT ` + sipColumns + ` FROM sip WHERE id = ?`

	s, err := scanSip(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Sip{}, apperrors.ErrSipNotFound
		}
		return model.Sip{}, fmt.Errorf("failed to query sip table: %w", err)
	}
	return s, nil
}

// ListSips returns the owner's SIPs ordered by next contribution date.
func (r *SipRepository) ListSips(ctx context.Context, userID string) ([]model.Sip, error) {
	query := `SELECT ` + sipColumns + ` FROM sip WHERE user_id = ? ORDER BY next_date ASC, fund ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query sip table: %w", err)
	}
	defer rows.Close()

	sips := []model.Sip{}
	for rows.Next() {
		s, err := scanSip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan sip table results: %w", err)
		}
		sips = append(sips, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating sip table: %w", err)
	}

	return sips, nil
}

// InsertSip stores s; the caller assigns the id.
func (r *SipRepository) InsertSip(ctx context.Context, s model.Sip) error {
	query := `
		INSERT INTO sip (` + sipColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.Fund,
		s.Amount.String(),
		s.Frequency,
		FormatDate(s.NextDate),
		s.Status,
	)
	if err != nil {
		return fmt.Errorf("failed to insert sip: %w", err)
	}
	return nil
}

// DeleteSip removes the SIP with the given id.
func (r *SipRepository) DeleteSip(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM sip WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete sip: %w", err)
	}
	return checkAffected(result, apperrors.ErrSipNotFound)
}

func scanSip(row rowScanner) (model.Sip, error) {
	var s model.Sip
	var nextDateStr string
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Fund,
		&s.Amount,
		&s.Frequency,
		&nextDateStr,
		&s.Status,
	); err != nil {
		return model.Sip{}, err
	}

	nextDate, err := ParseTime(nextDateStr)
	if err != nil {
		return model.Sip{}, err
	}
	s.NextDate = nextDate

	return s, nil
}
