package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// TransactionRepository provides data access methods for the transaction table.
// The table is append-only: there are no update or delete methods.
type TransactionRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewTransactionRepository creates a new TransactionRepository with the provided database connection.
func NewTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

// WithTx returns a new TransactionRepository scoped to the provided transaction.
func (r *TransactionRepository) WithTx(tx *sql.Tx) *TransactionRepository {
	return &TransactionRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *TransactionRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

// InsertTransaction appends t to the log, assigning an id and timestamp when unset.
func (r *TransactionRepository) InsertTransaction(ctx context.Context, t model.Transaction) (model.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}
	t.Timestamp = t.Timestamp.UTC()

	var fee any
	if t.Fee != nil {
		fee = t.Fee.String()
	}

	query := `
		INSERT INTO "transaction" (id, user_id, symbol, type, quantity, price, fee, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.getQuerier().ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.Symbol,
		t.Type,
		t.Quantity,
		t.Price.String(),
		fee,
		FormatTimestamp(t.Timestamp),
	)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("failed to insert transaction: %w", err)
	}

	return t, nil
}

// GetTransaction returns a single log entry by id.
func (r *TransactionRepository) GetTransaction(ctx context.Context, id string) (model.Transaction, error) {
	query := `
		SELECT id, user_id, symbol, type, quantity, price, fee, timestamp
		FROM "transaction"
		WHERE id = ?
	`

	t, err := scanTransaction(r.getQuerier().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Transaction{}, apperrors.ErrTransactionNotFound
		}
		return model.Transaction{}, fmt.Errorf("failed to query transaction table: %w", err)
	}
	return t, nil
}

// ListTransactions returns the owner's log, newest first.
func (r *TransactionRepository) ListTransactions(ctx context.Context, userID string, filter model.TransactionFilter) ([]model.Transaction, error) {
	query := `
		SELECT id, user_id, symbol, type, quantity, price, fee, timestamp
		FROM "transaction"
		WHERE user_id = ?
	`
	args := []any{userID}

	if filter.Type != "" {
		query += ` AND type = ?`
		args = append(args, filter.Type)
	}
	query += ` ORDER BY timestamp DESC, rowid DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, filter.Limit)
	}

	rows, err := r.getQuerier().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction table: %w", err)
	}
	defer rows.Close()

	transactions := []model.Transaction{}
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction table results: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction table: %w", err)
	}

	return transactions, nil
}

func scanTransaction(row rowScanner) (model.Transaction, error) {
	var t model.Transaction
	var fee decimal.NullDecimal
	var timestampStr string
	if err := row.Scan(
		&t.ID,
		&t.UserID,
		&t.Symbol,
		&t.Type,
		&t.Quantity,
		&t.Price,
		&fee,
		&timestampStr,
	); err != nil {
		return model.Transaction{}, err
	}

	if fee.Valid {
		t.Fee = &fee.Decimal
	}

	timestamp, err := ParseTime(timestampStr)
	if err != nil {
		return model.Transaction{}, err
	}
	t.Timestamp = timestamp

	return t, nil
}
