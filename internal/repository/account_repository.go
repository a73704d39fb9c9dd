package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// AccountRepository provides data access methods for the account table.
type AccountRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewAccountRepository creates a new AccountRepository with the provided database connection.
func NewAccountRepository(db *sql.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// WithTx returns a new AccountRepository scoped to the provided transaction.
func (r *AccountRepository) WithTx(tx *sql.Tx) *AccountRepository {
	return &AccountRepository{
		db: r.db,
		tx: tx,
	}
}

// getQuerier returns the active transaction if one is set, otherwise the database connection.
func (r *AccountRepository) getQuerier() querier {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const accountColumns = `id, user_id, name, account_type, institution, currency, is_default, account_number, created_at`

// GetAccount returns the account with the given id regardless of owner.
func (r *AccountRepository) GetAccount(ctx context.Context, id string) (model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM account WHERE id = ?`

	a, err := scanAccount(r.getQuerier().QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Account{}, apperrors.ErrAccountNotFound
		}
		return model.Account{}, fmt.Errorf("failed to query account table: %w", err)
	}
	return a, nil
}

// ListAccounts returns the owner's accounts, default account first.
func (r *AccountRepository) ListAccounts(ctx context.Context, userID string) ([]model.Account, error) {
	query := `SELECT ` + accountColumns + ` FROM account WHERE user_id = ? ORDER BY is_default DESC, created_at ASC`

	rows, err := r.getQuerier().QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query account table: %w", err)
	}
	defer rows.Close()

	accounts := []model.Account{}
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account table results: %w", err)
		}
		accounts = append(accounts, a)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account table: %w", err)
	}

	return accounts, nil
}

// InsertAccount stores a; the caller assigns the id and encrypts AccountNumber.
func (r *AccountRepository) InsertAccount(ctx context.Context, a model.Account) error {
	query := `
		INSERT INTO account (` + accountColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	var accountNumber any
	if a.AccountNumber != "" {
		accountNumber = a.AccountNumber
	}

	_, err := r.getQuerier().ExecContext(ctx, query,
		a.ID,
		a.UserID,
		a.Name,
		a.AccountType,
		a.Institution,
		a.Currency,
		a.IsDefault,
		accountNumber,
		FormatTimestamp(a.CreatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to insert account: %w", err)
	}
	return nil
}

// ClearDefault unsets the default flag on every account of the owner except keepID.
func (r *AccountRepository) ClearDefault(ctx context.Context, userID, keepID string) error {
	query := `UPDATE account SET is_default = FALSE WHERE user_id = ? AND id != ? AND is_default`

	if _, err := r.getQuerier().ExecContext(ctx, query, userID, keepID); err != nil {
		return fmt.Errorf("failed to clear default account: %w", err)
	}
	return nil
}

// DeleteAccount removes the account with the given id.
func (r *AccountRepository) DeleteAccount(ctx context.Context, id string) error {
	result, err := r.getQuerier().ExecContext(ctx, `DELETE FROM account WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return checkAffected(result, apperrors.ErrAccountNotFound)
}

func scanAccount(row rowScanner) (model.Account, error) {
	var a model.Account
	var accountNumber sql.NullString
	var createdAtStr string
	if err := row.Scan(
		&a.ID,
		&a.UserID,
		&a.Name,
		&a.AccountType,
		&a.Institution,
		&a.Currency,
		&a.IsDefault,
		&accountNumber,
		&createdAtStr,
	); err != nil {
		return model.Account{}, err
	}

	a.AccountNumber = accountNumber.String
	createdAt, err := ParseTime(createdAtStr)
	if err != nil {
		return model.Account{}, err
	}
	a.CreatedAt = createdAt

	return a, nil
}
