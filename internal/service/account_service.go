package service

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/api/request"
	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/repository"
	"github.com/ndewijer/investment-tracker-backend/internal/secret"
)

// DefaultCurrency is used for accounts created without a currency.
const DefaultCurrency = "INR"

// AccountService manages an owner's reference accounts. Account numbers are
// encrypted at rest and only ever returned masked.
type AccountService struct {
	db          *sql.DB
	accountRepo *repository.AccountRepository
	box         *secret.Box
	log         zerolog.Logger
}

// NewAccountService creates a new AccountService. box may be nil, in which case
// accounts cannot carry an account number.
func NewAccountService(db *sql.DB, accountRepo *repository.AccountRepository, box *secret.Box, log zerolog.Logger) *AccountService {
	return &AccountService{
		db:          db,
		accountRepo: accountRepo,
		box:         box,
		log:         log,
	}
}

// ListAccounts returns the owner's accounts, default first.
func (s *AccountService) ListAccounts(ctx context.Context, ownerID string) ([]model.Account, error) {
	accounts, err := s.accountRepo.ListAccounts(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveAccounts, err)
	}
	for i := range accounts {
		accounts[i] = s.reveal(accounts[i])
	}
	return accounts, nil
}

// GetAccount returns one of the owner's accounts.
// Returns apperrors.ErrAccountNotFound or ErrForbidden when it belongs to someone else.
func (s *AccountService) GetAccount(ctx context.Context, ownerID, id string) (model.Account, error) {
	a, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return model.Account{}, err
	}
	return s.reveal(a), nil
}

// CreateAccount stores a new account for the owner. When the account is the
// default, every other account of the owner stops being default in the same
// transaction.
func (s *AccountService) CreateAccount(ctx context.Context, ownerID string, req request.CreateAccountRequest) (model.Account, error) {
	a := model.Account{
		ID:          uuid.New().String(),
		UserID:      ownerID,
		Name:        strings.TrimSpace(req.Name),
		AccountType: strings.ToUpper(strings.TrimSpace(req.AccountType)),
		Institution: strings.TrimSpace(req.Institution),
		Currency:    strings.ToUpper(strings.TrimSpace(req.Currency)),
		IsDefault:   req.IsDefault,
		CreatedAt:   time.Now().UTC(),
	}
	if a.Currency == "" {
		a.Currency = DefaultCurrency
	}

	if number := strings.TrimSpace(req.AccountNumber); number != "" {
		if s.box == nil {
			return model.Account{}, apperrors.ErrEncryptionNotConfigured
		}
		token, err := s.box.Encrypt(number)
		if err != nil {
			return model.Account{}, err
		}
		a.AccountNumber = token
	}

	err := runTx(ctx, s.db, func(tx *sql.Tx) error {
		accounts := s.accountRepo.WithTx(tx)
		if err := accounts.InsertAccount(ctx, a); err != nil {
			return err
		}
		if a.IsDefault {
			return accounts.ClearDefault(ctx, ownerID, a.ID)
		}
		return nil
	})
	if err != nil {
		return model.Account{}, err
	}

	s.log.Info().Str("owner", ownerID).Str("account", a.ID).Msg("account created")
	return s.reveal(a), nil
}

// DeleteAccount removes one of the owner's accounts.
func (s *AccountService) DeleteAccount(ctx context.Context, ownerID, id string) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.accountRepo.DeleteAccount(ctx, id)
}

func (s *AccountService) owned(ctx context.Context, ownerID, id string) (model.Account, error) {
	a, err := s.accountRepo.GetAccount(ctx, id)
	if err != nil {
		return model.Account{}, err
	}
	if a.UserID != ownerID {
		return model.Account{}, apperrors.ErrForbidden
	}
	return a, nil
}

// reveal replaces the stored token with the masked plaintext. A token that can
// no longer be decrypted is dropped from the response.
func (s *AccountService) reveal(a model.Account) model.Account {
	if a.AccountNumber == "" {
		return a
	}
	if s.box == nil {
		a.AccountNumber = ""
		return a
	}
	plain, err := s.box.Decrypt(a.AccountNumber)
	if err != nil {
		s.log.Warn().Err(err).Str("account", a.ID).Msg("cannot decrypt account number")
		a.AccountNumber = ""
		return a
	}
	a.AccountNumber = secret.Mask(plain)
	return a
}
