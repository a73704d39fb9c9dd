package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/repository"
)

// FundsService moves cash in and out of an owner's balance.
type FundsService struct {
	db              *sql.DB
	userRepo        *repository.UserRepository
	holdingRepo     *repository.HoldingRepository
	transactionRepo *repository.TransactionRepository
	snapshots       SnapshotTrigger
	log             zerolog.Logger
	now             func() time.Time
}

// NewFundsService creates a new FundsService.
func NewFundsService(
	db *sql.DB,
	userRepo *repository.UserRepository,
	holdingRepo *repository.HoldingRepository,
	transactionRepo *repository.TransactionRepository,
	snapshots SnapshotTrigger,
	log zerolog.Logger,
) *FundsService {
	return &FundsService{
		db:              db,
		userRepo:        userRepo,
		holdingRepo:     holdingRepo,
		transactionRepo: transactionRepo,
		snapshots:       snapshots,
		log:             log,
		now:             time.Now,
	}
}

// Deposit adds amount to the owner's cash, creating the user on first use.
// Returns apperrors.ErrInvalidAmount unless amount is positive.
func (s *FundsService) Deposit(ctx context.Context, ownerID string, amount decimal.Decimal) (*model.TradeResult, error) {
	if ownerID == "" {
		return nil, apperrors.ErrInvalidOwnerID
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	return s.apply(ctx, ownerID, model.TransactionDeposit, model.CashSymbol, amount, func(tx *sql.Tx) (model.User, error) {
		return s.userRepo.WithTx(tx).EnsureUser(ctx, ownerID)
	}, func(u model.User) (model.User, error) {
		u.CashBalance = u.CashBalance.Add(amount)
		return u, nil
	})
}

// Withdraw removes amount from the owner's cash.
// An unknown owner has no cash, so it fails with apperrors.ErrInsufficientFunds.
func (s *FundsService) Withdraw(ctx context.Context, ownerID string, amount decimal.Decimal) (*model.TradeResult, error) {
	if ownerID == "" {
		return nil, apperrors.ErrInvalidOwnerID
	}
	if !amount.IsPositive() {
		return nil, apperrors.ErrInvalidAmount
	}

	return s.apply(ctx, ownerID, model.TransactionWithdrawal, model.CashSymbol, amount, func(tx *sql.Tx) (model.User, error) {
		u, err := s.userRepo.WithTx(tx).GetUser(ctx, ownerID)
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return u, apperrors.ErrInsufficientFunds
		}
		return u, err
	}, func(u model.User) (model.User, error) {
		if u.CashBalance.LessThan(amount) {
			return u, apperrors.ErrInsufficientFunds
		}
		u.CashBalance = u.CashBalance.Sub(amount)
		return u, nil
	})
}

// RecordDividend credits a cash dividend paid on a held symbol.
// Returns apperrors.ErrNotOwned when the owner holds no position in symbol.
func (s *FundsService) RecordDividend(ctx context.Context, ownerID, symbol string, amount decimal.Decimal) (*model.TradeResult, error) {
	symbol = normalizeSymbol(symbol)
	switch {
	case ownerID == "":
		return nil, apperrors.ErrInvalidOwnerID
	case symbol == "" || symbol == model.CashSymbol:
		return nil, apperrors.ErrInvalidSymbol
	case !amount.IsPositive():
		return nil, apperrors.ErrInvalidAmount
	}

	return s.apply(ctx, ownerID, model.TransactionDividend, symbol, amount, func(tx *sql.Tx) (model.User, error) {
		if _, err := s.holdingRepo.WithTx(tx).GetHolding(ctx, ownerID, symbol); err != nil {
			if errors.Is(err, apperrors.ErrHoldingNotFound) {
				return model.User{}, apperrors.ErrNotOwned
			}
			return model.User{}, err
		}
		return s.userRepo.WithTx(tx).GetUser(ctx, ownerID)
	}, func(u model.User) (model.User, error) {
		u.CashBalance = u.CashBalance.Add(amount)
		return u, nil
	})
}

// apply loads the user, mutates its balances, and appends a single-unit
// transaction of amount, all in one retried database transaction.
func (s *FundsService) apply(
	ctx context.Context,
	ownerID, txType, symbol string,
	amount decimal.Decimal,
	load func(tx *sql.Tx) (model.User, error),
	mutate func(model.User) (model.User, error),
) (*model.TradeResult, error) {
	var result model.TradeResult
	err := inTx(ctx, s.db, func(tx *sql.Tx) error {
		user, err := load(tx)
		if err != nil {
			return err
		}

		if user, err = mutate(user); err != nil {
			return err
		}

		if user, err = s.userRepo.WithTx(tx).UpdateBalances(ctx, user); err != nil {
			return err
		}

		t, err := s.transactionRepo.WithTx(tx).InsertTransaction(ctx, model.Transaction{
			UserID:    ownerID,
			Symbol:    symbol,
			Type:      txType,
			Quantity:  1,
			Price:     amount,
			Timestamp: s.now(),
		})
		if err != nil {
			return err
		}

		result = model.TradeResult{
			Transaction: t,
			CashBalance: user.CashBalance,
			RealizedPnL: user.RealizedPnL,
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", txType, err)
	}

	s.log.Info().
		Str("owner", ownerID).
		Str("type", txType).
		Str("amount", amount.String()).
		Msg("funds updated")

	s.snapshots.Trigger(ownerID)
	return &result, nil
}
