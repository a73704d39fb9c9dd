package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/repository"
)

// TradeService executes buy and sell orders against current prices.
// Each order updates the user, the holding and the transaction log in one
// database transaction.
type TradeService struct {
	db              *sql.DB
	userRepo        *repository.UserRepository
	holdingRepo     *repository.HoldingRepository
	transactionRepo *repository.TransactionRepository
	prices          PriceSource
	snapshots       SnapshotTrigger
	log             zerolog.Logger
	now             func() time.Time
}

// NewTradeService creates a new TradeService.
func NewTradeService(
	db *sql.DB,
	userRepo *repository.UserRepository,
	holdingRepo *repository.HoldingRepository,
	transactionRepo *repository.TransactionRepository,
	prices PriceSource,
	snapshots SnapshotTrigger,
	log zerolog.Logger,
) *TradeService {
	return &TradeService{
		db:              db,
		userRepo:        userRepo,
		holdingRepo:     holdingRepo,
		transactionRepo: transactionRepo,
		prices:          prices,
		snapshots:       snapshots,
		log:             log,
		now:             time.Now,
	}
}

// ExecuteTrade buys or sells quantity units of symbol for ownerID at the current price.
//
// BUY debits price*quantity from cash and recomputes the weighted average cost.
// SELL credits the full proceeds to cash, adds (price-average)*quantity to
// realized P&L, and deletes the holding once its quantity reaches zero.
//
// Returns apperrors.ErrInvalidQuantity, ErrInvalidTradeType, ErrPriceUnavailable,
// ErrInsufficientFunds, ErrNotOwned or ErrInsufficientQuantity; in every error
// case nothing is persisted. A successful trade requests a snapshot refresh,
// whose outcome does not affect the result.
func (s *TradeService) ExecuteTrade(ctx context.Context, ownerID, symbol string, quantity int64, side string) (*model.TradeResult, error) {
	symbol = normalizeSymbol(symbol)
	side = strings.ToUpper(strings.TrimSpace(side))

	switch {
	case ownerID == "":
		return nil, apperrors.ErrInvalidOwnerID
	case symbol == "":
		return nil, apperrors.ErrInvalidSymbol
	case side != model.TransactionBuy && side != model.TransactionSell:
		return nil, fmt.Errorf("%w: %q", apperrors.ErrInvalidTradeType, side)
	case quantity <= 0:
		return nil, apperrors.ErrInvalidQuantity
	}

	price, err := s.prices.Price(ctx, symbol)
	if err != nil {
		return nil, priceError(symbol, err)
	}

	var result model.TradeResult
	err = inTx(ctx, s.db, func(tx *sql.Tx) error {
		users := s.userRepo.WithTx(tx)
		holdings := s.holdingRepo.WithTx(tx)

		user, err := users.EnsureUser(ctx, ownerID)
		if err != nil {
			return err
		}

		holding, err := holdings.GetHolding(ctx, ownerID, symbol)
		exists := err == nil
		if err != nil && !errors.Is(err, apperrors.ErrHoldingNotFound) {
			return err
		}

		current := position{Cash: user.CashBalance, Realized: user.RealizedPnL}
		if exists {
			current.Quantity = holding.Quantity
			current.Average = holding.AveragePrice
		}

		var next position
		if side == model.TransactionBuy {
			next, err = applyBuy(current, quantity, price)
		} else {
			next, err = applySell(current, quantity, price)
		}
		if err != nil {
			return err
		}

		user.CashBalance = next.Cash
		user.RealizedPnL = next.Realized
		if user, err = users.UpdateBalances(ctx, user); err != nil {
			return err
		}

		var saved *model.Holding
		switch {
		case !exists:
			h, err := holdings.InsertHolding(ctx, model.Holding{
				UserID:       ownerID,
				Symbol:       symbol,
				Quantity:     next.Quantity,
				AveragePrice: next.Average,
			})
			if err != nil {
				return err
			}
			saved = &h
		case next.Quantity == 0:
			if err := holdings.DeleteHolding(ctx, holding); err != nil {
				return err
			}
		default:
			holding.Quantity = next.Quantity
			holding.AveragePrice = next.Average
			h, err := holdings.UpdateHolding(ctx, holding)
			if err != nil {
				return err
			}
			saved = &h
		}

		t, err := s.transactionRepo.WithTx(tx).InsertTransaction(ctx, model.Transaction{
			UserID:    ownerID,
			Symbol:    symbol,
			Type:      side,
			Quantity:  quantity,
			Price:     price,
			Timestamp: s.now(),
		})
		if err != nil {
			return err
		}

		result = model.TradeResult{
			Transaction: t,
			CashBalance: user.CashBalance,
			RealizedPnL: user.RealizedPnL,
			Holding:     saved,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("owner", ownerID).
		Str("symbol", symbol).
		Str("side", side).
		Int64("quantity", quantity).
		Str("price", price.String()).
		Msg("trade executed")

	s.snapshots.Trigger(ownerID)
	return &result, nil
}

// priceError makes sure a price lookup failure is reported as ErrPriceUnavailable.
func priceError(symbol string, err error) error {
	if errors.Is(err, apperrors.ErrPriceUnavailable) {
		return err
	}
	return fmt.Errorf("%w for %s: %w", apperrors.ErrPriceUnavailable, symbol, err)
}
