package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/repository"
)

// maxPriceFanOut bounds concurrent price lookups for one valuation.
const maxPriceFanOut = 8

// PortfolioService values an owner's holdings at current prices.
type PortfolioService struct {
	userRepo    *repository.UserRepository
	holdingRepo *repository.HoldingRepository
	prices      PriceSource
	log         zerolog.Logger
}

// NewPortfolioService creates a new PortfolioService.
func NewPortfolioService(
	userRepo *repository.UserRepository,
	holdingRepo *repository.HoldingRepository,
	prices PriceSource,
	log zerolog.Logger,
) *PortfolioService {
	return &PortfolioService{
		userRepo:    userRepo,
		holdingRepo: holdingRepo,
		prices:      prices,
		log:         log,
	}
}

// GetPortfolio prices every holding of ownerID and aggregates the totals.
//
// An owner with no user record values as an empty portfolio with zero cash.
// If any holding cannot be priced the whole valuation fails with
// apperrors.ErrPriceUnavailable; no partial totals are returned.
//
// Per holding:
//
//	invested   = quantity * averagePrice
//	value      = quantity * currentPrice
//	pnl        = value - invested
//	pnl%       = round4(pnl / invested) * 100
//	allocation = round4(value / totalValue) * 100
//
// TopGainer and TopLoser are the holdings with the strictly highest and lowest
// pnl%, the first in symbol order winning ties. Both are nil without holdings.
func (s *PortfolioService) GetPortfolio(ctx context.Context, ownerID string) (model.PortfolioView, error) {
	if ownerID == "" {
		return model.PortfolioView{}, apperrors.ErrInvalidOwnerID
	}

	user, err := s.userRepo.GetUser(ctx, ownerID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrUserNotFound) {
			return model.PortfolioView{}, err
		}
		user = model.User{ID: ownerID}
	}

	holdings, err := s.holdingRepo.ListHoldings(ctx, ownerID)
	if err != nil {
		return model.PortfolioView{}, err
	}

	prices, err := s.priceAll(ctx, holdings)
	if err != nil {
		return model.PortfolioView{}, err
	}

	return valuate(user, holdings, prices), nil
}

// priceAll fetches prices for holdings concurrently, keeping holding order.
func (s *PortfolioService) priceAll(ctx context.Context, holdings []model.Holding) ([]decimal.Decimal, error) {
	prices := make([]decimal.Decimal, len(holdings))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxPriceFanOut)
	for i, h := range holdings {
		g.Go(func() error {
			price, err := s.prices.Price(gctx, h.Symbol)
			if err != nil {
				return priceError(h.Symbol, err)
			}
			prices[i] = price
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		s.log.Warn().Err(err).Msg("portfolio valuation aborted")
		return nil, fmt.Errorf("failed to price holdings: %w", err)
	}
	return prices, nil
}

// valuate builds the view from holdings and their prices, matched by index.
func valuate(user model.User, holdings []model.Holding, prices []decimal.Decimal) model.PortfolioView {
	view := model.PortfolioView{
		CashBalance: user.CashBalance,
		RealizedPnL: user.RealizedPnL,
		Holdings:    make([]model.HoldingValuation, 0, len(holdings)),
	}

	for i, h := range holdings {
		qty := decimal.NewFromInt(h.Quantity)
		invested := h.Invested()
		value := prices[i].Mul(qty)
		pnl := value.Sub(invested)

		view.Holdings = append(view.Holdings, model.HoldingValuation{
			Symbol:        h.Symbol,
			Quantity:      h.Quantity,
			AveragePrice:  h.AveragePrice,
			CurrentPrice:  prices[i],
			Invested:      invested,
			CurrentValue:  value,
			PnL:           pnl,
			PnLPercentage: percentage(pnl, invested),
		})

		view.TotalValue = view.TotalValue.Add(value)
		view.TotalInvested = view.TotalInvested.Add(invested)
	}

	var gainer, loser *model.HoldingValuation
	for i := range view.Holdings {
		hv := &view.Holdings[i]
		hv.AllocationPercentage = percentage(hv.CurrentValue, view.TotalValue)

		if gainer == nil || hv.PnLPercentage.GreaterThan(gainer.PnLPercentage) {
			gainer = hv
		}
		if loser == nil || hv.PnLPercentage.LessThan(loser.PnLPercentage) {
			loser = hv
		}
	}
	if gainer != nil {
		g, l := *gainer, *loser
		view.TopGainer, view.TopLoser = &g, &l
	}

	view.TotalPnL = view.TotalValue.Sub(view.TotalInvested)
	view.TotalPnLPercentage = percentage(view.TotalPnL, view.TotalInvested)
	view.DayPnL = decimal.Zero
	view.DayPnLPercentage = decimal.Zero
	view.NetWorth = view.TotalValue.Add(view.CashBalance)

	return view
}
