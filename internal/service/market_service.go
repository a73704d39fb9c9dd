package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

type listing struct {
	Symbol string
	Name   string
}

var overviewIndices = []listing{
	{"SPY", "S&P 500 ETF"},
	{"DIA", "Dow Jones ETF"},
	{"QQQ", "NASDAQ ETF"},
	{"IWM", "Russell 2000 ETF"},
}

var overviewMovers = []listing{
	{"NVDA", "NVIDIA Corp"},
	{"AAPL", "Apple Inc"},
	{"MSFT", "Microsoft"},
	{"TSLA", "Tesla Inc"},
	{"AMZN", "Amazon"},
}

// MarketService exposes the price chain for market data lookups.
type MarketService struct {
	prices PriceSource
	log    zerolog.Logger
}

// NewMarketService creates a new MarketService.
func NewMarketService(prices PriceSource, log zerolog.Logger) *MarketService {
	return &MarketService{prices: prices, log: log}
}

// Quote returns the current price of symbol and the provider that served it.
func (s *MarketService) Quote(ctx context.Context, symbol string) (model.Quote, error) {
	symbol = normalizeSymbol(symbol)
	if symbol == "" {
		return model.Quote{}, apperrors.ErrInvalidSymbol
	}
	q, err := s.prices.Quote(ctx, symbol)
	if err != nil {
		return model.Quote{}, priceError(symbol, err)
	}
	return q, nil
}

// Search reports whether query can be priced as a ticker. A failed lookup is
// part of the result, not an error.
func (s *MarketService) Search(ctx context.Context, query string) (model.SymbolLookup, error) {
	symbol := normalizeSymbol(query)
	if symbol == "" {
		return model.SymbolLookup{}, apperrors.ErrInvalidSymbol
	}

	lookup := model.SymbolLookup{Symbol: symbol}
	q, err := s.prices.Quote(ctx, symbol)
	if err != nil {
		lookup.Error = err.Error()
		return lookup, nil
	}
	lookup.Found = true
	lookup.Price = &q.Price
	lookup.Source = q.Source
	return lookup, nil
}

// Overview prices the headline index ETFs and tracked movers concurrently.
// Entries that cannot be priced are returned with a zero price.
func (s *MarketService) Overview(ctx context.Context) (model.MarketOverview, error) {
	overview := model.MarketOverview{
		Indices:   make([]model.Quote, len(overviewIndices)),
		TopMovers: make([]model.Quote, len(overviewMovers)),
	}

	var g errgroup.Group
	g.SetLimit(maxPriceFanOut)
	fill := func(dst []model.Quote, src []listing) {
		for i, l := range src {
			g.Go(func() error {
				dst[i] = s.quoteOrZero(ctx, l)
				return nil
			})
		}
	}
	fill(overview.Indices, overviewIndices)
	fill(overview.TopMovers, overviewMovers)

	if err := g.Wait(); err != nil {
		return model.MarketOverview{}, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveQuote, err)
	}
	return overview, nil
}

func (s *MarketService) quoteOrZero(ctx context.Context, l listing) model.Quote {
	q, err := s.prices.Quote(ctx, l.Symbol)
	if err != nil {
		s.log.Warn().Err(err).Str("symbol", l.Symbol).Msg("overview quote unavailable")
		return model.Quote{Symbol: l.Symbol, Name: l.Name}
	}
	q.Name = l.Name
	return q
}
