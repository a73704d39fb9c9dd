package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/pricing"
	"github.com/ndewijer/investment-tracker-backend/internal/testutil"
)

func TestMarketService(t *testing.T) {
	ctx := context.Background()

	t.Run("quote is served by the live yahoo price", func(t *testing.T) {
		client := testutil.NewMockYahooClient()
		chain := pricing.NewYahooChain(client, nil, 0, time.Second, zerolog.Nop())
		svc := testutil.NewTestMarketService(t, chain)

		q, err := svc.Quote(ctx, "aapl")
		if err != nil {
			t.Fatalf("Quote() returned unexpected error: %v", err)
		}
		if q.Symbol != "AAPL" || !q.Price.Equal(mustDecimal("123.45")) || q.Source != pricing.ProviderYahooQuote {
			t.Errorf("Unexpected quote %+v", q)
		}
	})

	t.Run("quote falls back to the static table when yahoo is down", func(t *testing.T) {
		client := testutil.NewMockYahooClient().WithError(errors.New("503 from upstream"))
		chain := pricing.NewYahooChain(client, nil, 0, time.Second, zerolog.Nop())
		svc := testutil.NewTestMarketService(t, chain)

		q, err := svc.Quote(ctx, "MSFT")
		if err != nil {
			t.Fatalf("Quote() returned unexpected error: %v", err)
		}
		if q.Source != pricing.ProviderStatic || !q.Price.IsPositive() {
			t.Errorf("Expected a static fallback price, got %+v", q)
		}
		if client.QueryCount != 2 {
			t.Errorf("Expected both yahoo providers to be tried, got %d queries", client.QueryCount)
		}
	})

	t.Run("search reports found quotes", func(t *testing.T) {
		prices := testutil.NewMockPriceSource().WithPrice("INFY.NS", "1500")
		svc := testutil.NewTestMarketService(t, prices)

		lookup, err := svc.Search(ctx, "infy.ns")
		if err != nil {
			t.Fatalf("Search() returned unexpected error: %v", err)
		}
		if !lookup.Found || lookup.Price == nil || !lookup.Price.Equal(mustDecimal("1500")) || lookup.Source != "mock" {
			t.Errorf("Unexpected lookup %+v", lookup)
		}
	})

	t.Run("search requires a query", func(t *testing.T) {
		svc := testutil.NewTestMarketService(t, testutil.NewMockPriceSource())

		if _, err := svc.Search(ctx, "  "); !errors.Is(err, apperrors.ErrInvalidSymbol) {
			t.Errorf("Expected ErrInvalidSymbol, got %v", err)
		}
	})

	t.Run("overview keeps listing order and names", func(t *testing.T) {
		prices := testutil.NewMockPriceSource().WithPrice("SPY", "500").WithPrice("NVDA", "900")
		svc := testutil.NewTestMarketService(t, prices)

		overview, err := svc.Overview(ctx)
		if err != nil {
			t.Fatalf("Overview() returned unexpected error: %v", err)
		}
		if overview.Indices[0].Symbol != "SPY" || overview.Indices[0].Name == "" || !overview.Indices[0].Price.Equal(mustDecimal("500")) {
			t.Errorf("Unexpected first index %+v", overview.Indices[0])
		}
		if overview.TopMovers[0].Symbol != "NVDA" || !overview.TopMovers[0].Price.Equal(mustDecimal("900")) {
			t.Errorf("Unexpected first mover %+v", overview.TopMovers[0])
		}
		if !overview.TopMovers[1].Price.IsZero() {
			t.Errorf("Expected unpriced mover at zero, got %s", overview.TopMovers[1].Price)
		}
	})
}
