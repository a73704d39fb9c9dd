package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/testutil"
)

func TestMarketHandler(t *testing.T) {
	prices := testutil.NewMockPriceSource().
		WithPrice("AAPL", "187.20").
		WithPrice("SPY", "512.10").
		WithError("QQQ", errors.New("upstream timeout"))
	handler := NewMarketHandler(testutil.NewTestMarketService(t, prices))

	t.Run("quote returns price and source", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/market/quote/aapl", map[string]string{"symbol": "aapl"})
		w := httptest.NewRecorder()
		handler.Quote(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		quote := testutil.DecodeJSON[model.Quote](t, w)
		if quote.Symbol != "AAPL" || quote.Price.String() != "187.2" || quote.Source != "mock" {
			t.Errorf("Unexpected quote %+v", quote)
		}
	})

	t.Run("quote returns 503 when unpriced", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/market/quote/QQQ", map[string]string{"symbol": "QQQ"})
		w := httptest.NewRecorder()
		handler.Quote(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d", w.Code)
		}
	})

	t.Run("search reports not found without failing", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/market/search/zzzz", map[string]string{"query": "zzzz"})
		w := httptest.NewRecorder()
		handler.Search(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		lookup := testutil.DecodeJSON[model.SymbolLookup](t, w)
		if lookup.Found || lookup.Symbol != "ZZZZ" || lookup.Error == "" {
			t.Errorf("Expected not-found lookup, got %+v", lookup)
		}
	})

	t.Run("overview zeroes unpriced entries", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/market/overview", nil)
		w := httptest.NewRecorder()
		handler.Overview(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		overview := testutil.DecodeJSON[model.MarketOverview](t, w)
		if len(overview.Indices) != 4 || len(overview.TopMovers) != 5 {
			t.Fatalf("Expected 4 indices and 5 movers, got %d/%d", len(overview.Indices), len(overview.TopMovers))
		}
		for _, q := range overview.Indices {
			switch q.Symbol {
			case "SPY":
				if q.Price.String() != "512.1" {
					t.Errorf("Expected SPY 512.1, got %s", q.Price)
				}
			case "QQQ":
				if !q.Price.IsZero() || q.Source != "" {
					t.Errorf("Expected zeroed QQQ, got %+v", q)
				}
			}
		}
	})
}
