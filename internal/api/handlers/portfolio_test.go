package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/testutil"
)

func TestPortfolioHandler_Portfolio(t *testing.T) {
	t.Run("values holdings at current prices", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		prices := testutil.NewMockPriceSource().WithPrice("AAPL", "120")
		handler := NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, prices))

		user := testutil.NewUser().WithCash("1000").Build(t, db)
		testutil.NewHolding(user.ID).WithSymbol("AAPL").WithQuantity(10).WithAveragePrice("100").Build(t, db)

		req := testutil.AsOwner(httptest.NewRequest(http.MethodGet, "/api/portfolio", nil), user.ID)
		w := httptest.NewRecorder()
		handler.Portfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}

		view := testutil.DecodeJSON[model.PortfolioView](t, w)
		if !view.TotalValue.Equal(decimal.NewFromInt(1200)) {
			t.Errorf("Expected total value 1200, got %s", view.TotalValue)
		}
		if !view.TotalPnLPercentage.Equal(decimal.NewFromInt(20)) {
			t.Errorf("Expected 20%% P&L, got %s", view.TotalPnLPercentage)
		}
		if !view.NetWorth.Equal(decimal.NewFromInt(2200)) {
			t.Errorf("Expected net worth 2200, got %s", view.NetWorth)
		}
		if len(view.Holdings) != 1 || !view.Holdings[0].AllocationPercentage.Equal(decimal.NewFromInt(100)) {
			t.Errorf("Expected one holding at 100%% allocation, got %+v", view.Holdings)
		}
	})

	t.Run("returns empty portfolio for unknown owner", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewMockPriceSource()))

		req := testutil.AsOwner(httptest.NewRequest(http.MethodGet, "/api/portfolio", nil), "nobody")
		w := httptest.NewRecorder()
		handler.Portfolio(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		view := testutil.DecodeJSON[model.PortfolioView](t, w)
		if !view.NetWorth.IsZero() || len(view.Holdings) != 0 {
			t.Errorf("Expected zero portfolio, got %+v", view)
		}
	})

	t.Run("returns 503 when a holding cannot be priced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewPortfolioHandler(testutil.NewTestPortfolioService(t, db, testutil.NewMockPriceSource()))

		user := testutil.NewUser().Build(t, db)
		testutil.NewHolding(user.ID).WithSymbol("MSFT").Build(t, db)

		req := testutil.AsOwner(httptest.NewRequest(http.MethodGet, "/api/portfolio", nil), user.ID)
		w := httptest.NewRecorder()
		handler.Portfolio(w, req)

		if w.Code != http.StatusServiceUnavailable {
			t.Errorf("Expected 503, got %d: %s", w.Code, w.Body.String())
		}
	})
}
