package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/testutil"
)

func TestSipHandler(t *testing.T) {
	t.Run("creates sip with defaults", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSipHandler(testutil.NewTestSipService(t, db))

		req := testutil.AsOwner(testutil.NewJSONRequest(t, http.MethodPost, "/api/sips", map[string]interface{}{
			"fund": "Nifty 50 Index", "amount": "2500", "nextDate": "2026-11-05",
		}), "owner-1")
		w := httptest.NewRecorder()
		handler.CreateSip(w, req)

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		sip := testutil.DecodeJSON[model.Sip](t, w)
		if sip.Frequency != "Monthly" || sip.Status != "active" {
			t.Errorf("Expected Monthly/active, got %s/%s", sip.Frequency, sip.Status)
		}
	})

	t.Run("returns 400 for non positive amount", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSipHandler(testutil.NewTestSipService(t, db))

		req := testutil.AsOwner(testutil.NewJSONRequest(t, http.MethodPost, "/api/sips", map[string]interface{}{
			"fund": "Nifty", "amount": "0", "nextDate": "2026-11-05",
		}), "owner-1")
		w := httptest.NewRecorder()
		handler.CreateSip(w, req)

		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", w.Code)
		}
	})

	t.Run("get returns own sip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSipHandler(testutil.NewTestSipService(t, db))
		sip := testutil.NewSip("owner-1").WithFund("Gold ETF").Build(t, db)

		req := testutil.AsOwner(httptest.NewRequest(http.MethodGet, "/api/sips/"+sip.ID, nil), "owner-1")
		req = testutil.WithURLParams(req, map[string]string{"uuid": sip.ID})
		w := httptest.NewRecorder()
		handler.GetSip(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
		}
		got := testutil.DecodeJSON[model.Sip](t, w)
		if got.Fund != "Gold ETF" {
			t.Errorf("Expected fund 'Gold ETF', got %q", got.Fund)
		}
	})

	t.Run("delete returns 404 for missing sip", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		handler := NewSipHandler(testutil.NewTestSipService(t, db))
		id := testutil.MakeID()

		req := testutil.AsOwner(httptest.NewRequest(http.MethodDelete, "/api/sips/"+id, nil), "owner-1")
		req = testutil.WithURLParams(req, map[string]string{"uuid": id})
		w := httptest.NewRecorder()
		handler.DeleteSip(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d", w.Code)
		}
	})
}
