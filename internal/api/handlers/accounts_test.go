package handlers

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/secret"
	"github.com/ndewijer/investment-tracker-backend/internal/testutil"
)

//nolint:gocyclo // Comprehensive integration test with multiple subtests
func TestAccountHandler(t *testing.T) {
	setupHandler := func(t *testing.T, box *secret.Box) (*AccountHandler, *sql.DB) {
		t.Helper()
		db := testutil.SetupTestDB(t)
		return NewAccountHandler(testutil.NewTestAccountService(t, db, box)), db
	}

	create := func(t *testing.T, handler *AccountHandler, owner string, body interface{}) *httptest.ResponseRecorder {
		t.Helper()
		req := testutil.AsOwner(testutil.NewJSONRequest(t, http.MethodPost, "/api/accounts", body), owner)
		w := httptest.NewRecorder()
		handler.CreateAccount(w, req)
		return w
	}

	t.Run("creates account with masked number", func(t *testing.T) {
		handler, db := setupHandler(t, testutil.NewTestBox(t))

		w := create(t, handler, "owner-1", map[string]interface{}{
			"name":          "Main brokerage",
			"accountType":   "brokerage",
			"accountNumber": "123456789012",
			"isDefault":     true,
		})

		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}
		account := testutil.DecodeJSON[model.Account](t, w)
		if account.AccountNumber != "********9012" {
			t.Errorf("Expected masked number, got %q", account.AccountNumber)
		}
		if account.AccountType != model.AccountBrokerage || account.Currency != "INR" {
			t.Errorf("Expected BROKERAGE/INR, got %s/%s", account.AccountType, account.Currency)
		}

		var stored string
		if err := db.QueryRow(`SELECT account_number FROM account WHERE id = ?`, account.ID).Scan(&stored); err != nil {
			t.Fatalf("Failed to read stored account: %v", err)
		}
		if stored == "123456789012" || stored == account.AccountNumber {
			t.Error("Expected account number to be encrypted at rest")
		}
	})

	t.Run("new default account clears the previous default", func(t *testing.T) {
		handler, db := setupHandler(t, nil)
		previous := testutil.NewAccount("owner-1").Default().Build(t, db)

		w := create(t, handler, "owner-1", map[string]interface{}{"name": "Savings", "accountType": "BANK", "isDefault": true})
		if w.Code != http.StatusCreated {
			t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
		}

		var isDefault bool
		if err := db.QueryRow(`SELECT is_default FROM account WHERE id = ?`, previous.ID).Scan(&isDefault); err != nil {
			t.Fatalf("Failed to read account: %v", err)
		}
		if isDefault {
			t.Error("Expected previous default to be cleared")
		}
	})

	t.Run("returns 400 for account number without encryption key", func(t *testing.T) {
		handler, db := setupHandler(t, nil)

		w := create(t, handler, "owner-1", map[string]interface{}{"name": "X", "accountType": "BANK", "accountNumber": "99991234"})
		if w.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d: %s", w.Code, w.Body.String())
		}
		if testutil.CountRows(t, db, "account") != 0 {
			t.Error("Expected no account to be stored")
		}
	})

	t.Run("returns 400 for validation failures", func(t *testing.T) {
		handler, _ := setupHandler(t, nil)

		w := create(t, handler, "owner-1", map[string]interface{}{"name": "", "accountType": "LOAN"})
		if w.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", w.Code)
		}
		body := testutil.DecodeJSON[map[string]interface{}](t, w)
		details, ok := body["details"].(map[string]interface{})
		if !ok || details["name"] == nil || details["accountType"] == nil {
			t.Errorf("Expected field errors for name and accountType, got %v", body["details"])
		}
	})

	t.Run("lists only the caller's accounts", func(t *testing.T) {
		handler, db := setupHandler(t, nil)
		testutil.NewAccount("owner-1").Build(t, db)
		testutil.NewAccount("owner-1").Default().Build(t, db)
		testutil.NewAccount("owner-2").Build(t, db)

		req := testutil.AsOwner(httptest.NewRequest(http.MethodGet, "/api/accounts", nil), "owner-1")
		w := httptest.NewRecorder()
		handler.Accounts(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", w.Code)
		}
		accounts := testutil.DecodeJSON[[]model.Account](t, w)
		if len(accounts) != 2 {
			t.Fatalf("Expected 2 accounts, got %d", len(accounts))
		}
		if !accounts[0].IsDefault {
			t.Error("Expected default account first")
		}
	})

	t.Run("get returns 403 for another owner's account", func(t *testing.T) {
		handler, db := setupHandler(t, nil)
		account := testutil.NewAccount("owner-2").Build(t, db)

		req := testutil.AsOwner(httptest.NewRequest(http.MethodGet, "/api/accounts/"+account.ID, nil), "owner-1")
		req = testutil.WithURLParams(req, map[string]string{"uuid": account.ID})
		w := httptest.NewRecorder()
		handler.GetAccount(w, req)

		if w.Code != http.StatusForbidden {
			t.Errorf("Expected 403, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("get returns 404 for missing account", func(t *testing.T) {
		handler, _ := setupHandler(t, nil)
		id := testutil.MakeID()

		req := testutil.AsOwner(httptest.NewRequest(http.MethodGet, "/api/accounts/"+id, nil), "owner-1")
		req = testutil.WithURLParams(req, map[string]string{"uuid": id})
		w := httptest.NewRecorder()
		handler.GetAccount(w, req)

		if w.Code != http.StatusNotFound {
			t.Errorf("Expected 404, got %d: %s", w.Code, w.Body.String())
		}
	})

	t.Run("delete removes the account", func(t *testing.T) {
		handler, db := setupHandler(t, nil)
		account := testutil.NewAccount("owner-1").Build(t, db)

		req := testutil.AsOwner(httptest.NewRequest(http.MethodDelete, "/api/accounts/"+account.ID, nil), "owner-1")
		req = testutil.WithURLParams(req, map[string]string{"uuid": account.ID})
		w := httptest.NewRecorder()
		handler.DeleteAccount(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("Expected 204, got %d: %s", w.Code, w.Body.String())
		}
		if testutil.CountRows(t, db, "account") != 0 {
			t.Error("Expected account to be deleted")
		}
	})
}
