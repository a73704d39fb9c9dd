package response

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRespondJSON(t *testing.T) {
	t.Run("writes status, content type and body", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondJSON(w, http.StatusOK, map[string]string{"symbol": "AAPL"})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
		if w.Header().Get("Content-Type") != "application/json" {
			t.Errorf("Expected Content-Type 'application/json', got '%s'", w.Header().Get("Content-Type"))
		}
		var body map[string]string
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body["symbol"] != "AAPL" {
			t.Errorf("Expected symbol AAPL, got %q", body["symbol"])
		}
	})

	t.Run("nil data writes status only", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondJSON(w, http.StatusAccepted, nil)

		if w.Code != http.StatusAccepted {
			t.Errorf("Expected status 202, got %d", w.Code)
		}
		if w.Body.Len() != 0 {
			t.Errorf("Expected empty body, got %q", w.Body.String())
		}
	})

	t.Run("un-encodable data keeps the status", func(t *testing.T) {
		w := httptest.NewRecorder()

		// Channels cannot be JSON encoded
		RespondJSON(w, http.StatusOK, map[string]interface{}{"ch": make(chan int)})

		if w.Code != http.StatusOK {
			t.Errorf("Expected status 200, got %d", w.Code)
		}
	})
}

func TestRespondNoContent(t *testing.T) {
	w := httptest.NewRecorder()

	RespondNoContent(w)

	if w.Code != http.StatusNoContent {
		t.Errorf("Expected status 204, got %d", w.Code)
	}
	if w.Header().Get("Content-Type") != "" {
		t.Errorf("Expected no Content-Type, got %q", w.Header().Get("Content-Type"))
	}
}

func TestRespondError(t *testing.T) {
	t.Run("includes details", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondError(w, http.StatusUnprocessableEntity, "insufficient funds", "need 400, have 100")

		var body ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected status 422, got %d", w.Code)
		}
		if body.Error != "insufficient funds" || body.Details != "need 400, have 100" {
			t.Errorf("Unexpected body: %+v", body)
		}
	})

	t.Run("omits empty details", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondError(w, http.StatusNotFound, "goal not found", "")

		var raw map[string]interface{}
		if err := json.NewDecoder(w.Body).Decode(&raw); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if _, ok := raw["details"]; ok {
			t.Errorf("Expected details to be omitted, got %v", raw)
		}
	})

	t.Run("keeps field maps", func(t *testing.T) {
		w := httptest.NewRecorder()

		RespondError(w, http.StatusBadRequest, "validation failed", map[string]string{"name": "name is required"})

		var body struct {
			Details map[string]string `json:"details"`
		}
		if err := json.NewDecoder(w.Body).Decode(&body); err != nil {
			t.Fatalf("failed to decode body: %v", err)
		}
		if body.Details["name"] != "name is required" {
			t.Errorf("Unexpected details: %v", body.Details)
		}
	})
}
