package middleware_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ndewijer/investment-tracker-backend/internal/api/middleware"
)

func TestLogger(t *testing.T) {
	t.Run("logs method path and status", func(t *testing.T) {
		var buf bytes.Buffer
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTeapot)
		})

		req := httptest.NewRequest(http.MethodPost, "/api/trade", nil)
		w := httptest.NewRecorder()
		middleware.Logger(zerolog.New(&buf))(next).ServeHTTP(w, req)

		var entry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("Expected one JSON log line, got %q: %v", buf.String(), err)
		}
		if entry["method"] != "POST" || entry["path"] != "/api/trade" {
			t.Errorf("Unexpected log entry: %v", entry)
		}
		if entry["status"] != float64(http.StatusTeapot) {
			t.Errorf("Expected status 418, got %v", entry["status"])
		}
		if entry["level"] != "warn" {
			t.Errorf("Expected warn level for 4xx, got %v", entry["level"])
		}
	})

	t.Run("strips newlines from path", func(t *testing.T) {
		var buf bytes.Buffer
		next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {})

		req := httptest.NewRequest(http.MethodGet, "/api/x", nil)
		req.URL.Path = "/api/x\r\nforged"
		w := httptest.NewRecorder()
		middleware.Logger(zerolog.New(&buf))(next).ServeHTTP(w, req)

		var entry map[string]interface{}
		if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
			t.Fatalf("Failed to decode log line: %v", err)
		}
		if entry["path"] != "/api/xforged" {
			t.Errorf("Expected sanitized path, got %v", entry["path"])
		}
	})
}
