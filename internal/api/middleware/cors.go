package middleware

import (
	"net/http"

	"github.com/go-chi/cors"

	"github.com/ndewijer/investment-tracker-backend/internal/config"
)

// NewCORS allows the configured front-end origins to call the API with a bearer token.
// Only the verbs the router mounts are listed.
func NewCORS(cfg config.CORSConfig) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-Id"},
		ExposedHeaders: []string{"X-Request-Id"},
		MaxAge:         300,
	})
}
