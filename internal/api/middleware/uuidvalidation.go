// Package middleware provides HTTP middleware for identity, request validation and logging.
package middleware

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/investment-tracker-backend/internal/api/response"
	"github.com/ndewijer/investment-tracker-backend/internal/validation"
)

// ValidateUUID rejects requests whose URL parameter param is missing or not a UUID
// with 400 Bad Request, before the record handler runs.
//
//	r.Route("/{uuid}", func(r chi.Router) {
//	    r.Use(middleware.ValidateUUID("uuid"))
//	    r.Get("/", handler.GetAccount)
//	})
func ValidateUUID(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := chi.URLParam(r, param)
			if id == "" {
				response.RespondError(w, http.StatusBadRequest, "record id is required", param)
				return
			}

			if err := validation.ValidateUUID(id); err != nil {
				response.RespondError(w, http.StatusBadRequest, "invalid UUID format", err.Error())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
