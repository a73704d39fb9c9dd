package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/ndewijer/investment-tracker-backend/internal/api/middleware"
	"github.com/ndewijer/investment-tracker-backend/internal/api/response"
	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/validation"
)

// parseJSON decodes the request body into T, rejecting unknown fields.
func parseJSON[T any](r *http.Request) (T, error) {
	var req T
	if r.Body == nil {
		return req, errors.New("request body is required")
	}
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		return req, fmt.Errorf("invalid JSON: %w", err)
	}
	return req, nil
}

// errorStatus maps service errors to HTTP statuses, most specific first.
var errorStatus = []struct {
	err    error
	status int
}{
	{apperrors.ErrInvalidAmount, http.StatusBadRequest},
	{apperrors.ErrInvalidQuantity, http.StatusBadRequest},
	{apperrors.ErrInvalidTradeType, http.StatusBadRequest},
	{apperrors.ErrInvalidSymbol, http.StatusBadRequest},
	{apperrors.ErrInvalidOwnerID, http.StatusBadRequest},
	{apperrors.ErrInvalidUUID, http.StatusBadRequest},
	{apperrors.ErrEncryptionNotConfigured, http.StatusBadRequest},

	{apperrors.ErrInsufficientFunds, http.StatusUnprocessableEntity},
	{apperrors.ErrNotOwned, http.StatusUnprocessableEntity},
	{apperrors.ErrInsufficientQuantity, http.StatusUnprocessableEntity},

	{apperrors.ErrUserNotFound, http.StatusNotFound},
	{apperrors.ErrHoldingNotFound, http.StatusNotFound},
	{apperrors.ErrTransactionNotFound, http.StatusNotFound},
	{apperrors.ErrSnapshotNotFound, http.StatusNotFound},
	{apperrors.ErrAccountNotFound, http.StatusNotFound},
	{apperrors.ErrGoalNotFound, http.StatusNotFound},
	{apperrors.ErrSipNotFound, http.StatusNotFound},

	{apperrors.ErrForbidden, http.StatusForbidden},

	{apperrors.ErrVersionConflict, http.StatusConflict},
	{apperrors.ErrDuplicateEntry, http.StatusConflict},

	{apperrors.ErrPriceUnavailable, http.StatusServiceUnavailable},
}

// respondServiceError writes err with the status of the first matching
// sentinel. Field validation failures return the per-field messages as details.
// Anything unrecognised is a 500 reported as fallback.
func respondServiceError(w http.ResponseWriter, err error, fallback error) {
	var verr *validation.Error
	if errors.As(err, &verr) {
		response.RespondError(w, http.StatusBadRequest, "validation failed", verr.Fields)
		return
	}

	for _, m := range errorStatus {
		if errors.Is(err, m.err) {
			response.RespondError(w, m.status, m.err.Error(), err.Error())
			return
		}
	}

	log.Error().Err(err).Msg(fallback.Error())
	response.RespondError(w, http.StatusInternalServerError, fallback.Error(), err.Error())
}

// requireOwner returns the authenticated owner id, writing 401 when there is none.
func requireOwner(w http.ResponseWriter, r *http.Request) (string, bool) {
	owner := middleware.OwnerID(r.Context())
	if owner == "" {
		response.RespondError(w, http.StatusUnauthorized, "unauthorized", "no authenticated owner")
		return "", false
	}
	return owner, true
}
