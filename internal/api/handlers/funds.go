package handlers

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-tracker-backend/internal/api/request"
	"github.com/ndewijer/investment-tracker-backend/internal/api/response"
	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/service"
)

// FundsHandler handles HTTP requests that move cash.
type FundsHandler struct {
	fundsService *service.FundsService
}

// NewFundsHandler creates a new FundsHandler with the provided service dependency.
func NewFundsHandler(fundsService *service.FundsService) *FundsHandler {
	return &FundsHandler{
		fundsService: fundsService,
	}
}

// Deposit handles POST requests that add cash.
//
// Endpoint: POST /api/funds/deposit
// Request: FundsRequest body, or ?amount=
// Response: 200 OK with model.TradeResult
// Error: 400 Bad Request if amount is missing or not positive
func (h *FundsHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	req, ok := parseFundsRequest(w, r)
	if !ok {
		return
	}

	result, err := h.fundsService.Deposit(r.Context(), owner, req.Amount)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateFunds)
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}

// Withdraw handles POST requests that remove cash.
//
// Endpoint: POST /api/funds/withdraw
// Request: FundsRequest body, or ?amount=
// Response: 200 OK with model.TradeResult
// Error: 400 Bad Request if amount is missing or not positive
// Error: 422 Unprocessable Entity if the balance does not cover the amount
func (h *FundsHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	req, ok := parseFundsRequest(w, r)
	if !ok {
		return
	}

	result, err := h.fundsService.Withdraw(r.Context(), owner, req.Amount)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateFunds)
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}

// Dividend handles POST requests that record a cash dividend on a held symbol.
//
// Endpoint: POST /api/funds/dividend
// Request: FundsRequest body with symbol, or ?amount=&symbol=
// Response: 200 OK with model.TradeResult
// Error: 400 Bad Request if amount or symbol is invalid
// Error: 422 Unprocessable Entity if the symbol is not held
func (h *FundsHandler) Dividend(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}
	req, ok := parseFundsRequest(w, r)
	if !ok {
		return
	}

	result, err := h.fundsService.RecordDividend(r.Context(), owner, req.Symbol, req.Amount)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToUpdateFunds)
		return
	}
	response.RespondJSON(w, http.StatusOK, result)
}

// parseFundsRequest reads the amount query parameter when present and the JSON body otherwise.
func parseFundsRequest(w http.ResponseWriter, r *http.Request) (request.FundsRequest, bool) {
	q := r.URL.Query()
	if raw := q.Get("amount"); raw != "" {
		amount, err := decimal.NewFromString(raw)
		if err != nil {
			response.RespondError(w, http.StatusBadRequest, "invalid amount", err.Error())
			return request.FundsRequest{}, false
		}
		return request.FundsRequest{Amount: amount, Symbol: q.Get("symbol")}, true
	}

	req, err := parseJSON[request.FundsRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return request.FundsRequest{}, false
	}
	return req, true
}
