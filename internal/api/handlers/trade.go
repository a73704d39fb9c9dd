package handlers

import (
	"net/http"

	"github.com/ndewijer/investment-tracker-backend/internal/api/request"
	"github.com/ndewijer/investment-tracker-backend/internal/api/response"
	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/service"
	"github.com/ndewijer/investment-tracker-backend/internal/validation"
)

// TradeHandler handles HTTP requests for buy and sell orders.
type TradeHandler struct {
	tradeService *service.TradeService
}

// NewTradeHandler creates a new TradeHandler with the provided service dependency.
func NewTradeHandler(tradeService *service.TradeService) *TradeHandler {
	return &TradeHandler{
		tradeService: tradeService,
	}
}

// ExecuteTrade handles POST requests to buy or sell at the current market price.
//
// Endpoint: POST /api/trade
// Request Body: TradeRequest (symbol, quantity, type)
// Response: 200 OK with model.TradeResult
// Error: 400 Bad Request if the body, symbol, type or quantity is invalid
// Error: 422 Unprocessable Entity for insufficient funds or quantity, or an unowned symbol
// Error: 503 Service Unavailable if no price could be obtained
func (h *TradeHandler) ExecuteTrade(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.TradeRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateTrade(req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToExecuteTrade)
		return
	}

	result, err := h.tradeService.ExecuteTrade(r.Context(), owner, req.Symbol, req.Quantity, req.Type)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToExecuteTrade)
		return
	}

	response.RespondJSON(w, http.StatusOK, result)
}
