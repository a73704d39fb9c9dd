package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/investment-tracker-backend/internal/api/response"
	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/service"
)

// MarketHandler handles market data HTTP requests.
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler.
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// Quote handles GET requests for the current price of one symbol.
//
// Endpoint: GET /api/market/quote/{symbol}
// Response: 200 OK with model.Quote
// Error: 503 Service Unavailable if every provider failed
func (h *MarketHandler) Quote(w http.ResponseWriter, r *http.Request) {
	quote, err := h.marketService.Quote(r.Context(), chi.URLParam(r, "symbol"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveQuote)
		return
	}
	response.RespondJSON(w, http.StatusOK, quote)
}

// Search handles GET requests checking whether a ticker can be priced.
//
// Endpoint: GET /api/market/search/{query}
// Response: 200 OK with model.SymbolLookup, found or not
func (h *MarketHandler) Search(w http.ResponseWriter, r *http.Request) {
	lookup, err := h.marketService.Search(r.Context(), chi.URLParam(r, "query"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveQuote)
		return
	}
	response.RespondJSON(w, http.StatusOK, lookup)
}

// Overview handles GET requests for index and mover quotes.
//
// Endpoint: GET /api/market/overview
// Response: 200 OK with model.MarketOverview
func (h *MarketHandler) Overview(w http.ResponseWriter, r *http.Request) {
	overview, err := h.marketService.Overview(r.Context())
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveQuote)
		return
	}
	response.RespondJSON(w, http.StatusOK, overview)
}
