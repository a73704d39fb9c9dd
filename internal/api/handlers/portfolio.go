package handlers

import (
	"net/http"

	"github.com/ndewijer/investment-tracker-backend/internal/api/response"
	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/service"
)

// PortfolioHandler handles portfolio-related HTTP requests
type PortfolioHandler struct {
	portfolioService *service.PortfolioService
}

// NewPortfolioHandler creates a new PortfolioHandler
func NewPortfolioHandler(portfolioService *service.PortfolioService) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioService: portfolioService,
	}
}

// Portfolio handles GET requests for the caller's current valuation.
//
// Endpoint: GET /api/portfolio
// Response: 200 OK with model.PortfolioView
// Error: 503 Service Unavailable if any holding cannot be priced
func (h *PortfolioHandler) Portfolio(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	view, err := h.portfolioService.GetPortfolio(r.Context(), owner)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrievePortfolio)
		return
	}

	response.RespondJSON(w, http.StatusOK, view)
}
