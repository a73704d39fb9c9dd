package handlers

import (
	"net/http"

	"github.com/ndewijer/investment-tracker-backend/internal/api/request"
	"github.com/ndewijer/investment-tracker-backend/internal/api/response"
	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/service"
)

// TransactionHandler handles HTTP requests for transaction endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the transactionService.
type TransactionHandler struct {
	transactionService *service.TransactionService
}

// NewTransactionHandler creates a new TransactionHandler with the provided service dependency.
func NewTransactionHandler(transactionService *service.TransactionService) *TransactionHandler {
	return &TransactionHandler{
		transactionService: transactionService,
	}
}

// History handles GET requests to retrieve the caller's transactions, newest first.
//
// Endpoint: GET /api/transactions?type=&limit=
// Response: 200 OK with array of model.Transaction
// Error: 400 Bad Request if type or limit is invalid
// Error: 500 Internal Server Error if retrieval fails
func (h *TransactionHandler) History(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	q := r.URL.Query()
	filter, err := request.ParseTransactionFilters(q.Get("type"), q.Get("limit"))
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid query parameters", err.Error())
		return
	}

	transactions, err := h.transactionService.ListTransactions(r.Context(), owner, filter)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveTransactions)
		return
	}

	response.RespondJSON(w, http.StatusOK, transactions)
}
