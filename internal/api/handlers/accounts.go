package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ndewijer/investment-tracker-backend/internal/api/request"
	"github.com/ndewijer/investment-tracker-backend/internal/api/response"
	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/service"
	"github.com/ndewijer/investment-tracker-backend/internal/validation"
)

// AccountHandler handles HTTP requests for account endpoints.
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler with the provided service dependency.
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// Accounts handles GET requests for the caller's accounts, default first.
//
// Endpoint: GET /api/accounts
// Response: 200 OK with array of model.Account (account numbers masked)
func (h *AccountHandler) Accounts(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	accounts, err := h.accountService.ListAccounts(r.Context(), owner)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveAccounts.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, accounts)
}

// GetAccount handles GET requests for a single account.
//
// Endpoint: GET /api/accounts/{uuid}
// Response: 200 OK with model.Account
// Error: 403 Forbidden if the account belongs to another owner
// Error: 404 Not Found if the account does not exist
func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	account, err := h.accountService.GetAccount(r.Context(), owner, chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveAccounts)
		return
	}
	response.RespondJSON(w, http.StatusOK, account)
}

// CreateAccount handles POST requests to create an account.
//
// Endpoint: POST /api/accounts
// Request Body: CreateAccountRequest
// Response: 201 Created with model.Account
// Error: 400 Bad Request if validation fails, or an account number is sent without encryption configured
func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.CreateAccountRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateAccount(req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveAccounts)
		return
	}

	account, err := h.accountService.CreateAccount(r.Context(), owner, req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveAccounts)
		return
	}
	response.RespondJSON(w, http.StatusCreated, account)
}

// DeleteAccount handles DELETE requests to remove an account.
//
// Endpoint: DELETE /api/accounts/{uuid}
// Response: 204 No Content on successful deletion
// Error: 403 Forbidden if the account belongs to another owner
// Error: 404 Not Found if the account does not exist
func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(r.Context(), owner, chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveAccounts)
		return
	}
	response.RespondNoContent(w)
}
