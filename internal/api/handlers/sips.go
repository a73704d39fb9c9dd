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

// SipHandler handles HTTP requests for SIP endpoints.
type SipHandler struct {
	sipService *service.SipService
}

// NewSipHandler creates a new SipHandler with the provided service dependency.
func NewSipHandler(sipService *service.SipService) *SipHandler {
	return &SipHandler{
		sipService: sipService,
	}
}

// Sips handles GET requests for the caller's SIPs ordered by next date.
//
// Endpoint: GET /api/sips
// Response: 200 OK with array of model.Sip
func (h *SipHandler) Sips(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	sips, err := h.sipService.ListSips(r.Context(), owner)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSips.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, sips)
}

// GetSip handles GET requests for a single SIP.
//
// Endpoint: GET /api/sips/{uuid}
// Response: 200 OK with model.Sip
// Error: 403 Forbidden if the SIP belongs to another owner
// Error: 404 Not Found if the SIP does not exist
func (h *SipHandler) GetSip(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	sip, err := h.sipService.GetSip(r.Context(), owner, chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveSips)
		return
	}
	response.RespondJSON(w, http.StatusOK, sip)
}

// CreateSip handles POST requests to create a SIP.
//
// Endpoint: POST /api/sips
// Request Body: CreateSipRequest
// Response: 201 Created with model.Sip
// Error: 400 Bad Request if validation fails
func (h *SipHandler) CreateSip(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.CreateSipRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateSip(req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveSips)
		return
	}

	sip, err := h.sipService.CreateSip(r.Context(), owner, req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveSips)
		return
	}
	response.RespondJSON(w, http.StatusCreated, sip)
}

// DeleteSip handles DELETE requests to remove a SIP.
//
// Endpoint: DELETE /api/sips/{uuid}
// Response: 204 No Content on successful deletion
// Error: 403 Forbidden if the SIP belongs to another owner
// Error: 404 Not Found if the SIP does not exist
func (h *SipHandler) DeleteSip(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	if err := h.sipService.DeleteSip(r.Context(), owner, chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveSips)
		return
	}
	response.RespondNoContent(w)
}
