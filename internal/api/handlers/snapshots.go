package handlers

import (
	"net/http"

	"github.com/ndewijer/investment-tracker-backend/internal/api/response"
	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/service"
)

// SnapshotHandler handles HTTP requests for daily portfolio snapshots.
type SnapshotHandler struct {
	snapshotService *service.SnapshotService
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotService *service.SnapshotService) *SnapshotHandler {
	return &SnapshotHandler{
		snapshotService: snapshotService,
	}
}

// Snapshots handles GET requests for the caller's snapshot history, oldest first.
//
// Endpoint: GET /api/snapshots
// Response: 200 OK with array of model.PortfolioSnapshot
func (h *SnapshotHandler) Snapshots(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	snapshots, err := h.snapshotService.ListSnapshots(r.Context(), owner)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, snapshots)
}

// Capture handles POST requests that capture today's snapshot for every user.
// Per-user failures are reported in the body and do not change the status.
//
// Endpoint: POST /api/snapshots/capture
// Response: 200 OK with model.CaptureReport
// Error: 500 Internal Server Error if users cannot be listed
func (h *SnapshotHandler) Capture(w http.ResponseWriter, r *http.Request) {
	report, err := h.snapshotService.CaptureSnapshots(r.Context())
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCaptureSnapshots.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}
