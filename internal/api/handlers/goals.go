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

// GoalHandler handles HTTP requests for goal endpoints.
type GoalHandler struct {
	goalService *service.GoalService
}

// NewGoalHandler creates a new GoalHandler with the provided service dependency.
func NewGoalHandler(goalService *service.GoalService) *GoalHandler {
	return &GoalHandler{
		goalService: goalService,
	}
}

// Goals handles GET requests for the caller's goals ordered by deadline.
//
// Endpoint: GET /api/goals
// Response: 200 OK with array of model.Goal with progressPercentage
func (h *GoalHandler) Goals(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	goals, err := h.goalService.ListGoals(r.Context(), owner)
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveGoals.Error(), err.Error())
		return
	}
	response.RespondJSON(w, http.StatusOK, goals)
}

// GetGoal handles GET requests for a single goal.
//
// Endpoint: GET /api/goals/{uuid}
// Response: 200 OK with model.Goal
// Error: 403 Forbidden if the goal belongs to another owner
// Error: 404 Not Found if the goal does not exist
func (h *GoalHandler) GetGoal(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	goal, err := h.goalService.GetGoal(r.Context(), owner, chi.URLParam(r, "uuid"))
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveGoals)
		return
	}
	response.RespondJSON(w, http.StatusOK, goal)
}

// CreateGoal handles POST requests to create a goal.
//
// Endpoint: POST /api/goals
// Request Body: CreateGoalRequest
// Response: 201 Created with model.Goal
// Error: 400 Bad Request if validation fails
func (h *GoalHandler) CreateGoal(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	req, err := parseJSON[request.CreateGoalRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	if err := validation.ValidateCreateGoal(req); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveGoals)
		return
	}

	goal, err := h.goalService.CreateGoal(r.Context(), owner, req)
	if err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveGoals)
		return
	}
	response.RespondJSON(w, http.StatusCreated, goal)
}

// DeleteGoal handles DELETE requests to remove a goal.
//
// Endpoint: DELETE /api/goals/{uuid}
// Response: 204 No Content on successful deletion
// Error: 403 Forbidden if the goal belongs to another owner
// Error: 404 Not Found if the goal does not exist
func (h *GoalHandler) DeleteGoal(w http.ResponseWriter, r *http.Request) {
	owner, ok := requireOwner(w, r)
	if !ok {
		return
	}

	if err := h.goalService.DeleteGoal(r.Context(), owner, chi.URLParam(r, "uuid")); err != nil {
		respondServiceError(w, err, apperrors.ErrFailedToRetrieveGoals)
		return
	}
	response.RespondNoContent(w)
}
