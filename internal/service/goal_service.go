package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ndewijer/investment-tracker-backend/internal/api/request"
	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/repository"
	"github.com/ndewijer/investment-tracker-backend/internal/validation"
)

// DefaultGoalStatus is assigned to goals created without a status.
const DefaultGoalStatus = "on-track"

// GoalService manages an owner's savings goals.
type GoalService struct {
	goalRepo *repository.GoalRepository
}

// NewGoalService creates a new GoalService.
func NewGoalService(goalRepo *repository.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// ListGoals returns the owner's goals ordered by deadline, with progress filled in.
func (s *GoalService) ListGoals(ctx context.Context, ownerID string) ([]model.Goal, error) {
	goals, err := s.goalRepo.ListGoals(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", apperrors.ErrFailedToRetrieveGoals, err)
	}
	for i := range goals {
		goals[i] = withProgress(goals[i])
	}
	return goals, nil
}

// GetGoal returns one of the owner's goals.
func (s *GoalService) GetGoal(ctx context.Context, ownerID, id string) (model.Goal, error) {
	g, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return model.Goal{}, err
	}
	return withProgress(g), nil
}

// CreateGoal stores a validated goal request for the owner.
func (s *GoalService) CreateGoal(ctx context.Context, ownerID string, req request.CreateGoalRequest) (model.Goal, error) {
	deadline, err := validation.ParseDate(req.Deadline)
	if err != nil {
		return model.Goal{}, fmt.Errorf("invalid deadline: %w", err)
	}

	g := model.Goal{
		ID:                  uuid.New().String(),
		UserID:              ownerID,
		Name:                strings.TrimSpace(req.Name),
		TargetAmount:        req.TargetAmount,
		CurrentAmount:       req.CurrentAmount,
		Deadline:            deadline,
		MonthlyContribution: req.MonthlyContribution,
		Status:              strings.TrimSpace(req.Status),
		Type:                strings.TrimSpace(req.Type),
		ReminderMonths:      strings.TrimSpace(req.ReminderMonths),
	}
	if g.Status == "" {
		g.Status = DefaultGoalStatus
	}

	if err := s.goalRepo.InsertGoal(ctx, g); err != nil {
		return model.Goal{}, err
	}
	return withProgress(g), nil
}

// DeleteGoal removes one of the owner's goals.
func (s *GoalService) DeleteGoal(ctx context.Context, ownerID, id string) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.goalRepo.DeleteGoal(ctx, id)
}

func (s *GoalService) owned(ctx context.Context, ownerID, id string) (model.Goal, error) {
	g, err := s.goalRepo.GetGoal(ctx, id)
	if err != nil {
		return model.Goal{}, err
	}
	if g.UserID != ownerID {
		return model.Goal{}, apperrors.ErrForbidden
	}
	return g, nil
}

func withProgress(g model.Goal) model.Goal {
	g.ProgressPercentage = percentage(g.CurrentAmount, g.TargetAmount)
	return g
}
