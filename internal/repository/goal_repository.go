package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// GoalRepository provides data access methods for the goal table.
type GoalRepository struct {
	db *sql.DB
}

// NewGoalRepository creates a new GoalRepository with the provided database connection.
func NewGoalRepository(db *sql.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

const goalColumns = `id, user_id, name, target_amount, current_amount, deadline, monthly_contribution, status, type, reminder_months`

// GetGoal returns the goal with the given id regardless of owner.
func (r *GoalRepository) GetGoal(ctx context.Context, id string) (model.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goal WHERE id = ?`

	g, err := scanGoal(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.Goal{}, apperrors.ErrGoalNotFound
		}
		return model.Goal{}, fmt.Errorf("failed to query goal table: %w", err)
	}
	return g, nil
}

// ListGoals returns the owner's goals ordered by deadline.
func (r *GoalRepository) ListGoals(ctx context.Context, userID string) ([]model.Goal, error) {
	query := `SELECT ` + goalColumns + ` FROM goal WHERE user_id = ? ORDER BY deadline ASC, name ASC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query goal table: %w", err)
	}
	defer rows.Close()

	goals := []model.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan goal table results: %w", err)
		}
		goals = append(goals, g)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating goal table: %w", err)
	}

	return goals, nil
}

// InsertGoal stores g; the caller assigns the id.
func (r *GoalRepository) InsertGoal(ctx context.Context, g model.Goal) error {
	query := `
		INSERT INTO goal (` + goalColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		g.ID,
		g.UserID,
		g.Name,
		g.TargetAmount.String(),
		g.CurrentAmount.String(),
		FormatDate(g.Deadline),
		g.MonthlyContribution.String(),
		g.Status,
		g.Type,
		g.ReminderMonths,
	)
	if err != nil {
		return fmt.Errorf("failed to insert goal: %w", err)
	}
	return nil
}

// DeleteGoal removes the goal with the given id.
func (r *GoalRepository) DeleteGoal(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM goal WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return checkAffected(result, apperrors.ErrGoalNotFound)
}

func scanGoal(row rowScanner) (model.Goal, error) {
	var g model.Goal
	var deadlineStr string
	if err := row.Scan(
		&g.ID,
		&g.UserID,
		&g.Name,
		&g.TargetAmount,
		&g.CurrentAmount,
		&deadlineStr,
		&g.MonthlyContribution,
		&g.Status,
		&g.Type,
		&g.ReminderMonths,
	); err != nil {
		return model.Goal{}, err
	}

	deadline, err := ParseTime(deadlineStr)
	if err != nil {
		return model.Goal{}, err
	}
	g.Deadline = deadline

	return g, nil
}
