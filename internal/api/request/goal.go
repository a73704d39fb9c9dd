package request

import "github.com/shopspring/decimal"

// CreateGoalRequest is the body of POST /api/goals. Deadline is YYYY-MM-DD.
type CreateGoalRequest struct {
	Name                string          `json:"name"`
	TargetAmount        decimal.Decimal `json:"targetAmount"`
	CurrentAmount       decimal.Decimal `json:"currentAmount"`
	Deadline            string          `json:"deadline"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	Status              string          `json:"status"`
	Type                string          `json:"type"`
	ReminderMonths      string          `json:"reminderMonths"`
}
