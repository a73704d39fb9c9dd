package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Goal is a savings target tracked by the owner.
type Goal struct {
	ID                  string          `json:"id"`
	UserID              string          `json:"userId"`
	Name                string          `json:"name"`
	TargetAmount        decimal.Decimal `json:"targetAmount"`
	CurrentAmount       decimal.Decimal `json:"currentAmount"`
	Deadline            time.Time       `json:"deadline"`
	MonthlyContribution decimal.Decimal `json:"monthlyContribution"`
	Status              string          `json:"status"`
	Type                string          `json:"type"`
	ReminderMonths      string          `json:"reminderMonths"`
	ProgressPercentage  decimal.Decimal `json:"progressPercentage"`
}
