package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PortfolioSnapshot is the persisted daily valuation of one owner.
// There is at most one row per (UserID, Date).
type PortfolioSnapshot struct {
	ID             string          `json:"id"`
	UserID         string          `json:"userId"`
	Date           time.Time       `json:"date"`
	TotalValue     decimal.Decimal `json:"totalValue"`
	InvestedAmount decimal.Decimal `json:"investedAmount"`
	CashBalance    decimal.Decimal `json:"cashBalance"`
	UnrealizedPnL  decimal.Decimal `json:"unrealizedPnL"`
	RealizedPnL    decimal.Decimal `json:"realizedPnL"`
}

// CaptureFailure records one owner whose snapshot could not be captured.
type CaptureFailure struct {
	UserID string `json:"userId"`
	Error  string `json:"error"`
}

// CaptureReport summarises a snapshot capture run.
type CaptureReport struct {
	Date     string           `json:"date"`
	Captured int              `json:"captured"`
	Failed   []CaptureFailure `json:"failed"`
}
