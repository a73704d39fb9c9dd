package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// User holds the cash and realized profit state for one owner id.
// Version is the optimistic-concurrency counter bumped on every update.
type User struct {
	ID          string          `json:"id"`
	CashBalance decimal.Decimal `json:"cashBalance"`
	RealizedPnL decimal.Decimal `json:"realizedPnL"`
	Version     int64           `json:"-"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}
