package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Holding is an owner's open position in one symbol.
// A holding with zero quantity is never stored.
type Holding struct {
	ID           string          `json:"id"`
	UserID       string          `json:"userId"`
	Symbol       string          `json:"symbol"`
	Quantity     int64           `json:"quantity"`
	AveragePrice decimal.Decimal `json:"averagePrice"`
	Version      int64           `json:"-"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// Invested returns the cost basis of the position (average price times quantity).
func (h Holding) Invested() decimal.Decimal {
	return h.AveragePrice.Mul(decimal.NewFromInt(h.Quantity))
}
