package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Sip is a systematic investment plan: a recurring contribution into a fund.
type Sip struct {
	ID        string          `json:"id"`
	UserID    string          `json:"userId"`
	Fund      string          `json:"fund"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency"`
	NextDate  time.Time       `json:"nextDate"`
	Status    string          `json:"status"`
}
