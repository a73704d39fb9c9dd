package request

import "github.com/shopspring/decimal"

// CreateSipRequest is the body of POST /api/sips. NextDate is YYYY-MM-DD.
type CreateSipRequest struct {
	Fund      string          `json:"fund"`
	Amount    decimal.Decimal `json:"amount"`
	Frequency string          `json:"frequency"`
	NextDate  string          `json:"nextDate"`
	Status    string          `json:"status"`
}
