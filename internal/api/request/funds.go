package request

import "github.com/shopspring/decimal"

// FundsRequest is the body of the deposit, withdraw and dividend endpoints.
// Symbol is only read for dividends.
type FundsRequest struct {
	Amount decimal.Decimal `json:"amount"`
	Symbol string          `json:"symbol,omitempty"`
}
