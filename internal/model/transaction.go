package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction types recorded in the append-only transaction log.
const (
	TransactionBuy        = "BUY"
	TransactionSell       = "SELL"
	TransactionDividend   = "DIVIDEND"
	TransactionDeposit    = "DEPOSIT"
	TransactionWithdrawal = "WITHDRAWAL"
)

// CashSymbol is the symbol recorded for deposits and withdrawals.
const CashSymbol = "CASH"

// Transaction is a single entry in an owner's transaction log.
// Entries are never updated or deleted once written.
type Transaction struct {
	ID        string           `json:"id"`
	UserID    string           `json:"userId"`
	Symbol    string           `json:"symbol"`
	Type      string           `json:"type"`
	Quantity  int64            `json:"quantity"`
	Price     decimal.Decimal  `json:"price"`
	Fee       *decimal.Decimal `json:"fee,omitempty"`
	Timestamp time.Time        `json:"timestamp"`
}

// TransactionFilter narrows a transaction history query.
// A zero Limit returns every row.
type TransactionFilter struct {
	Type  string
	Limit int
}

// TradeResult is returned after a trade or funds operation commits.
// Holding is nil when the position was closed or the operation did not touch one.
type TradeResult struct {
	Transaction Transaction     `json:"transaction"`
	CashBalance decimal.Decimal `json:"cashBalance"`
	RealizedPnL decimal.Decimal `json:"realizedPnL"`
	Holding     *Holding        `json:"holding"`
}
