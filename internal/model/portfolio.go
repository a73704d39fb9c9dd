package model

import "github.com/shopspring/decimal"

// HoldingValuation is a holding priced at the current market price.
type HoldingValuation struct {
	Symbol               string          `json:"symbol"`
	Quantity             int64           `json:"quantity"`
	AveragePrice         decimal.Decimal `json:"averagePrice"`
	CurrentPrice         decimal.Decimal `json:"currentPrice"`
	Invested             decimal.Decimal `json:"invested"`
	CurrentValue         decimal.Decimal `json:"currentValue"`
	PnL                  decimal.Decimal `json:"pnl"`
	PnLPercentage        decimal.Decimal `json:"pnlPercentage"`
	AllocationPercentage decimal.Decimal `json:"allocationPercentage"`
}

// PortfolioView is the point-in-time valuation of an owner's holdings and cash.
// It is a read-only projection and is never persisted directly.
type PortfolioView struct {
	TotalValue         decimal.Decimal    `json:"totalValue"`
	TotalInvested      decimal.Decimal    `json:"totalInvested"`
	TotalPnL           decimal.Decimal    `json:"totalPnL"`
	TotalPnLPercentage decimal.Decimal    `json:"totalPnLPercentage"`
	DayPnL             decimal.Decimal    `json:"dayPnL"`
	DayPnLPercentage   decimal.Decimal    `json:"dayPnLPercentage"`
	CashBalance        decimal.Decimal    `json:"cashBalance"`
	RealizedPnL        decimal.Decimal    `json:"realizedPnL"`
	NetWorth           decimal.Decimal    `json:"netWorth"`
	TopGainer          *HoldingValuation  `json:"topGainer"`
	TopLoser           *HoldingValuation  `json:"topLoser"`
	Holdings           []HoldingValuation `json:"holdings"`
}
