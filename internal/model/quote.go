package model

import "github.com/shopspring/decimal"

// Quote is a price for a symbol along with the provider that produced it.
type Quote struct {
	Symbol string          `json:"symbol"`
	Name   string          `json:"name,omitempty"`
	Price  decimal.Decimal `json:"price"`
	Source string          `json:"source"`
}

// SymbolLookup is the result of checking whether a ticker can be priced.
type SymbolLookup struct {
	Symbol string           `json:"symbol"`
	Found  bool             `json:"found"`
	Price  *decimal.Decimal `json:"price,omitempty"`
	Source string           `json:"source,omitempty"`
	Error  string           `json:"error,omitempty"`
}

// MarketOverview groups quotes for the headline index ETFs and tracked movers.
// Entries that could not be priced carry a zero price and an empty source.
type MarketOverview struct {
	Indices   []Quote `json:"indices"`
	TopMovers []Quote `json:"topMovers"`
}
