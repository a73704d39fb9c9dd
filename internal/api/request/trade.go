package request

// TradeRequest is the body of POST /api/trade.
// Type is BUY or SELL; case is ignored.
type TradeRequest struct {
	Symbol   string `json:"symbol"`
	Quantity int64  `json:"quantity"`
	Type     string `json:"type"`
}
