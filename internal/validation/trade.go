package validation

import (
	"fmt"
	"strings"

	"github.com/ndewijer/investment-tracker-backend/internal/api/request"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// ValidateTrade validates a trade request.
//
// Required fields:
//   - symbol: non-empty, at most 32 characters
//   - type: BUY or SELL (case-insensitive)
//
// Quantity is checked by the trade service so that callers get ErrInvalidQuantity.
func ValidateTrade(req request.TradeRequest) error {
	errors := make(map[string]string)

	symbol := strings.TrimSpace(req.Symbol)
	if symbol == "" {
		errors["symbol"] = "symbol is required"
	} else if len(symbol) > 32 {
		errors["symbol"] = "symbol must be at most 32 characters"
	}

	switch strings.ToUpper(strings.TrimSpace(req.Type)) {
	case model.TransactionBuy, model.TransactionSell:
	case "":
		errors["type"] = "type is required"
	default:
		errors["type"] = fmt.Sprintf("invalid type: %s", req.Type)
	}

	return asError(errors)
}
