package request

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// MaxTransactionLimit caps the limit query parameter of GET /api/transactions.
const MaxTransactionLimit = 500

var validTransactionTypes = map[string]bool{
	model.TransactionBuy:        true,
	model.TransactionSell:       true,
	model.TransactionDividend:   true,
	model.TransactionDeposit:    true,
	model.TransactionWithdrawal: true,
}

// ParseTransactionFilters extracts and validates transaction history filters from
// query parameters. Both parameters are optional.
//
// Validation rules:
//   - type: one of BUY, SELL, DIVIDEND, DEPOSIT, WITHDRAWAL (case-insensitive)
//   - limit: between 1 and MaxTransactionLimit; omitted means no limit
func ParseTransactionFilters(typeParam, limitParam string) (model.TransactionFilter, error) {
	var filters model.TransactionFilter

	if typeParam != "" {
		t := strings.ToUpper(strings.TrimSpace(typeParam))
		if !validTransactionTypes[t] {
			return filters, fmt.Errorf("invalid type: %s", typeParam)
		}
		filters.Type = t
	}

	if limitParam != "" {
		limit, err := strconv.Atoi(limitParam)
		if err != nil {
			return filters, fmt.Errorf("invalid limit: must be a number")
		}
		if limit < 1 || limit > MaxTransactionLimit {
			return filters, fmt.Errorf("invalid limit: must be between 1 and %d", MaxTransactionLimit)
		}
		filters.Limit = limit
	}

	return filters, nil
}
