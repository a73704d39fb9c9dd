package service

import (
	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
)

// position is the slice of user and holding state a trade changes.
// Quantity 0 means the owner holds no position in the symbol.
type position struct {
	Cash     decimal.Decimal
	Realized decimal.Decimal
	Quantity int64
	Average  decimal.Decimal
}

// applyBuy debits quantity*price from cash and folds the purchase into the
// weighted average, rounded to RatioPrecision places.
func applyBuy(p position, quantity int64, price decimal.Decimal) (position, error) {
	if quantity <= 0 {
		return p, apperrors.ErrInvalidQuantity
	}

	value := tradeValue(price, quantity)
	if p.Cash.LessThan(value) {
		return p, apperrors.ErrInsufficientFunds
	}

	next := p
	next.Cash = p.Cash.Sub(value)
	if p.Quantity == 0 {
		next.Average = price
	} else {
		cost := p.Average.Mul(decimal.NewFromInt(p.Quantity)).Add(value)
		next.Average = cost.DivRound(decimal.NewFromInt(p.Quantity+quantity), RatioPrecision)
	}
	next.Quantity = p.Quantity + quantity

	return next, nil
}

// applySell credits the full proceeds to cash and (price-average)*quantity to
// realized P&L. The average is unchanged.
func applySell(p position, quantity int64, price decimal.Decimal) (position, error) {
	if quantity <= 0 {
		return p, apperrors.ErrInvalidQuantity
	}
	if p.Quantity == 0 {
		return p, apperrors.ErrNotOwned
	}
	if p.Quantity < quantity {
		return p, apperrors.ErrInsufficientQuantity
	}

	q := decimal.NewFromInt(quantity)
	next := p
	next.Realized = p.Realized.Add(price.Sub(p.Average).Mul(q))
	next.Cash = p.Cash.Add(tradeValue(price, quantity))
	next.Quantity = p.Quantity - quantity

	return next, nil
}

// tradeValue is price*quantity.
func tradeValue(price decimal.Decimal, quantity int64) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(quantity))
}
