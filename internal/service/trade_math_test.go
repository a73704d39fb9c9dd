package service

import (
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
)

func cents(c int64) decimal.Decimal {
	return decimal.New(c, -2)
}

func TestApplyBuy(t *testing.T) {
	t.Run("first buy sets average to price", func(t *testing.T) {
		next, err := applyBuy(position{Cash: decimal.NewFromInt(1000)}, 10, decimal.NewFromInt(100))
		if err != nil {
			t.Fatalf("applyBuy() returned unexpected error: %v", err)
		}
		if !next.Cash.IsZero() || next.Quantity != 10 || !next.Average.Equal(decimal.NewFromInt(100)) {
			t.Errorf("Unexpected position %+v", next)
		}
	})

	t.Run("second buy recomputes weighted average", func(t *testing.T) {
		p := position{Cash: decimal.NewFromInt(1000), Quantity: 2, Average: decimal.NewFromInt(10)}
		next, err := applyBuy(p, 1, decimal.NewFromInt(11))
		if err != nil {
			t.Fatalf("applyBuy() returned unexpected error: %v", err)
		}
		// (20 + 11) / 3 = 10.3333
		if !next.Average.Equal(decimal.RequireFromString("10.3333")) {
			t.Errorf("Expected average 10.3333, got %s", next.Average)
		}
	})

	t.Run("rejects purchase above cash", func(t *testing.T) {
		p := position{Cash: decimal.NewFromInt(99)}
		next, err := applyBuy(p, 1, decimal.NewFromInt(100))
		if !errors.Is(err, apperrors.ErrInsufficientFunds) {
			t.Errorf("Expected ErrInsufficientFunds, got %v", err)
		}
		if !next.Cash.Equal(p.Cash) {
			t.Error("Expected position to be unchanged")
		}
	})

	t.Run("rejects non positive quantity", func(t *testing.T) {
		if _, err := applyBuy(position{Cash: decimal.NewFromInt(100)}, 0, decimal.NewFromInt(1)); !errors.Is(err, apperrors.ErrInvalidQuantity) {
			t.Errorf("Expected ErrInvalidQuantity, got %v", err)
		}
	})
}

func TestApplySell(t *testing.T) {
	held := position{Cash: decimal.Zero, Quantity: 10, Average: decimal.NewFromInt(100)}

	t.Run("partial sell realizes gain", func(t *testing.T) {
		next, err := applySell(held, 4, decimal.NewFromInt(150))
		if err != nil {
			t.Fatalf("applySell() returned unexpected error: %v", err)
		}
		if !next.Cash.Equal(decimal.NewFromInt(600)) || !next.Realized.Equal(decimal.NewFromInt(200)) {
			t.Errorf("Expected cash 600 and realized 200, got %s and %s", next.Cash, next.Realized)
		}
		if next.Quantity != 6 || !next.Average.Equal(held.Average) {
			t.Errorf("Expected 6 left at unchanged average, got %+v", next)
		}
	})

	t.Run("selling at a loss reduces realized", func(t *testing.T) {
		next, err := applySell(held, 10, decimal.NewFromInt(90))
		if err != nil {
			t.Fatalf("applySell() returned unexpected error: %v", err)
		}
		if !next.Realized.Equal(decimal.NewFromInt(-100)) || next.Quantity != 0 {
			t.Errorf("Expected realized -100 and empty position, got %+v", next)
		}
	})

	t.Run("errors", func(t *testing.T) {
		if _, err := applySell(position{}, 1, decimal.NewFromInt(1)); !errors.Is(err, apperrors.ErrNotOwned) {
			t.Errorf("Expected ErrNotOwned, got %v", err)
		}
		if _, err := applySell(held, 11, decimal.NewFromInt(1)); !errors.Is(err, apperrors.ErrInsufficientQuantity) {
			t.Errorf("Expected ErrInsufficientQuantity, got %v", err)
		}
		if _, err := applySell(held, -1, decimal.NewFromInt(1)); !errors.Is(err, apperrors.ErrInvalidQuantity) {
			t.Errorf("Expected ErrInvalidQuantity, got %v", err)
		}
	})
}

func TestTradeMathProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200
	properties := gopter.NewProperties(parameters)

	properties.Property("buy never overdraws cash", prop.ForAll(
		func(cashCents, qty, priceCents int64) bool {
			p := position{Cash: cents(cashCents)}
			next, err := applyBuy(p, qty, cents(priceCents))
			if err != nil {
				return errors.Is(err, apperrors.ErrInsufficientFunds) && p.Cash.LessThan(cents(priceCents).Mul(decimal.NewFromInt(qty)))
			}
			return !next.Cash.IsNegative()
		},
		gen.Int64Range(0, 10_000_000),
		gen.Int64Range(1, 1_000),
		gen.Int64Range(1, 1_000_000),
	))

	properties.Property("buy then sell at the same price restores cash", prop.ForAll(
		func(qty, priceCents int64) bool {
			price := cents(priceCents)
			start := position{Cash: price.Mul(decimal.NewFromInt(qty))}
			bought, err := applyBuy(start, qty, price)
			if err != nil {
				return false
			}
			sold, err := applySell(bought, qty, price)
			if err != nil {
				return false
			}
			return sold.Cash.Equal(start.Cash) && sold.Realized.IsZero() && sold.Quantity == 0
		},
		gen.Int64Range(1, 10_000),
		gen.Int64Range(1, 1_000_000),
	))

	properties.Property("sell credits proceeds and realizes price minus average", prop.ForAll(
		func(held, sell, avgCents, priceCents int64) bool {
			if sell > held {
				sell = held
			}
			p := position{Quantity: held, Average: cents(avgCents)}
			next, err := applySell(p, sell, cents(priceCents))
			if err != nil {
				return false
			}
			q := decimal.NewFromInt(sell)
			wantRealized := cents(priceCents).Sub(cents(avgCents)).Mul(q)
			return next.Cash.Equal(cents(priceCents).Mul(q)) &&
				next.Realized.Equal(wantRealized) &&
				next.Quantity == held-sell &&
				next.Average.Equal(p.Average)
		},
		gen.Int64Range(1, 10_000),
		gen.Int64Range(1, 10_000),
		gen.Int64Range(1, 1_000_000),
		gen.Int64Range(1, 1_000_000),
	))

	properties.Property("average after buys is the quantity weighted mean price", prop.ForAll(
		func(n int, qtys, priceCents []int64) bool {
			p := position{Cash: decimal.NewFromInt(1_000_000_000)}
			cost, units := decimal.Zero, int64(0)
			for i := 0; i < n; i++ {
				next, err := applyBuy(p, qtys[i], cents(priceCents[i]))
				if err != nil {
					return false
				}
				p = next
				cost = cost.Add(cents(priceCents[i]).Mul(decimal.NewFromInt(qtys[i])))
				units += qtys[i]
			}
			want := cost.DivRound(decimal.NewFromInt(units), 8)
			// Each buy rounds the running average to 4dp, so error is bounded by n half-units.
			tolerance := decimal.New(5, -(RatioPrecision + 1)).Mul(decimal.NewFromInt(int64(n)))
			return p.Quantity == units && p.Average.Sub(want).Abs().LessThanOrEqual(tolerance)
		},
		gen.IntRange(1, 10),
		gen.SliceOfN(10, gen.Int64Range(1, 1_000)),
		gen.SliceOfN(10, gen.Int64Range(1, 1_000_000)),
	))

	properties.TestingRun(t)
}

func TestPercentage(t *testing.T) {
	tests := []struct {
		part, whole, want string
	}{
		{"200", "1000", "20"},
		{"1", "3", "33.33"},
		{"2", "3", "66.67"},
		{"5", "0", "0"},
		{"-50", "200", "-25"},
	}
	for _, tt := range tests {
		got := percentage(decimal.RequireFromString(tt.part), decimal.RequireFromString(tt.whole))
		if !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("percentage(%s, %s) = %s, want %s", tt.part, tt.whole, got, tt.want)
		}
	}
}
