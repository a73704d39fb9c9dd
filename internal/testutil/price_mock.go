package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
)

// MockPriceSource is a service.PriceSource returning fixed prices.
// Symbols without a configured price fail with apperrors.ErrPriceUnavailable.
// It is safe for concurrent use.
type MockPriceSource struct {
	mu     sync.Mutex
	prices map[string]decimal.Decimal
	errs   map[string]error
	calls  map[string]int
	source string
}

// NewMockPriceSource creates a mock with no prices configured.
func NewMockPriceSource() *MockPriceSource {
	return &MockPriceSource{
		prices: make(map[string]decimal.Decimal),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
		source: "mock",
	}
}

// WithPrice sets the price of symbol from a decimal string.
func (m *MockPriceSource) WithPrice(symbol, price string) *MockPriceSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prices[symbol] = decimal.RequireFromString(price)
	delete(m.errs, symbol)
	return m
}

// WithError makes lookups of symbol fail with err.
func (m *MockPriceSource) WithError(symbol string, err error) *MockPriceSource {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errs[symbol] = err
	return m
}

// Calls returns how many times symbol was looked up.
func (m *MockPriceSource) Calls(symbol string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls[symbol]
}

// Price implements service.PriceSource.
func (m *MockPriceSource) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	q, err := m.Quote(ctx, symbol)
	if err != nil {
		return decimal.Zero, err
	}
	return q.Price, nil
}

// Quote implements service.PriceSource.
func (m *MockPriceSource) Quote(_ context.Context, symbol string) (model.Quote, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[symbol]++
	if err, ok := m.errs[symbol]; ok {
		return model.Quote{}, err
	}
	price, ok := m.prices[symbol]
	if !ok {
		return model.Quote{}, fmt.Errorf("%w: no mock price for %s", apperrors.ErrPriceUnavailable, symbol)
	}
	return model.Quote{Symbol: symbol, Price: price, Source: m.source}, nil
}
