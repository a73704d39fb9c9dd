// Package pricing resolves current prices through an ordered chain of providers.
package pricing

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
)

// Provider produces a price for a symbol or fails with a *ProviderError.
type Provider interface {
	Name() string
	Price(ctx context.Context, symbol string) (decimal.Decimal, error)
}

// ProviderError is the typed failure returned by a provider.
type ProviderError struct {
	Provider string
	Symbol   string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %s: %v", e.Provider, e.Symbol, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

func fail(provider, symbol string, err error) *ProviderError {
	return &ProviderError{Provider: provider, Symbol: symbol, Err: err}
}
