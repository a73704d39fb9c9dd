package pricing

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/ndewijer/investment-tracker-backend/internal/apperrors"
	"github.com/ndewijer/investment-tracker-backend/internal/model"
	"github.com/ndewijer/investment-tracker-backend/internal/yahoo"
)

// Chain tries its providers in order and returns the first price produced.
// Concurrent lookups for the same symbol share one pass through the chain.
type Chain struct {
	providers []Provider
	timeout   time.Duration
	log       zerolog.Logger
	group     singleflight.Group
}

// NewChain creates a chain. Each provider call is bounded by timeout.
func NewChain(timeout time.Duration, log zerolog.Logger, providers ...Provider) *Chain {
	return &Chain{
		providers: providers,
		timeout:   timeout,
		log:       log,
	}
}

// Price returns the current price for symbol.
func (c *Chain) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	q, err := c.Quote(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, err
	}
	return q.Price, nil
}

// Quote returns the current price for symbol along with the provider that produced it.
// When every provider fails the error wraps apperrors.ErrPriceUnavailable and
// joins each provider's failure.
func (c *Chain) Quote(ctx context.Context, symbol string) (model.Quote, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if symbol == "" {
		return model.Quote{}, apperrors.ErrInvalidSymbol
	}

	// The shared lookup outlives any one caller; a cancelled caller stops waiting
	// while the others still receive the result.
	ch := c.group.DoChan(symbol, func() (any, error) {
		return c.resolve(context.WithoutCancel(ctx), symbol)
	})
	select {
	case <-ctx.Done():
		return model.Quote{}, fmt.Errorf("%w for %s: %w", apperrors.ErrPriceUnavailable, symbol, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return model.Quote{}, res.Err
		}
		return res.Val.(model.Quote), nil
	}
}

func (c *Chain) resolve(ctx context.Context, symbol string) (model.Quote, error) {
	var errs []error
	for _, p := range c.providers {
		price, err := c.call(ctx, p, symbol)
		if err == nil {
			if len(errs) > 0 {
				c.log.Debug().Str("symbol", symbol).Str("provider", p.Name()).Msg("price served by fallback provider")
			}
			return model.Quote{Symbol: symbol, Price: price, Source: p.Name()}, nil
		}
		c.log.Warn().Err(err).Str("symbol", symbol).Str("provider", p.Name()).Msg("price provider failed")
		errs = append(errs, err)
	}

	if len(errs) == 0 {
		return model.Quote{}, fmt.Errorf("%w for %s: no providers configured", apperrors.ErrPriceUnavailable, symbol)
	}
	return model.Quote{}, fmt.Errorf("%w for %s: %w", apperrors.ErrPriceUnavailable, symbol, errors.Join(errs...))
}

func (c *Chain) call(ctx context.Context, p Provider, symbol string) (decimal.Decimal, error) {
	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	price, err := p.Price(callCtx, symbol)
	if err != nil {
		var perr *ProviderError
		if !errors.As(err, &perr) {
			err = fail(p.Name(), symbol, err)
		}
		return decimal.Decimal{}, err
	}
	if !price.IsPositive() {
		return decimal.Decimal{}, fail(p.Name(), symbol, errNoPrice)
	}
	return price, nil
}

// NewYahooChain builds the standard chain: live quote, then 5-day close, then the
// static table. When cache is non-nil the two Yahoo providers read through it.
func NewYahooChain(client yahoo.Client, cache Cache, cacheTTL, timeout time.Duration, log zerolog.Logger) *Chain {
	var quote, closePrice Provider = NewYahooQuoteProvider(client), NewYahooCloseProvider(client)
	if cache != nil {
		quote = NewCachedProvider(quote, cache, cacheTTL, log)
		closePrice = NewCachedProvider(closePrice, cache, cacheTTL, log)
	}
	return NewChain(timeout, log, quote, closePrice, NewStaticProvider(FallbackPrices, nil))
}
