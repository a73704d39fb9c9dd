package pricing

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/ndewijer/investment-tracker-backend/internal/yahoo"
)

// Provider names reported in quotes and logs.
const (
	ProviderYahooQuote = "yahoo-quote"
	ProviderYahooClose = "yahoo-close"
	ProviderStatic     = "static"
)

var errNoPrice = errors.New("no positive price in response")

// YahooQuoteProvider reads meta.regularMarketPrice from the v8 chart endpoint.
type YahooQuoteProvider struct {
	client yahoo.Client
}

// NewYahooQuoteProvider creates the live quote provider.
func NewYahooQuoteProvider(client yahoo.Client) *YahooQuoteProvider {
	return &YahooQuoteProvider{client: client}
}

// Name implements Provider.
func (p *YahooQuoteProvider) Name() string { return ProviderYahooQuote }

// Price implements Provider. The price is rounded to 2 decimal places.
func (p *YahooQuoteProvider) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	resp, err := p.client.QueryQuote(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, fail(p.Name(), symbol, err)
	}

	if len(resp.Chart.Result) == 0 {
		return decimal.Decimal{}, fail(p.Name(), symbol, errNoPrice)
	}

	price := resp.Chart.Result[0].Meta.RegularMarketPrice
	if price <= 0 {
		return decimal.Decimal{}, fail(p.Name(), symbol, errNoPrice)
	}

	return decimal.NewFromFloat(price).Round(2), nil
}

// YahooCloseProvider uses the latest daily close of the 5-day chart.
// It covers symbols whose live quote is missing, e.g. outside trading hours.
type YahooCloseProvider struct {
	client yahoo.Client
}

// NewYahooCloseProvider creates the secondary provider.
func NewYahooCloseProvider(client yahoo.Client) *YahooCloseProvider {
	return &YahooCloseProvider{client: client}
}

// Name implements Provider.
func (p *YahooCloseProvider) Name() string { return ProviderYahooClose }

// Price implements Provider. The price is rounded to 2 decimal places.
func (p *YahooCloseProvider) Price(ctx context.Context, symbol string) (decimal.Decimal, error) {
	resp, err := p.client.QueryYahooFiveDaySymbol(ctx, symbol)
	if err != nil {
		return decimal.Decimal{}, fail(p.Name(), symbol, err)
	}

	chart, err := p.client.ParseChart(resp)
	if err != nil {
		return decimal.Decimal{}, fail(p.Name(), symbol, err)
	}

	latest, ok := chart.LatestClose()
	if !ok || latest.PriceClose <= 0 {
		return decimal.Decimal{}, fail(p.Name(), symbol, errNoPrice)
	}

	return decimal.NewFromFloat(latest.PriceClose).Round(2), nil
}
