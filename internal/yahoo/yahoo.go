package yahoo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"
)

// DefaultBaseURL is the Yahoo Finance query host.
const DefaultBaseURL = "https://query1.finance.yahoo.com"

// Client is the subset of FinanceClient used by the price providers.
type Client interface {
	QueryQuote(ctx context.Context, symbol string) (Response, error)
	QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (Response, error)
	ParseChart(yahooResult Response) (PriceChart, error)
}

// StatusError is returned when Yahoo answers with a non-200 status.
type StatusError struct {
	StatusCode int
	Symbol     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("yahoo returned status %d for %s", e.StatusCode, e.Symbol)
}

// FinanceClient provides methods for fetching financial data from Yahoo Finance API.
// Outbound requests share one token bucket so bursts of lookups cannot trip
// Yahoo's throttling.
type FinanceClient struct {
	httpClient *http.Client
	baseURL    string
	limiter    *rate.Limiter
}

// Option configures a FinanceClient.
type Option func(*FinanceClient)

// WithBaseURL points the client at another host, used by tests.
func WithBaseURL(baseURL string) Option {
	return func(c *FinanceClient) {
		c.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithRateLimit limits outbound requests to rps per second with the given burst.
func WithRateLimit(rps float64, burst int) Option {
	return func(c *FinanceClient) {
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *FinanceClient) {
		c.httpClient = httpClient
	}
}

// NewFinanceClient creates a new Yahoo Finance client.
// Without options it talks to DefaultBaseURL, allows 5 requests per second,
// and gives up on a request after 10 seconds.
func NewFinanceClient(opts ...Option) *FinanceClient {
	c := &FinanceClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    DefaultBaseURL,
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ParseChart converts a raw Yahoo Finance API response into a structured price chart.
// Points with a null close are dropped; the remaining fields default to zero when null.
//
// Returns an error if the response has no result, no timestamps, or no close prices.
func (c *FinanceClient) ParseChart(yahooResult Response) (PriceChart, error) {
	if len(yahooResult.Chart.Result) == 0 {
		return PriceChart{}, fmt.Errorf("no chart result returned")
	}
	result := yahooResult.Chart.Result[0]

	if len(result.Timestamp) == 0 {
		return PriceChart{}, fmt.Errorf("no price data returned")
	}
	if len(result.Indicators.Quote) == 0 || len(result.Indicators.Quote[0].Close) == 0 {
		return PriceChart{}, fmt.Errorf("no close prices returned")
	}

	quote := result.Indicators.Quote[0]
	if len(quote.Close) != len(result.Timestamp) {
		return PriceChart{}, fmt.Errorf("mismatched data lengths")
	}

	indicators := make([]Indicators, 0, len(result.Timestamp))
	for i, v := range result.Timestamp {
		if quote.Close[i] == nil {
			continue
		}
		indicators = append(indicators, Indicators{
			Date:       time.Unix(v, 0).UTC(),
			PriceClose: *quote.Close[i],
			PriceOpen:  floatAt(quote.Open, i),
			PriceHigh:  floatAt(quote.High, i),
			PriceLow:   floatAt(quote.Low, i),
			Volume:     intAt(quote.Volume, i),
		})
	}

	return PriceChart{
		Symbol:           result.Meta.Symbol,
		Currency:         result.Meta.Currency,
		ExchangeName:     result.Meta.ExchangeName,
		FullExchangeName: result.Meta.FullExchangeName,
		LongName:         result.Meta.LongName,
		Shortname:        result.Meta.Shortname,
		Indicators:       indicators,
	}, nil
}

// LatestClose returns the most recent day in the chart.
func (c PriceChart) LatestClose() (Indicators, bool) {
	if len(c.Indicators) == 0 {
		return Indicators{}, false
	}
	return c.Indicators[len(c.Indicators)-1], true
}

// QueryQuote fetches the current trading day chart, whose meta block carries
// regularMarketPrice.
func (c *FinanceClient) QueryQuote(ctx context.Context, symbol string) (Response, error) {
	return c.queryChart(ctx, symbol, "interval=1d&range=1d")
}

// QueryYahooFiveDaySymbol fetches the last 5 days of daily price data for a symbol.
// It is used to get the latest available closing price when the live quote is missing.
func (c *FinanceClient) QueryYahooFiveDaySymbol(ctx context.Context, symbol string) (Response, error) {
	return c.queryChart(ctx, symbol, "interval=1d&range=5d")
}

func (c *FinanceClient) queryChart(ctx context.Context, symbol, params string) (Response, error) {
	endpoint := fmt.Sprintf("%s/v8/finance/chart/%s?%s", c.baseURL, url.PathEscape(symbol), params)
	result, err := c.queryYahoo(ctx, symbol, endpoint)
	if err != nil {
		return Response{}, err
	}
	if len(result.Chart.Result) == 0 {
		return Response{}, fmt.Errorf("no results returned for symbol %s", symbol)
	}

	return result, nil
}

// queryYahoo executes a throttled GET against Yahoo Finance and decodes the chart.
//
// The method sets required headers:
//   - User-Agent: Mimics a browser to avoid API blocking
//   - Accept: Requests JSON response format
func (c *FinanceClient) queryYahoo(ctx context.Context, symbol, endpoint string) (Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return Response{}, fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Response{}, err
	}

	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Response{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)
		return Response{}, &StatusError{StatusCode: resp.StatusCode, Symbol: symbol}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Response{}, err
	}

	if response.Chart.Error != nil {
		return response, fmt.Errorf("yahoo error: %s: %s", response.Chart.Error.Code, response.Chart.Error.Description)
	}

	return response, nil
}

func floatAt(values []*float64, i int) float64 {
	if i < len(values) && values[i] != nil {
		return *values[i]
	}
	return 0
}

func intAt(values []*int64, i int) int64 {
	if i < len(values) && values[i] != nil {
		return *values[i]
	}
	return 0
}
