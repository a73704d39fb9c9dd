package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/ndewijer/investment-tracker-backend/internal/yahoo"
)

// MockYahooClient is a mock implementation of yahoo.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockYahooClient struct {
	mu sync.Mutex
	// MockResponse is the response to return from query methods
	MockResponse yahoo.Response
	// MockError is the error to return from query methods
	MockError error
	// QueryCount tracks how many times a query method was called
	QueryCount int
}

// NewMockYahooClient creates a new mock Yahoo client with default test data.
// The default data includes 5 days of historical prices and a live price of 123.45.
func NewMockYahooClient() *MockYahooClient {
	return &MockYahooClient{
		MockResponse: CreateMockYahooResponse(5, 123.45),
	}
}

// QueryQuote mocks the live quote query with predefined test data.
func (m *MockYahooClient) QueryQuote(_ context.Context, _ string) (yahoo.Response, error) {
	return m.respond()
}

// QueryYahooFiveDaySymbol mocks the 5-day symbol query with predefined test data.
// It returns the configured MockResponse and MockError.
func (m *MockYahooClient) QueryYahooFiveDaySymbol(_ context.Context, _ string) (yahoo.Response, error) {
	return m.respond()
}

func (m *MockYahooClient) respond() (yahoo.Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.QueryCount++
	if m.MockError != nil {
		return yahoo.Response{}, m.MockError
	}
	return m.MockResponse, nil
}

// ParseChart delegates to the real ParseChart method since it's pure logic with no side effects.
func (m *MockYahooClient) ParseChart(yahooResult yahoo.Response) (yahoo.PriceChart, error) {
	client := yahoo.NewFinanceClient()
	return client.ParseChart(yahooResult)
}

// WithError configures the mock to return the specified error.
func (m *MockYahooClient) WithError(err error) *MockYahooClient {
	m.MockError = err
	return m
}

// WithResponse configures the mock to return the specified response.
func (m *MockYahooClient) WithResponse(resp yahoo.Response) *MockYahooClient {
	m.MockResponse = resp
	return m
}

// WithEmptyResponse configures the mock to return an empty response (no data).
func (m *MockYahooClient) WithEmptyResponse() *MockYahooClient {
	m.MockResponse = yahoo.Response{}
	m.MockResponse.Chart.Result = []yahoo.Result{}
	return m
}

// CreateMockYahooResponse creates a mock Yahoo Finance API response with test data.
// The response includes `days` number of days of price data ending yesterday,
// with regularMarketPrice set to livePrice.
func CreateMockYahooResponse(days int, livePrice float64) yahoo.Response {
	now := time.Now().UTC()
	yesterday := time.Date(now.Year(), now.Month(), now.Day()-1, 0, 0, 0, 0, time.UTC)

	timestamps := make([]int64, days)
	series := yahoo.QuoteSeries{
		Open:   make([]*float64, days),
		High:   make([]*float64, days),
		Low:    make([]*float64, days),
		Close:  make([]*float64, days),
		Volume: make([]*int64, days),
	}

	basePrice := 100.0
	for i := 0; i < days; i++ {
		date := yesterday.AddDate(0, 0, -days+i+1)
		timestamps[i] = date.Unix()

		dayPrice := basePrice + float64(i)*0.5
		open := dayPrice
		high := dayPrice + 1.0
		low := dayPrice - 0.5
		closePrice := dayPrice + 0.25
		volume := int64(1000000 + i*10000)

		series.Open[i] = &open
		series.High[i] = &high
		series.Low[i] = &low
		series.Close[i] = &closePrice
		series.Volume[i] = &volume
	}

	result := yahoo.Result{
		Meta: yahoo.Meta{
			Symbol:             "TEST",
			Currency:           "USD",
			ExchangeName:       "NMS",
			FullExchangeName:   "NASDAQ",
			LongName:           "Test Inc.",
			Shortname:          "TEST",
			RegularMarketPrice: livePrice,
		},
		Timestamp: timestamps,
	}
	result.Indicators.Quote = []yahoo.QuoteSeries{series}

	var resp yahoo.Response
	resp.Chart.Result = []yahoo.Result{result}
	return resp
}

// CreateMockYahooErrorResponse creates a mock Yahoo response with an error.
// Useful for testing error handling scenarios.
func CreateMockYahooErrorResponse(code, description string) yahoo.Response {
	var resp yahoo.Response
	resp.Chart.Result = []yahoo.Result{}
	resp.Chart.Error = &yahoo.Error{Code: code, Description: description}
	return resp
}
