package yahoo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const quoteBody = `{"chart":{"result":[{"meta":{"currency":"USD","symbol":"AAPL","regularMarketPrice":187.454,"chartPreviousClose":185.1},
"timestamp":[1760400000],"indicators":{"quote":[{"open":[186.0],"close":[187.4],"volume":[1200],"high":[188.0],"low":[185.5]}]}}],"error":null}}`

const fiveDayBody = `{"chart":{"result":[{"meta":{"symbol":"AAPL"},
"timestamp":[1760054400,1760140800,1760227200],
"indicators":{"quote":[{"open":[180.0,null,182.0],"close":[181.0,182.5,null],"volume":[100,null,300],"high":[null,null,null],"low":[179.0,180.0,181.0]}]}}],"error":null}}`

func newTestServer(t *testing.T, handler http.HandlerFunc) *FinanceClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFinanceClient(WithBaseURL(srv.URL), WithRateLimit(1000, 100))
}

func TestFinanceClient_QueryQuote(t *testing.T) {
	t.Run("decodes meta price and sends browser headers", func(t *testing.T) {
		var gotPath, gotQuery, gotUA string
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			gotPath, gotQuery, gotUA = r.URL.Path, r.URL.RawQuery, r.Header.Get("User-Agent")
			w.Write([]byte(quoteBody)) //nolint:errcheck
		})

		resp, err := client.QueryQuote(context.Background(), "AAPL")
		require.NoError(t, err)

		assert.Equal(t, "/v8/finance/chart/AAPL", gotPath)
		assert.Equal(t, "interval=1d&range=1d", gotQuery)
		assert.True(t, strings.HasPrefix(gotUA, "Mozilla/5.0"))
		assert.InDelta(t, 187.454, resp.Chart.Result[0].Meta.RegularMarketPrice, 1e-9)
	})

	t.Run("returns StatusError on non-200", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusTooManyRequests)
		})

		_, err := client.QueryQuote(context.Background(), "AAPL")

		var statusErr *StatusError
		require.True(t, errors.As(err, &statusErr))
		assert.Equal(t, http.StatusTooManyRequests, statusErr.StatusCode)
	})

	t.Run("surfaces yahoo error object", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
			w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`)) //nolint:errcheck
		})

		_, err := client.QueryQuote(context.Background(), "NOPE")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "No data found")
	})

	t.Run("honours context deadline", func(t *testing.T) {
		client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := client.QueryQuote(ctx, "AAPL")
		require.Error(t, err)
	})
}

func TestFinanceClient_ParseChart(t *testing.T) {
	client := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(fiveDayBody)) //nolint:errcheck
	})

	resp, err := client.QueryYahooFiveDaySymbol(context.Background(), "AAPL")
	require.NoError(t, err)

	chart, err := client.ParseChart(resp)
	require.NoError(t, err)

	t.Run("skips days without a close", func(t *testing.T) {
		assert.Len(t, chart.Indicators, 2)
	})

	t.Run("zero fills other null fields", func(t *testing.T) {
		assert.Equal(t, 0.0, chart.Indicators[1].PriceOpen)
		assert.Equal(t, int64(0), chart.Indicators[1].Volume)
		assert.Equal(t, 0.0, chart.Indicators[0].PriceHigh)
	})

	t.Run("latest close is the last non-null day", func(t *testing.T) {
		latest, ok := chart.LatestClose()
		require.True(t, ok)
		assert.Equal(t, 182.5, latest.PriceClose)
	})

	t.Run("rejects empty result", func(t *testing.T) {
		_, err := client.ParseChart(Response{})
		assert.Error(t, err)
	})
}
