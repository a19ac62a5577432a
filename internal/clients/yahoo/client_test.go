package yahoo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchDailyBars_DecodesChart(t *testing.T) {
	var gotPath, gotQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		w.Write([]byte(`{"chart": {"result": [{
			"timestamp": [1733097600, 1733184000],
			"indicators": {"quote": [{
				"open": [150.0, 151.5],
				"high": [152.0, 153.0],
				"low": [149.0, 150.5],
				"close": [151.0, 152.5],
				"volume": [1000000, 900000]
			}]}
		}]}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	series, err := client.FetchDailyBars(context.Background(), "600519.SS",
		time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 12, 3, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	assert.Equal(t, "/v8/finance/chart/600519.SS", gotPath)
	assert.Contains(t, gotQuery, "interval=1d")

	require.Len(t, series.Bars, 2)
	assert.Equal(t, "600519.SS", series.Code)
	assert.Equal(t, 151.0, series.Bars[0].Close)
	assert.Equal(t, 152.5, series.LastClose())
	assert.Equal(t, time.Date(2024, 12, 2, 0, 0, 0, 0, time.UTC), series.Bars[0].Date)
}

func TestFetchDailyBars_DropsNullBars(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": [{
			"timestamp": [1733097600, 1733184000, 1733270400],
			"indicators": {"quote": [{
				"open": [150.0, null, 152.0],
				"high": [152.0, null, 154.0],
				"low": [149.0, null, 151.0],
				"close": [151.0, null, 153.0],
				"volume": [1000000, null, 800000]
			}]}
		}]}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	series, err := client.FetchDailyBars(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)

	require.Len(t, series.Bars, 2)
	assert.Equal(t, 151.0, series.Bars[0].Close)
	assert.Equal(t, 153.0, series.Bars[1].Close)
}

func TestFetchDailyBars_ChartError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": null, "error": {"code": "Not Found", "description": "No data found, symbol may be delisted"}}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.FetchDailyBars(context.Background(), "BOGUS", time.Now().AddDate(0, -1, 0), time.Now())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Contains(t, apiErr.Message, "delisted")
}

func TestFetchDailyBars_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	_, err := client.FetchDailyBars(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
}

func TestFetchDailyBars_EmptyResult(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"chart": {"result": []}}`))
	}))
	defer server.Close()

	client := NewClient(WithBaseURL(server.URL))
	series, err := client.FetchDailyBars(context.Background(), "AAPL", time.Now().AddDate(0, -1, 0), time.Now())
	require.NoError(t, err)
	assert.True(t, series.Empty())
	assert.Equal(t, "AAPL", series.Code)
}
