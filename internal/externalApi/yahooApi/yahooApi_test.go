package yahooApi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/KotFed0t/schedule_fa/config"
	"github.com/KotFed0t/schedule_fa/internal/externalApi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// New York: 2023-03-15 09:30 and 16:00, 2023-03-16 with a null close, 2023-03-17.
const pricesBody = `{"chart":{"result":[{
	"timestamp":[1678887000,1678910400,1678973400,1679059800],
	"indicators":{"quote":[{"close":[250.1,251.25,null,249.5]}]}
}],"error":null}}`

const eventsBody = `{"chart":{"result":[{
	"timestamp":[],
	"events":{
		"dividends":{
			"1694611800":{"amount":0.68,"date":1694611800},
			"1678887000":{"amount":0.68,"date":1678887000}
		},
		"splits":{
			"1658151000":{"date":1658151000,"numerator":20,"denominator":1,"splitRatio":"20:1"},
			"1088602200":{"date":1088602200,"numerator":3,"denominator":2,"splitRatio":"3:2"}
		}
	},
	"indicators":{"quote":[{}]}
}],"error":null}}`

func newTestApi(t *testing.T, handler http.HandlerFunc) *YahooApi {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := &config.Config{}
	cfg.API.Timeout = 5 * time.Second
	cfg.API.YahooApi.Url = srv.URL
	return New(cfg)
}

func TestGetPriceHistory(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/MSFT", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		assert.Equal(t, "1672876800", r.URL.Query().Get("period1"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(pricesBody))
	})

	from := time.Date(2023, time.January, 5, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)

	prices, err := api.GetPriceHistory(context.Background(), "MSFT", from, to)
	require.NoError(t, err)
	require.Len(t, prices, 2)

	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), prices[0].Date)
	assert.Equal(t, "251.25", prices[0].Close.String())
	assert.Equal(t, time.Date(2023, time.March, 17, 0, 0, 0, 0, time.UTC), prices[1].Date)
	assert.Equal(t, "249.5", prices[1].Close.String())
}

func TestGetExchangeRates(t *testing.T) {
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/INR=X", r.URL.Path)
		_, _ = w.Write([]byte(pricesBody))
	})

	rates, err := api.GetExchangeRates(context.Background(), "INR=X", time.Unix(0, 0).UTC(), time.Now())
	require.NoError(t, err)
	require.Len(t, rates, 2)
	assert.Equal(t, "251.25", rates[0].Rate.String())
}

func TestGetSplitsAndDividends(t *testing.T) {
	requests := 0
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Equal(t, "div,splits", r.URL.Query().Get("events"))
		assert.Equal(t, "0", r.URL.Query().Get("period1"))
		_, _ = w.Write([]byte(eventsBody))
	})
	ctx := context.Background()

	splits, err := api.GetSplits(ctx, "NVDA")
	require.NoError(t, err)
	require.Len(t, splits, 2)
	assert.Equal(t, time.Date(2004, time.June, 30, 0, 0, 0, 0, time.UTC), splits[0].Date)
	assert.Equal(t, "1.5", splits[0].Ratio.String())
	assert.Equal(t, time.Date(2022, time.July, 18, 0, 0, 0, 0, time.UTC), splits[1].Date)
	assert.Equal(t, "20", splits[1].Ratio.String())

	dividends, err := api.GetDividends(ctx, "NVDA")
	require.NoError(t, err)
	require.Len(t, dividends, 2)
	assert.Equal(t, time.Date(2023, time.March, 15, 0, 0, 0, 0, time.UTC), dividends[0].Date)
	assert.Equal(t, "0.68", dividends[0].Amount.String())
	assert.Equal(t, time.Date(2023, time.September, 13, 0, 0, 0, 0, time.UTC), dividends[1].Date)

	_, err = api.GetSplits(ctx, "nvda")
	require.NoError(t, err)
	assert.Equal(t, 1, requests)
}

func TestCorporateActionsFailureIsRetried(t *testing.T) {
	requests := 0
	api := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		_, _ = w.Write([]byte(eventsBody))
	})
	ctx := context.Background()

	_, err := api.GetDividends(ctx, "NVDA")
	require.Error(t, err)

	dividends, err := api.GetDividends(ctx, "NVDA")
	require.NoError(t, err)
	assert.Len(t, dividends, 2)
	assert.Equal(t, 2, requests)
}

func TestChartErrors(t *testing.T) {
	notFound := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	_, err := notFound.GetSplits(context.Background(), "NOPE")
	assert.True(t, errors.Is(err, externalApi.ErrNotFound))

	apiErr := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Bad Request","description":"Data doesn't exist"}}}`))
	})
	_, err = apiErr.GetPriceHistory(context.Background(), "MSFT", time.Now(), time.Now())
	assert.ErrorContains(t, err, "Data doesn't exist")

	empty := newTestApi(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"chart":{"result":[],"error":null}}`))
	})
	prices, err := empty.GetPriceHistory(context.Background(), "MSFT", time.Now(), time.Now())
	require.NoError(t, err)
	assert.Empty(t, prices)
}
