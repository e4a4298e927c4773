package yahooApi

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/KotFed0t/schedule_fa/config"
	"github.com/KotFed0t/schedule_fa/internal/calendar"
	"github.com/KotFed0t/schedule_fa/internal/externalApi"
	"github.com/KotFed0t/schedule_fa/internal/model"
	"github.com/KotFed0t/schedule_fa/internal/model/yahooModel"
	"github.com/KotFed0t/schedule_fa/utils"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"
)

const (
	chartPath = "/v8/finance/chart/{symbol}"
	userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36"
)

type YahooApi struct {
	client  *resty.Client
	limiter *rate.Limiter

	mu     sync.Mutex
	events map[string]corporateActions
}

// corporateActions is the split and dividend history of one ticker, oldest first.
type corporateActions struct {
	splits    []model.Split
	dividends []model.Dividend
}

func New(cfg *config.Config) *YahooApi {
	client := resty.New().
		SetDebug(cfg.API.Debug).
		SetTimeout(cfg.API.Timeout).
		SetRetryCount(cfg.API.RetryCount).
		SetBaseURL(cfg.API.YahooApi.Url).
		SetHeader("User-Agent", userAgent)

	limit := rate.Inf
	if cfg.API.RateLimit > 0 {
		limit = rate.Limit(cfg.API.RateLimit)
	}

	return &YahooApi{
		client:  client,
		limiter: rate.NewLimiter(limit, 1),
		events:  make(map[string]corporateActions),
	}
}

// GetPriceHistory returns daily closes in [from, to), one per day.
func (a *YahooApi) GetPriceHistory(ctx context.Context, ticker string, from, to time.Time) ([]model.PricePoint, error) {
	result, err := a.chart(ctx, ticker, rangeParams(from, to))
	if err != nil {
		return nil, err
	}

	closes := dailyCloses(result)
	prices := make([]model.PricePoint, 0, len(closes))
	for _, c := range closes {
		prices = append(prices, model.PricePoint{Date: c.date, Close: c.value})
	}

	return prices, nil
}

// GetExchangeRates returns daily closes of an FX symbol such as "INR=X".
func (a *YahooApi) GetExchangeRates(ctx context.Context, symbol string, from, to time.Time) ([]model.Rate, error) {
	result, err := a.chart(ctx, symbol, rangeParams(from, to))
	if err != nil {
		return nil, err
	}

	closes := dailyCloses(result)
	rates := make([]model.Rate, 0, len(closes))
	for _, c := range closes {
		rates = append(rates, model.Rate{Date: c.date, Rate: c.value})
	}

	return rates, nil
}

// GetSplits returns the full split history, oldest first.
func (a *YahooApi) GetSplits(ctx context.Context, ticker string) ([]model.Split, error) {
	actions, err := a.corporateActions(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return actions.splits, nil
}

// GetDividends returns the full per-share dividend history, oldest first.
func (a *YahooApi) GetDividends(ctx context.Context, ticker string) ([]model.Dividend, error) {
	actions, err := a.corporateActions(ctx, ticker)
	if err != nil {
		return nil, err
	}
	return actions.dividends, nil
}

// corporateActions downloads the event history of a ticker once and serves
// both splits and dividends from it. Failed fetches are not remembered.
func (a *YahooApi) corporateActions(ctx context.Context, ticker string) (corporateActions, error) {
	key := strings.ToUpper(ticker)

	a.mu.Lock()
	defer a.mu.Unlock()

	if actions, ok := a.events[key]; ok {
		return actions, nil
	}

	result, err := a.chart(ctx, ticker, eventParams())
	if err != nil {
		return corporateActions{}, err
	}

	actions := corporateActions{
		splits:    make([]model.Split, 0, len(result.Events.Splits)),
		dividends: make([]model.Dividend, 0, len(result.Events.Dividends)),
	}
	for _, s := range result.Events.Splits {
		if s.Denominator == 0 {
			return corporateActions{}, fmt.Errorf("invalid split %q for %s", s.SplitRatio, ticker)
		}
		actions.splits = append(actions.splits, model.Split{
			Date:  calendar.FromUnix(s.Date),
			Ratio: decimal.NewFromFloat(s.Numerator).Div(decimal.NewFromFloat(s.Denominator)),
		})
	}
	for _, d := range result.Events.Dividends {
		actions.dividends = append(actions.dividends, model.Dividend{
			Date:   calendar.FromUnix(d.Date),
			Amount: decimal.NewFromFloat(d.Amount),
		})
	}
	sort.Slice(actions.splits, func(i, j int) bool { return actions.splits[i].Date.Before(actions.splits[j].Date) })
	sort.Slice(actions.dividends, func(i, j int) bool { return actions.dividends[i].Date.Before(actions.dividends[j].Date) })

	a.events[key] = actions
	return actions, nil
}

func (a *YahooApi) chart(ctx context.Context, symbol string, params map[string]string) (yahooModel.ChartResult, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "YahooApi.chart"

	slog.Debug("start YahooApi.chart request", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol), slog.Any("params", params))

	if err := a.limiter.Wait(ctx); err != nil {
		return yahooModel.ChartResult{}, err
	}

	resp, err := a.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetPathParam("symbol", symbol).
		SetQueryParams(params).
		Get(chartPath)
	if err != nil {
		slog.Error("error while dialing YahooApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return yahooModel.ChartResult{}, err
	}

	if resp.StatusCode() == http.StatusNotFound {
		slog.Warn("symbol not found in YahooApi", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))
		return yahooModel.ChartResult{}, fmt.Errorf("%s: %w", symbol, externalApi.ErrNotFound)
	}

	if resp.IsError() {
		slog.Error("unexpected status from YahooApi", slog.String("rqID", rqID), slog.String("op", op), slog.Int("status", resp.StatusCode()))
		return yahooModel.ChartResult{}, fmt.Errorf("yahoo chart %s: status %d", symbol, resp.StatusCode())
	}

	chartResp := yahooModel.ChartResponse{}
	err = json.Unmarshal(resp.Body(), &chartResp)
	if err != nil {
		slog.Error("can't unmarshall response into yahooModel.ChartResponse", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return yahooModel.ChartResult{}, err
	}

	if chartResp.Chart.Error != nil {
		return yahooModel.ChartResult{}, fmt.Errorf("yahoo chart %s: %s: %s", symbol, chartResp.Chart.Error.Code, chartResp.Chart.Error.Description)
	}

	slog.Debug("YahooApi.chart request complete", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", symbol))

	if len(chartResp.Chart.Result) == 0 {
		return yahooModel.ChartResult{}, nil
	}

	return chartResp.Chart.Result[0], nil
}

func rangeParams(from, to time.Time) map[string]string {
	return map[string]string{
		"interval": "1d",
		"period1":  strconv.FormatInt(from.Unix(), 10),
		"period2":  strconv.FormatInt(to.Unix(), 10),
	}
}

func eventParams() map[string]string {
	return map[string]string{
		"interval": "1d",
		"period1":  "0",
		"period2":  strconv.FormatInt(time.Now().Unix(), 10),
		"events":   "div,splits",
	}
}

type dailyClose struct {
	date  time.Time
	value decimal.Decimal
}

// dailyCloses pairs timestamps with closes, skipping nulls. When two
// timestamps land on the same day the later one wins.
func dailyCloses(result yahooModel.ChartResult) []dailyClose {
	if len(result.Indicators.Quote) == 0 {
		return nil
	}
	closes := result.Indicators.Quote[0].Close

	res := make([]dailyClose, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == nil {
			continue
		}
		c := dailyClose{date: calendar.FromUnix(ts), value: decimal.NewFromFloat(*closes[i])}
		if n := len(res); n > 0 && res[n-1].date.Equal(c.date) {
			res[n-1] = c
			continue
		}
		res = append(res, c)
	}

	return res
}
