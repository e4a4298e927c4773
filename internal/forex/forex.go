// Package forex resolves the home-currency value of one foreign unit on a
// given day from a rate cache that is filled once per run.
package forex

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/KotFed0t/schedule_fa/internal/calendar"
	"github.com/KotFed0t/schedule_fa/internal/model"
	"github.com/KotFed0t/schedule_fa/internal/service"
	"github.com/KotFed0t/schedule_fa/utils"
	"github.com/shopspring/decimal"
)

type RateProvider interface {
	GetExchangeRates(ctx context.Context, symbol string, from, to time.Time) ([]model.Rate, error)
}

type RateCache struct {
	provider RateProvider
	symbol   string
	rates    map[string]decimal.Decimal
}

func NewRateCache(provider RateProvider, symbol string) *RateCache {
	return &RateCache{
		provider: provider,
		symbol:   symbol,
		rates:    make(map[string]decimal.Decimal),
	}
}

// Prefetch loads every rate the provider has in [from, to).
func (c *RateCache) Prefetch(ctx context.Context, from, to time.Time) error {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "RateCache.Prefetch"

	slog.Debug("Prefetch start", slog.String("rqID", rqID), slog.String("op", op), slog.String("symbol", c.symbol),
		slog.String("from", calendar.Key(from)), slog.String("to", calendar.Key(to)))

	rates, err := c.provider.GetExchangeRates(ctx, c.symbol, from, to)
	if err != nil {
		slog.Error("got error from provider.GetExchangeRates", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return err
	}

	for _, r := range rates {
		c.Add(r.Date, r.Rate)
	}

	slog.Info("exchange rates prefetched", slog.String("rqID", rqID), slog.String("symbol", c.symbol), slog.Int("count", len(rates)))

	return nil
}

func (c *RateCache) Add(date time.Time, rate decimal.Decimal) {
	c.rates[calendar.Key(date)] = rate
}

func (c *RateCache) Len() int {
	return len(c.rates)
}

// RateAt returns the rate for date, or the closest earlier rate of the same
// calendar year. Lookback never reaches into the previous year.
func (c *RateCache) RateAt(date time.Time) (decimal.Decimal, error) {
	day := calendar.NormalizeDate(date)
	firstJan := time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)

	for d := day; !d.Before(firstJan); d = d.AddDate(0, 0, -1) {
		if rate, ok := c.rates[d.Format(calendar.DateFormat)]; ok {
			return rate, nil
		}
	}

	return decimal.Zero, fmt.Errorf("%w for %s", service.ErrRateNotFound, day.Format(calendar.DateFormat))
}
