package cache

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/KotFed0t/schedule_fa/internal/calendar"
	"github.com/KotFed0t/schedule_fa/internal/model"
	"github.com/KotFed0t/schedule_fa/utils"
)

type MarketApi interface {
	GetPriceHistory(ctx context.Context, ticker string, from, to time.Time) ([]model.PricePoint, error)
	GetSplits(ctx context.Context, ticker string) ([]model.Split, error)
	GetDividends(ctx context.Context, ticker string) ([]model.Dividend, error)
}

type historyKey struct {
	ticker string
	from   string
	to     string
}

// MemoryCache keeps market history for the duration of one run so every lot
// of a ticker reuses a single fetch. Entries are only ever added.
type MemoryCache struct {
	api       MarketApi
	prices    map[historyKey][]model.PricePoint
	splits    map[string][]model.Split
	dividends map[string][]model.Dividend
}

func NewMemoryCache(api MarketApi) *MemoryCache {
	return &MemoryCache{
		api:       api,
		prices:    make(map[historyKey][]model.PricePoint),
		splits:    make(map[string][]model.Split),
		dividends: make(map[string][]model.Dividend),
	}
}

func (c *MemoryCache) GetPriceHistory(ctx context.Context, ticker string, from, to time.Time) ([]model.PricePoint, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	key := historyKey{ticker: strings.ToUpper(ticker), from: calendar.Key(from), to: calendar.Key(to)}

	if prices, ok := c.prices[key]; ok {
		slog.Debug("GetPriceHistory cache hit", slog.String("rqID", rqID), slog.String("ticker", key.ticker))
		return prices, nil
	}

	prices, err := c.api.GetPriceHistory(ctx, ticker, from, to)
	if err != nil {
		slog.Error("failed on api.GetPriceHistory", slog.String("rqID", rqID), slog.String("ticker", key.ticker), slog.String("err", err.Error()))
		return nil, err
	}

	c.prices[key] = prices
	return prices, nil
}

func (c *MemoryCache) GetSplits(ctx context.Context, ticker string) ([]model.Split, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	key := strings.ToUpper(ticker)

	if splits, ok := c.splits[key]; ok {
		return splits, nil
	}

	splits, err := c.api.GetSplits(ctx, ticker)
	if err != nil {
		slog.Error("failed on api.GetSplits", slog.String("rqID", rqID), slog.String("ticker", key), slog.String("err", err.Error()))
		return nil, err
	}

	c.splits[key] = splits
	return splits, nil
}

func (c *MemoryCache) GetDividends(ctx context.Context, ticker string) ([]model.Dividend, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	key := strings.ToUpper(ticker)

	if dividends, ok := c.dividends[key]; ok {
		return dividends, nil
	}

	dividends, err := c.api.GetDividends(ctx, ticker)
	if err != nil {
		slog.Error("failed on api.GetDividends", slog.String("rqID", rqID), slog.String("ticker", key), slog.String("err", err.Error()))
		return nil, err
	}

	c.dividends[key] = dividends
	return dividends, nil
}
