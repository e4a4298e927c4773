package scheduleFAService

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/KotFed0t/schedule_fa/internal/calendar"
	"github.com/KotFed0t/schedule_fa/internal/model"
	"github.com/KotFed0t/schedule_fa/internal/service"
	"github.com/KotFed0t/schedule_fa/internal/valuation"
	"github.com/KotFed0t/schedule_fa/utils"
	"github.com/shopspring/decimal"
)

// prefetchLeadDays widens every history fetch so the first days of a lot
// still have earlier observations to fall back on.
const prefetchLeadDays = 5

type MarketData interface {
	GetPriceHistory(ctx context.Context, ticker string, from, to time.Time) ([]model.PricePoint, error)
	GetSplits(ctx context.Context, ticker string) ([]model.Split, error)
	GetDividends(ctx context.Context, ticker string) ([]model.Dividend, error)
}

type Rates interface {
	Prefetch(ctx context.Context, from, to time.Time) error
	RateAt(date time.Time) (decimal.Decimal, error)
}

type Reference interface {
	Lookup(ticker string) (model.TickerDetails, bool)
	Columns() []string
	Len() int
}

type ScheduleFAService struct {
	reference Reference
	market    MarketData
	rates     Rates
}

func New(reference Reference, market MarketData, rates Rates) *ScheduleFAService {
	return &ScheduleFAService{
		reference: reference,
		market:    market,
		rates:     rates,
	}
}

// Run values every lot for the calendar year and returns the export table with
// the quarterly dividend aggregate. Any invalid lot or missing data aborts the
// whole run.
func (s *ScheduleFAService) Run(ctx context.Context, sheets []model.LotSheet, year int) (model.Table, *model.QuarterlyDividends, error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "ScheduleFAService.Run"

	slog.Info("run started", slog.String("rqID", rqID), slog.String("op", op), slog.Int("year", year))

	if s.reference.Len() == 0 {
		return model.Table{}, nil, service.ErrEmptyReferenceTable
	}

	for _, sheet := range sheets {
		if _, ok := s.reference.Lookup(sheet.Ticker); !ok {
			return model.Table{}, nil, fmt.Errorf("%w '%s'", service.ErrUnknownTicker, strings.TrimSpace(sheet.Ticker))
		}
	}

	yearStart, yearEnd := calendar.YearBounds(year)
	// providers treat the upper bound as exclusive
	fetchEnd := yearEnd.AddDate(0, 0, 1)

	rateStart := earliestAcquisition(allLots(sheets), yearStart).AddDate(0, 0, -prefetchLeadDays)
	if err := s.rates.Prefetch(ctx, rateStart, fetchEnd); err != nil {
		slog.Error("got error from rates.Prefetch", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return model.Table{}, nil, err
	}

	dividends := model.NewQuarterlyDividends()
	rows := make([]model.ScheduleFARow, 0)

	for _, sheet := range sheets {
		ticker := strings.TrimSpace(sheet.Ticker)
		slog.Info("Processing ticker", slog.String("rqID", rqID), slog.String("ticker", ticker))

		details, _ := s.reference.Lookup(ticker)

		historyStart := earliestAcquisition(sheet.Lots, yearStart).AddDate(0, 0, -prefetchLeadDays)
		prices, err := s.market.GetPriceHistory(ctx, ticker, historyStart, fetchEnd)
		if err != nil {
			slog.Error("got error from market.GetPriceHistory", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.String("err", err.Error()))
			return model.Table{}, nil, err
		}

		for _, lot := range sheet.Lots {
			row, err := s.processLot(ctx, ticker, details, lot, prices, yearStart, yearEnd, dividends)
			if err != nil {
				slog.Error("lot failed", slog.String("rqID", rqID), slog.String("op", op), slog.String("ticker", ticker), slog.Int("row", lot.Row), slog.String("err", err.Error()))
				return model.Table{}, nil, err
			}
			rows = append(rows, row)
		}

		slog.Info("Ticker processed", slog.String("rqID", rqID), slog.String("ticker", ticker), slog.Int("rows", len(sheet.Lots)))
	}

	table := BuildTable(rows, s.reference.Columns())
	slog.Info("Total rows processed", slog.String("rqID", rqID), slog.Int("rows", len(table.Rows)))

	return table, dividends, nil
}

func (s *ScheduleFAService) processLot(
	ctx context.Context,
	ticker string,
	details model.TickerDetails,
	lot model.Lot,
	prices []model.PricePoint,
	yearStart, yearEnd time.Time,
	dividends *model.QuarterlyDividends,
) (model.ScheduleFARow, error) {
	quantity, acquired, err := parseLot(ticker, lot)
	if err != nil {
		return model.ScheduleFARow{}, err
	}

	if len(prices) == 0 {
		return model.ScheduleFARow{}, fmt.Errorf("%w for %s in %d", service.ErrEmptyHistory, ticker, yearStart.Year())
	}

	window := valuation.NewHoldingWindow(acquired, yearStart, yearEnd)
	holding := valuation.SlicePrices(prices, window)
	if len(holding) == 0 {
		return model.ScheduleFARow{}, fmt.Errorf("%w for %s", service.ErrEmptyHoldingWindow, ticker)
	}

	splits, err := s.market.GetSplits(ctx, ticker)
	if err != nil {
		return model.ScheduleFARow{}, err
	}
	effQuantity := valuation.EffectiveQuantity(quantity, splits, acquired)

	peak, err := valuation.PeakValue(holding, effQuantity, s.rates)
	if err != nil {
		return model.ScheduleFARow{}, fmt.Errorf("peak value for %s: %w", ticker, err)
	}

	closing, err := valuation.ClosingValue(holding, effQuantity, s.rates)
	if err != nil {
		return model.ScheduleFARow{}, fmt.Errorf("closing value for %s: %w", ticker, err)
	}

	history, err := s.market.GetDividends(ctx, ticker)
	if err != nil {
		return model.ScheduleFARow{}, err
	}
	paid, err := valuation.AccrueDividends(ticker, history, effQuantity, window, s.rates, dividends)
	if err != nil {
		return model.ScheduleFARow{}, fmt.Errorf("dividends for %s: %w", ticker, err)
	}

	extra := make([]model.Cell, 0, len(lot.Cells))
	for _, c := range lot.Cells {
		if c.Name != model.QuantityColumn && !details.Has(c.Name) {
			extra = append(extra, c)
		}
	}

	return model.ScheduleFARow{
		Details:         details,
		Extra:           extra,
		PeakValue:       peak,
		ClosingBalance:  closing,
		GrossAmountPaid: paid,
		GrossProceeds:   decimal.Zero,
	}, nil
}

func parseLot(ticker string, lot model.Lot) (decimal.Decimal, time.Time, error) {
	rawQuantity, _ := lot.Get(model.QuantityColumn)
	quantity, err := decimal.NewFromString(strings.TrimSpace(rawQuantity))
	if err != nil || !quantity.IsPositive() {
		return decimal.Zero, time.Time{}, fmt.Errorf("%w: invalid quantity %q for %s at row %d", service.ErrInvalidLot, rawQuantity, ticker, lot.Row)
	}

	rawDate, _ := lot.Get(model.AcquisitionDateColumn)
	acquired, err := calendar.ParseDate(rawDate)
	if err != nil {
		return decimal.Zero, time.Time{}, fmt.Errorf("%w: invalid acquisition date %q for %s at row %d", service.ErrInvalidLot, rawDate, ticker, lot.Row)
	}

	return quantity, acquired, nil
}

func allLots(sheets []model.LotSheet) []model.Lot {
	var lots []model.Lot
	for _, sheet := range sheets {
		lots = append(lots, sheet.Lots...)
	}
	return lots
}

// earliestAcquisition ignores dates that do not parse; those lots fail later
// with a proper error. fallback is used when no date parses.
func earliestAcquisition(lots []model.Lot, fallback time.Time) time.Time {
	var earliest time.Time
	found := false
	for _, lot := range lots {
		raw, _ := lot.Get(model.AcquisitionDateColumn)
		acquired, err := calendar.ParseDate(raw)
		if err != nil {
			continue
		}
		if !found || acquired.Before(earliest) {
			earliest, found = acquired, true
		}
	}
	if !found {
		return fallback
	}
	return earliest
}
