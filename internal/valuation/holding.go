// Package valuation derives the reported figures of a lot: split-adjusted
// quantity, peak and closing value over the holding window, and dividend income.
package valuation

import (
	"fmt"
	"time"

	"github.com/KotFed0t/schedule_fa/internal/calendar"
	"github.com/KotFed0t/schedule_fa/internal/model"
	"github.com/KotFed0t/schedule_fa/internal/service"
	"github.com/shopspring/decimal"
)

const reportPlaces = 2

type RateResolver interface {
	RateAt(date time.Time) (decimal.Decimal, error)
}

// HoldingWindow is the inclusive range of days a lot counts as held within the
// reporting year.
type HoldingWindow struct {
	Start time.Time
	End   time.Time
}

func NewHoldingWindow(acquired, yearStart, yearEnd time.Time) HoldingWindow {
	start := calendar.NormalizeDate(acquired)
	if yearStart = calendar.NormalizeDate(yearStart); start.Before(yearStart) {
		start = yearStart
	}
	return HoldingWindow{Start: start, End: calendar.NormalizeDate(yearEnd)}
}

func (w HoldingWindow) Contains(t time.Time) bool {
	t = calendar.NormalizeDate(t)
	return !t.Before(w.Start) && !t.After(w.End)
}

// SlicePrices keeps the observations that fall inside w, in input order.
func SlicePrices(prices []model.PricePoint, w HoldingWindow) []model.PricePoint {
	var res []model.PricePoint
	for _, p := range prices {
		if w.Contains(p.Date) {
			res = append(res, p)
		}
	}
	return res
}

// PeakValue is the highest close in the window times quantity, converted at the
// rate of that day. The first of equal highs is used.
func PeakValue(window []model.PricePoint, quantity decimal.Decimal, rates RateResolver) (decimal.Decimal, error) {
	if len(window) == 0 {
		return decimal.Zero, service.ErrEmptyHoldingWindow
	}

	peak := window[0]
	for _, p := range window[1:] {
		if p.Close.GreaterThan(peak.Close) {
			peak = p
		}
	}

	return convert(peak, quantity, rates)
}

// ClosingValue values the last observation of the window.
func ClosingValue(window []model.PricePoint, quantity decimal.Decimal, rates RateResolver) (decimal.Decimal, error) {
	if len(window) == 0 {
		return decimal.Zero, service.ErrEmptyHoldingWindow
	}
	return convert(window[len(window)-1], quantity, rates)
}

func convert(p model.PricePoint, quantity decimal.Decimal, rates RateResolver) (decimal.Decimal, error) {
	rate, err := rates.RateAt(p.Date)
	if err != nil {
		return decimal.Zero, fmt.Errorf("valuing %s: %w", p.Date.Format(calendar.DateFormat), err)
	}
	return p.Close.Mul(quantity).Mul(rate).Round(reportPlaces), nil
}
