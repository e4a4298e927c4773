package valuation

import (
	"fmt"

	"github.com/KotFed0t/schedule_fa/internal/calendar"
	"github.com/KotFed0t/schedule_fa/internal/model"
	"github.com/shopspring/decimal"
)

// AccrueDividends sums the dividends a lot earned inside w, in both
// currencies, and records each payment in the ticker's quarter bucket. It
// returns the home-currency total rounded for reporting.
func AccrueDividends(
	ticker string,
	dividends []model.Dividend,
	quantity decimal.Decimal,
	w HoldingWindow,
	rates RateResolver,
	agg *model.QuarterlyDividends,
) (decimal.Decimal, error) {
	totalHome := decimal.Zero

	for _, d := range dividends {
		if !w.Contains(d.Date) {
			continue
		}

		rate, err := rates.RateAt(d.Date)
		if err != nil {
			return decimal.Zero, fmt.Errorf("dividend of %s: %w", d.Date.Format(calendar.DateFormat), err)
		}

		foreign := d.Amount.Mul(quantity)
		home := foreign.Mul(rate)
		totalHome = totalHome.Add(home)

		agg.Add(ticker, calendar.QuarterOf(d.Date), foreign, home)
	}

	return totalHome.Round(reportPlaces), nil
}
