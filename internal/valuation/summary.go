package valuation

import (
	"fmt"

	"github.com/KotFed0t/schedule_fa/internal/calendar"
	"github.com/KotFed0t/schedule_fa/internal/model"
	"github.com/shopspring/decimal"
)

// BuildDividendSummary renders one row per ticker with "<foreign> / <home>"
// per quarter and a total over all four quarters.
func BuildDividendSummary(agg *model.QuarterlyDividends) []model.DividendSummaryRow {
	tickers := agg.Tickers()
	rows := make([]model.DividendSummaryRow, 0, len(tickers))

	for _, ticker := range tickers {
		row := model.DividendSummaryRow{Ticker: ticker}
		totalForeign, totalHome := decimal.Zero, decimal.Zero

		for i, q := range calendar.Quarters {
			amount, _ := agg.Get(ticker, q)
			row.Quarters[i] = formatPair(amount.Foreign, amount.Home)
			totalForeign = totalForeign.Add(amount.Foreign)
			totalHome = totalHome.Add(amount.Home)
		}
		row.Total = formatPair(totalForeign, totalHome)

		rows = append(rows, row)
	}

	return rows
}

func formatPair(foreign, home decimal.Decimal) string {
	return fmt.Sprintf("%s / %s", foreign.StringFixed(reportPlaces), home.StringFixed(reportPlaces))
}
