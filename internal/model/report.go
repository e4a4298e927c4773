package model

import (
	"github.com/KotFed0t/schedule_fa/internal/calendar"
	"github.com/shopspring/decimal"
)

const (
	PeakValueColumn       = "Peak value of investment during the Period"
	ClosingBalanceColumn  = "Closing balance"
	GrossAmountPaidColumn = "Total gross amount paid/credited with respect to the holding during the period"
	GrossProceedsColumn   = "Total gross proceeds from sale or redemption of investment during the period"
)

// ScheduleFARow is the computed disclosure line of one lot.
type ScheduleFARow struct {
	Details         TickerDetails
	Extra           []Cell
	PeakValue       decimal.Decimal
	ClosingBalance  decimal.Decimal
	GrossAmountPaid decimal.Decimal
	GrossProceeds   decimal.Decimal
}

// Table is the export-ready form of the report.
type Table struct {
	Columns []string
	Rows    [][]string
}

type DividendAmount struct {
	Foreign decimal.Decimal
	Home    decimal.Decimal
}

// QuarterlyDividends accumulates dividend income per ticker and calendar
// quarter. Tickers keep the order of their first contribution.
type QuarterlyDividends struct {
	tickers []string
	buckets map[string]map[calendar.Quarter]DividendAmount
}

func NewQuarterlyDividends() *QuarterlyDividends {
	return &QuarterlyDividends{buckets: make(map[string]map[calendar.Quarter]DividendAmount)}
}

func (q *QuarterlyDividends) Add(ticker string, quarter calendar.Quarter, foreign, home decimal.Decimal) {
	byQuarter, ok := q.buckets[ticker]
	if !ok {
		byQuarter = make(map[calendar.Quarter]DividendAmount, len(calendar.Quarters))
		q.buckets[ticker] = byQuarter
		q.tickers = append(q.tickers, ticker)
	}
	amount := byQuarter[quarter]
	byQuarter[quarter] = DividendAmount{
		Foreign: amount.Foreign.Add(foreign),
		Home:    amount.Home.Add(home),
	}
}

func (q *QuarterlyDividends) Tickers() []string {
	return append([]string(nil), q.tickers...)
}

// Get returns the bucket for ticker and quarter; zero amounts when absent.
func (q *QuarterlyDividends) Get(ticker string, quarter calendar.Quarter) (DividendAmount, bool) {
	amount, ok := q.buckets[ticker][quarter]
	return amount, ok
}

type DividendSummaryRow struct {
	Ticker   string
	Quarters [4]string
	Total    string
}
