package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PricePoint struct {
	Date  time.Time
	Close decimal.Decimal
}

// Split is a stock split effective on Date; Ratio 2 means 2-for-1.
type Split struct {
	Date  time.Time
	Ratio decimal.Decimal
}

// Dividend is a per-share cash payment on Date.
type Dividend struct {
	Date   time.Time
	Amount decimal.Decimal
}

// Rate is the home-currency value of one foreign unit on Date.
type Rate struct {
	Date time.Time
	Rate decimal.Decimal
}
