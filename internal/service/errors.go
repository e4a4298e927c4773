package service

import "errors"

var (
	ErrInvalidLot          = errors.New("invalid lot")
	ErrUnknownTicker       = errors.New("missing details for ticker")
	ErrEmptyHistory        = errors.New("no price data found")
	ErrEmptyHoldingWindow  = errors.New("no trading data in holding period")
	ErrRateNotFound        = errors.New("exchange rate not found")
	ErrEmptyReferenceTable = errors.New("reference table is empty")
)
