package yahooModel

type ChartResponse struct {
	Chart Chart `json:"chart"`
}

type Chart struct {
	Result []ChartResult `json:"result"`
	Error  *ChartError   `json:"error"`
}

type ChartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

type ChartResult struct {
	Timestamp  []int64    `json:"timestamp"`
	Events     Events     `json:"events"`
	Indicators Indicators `json:"indicators"`
}

type Events struct {
	Dividends map[string]DividendEvent `json:"dividends"`
	Splits    map[string]SplitEvent    `json:"splits"`
}

type DividendEvent struct {
	Amount float64 `json:"amount"`
	Date   int64   `json:"date"`
}

type SplitEvent struct {
	Date        int64   `json:"date"`
	Numerator   float64 `json:"numerator"`
	Denominator float64 `json:"denominator"`
	SplitRatio  string  `json:"splitRatio"`
}

type Indicators struct {
	Quote []Quote `json:"quote"`
}

// Quote carries nulls for days the exchange reported no close.
type Quote struct {
	Close []*float64 `json:"close"`
}
