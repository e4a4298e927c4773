package model

const (
	QuantityColumn        = "Quantity"
	AcquisitionDateColumn = "Date of acquiring the interest"
)

type Cell struct {
	Name  string
	Value string
}

// Lot is one input row: the acquisition of a holding, with every column of the
// sheet kept in header order.
type Lot struct {
	Ticker string
	Row    int
	Cells  []Cell
}

// Get returns the value of the named column.
func (l Lot) Get(name string) (string, bool) {
	for _, c := range l.Cells {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// LotSheet holds the lots of one ticker in input order.
type LotSheet struct {
	Ticker string
	Lots   []Lot
}
