package model

// TickerDetails are the disclosure attributes of a security, in the order the
// reference table declares them.
type TickerDetails struct {
	Ticker string
	Fields []Cell
}

func (d TickerDetails) Has(name string) bool {
	for _, f := range d.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}
