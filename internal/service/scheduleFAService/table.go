package scheduleFAService

import (
	"slices"

	"github.com/KotFed0t/schedule_fa/internal/model"
)

// BuildTable lays rows out with the reference columns first, in declared
// order, then every other column in first-seen order. Quantity never appears.
func BuildTable(rows []model.ScheduleFARow, referenceColumns []string) model.Table {
	records := make([]map[string]string, 0, len(rows))
	var seen []string
	present := make(map[string]bool)

	set := func(record map[string]string, name, value string) {
		record[name] = value
		if !present[name] {
			present[name] = true
			seen = append(seen, name)
		}
	}

	for _, row := range rows {
		record := make(map[string]string)
		for _, f := range row.Details.Fields {
			set(record, f.Name, f.Value)
		}
		for _, c := range row.Extra {
			set(record, c.Name, c.Value)
		}
		set(record, model.PeakValueColumn, row.PeakValue.StringFixed(2))
		set(record, model.ClosingBalanceColumn, row.ClosingBalance.StringFixed(2))
		set(record, model.GrossAmountPaidColumn, row.GrossAmountPaid.StringFixed(2))
		set(record, model.GrossProceedsColumn, row.GrossProceeds.String())
		records = append(records, record)
	}

	columns := make([]string, 0, len(seen))
	for _, c := range referenceColumns {
		if present[c] {
			columns = append(columns, c)
		}
	}
	for _, c := range seen {
		if !slices.Contains(columns, c) && c != model.QuantityColumn {
			columns = append(columns, c)
		}
	}

	table := model.Table{Columns: columns, Rows: make([][]string, 0, len(records))}
	for _, record := range records {
		line := make([]string, len(columns))
		for i, c := range columns {
			line[i] = record[c]
		}
		table.Rows = append(table.Rows, line)
	}

	return table
}
