package xlsxReader

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KotFed0t/schedule_fa/internal/calendar"
	"github.com/KotFed0t/schedule_fa/internal/model"
	"github.com/KotFed0t/schedule_fa/utils"
	"github.com/xuri/excelize/v2"
)

type XLSXReader struct{}

func New() *XLSXReader {
	return &XLSXReader{}
}

// Read returns one sheet of lots per ticker, in workbook order. The first row
// of every sheet is its header.
func (r *XLSXReader) Read(ctx context.Context, path string) (sheets []model.LotSheet, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XLSXReader.Read"

	slog.Info("Reading input workbook", slog.String("rqID", rqID), slog.String("op", op), slog.String("path", path))

	f, err := excelize.OpenFile(path)
	if err != nil {
		slog.Error("can't open workbook", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, err
	}
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("read sheet %q: %w", name, err)
		}

		styles := &dateStyles{f: f, sheet: name, known: make(map[int]bool)}
		sheets = append(sheets, parseSheet(strings.TrimSpace(name), rows, styles.isDate))
	}

	slog.Debug("Read completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("sheets", len(sheets)))

	return sheets, nil
}

// parseSheet turns raw rows into lots. isDate reports whether the cell at a
// 1-based column and row carries a date number format.
func parseSheet(ticker string, rows [][]string, isDate func(col, row int) bool) model.LotSheet {
	sheet := model.LotSheet{Ticker: ticker}
	if len(rows) == 0 {
		return sheet
	}

	header := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		header[i] = strings.TrimSpace(h)
	}

	for i, row := range rows[1:] {
		if isBlank(row) {
			continue
		}

		lot := model.Lot{Ticker: ticker, Row: i + 2, Cells: make([]model.Cell, 0, len(header))}
		for j, name := range header {
			if name == "" {
				continue
			}
			value := ""
			if j < len(row) {
				value = strings.TrimSpace(row[j])
			}
			if value != "" && (name == model.AcquisitionDateColumn || isDate(j+1, lot.Row)) {
				value = serialToDate(value)
			}
			lot.Cells = append(lot.Cells, model.Cell{Name: name, Value: value})
		}
		sheet.Lots = append(sheet.Lots, lot)
	}

	return sheet
}

// serialToDate turns an Excel date serial into YYYY-MM-DD. Text and serials
// Excel cannot represent come back untouched.
func serialToDate(value string) string {
	serial, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return value
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return value
	}
	return t.Format(calendar.DateFormat)
}

// dateStyles remembers, per style index, whether a sheet's cells are date formatted.
type dateStyles struct {
	f     *excelize.File
	sheet string
	known map[int]bool
}

func (d *dateStyles) isDate(col, row int) bool {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return false
	}
	idx, err := d.f.GetCellStyle(d.sheet, cell)
	if err != nil || idx == 0 {
		return false
	}
	if date, ok := d.known[idx]; ok {
		return date
	}

	date := false
	if style, err := d.f.GetStyle(idx); err == nil {
		date = isDateFormat(style)
	}
	d.known[idx] = date
	return date
}

// isDateFormat matches the built-in date and date-time formats and any custom
// code that shows a year or a day.
func isDateFormat(style *excelize.Style) bool {
	switch id := style.NumFmt; {
	case id >= 14 && id <= 17, id == 22, id >= 27 && id <= 31, id == 36, id >= 50 && id <= 54, id == 57, id == 58:
		return true
	}
	if style.CustomNumFmt == nil {
		return false
	}

	code := strings.ToLower(*style.CustomNumFmt)
	var b strings.Builder
	quoted, bracket, escaped := false, false, false
	for _, r := range code {
		switch {
		case escaped:
			escaped = false
		case r == '\\' && !quoted:
			escaped = true
		case r == '"':
			quoted = !quoted
		case quoted:
		case r == '[':
			bracket = true
		case r == ']':
			bracket = false
		case !bracket:
			b.WriteRune(r)
		}
	}

	return strings.ContainsAny(b.String(), "yd")
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
