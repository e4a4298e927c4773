package xslsxGenerator

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KotFed0t/schedule_fa/internal/model"
	"github.com/KotFed0t/schedule_fa/utils"
	"github.com/xuri/excelize/v2"
)

const SheetName = "Dividends Summary"

var header = []string{
	"Ticker",
	"Q1 (USD/INR)",
	"Q2 (USD/INR)",
	"Q3 (USD/INR)",
	"Q4 (USD/INR)",
	"Total (USD/INR)",
}

type XSLSXGenerator struct{}

func New() *XSLSXGenerator {
	return &XSLSXGenerator{}
}

// FileName is the summary workbook name for the financial year starting in year.
func FileName(year int) string {
	return fmt.Sprintf("Dividends-Summary-FY-%d-%d.xlsx", year, year+1)
}

func (g *XSLSXGenerator) Generate(ctx context.Context, rows []model.DividendSummaryRow) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "XSLSXGenerator.Generate"

	slog.Debug("Generate start", slog.String("rqID", rqID), slog.String("op", op), slog.Int("rows", len(rows)))

	f := excelize.NewFile()
	defer func() {
		if err := f.Close(); err != nil {
			slog.Error("got error while closing file", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		}
	}()

	if err := g.fillSheet(f, rows); err != nil {
		slog.Error("got error while filling sheet", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	if err := f.DeleteSheet("Sheet1"); err != nil {
		slog.Error("got error while deleting Sheet1", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		slog.Error("got error while Saving file to bytes buffer", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op))

	return buf.Bytes(), ".xlsx", nil
}

func (g *XSLSXGenerator) fillSheet(f *excelize.File, rows []model.DividendSummaryRow) error {
	idx, err := f.NewSheet(SheetName)
	if err != nil {
		return err
	}
	f.SetActiveSheet(idx)

	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return err
	}

	styleID, err := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
		Font: &excelize.Font{
			Bold: true,
			Size: 11,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Pattern: 1,
			Color:   []string{"#cfe2f3"},
		},
	})
	if err != nil {
		return err
	}

	lastHeader, err := excelize.CoordinatesToCellName(len(header), 1)
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(SheetName, "A1", lastHeader, styleID); err != nil {
		return fmt.Errorf("apply header style: %w", err)
	}

	for i, row := range rows {
		values := []string{row.Ticker, row.Quarters[0], row.Quarters[1], row.Quarters[2], row.Quarters[3], row.Total}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return err
		}
	}

	return f.SetColWidth(SheetName, "B", "F", 24)
}
