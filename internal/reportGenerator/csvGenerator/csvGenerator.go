package csvGenerator

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"

	"github.com/KotFed0t/schedule_fa/internal/model"
	"github.com/KotFed0t/schedule_fa/utils"
)

type CSVGenerator struct{}

func New() *CSVGenerator {
	return &CSVGenerator{}
}

func (g *CSVGenerator) Write(w io.Writer, table model.Table) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(table.Columns); err != nil {
		return err
	}
	if err := cw.WriteAll(table.Rows); err != nil {
		return err
	}
	return cw.Error()
}

func (g *CSVGenerator) Generate(ctx context.Context, table model.Table) (fileBytes []byte, fileExtension string, err error) {
	rqID := utils.GetRequestIDFromCtx(ctx)
	op := "CSVGenerator.Generate"

	var buf bytes.Buffer
	if err = g.Write(&buf, table); err != nil {
		slog.Error("can't write csv", slog.String("rqID", rqID), slog.String("op", op), slog.String("err", err.Error()))
		return nil, "", err
	}

	slog.Debug("Generate completed", slog.String("rqID", rqID), slog.String("op", op), slog.Int("rows", len(table.Rows)))

	return buf.Bytes(), ".csv", nil
}
