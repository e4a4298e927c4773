package main

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/KotFed0t/schedule_fa/config"
	"github.com/KotFed0t/schedule_fa/data/cache"
	"github.com/KotFed0t/schedule_fa/internal/externalApi/cloudStorageApi/googleDriveApi"
	"github.com/KotFed0t/schedule_fa/internal/externalApi/yahooApi"
	"github.com/KotFed0t/schedule_fa/internal/forex"
	"github.com/KotFed0t/schedule_fa/internal/lotReader/xlsxReader"
	"github.com/KotFed0t/schedule_fa/internal/reference"
	"github.com/KotFed0t/schedule_fa/internal/reportGenerator"
	"github.com/KotFed0t/schedule_fa/internal/reportGenerator/csvGenerator"
	"github.com/KotFed0t/schedule_fa/internal/reportGenerator/xslsxGenerator"
	"github.com/KotFed0t/schedule_fa/internal/service/scheduleFAService"
	"github.com/KotFed0t/schedule_fa/internal/valuation"
	"github.com/KotFed0t/schedule_fa/utils"
)

func main() {
	cfg := config.MustLoad()

	setupLogger(cfg)

	slog.Debug("config", slog.Any("cfg", cfg))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ctx = utils.CreateCtxWithRqID(ctx)

	if err := run(ctx, cfg); err != nil {
		slog.Error("run failed", slog.String("rqID", utils.GetRequestIDFromCtx(ctx)), slog.String("err", err.Error()))
		cancel()
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	year := cfg.ReportYear(time.Now())
	rqID := utils.GetRequestIDFromCtx(ctx)

	slog.Info("Run started", slog.String("rqID", rqID), slog.Int("year", year))

	refs, err := reference.Load(cfg.Report.ReferenceFile)
	if err != nil {
		return err
	}

	sheets, err := xlsxReader.New().Read(ctx, cfg.Report.InputExcel)
	if err != nil {
		return err
	}

	yahooApiClient := yahooApi.New(cfg)
	marketCache := cache.NewMemoryCache(yahooApiClient)
	rates := forex.NewRateCache(yahooApiClient, cfg.API.YahooApi.FxSymbol)

	scheduleFASrv := scheduleFAService.New(refs, marketCache, rates)

	table, dividends, err := scheduleFASrv.Run(ctx, sheets, year)
	if err != nil {
		return err
	}

	summary, _, err := xslsxGenerator.New().Generate(ctx, valuation.BuildDividendSummary(dividends))
	if err != nil {
		return err
	}

	csvContent, _, err := csvGenerator.New().Generate(ctx, table)
	if err != nil {
		return err
	}

	summaryPath := filepath.Join(cfg.Report.SummaryDir, xslsxGenerator.FileName(year))
	err = reportGenerator.WriteAll(ctx,
		reportGenerator.File{Path: cfg.Report.OutputCSV, Content: csvContent},
		reportGenerator.File{Path: summaryPath, Content: summary},
	)
	if err != nil {
		return err
	}

	if cfg.GoogleDrive.CredentialsFile == "" {
		return nil
	}

	return publish(ctx, cfg, cfg.Report.OutputCSV, summaryPath)
}

func publish(ctx context.Context, cfg *config.Config, paths ...string) error {
	rqID := utils.GetRequestIDFromCtx(ctx)

	googleCloudStorage, err := googleDriveApi.New(ctx, cfg)
	if err != nil {
		return err
	}

	for _, path := range paths {
		content, err := os.ReadFile(path)
		if err != nil {
			return err
		}

		link, err := googleCloudStorage.UploadFile(ctx, bytes.NewReader(content), filepath.Base(path))
		if err != nil {
			return err
		}
		slog.Info("report published", slog.String("rqID", rqID), slog.String("path", path), slog.String("link", link))
	}

	return nil
}

func setupLogger(cfg *config.Config) {
	var logLevel slog.Level

	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "info":
		logLevel = slog.LevelInfo
	case "warning":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	log := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(log)
}
