package config

import (
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`
	Report      Report
	API         API
	GoogleDrive GoogleDrive
}

type Report struct {
	InputExcel    string `env:"INPUT_EXCEL" envDefault:"Schedule FA.xlsx"`
	OutputCSV     string `env:"OUTPUT_CSV" envDefault:"Schedule-FA.csv"`
	SummaryDir    string `env:"SUMMARY_DIR" envDefault:"."`
	Year          int    `env:"REPORT_YEAR" envDefault:"0"` // 0 means the current calendar year
	ReferenceFile string `env:"REFERENCE_FILE" envDefault:""`
}

type API struct {
	Debug      bool          `env:"API_DEBUG" envDefault:"false"`
	Timeout    time.Duration `env:"API_TIMEOUT" envDefault:"30s"`
	RetryCount int           `env:"API_RETRY_COUNT" envDefault:"3"`
	RateLimit  int           `env:"API_RATE_LIMIT" envDefault:"2"`
	YahooApi   YahooApi
}

type YahooApi struct {
	Url      string `env:"YAHOO_API_URL" envDefault:"https://query1.finance.yahoo.com"`
	FxSymbol string `env:"FX_SYMBOL" envDefault:"INR=X"`
}

type GoogleDrive struct {
	CredentialsFile string `env:"GOOGLE_DRIVE_CREDENTIALS_FILE" envDefault:""`
}

// ReportYear resolves the configured year, falling back to the current one.
func (c *Config) ReportYear(now time.Time) int {
	if c.Report.Year > 0 {
		return c.Report.Year
	}
	return now.Year()
}

func MustLoad() *Config {
	_ = godotenv.Load(".env")

	cfg := &Config{}

	opts := env.Options{RequiredIfNoDef: true}

	if err := env.ParseWithOptions(cfg, opts); err != nil {
		log.Fatalf("parse config error: %s", err)
	}

	return cfg
}
