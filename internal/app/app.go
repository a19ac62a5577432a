// Package app wires configuration, storage, clients, and services into
// the analysis workflow used by cmd/stockfin.
package app

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lishuzheng01/stockfin/internal/clients/eastmoney"
	"github.com/lishuzheng01/stockfin/internal/clients/yahoo"
	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/interfaces"
	"github.com/lishuzheng01/stockfin/internal/services/cashflow"
	"github.com/lishuzheng01/stockfin/internal/services/dupont"
	"github.com/lishuzheng01/stockfin/internal/services/loader"
	"github.com/lishuzheng01/stockfin/internal/services/profitability"
	"github.com/lishuzheng01/stockfin/internal/services/report"
	"github.com/lishuzheng01/stockfin/internal/services/risk"
	"github.com/lishuzheng01/stockfin/internal/services/valuation"
	"github.com/lishuzheng01/stockfin/internal/storage/analysisfs"
)

// App holds all initialized services, clients, and storage. It is the
// shared core behind cmd/stockfin.
type App struct {
	Config  *common.Config
	Logger  *common.Logger
	Storage interfaces.Store

	Loader        interfaces.LoaderService
	Risk          interfaces.RiskService
	DuPont        interfaces.DuPontService
	Profitability interfaces.ProfitabilityService
	Valuation     interfaces.ValuationService
	CashFlow      interfaces.CashFlowService
	Report        interfaces.ReportService
}

// getBinaryDir returns the directory containing the executable.
func getBinaryDir() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Dir(exe)
}

// NewApp initializes storage, clients, and services. configPath may be
// empty, in which case STOCKFIN_CONFIG, then a stockfin.toml beside the
// binary, then built-in defaults are used.
func NewApp(configPath string, quiet bool) (*App, error) {
	binDir := getBinaryDir()

	if configPath == "" {
		configPath = os.Getenv("STOCKFIN_CONFIG")
	}
	if configPath == "" {
		candidate := filepath.Join(binDir, "stockfin.toml")
		if _, err := os.Stat(candidate); err == nil {
			configPath = candidate
		}
	}

	var (
		config *common.Config
		err    error
	)
	if configPath != "" {
		config, err = common.LoadConfig(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	} else {
		config = common.NewDefaultConfig()
	}

	// Resolve relative storage paths against the binary directory so
	// the tool is self-contained wherever it is installed.
	if config.Storage.CachePath != "" && !filepath.IsAbs(config.Storage.CachePath) {
		config.Storage.CachePath = filepath.Join(binDir, config.Storage.CachePath)
	}
	if config.Storage.ReportPath != "" && !filepath.IsAbs(config.Storage.ReportPath) {
		config.Storage.ReportPath = filepath.Join(binDir, config.Storage.ReportPath)
	}
	if config.Logging.FilePath != "" && !filepath.IsAbs(config.Logging.FilePath) {
		config.Logging.FilePath = filepath.Join(binDir, config.Logging.FilePath)
	}

	var logger *common.Logger
	if quiet {
		logger = common.NewSilentLogger()
	} else {
		logger = common.NewLoggerFromConfig(config.Logging)
	}

	store, err := analysisfs.NewStore(logger, config.Storage.CachePath, config.Storage.ReportPath)
	if err != nil {
		return nil, fmt.Errorf("initialize storage: %w", err)
	}

	emClient := eastmoney.NewClient(
		eastmoney.WithBaseURL(config.Clients.EastMoney.BaseURL),
		eastmoney.WithRateLimit(config.Clients.EastMoney.RateLimit),
		eastmoney.WithTimeout(config.Clients.EastMoney.GetTimeout()),
		eastmoney.WithLogger(logger),
	)
	yhClient := yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
		yahoo.WithLogger(logger),
	)

	window := config.Analysis.WindowPeriods
	perYear := config.Analysis.PeriodsPerYear

	a := &App{
		Config:        config,
		Logger:        logger,
		Storage:       store,
		Loader:        loader.NewService(emClient, emClient, yhClient, store, logger),
		Risk:          risk.NewService(logger),
		DuPont:        dupont.NewService(logger, window),
		Profitability: profitability.NewService(logger, window, perYear),
		Valuation:     valuation.NewService(logger, window, perYear),
		CashFlow:      cashflow.NewService(logger, window, perYear),
	}
	a.Report = report.NewService(store, logger)

	logger.Debug().
		Str("cache", config.Storage.CachePath).
		Str("reports", config.Storage.ReportPath).
		Msg("Application initialized")

	return a, nil
}

// Close releases storage resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
