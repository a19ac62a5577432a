package interfaces

import (
	"context"
	"time"

	"github.com/lishuzheng01/stockfin/internal/models"
)

// LoaderService loads normalized statements and price history, with
// in-memory memoization backed by the on-disk cache.
type LoaderService interface {
	// LoadStatement returns the translated statement for a code. A fetch
	// or parse failure yields an empty table and no error; downstream
	// metrics skip on Empty().
	LoadStatement(ctx context.Context, code string, kind models.StatementKind) (*models.StatementTable, error)

	// LoadStatements loads all three statements.
	LoadStatements(ctx context.Context, code string) (map[models.StatementKind]*models.StatementTable, error)

	// LoadPrices returns daily bars for [start, end], falling back across
	// providers. Failures yield an empty series.
	LoadPrices(ctx context.Context, code string, start, end time.Time) (*models.PriceSeries, error)
}

// RiskService computes the risk category: Altman Z-Score, Beneish
// M-Score, and Benford leading-digit checks.
type RiskService interface {
	Analyze(ctx context.Context, code string, income, balance, cashflow *models.StatementTable) (*models.RiskAnalysis, error)
}

// DuPontService computes three- and five-factor ROE decompositions.
type DuPontService interface {
	Analyze(ctx context.Context, code string, income, balance *models.StatementTable) (*models.DuPontResult, error)
}

// ProfitabilityService computes margins, returns, and growth rates.
type ProfitabilityService interface {
	Analyze(ctx context.Context, code string, income, balance *models.StatementTable) (*models.ProfitabilityResult, error)
}

// ValuationService computes price-based ratios from the latest close.
type ValuationService interface {
	Analyze(ctx context.Context, code string, income, balance *models.StatementTable, prices *models.PriceSeries) (*models.ValuationResult, error)
}

// CashFlowService computes cash-flow quality, FCF, adequacy, and the
// cash conversion cycle from pre-loaded tables.
type CashFlowService interface {
	Analyze(ctx context.Context, code string, income, balance, cashflow *models.StatementTable) (*models.CashFlowResult, error)
}

// ReportService renders and persists the per-category and consolidated
// text reports for a completed analysis run.
type ReportService interface {
	// WriteReports writes all report files and returns their paths.
	WriteReports(ctx context.Context, state *models.AnalysisState) ([]string, error)
}
