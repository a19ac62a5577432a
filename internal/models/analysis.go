package models

import "time"

// Analysis category names, used for report file naming and error tagging.
const (
	CategoryRisk          = "risk"
	CategoryDuPont        = "dupont"
	CategoryProfitability = "profitability"
	CategoryValuation     = "valuation"
	CategoryCashFlow      = "cashflow"
)

// FinancialCategories are the categories the workflow fans out to workers.
// Risk runs serially before them.
var FinancialCategories = []string{
	CategoryDuPont,
	CategoryProfitability,
	CategoryValuation,
	CategoryCashFlow,
}

// MetricResult is one computed metric value with its inputs and verdict.
type MetricResult struct {
	Metric         string             `json:"metric"`
	ReportDate     string             `json:"report_date,omitempty"`
	Value          float64            `json:"value"`
	Components     map[string]float64 `json:"components,omitempty"`
	Classification string             `json:"classification,omitempty"`
	Skipped        bool               `json:"skipped,omitempty"`
	SkipReason     string             `json:"skip_reason,omitempty"`
}

// AnalysisError records a non-fatal failure during a run. Category errors
// accumulate; they never abort the run.
type AnalysisError struct {
	Category string `json:"category"`
	Stage    string `json:"stage"`
	Message  string `json:"message"`
}

// AnalysisState is the shared per-run result set. The workflow guards all
// writes with its own mutex; readers see it only after Run returns.
type AnalysisState struct {
	Code        string    `json:"code"`
	RunID       string    `json:"run_id"`
	Start       string    `json:"start"`
	End         string    `json:"end"`
	GeneratedAt time.Time `json:"generated_at"`

	Statements map[StatementKind]*StatementTable `json:"-"`
	Prices     *PriceSeries                      `json:"-"`

	Risk          *RiskAnalysis         `json:"risk,omitempty"`
	DuPont        *DuPontResult         `json:"dupont,omitempty"`
	Profitability *ProfitabilityResult  `json:"profitability,omitempty"`
	Valuation     *ValuationResult      `json:"valuation,omitempty"`
	CashFlow      *CashFlowResult       `json:"cashflow,omitempty"`

	Errors []AnalysisError `json:"errors,omitempty"`
}

// Statement returns the loaded table for a kind, possibly empty, never nil.
func (s *AnalysisState) Statement(kind StatementKind) *StatementTable {
	if t, ok := s.Statements[kind]; ok && t != nil {
		return t
	}
	return &StatementTable{Code: s.Code, Kind: kind}
}
