package app

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/models"
)

// WorkflowOptions control one analysis run.
type WorkflowOptions struct {
	Start  time.Time
	End    time.Time
	Serial bool
}

// Workflow runs the full analysis pipeline for one stock code: load
// data, run the risk category serially, fan the four financial
// categories out to a worker pool, then write reports. Category
// failures accumulate on the state and never abort the run.
type Workflow struct {
	app    *App
	logger *common.Logger

	mu sync.Mutex
}

// NewWorkflow creates a workflow bound to an initialized App.
func NewWorkflow(a *App) *Workflow {
	return &Workflow{app: a, logger: a.Logger}
}

// Run executes the pipeline and returns the completed state. The
// returned error is non-nil only when the run itself fails; category
// errors are reported via state.Errors and the full report.
func (w *Workflow) Run(ctx context.Context, code string, opts WorkflowOptions) (*models.AnalysisState, error) {
	if code == "" {
		return nil, fmt.Errorf("stock code is required")
	}
	if opts.End.IsZero() {
		opts.End = time.Now()
	}
	if opts.Start.IsZero() {
		opts.Start = opts.End.AddDate(0, 0, -w.app.Config.Analysis.PriceDays)
	}

	state := &models.AnalysisState{
		Code:        code,
		RunID:       uuid.New().String(),
		Start:       opts.Start.Format("20060102"),
		End:         opts.End.Format("20060102"),
		GeneratedAt: time.Now(),
	}

	w.logger.Info().
		Str("code", code).
		Str("run_id", state.RunID).
		Str("start", state.Start).
		Str("end", state.End).
		Bool("serial", opts.Serial).
		Msg("Starting analysis run")

	w.loadData(ctx, state, opts)

	w.runRisk(ctx, state)
	w.runFinancialCategories(ctx, state, opts.Serial)

	paths, err := w.app.Report.WriteReports(ctx, state)
	if err != nil {
		return state, fmt.Errorf("write reports: %w", err)
	}

	w.logger.Info().
		Str("code", code).
		Int("reports", len(paths)).
		Int("errors", len(state.Errors)).
		Msg("Analysis run complete")

	return state, nil
}

func (w *Workflow) loadData(ctx context.Context, state *models.AnalysisState, opts WorkflowOptions) {
	statements, err := w.app.Loader.LoadStatements(ctx, state.Code)
	if err != nil {
		w.recordError(state, "load", "statements", err)
		statements = map[models.StatementKind]*models.StatementTable{}
	}
	state.Statements = statements

	// The loader degrades provider failures to empty tables. A code that
	// resolves to no data at all still has to surface on the error list.
	if err == nil && allStatementsEmpty(state) {
		w.recordError(state, "load", "statements",
			fmt.Errorf("no statement data available for %s", state.Code))
	}

	prices, perr := w.app.Loader.LoadPrices(ctx, state.Code, opts.Start, opts.End)
	if perr != nil {
		w.recordError(state, "load", "prices", perr)
		prices = &models.PriceSeries{Code: state.Code}
	}
	state.Prices = prices

	if perr == nil && prices.Empty() {
		w.recordError(state, "load", "prices",
			fmt.Errorf("no price data available for %s", state.Code))
	}
}

func allStatementsEmpty(state *models.AnalysisState) bool {
	for _, kind := range models.StatementKinds {
		if !state.Statement(kind).Empty() {
			return false
		}
	}
	return true
}

// runRisk executes the risk category before the financial fan-out, in
// keeping with its role as a gate on the rest of the analysis.
func (w *Workflow) runRisk(ctx context.Context, state *models.AnalysisState) {
	w.runCategory(ctx, state, models.CategoryRisk)
}

func (w *Workflow) runFinancialCategories(ctx context.Context, state *models.AnalysisState, serial bool) {
	if serial {
		for _, category := range models.FinancialCategories {
			w.runCategory(ctx, state, category)
		}
		return
	}

	workers := w.app.Config.Analysis.Workers
	if workers > len(models.FinancialCategories) {
		workers = len(models.FinancialCategories)
	}

	tasks := make(chan string, len(models.FinancialCategories))
	for _, category := range models.FinancialCategories {
		tasks <- category
	}
	close(tasks)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for category := range tasks {
				w.runCategory(ctx, state, category)
			}
		}()
	}
	wg.Wait()
}

// runCategory executes one category with panic recovery, storing the
// result or error under the workflow mutex.
func (w *Workflow) runCategory(ctx context.Context, state *models.AnalysisState, category string) {
	defer func() {
		if r := recover(); r != nil {
			w.recordError(state, category, "panic", fmt.Errorf("%v", r))
		}
	}()

	income := state.Statement(models.StatementIncome)
	balance := state.Statement(models.StatementBalance)
	cashflowTable := state.Statement(models.StatementCashFlow)

	started := time.Now()
	var err error
	switch category {
	case models.CategoryRisk:
		var result *models.RiskAnalysis
		if result, err = w.app.Risk.Analyze(ctx, state.Code, income, balance, cashflowTable); err == nil {
			w.setResult(state, func() { state.Risk = result })
		}
	case models.CategoryDuPont:
		var result *models.DuPontResult
		if result, err = w.app.DuPont.Analyze(ctx, state.Code, income, balance); err == nil {
			w.setResult(state, func() { state.DuPont = result })
		}
	case models.CategoryProfitability:
		var result *models.ProfitabilityResult
		if result, err = w.app.Profitability.Analyze(ctx, state.Code, income, balance); err == nil {
			w.setResult(state, func() { state.Profitability = result })
		}
	case models.CategoryValuation:
		var result *models.ValuationResult
		if result, err = w.app.Valuation.Analyze(ctx, state.Code, income, balance, state.Prices); err == nil {
			w.setResult(state, func() { state.Valuation = result })
		}
	case models.CategoryCashFlow:
		var result *models.CashFlowResult
		if result, err = w.app.CashFlow.Analyze(ctx, state.Code, income, balance, cashflowTable); err == nil {
			w.setResult(state, func() { state.CashFlow = result })
		}
	default:
		err = fmt.Errorf("unknown category %q", category)
	}

	if err != nil {
		w.recordError(state, category, "analyze", err)
		return
	}

	w.logger.Debug().
		Str("code", state.Code).
		Str("category", category).
		Dur("elapsed", time.Since(started)).
		Msg("Category complete")
}

func (w *Workflow) setResult(state *models.AnalysisState, assign func()) {
	w.mu.Lock()
	defer w.mu.Unlock()
	assign()
}

func (w *Workflow) recordError(state *models.AnalysisState, category, stage string, err error) {
	w.logger.Warn().
		Str("code", state.Code).
		Str("category", category).
		Str("stage", stage).
		Err(err).
		Msg("Analysis step failed")

	w.mu.Lock()
	defer w.mu.Unlock()
	state.Errors = append(state.Errors, models.AnalysisError{
		Category: category,
		Stage:    stage,
		Message:  err.Error(),
	})
}
