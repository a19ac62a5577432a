// Package report renders and persists per-category and consolidated
// analysis reports.
package report

import (
	"context"
	"fmt"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/interfaces"
	"github.com/lishuzheng01/stockfin/internal/models"
)

// Service implements interfaces.ReportService.
type Service struct {
	store  interfaces.ReportStore
	logger *common.Logger
}

// NewService creates a report service.
func NewService(store interfaces.ReportStore, logger *common.Logger) *Service {
	return &Service{store: store, logger: logger}
}

type categoryFormatter func(*models.AnalysisState) string

var categoryFormatters = map[string]categoryFormatter{
	models.CategoryRisk:          formatRiskReport,
	models.CategoryDuPont:        formatDuPontReport,
	models.CategoryProfitability: formatProfitabilityReport,
	models.CategoryValuation:     formatValuationReport,
	models.CategoryCashFlow:      formatCashFlowReport,
}

var categoryOrder = []string{
	models.CategoryRisk,
	models.CategoryDuPont,
	models.CategoryProfitability,
	models.CategoryValuation,
	models.CategoryCashFlow,
}

// WriteReports writes one text report per category, the consolidated
// report, and the price chart when price data exists. It returns the
// written paths.
func (s *Service) WriteReports(ctx context.Context, state *models.AnalysisState) ([]string, error) {
	var paths []string

	for _, category := range categoryOrder {
		content := categoryFormatters[category](state)
		filename := fmt.Sprintf("%s_%s_report.txt", state.Code, category)
		path, err := s.store.WriteReport(ctx, state.Code, filename, []byte(content))
		if err != nil {
			return paths, fmt.Errorf("write %s report: %w", category, err)
		}
		paths = append(paths, path)
	}

	full := formatFullReport(state)
	path, err := s.store.WriteReport(ctx, state.Code, state.Code+"_full_report.txt", []byte(full))
	if err != nil {
		return paths, fmt.Errorf("write full report: %w", err)
	}
	paths = append(paths, path)

	if png, err := renderPriceChart(state.Code, state.Prices); err == nil {
		chartPath, werr := s.store.WriteReport(ctx, state.Code, state.Code+"_price.png", png)
		if werr != nil {
			s.logger.Warn().Err(werr).Str("code", state.Code).Msg("Price chart write failed")
		} else {
			paths = append(paths, chartPath)
		}
	} else {
		s.logger.Debug().Err(err).Str("code", state.Code).Msg("Price chart skipped")
	}

	s.logger.Info().
		Str("code", state.Code).
		Str("dir", s.store.ReportDir(state.Code)).
		Int("files", len(paths)).
		Msg("Reports written")

	return paths, nil
}

var _ interfaces.ReportService = (*Service)(nil)
