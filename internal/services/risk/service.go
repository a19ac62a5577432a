// Package risk implements the financial-risk category: Altman Z-Score,
// Beneish M-Score, and Benford leading-digit checks.
package risk

import (
	"context"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/interfaces"
	"github.com/lishuzheng01/stockfin/internal/models"
)

// Service implements interfaces.RiskService.
type Service struct {
	logger *common.Logger
}

// NewService creates a risk service.
func NewService(logger *common.Logger) *Service {
	return &Service{logger: logger}
}

// Analyze runs all three risk models over the loaded statements. Models
// with insufficient data produce empty sections rather than errors.
func (s *Service) Analyze(_ context.Context, code string, income, balance, cashflow *models.StatementTable) (*models.RiskAnalysis, error) {
	analysis := &models.RiskAnalysis{Code: code}

	// Altman consumes newest-first rows.
	incDesc := sortedCopy(income, false)
	balDesc := sortedCopy(balance, false)
	analysis.Altman = computeAltman(code, incDesc, balDesc)

	// Beneish compares each period against the immediately older one, so
	// it consumes oldest-first rows.
	incAsc := sortedCopy(income, true)
	balAsc := sortedCopy(balance, true)
	cfAsc := sortedCopy(cashflow, true)
	analysis.Beneish = computeBeneish(code, incAsc, balAsc, cfAsc)

	for _, t := range []*models.StatementTable{income, balance, cashflow} {
		if t.Empty() {
			continue
		}
		analysis.Benford = append(analysis.Benford, computeBenford(t))
	}

	s.logger.Debug().
		Str("code", code).
		Int("altman_periods", len(analysis.Altman.Periods)).
		Int("beneish_periods", len(analysis.Beneish.Periods)).
		Int("benford_checks", len(analysis.Benford)).
		Msg("Risk analysis complete")

	return analysis, nil
}

// sortedCopy returns a row-order copy so callers keep their ordering.
func sortedCopy(t *models.StatementTable, ascending bool) *models.StatementTable {
	if t == nil {
		return &models.StatementTable{}
	}
	out := *t
	out.Rows = make([]models.StatementRow, len(t.Rows))
	copy(out.Rows, t.Rows)
	if ascending {
		out.SortAscending()
	} else {
		out.SortDescending()
	}
	return &out
}

var _ interfaces.RiskService = (*Service)(nil)
