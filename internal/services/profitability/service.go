// Package profitability implements margin, return, and ROIC analysis.
package profitability

import (
	"context"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/interfaces"
	"github.com/lishuzheng01/stockfin/internal/models"
)

const defaultTaxRate = 0.25

// Service implements interfaces.ProfitabilityService.
type Service struct {
	logger         *common.Logger
	windowPeriods  int
	periodsPerYear int
}

// NewService creates a profitability service.
func NewService(logger *common.Logger, windowPeriods, periodsPerYear int) *Service {
	if windowPeriods <= 0 {
		windowPeriods = 12
	}
	if periodsPerYear <= 0 {
		periodsPerYear = 4
	}
	return &Service{logger: logger, windowPeriods: windowPeriods, periodsPerYear: periodsPerYear}
}

// Analyze computes the five ratio series over the recent window, newest
// first. Zero denominators skip the period instead of producing NaN.
func (s *Service) Analyze(_ context.Context, code string, income, balance *models.StatementTable) (*models.ProfitabilityResult, error) {
	result := &models.ProfitabilityResult{Code: code}
	if income.Empty() {
		s.logger.Debug().Str("code", code).Msg("Profitability skipped: no income statement")
		return result, nil
	}

	result.GrossMargin = s.ratioSeries(income, s.grossMargin)
	result.NetMargin = s.ratioSeries(income, s.netMargin)

	if !balance.Empty() {
		result.ROE = s.pairedSeries(income, balance, s.roe)
		result.ROA = s.pairedSeries(income, balance, s.roa)
		result.ROIC = s.pairedSeries(income, balance, s.roic)
	}

	s.logger.Debug().
		Str("code", code).
		Int("margin_periods", len(result.GrossMargin)).
		Int("roe_periods", len(result.ROE)).
		Msg("Profitability analysis complete")

	return result, nil
}

// ratioFn computes one period's ratio from the income statement; ok is
// false when the period should be skipped.
type ratioFn func(income *models.StatementTable, idx int) (float64, bool)

// pairedFn additionally consumes the balance sheet.
type pairedFn func(income, balance *models.StatementTable, idx int) (float64, bool)

func (s *Service) ratioSeries(income *models.StatementTable, fn ratioFn) []models.RatioPeriod {
	wrap := func(inc, _ *models.StatementTable, idx int) (float64, bool) {
		return fn(inc, idx)
	}
	return s.pairedSeries(income, nil, wrap)
}

func (s *Service) pairedSeries(income, balance *models.StatementTable, fn pairedFn) []models.RatioPeriod {
	maxPeriods := s.windowPeriods
	if income.Len() < maxPeriods {
		maxPeriods = income.Len()
	}
	if balance != nil && balance.Len() < maxPeriods {
		maxPeriods = balance.Len()
	}

	var out []models.RatioPeriod
	for idx := 0; idx < maxPeriods; idx++ {
		if income.Rows[idx].ReportDate == "" {
			continue
		}
		value, ok := fn(income, balance, idx)
		if !ok {
			continue
		}

		period := models.RatioPeriod{
			ReportDate: income.Rows[idx].ReportDate,
			Value:      value,
		}

		// YoY compares against the same quarter a year earlier.
		if yIdx := idx + s.periodsPerYear; idx >= s.periodsPerYear && yIdx < income.Len() {
			if prev, ok := fn(income, balance, yIdx); ok {
				period.YoYChange = value - prev
				period.HasYoY = true
			}
		}
		// QoQ compares against the previous quarter.
		if qIdx := idx + 1; qIdx < income.Len() {
			if prev, ok := fn(income, balance, qIdx); ok {
				period.QoQChange = value - prev
				period.HasQoQ = true
			}
		}

		out = append(out, period)
	}
	return out
}

func (s *Service) grossMargin(income *models.StatementTable, idx int) (float64, bool) {
	revenue := income.Rows[idx].Value(models.ColOperatingRevenue)
	if revenue <= 0 {
		return 0, false
	}
	cost := income.Rows[idx].Value(models.ColOperatingCosts)
	return (revenue - cost) / revenue * 100, true
}

func (s *Service) netMargin(income *models.StatementTable, idx int) (float64, bool) {
	revenue := income.Rows[idx].Value(models.ColOperatingRevenue)
	if revenue <= 0 {
		return 0, false
	}
	netProfit := income.Rows[idx].Value(models.ColNetProfitParent)
	return netProfit / revenue * 100, true
}

func (s *Service) roe(income, balance *models.StatementTable, idx int) (float64, bool) {
	if balance == nil || idx >= balance.Len() {
		return 0, false
	}
	equity := balance.Rows[idx].Value(models.ColTotalEquityParent)
	if equity == 0 {
		return 0, false
	}
	avgEquity := averaged(balance, idx, models.ColTotalEquityParent, equity)
	if avgEquity <= 0 {
		return 0, false
	}
	netProfit := income.Rows[idx].Value(models.ColNetProfitParent)
	return netProfit / avgEquity * 100, true
}

func (s *Service) roa(income, balance *models.StatementTable, idx int) (float64, bool) {
	if balance == nil || idx >= balance.Len() {
		return 0, false
	}
	assets := balance.Rows[idx].Value(models.ColTotalAssets)
	if assets == 0 {
		return 0, false
	}
	avgAssets := averaged(balance, idx, models.ColTotalAssets, assets)
	if avgAssets <= 0 {
		return 0, false
	}
	netProfit := income.Rows[idx].Value(models.ColNetProfitParent)
	return netProfit / avgAssets * 100, true
}

// roic: NOPAT over averaged invested capital.
func (s *Service) roic(income, balance *models.StatementTable, idx int) (float64, bool) {
	if balance == nil || idx >= balance.Len() {
		return 0, false
	}
	inc := &income.Rows[idx]

	operatingProfit := inc.Value(models.ColOperatingProfit)
	interest := inc.Value(models.ColInterestExpenses)
	if interest <= 0 {
		if fin := inc.Value(models.ColFinancialExpenses); fin > 0 {
			interest = fin
		} else {
			interest = 0
		}
	}
	ebit := operatingProfit + interest

	totalProfit := inc.Value(models.ColTotalProfit)
	taxRate := defaultTaxRate
	if totalProfit > 0 {
		taxRate = inc.Value(models.ColIncomeTaxExpenses) / totalProfit
	}
	nopat := ebit * (1 - taxRate)

	invested := investedCapital(balance, idx)
	avgInvested := invested
	if idx < balance.Len()-1 {
		if prev := investedCapital(balance, idx+1); prev > 0 {
			avgInvested = (invested + prev) / 2
		}
	}
	if avgInvested <= 0 {
		return 0, false
	}
	return nopat / avgInvested * 100, true
}

func investedCapital(balance *models.StatementTable, idx int) float64 {
	row := &balance.Rows[idx]
	equity := row.Value(models.ColTotalEquityParent)
	debt := row.Value(models.ColLongTermBorrowings) + row.Value(models.ColShortTermBorrowings)
	cash := row.Value(models.ColCashAndEquivalents)
	return equity + debt - cash
}

// averaged returns the mean of the current and next-older balance when
// the older one carries data.
func averaged(balance *models.StatementTable, idx int, col string, current float64) float64 {
	if idx < balance.Len()-1 {
		if prev := balance.Rows[idx+1].Value(col); prev > 0 {
			return (current + prev) / 2
		}
	}
	return current
}

var _ interfaces.ProfitabilityService = (*Service)(nil)
