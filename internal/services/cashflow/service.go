// Package cashflow implements cash-flow quality, free cash flow,
// adequacy, and cash conversion cycle analysis.
package cashflow

import (
	"context"
	"math"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/interfaces"
	"github.com/lishuzheng01/stockfin/internal/models"
)

const daysPerYear = 365

// Service implements interfaces.CashFlowService.
type Service struct {
	logger         *common.Logger
	windowPeriods  int
	periodsPerYear int
}

// NewService creates a cash-flow service.
func NewService(logger *common.Logger, windowPeriods, periodsPerYear int) *Service {
	if windowPeriods <= 0 {
		windowPeriods = 12
	}
	if periodsPerYear <= 0 {
		periodsPerYear = 4
	}
	return &Service{logger: logger, windowPeriods: windowPeriods, periodsPerYear: periodsPerYear}
}

// Analyze computes the four cash-flow views over the recent window,
// newest first.
func (s *Service) Analyze(_ context.Context, code string, income, balance, cashflow *models.StatementTable) (*models.CashFlowResult, error) {
	result := &models.CashFlowResult{Code: code}
	if cashflow.Empty() {
		s.logger.Debug().Str("code", code).Msg("Cash flow skipped: no cash flow statement")
		return result, nil
	}

	if !income.Empty() {
		result.Quality = s.quality(income, balance, cashflow)
		result.FCF = s.freeCashFlow(income, cashflow)
	}
	if !balance.Empty() {
		result.Adequacy = s.adequacy(balance, cashflow)
		if !income.Empty() {
			result.CCC = s.conversionCycle(income, balance)
		}
	}

	s.logger.Debug().
		Str("code", code).
		Int("quality_periods", len(result.Quality)).
		Int("adequacy_windows", len(result.Adequacy)).
		Msg("Cash flow analysis complete")

	return result, nil
}

func (s *Service) window(tables ...*models.StatementTable) int {
	n := s.windowPeriods
	for _, t := range tables {
		if t != nil && t.Len() < n {
			n = t.Len()
		}
	}
	return n
}

// quality compares operating cash flow against parent net profit. Ratio
// above one means earnings are fully backed by cash.
func (s *Service) quality(income, balance, cashflow *models.StatementTable) []models.OCFQualityPeriod {
	var out []models.OCFQualityPeriod
	for idx := 0; idx < s.window(cashflow, income); idx++ {
		row := &cashflow.Rows[idx]
		if row.ReportDate == "" {
			continue
		}
		ocf := row.Value(models.ColOperatingCashFlow)
		netProfit := income.Rows[idx].Value(models.ColNetProfitParent)

		ratio := 0.0
		if netProfit != 0 {
			ratio = ocf / netProfit
		}
		accruals := netProfit - ocf

		accrualPct := 0.0
		if balance != nil && idx < balance.Len() {
			if assets := balance.Rows[idx].Value(models.ColTotalAssets); assets > 0 {
				accrualPct = accruals / assets * 100
			}
		}

		period := models.OCFQualityPeriod{
			ReportDate: row.ReportDate,
			OCF:        ocf,
			NetProfit:  netProfit,
			Ratio:      ratio,
			Accruals:   accruals,
			AccrualPct: accrualPct,
			Quality:    classifyQuality(ratio),
		}
		if yIdx := idx + s.periodsPerYear; idx >= s.periodsPerYear && yIdx < cashflow.Len() {
			if prev := cashflow.Rows[yIdx].Value(models.ColOperatingCashFlow); prev != 0 {
				period.OCFYoYPct = (ocf - prev) / math.Abs(prev) * 100
				period.HasYoY = true
			}
		}
		out = append(out, period)
	}
	return out
}

// freeCashFlow subtracts capital expenditure, reported as a positive
// outflow, from operating cash flow.
func (s *Service) freeCashFlow(income, cashflow *models.StatementTable) []models.FCFPeriod {
	var out []models.FCFPeriod
	for idx := 0; idx < s.window(cashflow, income); idx++ {
		row := &cashflow.Rows[idx]
		if row.ReportDate == "" {
			continue
		}
		ocf := row.Value(models.ColOperatingCashFlow)
		capex := math.Abs(row.Value(models.ColCapex))
		fcf := ocf - capex
		netProfit := income.Rows[idx].Value(models.ColNetProfitParent)

		fcfToProfit := 0.0
		if netProfit != 0 {
			fcfToProfit = fcf / netProfit
		}

		period := models.FCFPeriod{
			ReportDate:  row.ReportDate,
			FCF:         fcf,
			OCF:         ocf,
			Capex:       capex,
			NetProfit:   netProfit,
			FCFToProfit: fcfToProfit,
		}
		if yIdx := idx + s.periodsPerYear; idx >= s.periodsPerYear && yIdx < cashflow.Len() {
			prevRow := &cashflow.Rows[yIdx]
			prevFCF := prevRow.Value(models.ColOperatingCashFlow) - math.Abs(prevRow.Value(models.ColCapex))
			if prevFCF != 0 {
				period.YoYPct = (fcf - prevFCF) / math.Abs(prevFCF) * 100
				period.HasYoY = true
			}
		}
		out = append(out, period)
	}
	return out
}

// adequacy sums operating cash flow over rolling windows of up to three
// years, stepping one year at a time, against capital expenditure,
// inventory build, and dividends over the same span.
func (s *Service) adequacy(balance, cashflow *models.StatementTable) []models.AdequacyWindow {
	maxPeriods := s.window(cashflow, balance)
	var out []models.AdequacyWindow
	for idx := 0; idx < maxPeriods; idx += s.periodsPerYear {
		if cashflow.Rows[idx].ReportDate == "" {
			continue
		}
		span := s.windowPeriods
		if remaining := maxPeriods - idx; remaining < span {
			span = remaining
		}

		var ocfSum, capexSum, dividendSum float64
		for i := 0; i < span; i++ {
			row := &cashflow.Rows[idx+i]
			ocfSum += row.Value(models.ColOperatingCashFlow)
			capexSum += math.Abs(row.Value(models.ColCapex))
			dividendSum += math.Abs(row.Value(models.ColDividendsPaid))
		}

		inventoryIncrease := 0.0
		if last := idx + span - 1; last < balance.Len() {
			beginning := balance.Rows[last].Value(models.ColInventories)
			ending := balance.Rows[idx].Value(models.ColInventories)
			inventoryIncrease = math.Max(0, ending-beginning)
		}

		needs := capexSum + inventoryIncrease + dividendSum
		ratio := 0.0
		if needs > 0 {
			ratio = ocfSum / needs
		}

		out = append(out, models.AdequacyWindow{
			EndDate:           cashflow.Rows[idx].ReportDate,
			StartDate:         cashflow.Rows[idx+span-1].ReportDate,
			Periods:           span,
			OCFSum:            ocfSum,
			CapexSum:          capexSum,
			DividendSum:       dividendSum,
			InventoryIncrease: inventoryIncrease,
			Ratio:             ratio,
			Level:             classifyAdequacy(ratio),
		})
	}
	return out
}

// conversionCycle derives inventory, receivable, and payable days from
// turnover on balances averaged with the next-older period.
func (s *Service) conversionCycle(income, balance *models.StatementTable) []models.CCCPeriod {
	maxPeriods := s.window(income, balance)
	var out []models.CCCPeriod
	for idx := 0; idx < maxPeriods; idx++ {
		row := &income.Rows[idx]
		if row.ReportDate == "" {
			continue
		}
		revenue := row.Value(models.ColOperatingRevenue)
		cogs := row.Value(models.ColOperatingCosts)

		avgInventory := averagedBalance(balance, idx, models.ColInventories)
		avgReceivables := averagedBalance(balance, idx, models.ColAccountsReceivable)
		avgPayables := averagedBalance(balance, idx, models.ColAccountsPayable)

		dio := turnoverDays(cogs, avgInventory)
		dso := turnoverDays(revenue, avgReceivables)
		dpo := turnoverDays(cogs, avgPayables)
		ccc := dio + dso - dpo

		period := models.CCCPeriod{
			ReportDate: row.ReportDate,
			DIO:        dio,
			DSO:        dso,
			DPO:        dpo,
			CCC:        ccc,
		}
		// The prior-year comparison uses period-end balances rather
		// than averages.
		if yIdx := idx + s.periodsPerYear; idx >= s.periodsPerYear && yIdx < maxPeriods {
			prevBal := &balance.Rows[yIdx]
			prevInc := &income.Rows[yIdx]
			prevRevenue := prevInc.Value(models.ColOperatingRevenue)
			prevCOGS := prevInc.Value(models.ColOperatingCosts)

			prevDIO := spanDays(prevBal.Value(models.ColInventories), prevCOGS)
			prevDSO := spanDays(prevBal.Value(models.ColAccountsReceivable), prevRevenue)
			prevDPO := spanDays(prevBal.Value(models.ColAccountsPayable), prevCOGS)

			period.YoYDays = ccc - (prevDIO + prevDSO - prevDPO)
			period.HasYoY = true
		}
		out = append(out, period)
	}
	return out
}

func averagedBalance(balance *models.StatementTable, idx int, col string) float64 {
	current := balance.Rows[idx].Value(col)
	if idx < balance.Len()-1 {
		return (current + balance.Rows[idx+1].Value(col)) / 2
	}
	return current
}

// turnoverDays converts a flow/balance turnover into days outstanding,
// zero when either side lacks data.
func turnoverDays(flow, avgBalance float64) float64 {
	if avgBalance <= 0 {
		return 0
	}
	turnover := flow / avgBalance
	if turnover <= 0 {
		return 0
	}
	return daysPerYear / turnover
}

func spanDays(bal, flow float64) float64 {
	if flow <= 0 {
		return 0
	}
	return bal / flow * daysPerYear
}

func classifyQuality(ratio float64) string {
	switch {
	case ratio >= 1.2:
		return "Excellent (ratio >= 1.2)"
	case ratio >= 1:
		return "Good (1 <= ratio < 1.2)"
	case ratio >= 0.8:
		return "Average (0.8 <= ratio < 1)"
	case ratio > 0:
		return "Poor (0 < ratio < 0.8)"
	default:
		return "Warning (ratio <= 0, profit not converting to cash)"
	}
}

func classifyAdequacy(ratio float64) string {
	switch {
	case ratio >= 1.5:
		return "Very adequate (ratio >= 1.5)"
	case ratio >= 1:
		return "Adequate (1 <= ratio < 1.5)"
	case ratio >= 0.8:
		return "Borderline (0.8 <= ratio < 1)"
	default:
		return "Inadequate (ratio < 0.8)"
	}
}

var _ interfaces.CashFlowService = (*Service)(nil)
