// Package dupont implements three- and five-factor DuPont ROE
// decomposition over the loaded statements.
package dupont

import (
	"context"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/interfaces"
	"github.com/lishuzheng01/stockfin/internal/models"
)

// Service implements interfaces.DuPontService.
type Service struct {
	logger        *common.Logger
	windowPeriods int
}

// NewService creates a DuPont service limited to windowPeriods recent
// reporting periods.
func NewService(logger *common.Logger, windowPeriods int) *Service {
	if windowPeriods <= 0 {
		windowPeriods = 12
	}
	return &Service{logger: logger, windowPeriods: windowPeriods}
}

// Analyze decomposes ROE per period, newest first. Periods missing
// revenue, assets, or equity are skipped.
func (s *Service) Analyze(_ context.Context, code string, income, balance *models.StatementTable) (*models.DuPontResult, error) {
	result := &models.DuPontResult{Code: code}
	if income.Empty() || balance.Empty() {
		s.logger.Debug().Str("code", code).Msg("DuPont skipped: missing statements")
		return result, nil
	}

	maxPeriods := s.windowPeriods
	if income.Len() < maxPeriods {
		maxPeriods = income.Len()
	}
	if balance.Len() < maxPeriods {
		maxPeriods = balance.Len()
	}

	for idx := 0; idx < maxPeriods; idx++ {
		inc := &income.Rows[idx]
		bal := &balance.Rows[idx]
		if inc.ReportDate == "" {
			continue
		}

		netProfit := inc.Value(models.ColNetProfitParent)
		revenue := inc.Value(models.ColOperatingRevenue)
		totalProfit := inc.Value(models.ColTotalProfit)
		incomeTax := inc.Value(models.ColIncomeTaxExpenses)
		interestExpense := inc.Value(models.ColInterestExpenses)
		financialExpenses := inc.Value(models.ColFinancialExpenses)

		totalAssets := bal.Value(models.ColTotalAssets)
		equity := bal.Value(models.ColTotalEquityParent)

		if revenue == 0 || totalAssets == 0 || equity == 0 {
			continue
		}

		// Averages use the next-older period when it carries data.
		avgAssets := totalAssets
		avgEquity := equity
		if idx < balance.Len()-1 {
			prev := &balance.Rows[idx+1]
			if prevAssets := prev.Value(models.ColTotalAssets); prevAssets > 0 {
				avgAssets = (totalAssets + prevAssets) / 2
			}
			if prevEquity := prev.Value(models.ColTotalEquityParent); prevEquity > 0 {
				avgEquity = (equity + prevEquity) / 2
			}
		}

		netMargin := netProfit / revenue * 100
		turnover := revenue / avgAssets
		multiplier := 0.0
		roe := 0.0
		if avgEquity > 0 {
			multiplier = avgAssets / avgEquity
			roe = netProfit / avgEquity * 100
		}

		// Tax burden: falls back to an estimated effective rate when
		// total profit is not positive.
		var taxBurden float64
		if totalProfit > 0 {
			taxBurden = netProfit / totalProfit
		} else {
			taxRate := 0.25
			if totalProfit != 0 {
				taxRate = incomeTax / totalProfit
			}
			taxBurden = 1 - taxRate
		}

		// EBIT prefers explicit interest expense over financial expenses.
		interest := 0.0
		if interestExpense > 0 {
			interest = interestExpense
		} else if financialExpenses > 0 {
			interest = financialExpenses
		}
		ebit := totalProfit + interest

		interestBurden := 1.0
		if ebit > 0 {
			interestBurden = totalProfit / ebit
		}
		ebitMargin := ebit / revenue * 100

		roeCheck := taxBurden * interestBurden * (ebitMargin / 100) * turnover * multiplier * 100

		result.Periods = append(result.Periods, models.DuPontPeriod{
			ReportDate:       inc.ReportDate,
			NetMarginPct:     netMargin,
			AssetTurnover:    turnover,
			EquityMultiplier: multiplier,
			ROEPct:           roe,
			TaxBurden:        taxBurden,
			InterestBurden:   interestBurden,
			EBITMarginPct:    ebitMargin,
			ROECheckPct:      roeCheck,
		})
	}

	s.logger.Debug().Str("code", code).Int("periods", len(result.Periods)).Msg("DuPont analysis complete")
	return result, nil
}

var _ interfaces.DuPontService = (*Service)(nil)
