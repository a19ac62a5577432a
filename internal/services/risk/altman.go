package risk

import (
	"github.com/lishuzheng01/stockfin/internal/models"
)

// Altman Z-Score weights and zone boundaries.
const (
	altmanW1 = 1.2
	altmanW2 = 1.4
	altmanW3 = 3.3
	altmanW4 = 0.6
	altmanW5 = 1.0

	zoneSafeFloor = 2.99
	zoneGreyFloor = 1.81
)

// computeAltman derives the Z-Score per reporting period. Periods without
// total assets or a report date are skipped. Rows keep the balance
// sheet's newest-first order.
func computeAltman(code string, income, balance *models.StatementTable) *models.AltmanResult {
	result := &models.AltmanResult{Code: code}
	if income.Empty() || balance.Empty() {
		return result
	}

	incomeByDate := indexByDate(income)

	for i := range balance.Rows {
		bal := &balance.Rows[i]
		if bal.ReportDate == "" {
			continue
		}
		totalAssets := bal.Value(models.ColTotalAssets)
		if totalAssets == 0 {
			continue
		}

		// Income figures default to zero when the period is missing
		// from the income statement.
		var revenue, operatingProfit, interestExpense float64
		if inc, ok := incomeByDate[bal.ReportDate]; ok {
			revenue = inc.Value(models.ColOperatingRevenue)
			operatingProfit = inc.Value(models.ColOperatingProfit)
			interestExpense = inc.Value(models.ColInterestExpenses)
		}

		currentAssets := bal.Value(models.ColTotalCurrentAssets)
		currentLiabilities := bal.Value(models.ColTotalCurrentLiabilities)
		totalLiabilities := bal.Value(models.ColTotalLiabilities)
		retainedEarnings := bal.Value(models.ColRetainedEarnings)
		equity := bal.Value(models.ColTotalOwnersEquity)

		workingCapital := currentAssets - currentLiabilities
		ebit := operatingProfit + interestExpense

		x1 := workingCapital / totalAssets
		x2 := retainedEarnings / totalAssets
		x3 := ebit / totalAssets
		x4 := 0.0
		if totalLiabilities != 0 {
			x4 = equity / totalLiabilities
		}
		x5 := revenue / totalAssets

		z := altmanW1*x1 + altmanW2*x2 + altmanW3*x3 + altmanW4*x4 + altmanW5*x5

		result.Periods = append(result.Periods, models.AltmanPeriod{
			ReportDate:       bal.ReportDate,
			X1:               x1,
			X2:               x2,
			X3:               x3,
			X4:               x4,
			X5:               x5,
			ZScore:           z,
			RiskLevel:        classifyZ(z),
			WorkingCapital:   workingCapital,
			RetainedEarnings: retainedEarnings,
			EBIT:             ebit,
			TotalEquity:      equity,
			TotalLiabilities: totalLiabilities,
			Revenue:          revenue,
			TotalAssets:      totalAssets,
		})
	}

	return result
}

// classifyZ maps a Z-Score to its zone. Boundaries are exclusive: a score
// exactly at 2.99 is grey, exactly at 1.81 is distress.
func classifyZ(z float64) string {
	switch {
	case z > zoneSafeFloor:
		return models.ZoneSafe
	case z > zoneGreyFloor:
		return models.ZoneGrey
	default:
		return models.ZoneDistress
	}
}

// indexByDate maps report dates to rows for cross-statement joins.
func indexByDate(t *models.StatementTable) map[string]*models.StatementRow {
	out := make(map[string]*models.StatementRow, t.Len())
	for i := range t.Rows {
		out[t.Rows[i].ReportDate] = &t.Rows[i]
	}
	return out
}
