package risk

import (
	"fmt"
	"math"

	"github.com/lishuzheng01/stockfin/internal/models"
)

// Beneish eight-factor model constants. M above the threshold flags
// likely earnings manipulation.
const (
	mIntercept = -4.84
	mwDSRI     = 0.920
	mwGMI      = 0.528
	mwAQI      = 0.404
	mwSGI      = 0.892
	mwDEPI     = 0.115
	mwSGAI     = -0.172
	mwTATA     = 4.679
	mwLVGI     = -0.327

	mScoreThreshold = -2.22
)

// beneishInputs bundles the per-period figures the sub-indices need.
type beneishInputs struct {
	income, balance, cashflow *models.StatementTable
}

// computeBeneish derives the M-Score for every period after the first.
// Tables are consumed oldest-first; each row compares against the
// immediately older one.
func computeBeneish(code string, income, balance, cashflow *models.StatementTable) *models.BeneishResult {
	result := &models.BeneishResult{Code: code}
	if income.Empty() || balance.Empty() {
		return result
	}

	in := beneishInputs{income: income, balance: balance, cashflow: cashflow}
	n := income.Len()
	if balance.Len() < n {
		n = balance.Len()
	}

	for i := 1; i < n; i++ {
		dsri, dsriOK := in.dsri(i, i-1)
		gmi, gmiOK := in.gmi(i, i-1)
		aqi, aqiOK := in.aqi(i, i-1)
		sgi, sgiOK := in.sgi(i, i-1)
		depi := in.depi(i, i-1)
		sgai, sgaiOK := in.sgai(i, i-1)
		lvgi, lvgiOK := in.lvgi(i, i-1)
		tata := in.tata(i)

		m := mIntercept +
			mwDSRI*defaulted(dsri, dsriOK, 1.0) +
			mwGMI*defaulted(gmi, gmiOK, 1.0) +
			mwAQI*defaulted(aqi, aqiOK, 1.0) +
			mwSGI*defaulted(sgi, sgiOK, 1.0) +
			mwDEPI*depi +
			mwSGAI*defaulted(sgai, sgaiOK, 1.0) +
			mwTATA*tata +
			mwLVGI*defaulted(lvgi, lvgiOK, 1.0)

		period := models.BeneishPeriod{
			ReportDate: income.Rows[i].ReportDate,
			DSRI:       defaulted(dsri, dsriOK, 1.0),
			GMI:        defaulted(gmi, gmiOK, 1.0),
			AQI:        defaulted(aqi, aqiOK, 1.0),
			SGI:        defaulted(sgi, sgiOK, 1.0),
			DEPI:       depi,
			SGAI:       defaulted(sgai, sgaiOK, 1.0),
			TATA:       tata,
			LVGI:       defaulted(lvgi, lvgiOK, 1.0),
			MScore:     m,
			HighRisk:   m > mScoreThreshold,
		}

		if dsriOK && dsri > 1.05 {
			period.Warnings = append(period.Warnings, fmt.Sprintf("DSRI(%.2f): receivables growing faster than revenue", dsri))
		}
		if gmiOK && gmi > 1.05 {
			period.Warnings = append(period.Warnings, fmt.Sprintf("GMI(%.2f): gross margin deteriorating", gmi))
		}
		if aqiOK && aqi > 1.05 {
			period.Warnings = append(period.Warnings, fmt.Sprintf("AQI(%.2f): asset quality deteriorating", aqi))
		}
		if sgiOK && sgi > 1.1 {
			period.Warnings = append(period.Warnings, fmt.Sprintf("SGI(%.2f): rapid sales growth", sgi))
		}
		if depi > 1.05 {
			period.Warnings = append(period.Warnings, fmt.Sprintf("DEPI(%.2f): depreciation rate falling", depi))
		}
		if sgaiOK && sgai > 1.05 {
			period.Warnings = append(period.Warnings, fmt.Sprintf("SGAI(%.2f): expense ratio rising", sgai))
		}
		if lvgiOK && lvgi > 1.05 {
			period.Warnings = append(period.Warnings, fmt.Sprintf("LVGI(%.2f): leverage rising", lvgi))
		}
		if math.Abs(tata) > 0.05 {
			period.Warnings = append(period.Warnings, fmt.Sprintf("TATA(%.2f): unusual accruals", tata))
		}

		result.Periods = append(result.Periods, period)
	}

	return result
}

func defaulted(v float64, ok bool, def float64) float64 {
	if !ok {
		return def
	}
	return v
}

func (in beneishInputs) incomeVal(idx int, col string) float64 {
	if idx >= in.income.Len() {
		return 0
	}
	return in.income.Rows[idx].Value(col)
}

func (in beneishInputs) balanceVal(idx int, col string) float64 {
	if idx >= in.balance.Len() {
		return 0
	}
	return in.balance.Rows[idx].Value(col)
}

func (in beneishInputs) cashflowVal(idx int, col string) float64 {
	if in.cashflow == nil || idx >= in.cashflow.Len() {
		return 0
	}
	return in.cashflow.Rows[idx].Value(col)
}

// dsri: days-sales-in-receivables index.
func (in beneishInputs) dsri(cur, prior int) (float64, bool) {
	curRevenue := in.incomeVal(cur, models.ColOperatingRevenue)
	priorRevenue := in.incomeVal(prior, models.ColOperatingRevenue)
	if curRevenue == 0 || priorRevenue == 0 {
		return 0, false
	}
	curRatio := in.balanceVal(cur, models.ColAccountsReceivable) / curRevenue
	priorRatio := in.balanceVal(prior, models.ColAccountsReceivable) / priorRevenue
	if priorRatio == 0 {
		return 1.0, true
	}
	return curRatio / priorRatio, true
}

// gmi: gross margin index, prior margin over current.
func (in beneishInputs) gmi(cur, prior int) (float64, bool) {
	curRevenue := in.incomeVal(cur, models.ColOperatingRevenue)
	priorRevenue := in.incomeVal(prior, models.ColOperatingRevenue)
	if curRevenue == 0 || priorRevenue == 0 {
		return 0, false
	}
	curMargin := (curRevenue - in.incomeVal(cur, models.ColOperatingCosts)) / curRevenue
	priorMargin := (priorRevenue - in.incomeVal(prior, models.ColOperatingCosts)) / priorRevenue
	if curMargin == 0 {
		return 1.0, true
	}
	return priorMargin / curMargin, true
}

// aqi: share of soft assets, current over prior.
func (in beneishInputs) aqi(cur, prior int) (float64, bool) {
	curAssets := in.balanceVal(cur, models.ColTotalAssets)
	priorAssets := in.balanceVal(prior, models.ColTotalAssets)
	if curAssets == 0 || priorAssets == 0 {
		return 0, false
	}
	curRatio := (curAssets - in.balanceVal(cur, models.ColTotalCurrentAssets) - in.balanceVal(cur, models.ColNetFixedAssets)) / curAssets
	priorRatio := (priorAssets - in.balanceVal(prior, models.ColTotalCurrentAssets) - in.balanceVal(prior, models.ColNetFixedAssets)) / priorAssets
	if priorRatio == 0 {
		return 1.0, true
	}
	return curRatio / priorRatio, true
}

// sgi: sales growth index.
func (in beneishInputs) sgi(cur, prior int) (float64, bool) {
	priorRevenue := in.incomeVal(prior, models.ColOperatingRevenue)
	if priorRevenue == 0 {
		return 0, false
	}
	return in.incomeVal(cur, models.ColOperatingRevenue) / priorRevenue, true
}

// depi: depreciation index. Gross PPE prefers the reported asset cost,
// falling back to |accumulated depreciation| plus net fixed assets.
func (in beneishInputs) depi(cur, prior int) float64 {
	curDep := math.Abs(in.balanceVal(cur, models.ColAccumulatedDepreciation))
	priorDep := math.Abs(in.balanceVal(prior, models.ColAccumulatedDepreciation))

	curGross := curDep + in.balanceVal(cur, models.ColNetFixedAssets)
	priorGross := priorDep + in.balanceVal(prior, models.ColNetFixedAssets)

	if cost := in.balanceVal(cur, models.ColCostOfFixedAssets); cost > 0 {
		curGross = cost
	}
	if cost := in.balanceVal(prior, models.ColCostOfFixedAssets); cost > 0 {
		priorGross = cost
	}

	if curGross == 0 || priorGross == 0 {
		return 1.0
	}
	curRate := curDep / curGross
	if curRate == 0 {
		return 1.0
	}
	return (priorDep / priorGross) / curRate
}

// sgai: SG&A expense index.
func (in beneishInputs) sgai(cur, prior int) (float64, bool) {
	curRevenue := in.incomeVal(cur, models.ColOperatingRevenue)
	priorRevenue := in.incomeVal(prior, models.ColOperatingRevenue)
	if curRevenue == 0 || priorRevenue == 0 {
		return 0, false
	}
	curRatio := (in.incomeVal(cur, models.ColSellingExpenses) + in.incomeVal(cur, models.ColAdminExpenses)) / curRevenue
	priorRatio := (in.incomeVal(prior, models.ColSellingExpenses) + in.incomeVal(prior, models.ColAdminExpenses)) / priorRevenue
	if priorRatio == 0 {
		return 1.0, true
	}
	return curRatio / priorRatio, true
}

// lvgi: leverage index.
func (in beneishInputs) lvgi(cur, prior int) (float64, bool) {
	curAssets := in.balanceVal(cur, models.ColTotalAssets)
	priorAssets := in.balanceVal(prior, models.ColTotalAssets)
	if curAssets == 0 || priorAssets == 0 {
		return 0, false
	}
	curRatio := (in.balanceVal(cur, models.ColTotalCurrentLiabilities) + in.balanceVal(cur, models.ColTotalNonCurrentLiab)) / curAssets
	priorRatio := (in.balanceVal(prior, models.ColTotalCurrentLiabilities) + in.balanceVal(prior, models.ColTotalNonCurrentLiab)) / priorAssets
	if priorRatio == 0 {
		return 1.0, true
	}
	return curRatio / priorRatio, true
}

// tata: total accruals to total assets.
func (in beneishInputs) tata(cur int) float64 {
	if cur == 0 {
		return 0.0
	}
	ocf := in.cashflowVal(cur, models.ColOperatingCashFlow)
	curWC := in.balanceVal(cur, models.ColTotalCurrentAssets) - in.balanceVal(cur, models.ColTotalCurrentLiabilities)
	priorWC := in.balanceVal(cur-1, models.ColTotalCurrentAssets) - in.balanceVal(cur-1, models.ColTotalCurrentLiabilities)

	totalAssets := in.balanceVal(cur, models.ColTotalAssets)
	if totalAssets == 0 {
		return 0.0
	}
	return ((curWC - priorWC) - ocf) / totalAssets
}
