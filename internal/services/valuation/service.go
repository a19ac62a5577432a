// Package valuation implements price-based relative valuation ratios:
// PE, PB, PS, PEG, and EV/EBITDA, all against the latest close.
package valuation

import (
	"context"
	"math"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/interfaces"
	"github.com/lishuzheng01/stockfin/internal/models"
)

// Service implements interfaces.ValuationService.
type Service struct {
	logger         *common.Logger
	windowPeriods  int
	periodsPerYear int
}

// NewService creates a valuation service.
func NewService(logger *common.Logger, windowPeriods, periodsPerYear int) *Service {
	if windowPeriods <= 0 {
		windowPeriods = 12
	}
	if periodsPerYear <= 0 {
		periodsPerYear = 4
	}
	return &Service{logger: logger, windowPeriods: windowPeriods, periodsPerYear: periodsPerYear}
}

// Analyze computes the five ratio families per period, newest first,
// priced at the series' last close. A zero price disables PE/PB/PS/PEG
// values but the periods are still emitted with their inputs.
func (s *Service) Analyze(_ context.Context, code string, income, balance *models.StatementTable, prices *models.PriceSeries) (*models.ValuationResult, error) {
	result := &models.ValuationResult{Code: code}
	if prices != nil && !prices.Empty() {
		result.Price = prices.LastClose()
		result.PriceDate = prices.LastDate().Format("2006-01-02")
	}
	if income.Empty() {
		s.logger.Debug().Str("code", code).Msg("Valuation skipped: no income statement")
		return result, nil
	}
	if result.Price == 0 {
		s.logger.Warn().Str("code", code).Msg("Valuation running without price data")
	}

	result.Ratios = append(result.Ratios, s.peSeries(income, result.Price)...)
	if !balance.Empty() {
		result.Ratios = append(result.Ratios, s.pbSeries(balance, result.Price)...)
		result.Ratios = append(result.Ratios, s.psSeries(income, balance, result.Price)...)
	}
	result.Ratios = append(result.Ratios, s.pegSeries(income, result.Price)...)
	if !balance.Empty() {
		result.Ratios = append(result.Ratios, s.evEBITDASeries(income, balance, result.Price)...)
	}

	s.logger.Debug().
		Str("code", code).
		Float64("price", result.Price).
		Int("ratios", len(result.Ratios)).
		Msg("Valuation analysis complete")

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

// peSeries computes static PE from the period EPS and dynamic PE from
// the rolling four-quarter EPS sum, which needs four newer-to-older
// consecutive periods.
func (s *Service) peSeries(income *models.StatementTable, price float64) []models.MetricResult {
	var out []models.MetricResult
	for idx := 0; idx < s.window(income); idx++ {
		row := &income.Rows[idx]
		if row.ReportDate == "" {
			continue
		}
		eps := row.Value(models.ColBasicEPS)

		rollingEPS := 0.0
		if idx+3 < income.Len() {
			for i := 0; i < 4; i++ {
				rollingEPS += income.Rows[idx+i].Value(models.ColBasicEPS)
			}
		}

		staticPE := 0.0
		if eps > 0 {
			staticPE = price / eps
		}
		dynamicPE := 0.0
		if rollingEPS > 0 {
			dynamicPE = price / rollingEPS
		}

		mr := models.MetricResult{
			Metric:     models.RatioPE,
			ReportDate: row.ReportDate,
			Value:      dynamicPE,
			Components: map[string]float64{
				"eps":         eps,
				"rolling_eps": rollingEPS,
				"static_pe":   staticPE,
			},
		}
		if growth, ok := s.yoyGrowth(income, idx, models.ColBasicEPS); ok {
			mr.Components["eps_growth_pct"] = growth
		}
		if dynamicPE > 0 {
			mr.Classification = classifyPE(dynamicPE)
		}
		out = append(out, mr)
	}
	return out
}

func (s *Service) pbSeries(balance *models.StatementTable, price float64) []models.MetricResult {
	var out []models.MetricResult
	for idx := 0; idx < s.window(balance); idx++ {
		row := &balance.Rows[idx]
		if row.ReportDate == "" {
			continue
		}
		shareCapital := row.Value(models.ColShareCapital)
		if shareCapital == 0 {
			continue
		}
		equity := row.Value(models.ColTotalEquityParent)
		bvps := equity / shareCapital

		pb := 0.0
		if bvps > 0 {
			pb = price / bvps
		}

		mr := models.MetricResult{
			Metric:     models.RatioPB,
			ReportDate: row.ReportDate,
			Value:      pb,
			Components: map[string]float64{
				"bvps":   bvps,
				"equity": equity,
			},
		}
		if pb > 0 {
			mr.Classification = classifyPB(pb)
		}
		out = append(out, mr)
	}
	return out
}

func (s *Service) psSeries(income, balance *models.StatementTable, price float64) []models.MetricResult {
	var out []models.MetricResult
	for idx := 0; idx < s.window(income, balance); idx++ {
		row := &income.Rows[idx]
		if row.ReportDate == "" {
			continue
		}
		revenue := row.Value(models.ColOperatingRevenue)
		shareCapital := balance.Rows[idx].Value(models.ColShareCapital)
		if shareCapital == 0 || revenue == 0 {
			continue
		}

		marketCap := price * shareCapital
		ps := 0.0
		if revenue > 0 {
			ps = marketCap / revenue
		}
		netMargin := 0.0
		if revenue > 0 {
			netMargin = row.Value(models.ColNetProfitParent) / revenue * 100
		}

		mr := models.MetricResult{
			Metric:     models.RatioPS,
			ReportDate: row.ReportDate,
			Value:      ps,
			Components: map[string]float64{
				"market_cap":        marketCap,
				"revenue":           revenue,
				"revenue_per_share": revenue / shareCapital,
				"net_margin_pct":    netMargin,
			},
		}
		if ps > 0 {
			mr.Classification = classifyPS(ps)
		}
		out = append(out, mr)
	}
	return out
}

// pegSeries divides PE by the year-over-year parent net-profit growth
// rate. PEG stays zero when growth is flat or negative.
func (s *Service) pegSeries(income *models.StatementTable, price float64) []models.MetricResult {
	var out []models.MetricResult
	for idx := 0; idx < s.window(income); idx++ {
		row := &income.Rows[idx]
		if row.ReportDate == "" {
			continue
		}
		eps := row.Value(models.ColBasicEPS)
		pe := 0.0
		if eps > 0 {
			pe = price / eps
		}

		growth, _ := s.yoyGrowth(income, idx, models.ColNetProfitParent)
		peg := 0.0
		if growth > 0 {
			peg = pe / growth
		}

		mr := models.MetricResult{
			Metric:     models.RatioPEG,
			ReportDate: row.ReportDate,
			Value:      peg,
			Components: map[string]float64{
				"pe":         pe,
				"growth_pct": growth,
				"net_profit": row.Value(models.ColNetProfitParent),
			},
		}
		if peg > 0 {
			mr.Classification = classifyPEG(peg)
		}
		out = append(out, mr)
	}
	return out
}

func (s *Service) evEBITDASeries(income, balance *models.StatementTable, price float64) []models.MetricResult {
	var out []models.MetricResult
	for idx := 0; idx < s.window(income, balance); idx++ {
		inc := &income.Rows[idx]
		if inc.ReportDate == "" {
			continue
		}
		bal := &balance.Rows[idx]

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

		depreciation := inc.Value(models.ColDepreciation)
		if depreciation == 0 && idx < balance.Len()-1 {
			// Statements rarely break out depreciation; estimate a 25%
			// annual charge against the accumulated balance.
			if accumulated := bal.Value(models.ColAccumulatedDepreciation); accumulated > 0 {
				depreciation = accumulated * 0.25
			}
		}
		ebitda := ebit + depreciation

		marketCap := price * bal.Value(models.ColShareCapital)
		ev := marketCap + bal.Value(models.ColTotalLiabilities) - bal.Value(models.ColCashAndEquivalents)

		ratio := 0.0
		if ebitda > 0 {
			ratio = ev / ebitda
		}

		mr := models.MetricResult{
			Metric:     models.RatioEVEBITDA,
			ReportDate: inc.ReportDate,
			Value:      ratio,
			Components: map[string]float64{
				"ev":         ev,
				"ebitda":     ebitda,
				"ebit":       ebit,
				"market_cap": marketCap,
			},
		}
		if ratio > 0 {
			mr.Classification = classifyEVEBITDA(ratio)
		}
		out = append(out, mr)
	}
	return out
}

// yoyGrowth is the percentage change of a column against the period four
// quarters older, defined only when both sides exist and the base is
// non-zero.
func (s *Service) yoyGrowth(income *models.StatementTable, idx int, col string) (float64, bool) {
	yIdx := idx + s.periodsPerYear
	if idx < s.periodsPerYear || yIdx >= income.Len() {
		return 0, false
	}
	prev := income.Rows[yIdx].Value(col)
	if prev == 0 {
		return 0, false
	}
	cur := income.Rows[idx].Value(col)
	return (cur - prev) / math.Abs(prev) * 100, true
}

func classifyPE(pe float64) string {
	switch {
	case pe < 15:
		return "Undervalued (PE < 15)"
	case pe < 25:
		return "Fairly valued (15 <= PE < 25)"
	case pe < 40:
		return "Elevated (25 <= PE < 40)"
	default:
		return "Overvalued (PE >= 40)"
	}
}

func classifyPB(pb float64) string {
	switch {
	case pb < 1:
		return "Below book value (PB < 1)"
	case pb < 3:
		return "Fairly valued (1 <= PB < 3)"
	case pb < 5:
		return "Elevated (3 <= PB < 5)"
	default:
		return "Overvalued (PB >= 5)"
	}
}

func classifyPS(ps float64) string {
	switch {
	case ps < 1:
		return "Undervalued (PS < 1)"
	case ps < 3:
		return "Fairly valued (1 <= PS < 3)"
	case ps < 5:
		return "Elevated (3 <= PS < 5)"
	default:
		return "Overvalued (PS >= 5)"
	}
}

func classifyPEG(peg float64) string {
	switch {
	case peg < 0.5:
		return "Deeply undervalued (PEG < 0.5)"
	case peg < 1:
		return "Undervalued (0.5 <= PEG < 1)"
	case peg <= 1.5:
		return "Fairly valued (1 <= PEG <= 1.5)"
	case peg < 2:
		return "Elevated (1.5 < PEG < 2)"
	default:
		return "Overvalued (PEG >= 2)"
	}
}

func classifyEVEBITDA(ratio float64) string {
	switch {
	case ratio < 5:
		return "Undervalued (EV/EBITDA < 5)"
	case ratio < 10:
		return "Fairly valued (5 <= EV/EBITDA < 10)"
	case ratio < 15:
		return "Elevated (10 <= EV/EBITDA < 15)"
	default:
		return "Overvalued (EV/EBITDA >= 15)"
	}
}

var _ interfaces.ValuationService = (*Service)(nil)
