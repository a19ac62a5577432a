package valuation

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/models"
)

func priceSeries(closes ...float64) *models.PriceSeries {
	s := &models.PriceSeries{Code: "600519"}
	day := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	for i, c := range closes {
		s.Bars = append(s.Bars, models.PriceBar{Date: day.AddDate(0, 0, i), Close: c})
	}
	return s
}

func incomeRows(eps ...float64) *models.StatementTable {
	dates := []string{
		"2024-12-31", "2024-09-30", "2024-06-30", "2024-03-31",
		"2023-12-31", "2023-09-30", "2023-06-30", "2023-03-31",
	}
	t := &models.StatementTable{Code: "600519", Kind: models.StatementIncome}
	for i, e := range eps {
		t.Rows = append(t.Rows, models.StatementRow{ReportDate: dates[i], Values: map[string]float64{
			models.ColBasicEPS: e,
		}})
	}
	return t
}

func filterRatios(result *models.ValuationResult, metric string) []models.MetricResult {
	var out []models.MetricResult
	for _, r := range result.Ratios {
		if r.Metric == metric {
			out = append(out, r)
		}
	}
	return out
}

func TestAnalyze_StaticAndDynamicPE(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 12, 4)

	income := incomeRows(2, 2, 3, 3, 2, 2, 2, 2)
	prices := priceSeries(95, 100)

	result, err := svc.Analyze(context.Background(), "600519", income, &models.StatementTable{Kind: models.StatementBalance}, prices)
	require.NoError(t, err)
	assert.InDelta(t, 100.0, result.Price, 1e-9)
	assert.Equal(t, "2024-12-02", result.PriceDate)

	pe := filterRatios(result, models.RatioPE)
	require.Len(t, pe, 8)

	newest := pe[0]
	// rolling EPS = 2+2+3+3 = 10, dynamic PE = 100/10
	assert.InDelta(t, 10.0, newest.Value, 1e-9)
	assert.InDelta(t, 50.0, newest.Components["static_pe"], 1e-9)
	assert.Equal(t, "Undervalued (PE < 15)", newest.Classification)

	// Periods without four newer-to-older quarters have no rolling EPS.
	last := pe[7]
	assert.Zero(t, last.Value)
	assert.Empty(t, last.Classification)
	assert.InDelta(t, 50.0, last.Components["static_pe"], 1e-9)
}

func TestAnalyze_PEClassificationBands(t *testing.T) {
	assert.Equal(t, "Undervalued (PE < 15)", classifyPE(14.99))
	assert.Equal(t, "Fairly valued (15 <= PE < 25)", classifyPE(15))
	assert.Equal(t, "Elevated (25 <= PE < 40)", classifyPE(30))
	assert.Equal(t, "Overvalued (PE >= 40)", classifyPE(40))
}

func TestAnalyze_PBSkipsZeroShareCapital(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 12, 4)

	balance := &models.StatementTable{Kind: models.StatementBalance, Rows: []models.StatementRow{
		{ReportDate: "2024-12-31", Values: map[string]float64{
			models.ColTotalEquityParent: 5000,
			models.ColShareCapital:      1000,
		}},
		{ReportDate: "2024-09-30", Values: map[string]float64{
			models.ColTotalEquityParent: 4800,
		}},
	}}
	income := incomeRows(1, 1)

	result, err := svc.Analyze(context.Background(), "600519", income, balance, priceSeries(10))
	require.NoError(t, err)

	pb := filterRatios(result, models.RatioPB)
	require.Len(t, pb, 1)
	// BVPS = 5000/1000 = 5, PB = 10/5 = 2
	assert.InDelta(t, 2.0, pb[0].Value, 1e-9)
	assert.Equal(t, "Fairly valued (1 <= PB < 3)", pb[0].Classification)
}

func TestAnalyze_PSUsesMarketCapOverRevenue(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 12, 4)

	income := &models.StatementTable{Kind: models.StatementIncome, Rows: []models.StatementRow{
		{ReportDate: "2024-12-31", Values: map[string]float64{
			models.ColOperatingRevenue: 4000,
			models.ColNetProfitParent:  400,
			models.ColBasicEPS:         1,
		}},
	}}
	balance := &models.StatementTable{Kind: models.StatementBalance, Rows: []models.StatementRow{
		{ReportDate: "2024-12-31", Values: map[string]float64{
			models.ColShareCapital: 1000,
		}},
	}}

	result, err := svc.Analyze(context.Background(), "600519", income, balance, priceSeries(8))
	require.NoError(t, err)

	ps := filterRatios(result, models.RatioPS)
	require.Len(t, ps, 1)
	// market cap = 8*1000; PS = 8000/4000 = 2
	assert.InDelta(t, 2.0, ps[0].Value, 1e-9)
	assert.InDelta(t, 4.0, ps[0].Components["revenue_per_share"], 1e-9)
	assert.InDelta(t, 10.0, ps[0].Components["net_margin_pct"], 1e-9)
}

func TestAnalyze_PEGRequiresPositiveGrowth(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 12, 4)

	dates := []string{
		"2025-12-31", "2025-09-30", "2025-06-30", "2025-03-31",
		"2024-12-31", "2024-09-30", "2024-06-30", "2024-03-31",
		"2023-12-31",
	}
	income := &models.StatementTable{Kind: models.StatementIncome}
	profits := []float64{150, 140, 130, 120, 100, 95, 90, 85, 80}
	for i, date := range dates {
		income.Rows = append(income.Rows, models.StatementRow{ReportDate: date, Values: map[string]float64{
			models.ColBasicEPS:        2,
			models.ColNetProfitParent: profits[i],
		}})
	}

	result, err := svc.Analyze(context.Background(), "600519", income, &models.StatementTable{Kind: models.StatementBalance}, priceSeries(60))
	require.NoError(t, err)

	peg := filterRatios(result, models.RatioPEG)
	require.Len(t, peg, 9)

	// idx 0: YoY requires idx >= 4; growth undefined, PEG stays 0.
	assert.Zero(t, peg[0].Value)

	// idx 4: profit 100 vs 80 a year older: growth 25%, PE = 60/2 = 30,
	// PEG = 30/25 = 1.2.
	assert.InDelta(t, 1.2, peg[4].Value, 1e-9)
	assert.Equal(t, "Fairly valued (1 <= PEG <= 1.5)", peg[4].Classification)
}

func TestAnalyze_EVEBITDA(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 12, 4)

	income := &models.StatementTable{Kind: models.StatementIncome, Rows: []models.StatementRow{
		{ReportDate: "2024-12-31", Values: map[string]float64{
			models.ColOperatingProfit:  400,
			models.ColInterestExpenses: 100,
		}},
	}}
	balance := &models.StatementTable{Kind: models.StatementBalance, Rows: []models.StatementRow{
		{ReportDate: "2024-12-31", Values: map[string]float64{
			models.ColShareCapital:       1000,
			models.ColTotalLiabilities:   3000,
			models.ColCashAndEquivalents: 1000,
		}},
	}}

	result, err := svc.Analyze(context.Background(), "600519", income, balance, priceSeries(5))
	require.NoError(t, err)

	ev := filterRatios(result, models.RatioEVEBITDA)
	require.Len(t, ev, 1)
	// EV = 5000 + 3000 - 1000 = 7000; EBITDA = EBIT = 500
	assert.InDelta(t, 14.0, ev[0].Value, 1e-9)
	assert.Equal(t, "Elevated (10 <= EV/EBITDA < 15)", ev[0].Classification)
}

func TestAnalyze_DepreciationFallbackEstimate(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 12, 4)

	income := &models.StatementTable{Kind: models.StatementIncome, Rows: []models.StatementRow{
		{ReportDate: "2024-12-31", Values: map[string]float64{models.ColOperatingProfit: 400}},
		{ReportDate: "2024-09-30", Values: map[string]float64{models.ColOperatingProfit: 380}},
	}}
	balance := &models.StatementTable{Kind: models.StatementBalance, Rows: []models.StatementRow{
		{ReportDate: "2024-12-31", Values: map[string]float64{
			models.ColShareCapital:            1000,
			models.ColAccumulatedDepreciation: 400,
		}},
		{ReportDate: "2024-09-30", Values: map[string]float64{
			models.ColShareCapital: 1000,
		}},
	}}

	result, err := svc.Analyze(context.Background(), "600519", income, balance, priceSeries(5))
	require.NoError(t, err)

	ev := filterRatios(result, models.RatioEVEBITDA)
	require.Len(t, ev, 2)
	// Newest period estimates depreciation at 25% of the accumulated
	// balance: EBITDA = 400 + 100 = 500, EV = 5000.
	assert.InDelta(t, 10.0, ev[0].Value, 1e-9)
}

func TestAnalyze_NoPriceZeroesRatios(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 12, 4)

	income := incomeRows(2, 2, 2, 2)

	result, err := svc.Analyze(context.Background(), "600519", income, &models.StatementTable{Kind: models.StatementBalance}, nil)
	require.NoError(t, err)
	assert.Zero(t, result.Price)

	pe := filterRatios(result, models.RatioPE)
	require.Len(t, pe, 4)
	assert.Zero(t, pe[0].Value)
}
