package dupont

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/models"
)

func testTable(kind models.StatementKind, rows ...models.StatementRow) *models.StatementTable {
	return &models.StatementTable{Code: "000001", Kind: kind, Rows: rows}
}

func row(date string, values map[string]float64) models.StatementRow {
	return models.StatementRow{ReportDate: date, Values: values}
}

func TestAnalyze_ThreeFactorDecomposition(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 12)

	income := testTable(models.StatementIncome,
		row("2024-12-31", map[string]float64{
			models.ColNetProfitParent:   100,
			models.ColOperatingRevenue:  1000,
			models.ColTotalProfit:       130,
			models.ColIncomeTaxExpenses: 30,
			models.ColInterestExpenses:  20,
		}),
	)
	balance := testTable(models.StatementBalance,
		row("2024-12-31", map[string]float64{
			models.ColTotalAssets:       2000,
			models.ColTotalEquityParent: 800,
		}),
	)

	result, err := svc.Analyze(context.Background(), "000001", income, balance)
	require.NoError(t, err)
	require.Len(t, result.Periods, 1)

	p := result.Periods[0]
	assert.InDelta(t, 10.0, p.NetMarginPct, 1e-9)
	assert.InDelta(t, 0.5, p.AssetTurnover, 1e-9)
	assert.InDelta(t, 2.5, p.EquityMultiplier, 1e-9)
	assert.InDelta(t, 12.5, p.ROEPct, 1e-9)

	// ROE equals the product of the three factors.
	assert.InDelta(t, p.ROEPct, p.NetMarginPct/100*p.AssetTurnover*p.EquityMultiplier*100, 1e-6)
}

func TestAnalyze_FiveFactorProductMatchesROE(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 12)

	income := testTable(models.StatementIncome,
		row("2024-12-31", map[string]float64{
			models.ColNetProfitParent:   100,
			models.ColOperatingRevenue:  1000,
			models.ColTotalProfit:       130,
			models.ColIncomeTaxExpenses: 30,
			models.ColInterestExpenses:  20,
		}),
	)
	balance := testTable(models.StatementBalance,
		row("2024-12-31", map[string]float64{
			models.ColTotalAssets:       2000,
			models.ColTotalEquityParent: 800,
		}),
	)

	result, err := svc.Analyze(context.Background(), "000001", income, balance)
	require.NoError(t, err)
	require.Len(t, result.Periods, 1)

	p := result.Periods[0]
	// EBIT = 130 + 20; tax burden = 100/130; interest burden = 130/150.
	assert.InDelta(t, 100.0/130.0, p.TaxBurden, 1e-9)
	assert.InDelta(t, 130.0/150.0, p.InterestBurden, 1e-9)
	assert.InDelta(t, 15.0, p.EBITMarginPct, 1e-9)

	// The five-factor product reassembles net-margin ROE: the five
	// factors multiply back to net profit over average equity.
	assert.InDelta(t, p.ROEPct, p.ROECheckPct, 1e-6)
}

func TestAnalyze_AveragesUsePriorPeriod(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 12)

	income := testTable(models.StatementIncome,
		row("2024-12-31", map[string]float64{
			models.ColNetProfitParent:  120,
			models.ColOperatingRevenue: 1000,
			models.ColTotalProfit:      150,
		}),
		row("2024-09-30", map[string]float64{
			models.ColNetProfitParent:  90,
			models.ColOperatingRevenue: 900,
			models.ColTotalProfit:      110,
		}),
	)
	balance := testTable(models.StatementBalance,
		row("2024-12-31", map[string]float64{
			models.ColTotalAssets:       2200,
			models.ColTotalEquityParent: 900,
		}),
		row("2024-09-30", map[string]float64{
			models.ColTotalAssets:       1800,
			models.ColTotalEquityParent: 700,
		}),
	)

	result, err := svc.Analyze(context.Background(), "000001", income, balance)
	require.NoError(t, err)
	require.Len(t, result.Periods, 2)

	// avg assets (2200+1800)/2, avg equity (900+700)/2
	p := result.Periods[0]
	assert.InDelta(t, 1000.0/2000.0, p.AssetTurnover, 1e-9)
	assert.InDelta(t, 120.0/800.0*100, p.ROEPct, 1e-9)

	// The oldest period has no older sibling: period-end values.
	last := result.Periods[1]
	assert.InDelta(t, 900.0/1800.0, last.AssetTurnover, 1e-9)
}

func TestAnalyze_SkipsZeroDenominators(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 12)

	income := testTable(models.StatementIncome,
		row("2024-12-31", map[string]float64{models.ColOperatingRevenue: 0}),
		row("2024-09-30", map[string]float64{
			models.ColOperatingRevenue: 500,
			models.ColNetProfitParent:  50,
			models.ColTotalProfit:      60,
		}),
	)
	balance := testTable(models.StatementBalance,
		row("2024-12-31", map[string]float64{
			models.ColTotalAssets:       1000,
			models.ColTotalEquityParent: 400,
		}),
		row("2024-09-30", map[string]float64{
			models.ColTotalAssets:       1000,
			models.ColTotalEquityParent: 400,
		}),
	)

	result, err := svc.Analyze(context.Background(), "000001", income, balance)
	require.NoError(t, err)
	require.Len(t, result.Periods, 1)
	assert.Equal(t, "2024-09-30", result.Periods[0].ReportDate)
}

func TestAnalyze_NegativeTotalProfitEstimatesTaxBurden(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 12)

	income := testTable(models.StatementIncome,
		row("2024-12-31", map[string]float64{
			models.ColNetProfitParent:   -40,
			models.ColOperatingRevenue:  1000,
			models.ColTotalProfit:       -50,
			models.ColIncomeTaxExpenses: 10,
		}),
	)
	balance := testTable(models.StatementBalance,
		row("2024-12-31", map[string]float64{
			models.ColTotalAssets:       2000,
			models.ColTotalEquityParent: 800,
		}),
	)

	result, err := svc.Analyze(context.Background(), "000001", income, balance)
	require.NoError(t, err)
	require.Len(t, result.Periods, 1)

	// tax rate 10/-50 = -0.2; burden = 1 - (-0.2)
	assert.InDelta(t, 1.2, result.Periods[0].TaxBurden, 1e-9)
	// EBIT -50 <= 0: interest burden defaults to 1.
	assert.InDelta(t, 1.0, result.Periods[0].InterestBurden, 1e-9)
}

func TestAnalyze_WindowCapsPeriods(t *testing.T) {
	svc := NewService(common.NewSilentLogger(), 2)

	rows := func(n int) []models.StatementRow {
		var out []models.StatementRow
		dates := []string{"2024-12-31", "2024-09-30", "2024-06-30", "2024-03-31"}
		for i := 0; i < n; i++ {
			out = append(out, row(dates[i], map[string]float64{
				models.ColNetProfitParent:   10,
				models.ColOperatingRevenue:  100,
				models.ColTotalProfit:       12,
				models.ColTotalAssets:       200,
				models.ColTotalEquityParent: 80,
			}))
		}
		return out
	}

	income := &models.StatementTable{Kind: models.StatementIncome, Rows: rows(4)}
	balance := &models.StatementTable{Kind: models.StatementBalance, Rows: rows(4)}

	result, err := svc.Analyze(context.Background(), "000001", income, balance)
	require.NoError(t, err)
	assert.Len(t, result.Periods, 2)
}
