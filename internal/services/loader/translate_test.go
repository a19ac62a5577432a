package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lishuzheng01/stockfin/internal/models"
)

func TestTranslateColumn_KnownColumns(t *testing.T) {
	cases := []struct {
		kind   models.StatementKind
		cn, en string
	}{
		{models.StatementIncome, "营业收入", models.ColOperatingRevenue},
		{models.StatementIncome, "基本每股收益", models.ColBasicEPS},
		{models.StatementIncome, "归属于母公司所有者的净利润", models.ColNetProfitParent},
		{models.StatementBalance, "资产总计", models.ColTotalAssets},
		{models.StatementBalance, "实收资本(或股本)", models.ColShareCapital},
		{models.StatementBalance, "所有者权益(或股东权益)合计", models.ColTotalOwnersEquity},
		{models.StatementCashFlow, "经营活动产生的现金流量净额", models.ColOperatingCashFlow},
		{models.StatementCashFlow, "分配股利、利润或偿付利息所支付的现金", models.ColDividendsPaid},
	}
	for _, tc := range cases {
		en, ok := translateColumn(tc.kind, tc.cn)
		require.True(t, ok, "column %q", tc.cn)
		assert.Equal(t, tc.en, en)
	}
}

func TestTranslateColumn_CapexSpellingVariants(t *testing.T) {
	// Providers use two spellings for the capex line; both map to the
	// same English column.
	a, ok := translateColumn(models.StatementCashFlow, "购建固定资产、无形资产和其他长期资产支付的现金")
	require.True(t, ok)
	b, ok := translateColumn(models.StatementCashFlow, "购建固定资产、无形资产和其他长期资产所支付的现金")
	require.True(t, ok)
	assert.Equal(t, a, b)
	assert.Equal(t, models.ColCapex, a)
}

func TestTranslateColumn_UnknownColumn(t *testing.T) {
	_, ok := translateColumn(models.StatementIncome, "某个未收录的列")
	assert.False(t, ok)
}

func TestTranslateColumn_KindScoped(t *testing.T) {
	// Balance-sheet columns do not leak into income-statement lookups.
	_, ok := translateColumn(models.StatementIncome, "资产总计")
	assert.False(t, ok)
}

func TestRequiredColumns_CoveredByTranslations(t *testing.T) {
	// Every required English column must be reachable through some
	// provider translation for its statement kind.
	for kind, cols := range models.RequiredColumns {
		reachable := make(map[string]bool)
		for _, en := range columnMaps[kind] {
			reachable[en] = true
		}
		for _, col := range cols {
			assert.True(t, reachable[col], "%s: %s", kind, col)
		}
	}
}
