package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatementTable_SortDescending(t *testing.T) {
	table := &StatementTable{Rows: []StatementRow{
		{ReportDate: "2024-03-31"},
		{ReportDate: "2024-09-30"},
		{ReportDate: "2024-06-30"},
	}}
	table.SortDescending()

	assert.Equal(t, "2024-09-30", table.Rows[0].ReportDate)
	assert.Equal(t, "2024-06-30", table.Rows[1].ReportDate)
	assert.Equal(t, "2024-03-31", table.Rows[2].ReportDate)

	table.SortAscending()
	assert.Equal(t, "2024-03-31", table.Rows[0].ReportDate)

	var nilTable *StatementTable
	assert.NotPanics(t, func() { nilTable.SortDescending() })
}

func TestStatementTable_Window(t *testing.T) {
	table := &StatementTable{Rows: []StatementRow{
		{ReportDate: "2024-09-30"},
		{ReportDate: "2024-06-30"},
		{ReportDate: "2024-03-31"},
	}}

	win := table.Window(2)
	require.Len(t, win.Rows, 2)
	assert.Equal(t, "2024-09-30", win.Rows[0].ReportDate)

	// Asking for more rows than exist returns the table unchanged.
	assert.Same(t, table, table.Window(5))
	assert.Same(t, table, table.Window(0))

	var nilTable *StatementTable
	assert.Nil(t, nilTable.Window(2))
}

func TestStatementRow_Lookup(t *testing.T) {
	row := StatementRow{Values: map[string]float64{ColOperatingRevenue: 1000}}

	v, ok := row.Lookup(ColOperatingRevenue)
	assert.True(t, ok)
	assert.Equal(t, 1000.0, v)

	_, ok = row.Lookup(ColNetProfit)
	assert.False(t, ok)
	assert.Equal(t, 0.0, row.Value(ColNetProfit))
}

func TestStatementTable_EmptyAndLen(t *testing.T) {
	var nilTable *StatementTable
	assert.True(t, nilTable.Empty())
	assert.Equal(t, 0, nilTable.Len())

	table := &StatementTable{Rows: []StatementRow{{ReportDate: "2024-09-30"}}}
	assert.False(t, table.Empty())
	assert.Equal(t, 1, table.Len())
}

func TestAnalysisState_StatementNeverNil(t *testing.T) {
	state := &AnalysisState{Code: "600519"}

	table := state.Statement(StatementIncome)
	require.NotNil(t, table)
	assert.True(t, table.Empty())
	assert.Equal(t, "600519", table.Code)
	assert.Equal(t, StatementIncome, table.Kind)

	loaded := &StatementTable{Code: "600519", Kind: StatementBalance, Rows: []StatementRow{{ReportDate: "2024-09-30"}}}
	state.Statements = map[StatementKind]*StatementTable{StatementBalance: loaded}
	assert.Same(t, loaded, state.Statement(StatementBalance))
}
