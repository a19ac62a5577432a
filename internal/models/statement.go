// Package models defines the data structures shared across Stockfin services.
package models

import "sort"

// StatementKind identifies one of the three financial statements.
type StatementKind string

const (
	StatementIncome   StatementKind = "income"
	StatementBalance  StatementKind = "balance"
	StatementCashFlow StatementKind = "cashflow"
)

// StatementKinds lists all statement kinds in load order.
var StatementKinds = []StatementKind{StatementIncome, StatementBalance, StatementCashFlow}

// StatementRow holds one reporting period of a statement. Values are keyed
// by translated English column names; absent cells are absent from the map.
type StatementRow struct {
	ReportDate string             `json:"report_date"`
	Values     map[string]float64 `json:"values"`
}

// Value returns the cell value for a column, 0 when absent.
func (r *StatementRow) Value(column string) float64 {
	return r.Values[column]
}

// Lookup returns the cell value and whether the column is present.
func (r *StatementRow) Lookup(column string) (float64, bool) {
	v, ok := r.Values[column]
	return v, ok
}

// StatementTable is a normalized financial statement: English columns,
// one row per reporting period.
type StatementTable struct {
	Code    string         `json:"code"`
	Kind    StatementKind  `json:"kind"`
	Columns []string       `json:"columns"`
	Rows    []StatementRow `json:"rows"`
}

// Empty reports whether the table carries no periods.
func (t *StatementTable) Empty() bool {
	return t == nil || len(t.Rows) == 0
}

// Len returns the number of reporting periods.
func (t *StatementTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// HasColumn reports whether the table declares a column.
func (t *StatementTable) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// SortDescending orders rows newest first. Report dates are normalized
// ISO strings, so lexical order matches chronological order.
func (t *StatementTable) SortDescending() {
	if t == nil {
		return
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].ReportDate > t.Rows[j].ReportDate
	})
}

// SortAscending orders rows oldest first.
func (t *StatementTable) SortAscending() {
	if t == nil {
		return
	}
	sort.SliceStable(t.Rows, func(i, j int) bool {
		return t.Rows[i].ReportDate < t.Rows[j].ReportDate
	})
}

// Window returns a shallow copy limited to the first n rows.
func (t *StatementTable) Window(n int) *StatementTable {
	if t == nil || n <= 0 || n >= len(t.Rows) {
		return t
	}
	out := *t
	out.Rows = t.Rows[:n]
	return &out
}
