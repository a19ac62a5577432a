package models

// Translated statement column names referenced by the metric engine.
// The loader guarantees these spellings after translation.
const (
	ColReportDate = "Report Date"

	// Income statement
	ColOperatingRevenue   = "Operating Revenue"
	ColOperatingCosts     = "Operating Costs"
	ColOperatingProfit    = "Operating Profit"
	ColTotalProfit        = "Total Profit"
	ColNetProfit          = "Net Profit"
	ColNetProfitParent    = "Net Profit Attributable to Parent"
	ColIncomeTaxExpenses  = "Income Tax Expenses"
	ColInterestExpenses   = "Interest Expenses"
	ColFinancialExpenses  = "Financial Expenses"
	ColSellingExpenses    = "Selling Expenses"
	ColAdminExpenses      = "Administrative Expenses"
	ColBasicEPS           = "Basic EPS"

	// Balance sheet
	ColTotalAssets             = "Total Assets"
	ColTotalLiabilities        = "Total Liabilities"
	ColTotalCurrentAssets      = "Total Current Assets"
	ColTotalCurrentLiabilities = "Total Current Liabilities"
	ColTotalNonCurrentLiab     = "Total Non-current Liabilities"
	ColRetainedEarnings        = "Retained Earnings"
	ColTotalEquityParent       = "Total Equity Attributable to Shareholders of the Parent Company"
	ColTotalOwnersEquity       = "Total Owner's Equity (or Shareholders' Equity)"
	ColAccountsReceivable      = "Accounts Receivable"
	ColAccountsPayable         = "Accounts Payable"
	ColInventories             = "Inventories"
	ColNetFixedAssets          = "Net Fixed Assets"
	ColCostOfFixedAssets       = "Cost of Fixed Assets"
	ColAccumulatedDepreciation = "Accumulated Depreciation"
	ColCashAndEquivalents      = "Cash and Cash Equivalents"
	ColShortTermBorrowings     = "Short-term Borrowings"
	ColLongTermBorrowings      = "Long-term Borrowings"
	ColShareCapital            = "Paid-in Capital (or Share Capital)"

	// Cash flow statement
	ColOperatingCashFlow = "Net Cash Flow from Operating Activities"
	ColCapex             = "Cash Paid for Acquisition of Fixed Assets, Intangible Assets, and Other Long-term Assets"
	ColDividendsPaid     = "Cash Paid for Distribution of Dividends, Profits, or Payment of Interest"
	ColDepreciation      = "Depreciation Expenses"
)

// RequiredColumns lists the columns each statement kind must carry for the
// metric engine to produce meaningful output. Missing columns downgrade to
// a warning, never a load failure.
var RequiredColumns = map[StatementKind][]string{
	StatementIncome:   {ColOperatingRevenue, ColNetProfitParent},
	StatementBalance:  {ColTotalAssets, ColTotalEquityParent},
	StatementCashFlow: {ColOperatingCashFlow},
}
