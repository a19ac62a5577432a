package loader

import "github.com/lishuzheng01/stockfin/internal/models"

// Column translation maps, Chinese provider headers to the canonical
// English names the metric engine expects. Untranslated columns are
// dropped during normalization.

var incomeColumns = map[string]string{
	"报告日":  "Report Date",
	"公告日期": "Announcement Date",
	"更新日期": "Update Date",
	"数据源":  "Data Source",
	"是否审计": "Audit Status",
	"币种":   "Currency",
	"类型":   "Report Type",

	"营业总收入":                "Total Operating Revenue",
	"营业收入":                 "Operating Revenue",
	"利息收入":                 "Interest Income",
	"已赚保费":                 "Earned Premiums",
	"手续费及佣金收入":             "Fee and Commission Income",
	"房地产销售收入":              "Real Estate Sales Revenue",
	"其他业务收入":               "Other Business Revenue",
	"营业外收入":                "Non-operating Income",
	"投资收益":                 "Investment Income",
	"对联营企业和合营企业的投资收益":      "Income from Associates and JVs",
	"汇兑收益":                 "Exchange Gains",
	"净敞口套期收益":              "Net Exposure Hedging Gains",
	"公允价值变动收益":             "Fair Value Change Income",
	"期货损益":                 "Futures Profit/Loss",
	"托管收益":                 "Custodian Income",
	"补贴收入":                 "Subsidy Income",
	"其他收益":                 "Other Income",
	"资产处置收益":               "Asset Disposal Income",
	"非流动资产处置利得":            "Gain on Disposal of Non-current Assets",

	"营业总成本":       "Total Operating Costs",
	"营业成本":        "Operating Costs",
	"手续费及佣金支出":    "Fee and Commission Expenses",
	"房地产销售成本":     "Real Estate Sales Costs",
	"退保金":         "Surrender Value",
	"赔付支出净额":      "Net Claim Expenses",
	"提取保险合同准备金净额": "Net Provision for Insurance Contracts",
	"保单红利支出":      "Policyholder Dividend Expenses",
	"分保费用":        "Reinsurance Expenses",
	"其他业务成本":      "Other Business Costs",
	"营业税金及附加":     "Taxes and Surcharges",
	"研发费用":        "R&D Expenses",
	"销售费用":        "Selling Expenses",
	"管理费用":        "Administrative Expenses",
	"财务费用":        "Financial Expenses",
	"利息费用":        "Interest Expenses",
	"利息支出":        "Interest Payables",
	"折旧费用":        "Depreciation Expenses",
	"营业外支出":       "Non-operating Expenses",
	"非流动资产处置损失":   "Loss on Disposal of Non-current Assets",
	"所得税费用":       "Income Tax Expenses",

	"资产减值损失":  "Asset Impairment Loss",
	"信用减值损失":  "Credit Impairment Loss",
	"未确认投资损失": "Unrecognized Investment Loss",

	"其他业务利润":          "Other Business Profit",
	"营业利润":            "Operating Profit",
	"利润总额":            "Total Profit",
	"净利润":             "Net Profit",
	"持续经营净利润":         "Net Profit from Continuing Operations",
	"终止经营净利润":         "Net Profit from Discontinued Operations",
	"归属于母公司所有者的净利润":   "Net Profit Attributable to Parent",
	"被合并方在合并前实现净利润":   "Net Profit of Merged Party Before Merger",
	"少数股东损益":          "Minority Interest Income",
	"基本每股收益":          "Basic EPS",
	"稀释每股收益":          "Diluted EPS",

	"其他综合收益":            "Other Comprehensive Income (OCI)",
	"归属于母公司所有者的其他综合收益": "OCI Attributable to Parent",
	"归属于少数股东的其他综合收益":   "OCI Attributable to Minority Shareholders",
	"综合收益总额":            "Total Comprehensive Income",
	"归属于母公司所有者的综合收益总额": "Total Comp. Income Attrib. to Parent",
	"归属于少数股东的综合收益总额":   "Total Comp. Income Attrib. to Minority",

	"其他": "Others",
}

var balanceColumns = map[string]string{
	"报告日":         "Report Date",
	"Report Date": "Report Date",

	"货币资金":        "Cash and Cash Equivalents",
	"结算备付金":       "Provision for Settlement",
	"拆出资金":        "Funds Lent",
	"交易性金融资产":     "Trading Financial Assets",
	"衍生金融资产":      "Derivative Financial Assets",
	"应收票据及应收账款":   "Notes and Accounts Receivable",
	"应收票据":        "Notes Receivable",
	"应收账款":        "Accounts Receivable",
	"应收款项融资":      "Accounts Receivable Financing",
	"预付款项":        "Prepayments",
	"应收股利":        "Dividends Receivable",
	"应收利息":        "Interest Receivable",
	"其他应收款":       "Other Receivables",
	"其他应收款(合计)":   "Total Other Receivables",
	"存货":          "Inventories",
	"待摊费用":        "Deferred Expenses",
	"一年内到期的非流动资产": "Non-current Assets Due within One Year",
	"其他流动资产":      "Other Current Assets",
	"流动资产合计":      "Total Current Assets",

	"发放贷款及垫款":  "Loans and Advances",
	"债权投资":     "Debt Investment",
	"其他债权投资":   "Other Debt Investment",
	"可供出售金融资产": "Available-for-Sale Financial Assets",
	"长期股权投资":   "Long-term Equity Investments",
	"投资性房地产":   "Investment Property",
	"长期应收款":    "Long-term Receivables",
	"其他权益工具投资": "Other Equity Instrument Investments",
	"其他非流动金融资产": "Other Non-current Financial Assets",
	"固定资产原值":   "Cost of Fixed Assets",
	"累计折旧":     "Accumulated Depreciation",
	"固定资产净值":   "Net Value of Fixed Assets",
	"固定资产减值准备": "Impairment Provision for Fixed Assets",
	"在建工程合计":   "Total Construction in Progress",
	"在建工程":     "Construction in Progress",
	"工程物资":     "Engineering Materials",
	"固定资产净额":   "Net Fixed Assets",
	"固定资产清理":   "Disposal of Fixed Assets",
	"使用权资产":    "Right-of-Use Assets",
	"无形资产":     "Intangible Assets",
	"开发支出":     "Development Expenditures",
	"商誉":       "Goodwill",
	"长期待摊费用":   "Long-term Deferred Expenses",
	"递延所得税资产":  "Deferred Tax Assets",
	"其他非流动资产":  "Other Non-current Assets",
	"非流动资产合计":  "Total Non-current Assets",
	"资产总计":     "Total Assets",

	"短期借款":         "Short-term Borrowings",
	"向中央银行借款":      "Borrowings from Central Bank",
	"拆入资金":         "Funds Borrowed",
	"交易性金融负债":      "Trading Financial Liabilities",
	"衍生金融负债":       "Derivative Financial Liabilities",
	"应付票据及应付账款":    "Notes and Accounts Payable",
	"应付票据":         "Notes Payable",
	"应付账款":         "Accounts Payable",
	"预收款项":         "Advances from Customers",
	"合同负债":         "Contract Liabilities",
	"应付职工薪酬":       "Employee Benefits Payable",
	"应交税费":         "Taxes Payable",
	"应付利息":         "Interest Payable",
	"应付股利":         "Dividends Payable",
	"其他应付款":        "Other Payables",
	"其他应付款合计":      "Total Other Payables",
	"一年内到期的非流动负债":  "Non-current Liabilities Due within One Year",
	"其他流动负债":       "Other Current Liabilities",
	"流动负债合计":       "Total Current Liabilities",
	"长期借款":         "Long-term Borrowings",
	"应付债券":         "Bonds Payable",
	"租赁负债":         "Lease Liabilities",
	"长期应付款":        "Long-term Payables",
	"长期应付款合计":      "Total Long-term Payables",
	"专项应付款":        "Special Payables",
	"预计非流动负债":      "Estimated Non-current Liabilities",
	"长期递延收益":       "Long-term Deferred Income",
	"递延所得税负债":      "Deferred Tax Liabilities",
	"其他非流动负债":      "Other Non-current Liabilities",
	"非流动负债合计":      "Total Non-current Liabilities",
	"负债合计":         "Total Liabilities",

	"实收资本(或股本)":          "Paid-in Capital (or Share Capital)",
	"其他权益工具":             "Other Equity Instruments",
	"资本公积":               "Capital Reserve",
	"减:库存股":              "Less: Treasury Stock",
	"专项储备":               "Special Reserve",
	"盈余公积":               "Surplus Reserve",
	"一般风险准备":             "General Risk Reserve",
	"未分配利润":              "Retained Earnings",
	"外币报表折算差额":           "Foreign Currency Translation Differences",
	"归属于母公司股东权益合计":       "Total Equity Attributable to Shareholders of the Parent Company",
	"少数股东权益":             "Minority Interest",
	"所有者权益(或股东权益)合计":     "Total Owner's Equity (or Shareholders' Equity)",
	"负债和所有者权益(或股东权益)总计":  "Total Liabilities and Owner's Equity (or Shareholders' Equity)",
}

var cashflowColumns = map[string]string{
	"报告日": "Report Date",

	"销售商品、提供劳务收到的现金":      "Cash Received from Sales of Goods and Rendering of Services",
	"收到的税费返还":             "Tax Refunds Received",
	"收到的其他与经营活动有关的现金":     "Other Cash Received Relating to Operating Activities",
	"经营活动现金流入小计":          "Subtotal of Cash Inflows from Operating Activities",
	"购买商品、接受劳务支付的现金":      "Cash Paid for Goods and Services",
	"支付给职工以及为职工支付的现金":     "Cash Paid to and for Employees",
	"支付的各项税费":             "Taxes Paid",
	"支付的其他与经营活动有关的现金":     "Other Cash Paid Relating to Operating Activities",
	"经营活动现金流出小计":          "Subtotal of Cash Outflows from Operating Activities",
	"经营活动产生的现金流量净额":       "Net Cash Flow from Operating Activities",

	"收回投资所收到的现金":   "Cash Received from Return of Investments",
	"取得投资收益收到的现金":  "Cash Received from Investment Income",
	"处置固定资产、无形资产和其他长期资产所收回的现金净额": "Net Cash Received from Disposal of Fixed Assets, Intangible Assets, and Other Long-term Assets",
	"处置子公司及其他营业单位收到的现金净额":         "Net Cash Received from Disposal of Subsidiaries and Other Business Units",
	"收到的其他与投资活动有关的现金":             "Other Cash Received Relating to Investing Activities",
	"投资活动现金流入小计":                  "Subtotal of Cash Inflows from Investing Activities",
	"购建固定资产、无形资产和其他长期资产所支付的现金":    "Cash Paid for Acquisition of Fixed Assets, Intangible Assets, and Other Long-term Assets",
	"购建固定资产、无形资产和其他长期资产支付的现金":     "Cash Paid for Acquisition of Fixed Assets, Intangible Assets, and Other Long-term Assets",
	"投资所支付的现金":                   "Cash Paid for Investments",
	"取得子公司及其他营业单位支付的现金净额":         "Net Cash Paid for Acquisition of Subsidiaries and Other Business Units",
	"支付的其他与投资活动有关的现金":             "Other Cash Paid Relating to Investing Activities",
	"投资活动现金流出小计":                  "Subtotal of Cash Outflows from Investing Activities",
	"投资活动产生的现金流量净额":               "Net Cash Flow from Investing Activities",

	"吸收投资收到的现金":           "Cash Received from Capital Contributions",
	"子公司吸收少数股东投资收到的现金":    "Cash Received by Subsidiaries from Minority Shareholders' Investments",
	"取得借款收到的现金":           "Cash Received from Borrowings",
	"发行债券收到的现金":           "Cash Received from Issuing Bonds",
	"收到其他与筹资活动有关的现金":      "Other Cash Received Relating to Financing Activities",
	"筹资活动现金流入小计":          "Subtotal of Cash Inflows from Financing Activities",
	"偿还债务支付的现金":           "Cash Paid for Repayment of Debts",
	"分配股利、利润或偿付利息所支付的现金":  "Cash Paid for Distribution of Dividends, Profits, or Payment of Interest",
	"子公司支付给少数股东的股利、利润":    "Dividends and Profits Paid by Subsidiaries to Minority Shareholders",
	"支付其他与筹资活动有关的现金":      "Other Cash Paid Relating to Financing Activities",
	"筹资活动现金流出小计":          "Subtotal of Cash Outflows from Financing Activities",
	"筹资活动产生的现金流量净额":       "Net Cash Flow from Financing Activities",

	"汇率变动对现金及现金等价物的影响": "Effect of Foreign Exchange Rate Changes on Cash and Cash Equivalents",
	"现金及现金等价物净增加额":     "Net Increase in Cash and Cash Equivalents",
	"期初现金及现金等价物余额":     "Opening Balance of Cash and Cash Equivalents",
	"期末现金及现金等价物余额":     "Closing Balance of Cash and Cash Equivalents",
	"现金的期末余额":          "Closing Balance of Cash",
	"现金的期初余额":          "Opening Balance of Cash",
	"现金等价物的期末余额":       "Closing Balance of Cash Equivalents",
	"现金等价物的期初余额":       "Opening Balance of Cash Equivalents",
}

var columnMaps = map[models.StatementKind]map[string]string{
	models.StatementIncome:   incomeColumns,
	models.StatementBalance:  balanceColumns,
	models.StatementCashFlow: cashflowColumns,
}

// translateColumn maps a provider header to its English name.
func translateColumn(kind models.StatementKind, column string) (string, bool) {
	m, ok := columnMaps[kind]
	if !ok {
		return "", false
	}
	en, ok := m[column]
	return en, ok
}
