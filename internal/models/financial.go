package models

// DuPontPeriod is one period's ROE decomposition. Three-factor fields are
// always set; five-factor fields decompose the same ROE further.
type DuPontPeriod struct {
	ReportDate       string  `json:"report_date"`
	NetMarginPct     float64 `json:"net_margin_pct"`
	AssetTurnover    float64 `json:"asset_turnover"`
	EquityMultiplier float64 `json:"equity_multiplier"`
	ROEPct           float64 `json:"roe_pct"`

	TaxBurden      float64 `json:"tax_burden"`
	InterestBurden float64 `json:"interest_burden"`
	EBITMarginPct  float64 `json:"ebit_margin_pct"`

	ROECheckPct float64 `json:"roe_check_pct"` // factors multiplied back
}

// DuPontResult holds decomposition rows, newest first.
type DuPontResult struct {
	Code    string         `json:"code"`
	Periods []DuPontPeriod `json:"periods"`
}

// Latest returns the most recent period, nil when empty.
func (r *DuPontResult) Latest() *DuPontPeriod {
	if r == nil || len(r.Periods) == 0 {
		return nil
	}
	return &r.Periods[0]
}

// RatioPeriod is one period's value of a profitability ratio, with
// year-over-year and quarter-over-quarter changes in percentage points.
// YoY needs a period four quarters older, QoQ one quarter older.
type RatioPeriod struct {
	ReportDate string  `json:"report_date"`
	Value      float64 `json:"value"`
	YoYChange  float64 `json:"yoy_change"`
	HasYoY     bool    `json:"has_yoy"`
	QoQChange  float64 `json:"qoq_change"`
	HasQoQ     bool    `json:"has_qoq"`
}

// ProfitabilityResult holds the five ratio series, newest first.
type ProfitabilityResult struct {
	Code        string        `json:"code"`
	GrossMargin []RatioPeriod `json:"gross_margin"`
	NetMargin   []RatioPeriod `json:"net_margin"`
	ROE         []RatioPeriod `json:"roe"`
	ROA         []RatioPeriod `json:"roa"`
	ROIC        []RatioPeriod `json:"roic"`
}

// Valuation ratio names used in ValuationResult.Ratios.
const (
	RatioPE       = "pe"
	RatioPB       = "pb"
	RatioPS       = "ps"
	RatioPEG      = "peg"
	RatioEVEBITDA = "ev_ebitda"
)

// ValuationRatios lists the ratio families in report order.
var ValuationRatios = []string{RatioPE, RatioPB, RatioPS, RatioPEG, RatioEVEBITDA}

// ValuationResult holds the price-based ratios computed at the run's
// price snapshot.
type ValuationResult struct {
	Code      string         `json:"code"`
	Price     float64        `json:"price"`
	PriceDate string         `json:"price_date"`
	Ratios    []MetricResult `json:"ratios"`
}

// Ratio returns the named ratio, nil when absent.
func (r *ValuationResult) Ratio(name string) *MetricResult {
	if r == nil {
		return nil
	}
	for i := range r.Ratios {
		if r.Ratios[i].Metric == name {
			return &r.Ratios[i]
		}
	}
	return nil
}

// OCFQualityPeriod is one period's operating-cash-flow quality check.
type OCFQualityPeriod struct {
	ReportDate string  `json:"report_date"`
	OCF        float64 `json:"ocf"`
	NetProfit  float64 `json:"net_profit"`
	Ratio      float64 `json:"ratio"`
	Accruals   float64 `json:"accruals"`
	AccrualPct float64 `json:"accrual_pct"`
	OCFYoYPct  float64 `json:"ocf_yoy_pct"`
	HasYoY     bool    `json:"has_yoy"`
	Quality    string  `json:"quality"`
}

// FCFPeriod is one period's free cash flow.
type FCFPeriod struct {
	ReportDate  string  `json:"report_date"`
	FCF         float64 `json:"fcf"`
	OCF         float64 `json:"ocf"`
	Capex       float64 `json:"capex"`
	NetProfit   float64 `json:"net_profit"`
	FCFToProfit float64 `json:"fcf_to_profit"`
	YoYPct      float64 `json:"yoy_pct"`
	HasYoY      bool    `json:"has_yoy"`
}

// AdequacyWindow is a rolling cash-flow adequacy window summed over up to
// twelve periods, stepping four periods at a time.
type AdequacyWindow struct {
	EndDate           string  `json:"end_date"`
	StartDate         string  `json:"start_date"`
	Periods           int     `json:"periods"`
	OCFSum            float64 `json:"ocf_sum"`
	CapexSum          float64 `json:"capex_sum"`
	DividendSum       float64 `json:"dividend_sum"`
	InventoryIncrease float64 `json:"inventory_increase"`
	Ratio             float64 `json:"ratio"`
	Level             string  `json:"level"`
}

// CCCPeriod is one period's cash conversion cycle, in days.
type CCCPeriod struct {
	ReportDate string  `json:"report_date"`
	DIO        float64 `json:"dio"`
	DSO        float64 `json:"dso"`
	DPO        float64 `json:"dpo"`
	CCC        float64 `json:"ccc"`
	YoYDays    float64 `json:"yoy_days"`
	HasYoY     bool    `json:"has_yoy"`
}

// CashFlowResult holds the cash-flow category output, newest first.
type CashFlowResult struct {
	Code     string             `json:"code"`
	Quality  []OCFQualityPeriod `json:"quality"`
	FCF      []FCFPeriod        `json:"fcf"`
	Adequacy []AdequacyWindow   `json:"adequacy"`
	CCC      []CCCPeriod        `json:"ccc"`
}
