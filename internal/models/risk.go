package models

// Altman Z-Score zone labels.
const (
	ZoneSafe     = "Safe Zone"
	ZoneGrey     = "Grey Zone"
	ZoneDistress = "Distress Zone"
)

// AltmanPeriod is one period's Z-Score decomposition.
type AltmanPeriod struct {
	ReportDate string  `json:"report_date"`
	X1         float64 `json:"x1"` // working capital / total assets
	X2         float64 `json:"x2"` // retained earnings / total assets
	X3         float64 `json:"x3"` // EBIT / total assets
	X4         float64 `json:"x4"` // equity / total liabilities
	X5         float64 `json:"x5"` // revenue / total assets
	ZScore     float64 `json:"z_score"`
	RiskLevel  string  `json:"risk_level"`

	WorkingCapital   float64 `json:"working_capital"`
	RetainedEarnings float64 `json:"retained_earnings"`
	EBIT             float64 `json:"ebit"`
	TotalEquity      float64 `json:"total_equity"`
	TotalLiabilities float64 `json:"total_liabilities"`
	Revenue          float64 `json:"revenue"`
	TotalAssets      float64 `json:"total_assets"`
}

// AltmanResult holds Z-Score rows, newest first.
type AltmanResult struct {
	Code    string         `json:"code"`
	Periods []AltmanPeriod `json:"periods"`
}

// Latest returns the most recent period, nil when empty.
func (r *AltmanResult) Latest() *AltmanPeriod {
	if r == nil || len(r.Periods) == 0 {
		return nil
	}
	return &r.Periods[0]
}

// BeneishPeriod is one period's M-Score decomposition. Rows are computed
// against the immediately older period.
type BeneishPeriod struct {
	ReportDate string   `json:"report_date"`
	DSRI       float64  `json:"dsri"`
	GMI        float64  `json:"gmi"`
	AQI        float64  `json:"aqi"`
	SGI        float64  `json:"sgi"`
	DEPI       float64  `json:"depi"`
	SGAI       float64  `json:"sgai"`
	TATA       float64  `json:"tata"`
	LVGI       float64  `json:"lvgi"`
	MScore     float64  `json:"m_score"`
	HighRisk   bool     `json:"high_risk"`
	Warnings   []string `json:"warnings,omitempty"`
}

// BeneishResult holds M-Score rows, oldest first.
type BeneishResult struct {
	Code    string          `json:"code"`
	Periods []BeneishPeriod `json:"periods"`
}

// Latest returns the most recent period, nil when empty.
func (r *BeneishResult) Latest() *BeneishPeriod {
	if r == nil || len(r.Periods) == 0 {
		return nil
	}
	return &r.Periods[len(r.Periods)-1]
}

// BenfordDigit is the observed vs expected count for one leading digit.
type BenfordDigit struct {
	Digit    int     `json:"digit"`
	Observed int     `json:"observed"`
	Expected float64 `json:"expected"`
}

// BenfordCheck is a leading-digit distribution check over all numeric
// cells of one statement.
type BenfordCheck struct {
	Statement  StatementKind  `json:"statement"`
	SampleSize int            `json:"sample_size"`
	Digits     []BenfordDigit `json:"digits"`
}

// MaxDeviation returns the largest |observed - expected| across digits.
func (c *BenfordCheck) MaxDeviation() float64 {
	max := 0.0
	for _, d := range c.Digits {
		dev := float64(d.Observed) - d.Expected
		if dev < 0 {
			dev = -dev
		}
		if dev > max {
			max = dev
		}
	}
	return max
}

// RiskAnalysis aggregates the risk category output.
type RiskAnalysis struct {
	Code    string          `json:"code"`
	Altman  *AltmanResult   `json:"altman,omitempty"`
	Beneish *BeneishResult  `json:"beneish,omitempty"`
	Benford []*BenfordCheck `json:"benford,omitempty"`
}
