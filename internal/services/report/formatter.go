package report

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/lishuzheng01/stockfin/internal/common"
	"github.com/lishuzheng01/stockfin/internal/models"
)

const (
	ruleHeavy = "================================================================================"
	ruleLight = "--------------------------------------------------"
)

func writeHeader(sb *strings.Builder, title, code string, generated time.Time) {
	sb.WriteString(ruleHeavy + "\n")
	sb.WriteString(title + "\n")
	sb.WriteString(fmt.Sprintf("Stock Code: %s\n", code))
	sb.WriteString(fmt.Sprintf("Generated: %s\n", generated.Format("2006-01-02 15:04:05")))
	sb.WriteString(ruleHeavy + "\n\n")
}

func writeSection(sb *strings.Builder, name string) {
	sb.WriteString("[" + name + "]\n")
	sb.WriteString(ruleLight + "\n")
}

// seriesStats are simple trend statistics over a value series.
type seriesStats struct {
	Mean, Max, Min, Std float64
}

func computeStats(values []float64) seriesStats {
	if len(values) == 0 {
		return seriesStats{}
	}
	st := seriesStats{Max: values[0], Min: values[0]}
	sum := 0.0
	for _, v := range values {
		sum += v
		if v > st.Max {
			st.Max = v
		}
		if v < st.Min {
			st.Min = v
		}
	}
	st.Mean = sum / float64(len(values))
	variance := 0.0
	for _, v := range values {
		d := v - st.Mean
		variance += d * d
	}
	st.Std = math.Sqrt(variance / float64(len(values)))
	return st
}

func writeStats(sb *strings.Builder, label string, st seriesStats, decimals int) {
	sb.WriteString(fmt.Sprintf("%s: mean=%s max=%s min=%s std=%s\n",
		label,
		common.FormatRatio(st.Mean, decimals), common.FormatRatio(st.Max, decimals),
		common.FormatRatio(st.Min, decimals), common.FormatRatio(st.Std, decimals)))
}

// formatRiskReport renders the Altman, Beneish, and Benford sections.
func formatRiskReport(state *models.AnalysisState) string {
	var sb strings.Builder
	writeHeader(&sb, "Financial Risk Analysis Report", state.Code, state.GeneratedAt)

	formatAltman(&sb, state.Risk)
	formatBeneish(&sb, state.Risk)
	formatBenford(&sb, state.Risk)

	writeDisclaimer(&sb)
	return sb.String()
}

func formatAltman(sb *strings.Builder, risk *models.RiskAnalysis) {
	writeSection(sb, "Altman Z-Score")
	sb.WriteString("Z = 1.2*X1 + 1.4*X2 + 3.3*X3 + 0.6*X4 + 1.0*X5\n")
	sb.WriteString("Z > 2.99: Safe Zone | 1.81 < Z <= 2.99: Grey Zone | Z <= 1.81: Distress Zone\n\n")

	if risk == nil || risk.Altman == nil || len(risk.Altman.Periods) == 0 {
		sb.WriteString("No data available.\n\n")
		return
	}

	latest := risk.Altman.Latest()
	sb.WriteString("Latest Period\n")
	sb.WriteString(fmt.Sprintf("  Report Date: %s\n", latest.ReportDate))
	sb.WriteString(fmt.Sprintf("  Z-Score: %s\n", common.FormatRatio(latest.ZScore, 4)))
	sb.WriteString(fmt.Sprintf("  Risk Level: %s\n", latest.RiskLevel))
	sb.WriteString(fmt.Sprintf("  X1 (Working Capital / Assets): %s\n", common.FormatRatio(latest.X1, 4)))
	sb.WriteString(fmt.Sprintf("  X2 (Retained Earnings / Assets): %s\n", common.FormatRatio(latest.X2, 4)))
	sb.WriteString(fmt.Sprintf("  X3 (EBIT / Assets): %s\n", common.FormatRatio(latest.X3, 4)))
	sb.WriteString(fmt.Sprintf("  X4 (Equity / Liabilities): %s\n", common.FormatRatio(latest.X4, 4)))
	sb.WriteString(fmt.Sprintf("  X5 (Revenue / Assets): %s\n\n", common.FormatRatio(latest.X5, 4)))

	var zs []float64
	zones := map[string]int{}
	for _, p := range risk.Altman.Periods {
		zs = append(zs, p.ZScore)
		zones[p.RiskLevel]++
	}
	writeStats(sb, "Z-Score trend", computeStats(zs), 4)
	sb.WriteString(fmt.Sprintf("Zone distribution: Safe=%d Grey=%d Distress=%d (of %d)\n\n",
		zones[models.ZoneSafe], zones[models.ZoneGrey], zones[models.ZoneDistress], len(risk.Altman.Periods)))

	sb.WriteString("History (newest first)\n")
	sb.WriteString("  Date        Z-Score    Zone\n")
	for _, p := range risk.Altman.Periods {
		sb.WriteString(fmt.Sprintf("  %-11s %-10s %s\n", p.ReportDate, common.FormatRatio(p.ZScore, 4), p.RiskLevel))
	}
	sb.WriteString("\n")
}

func formatBeneish(sb *strings.Builder, risk *models.RiskAnalysis) {
	writeSection(sb, "Beneish M-Score")
	sb.WriteString("M > -2.22 indicates elevated likelihood of earnings manipulation.\n\n")

	if risk == nil || risk.Beneish == nil || len(risk.Beneish.Periods) == 0 {
		sb.WriteString("No data available.\n\n")
		return
	}

	latest := risk.Beneish.Latest()
	sb.WriteString("Latest Period\n")
	sb.WriteString(fmt.Sprintf("  Report Date: %s\n", latest.ReportDate))
	sb.WriteString(fmt.Sprintf("  M-Score: %s\n", common.FormatRatio(latest.MScore, 4)))
	if latest.HighRisk {
		sb.WriteString("  Assessment: HIGH RISK of earnings manipulation\n")
	} else {
		sb.WriteString("  Assessment: no manipulation signal\n")
	}
	sb.WriteString(fmt.Sprintf("  DSRI=%s GMI=%s AQI=%s SGI=%s\n",
		common.FormatRatio(latest.DSRI, 4), common.FormatRatio(latest.GMI, 4),
		common.FormatRatio(latest.AQI, 4), common.FormatRatio(latest.SGI, 4)))
	sb.WriteString(fmt.Sprintf("  DEPI=%s SGAI=%s TATA=%s LVGI=%s\n",
		common.FormatRatio(latest.DEPI, 4), common.FormatRatio(latest.SGAI, 4),
		common.FormatRatio(latest.TATA, 4), common.FormatRatio(latest.LVGI, 4)))
	if len(latest.Warnings) > 0 {
		sb.WriteString("  Warnings:\n")
		for _, w := range latest.Warnings {
			sb.WriteString("    - " + w + "\n")
		}
	}
	sb.WriteString("\n")

	var ms []float64
	high := 0
	for _, p := range risk.Beneish.Periods {
		ms = append(ms, p.MScore)
		if p.HighRisk {
			high++
		}
	}
	writeStats(sb, "M-Score trend", computeStats(ms), 4)
	sb.WriteString(fmt.Sprintf("High-risk periods: %d of %d\n\n", high, len(risk.Beneish.Periods)))
}

func formatBenford(sb *strings.Builder, risk *models.RiskAnalysis) {
	writeSection(sb, "Benford Leading-Digit Check")
	sb.WriteString("Expected share of leading digit d: log10(1 + 1/d)\n\n")

	if risk == nil || len(risk.Benford) == 0 {
		sb.WriteString("No data available.\n\n")
		return
	}

	for _, check := range risk.Benford {
		sb.WriteString(fmt.Sprintf("%s (sample size %d)\n", check.Statement, check.SampleSize))
		sb.WriteString("  Digit  Observed  Expected\n")
		for _, d := range check.Digits {
			sb.WriteString(fmt.Sprintf("  %-6d %-9d %s\n", d.Digit, d.Observed, common.FormatRatio(d.Expected, 2)))
		}
		sb.WriteString(fmt.Sprintf("  Max deviation: %s\n\n", common.FormatRatio(check.MaxDeviation(), 2)))
	}
}

// formatDuPontReport renders the three- and five-factor decompositions.
func formatDuPontReport(state *models.AnalysisState) string {
	var sb strings.Builder
	writeHeader(&sb, "DuPont ROE Decomposition Report", state.Code, state.GeneratedAt)

	writeSection(&sb, "Model")
	sb.WriteString("ROE = Net Margin x Asset Turnover x Equity Multiplier\n")
	sb.WriteString("Five-factor: Tax Burden x Interest Burden x EBIT Margin x Turnover x Multiplier\n\n")

	r := state.DuPont
	if r == nil || len(r.Periods) == 0 {
		sb.WriteString("No data available.\n")
		writeDisclaimer(&sb)
		return sb.String()
	}

	latest := r.Latest()
	writeSection(&sb, "Latest Period")
	sb.WriteString(fmt.Sprintf("Report Date: %s\n", latest.ReportDate))
	sb.WriteString(fmt.Sprintf("ROE: %s\n", common.FormatPct(latest.ROEPct)))
	sb.WriteString(fmt.Sprintf("Net Margin: %s\n", common.FormatPct(latest.NetMarginPct)))
	sb.WriteString(fmt.Sprintf("Asset Turnover: %s\n", common.FormatRatio(latest.AssetTurnover, 4)))
	sb.WriteString(fmt.Sprintf("Equity Multiplier: %s\n", common.FormatRatio(latest.EquityMultiplier, 4)))
	sb.WriteString(fmt.Sprintf("Tax Burden: %s\n", common.FormatRatio(latest.TaxBurden, 4)))
	sb.WriteString(fmt.Sprintf("Interest Burden: %s\n", common.FormatRatio(latest.InterestBurden, 4)))
	sb.WriteString(fmt.Sprintf("EBIT Margin: %s\n", common.FormatPct(latest.EBITMarginPct)))
	sb.WriteString(fmt.Sprintf("Five-factor ROE check: %s\n\n", common.FormatPct(latest.ROECheckPct)))

	var roes []float64
	for _, p := range r.Periods {
		roes = append(roes, p.ROEPct)
	}
	writeSection(&sb, "Trend")
	writeStats(&sb, "ROE %", computeStats(roes), 2)
	sb.WriteString("\n")

	writeSection(&sb, "History")
	sb.WriteString("Date        ROE%      Margin%   Turnover  Multiplier\n")
	for _, p := range r.Periods {
		sb.WriteString(fmt.Sprintf("%-11s %-9s %-9s %-9s %s\n",
			p.ReportDate, common.FormatRatio(p.ROEPct, 2), common.FormatRatio(p.NetMarginPct, 2),
			common.FormatRatio(p.AssetTurnover, 4), common.FormatRatio(p.EquityMultiplier, 4)))
	}
	sb.WriteString("\n")
	writeDisclaimer(&sb)
	return sb.String()
}

// formatProfitabilityReport renders the five ratio series.
func formatProfitabilityReport(state *models.AnalysisState) string {
	var sb strings.Builder
	writeHeader(&sb, "Profitability Analysis Report", state.Code, state.GeneratedAt)

	r := state.Profitability
	if r == nil {
		sb.WriteString("No data available.\n")
		writeDisclaimer(&sb)
		return sb.String()
	}

	writeRatioSeries(&sb, "Gross Margin %", r.GrossMargin)
	writeRatioSeries(&sb, "Net Margin %", r.NetMargin)
	writeRatioSeries(&sb, "ROE % (average equity)", r.ROE)
	writeRatioSeries(&sb, "ROA % (average assets)", r.ROA)
	writeRatioSeries(&sb, "ROIC %", r.ROIC)

	writeDisclaimer(&sb)
	return sb.String()
}

func writeRatioSeries(sb *strings.Builder, name string, series []models.RatioPeriod) {
	writeSection(sb, name)
	if len(series) == 0 {
		sb.WriteString("No data available.\n\n")
		return
	}

	latest := series[0]
	sb.WriteString(fmt.Sprintf("Latest (%s): %s", latest.ReportDate, common.FormatRatio(latest.Value, 2)))
	if latest.HasYoY {
		sb.WriteString(fmt.Sprintf("  YoY %s pp", common.FormatRatio(latest.YoYChange, 2)))
	}
	if latest.HasQoQ {
		sb.WriteString(fmt.Sprintf("  QoQ %s pp", common.FormatRatio(latest.QoQChange, 2)))
	}
	sb.WriteString("\n")

	var values []float64
	for _, p := range series {
		values = append(values, p.Value)
	}
	writeStats(sb, "Trend", computeStats(values), 2)

	sb.WriteString("History: ")
	parts := make([]string, 0, len(series))
	for _, p := range series {
		parts = append(parts, fmt.Sprintf("%s=%s", p.ReportDate, common.FormatRatio(p.Value, 2)))
	}
	sb.WriteString(strings.Join(parts, ", ") + "\n\n")
}

// formatValuationReport renders the five ratio families.
func formatValuationReport(state *models.AnalysisState) string {
	var sb strings.Builder
	writeHeader(&sb, "Relative Valuation Report", state.Code, state.GeneratedAt)

	r := state.Valuation
	if r == nil || len(r.Ratios) == 0 {
		sb.WriteString("No data available.\n")
		writeDisclaimer(&sb)
		return sb.String()
	}

	writeSection(&sb, "Price Snapshot")
	sb.WriteString(fmt.Sprintf("Last Close: %s", common.FormatAmount(r.Price)))
	if r.PriceDate != "" {
		sb.WriteString(fmt.Sprintf(" (%s)", r.PriceDate))
	}
	sb.WriteString("\n\n")

	names := map[string]string{
		models.RatioPE:       "PE (dynamic, rolling 4Q EPS)",
		models.RatioPB:       "PB (price to book)",
		models.RatioPS:       "PS (market cap to revenue)",
		models.RatioPEG:      "PEG (PE to profit growth)",
		models.RatioEVEBITDA: "EV/EBITDA",
	}
	for _, metric := range models.ValuationRatios {
		writeSection(&sb, names[metric])
		var periods []models.MetricResult
		for _, mr := range r.Ratios {
			if mr.Metric == metric {
				periods = append(periods, mr)
			}
		}
		if len(periods) == 0 {
			sb.WriteString("No data available.\n\n")
			continue
		}
		latest := periods[0]
		sb.WriteString(fmt.Sprintf("Latest (%s): %s\n", latest.ReportDate, common.FormatRatio(latest.Value, 4)))
		if latest.Classification != "" {
			sb.WriteString("Assessment: " + latest.Classification + "\n")
		}
		var values []float64
		for _, p := range periods {
			if p.Value > 0 {
				values = append(values, p.Value)
			}
		}
		if len(values) > 0 {
			writeStats(&sb, "Trend (defined periods)", computeStats(values), 4)
		}
		sb.WriteString("\n")
	}

	writeDisclaimer(&sb)
	return sb.String()
}

// formatCashFlowReport renders quality, FCF, adequacy, and CCC sections.
func formatCashFlowReport(state *models.AnalysisState) string {
	var sb strings.Builder
	writeHeader(&sb, "Cash Flow Analysis Report", state.Code, state.GeneratedAt)

	r := state.CashFlow
	if r == nil {
		sb.WriteString("No data available.\n")
		writeDisclaimer(&sb)
		return sb.String()
	}

	writeSection(&sb, "Operating Cash Flow Quality")
	sb.WriteString("Ratio = Operating Cash Flow / Net Profit; above 1 means cash-backed earnings.\n")
	if len(r.Quality) == 0 {
		sb.WriteString("No data available.\n\n")
	} else {
		latest := r.Quality[0]
		sb.WriteString(fmt.Sprintf("Latest (%s): ratio=%s  OCF=%s  profit=%s\n",
			latest.ReportDate, common.FormatRatio(latest.Ratio, 4),
			common.FormatCompact(latest.OCF), common.FormatCompact(latest.NetProfit)))
		sb.WriteString("Assessment: " + latest.Quality + "\n")
		if math.Abs(latest.AccrualPct) > 10 {
			sb.WriteString(fmt.Sprintf("Warning: accrual ratio %s of assets is elevated\n", common.FormatPct(latest.AccrualPct)))
		}
		var values []float64
		for _, p := range r.Quality {
			values = append(values, p.Ratio)
		}
		writeStats(&sb, "Trend", computeStats(values), 4)
		sb.WriteString("\n")
	}

	writeSection(&sb, "Free Cash Flow")
	sb.WriteString("FCF = Operating Cash Flow - Capital Expenditure\n")
	if len(r.FCF) == 0 {
		sb.WriteString("No data available.\n\n")
	} else {
		latest := r.FCF[0]
		sb.WriteString(fmt.Sprintf("Latest (%s): FCF=%s  FCF/profit=%s",
			latest.ReportDate, common.FormatCompact(latest.FCF), common.FormatRatio(latest.FCFToProfit, 4)))
		if latest.HasYoY {
			sb.WriteString("  YoY " + common.FormatSignedPct(latest.YoYPct))
		}
		sb.WriteString("\n")
		sb.WriteString("History: ")
		parts := make([]string, 0, len(r.FCF))
		for _, p := range r.FCF {
			parts = append(parts, fmt.Sprintf("%s=%s", p.ReportDate, common.FormatCompact(p.FCF)))
		}
		sb.WriteString(strings.Join(parts, ", ") + "\n\n")
	}

	writeSection(&sb, "Cash Flow Adequacy")
	sb.WriteString("Ratio = cumulative OCF / (capex + inventory build + dividends) over up to 3 years.\n")
	if len(r.Adequacy) == 0 {
		sb.WriteString("No data available.\n\n")
	} else {
		for _, w := range r.Adequacy {
			sb.WriteString(fmt.Sprintf("%s .. %s (%d periods): ratio=%s  %s\n",
				w.StartDate, w.EndDate, w.Periods, common.FormatRatio(w.Ratio, 4), w.Level))
		}
		sb.WriteString("\n")
	}

	writeSection(&sb, "Cash Conversion Cycle")
	sb.WriteString("CCC = DIO + DSO - DPO, in days.\n")
	if len(r.CCC) == 0 {
		sb.WriteString("No data available.\n\n")
	} else {
		latest := r.CCC[0]
		sb.WriteString(fmt.Sprintf("Latest (%s): CCC=%s  DIO=%s  DSO=%s  DPO=%s",
			latest.ReportDate, common.FormatRatio(latest.CCC, 2), common.FormatRatio(latest.DIO, 2),
			common.FormatRatio(latest.DSO, 2), common.FormatRatio(latest.DPO, 2)))
		if latest.HasYoY {
			sb.WriteString(fmt.Sprintf("  YoY %s days", common.FormatRatio(latest.YoYDays, 2)))
		}
		sb.WriteString("\n")
		var values []float64
		for _, p := range r.CCC {
			values = append(values, p.CCC)
		}
		writeStats(&sb, "Trend", computeStats(values), 2)
		sb.WriteString("\n")
	}

	writeDisclaimer(&sb)
	return sb.String()
}

// formatFullReport renders the consolidated summary with run errors and
// a key-indicator preview.
func formatFullReport(state *models.AnalysisState) string {
	var sb strings.Builder
	writeHeader(&sb, "Full Financial Analysis Report", state.Code, state.GeneratedAt)

	writeSection(&sb, "Run Summary")
	sb.WriteString(fmt.Sprintf("Run ID: %s\n", state.RunID))
	sb.WriteString(fmt.Sprintf("Date Range: %s .. %s\n", state.Start, state.End))
	sb.WriteString(fmt.Sprintf("Errors: %d\n", len(state.Errors)))
	for _, e := range state.Errors {
		sb.WriteString(fmt.Sprintf("  - [%s/%s] %s\n", e.Category, e.Stage, e.Message))
	}
	sb.WriteString("\n")

	writeSection(&sb, "Key Indicators")
	if z := state.Risk; z != nil && z.Altman != nil {
		if latest := z.Altman.Latest(); latest != nil {
			sb.WriteString(fmt.Sprintf("Altman Z-Score: %s (%s)\n", common.FormatRatio(latest.ZScore, 4), latest.RiskLevel))
		}
	}
	if b := state.Risk; b != nil && b.Beneish != nil {
		if latest := b.Beneish.Latest(); latest != nil {
			sb.WriteString(fmt.Sprintf("Beneish M-Score: %s\n", common.FormatRatio(latest.MScore, 4)))
		}
	}
	if d := state.DuPont; d != nil {
		if latest := d.Latest(); latest != nil {
			sb.WriteString(fmt.Sprintf("ROE (five-factor): %s\n", common.FormatPct(latest.ROECheckPct)))
		}
	}
	if v := state.Valuation; v != nil {
		if pe := v.Ratio(models.RatioPE); pe != nil && pe.Value > 0 {
			sb.WriteString(fmt.Sprintf("Dynamic PE: %s\n", common.FormatRatio(pe.Value, 4)))
		}
		if v.Price > 0 {
			sb.WriteString(fmt.Sprintf("Last Close: %s\n", common.FormatAmount(v.Price)))
		}
	}
	if c := state.CashFlow; c != nil && len(c.Quality) > 0 {
		sb.WriteString(fmt.Sprintf("OCF/Profit: %s\n", common.FormatRatio(c.Quality[0].Ratio, 4)))
	}
	sb.WriteString("\n")
	writeDisclaimer(&sb)
	return sb.String()
}

func writeDisclaimer(sb *strings.Builder) {
	sb.WriteString(ruleLight + "\n")
	sb.WriteString("This report is generated from public financial statements for research\n")
	sb.WriteString("purposes only and is not investment advice.\n")
}
