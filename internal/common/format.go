package common

import (
	"fmt"
	"math"
	"strings"
)

// FormatAmount renders a monetary amount with thousands separators and
// two decimal places, e.g. 1234567.891 -> "1,234,567.89".
func FormatAmount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	neg := v < 0
	s := fmt.Sprintf("%.2f", math.Abs(v))
	parts := strings.SplitN(s, ".", 2)
	intPart := parts[0]

	var sb strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			sb.WriteByte(',')
		}
		sb.WriteRune(r)
	}
	out := sb.String() + "." + parts[1]
	if neg {
		return "-" + out
	}
	return out
}

// FormatCompact renders a large amount using Chinese market units:
// 亿 (1e8) and 万 (1e4). Values below 1万 print plain.
func FormatCompact(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	abs := math.Abs(v)
	switch {
	case abs >= 1e8:
		return fmt.Sprintf("%.2f亿", v/1e8)
	case abs >= 1e4:
		return fmt.Sprintf("%.2f万", v/1e4)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

// FormatPct renders a percentage with two decimals, "N/A" for non-finite.
func FormatPct(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.2f%%", v)
}

// FormatSignedPct renders a percentage with an explicit sign.
func FormatSignedPct(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%+.2f%%", v)
}

// FormatRatio renders a plain ratio with the given decimal places.
func FormatRatio(v float64, decimals int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "N/A"
	}
	return fmt.Sprintf("%.*f", decimals, v)
}
