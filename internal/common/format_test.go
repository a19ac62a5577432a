package common

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "1,234,567.89", FormatAmount(1234567.891))
	assert.Equal(t, "999.00", FormatAmount(999))
	assert.Equal(t, "1,000.00", FormatAmount(1000))
	assert.Equal(t, "-12,345.50", FormatAmount(-12345.5))
	assert.Equal(t, "0.00", FormatAmount(0))
	assert.Equal(t, "N/A", FormatAmount(math.NaN()))
	assert.Equal(t, "N/A", FormatAmount(math.Inf(1)))
}

func TestFormatCompact(t *testing.T) {
	assert.Equal(t, "12.35亿", FormatCompact(1234567890))
	assert.Equal(t, "-1.00亿", FormatCompact(-1e8))
	assert.Equal(t, "56.79万", FormatCompact(567890))
	assert.Equal(t, "9999.00", FormatCompact(9999))
	assert.Equal(t, "N/A", FormatCompact(math.NaN()))
}

func TestFormatPct(t *testing.T) {
	assert.Equal(t, "12.50%", FormatPct(12.5))
	assert.Equal(t, "-3.33%", FormatPct(-3.333))
	assert.Equal(t, "N/A", FormatPct(math.Inf(-1)))
}

func TestFormatSignedPct(t *testing.T) {
	assert.Equal(t, "+12.50%", FormatSignedPct(12.5))
	assert.Equal(t, "-3.33%", FormatSignedPct(-3.333))
	assert.Equal(t, "+0.00%", FormatSignedPct(0))
	assert.Equal(t, "N/A", FormatSignedPct(math.NaN()))
}

func TestFormatRatio(t *testing.T) {
	assert.Equal(t, "2.6900", FormatRatio(2.69, 4))
	assert.Equal(t, "2.69", FormatRatio(2.69, 2))
	assert.Equal(t, "-1.50", FormatRatio(-1.5, 2))
	assert.Equal(t, "N/A", FormatRatio(math.NaN(), 4))
}
