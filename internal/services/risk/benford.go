package risk

import (
	"math"
	"strconv"

	"github.com/lishuzheng01/stockfin/internal/models"
)

// benfordDist is the expected leading-digit distribution: log10(1 + 1/d)
// for d in 1..9.
var benfordDist = func() [9]float64 {
	var dist [9]float64
	for d := 1; d <= 9; d++ {
		dist[d-1] = math.Log10(1 + 1/float64(d))
	}
	return dist
}()

// computeBenford checks the leading-digit distribution over every numeric
// cell of a statement. Zero and negative values count toward the sample
// size but never land in a digit bucket; expected counts use the full
// sample size.
func computeBenford(table *models.StatementTable) *models.BenfordCheck {
	check := &models.BenfordCheck{Statement: table.Kind}

	var counts [9]int
	total := 0
	for _, row := range table.Rows {
		for _, v := range row.Values {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				continue
			}
			total++
			if v <= 0 {
				continue
			}
			if d := leadingDigit(v); d >= 1 && d <= 9 {
				counts[d-1]++
			}
		}
	}

	check.SampleSize = total
	for d := 1; d <= 9; d++ {
		check.Digits = append(check.Digits, models.BenfordDigit{
			Digit:    d,
			Observed: counts[d-1],
			Expected: float64(total) * benfordDist[d-1],
		})
	}
	return check
}

// leadingDigit returns the first character of the decimal rendering as a
// digit. Values below one lead with '0' and fall outside 1..9, matching
// a straight character-level digit count.
func leadingDigit(v float64) int {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if s == "" {
		return 0
	}
	c := s[0]
	if c < '0' || c > '9' {
		return 0
	}
	return int(c - '0')
}
