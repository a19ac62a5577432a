package models

import "time"

// PriceBar is one daily OHLCV bar.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume float64   `json:"volume"`
}

// PriceSeries holds daily price history, bars ascending by date.
type PriceSeries struct {
	Code string     `json:"code"`
	Bars []PriceBar `json:"bars"`
}

// Empty reports whether the series carries no bars.
func (s *PriceSeries) Empty() bool {
	return s == nil || len(s.Bars) == 0
}

// LastClose returns the most recent closing price, 0 for an empty series.
func (s *PriceSeries) LastClose() float64 {
	if s.Empty() {
		return 0
	}
	return s.Bars[len(s.Bars)-1].Close
}

// LastDate returns the date of the most recent bar.
func (s *PriceSeries) LastDate() time.Time {
	if s.Empty() {
		return time.Time{}
	}
	return s.Bars[len(s.Bars)-1].Date
}
