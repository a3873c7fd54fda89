package calculator

import (
	"math"

	"BoomDoomRadar/internal/model"
)

// TrailingWindow is the number of records treated as "the last 24 hours".
// This assumes roughly hourly sampling.
const TrailingWindow = 24

// HighLow24h returns the 24h high and low. The latest record's rolling range
// is preferred when it carries both ends; otherwise the max/min price over the
// trailing 24 records is used.
func HighLow24h(series model.Series) (high, low float64) {
	latest, ok := series.Latest()
	if !ok {
		return 0, 0
	}
	if latest.RollingHigh24h != nil && latest.RollingLow24h != nil {
		return *latest.RollingHigh24h, *latest.RollingLow24h
	}

	high = math.Inf(-1)
	low = math.Inf(1)
	for _, r := range series.Tail(TrailingWindow) {
		if r.Price > high {
			high = r.Price
		}
		if r.Price < low {
			low = r.Price
		}
	}
	return high, low
}

// PercentChange returns (new-old)/old*100. A zero old value, or any
// non-finite result, yields 0.
func PercentChange(oldValue, newValue float64) float64 {
	if oldValue == 0 {
		return 0
	}
	change := (newValue - oldValue) / oldValue * 100
	if math.IsNaN(change) || math.IsInf(change, 0) {
		return 0
	}
	return change
}

// FractionChange returns (new-old)/old, or 0 when old is zero.
func FractionChange(oldValue, newValue float64) float64 {
	return PercentChange(oldValue, newValue) / 100
}
