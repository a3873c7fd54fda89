package strategy

import (
	"math"

	"BoomDoomRadar/internal/model"
)

// Weights holds the composite score constants. The defaults are an empirical
// heuristic kept for output compatibility.
type Weights struct {
	PriceTrend  float64 `yaml:"price_trend"`
	RSI         float64 `yaml:"rsi"`
	VolumeTrend float64 `yaml:"volume_trend"`
	Whale       float64 `yaml:"whale"`
	EMA         float64 `yaml:"ema"`
	Lifecycle   float64 `yaml:"lifecycle"`
	Offset      float64 `yaml:"offset"`
	Scale       float64 `yaml:"scale"`
	Window      int     `yaml:"window"`
}

// DefaultWeights returns the stock scoring constants.
func DefaultWeights() Weights {
	return Weights{
		PriceTrend:  2,
		RSI:         1,
		VolumeTrend: 1,
		Whale:       0.2,
		EMA:         1,
		Lifecycle:   1,
		Offset:      3,
		Scale:       5.0 / 6.0,
		Window:      24,
	}
}

// MaxScore is the top of the Boom or Doom scale.
const MaxScore = 5

// FactorScore is one signal's contribution to the composite score.
type FactorScore struct {
	Name       string
	RawScore   float64
	Weight     float64
	Weighted   float64
	Commentary string
}

// Score is the composite Boom or Doom result.
type Score struct {
	Value   int // 0..5
	Raw     float64
	Factors []FactorScore
	// Insufficient is set when the series is shorter than the scoring window.
	Insufficient bool
}

// Evaluate computes the composite score over the trailing window of series.
// Series shorter than the window score 0.
func Evaluate(series model.Series, w Weights) Score {
	if w.Window <= 0 {
		w.Window = DefaultWeights().Window
	}
	if len(series) < w.Window {
		return Score{Insufficient: true}
	}
	recent := series.Tail(w.Window)
	first := recent[0]
	last := recent[len(recent)-1]

	factors := []FactorScore{
		scorePriceTrend(first, last, w.PriceTrend),
		scoreRSI(last, w.RSI),
		scoreVolumeTrend(first, last, w.VolumeTrend),
		scoreWhales(recent, w.Whale),
		scoreEMARelation(last, w.EMA),
		scoreLifecycle(last, w.Lifecycle),
	}

	raw := 0.0
	for _, f := range factors {
		raw += f.Weighted
	}

	return Score{
		Value:   normalize(raw, w),
		Raw:     raw,
		Factors: factors,
	}
}

// normalize maps a raw score onto 0..5. Halves round up; NaN becomes 0.
func normalize(raw float64, w Weights) int {
	v := math.Floor((raw+w.Offset)*w.Scale + 0.5)
	if math.IsNaN(v) {
		return 0
	}
	if v < 0 {
		return 0
	}
	if v > MaxScore {
		return MaxScore
	}
	return int(v)
}
