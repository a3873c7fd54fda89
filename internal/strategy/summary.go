package strategy

import (
	"BoomDoomRadar/internal/calculator"
	"BoomDoomRadar/internal/format"
	"BoomDoomRadar/internal/model"
)

// Summary is the stats panel for one series.
type Summary struct {
	Latest          model.Record
	Points          int
	High24h         float64
	Low24h          float64
	MarketCapChange string
	VolumeChange    string
	WhaleCount      int
	WhaleVerdict    string
	Score           Score
	ScoreVerdict    string
	Lifecycle       string
	// PriceSMA and PriceRSI are recomputed from the price column. PriceSMA is
	// 0 when the series is shorter than the trailing window.
	PriceSMA float64
	PriceRSI float64
}

// RSIPeriod is the Wilder period used for PriceRSI.
const RSIPeriod = 14

// Summarize derives the stats panel from series. ok is false for an empty
// series.
func Summarize(series model.Series, w Weights) (Summary, bool) {
	latest, ok := series.Latest()
	if !ok {
		return Summary{}, false
	}
	// 24 records back, assuming hourly samples.
	yesterday := series[max(0, len(series)-(calculator.TrailingWindow+1))]
	high, low := calculator.HighLow24h(series)
	whales := WhaleCount(series.Tail(calculator.TrailingWindow))
	score := Evaluate(series, w)

	prices := series.Prices()
	sma, err := calculator.CalculateSMA(prices, calculator.TrailingWindow)
	if err != nil {
		sma = 0
	}
	rsi, err := calculator.CalculateRSI(prices, RSIPeriod)
	if err != nil {
		rsi = 50
	}

	lifecycle := latest.LifecycleStage
	if lifecycle == "" {
		lifecycle = "Unknown"
	}

	return Summary{
		Latest:          latest,
		Points:          len(series),
		High24h:         high,
		Low24h:          low,
		MarketCapChange: format.PercentageChange(yesterday.MarketCap, latest.MarketCap),
		VolumeChange:    format.PercentageChange(yesterday.Volume, latest.Volume),
		WhaleCount:      whales,
		WhaleVerdict:    WhaleVerdict(whales),
		Score:           score,
		ScoreVerdict:    ScoreVerdict(score.Value),
		Lifecycle:       lifecycle,
		PriceSMA:        sma,
		PriceRSI:        rsi,
	}, true
}

// ScoreVerdict is the caption shown under the score.
func ScoreVerdict(score int) string {
	switch score {
	case 5:
		return "TO THE MOON!"
	case 4:
		return "Looking very bullish!"
	case 3:
		return "Cautiously optimistic"
	case 2:
		return "Neutral territory"
	case 1:
		return "Proceed with caution"
	default:
		return "Danger zone!"
	}
}

// WhaleVerdict describes the trailing whale transaction count.
func WhaleVerdict(count int) string {
	switch {
	case count > 3:
		return "High whale activity!"
	case count > 0:
		return "Some whales moving"
	default:
		return "No whale activity"
	}
}
