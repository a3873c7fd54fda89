package strategy

import (
	"fmt"
	"math"
	"strings"

	"BoomDoomRadar/internal/calculator"
	"BoomDoomRadar/internal/model"
)

// scorePriceTrend uses the fractional price change across the window.
func scorePriceTrend(first, last model.Record, weight float64) FactorScore {
	change := calculator.FractionChange(first.Price, last.Price)
	return FactorScore{
		Name:       "price trend",
		RawScore:   change,
		Weight:     weight,
		Weighted:   change * weight,
		Commentary: fmt.Sprintf("%+.2f%%", change*100),
	}
}

// scoreRSI rewards a neutral RSI and penalizes overbought/oversold extremes.
// A zero RSI is treated as missing.
func scoreRSI(last model.Record, weight float64) FactorScore {
	rsi := last.RSI
	if rsi == 0 || math.IsNaN(rsi) {
		rsi = 50
	}
	score := 1.0
	commentary := "neutral"
	if rsi > 70 {
		score = -1
		commentary = "overbought"
	} else if rsi < 30 {
		score = -1
		commentary = "oversold"
	}
	return FactorScore{
		Name:       "rsi",
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: fmt.Sprintf("RSI=%.0f %s", rsi, commentary),
	}
}

func scoreVolumeTrend(first, last model.Record, weight float64) FactorScore {
	change := calculator.FractionChange(first.Volume, last.Volume)
	return FactorScore{
		Name:       "volume trend",
		RawScore:   change,
		Weight:     weight,
		Weighted:   change * weight,
		Commentary: fmt.Sprintf("%+.2f%%", change*100),
	}
}

func scoreWhales(recent model.Series, weight float64) FactorScore {
	total := WhaleCount(recent)
	return FactorScore{
		Name:       "whale activity",
		RawScore:   float64(total),
		Weight:     weight,
		Weighted:   float64(total) * weight,
		Commentary: fmt.Sprintf("%d whale txs", total),
	}
}

// scoreEMARelation is +1 above the 6h EMA, -1 below, 0 when either is
// non-positive.
func scoreEMARelation(last model.Record, weight float64) FactorScore {
	var score float64
	commentary := "no ema"
	if last.Price > 0 && last.EMA6h > 0 {
		if last.Price > last.EMA6h {
			score = 1
			commentary = "above ema6h"
		} else {
			score = -1
			commentary = "below ema6h"
		}
	}
	return FactorScore{
		Name:       "price vs ema6h",
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: commentary,
	}
}

func scoreLifecycle(last model.Record, weight float64) FactorScore {
	var score float64
	if strings.Contains(last.LifecycleStage, "pump") {
		score = 1
	}
	commentary := last.LifecycleStage
	if commentary == "" {
		commentary = "unknown"
	}
	return FactorScore{
		Name:       "lifecycle",
		RawScore:   score,
		Weight:     weight,
		Weighted:   score * weight,
		Commentary: commentary,
	}
}

// WhaleCount sums whale transactions over s.
func WhaleCount(s model.Series) int {
	total := 0
	for _, r := range s {
		total += r.WhaleTransactions
	}
	return total
}
