package resolver

import (
	"strings"

	"BoomDoomRadar/internal/model"
	"BoomDoomRadar/internal/normalize"
)

// Field names used in the default table and in Resolved.Found.
const (
	FieldRSI        = "rsi"
	FieldVolatility = "volatility"
	FieldWhale      = "whale"
	FieldForecast   = "forecast"
	FieldLifecycle  = "lifecycle"
)

// Fixed positions of the rolling range columns.
const (
	RollingHighIndex = 34
	RollingLowIndex  = 35
)

// Defaults applied when no window index satisfies a predicate.
const (
	DefaultRSI        = 50.0
	DefaultVolatility = 0.01
)

// lifecycleKeywords mark a token as a lifecycle label. "consolidation" and
// the bare "pre"/"post" prefixes are deliberately not keywords.
var lifecycleKeywords = []string{"pump", "dump", "growth", "decline"}

// DefaultTable is the window layout of the ticker CSV exports.
var DefaultTable = Table{
	{Name: FieldRSI, From: 29, To: 35, Accept: inRange(0, 100)},
	{Name: FieldVolatility, From: 24, To: 28, Accept: isVolatility},
	{Name: FieldWhale, From: 31, To: 33, Accept: normalize.IsBooleanish},
	{Name: FieldForecast, From: 36, To: 37, Accept: isForecast},
	{Name: FieldLifecycle, From: 30, To: -1, Reverse: true, Accept: IsLifecycleLabel},
}

func inRange(lo, hi float64) func(string) bool {
	return func(token string) bool {
		v, ok := normalize.Float(token)
		return ok && v >= lo && v <= hi
	}
}

func isVolatility(token string) bool {
	v, ok := normalize.Float(token)
	return ok && v > 0 && v < 1
}

func isForecast(token string) bool {
	v, ok := normalize.Float(token)
	return ok && v > 0
}

// IsLifecycleLabel reports whether token contains a lifecycle keyword.
func IsLifecycleLabel(token string) bool {
	t := strings.ToLower(token)
	for _, kw := range lifecycleKeywords {
		if strings.Contains(t, kw) {
			return true
		}
	}
	return false
}

// Resolved holds best-guess values for the ambiguous fields of one row.
type Resolved struct {
	RSI               float64
	Volatility        float64
	WhaleTransactions int
	ForecastPrice     *float64
	LifecycleStage    string
	RollingHigh24h    float64
	RollingLow24h     float64
	// Found maps field name to the column it was read from. Diagnostic only.
	Found map[string]int
}

// Resolve evaluates table against row. price feeds the rolling range fallback.
func (t Table) Resolve(row []string, price float64) Resolved {
	res := Resolved{
		RSI:        DefaultRSI,
		Volatility: DefaultVolatility,
		Found:      make(map[string]int),
	}

	if tok, idx, ok := t.find(row, FieldRSI); ok {
		res.RSI = normalize.Numeric(tok, DefaultRSI)
		res.Found[FieldRSI] = idx
	}
	if tok, idx, ok := t.find(row, FieldVolatility); ok {
		res.Volatility = normalize.Numeric(tok, DefaultVolatility)
		res.Found[FieldVolatility] = idx
	}
	if tok, idx, ok := t.find(row, FieldWhale); ok {
		if normalize.Booleanish(tok) {
			res.WhaleTransactions = 1
		}
		res.Found[FieldWhale] = idx
	}
	if tok, idx, ok := t.find(row, FieldForecast); ok {
		if v, ok := normalize.Float(tok); ok {
			res.ForecastPrice = model.Float(v)
			res.Found[FieldForecast] = idx
		}
	}
	if tok, idx, ok := t.find(row, FieldLifecycle); ok {
		res.LifecycleStage = strings.TrimSpace(tok)
		res.Found[FieldLifecycle] = idx
	}

	high := columnOr(row, RollingHighIndex, price*1.05)
	low := columnOr(row, RollingLowIndex, price*0.95)
	res.RollingHigh24h, res.RollingLow24h = OrderedRange(high, low)
	return res
}

func (t Table) find(row []string, name string) (string, int, bool) {
	spec, ok := t.Lookup(name)
	if !ok {
		return "", -1, false
	}
	return FirstPlausible(row, spec)
}

func columnOr(row []string, idx int, fallback float64) float64 {
	if idx >= len(row) {
		return fallback
	}
	return normalize.Numeric(row[idx], fallback)
}

// OrderedRange returns high and low, swapped if they arrive inverted.
func OrderedRange(high, low float64) (float64, float64) {
	if high < low {
		return low, high
	}
	return high, low
}
