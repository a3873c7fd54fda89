package collector

import (
	"context"
	"hash/fnv"
	"math"
	"math/rand"
	"strings"
	"time"

	"BoomDoomRadar/internal/calculator"
	"BoomDoomRadar/internal/model"
)

// DefaultMockDays is the length of a generated fallback series.
const DefaultMockDays = 180

// StaticSource returns a fixed payload or error, optionally after a delay.
// It is meant for development and tests.
type StaticSource struct {
	Payload []byte
	Err     error
	Delay   time.Duration
}

func (s *StaticSource) Name() string { return "static" }

func (s *StaticSource) Fetch(ctx context.Context, symbol string) ([]byte, error) {
	if s.Delay > 0 {
		select {
		case <-ctx.Done():
			return nil, unavailable(symbol, ctx.Err())
		case <-time.After(s.Delay):
		}
	}
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Payload, nil
}

// Generate builds a synthetic hourly series ending at end. The shape is
// deterministic for a given symbol and end time.
func Generate(symbol string, end time.Time, days int) model.Series {
	if days <= 0 {
		days = DefaultMockDays
	}
	n := days * 24
	rng := rand.New(rand.NewSource(seedFor(symbol)))

	price := 0.00001 * (0.5 + rng.Float64())
	volume := 1e8 * (0.5 + rng.Float64())
	prices := make([]float64, n)
	volumes := make([]float64, n)
	for i := 0; i < n; i++ {
		monthly := math.Sin(float64(i)/(24*30)) * 0.3
		daily := math.Sin(float64(i)/24) * 0.1
		noise := rng.Float64()*0.1 - 0.05
		price *= 1 + (monthly+daily+noise)*0.1
		volume *= 1 + (rng.Float64()*0.2 - 0.1)
		prices[i] = price
		volumes[i] = volume
	}

	ema6 := calculator.RollingEMA(prices, 6)
	ema24 := calculator.RollingEMA(prices, 24)
	ma6 := calculator.RollingSMA(prices, 6)
	ma24 := calculator.RollingSMA(prices, 24)
	rsi := calculator.RollingRSI(prices, 14)

	start := end.Truncate(time.Hour).Add(-time.Duration(n-1) * time.Hour)
	series := make(model.Series, n)
	for i := range series {
		p := prices[i]
		volatility := p * 0.03
		whales := 0
		if rng.Float64() > 0.9 {
			whales = rng.Intn(5) + 1
		}
		series[i] = model.Record{
			Timestamp:         start.Add(time.Duration(i) * time.Hour).UnixMilli(),
			Price:             p,
			MarketCap:         p * volumes[i] * 10,
			Volume:            volumes[i],
			RSI:               rsi[i],
			EMA6h:             ema6[i],
			MA6h:              ma6[i],
			EMA24h:            ema24[i],
			MA24h:             ma24[i],
			Volatility:        volatility,
			BollingerUpper:    p + 2*volatility,
			BollingerLower:    p - 2*volatility,
			WhaleTransactions: whales,
			LifecycleStage:    mockLifecycle(i / 24),
			RollingHigh24h:    model.Float(p * 1.1),
			RollingLow24h:     model.Float(p * 0.9),
		}
	}
	return series
}

// mockLifecycle cycles through four week-long stages every 30 days.
func mockLifecycle(day int) string {
	switch d := day % 30; {
	case d < 7:
		return "pre-pump"
	case d < 14:
		return "pump"
	case d < 21:
		return "post-pump"
	default:
		return "consolidation"
	}
}

func seedFor(symbol string) int64 {
	h := fnv.New64a()
	h.Write([]byte(strings.ToUpper(symbol)))
	return int64(h.Sum64())
}
