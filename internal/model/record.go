package model

import (
	"sort"
	"time"
)

// Record is one normalized market sample.
type Record struct {
	Timestamp         int64 // Unix timestamp in milliseconds
	Price             float64
	MarketCap         float64
	Volume            float64
	RSI               float64
	EMA6h             float64
	MA6h              float64
	EMA24h            float64
	MA24h             float64
	Volatility        float64
	BollingerUpper    float64
	BollingerLower    float64
	WhaleTransactions int
	ForecastPrice     *float64 // nil when the row carries no projection
	LifecycleStage    string   // empty when the row carries no label
	RollingHigh24h    *float64
	RollingLow24h     *float64
}

// Time returns the record timestamp as a UTC time.
func (r Record) Time() time.Time {
	return time.UnixMilli(r.Timestamp).UTC()
}

// HasForecast reports whether the record carries a forecast price.
func (r Record) HasForecast() bool { return r.ForecastPrice != nil }

// Float returns a pointer to a copy of v, for optional record fields.
func Float(v float64) *float64 { return &v }

// Series is an ordered sequence of records for one symbol.
type Series []Record

// Sorted returns a copy of s ordered ascending by timestamp.
// Records with equal timestamps keep their relative order.
func (s Series) Sorted() Series {
	out := make(Series, len(s))
	copy(out, s)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Timestamp < out[j].Timestamp })
	return out
}

// IsSorted reports whether s is non-decreasing in timestamp.
func (s Series) IsSorted() bool {
	return sort.SliceIsSorted(s, func(i, j int) bool { return s[i].Timestamp < s[j].Timestamp })
}

// Latest returns the last record and false when the series is empty.
func (s Series) Latest() (Record, bool) {
	if len(s) == 0 {
		return Record{}, false
	}
	return s[len(s)-1], true
}

// Tail returns the trailing n records (or all of them when n >= len).
func (s Series) Tail(n int) Series {
	if n <= 0 {
		return Series{}
	}
	if n >= len(s) {
		return s
	}
	return s[len(s)-n:]
}

// MaxTimestamp returns the greatest timestamp in s.
func (s Series) MaxTimestamp() (int64, bool) {
	if len(s) == 0 {
		return 0, false
	}
	maxTs := s[0].Timestamp
	for _, r := range s[1:] {
		if r.Timestamp > maxTs {
			maxTs = r.Timestamp
		}
	}
	return maxTs, true
}

// Prices extracts the price column.
func (s Series) Prices() []float64 {
	out := make([]float64, len(s))
	for i, r := range s {
		out[i] = r.Price
	}
	return out
}
