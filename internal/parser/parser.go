// Package parser turns ticker CSV text into normalized records.
package parser

import (
	"log"
	"strings"

	"BoomDoomRadar/internal/model"
	"BoomDoomRadar/internal/normalize"
	"BoomDoomRadar/internal/resolver"
)

// DefaultMinFields is the shortest row accepted: the RSI window starts at
// column 29.
const DefaultMinFields = 30

// Columns assumed positionally stable.
const (
	colTimestamp = 0
	colPrice     = 1
	colMarketCap = 2
	colVolume    = 3
	colEMA6h     = 18
	colEMA24h    = 19
	colMA6h      = 20
	colMA24h     = 21
)

// Parser converts rows into records.
type Parser struct {
	MinFields int
	Table     resolver.Table
}

// New returns a Parser using the default resolver table.
func New(minFields int) *Parser {
	if minFields <= 0 {
		minFields = DefaultMinFields
	}
	return &Parser{MinFields: minFields, Table: resolver.DefaultTable}
}

// Result is the outcome of parsing one payload.
type Result struct {
	Records  model.Series
	Rejected int
	Lines    int // data lines seen, header excluded
}

// Parse splits text into lines, drops the header and parses every row.
// Rejected rows are counted and skipped. The returned records are in input
// order.
func (p *Parser) Parse(text string) Result {
	lines := strings.Split(strings.TrimSpace(text), "\n")
	var res Result
	if len(lines) <= 1 {
		return res
	}
	res.Records = make(model.Series, 0, len(lines)-1)
	for _, line := range lines[1:] {
		if strings.TrimSpace(line) == "" {
			continue
		}
		res.Lines++
		rec, ok := p.ParseRow(line)
		if !ok {
			res.Rejected++
			continue
		}
		res.Records = append(res.Records, rec)
	}
	return res
}

// ParseRow parses one data line. ok is false when the row is rejected.
func (p *Parser) ParseRow(line string) (rec model.Record, ok bool) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[WARN] row parse panic: %v", r)
			rec, ok = model.Record{}, false
		}
	}()

	fields := strings.Split(strings.TrimRight(line, "\r"), ",")
	minFields := p.MinFields
	if minFields <= 0 {
		minFields = DefaultMinFields
	}
	if len(fields) < minFields {
		return model.Record{}, false
	}

	ts, ok := normalize.Timestamp(fields[colTimestamp])
	if !ok {
		return model.Record{}, false
	}

	price := nonNegative(normalize.Numeric(fields[colPrice], 0))
	table := p.Table
	if table == nil {
		table = resolver.DefaultTable
	}
	res := table.Resolve(fields, price)

	rec = model.Record{
		Timestamp:         ts,
		Price:             price,
		MarketCap:         nonNegative(normalize.Numeric(fields[colMarketCap], 0)),
		Volume:            nonNegative(normalize.Numeric(fields[colVolume], 0)),
		RSI:               res.RSI,
		EMA6h:             column(fields, colEMA6h, price),
		EMA24h:            column(fields, colEMA24h, price),
		MA6h:              column(fields, colMA6h, price),
		MA24h:             column(fields, colMA24h, price),
		Volatility:        res.Volatility,
		BollingerUpper:    price + 2*res.Volatility,
		BollingerLower:    price - 2*res.Volatility,
		WhaleTransactions: res.WhaleTransactions,
		ForecastPrice:     res.ForecastPrice,
		LifecycleStage:    res.LifecycleStage,
		RollingHigh24h:    model.Float(res.RollingHigh24h),
		RollingLow24h:     model.Float(res.RollingLow24h),
	}
	return rec, true
}

func column(fields []string, idx int, fallback float64) float64 {
	if idx >= len(fields) {
		return fallback
	}
	return normalize.Numeric(fields[idx], fallback)
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
