// Package saver exports a series to disk as csv, json or parquet.
package saver

import (
	"strings"

	"BoomDoomRadar/internal/model"
)

// SeriesSaver writes a whole series to one file.
type SeriesSaver interface {
	Save(series model.Series, path string) error
	Extension() string
}

// Formats lists the accepted export formats.
var Formats = []string{"csv", "json", "parquet"}

// NewSeriesSaver returns the saver for format, or nil if unsupported.
func NewSeriesSaver(format string) SeriesSaver {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "csv":
		return CSVSaver{}
	case "parquet":
		return ParquetSaver{}
	case "json":
		return JSONSaver{}
	default:
		return nil
	}
}

// Row is the flat export shape of one record. Absent optional values stay
// absent: nil pointers and empty labels.
type Row struct {
	Timestamp      int64    `json:"timestamp" parquet:"timestamp"`
	Price          float64  `json:"price" parquet:"price"`
	MarketCap      float64  `json:"market_cap" parquet:"market_cap"`
	Volume         float64  `json:"volume" parquet:"volume"`
	RSI            float64  `json:"rsi" parquet:"rsi"`
	EMA6h          float64  `json:"ema_6h" parquet:"ema_6h"`
	MA6h           float64  `json:"ma_6h" parquet:"ma_6h"`
	EMA24h         float64  `json:"ema_24h" parquet:"ema_24h"`
	MA24h          float64  `json:"ma_24h" parquet:"ma_24h"`
	Volatility     float64  `json:"volatility" parquet:"volatility"`
	BollingerUpper float64  `json:"bollinger_upper" parquet:"bollinger_upper"`
	BollingerLower float64  `json:"bollinger_lower" parquet:"bollinger_lower"`
	Whales         int64    `json:"whale_transactions" parquet:"whale_transactions"`
	ForecastPrice  *float64 `json:"forecast_price,omitempty" parquet:"forecast_price,optional"`
	LifecycleStage string   `json:"lifecycle_stage,omitempty" parquet:"lifecycle_stage,optional"`
	RollingHigh24h *float64 `json:"rolling_high_24h,omitempty" parquet:"rolling_high_24h,optional"`
	RollingLow24h  *float64 `json:"rolling_low_24h,omitempty" parquet:"rolling_low_24h,optional"`
}

// Rows converts series into export rows.
func Rows(series model.Series) []Row {
	rows := make([]Row, len(series))
	for i, r := range series {
		rows[i] = Row{
			Timestamp:      r.Timestamp,
			Price:          r.Price,
			MarketCap:      r.MarketCap,
			Volume:         r.Volume,
			RSI:            r.RSI,
			EMA6h:          r.EMA6h,
			MA6h:           r.MA6h,
			EMA24h:         r.EMA24h,
			MA24h:          r.MA24h,
			Volatility:     r.Volatility,
			BollingerUpper: r.BollingerUpper,
			BollingerLower: r.BollingerLower,
			Whales:         int64(r.WhaleTransactions),
			ForecastPrice:  r.ForecastPrice,
			LifecycleStage: r.LifecycleStage,
			RollingHigh24h: r.RollingHigh24h,
			RollingLow24h:  r.RollingLow24h,
		}
	}
	return rows
}
