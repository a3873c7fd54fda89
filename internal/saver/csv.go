package saver

import (
	"encoding/csv"
	"os"
	"strconv"
	"time"

	"BoomDoomRadar/internal/model"
)

var csvHeader = []string{
	"timestamp", "price", "market_cap", "volume", "rsi",
	"ema_6h", "ma_6h", "ema_24h", "ma_24h", "volatility",
	"bollinger_upper", "bollinger_lower", "whale_transactions",
	"forecast_price", "lifecycle_stage", "rolling_high_24h", "rolling_low_24h",
}

// CSVSaver writes one header line and one line per record, timestamps as
// RFC 3339 UTC.
type CSVSaver struct{}

func (CSVSaver) Extension() string { return "csv" }

func (CSVSaver) Save(series model.Series, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)

	if err := w.Write(csvHeader); err != nil {
		return err
	}
	for _, r := range Rows(series) {
		if err := w.Write([]string{
			time.UnixMilli(r.Timestamp).UTC().Format(time.RFC3339),
			floatStr(r.Price),
			floatStr(r.MarketCap),
			floatStr(r.Volume),
			floatStr(r.RSI),
			floatStr(r.EMA6h),
			floatStr(r.MA6h),
			floatStr(r.EMA24h),
			floatStr(r.MA24h),
			floatStr(r.Volatility),
			floatStr(r.BollingerUpper),
			floatStr(r.BollingerLower),
			strconv.FormatInt(r.Whales, 10),
			optStr(r.ForecastPrice),
			r.LifecycleStage,
			optStr(r.RollingHigh24h),
			optStr(r.RollingLow24h),
		}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func floatStr(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func optStr(f *float64) string {
	if f == nil {
		return ""
	}
	return floatStr(*f)
}
