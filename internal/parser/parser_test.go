package parser

import (
	"math"
	"strings"
	"testing"
)

// row builds a 38-column CSV line with the given overrides.
func row(overrides map[int]string) string {
	cols := make([]string, 38)
	cols[0] = "2024-01-01T00:00:00Z"
	cols[1] = "0.001"
	cols[2] = "500000"
	cols[3] = "1000000"
	cols[18], cols[19], cols[20], cols[21] = "0.0011", "0.0012", "0.0009", "0.00095"
	cols[26] = "0.0002"
	cols[29] = "65"
	cols[32] = "True"
	cols[34] = "1500"
	cols[35] = "1200"
	cols[36] = "0.0015"
	cols[37] = "pump"
	for i, v := range overrides {
		cols[i] = v
	}
	return strings.Join(cols, ",")
}

func TestParseRow_ExampleScenario(t *testing.T) {
	p := New(0)
	rec, ok := p.ParseRow(row(nil))
	if !ok {
		t.Fatal("expected row to be accepted")
	}
	if rec.RSI != 65 {
		t.Errorf("rsi = %v, want 65", rec.RSI)
	}
	if rec.WhaleTransactions != 1 {
		t.Errorf("whale = %d, want 1", rec.WhaleTransactions)
	}
	if !strings.Contains(rec.LifecycleStage, "pump") {
		t.Errorf("lifecycle = %q", rec.LifecycleStage)
	}
	if *rec.RollingHigh24h != 1500 || *rec.RollingLow24h != 1200 {
		t.Errorf("range = %v/%v", *rec.RollingHigh24h, *rec.RollingLow24h)
	}
}

func TestParseRow_RoundTrip(t *testing.T) {
	rec, ok := New(0).ParseRow(row(nil))
	if !ok {
		t.Fatal("expected row to be accepted")
	}
	if rec.Timestamp != 1704067200000 {
		t.Errorf("timestamp = %d", rec.Timestamp)
	}
	if rec.Price != 0.001 || rec.MarketCap != 500000 || rec.Volume != 1000000 {
		t.Errorf("price/mcap/volume = %v/%v/%v", rec.Price, rec.MarketCap, rec.Volume)
	}
	if rec.EMA6h != 0.0011 || rec.EMA24h != 0.0012 || rec.MA6h != 0.0009 || rec.MA24h != 0.00095 {
		t.Errorf("indicators = %v %v %v %v", rec.EMA6h, rec.EMA24h, rec.MA6h, rec.MA24h)
	}
	if rec.ForecastPrice == nil || *rec.ForecastPrice != 0.0015 {
		t.Errorf("forecast = %v", rec.ForecastPrice)
	}
	const eps = 1e-12
	if math.Abs(rec.BollingerUpper-0.0014) > eps || math.Abs(rec.BollingerLower-0.0006) > eps {
		t.Errorf("bollinger = %v/%v, want 0.0014/0.0006", rec.BollingerUpper, rec.BollingerLower)
	}
}

func TestParseRow_IndicatorsDegradeToPrice(t *testing.T) {
	rec, ok := New(0).ParseRow(row(map[int]string{18: "", 19: "n/a", 20: "NaN", 21: ""}))
	if !ok {
		t.Fatal("expected row to be accepted")
	}
	for name, v := range map[string]float64{"ema6h": rec.EMA6h, "ema24h": rec.EMA24h, "ma6h": rec.MA6h, "ma24h": rec.MA24h} {
		if v != rec.Price {
			t.Errorf("%s = %v, want price %v", name, v, rec.Price)
		}
	}
}

func TestParseRow_Rejections(t *testing.T) {
	p := New(0)
	short := strings.Join(make([]string, DefaultMinFields-1), ",")
	if _, ok := p.ParseRow(short); ok {
		t.Error("short row should be rejected")
	}
	if _, ok := p.ParseRow(""); ok {
		t.Error("empty row should be rejected")
	}
	if _, ok := p.ParseRow(row(map[int]string{0: "not-a-date"})); ok {
		t.Error("bad timestamp should be rejected")
	}
}

func TestParseRow_BadNumbersDefault(t *testing.T) {
	rec, ok := New(0).ParseRow(row(map[int]string{1: "x", 2: "-5", 3: ""}))
	if !ok {
		t.Fatal("row with bad numbers should still parse")
	}
	if rec.Price != 0 || rec.MarketCap != 0 || rec.Volume != 0 {
		t.Errorf("price/mcap/volume = %v/%v/%v, want zeros", rec.Price, rec.MarketCap, rec.Volume)
	}
}

func TestParse_Batch(t *testing.T) {
	text := strings.Join([]string{
		"timestamp,price,market_cap,volume",
		row(map[int]string{0: "2024-01-01T02:00:00Z"}),
		"garbage,row",
		"",
		row(map[int]string{0: "2024-01-01T01:00:00Z"}),
		row(map[int]string{0: "??"}),
	}, "\n") + "\n"

	res := New(0).Parse(text)
	if res.Lines != 4 {
		t.Errorf("lines = %d, want 4", res.Lines)
	}
	if res.Rejected != 2 {
		t.Errorf("rejected = %d, want 2", res.Rejected)
	}
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}
	if res.Records[0].Timestamp < res.Records[1].Timestamp {
		t.Error("Parse keeps input order; sorting belongs to the loader")
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	res := New(0).Parse("timestamp,price\n")
	if len(res.Records) != 0 || res.Lines != 0 {
		t.Errorf("header-only payload should yield nothing, got %+v", res)
	}
}

func TestParse_CRLF(t *testing.T) {
	text := "h\r\n" + row(nil) + "\r\n" + row(map[int]string{0: "2024-01-02T00:00:00Z"}) + "\r\n"
	res := New(0).Parse(text)
	if len(res.Records) != 2 {
		t.Fatalf("records = %d, want 2", len(res.Records))
	}
	if res.Records[1].LifecycleStage != "pump" {
		t.Errorf("lifecycle = %q, trailing CR should be stripped", res.Records[1].LifecycleStage)
	}
}
