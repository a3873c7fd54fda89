package model

import "testing"

func TestSeriesSorted_StableAndCopy(t *testing.T) {
	s := Series{
		{Timestamp: 3000, Price: 3},
		{Timestamp: 1000, Price: 1},
		{Timestamp: 2000, Price: 2},
		{Timestamp: 1000, Price: 1.5},
	}
	out := s.Sorted()
	if !out.IsSorted() {
		t.Fatal("expected sorted output")
	}
	if out[0].Price != 1 || out[1].Price != 1.5 {
		t.Errorf("equal timestamps should keep input order, got %v then %v", out[0].Price, out[1].Price)
	}
	if s[0].Timestamp != 3000 {
		t.Error("Sorted must not reorder the receiver")
	}
}

func TestSeriesTail(t *testing.T) {
	s := Series{{Timestamp: 1}, {Timestamp: 2}, {Timestamp: 3}}
	if got := len(s.Tail(2)); got != 2 {
		t.Errorf("Tail(2) len = %d", got)
	}
	if got := len(s.Tail(10)); got != 3 {
		t.Errorf("Tail(10) len = %d", got)
	}
	if got := len(s.Tail(0)); got != 0 {
		t.Errorf("Tail(0) len = %d", got)
	}
	if s.Tail(1)[0].Timestamp != 3 {
		t.Error("Tail should return trailing records")
	}
}

func TestSeriesMaxTimestamp(t *testing.T) {
	if _, ok := (Series{}).MaxTimestamp(); ok {
		t.Error("empty series has no max timestamp")
	}
	s := Series{{Timestamp: 5}, {Timestamp: 9}, {Timestamp: 2}}
	if ts, _ := s.MaxTimestamp(); ts != 9 {
		t.Errorf("max = %d, want 9", ts)
	}
}

func TestParseTimeFrame(t *testing.T) {
	tests := []struct {
		in   string
		want TimeFrame
	}{
		{"1D", TimeFrame1D},
		{"1w", TimeFrame1W},
		{" 3m ", TimeFrame3M},
		{"1Y", TimeFrame1Y},
		{"ALL", TimeFrameAll},
		{"5Y", TimeFrameAll},
		{"", TimeFrameAll},
	}
	for _, tt := range tests {
		if got := ParseTimeFrame(tt.in); got != tt.want {
			t.Errorf("ParseTimeFrame(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if ValidTimeFrame("5Y") {
		t.Error("5Y should not be valid")
	}
}
