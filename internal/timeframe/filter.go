// Package timeframe slices a series to a trailing window anchored at its
// newest record rather than at wall-clock time.
package timeframe

import (
	"time"

	"BoomDoomRadar/internal/model"
)

// Duration returns the window length of tf; ALL and unknown frames return 0.
func Duration(tf model.TimeFrame) time.Duration {
	switch tf {
	case model.TimeFrame1D:
		return 24 * time.Hour
	case model.TimeFrame1W:
		return 7 * 24 * time.Hour
	case model.TimeFrame1M:
		return 30 * 24 * time.Hour
	case model.TimeFrame3M:
		return 90 * 24 * time.Hour
	case model.TimeFrame1Y:
		return 365 * 24 * time.Hour
	default:
		return 0
	}
}

// FallbackCount is the trailing record count used when the time window comes
// back empty. It assumes hourly samples; frames without a count keep all n.
func FallbackCount(tf model.TimeFrame, n int) int {
	var want int
	switch tf {
	case model.TimeFrame1D:
		want = 24
	case model.TimeFrame1W:
		want = 7 * 24
	case model.TimeFrame1M:
		want = 30 * 24
	default:
		return n
	}
	return min(n, want)
}

// Filter returns the records of series within tf of its newest timestamp,
// sorted ascending. If that leaves nothing while series is non-empty, the
// trailing FallbackCount records are returned instead. series is not modified.
func Filter(series model.Series, tf model.TimeFrame) model.Series {
	sorted := series.Sorted()
	ref, ok := sorted.MaxTimestamp()
	if !ok {
		return sorted
	}
	return filterAt(sorted, tf, ref)
}

// filterAt windows an already sorted series back from ref.
func filterAt(sorted model.Series, tf model.TimeFrame, ref int64) model.Series {
	window := Duration(tf)
	if window == 0 || len(sorted) == 0 {
		return sorted
	}
	cutoff := ref - window.Milliseconds()

	out := make(model.Series, 0, len(sorted))
	for _, r := range sorted {
		if r.Timestamp >= cutoff {
			out = append(out, r)
		}
	}
	if len(out) > 0 {
		return out
	}
	return sorted.Tail(FallbackCount(tf, len(sorted)))
}
