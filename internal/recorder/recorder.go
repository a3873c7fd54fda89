// Package recorder keeps a diagnostic trail of symbol loads.
package recorder

import (
	"time"

	"BoomDoomRadar/internal/model"
)

// Recorder persists load events for later analysis.
type Recorder interface {
	RecordLoad(evt *model.LoadEvent) error
	// RecentLoads returns up to limit events, newest first.
	RecentLoads(limit int) ([]model.LoadEvent, error)
	Close() error
}

// eventTime returns the event time, defaulting to now.
func eventTime(evt *model.LoadEvent) time.Time {
	if evt.At.IsZero() {
		return time.Now()
	}
	return evt.At
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
