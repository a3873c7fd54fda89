package model

import "strings"

// TimeFrame selects a trailing window of a series.
type TimeFrame string

const (
	TimeFrame1D  TimeFrame = "1D"
	TimeFrame1W  TimeFrame = "1W"
	TimeFrame1M  TimeFrame = "1M"
	TimeFrame3M  TimeFrame = "3M"
	TimeFrame1Y  TimeFrame = "1Y"
	TimeFrameAll TimeFrame = "ALL"
)

// TimeFrames lists the selectable frames in display order.
var TimeFrames = []TimeFrame{TimeFrame1D, TimeFrame1W, TimeFrame1M, TimeFrame3M, TimeFrame1Y, TimeFrameAll}

// ParseTimeFrame maps a user token to a TimeFrame. Unrecognized values are ALL.
func ParseTimeFrame(s string) TimeFrame {
	tf := TimeFrame(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range TimeFrames {
		if tf == known {
			return known
		}
	}
	return TimeFrameAll
}

// ValidTimeFrame reports whether s names one of the enumerated frames exactly.
func ValidTimeFrame(s string) bool {
	tf := TimeFrame(strings.ToUpper(strings.TrimSpace(s)))
	for _, known := range TimeFrames {
		if tf == known {
			return true
		}
	}
	return false
}
