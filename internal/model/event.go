package model

import "time"

// LoadOutcome classifies how a symbol load ended.
type LoadOutcome string

const (
	OutcomeLoaded        LoadOutcome = "loaded"
	OutcomeNoRows        LoadOutcome = "no_rows"
	OutcomeUnavailable   LoadOutcome = "unavailable"
	OutcomeEmpty         LoadOutcome = "empty"
	OutcomeCancelled     LoadOutcome = "cancelled"
	OutcomeUnknownSymbol LoadOutcome = "unknown_symbol"
)

// LoadEvent is the diagnostic record of one load request.
type LoadEvent struct {
	RequestID string
	Symbol    string
	Source    string
	Outcome   LoadOutcome
	Rows      int
	Rejected  int
	Synthetic bool
	Duration  time.Duration
	Error     string
	At        time.Time
}
