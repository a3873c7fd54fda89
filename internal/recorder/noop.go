package recorder

import "BoomDoomRadar/internal/model"

// NoopRecorder is used when no database is configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordLoad(_ *model.LoadEvent) error          { return nil }
func (n *NoopRecorder) RecentLoads(_ int) ([]model.LoadEvent, error) { return nil, nil }
func (n *NoopRecorder) Close() error                                 { return nil }
