package dashboard

import (
	"time"

	"BoomDoomRadar/internal/model"
	"BoomDoomRadar/internal/strategy"
	"BoomDoomRadar/internal/timeframe"
)

// View is an immutable snapshot of the dashboard.
type View struct {
	Coin       model.Coin
	Selected   bool
	TimeFrame  model.TimeFrame
	Series     model.Series // filtered by TimeFrame
	Total      int          // records before filtering
	Summary    strategy.Summary
	HasSummary bool
	Synthetic  bool
	LoadError  error
	RequestID  string
	LoadedAt   time.Time
}

// View returns the current snapshot with the active time frame applied.
func (d *Dashboard) View() View {
	d.mu.Lock()
	v := View{
		Coin:      d.coin,
		Selected:  d.selected,
		TimeFrame: d.frame,
		Total:     len(d.series),
		Synthetic: d.synthetic,
		LoadError: d.loadErr,
		RequestID: d.requestID,
		LoadedAt:  d.loadedAt,
	}
	series := d.series
	d.mu.Unlock()

	v.Series = timeframe.Filter(series, v.TimeFrame)
	v.Summary, v.HasSummary = strategy.Summarize(v.Series, d.weights)
	return v
}

// Full returns the unfiltered series of the current selection.
func (d *Dashboard) Full() model.Series {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.series
}
