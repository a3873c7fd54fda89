// Package dashboard holds the selected coin, its series and the active time
// frame, and turns loads into a consistent view.
//
// Only one load is in flight at a time: selecting a coin cancels the load
// started by the previous selection, and a result that arrives after a newer
// selection is discarded with ErrSuperseded.
package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"

	"BoomDoomRadar/internal/coins"
	"BoomDoomRadar/internal/collector"
	"BoomDoomRadar/internal/model"
	"BoomDoomRadar/internal/recorder"
	"BoomDoomRadar/internal/strategy"
)

var (
	// ErrUnknownSymbol means the query matched no coin in the directory.
	ErrUnknownSymbol = errors.New("unknown symbol")
	// ErrSuperseded means a newer selection replaced this load.
	ErrSuperseded = errors.New("load superseded by a newer selection")
	// ErrNoSelection means no coin has been selected yet.
	ErrNoSelection = errors.New("no coin selected")
)

// SeriesLoader loads the series for one symbol.
type SeriesLoader interface {
	Load(ctx context.Context, symbol string) (*collector.LoadResult, error)
}

// Notifier delivers user-facing notices.
type Notifier interface {
	Notify(ctx context.Context, n model.Notice) error
}

// Options tunes a Dashboard. Zero values take defaults.
type Options struct {
	TimeFrame model.TimeFrame
	Weights   strategy.Weights
	MockDays  int
	Now       func() time.Time
	// StatePath, when set, receives the selection after every change.
	StatePath string
}

// Dashboard is safe for concurrent use.
type Dashboard struct {
	loader    SeriesLoader
	coins     *coins.Directory
	notifier  Notifier
	recorder  recorder.Recorder
	weights   strategy.Weights
	mockDays  int
	now       func() time.Time
	statePath string

	mu        sync.Mutex
	coin      model.Coin
	selected  bool
	series    model.Series
	frame     model.TimeFrame
	synthetic bool
	loadErr   error
	requestID string
	loadedAt  time.Time
	gen       uint64
	cancel    context.CancelFunc
}

// New creates a Dashboard. rec and n may be nil.
func New(loader SeriesLoader, dir *coins.Directory, n Notifier, rec recorder.Recorder, opts Options) *Dashboard {
	if dir == nil {
		dir = coins.Default()
	}
	if rec == nil {
		rec = recorder.NewNoopRecorder()
	}
	if opts.Weights == (strategy.Weights{}) {
		opts.Weights = strategy.DefaultWeights()
	}
	if opts.MockDays <= 0 {
		opts.MockDays = collector.DefaultMockDays
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Dashboard{
		loader:    loader,
		coins:     dir,
		notifier:  n,
		recorder:  rec,
		weights:   opts.Weights,
		mockDays:  opts.MockDays,
		now:       opts.Now,
		statePath: opts.StatePath,
		frame:     model.ParseTimeFrame(string(opts.TimeFrame)),
	}
}

// Coins returns the directory used to resolve selections.
func (d *Dashboard) Coins() *coins.Directory { return d.coins }

// Select resolves query against the coin directory and loads its series.
// An unknown query leaves the current state untouched. A failed or empty
// load is replaced by generated data and reported through the notifier;
// the returned error is nil in that case and the view carries the cause.
func (d *Dashboard) Select(ctx context.Context, query string) (View, error) {
	coin, ok := d.coins.Lookup(query)
	if !ok {
		d.notify(ctx, model.Notice{
			Level: model.NoticeWarn,
			Title: "Unknown coin",
			Text:  fmt.Sprintf("No coin matches %q. Try /search.", query),
		})
		d.record(&model.LoadEvent{
			RequestID: uuid.NewString(),
			Symbol:    query,
			Outcome:   model.OutcomeUnknownSymbol,
			At:        d.now(),
		})
		return d.View(), fmt.Errorf("select %q: %w", query, ErrUnknownSymbol)
	}
	return d.load(ctx, coin)
}

// Refresh reloads the currently selected coin.
func (d *Dashboard) Refresh(ctx context.Context) (View, error) {
	d.mu.Lock()
	coin, selected := d.coin, d.selected
	d.mu.Unlock()
	if !selected {
		return View{}, ErrNoSelection
	}
	return d.load(ctx, coin)
}

// SetTimeFrame changes the active frame. Unrecognized values select ALL.
func (d *Dashboard) SetTimeFrame(frame string) View {
	d.mu.Lock()
	d.frame = model.ParseTimeFrame(frame)
	d.mu.Unlock()
	d.persist()
	return d.View()
}

// Cancel aborts the in-flight load, if any.
func (d *Dashboard) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
}

func (d *Dashboard) load(ctx context.Context, coin model.Coin) (View, error) {
	loadCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	d.mu.Lock()
	if d.cancel != nil {
		d.cancel()
	}
	d.gen++
	gen := d.gen
	d.cancel = cancel
	d.mu.Unlock()

	evt := &model.LoadEvent{
		RequestID: uuid.NewString(),
		Symbol:    coin.Symbol,
		At:        d.now(),
	}
	start := time.Now()
	res, err := d.loader.Load(loadCtx, coin.Symbol)
	evt.Duration = time.Since(start)

	d.mu.Lock()
	if gen != d.gen {
		d.mu.Unlock()
		evt.Outcome = model.OutcomeCancelled
		evt.Error = ErrSuperseded.Error()
		d.record(evt)
		return View{}, fmt.Errorf("load %s: %w", coin.Symbol, ErrSuperseded)
	}
	d.cancel = nil
	if ctxErr := ctx.Err(); ctxErr != nil {
		d.mu.Unlock()
		evt.Outcome = model.OutcomeCancelled
		evt.Error = ctxErr.Error()
		d.record(evt)
		return View{}, fmt.Errorf("load %s: %w", coin.Symbol, ctxErr)
	}

	series, cause := d.resolve(coin, res, err, evt)
	d.coin = coin
	d.selected = true
	d.series = series
	d.synthetic = evt.Synthetic
	d.loadErr = cause
	d.requestID = evt.RequestID
	d.loadedAt = evt.At
	d.mu.Unlock()

	if evt.Synthetic {
		log.Printf("[WARN] %s: using generated data: %v", coin.Symbol, cause)
		d.notify(ctx, model.Notice{
			Level: model.NoticeWarn,
			Title: "Synthetic data in use",
			Text:  fmt.Sprintf("Could not load %s (%v). Showing generated sample data.", coin.Symbol, cause),
		})
	} else {
		log.Printf("[INFO] %s: loaded %d records from %s", coin.Symbol, len(series), evt.Source)
	}
	d.record(evt)
	d.persist()
	return d.View(), nil
}

// resolve picks the series to show and fills in evt. cause is nil for a
// successful load.
func (d *Dashboard) resolve(coin model.Coin, res *collector.LoadResult, err error, evt *model.LoadEvent) (model.Series, error) {
	if err == nil && res != nil {
		evt.Source = res.Source
		evt.Rows = len(res.Series)
		evt.Rejected = res.Rejected
		if len(res.Series) > 0 {
			evt.Outcome = model.OutcomeLoaded
			return res.Series, nil
		}
		evt.Outcome = model.OutcomeNoRows
		err = fmt.Errorf("load %s: no usable rows in %d lines", coin.Symbol, res.Lines)
	} else if errors.Is(err, collector.ErrSourceEmpty) {
		evt.Outcome = model.OutcomeEmpty
	} else {
		evt.Outcome = model.OutcomeUnavailable
		if err == nil {
			err = fmt.Errorf("load %s: %w", coin.Symbol, collector.ErrSourceUnavailable)
		}
	}

	evt.Error = err.Error()
	evt.Synthetic = true
	if evt.Source == "" {
		evt.Source = "mock"
	}
	return collector.Generate(coin.Symbol, d.now(), d.mockDays), err
}

func (d *Dashboard) notify(ctx context.Context, n model.Notice) {
	if d.notifier == nil {
		return
	}
	if err := d.notifier.Notify(context.WithoutCancel(ctx), n); err != nil {
		log.Printf("[ERROR] send notice: %v", err)
	}
}

func (d *Dashboard) record(evt *model.LoadEvent) {
	if err := d.recorder.RecordLoad(evt); err != nil {
		log.Printf("[ERROR] record load event: %v", err)
	}
}
