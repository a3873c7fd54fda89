package collector

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"BoomDoomRadar/internal/model"
	"BoomDoomRadar/internal/parser"
)

const (
	// DefaultMinPayload is the shortest trimmed payload worth parsing.
	DefaultMinPayload = 10
	// DefaultTimeout bounds one fetch.
	DefaultTimeout = 15 * time.Second
)

// Loader fetches, parses and orders the series for one symbol.
type Loader struct {
	Source     Source
	Parser     *parser.Parser
	MinPayload int
	Timeout    time.Duration
}

// NewLoader creates a Loader with default limits.
func NewLoader(src Source, p *parser.Parser) *Loader {
	return &Loader{
		Source:     src,
		Parser:     p,
		MinPayload: DefaultMinPayload,
		Timeout:    DefaultTimeout,
	}
}

// LoadResult is a successful load. Series may be empty when every row was
// rejected.
type LoadResult struct {
	Symbol   string
	Source   string
	Series   model.Series
	Lines    int
	Rejected int
}

// Load fetches symbol and parses it into an ascending series. Failures are
// *LoadError values of kind ErrSourceUnavailable or ErrSourceEmpty; no
// fallback data is substituted here.
func (l *Loader) Load(ctx context.Context, symbol string) (*LoadResult, error) {
	if l.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.Timeout)
		defer cancel()
	}

	payload, err := l.Source.Fetch(ctx, symbol)
	if err != nil {
		var le *LoadError
		if !errors.As(err, &le) {
			err = unavailable(symbol, err)
		}
		return nil, err
	}

	minPayload := l.MinPayload
	if minPayload <= 0 {
		minPayload = DefaultMinPayload
	}
	text := strings.TrimSpace(string(payload))
	if len(text) < minPayload {
		return nil, &LoadError{
			Symbol: symbol,
			Kind:   ErrSourceEmpty,
			Err:    fmt.Errorf("payload is %d bytes, need %d", len(text), minPayload),
		}
	}

	p := l.Parser
	if p == nil {
		p = parser.New(parser.DefaultMinFields)
	}
	res := p.Parse(text)
	if res.Rejected > 0 {
		log.Printf("[WARN] %s: rejected %d of %d rows", symbol, res.Rejected, res.Lines)
	}

	return &LoadResult{
		Symbol:   symbol,
		Source:   l.Source.Name(),
		Series:   res.Records.Sorted(),
		Lines:    res.Lines,
		Rejected: res.Rejected,
	}, nil
}
