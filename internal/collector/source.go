package collector

import (
	"context"
	"errors"
	"fmt"
)

// Load failure kinds. Test with errors.Is.
var (
	// ErrSourceUnavailable covers transport failures and non-success responses.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrSourceEmpty means the source answered with a payload too short to hold data.
	ErrSourceEmpty = errors.New("source empty")
)

// Source fetches the raw CSV payload for one symbol.
type Source interface {
	Fetch(ctx context.Context, symbol string) ([]byte, error)
	Name() string
}

// LoadError carries the failing symbol alongside the failure kind and cause.
type LoadError struct {
	Symbol string
	Kind   error
	Err    error
}

func (e *LoadError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("load %s: %v", e.Symbol, e.Kind)
	}
	return fmt.Sprintf("load %s: %v: %v", e.Symbol, e.Kind, e.Err)
}

// Is matches the failure kind, so errors.Is(err, ErrSourceEmpty) works.
func (e *LoadError) Is(target error) bool { return e.Kind == target }

func (e *LoadError) Unwrap() error { return e.Err }

func unavailable(symbol string, err error) error {
	return &LoadError{Symbol: symbol, Kind: ErrSourceUnavailable, Err: err}
}
