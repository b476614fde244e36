// Package source produces the raw values a ticker displays.
//
// A Source runs until its context is cancelled, calling emit for each new
// value. emit is called from the source's own goroutine; the receiver is
// responsible for handing the value to the frame loop.
package source

import (
	"context"
	"errors"
	"time"
)

// Source errors.
var (
	// ErrNoValues indicates a static source with nothing to show.
	ErrNoValues = errors.New("source has no values")

	// ErrInvalidJSON indicates a watched file is not valid JSON.
	ErrInvalidJSON = errors.New("invalid JSON")

	// ErrPathNotFound indicates the JSON path matched nothing.
	ErrPathNotFound = errors.New("JSON path not found")
)

// Source emits ticker values.
type Source interface {
	// Name identifies the source in logs.
	Name() string

	// Run emits values until ctx is cancelled. It returns nil on
	// cancellation and an error only if the source cannot continue.
	Run(ctx context.Context, emit func(string)) error
}

// Static cycles through a fixed list of values.
type Static struct {
	values   []string
	interval time.Duration
}

// NewStatic creates a source that emits values in order, one per interval,
// wrapping around at the end. A single value is emitted once.
func NewStatic(values []string, interval time.Duration) (*Static, error) {
	if len(values) == 0 {
		return nil, ErrNoValues
	}
	if len(values) > 1 && interval <= 0 {
		return nil, errors.New("static source interval must be positive")
	}
	return &Static{
		values:   append([]string(nil), values...),
		interval: interval,
	}, nil
}

// Name implements Source.
func (s *Static) Name() string { return "static" }

// Run implements Source.
func (s *Static) Run(ctx context.Context, emit func(string)) error {
	emit(s.values[0])
	if len(s.values) == 1 {
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for i := 1; ; i++ {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			emit(s.values[i%len(s.values)])
		}
	}
}
