package source

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
)

// Lines emits each non-blank line read from r, so the ticker can sit at
// the end of a shell pipeline.
type Lines struct {
	r         io.Reader
	name      string
	stopAtEOF bool
}

// LinesOption configures a Lines source.
type LinesOption func(*Lines)

// StopAtEOF makes Run return as soon as the input ends.
func StopAtEOF() LinesOption {
	return func(l *Lines) {
		l.stopAtEOF = true
	}
}

// NewLines creates a line source. name is used in logs.
func NewLines(r io.Reader, name string, opts ...LinesOption) *Lines {
	l := &Lines{r: r, name: name}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Name implements Source.
func (l *Lines) Name() string { return "lines:" + l.name }

// Run implements Source. After the input ends it waits for cancellation so
// the last value stays on screen, unless StopAtEOF was given.
func (l *Lines) Run(ctx context.Context, emit func(string)) error {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		scanner := bufio.NewScanner(l.r)
		for scanner.Scan() {
			line := strings.TrimSpace(scanner.Text())
			if line == "" {
				continue
			}
			select {
			case lines <- line:
			case <-ctx.Done():
				return
			}
		}
		errc <- scanner.Err()
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line := <-lines:
			emit(line)
		case err := <-errc:
			if err != nil {
				return fmt.Errorf("reading %s: %w", l.name, err)
			}
			if l.stopAtEOF {
				return nil
			}
			<-ctx.Done()
			return nil
		}
	}
}
