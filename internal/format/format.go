// Package format turns raw source values into the text a ticker shows.
package format

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Formatter errors.
var (
	// ErrBadTemplate indicates a template without exactly one verb.
	ErrBadTemplate = errors.New("template must contain exactly one verb")

	// ErrNotNumeric indicates a numeric verb applied to a non-number.
	ErrNotNumeric = errors.New("value is not numeric")

	// ErrFormatterClosed is returned by a closed Lua formatter.
	ErrFormatterClosed = errors.New("formatter is closed")
)

// Formatter rewrites a value for display.
type Formatter interface {
	Format(value string) (string, error)
}

// Func adapts a function to Formatter.
type Func func(value string) (string, error)

// Format implements Formatter.
func (f Func) Format(value string) (string, error) { return f(value) }

// Identity returns values unchanged.
var Identity Formatter = Func(func(v string) (string, error) { return v, nil })

// Chain applies formatters in order, stopping at the first error.
func Chain(fs ...Formatter) Formatter {
	return Func(func(v string) (string, error) {
		var err error
		for _, f := range fs {
			if v, err = f.Format(v); err != nil {
				return "", err
			}
		}
		return v, nil
	})
}

var verbPattern = regexp.MustCompile(`%[-+# 0]*[0-9]*(?:\.[0-9]+)?[a-zA-Z%]`)

// Template formats values with a printf-style template holding one verb.
// String verbs (%s, %q, %v) take the value as is; numeric verbs
// (%d, %f, %e, %g, %x) parse it first, so "%.2f" rounds "3.14159" to
// "3.14".
type Template struct {
	layout string
	verb   byte
}

// NewTemplate parses layout. A literal percent sign is written %%.
func NewTemplate(layout string) (*Template, error) {
	var verbs []string
	for _, m := range verbPattern.FindAllString(layout, -1) {
		if m != "%%" {
			verbs = append(verbs, m)
		}
	}
	if len(verbs) != 1 {
		return nil, fmt.Errorf("%w: %q has %d", ErrBadTemplate, layout, len(verbs))
	}
	verb := verbs[0][len(verbs[0])-1]
	if !strings.ContainsRune("sqvdfFeEgGxX", rune(verb)) {
		return nil, fmt.Errorf("%w: unsupported verb %q", ErrBadTemplate, verbs[0])
	}
	return &Template{layout: layout, verb: verb}, nil
}

// Format implements Formatter.
func (t *Template) Format(value string) (string, error) {
	switch t.verb {
	case 's', 'q', 'v':
		return fmt.Sprintf(t.layout, value), nil
	case 'd', 'x', 'X':
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrNotNumeric, value)
		}
		return fmt.Sprintf(t.layout, int64(n)), nil
	default:
		n, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return "", fmt.Errorf("%w: %q", ErrNotNumeric, value)
		}
		return fmt.Sprintf(t.layout, n), nil
	}
}
