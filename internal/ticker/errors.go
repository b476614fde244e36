package ticker

import (
	"errors"

	"github.com/dshills/ticker/internal/ticker/alphabet"
	"github.com/dshills/ticker/internal/ticker/levenshtein"
)

// Manager errors.
var (
	// ErrNotConfigured indicates text was set before an alphabet.
	ErrNotConfigured = errors.New("ticker alphabet not configured")

	// ErrColumnOutOfRange indicates a column index outside the collection.
	ErrColumnOutOfRange = errors.New("column index out of range")

	// ErrUnknownUnit is re-exported for callers that only import ticker.
	ErrUnknownUnit = alphabet.ErrUnknownUnit

	// ErrInvalidAlphabet is re-exported for callers that only import ticker.
	ErrInvalidAlphabet = alphabet.ErrInvalidAlphabet

	// ErrCorruptScript is re-exported for callers that only import ticker.
	ErrCorruptScript = levenshtein.ErrCorruptScript
)
