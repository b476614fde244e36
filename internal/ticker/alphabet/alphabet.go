// Package alphabet holds the ordered set of units a ticker column may scroll
// through.
//
// An Alphabet is immutable once built. Columns use the order of its units to
// pick a scroll path between two units; the manager uses it to reject text
// containing units it cannot display. A single Alphabet may be shared by any
// number of managers.
package alphabet

import (
	"errors"
	"fmt"

	"github.com/rivo/uniseg"
)

// Empty is the sentinel target of a column that is collapsing out of the
// ticker. It is never a member of an Alphabet.
const Empty rune = 0

var (
	// ErrInvalidAlphabet indicates a unit list that cannot form an alphabet.
	ErrInvalidAlphabet = errors.New("invalid alphabet")

	// ErrUnknownUnit indicates a unit that is not part of the alphabet.
	ErrUnknownUnit = errors.New("unknown unit")
)

// InvalidAlphabetError describes why a unit list was rejected.
type InvalidAlphabetError struct {
	Unit   rune
	Reason string
}

func (e *InvalidAlphabetError) Error() string {
	if e.Unit == Empty {
		return fmt.Sprintf("invalid alphabet: %s", e.Reason)
	}
	return fmt.Sprintf("invalid alphabet: %s: %q", e.Reason, e.Unit)
}

func (e *InvalidAlphabetError) Unwrap() error {
	return ErrInvalidAlphabet
}

// UnknownUnitError reports a unit outside the alphabet.
// Position is the offset of the unit in the text being validated, or -1 for
// a single lookup.
type UnknownUnitError struct {
	Unit     rune
	Position int
}

func (e *UnknownUnitError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("unknown unit %q", e.Unit)
	}
	return fmt.Sprintf("unknown unit %q at position %d", e.Unit, e.Position)
}

func (e *UnknownUnitError) Unwrap() error {
	return ErrUnknownUnit
}

// Alphabet is an ordered list of distinct units with an index lookup.
type Alphabet struct {
	units   []rune
	indices map[rune]int
}

// New builds an alphabet from units. The order of units is kept as the
// scroll order.
func New(units []rune) (*Alphabet, error) {
	if len(units) == 0 {
		return nil, &InvalidAlphabetError{Reason: "no units"}
	}

	indices := make(map[rune]int, len(units))
	for i, r := range units {
		if r == Empty {
			return nil, &InvalidAlphabetError{Reason: "reserved empty unit"}
		}
		if _, dup := indices[r]; dup {
			return nil, &InvalidAlphabetError{Unit: r, Reason: "duplicate unit"}
		}
		indices[r] = i
	}

	owned := make([]rune, len(units))
	copy(owned, units)
	return &Alphabet{units: owned, indices: indices}, nil
}

// Parse splits s into grapheme clusters and builds an alphabet from them.
// Every cluster must be a single rune.
func Parse(s string) (*Alphabet, error) {
	var units []rune
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		rs := g.Runes()
		if len(rs) != 1 {
			return nil, &InvalidAlphabetError{Unit: rs[0], Reason: "multi-rune grapheme"}
		}
		units = append(units, rs[0])
	}
	return New(units)
}

// MustParse is like Parse but panics on error. Intended for presets.
func MustParse(s string) *Alphabet {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Len returns the number of units.
func (a *Alphabet) Len() int {
	return len(a.units)
}

// At returns the unit at index i.
func (a *Alphabet) At(i int) rune {
	return a.units[i]
}

// Units returns a copy of the units in scroll order.
func (a *Alphabet) Units() []rune {
	out := make([]rune, len(a.units))
	copy(out, a.units)
	return out
}

// Contains reports whether r is a unit of the alphabet.
func (a *Alphabet) Contains(r rune) bool {
	_, ok := a.indices[r]
	return ok
}

// IndexOf returns the scroll position of r.
func (a *Alphabet) IndexOf(r rune) (int, error) {
	i, ok := a.indices[r]
	if !ok {
		return 0, &UnknownUnitError{Unit: r, Position: -1}
	}
	return i, nil
}

// Validate returns an *UnknownUnitError for the first unit of text that is
// not in the alphabet.
func (a *Alphabet) Validate(text []rune) error {
	for i, r := range text {
		if _, ok := a.indices[r]; !ok {
			return &UnknownUnitError{Unit: r, Position: i}
		}
	}
	return nil
}

// String returns the units as a string.
func (a *Alphabet) String() string {
	return string(a.units)
}
