// Package levenshtein computes the column edit script used to reconcile a
// ticker's current target text with a newly requested text.
package levenshtein

import (
	"errors"
	"fmt"
	"strings"
)

// Action is one step of an edit script.
type Action uint8

const (
	// Same keeps the column and retargets it to the new unit, which may
	// differ from the old one.
	Same Action = iota + 1

	// Insert creates a new column for the next new unit.
	Insert

	// Delete collapses the column out of the ticker.
	Delete
)

// String returns a human-readable representation of the action.
func (a Action) String() string {
	switch a {
	case Same:
		return "same"
	case Insert:
		return "insert"
	case Delete:
		return "delete"
	default:
		return fmt.Sprintf("action(%d)", uint8(a))
	}
}

// ErrCorruptScript indicates an edit script that cannot be replayed.
var ErrCorruptScript = errors.New("corrupt edit script")

// CorruptScriptError describes where a script went wrong.
type CorruptScriptError struct {
	Index  int    // Offset of the failing action, or -1 for the script as a whole
	Action Action // Offending action, zero if not action-specific
	Reason string
}

func (e *CorruptScriptError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("corrupt edit script: %s", e.Reason)
	}
	return fmt.Sprintf("corrupt edit script: %s at action %d (%s)", e.Reason, e.Index, e.Action)
}

func (e *CorruptScriptError) Unwrap() error {
	return ErrCorruptScript
}

// Script is an ordered list of actions aligned against an old and a new
// sequence.
type Script []Action

// Stat reports the number of each action in s.
func (s Script) Stat() (same, ins, del int) {
	for _, a := range s {
		switch a {
		case Same:
			same++
		case Insert:
			ins++
		case Delete:
			del++
		}
	}
	return same, ins, del
}

// Validate checks that s consumes exactly oldLen old units and newLen new
// units, and contains only known actions.
func (s Script) Validate(oldLen, newLen int) error {
	oldPos, newPos := 0, 0
	for i, a := range s {
		switch a {
		case Same:
			oldPos++
			newPos++
		case Insert:
			newPos++
		case Delete:
			oldPos++
		default:
			return &CorruptScriptError{Index: i, Action: a, Reason: "unknown action"}
		}
		if oldPos > oldLen {
			return &CorruptScriptError{Index: i, Action: a, Reason: "old cursor past end"}
		}
		if newPos > newLen {
			return &CorruptScriptError{Index: i, Action: a, Reason: "new cursor past end"}
		}
	}
	if oldPos != oldLen || newPos != newLen {
		return &CorruptScriptError{
			Index:  -1,
			Reason: fmt.Sprintf("consumed %d/%d old and %d/%d new units", oldPos, oldLen, newPos, newLen),
		}
	}
	return nil
}

// String renders s as a compact list, e.g. "[same insert delete]".
func (s Script) String() string {
	parts := make([]string, len(s))
	for i, a := range s {
		parts[i] = a.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}

// Replay applies s to old, taking inserted and retargeted units from
// next, and returns the resulting sequence.
func Replay(old, next []rune, s Script) ([]rune, error) {
	if err := s.Validate(len(old), len(next)); err != nil {
		return nil, err
	}
	out := make([]rune, 0, len(next))
	newPos := 0
	for _, a := range s {
		switch a {
		case Same, Insert:
			out = append(out, next[newPos])
			newPos++
		case Delete:
		}
	}
	return out, nil
}
