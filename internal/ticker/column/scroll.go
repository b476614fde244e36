// Package column provides the default ticker column: a slot that scrolls
// through the alphabet from the unit it shows to the unit it is asked for.
package column

import (
	"math"

	"github.com/dshills/ticker/internal/renderer/core"
	"github.com/dshills/ticker/internal/ticker/alphabet"
)

// Metrics measures units.
type Metrics interface {
	UnitWidth(r rune) float64
}

// CellMetrics measures units in terminal cells.
type CellMetrics struct{}

// UnitWidth returns the cell width of r; alphabet.Empty is zero wide.
func (CellMetrics) UnitWidth(r rune) float64 {
	if r == alphabet.Empty {
		return 0
	}
	return float64(core.RuneWidth(r))
}

// Scroll is a column that scrolls along alphabet order.
//
// Scroll positions are shifted by one so that alphabet.Empty sits at
// position 0, before the first unit. A column appearing from nothing
// therefore scrolls up from the start of the alphabet, and a collapsing
// column scrolls back down to it while its width shrinks.
type Scroll struct {
	alphabet *alphabet.Alphabet
	metrics  Metrics
	style    Style

	current rune
	target  rune

	startPos, endPos     int
	startWidth, endWidth float64
	width                float64
	progress             float64
	animating            bool

	settled []func()
}

// ScrollOption configures a Scroll column.
type ScrollOption func(*Scroll)

// WithMetrics sets how unit widths are measured.
func WithMetrics(m Metrics) ScrollOption {
	return func(s *Scroll) {
		s.metrics = m
	}
}

// WithStyle sets the column style.
func WithStyle(st Style) ScrollOption {
	return func(s *Scroll) {
		s.style = st
	}
}

// NewScroll creates an empty, zero-width column.
func NewScroll(a *alphabet.Alphabet, opts ...ScrollOption) *Scroll {
	s := &Scroll{
		alphabet: a,
		metrics:  CellMetrics{},
		style:    DefaultStyle(),
		current:  alphabet.Empty,
		target:   alphabet.Empty,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// TargetUnit returns the unit the column is heading toward.
func (s *Scroll) TargetUnit() rune { return s.target }

// CurrentUnit returns the unit currently displayed.
func (s *Scroll) CurrentUnit() rune { return s.current }

// CurrentWidth returns the rendered width.
func (s *Scroll) CurrentWidth() float64 { return s.width }

// MinimumRequiredWidth returns the width of the target unit.
func (s *Scroll) MinimumRequiredWidth() float64 { return s.endWidth }

// Animating reports whether a transition is in flight.
func (s *Scroll) Animating() bool { return s.animating }

// SetTargetUnit starts a transition from whatever is displayed now, so a
// redirect mid-animation continues from the visible state. Repeating the
// current target re-bases an in-flight transition onto the displayed state
// and does nothing to a settled column.
func (s *Scroll) SetTargetUnit(r rune) {
	if r == s.target {
		if s.animating {
			s.rebase()
		}
		return
	}
	s.target = r
	s.endPos = s.position(r)
	s.endWidth = s.metrics.UnitWidth(r)
	s.rebase()
	s.animating = true
}

// rebase makes the displayed state the start of the transition.
func (s *Scroll) rebase() {
	s.startPos = s.position(s.current)
	s.startWidth = s.width
	s.progress = 0
}

// AdvanceAnimation sets the displayed unit and width for progress.
func (s *Scroll) AdvanceAnimation(progress float64) {
	if !s.animating {
		return
	}
	s.progress = min(max(progress, 0), 1)

	pos := float64(s.startPos) + float64(s.endPos-s.startPos)*s.progress
	s.current = s.unitAt(int(math.Round(pos)))
	s.width = s.startWidth + (s.endWidth-s.startWidth)*s.progress
	if s.width < 0 {
		s.width = 0
	}
}

// OnAnimationSettled snaps the column to its target and runs any pending
// settle listeners.
func (s *Scroll) OnAnimationSettled() {
	s.current = s.target
	s.width = s.endWidth
	s.startPos = s.endPos
	s.startWidth = s.endWidth
	s.progress = 1
	s.animating = false

	if len(s.settled) == 0 {
		return
	}
	listeners := s.settled
	s.settled = nil
	for _, fn := range listeners {
		fn()
	}
}

// OnSettled registers a one-shot settle listener.
func (s *Scroll) OnSettled(fn func()) {
	if fn != nil {
		s.settled = append(s.settled, fn)
	}
}

// Render draws the displayed unit. Columns narrower than half a cell are
// not drawn.
func (s *Scroll) Render(sink core.Sink) {
	if s.current == alphabet.Empty || s.width < 0.5 {
		return
	}
	sink.Draw(core.NewStyledCell(s.current, s.style.At(s.progress, s.animating)))
}

func (s *Scroll) position(r rune) int {
	if r == alphabet.Empty {
		return 0
	}
	i, err := s.alphabet.IndexOf(r)
	if err != nil {
		return 0
	}
	return i + 1
}

func (s *Scroll) unitAt(pos int) rune {
	if pos <= 0 || pos > s.alphabet.Len() {
		return alphabet.Empty
	}
	return s.alphabet.At(pos - 1)
}
