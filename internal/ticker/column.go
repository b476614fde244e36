package ticker

import (
	"github.com/dshills/ticker/internal/renderer/core"
	"github.com/dshills/ticker/internal/ticker/alphabet"
)

// Column is one animated slot of the ticker.
//
// A column moves from its current unit toward its target unit as the
// animation advances. A target of alphabet.Empty means the column is
// collapsing; its width shrinks to zero and the manager prunes it on the
// next SetText.
type Column interface {
	// TargetUnit returns the unit the column is animating toward.
	TargetUnit() rune

	// CurrentUnit returns the unit currently displayed.
	CurrentUnit() rune

	// SetTargetUnit begins or redirects a transition from the displayed
	// state. Setting the target the column is already heading toward must
	// not change what is displayed; a settled column ignores it.
	SetTargetUnit(r rune)

	// CurrentWidth returns the rendered width, >= 0.
	CurrentWidth() float64

	// MinimumRequiredWidth returns the width needed to display the target.
	MinimumRequiredWidth() float64

	// AdvanceAnimation updates the rendering state for a global progress
	// value in [0, 1].
	AdvanceAnimation(progress float64)

	// OnAnimationSettled finalizes the transition: the current unit becomes
	// the target unit.
	OnAnimationSettled()

	// OnSettled registers fn to run once, the next time the column settles.
	OnSettled(fn func())

	// Render draws the column at the sink's cursor without moving it.
	Render(sink core.Sink)
}

// ColumnFactory creates columns for the given alphabet.
type ColumnFactory func(a *alphabet.Alphabet) Column
