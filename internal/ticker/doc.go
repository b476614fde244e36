// Package ticker reconciles a row of animated columns with a stream of
// text values.
//
// Each call to Manager.SetText diffs the new text against the text the
// columns are currently heading toward and applies the cheapest edit
// script: columns that survive are retargeted in place, new columns are
// inserted where characters appeared, and columns whose characters
// disappeared collapse to zero width and are removed on a later update.
// Because existing columns are never recreated, an update arriving in the
// middle of an animation continues smoothly from what is on screen.
//
// Driving the animation is left to the caller. A typical loop looks like:
//
//	m := ticker.New(ticker.WithAlphabet(alphabet.Number()))
//	if err := m.SetText([]rune("1299")); err != nil {
//		return err
//	}
//	for progress := range frames {
//		m.AdvanceAnimation(progress)
//		r.Render(m)
//	}
//	m.OnAnimationSettled()
//
// Subpackages hold the pieces: alphabet defines the ordered units a column
// scrolls through, levenshtein computes edit scripts, and column provides
// the default scrolling column.
package ticker
