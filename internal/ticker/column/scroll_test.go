package column

import (
	"testing"

	"github.com/dshills/ticker/internal/renderer/core"
	"github.com/dshills/ticker/internal/ticker/alphabet"
)

type recordingSink struct {
	cells   []core.Cell
	advance float64
}

func (s *recordingSink) Draw(cell core.Cell)   { s.cells = append(s.cells, cell) }
func (s *recordingSink) Advance(width float64) { s.advance += width }

func TestNewScrollIsEmpty(t *testing.T) {
	s := NewScroll(alphabet.Number())

	if s.CurrentUnit() != alphabet.Empty || s.TargetUnit() != alphabet.Empty {
		t.Error("new column should show and target Empty")
	}
	if s.CurrentWidth() != 0 || s.MinimumRequiredWidth() != 0 {
		t.Errorf("new column should be zero wide, got %v/%v", s.CurrentWidth(), s.MinimumRequiredWidth())
	}
	if s.Animating() {
		t.Error("new column should not be animating")
	}
}

func TestScrollAppears(t *testing.T) {
	s := NewScroll(alphabet.Number())
	s.SetTargetUnit('5')

	if !s.Animating() {
		t.Fatal("expected animation after SetTargetUnit")
	}
	if s.MinimumRequiredWidth() != 1 {
		t.Errorf("expected minimum width 1, got %v", s.MinimumRequiredWidth())
	}

	// Empty is position 0, '5' is position 6; halfway lands on '2'.
	s.AdvanceAnimation(0.5)
	if s.CurrentUnit() != '2' {
		t.Errorf("expected '2' halfway, got %q", s.CurrentUnit())
	}
	if s.CurrentWidth() != 0.5 {
		t.Errorf("expected width 0.5 halfway, got %v", s.CurrentWidth())
	}

	s.AdvanceAnimation(1)
	if s.CurrentUnit() != '5' || s.CurrentWidth() != 1 {
		t.Errorf("expected '5' at width 1, got %q at %v", s.CurrentUnit(), s.CurrentWidth())
	}

	s.OnAnimationSettled()
	if s.Animating() {
		t.Error("should not be animating after settle")
	}
	if s.CurrentUnit() != '5' {
		t.Errorf("expected '5' after settle, got %q", s.CurrentUnit())
	}
}

func TestScrollSetSameTargetIsNoop(t *testing.T) {
	s := NewScroll(alphabet.Number())
	s.SetTargetUnit('9')
	s.OnAnimationSettled()

	s.SetTargetUnit('9')
	if s.Animating() {
		t.Error("retargeting a settled column to its own unit should not animate")
	}
	if s.CurrentUnit() != '9' || s.CurrentWidth() != 1 {
		t.Errorf("expected settled '9' at width 1, got %q at %v", s.CurrentUnit(), s.CurrentWidth())
	}
}

func TestScrollSameTargetRebasesInFlight(t *testing.T) {
	s := NewScroll(alphabet.Number())
	s.SetTargetUnit('9')
	s.AdvanceAnimation(0.5) // position 5 => '4'
	unit, width := s.CurrentUnit(), s.CurrentWidth()

	s.SetTargetUnit('9')
	s.AdvanceAnimation(0)
	if s.CurrentUnit() != unit || s.CurrentWidth() != width {
		t.Errorf("restart at progress 0 should hold %q at %v, got %q at %v",
			unit, width, s.CurrentUnit(), s.CurrentWidth())
	}
	if s.TargetUnit() != '9' || !s.Animating() {
		t.Error("target and animation should be unchanged")
	}

	s.AdvanceAnimation(1)
	if s.CurrentUnit() != '9' || s.CurrentWidth() != 1 {
		t.Errorf("expected '9' at width 1, got %q at %v", s.CurrentUnit(), s.CurrentWidth())
	}
}

func TestScrollSameEmptyTargetKeepsCollapsing(t *testing.T) {
	s := NewScroll(alphabet.Number())
	s.SetTargetUnit('3')
	s.OnAnimationSettled()

	s.SetTargetUnit(alphabet.Empty)
	s.AdvanceAnimation(0.75)
	width := s.CurrentWidth()

	s.SetTargetUnit(alphabet.Empty)
	s.AdvanceAnimation(0)
	if s.CurrentWidth() != width {
		t.Errorf("collapsing column should stay at width %v, got %v", width, s.CurrentWidth())
	}
	s.AdvanceAnimation(1)
	if s.CurrentWidth() != 0 {
		t.Errorf("expected width 0 after collapse, got %v", s.CurrentWidth())
	}
}

func TestScrollRedirectStartsFromDisplayedState(t *testing.T) {
	s := NewScroll(alphabet.Number())
	s.SetTargetUnit('8')
	s.AdvanceAnimation(0.5) // position 4.5 rounds to 5 => '4'
	if s.CurrentUnit() != '4' {
		t.Fatalf("expected '4', got %q", s.CurrentUnit())
	}
	width := s.CurrentWidth()

	s.SetTargetUnit('0')
	s.AdvanceAnimation(0)
	if s.CurrentUnit() != '4' {
		t.Errorf("redirect should start from '4', got %q", s.CurrentUnit())
	}
	if s.CurrentWidth() != width {
		t.Errorf("redirect should start from width %v, got %v", width, s.CurrentWidth())
	}

	s.AdvanceAnimation(1)
	if s.CurrentUnit() != '0' {
		t.Errorf("expected '0', got %q", s.CurrentUnit())
	}
}

func TestScrollCollapse(t *testing.T) {
	s := NewScroll(alphabet.Number())
	s.SetTargetUnit('3')
	s.OnAnimationSettled()

	s.SetTargetUnit(alphabet.Empty)
	if s.MinimumRequiredWidth() != 0 {
		t.Errorf("collapsing column should need no width, got %v", s.MinimumRequiredWidth())
	}

	s.AdvanceAnimation(0.25)
	if s.CurrentWidth() <= 0 {
		t.Error("width should still be positive mid-collapse")
	}

	s.AdvanceAnimation(1)
	if s.CurrentWidth() != 0 {
		t.Errorf("expected width 0 at the end of collapse, got %v", s.CurrentWidth())
	}
	if s.CurrentUnit() != alphabet.Empty {
		t.Errorf("expected Empty at the end of collapse, got %q", s.CurrentUnit())
	}
}

func TestScrollOnSettledFiresOnce(t *testing.T) {
	s := NewScroll(alphabet.Number())
	calls := 0
	s.OnSettled(func() { calls++ })

	s.SetTargetUnit('1')
	s.OnAnimationSettled()
	s.SetTargetUnit('2')
	s.OnAnimationSettled()

	if calls != 1 {
		t.Errorf("expected one call, got %d", calls)
	}
}

func TestScrollRender(t *testing.T) {
	s := NewScroll(alphabet.Number())
	sink := &recordingSink{}

	s.Render(sink)
	if len(sink.cells) != 0 {
		t.Error("empty column should not draw")
	}

	s.SetTargetUnit('7')
	s.OnAnimationSettled()
	s.Render(sink)
	if len(sink.cells) != 1 || sink.cells[0].Rune != '7' {
		t.Fatalf("expected a single '7' cell, got %+v", sink.cells)
	}
	if sink.advance != 0 {
		t.Error("column must not move the cursor")
	}
}

func TestCellMetricsWideUnit(t *testing.T) {
	m := CellMetrics{}
	if m.UnitWidth('日') != 2 {
		t.Errorf("expected wide unit to be 2 cells, got %v", m.UnitWidth('日'))
	}
	if m.UnitWidth(alphabet.Empty) != 0 {
		t.Error("Empty should be zero wide")
	}
}

type fixedMetrics float64

func (f fixedMetrics) UnitWidth(r rune) float64 {
	if r == alphabet.Empty {
		return 0
	}
	return float64(f)
}

func TestScrollWithMetrics(t *testing.T) {
	s := NewScroll(alphabet.Number(), WithMetrics(fixedMetrics(3)))
	s.SetTargetUnit('1')
	s.AdvanceAnimation(1)
	if s.CurrentWidth() != 3 {
		t.Errorf("expected width 3, got %v", s.CurrentWidth())
	}
}
