package ticker

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/ticker/internal/renderer/core"
	"github.com/dshills/ticker/internal/ticker/alphabet"
	"github.com/dshills/ticker/internal/ticker/column"
	"github.com/dshills/ticker/internal/ticker/levenshtein"
)

// Differ computes the edit script between the current target text and a new
// text.
type Differ func(old, next []rune) levenshtein.Script

// Manager owns the ordered columns of a ticker and reconciles them with each
// newly requested text.
//
// A Manager is not safe for concurrent use. All calls, including the
// animation and render hooks, must come from one goroutine.
type Manager struct {
	columns  []Column
	alphabet *alphabet.Alphabet
	factory  ColumnFactory
	differ   Differ
	logger   *zap.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for reconciliation diagnostics.
func WithLogger(l *zap.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// WithColumnFactory sets how new columns are created.
func WithColumnFactory(f ColumnFactory) Option {
	return func(m *Manager) {
		if f != nil {
			m.factory = f
		}
	}
}

// WithDiffer replaces the edit script computation.
func WithDiffer(d Differ) Option {
	return func(m *Manager) {
		if d != nil {
			m.differ = d
		}
	}
}

// WithAlphabet installs an alphabet at construction time.
func WithAlphabet(a *alphabet.Alphabet) Option {
	return func(m *Manager) {
		m.alphabet = a
	}
}

// DefaultColumnFactory creates scrolling terminal columns.
func DefaultColumnFactory(a *alphabet.Alphabet) Column {
	return column.NewScroll(a)
}

// New creates a manager. Without WithAlphabet, ConfigureAlphabet or
// UseAlphabet must be called before SetText.
func New(opts ...Option) *Manager {
	m := &Manager{
		factory: DefaultColumnFactory,
		differ:  levenshtein.Compute,
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// ConfigureAlphabet builds an alphabet from units and installs it. On error
// the previous alphabet stays in effect.
func (m *Manager) ConfigureAlphabet(units []rune) error {
	a, err := alphabet.New(units)
	if err != nil {
		return err
	}
	m.UseAlphabet(a)
	return nil
}

// UseAlphabet installs a, which may be shared with other managers. Existing
// columns are dropped since their scroll paths belong to the old alphabet.
func (m *Manager) UseAlphabet(a *alphabet.Alphabet) {
	if m.alphabet == a {
		return
	}
	m.alphabet = a
	if len(m.columns) > 0 {
		m.logger.Debug("alphabet replaced, clearing columns", zap.Int("columns", len(m.columns)))
		m.columns = nil
	}
}

// Alphabet returns the configured alphabet, or nil.
func (m *Manager) Alphabet() *alphabet.Alphabet {
	return m.alphabet
}

// Len returns the number of columns, including collapsing ones.
func (m *Manager) Len() int {
	return len(m.columns)
}

// SetText reconciles the columns with text.
//
// Fully collapsed columns are pruned first. The remaining columns' target
// units are diffed against text and the script is replayed: kept columns
// are retargeted, inserted columns are created already targeting their
// unit, and deleted columns are retargeted to alphabet.Empty so they
// collapse. Nothing is mutated if text is rejected or the script is corrupt.
func (m *Manager) SetText(text []rune) error {
	if m.alphabet == nil {
		return ErrNotConfigured
	}
	if err := m.alphabet.Validate(text); err != nil {
		return err
	}

	old := make([]rune, 0, len(m.columns))
	kept := make([]Column, 0, len(m.columns))
	for _, c := range m.columns {
		if c.CurrentWidth() == 0 && c.TargetUnit() == alphabet.Empty {
			continue
		}
		kept = append(kept, c)
		old = append(old, c.TargetUnit())
	}

	script := m.differ(old, text)
	if err := script.Validate(len(old), len(text)); err != nil {
		m.logger.Error("rejecting edit script", zap.Stringer("script", script), zap.Error(err))
		return err
	}

	pruned := len(m.columns) - len(kept)
	columns, err := m.replay(kept, text, script)
	if err != nil {
		return err
	}
	m.columns = columns

	if ce := m.logger.Check(zap.DebugLevel, "text set"); ce != nil {
		same, ins, del := script.Stat()
		ce.Write(
			zap.String("text", string(text)),
			zap.Int("pruned", pruned),
			zap.Int("same", same),
			zap.Int("insert", ins),
			zap.Int("delete", del),
		)
	}
	return nil
}

// replay applies script to columns, which must not be shared with m yet.
func (m *Manager) replay(columns []Column, text []rune, script levenshtein.Script) ([]Column, error) {
	col, pos := 0, 0
	for i, action := range script {
		switch action {
		case levenshtein.Insert:
			columns = append(columns, nil)
			copy(columns[col+1:], columns[col:])
			columns[col] = m.factory(m.alphabet)
			fallthrough
		case levenshtein.Same:
			columns[col].SetTargetUnit(text[pos])
			col++
			pos++
		case levenshtein.Delete:
			columns[col].SetTargetUnit(alphabet.Empty)
			col++
		default:
			return nil, &levenshtein.CorruptScriptError{Index: i, Action: action, Reason: "unknown action"}
		}
	}
	return columns, nil
}

// ShouldDebounce reports whether text equals the current target text, in
// which case SetText would only restart animations already in flight.
func (m *Manager) ShouldDebounce(text []rune) bool {
	i := 0
	for _, c := range m.columns {
		target := c.TargetUnit()
		if target == alphabet.Empty {
			continue
		}
		if i >= len(text) || text[i] != target {
			return false
		}
		i++
	}
	return i == len(text)
}

// TargetText returns the last requested text, read back from the columns.
func (m *Manager) TargetText() []rune {
	text := make([]rune, 0, len(m.columns))
	for _, c := range m.columns {
		if r := c.TargetUnit(); r != alphabet.Empty {
			text = append(text, r)
		}
	}
	return text
}

// CurrentText returns the units currently displayed, left to right.
func (m *Manager) CurrentText() []rune {
	text := make([]rune, 0, len(m.columns))
	for _, c := range m.columns {
		if r := c.CurrentUnit(); r != alphabet.Empty {
			text = append(text, r)
		}
	}
	return text
}

// MinimumRequiredWidth returns the width needed to show every target unit.
func (m *Manager) MinimumRequiredWidth() float64 {
	var width float64
	for _, c := range m.columns {
		width += c.MinimumRequiredWidth()
	}
	return width
}

// CurrentWidth returns the rendered width of all columns.
func (m *Manager) CurrentWidth() float64 {
	var width float64
	for _, c := range m.columns {
		width += c.CurrentWidth()
	}
	return width
}

// AdvanceAnimation moves every column to the given progress, clamped to
// [0, 1].
func (m *Manager) AdvanceAnimation(progress float64) {
	progress = min(max(progress, 0), 1)
	for _, c := range m.columns {
		c.AdvanceAnimation(progress)
	}
}

// OnAnimationSettled tells every column its transition is complete.
func (m *Manager) OnAnimationSettled() {
	for _, c := range m.columns {
		c.OnAnimationSettled()
	}
}

// NotifySettled runs fn once, the next time the column at index settles.
func (m *Manager) NotifySettled(index int, fn func()) error {
	if index < 0 || index >= len(m.columns) {
		return fmt.Errorf("%w: %d of %d", ErrColumnOutOfRange, index, len(m.columns))
	}
	m.columns[index].OnSettled(fn)
	return nil
}

// Render draws the columns left to right, advancing sink by each column's
// current width.
func (m *Manager) Render(sink core.Sink) {
	for _, c := range m.columns {
		c.Render(sink)
		sink.Advance(c.CurrentWidth())
	}
}
