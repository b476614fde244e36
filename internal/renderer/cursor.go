package renderer

import (
	"math"

	"github.com/dshills/ticker/internal/renderer/backend"
	"github.com/dshills/ticker/internal/renderer/core"
)

// Cursor is a core.Sink that writes into a backend along one row.
// The horizontal offset is kept as a float so columns that are partway
// through growing or collapsing still lay out contiguously; cells land on
// the nearest whole terminal column.
type Cursor struct {
	backend backend.Backend
	x, y    int
	offset  float64
	drawn   int
}

// NewCursor creates a cursor whose origin is (x, y).
func NewCursor(b backend.Backend, x, y int) *Cursor {
	return &Cursor{backend: b, x: x, y: y}
}

// Draw paints cell at the cursor. Wide cells also occupy the following
// column, which is blanked so stale content does not show through.
func (c *Cursor) Draw(cell core.Cell) {
	col := c.x + int(math.Round(c.offset))
	c.backend.SetCell(col, c.y, cell)
	if cell.Width == 2 {
		c.backend.SetCell(col+1, c.y, core.Cell{Style: cell.Style})
	}
	c.drawn++
}

// Advance moves the cursor right by width cells.
func (c *Cursor) Advance(width float64) {
	if width > 0 {
		c.offset += width
	}
}

// Offset returns the distance travelled from the origin.
func (c *Cursor) Offset() float64 {
	return c.offset
}

// Drawn returns the number of cells drawn through the cursor.
func (c *Cursor) Drawn() int {
	return c.drawn
}
