package renderer

import (
	"math"

	"github.com/dshills/ticker/internal/renderer/backend"
	"github.com/dshills/ticker/internal/renderer/core"
)

// Drawable is anything that lays itself out along a Sink, such as a
// ticker.Manager.
type Drawable interface {
	Render(sink core.Sink)
	CurrentWidth() float64
}

// Align controls where a drawable sits on its row.
type Align uint8

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
)

// ParseAlign maps "left", "center" and "right" to an Align. Unknown names
// fall back to AlignLeft.
func ParseAlign(s string) Align {
	switch s {
	case "center", "centre":
		return AlignCenter
	case "right":
		return AlignRight
	default:
		return AlignLeft
	}
}

// Options configures the renderer.
type Options struct {
	Align      Align
	Row        int        // Row to draw on; negative centres vertically
	Background core.Style // Style used to clear the row
}

// DefaultOptions returns sensible default options.
func DefaultOptions() Options {
	return Options{
		Align:      AlignCenter,
		Row:        -1,
		Background: core.DefaultStyle(),
	}
}

// Renderer draws a single Drawable onto one row of a backend.
type Renderer struct {
	opts       Options
	backend    backend.Backend
	frameCount uint64
}

// New creates a new renderer with the given backend and options.
func New(b backend.Backend, opts Options) *Renderer {
	return &Renderer{opts: opts, backend: b}
}

// Render clears the target row, draws d, and flushes the backend.
func (r *Renderer) Render(d Drawable) {
	width, height := r.backend.Size()
	row := r.opts.Row
	if row < 0 {
		row = height / 2
	}

	blank := core.Cell{Rune: ' ', Width: 1, Style: r.opts.Background}
	for x := 0; x < width; x++ {
		r.backend.SetCell(x, row, blank)
	}

	d.Render(NewCursor(r.backend, r.originX(width, d.CurrentWidth()), row))
	r.backend.Show()
	r.frameCount++
}

func (r *Renderer) originX(width int, content float64) int {
	switch r.opts.Align {
	case AlignCenter:
		return max(0, int(math.Round((float64(width)-content)/2)))
	case AlignRight:
		return max(0, width-int(math.Ceil(content)))
	default:
		return 0
	}
}

// FrameCount returns the number of frames rendered.
func (r *Renderer) FrameCount() uint64 {
	return r.frameCount
}
