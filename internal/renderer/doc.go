// Package renderer draws a ticker onto one row of a display backend.
//
// Architecture:
//
//	┌─────────────────────────────────────────┐
//	│        Renderer (row, alignment)        │
//	├─────────────────────────────────────────┤
//	│   Cursor (core.Sink, fractional x)      │
//	├─────────────────────────────────────────┤
//	│           Backend Abstraction           │
//	├─────────────────────────────────────────┤
//	│   Terminal (tcell) │ NullBackend        │
//	└─────────────────────────────────────────┘
//
// Columns draw at the cursor and advance it by their current width, which
// may be fractional while a column grows or collapses. The cursor keeps the
// exact offset and rounds only when placing a cell.
//
// Usage:
//
//	screen, _ := backend.NewTerminal()
//	r := renderer.New(screen, renderer.DefaultOptions())
//	r.Render(manager)
package renderer
