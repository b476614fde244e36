package app

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/dshills/ticker/internal/anim"
	"github.com/dshills/ticker/internal/config"
	"github.com/dshills/ticker/internal/format"
	"github.com/dshills/ticker/internal/renderer"
	"github.com/dshills/ticker/internal/renderer/backend"
	"github.com/dshills/ticker/internal/renderer/core"
	"github.com/dshills/ticker/internal/source"
	"github.com/dshills/ticker/internal/ticker"
	"github.com/dshills/ticker/internal/ticker/alphabet"
	"github.com/dshills/ticker/internal/ticker/column"
)

// bootstrap initializes all components in dependency order.
func (a *App) bootstrap(opts Options) error {
	cfg := opts.Config

	// 1. Alphabet and manager
	alpha, err := resolveAlphabet(cfg.Alphabet())
	if err != nil {
		return initError("alphabet", err)
	}
	style, background, err := resolveStyle(cfg.Style())
	if err != nil {
		return initError("style", err)
	}
	a.manager = ticker.New(
		ticker.WithAlphabet(alpha),
		ticker.WithLogger(WithComponent(a.logger, "ticker")),
		ticker.WithColumnFactory(func(al *alphabet.Alphabet) ticker.Column {
			return column.NewScroll(al, column.WithStyle(style))
		}),
	)

	// 2. Animator
	animCfg := cfg.Animation()
	interp, err := anim.ParseInterpolator(animCfg.Interpolator)
	if err != nil {
		return initError("animator", err)
	}
	var animOpts []anim.Option
	if opts.Clock != nil {
		animOpts = append(animOpts, anim.WithClock(opts.Clock))
	}
	a.animator = anim.New(animCfg.Duration, interp, animOpts...)
	a.frameInterval = anim.FrameInterval(animCfg.FPS)

	// 3. Display
	renderOpts := renderer.DefaultOptions()
	renderOpts.Align = renderer.ParseAlign(cfg.Style().Align)
	renderOpts.Background = core.DefaultStyle().WithBackground(background)
	a.backend = opts.Backend
	if a.plain != nil {
		a.plainRows = backend.NewNullBackend(plainWidth, 1)
		a.backend = a.plainRows
		renderOpts.Align = renderer.AlignLeft
		renderOpts.Row = 0
	}
	if a.backend == nil {
		return initError("backend", fmt.Errorf("no backend given"))
	}
	a.renderer = renderer.New(a.backend, renderOpts)

	// 4. Formatter
	a.formatter, err = buildFormatter(cfg.Format())
	if err != nil {
		return initError("formatter", err)
	}

	// 5. Source
	a.source = opts.Source
	if a.source == nil {
		a.source, err = buildSource(cfg.Source(), WithComponent(a.logger, "source"))
		if err != nil {
			return initError("source", err)
		}
	}

	return nil
}

// resolveAlphabet prefers literal units over the preset name.
func resolveAlphabet(ac config.AlphabetConfig) (*alphabet.Alphabet, error) {
	if ac.Units != "" {
		return alphabet.Parse(ac.Units)
	}
	return alphabet.Preset(ac.Preset)
}

// resolveStyle returns the column style and the row background colour.
func resolveStyle(sc config.StyleConfig) (column.Style, core.Color, error) {
	fg, err := core.ParseColor(sc.Foreground)
	if err != nil {
		return column.Style{}, core.Color{}, fmt.Errorf("foreground: %w", err)
	}
	bg, err := core.ParseColor(sc.Background)
	if err != nil {
		return column.Style{}, core.Color{}, fmt.Errorf("background: %w", err)
	}
	hl, err := core.ParseColor(sc.Highlight)
	if err != nil {
		return column.Style{}, core.Color{}, fmt.Errorf("highlight: %w", err)
	}

	st := column.DefaultStyle()
	st.Base = st.Base.WithForeground(fg).WithBackground(bg)
	st.Highlight = hl
	return st, bg, nil
}

// buildFormatter runs the Lua function first and the template on its
// result. With neither configured values pass through unchanged.
func buildFormatter(fc config.FormatConfig) (format.Formatter, error) {
	var chain []format.Formatter
	if fc.LuaScript != "" {
		l, err := format.NewLuaFile(fc.LuaScript, fc.LuaFunction)
		if err != nil {
			return nil, err
		}
		chain = append(chain, l)
	}
	if fc.Template != "" {
		t, err := format.NewTemplate(fc.Template)
		if err != nil {
			closeAll(chain)
			return nil, err
		}
		chain = append(chain, t)
	}

	switch len(chain) {
	case 0:
		return format.Identity, nil
	case 1:
		return chain[0], nil
	}
	return &closingChain{Formatter: format.Chain(chain...), parts: chain}, nil
}

// closingChain keeps the parts of a chain reachable so a Lua state inside
// it is closed with the app.
type closingChain struct {
	format.Formatter
	parts []format.Formatter
}

func (c *closingChain) Close() error {
	return closeAll(c.parts)
}

func closeAll(fs []format.Formatter) error {
	var first error
	for _, f := range fs {
		if c, ok := f.(interface{ Close() error }); ok {
			if err := c.Close(); err != nil && first == nil {
				first = err
			}
		}
	}
	return first
}

// buildSource watches a file when one is configured and otherwise cycles
// the configured values.
func buildSource(sc config.SourceConfig, logger *zap.Logger) (source.Source, error) {
	switch {
	case sc.File != "":
		var opts []source.FileOption
		if sc.JSONPath != "" {
			opts = append(opts, source.WithJSONPath(sc.JSONPath))
		}
		opts = append(opts, source.WithLogger(logger))
		return source.NewFile(sc.File, opts...)
	case len(sc.Values) > 0:
		return source.NewStatic(sc.Values, sc.Interval)
	}
	return nil, ErrNoSource
}
