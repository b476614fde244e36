// Package app wires configuration, a value source, a formatter and the
// ticker manager into a running display.
//
// Everything that touches the manager, the animator or the renderer runs
// on the goroutine calling Run. Sources and backend event polling run on
// their own goroutines and hand their results to the loop over channels.
package app

import (
	"io"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/dshills/ticker/internal/anim"
	"github.com/dshills/ticker/internal/config"
	"github.com/dshills/ticker/internal/format"
	"github.com/dshills/ticker/internal/renderer"
	"github.com/dshills/ticker/internal/renderer/backend"
	"github.com/dshills/ticker/internal/source"
	"github.com/dshills/ticker/internal/ticker"
)

// plainWidth is the row width used when rendering without a terminal.
const plainWidth = 512

// Options configures the application.
type Options struct {
	// Config holds the loaded settings. Required.
	Config *config.Config

	// Backend is the display. Ignored when Plain is set.
	Backend backend.Backend

	// Source overrides the source described by the configuration.
	Source source.Source

	// Logger receives application logs. Defaults to a no-op logger.
	Logger *zap.Logger

	// Plain, when set, renders off-screen and writes each settled line here.
	Plain io.Writer

	// ExitWhenDone makes Run return once the source has finished and the
	// last value has settled.
	ExitWhenDone bool

	// Clock drives the animator. Defaults to time.Now.
	Clock func() time.Time
}

// App is the running ticker.
type App struct {
	session string
	logger  *zap.Logger

	manager   *ticker.Manager
	animator  *anim.Animator
	renderer  *renderer.Renderer
	backend   backend.Backend
	formatter format.Formatter
	source    source.Source

	frameInterval time.Duration
	now           func() time.Time

	plain     io.Writer
	plainRows *backend.NullBackend
	lastPlain string

	exitWhenDone bool
	running      atomic.Bool
}

// New builds an application from opts.
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, initError("config", config.ErrSettingNotFound)
	}
	if err := opts.Config.Validate(); err != nil {
		return nil, initError("config", err)
	}

	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	a := &App{
		session:      uuid.NewString(),
		now:          time.Now,
		plain:        opts.Plain,
		exitWhenDone: opts.ExitWhenDone,
	}
	a.logger = logger.With(zap.String("session", a.session))
	if opts.Clock != nil {
		a.now = opts.Clock
	}

	if err := a.bootstrap(opts); err != nil {
		a.Close()
		return nil, err
	}

	a.logger.Info("ticker ready",
		zap.String("source", a.source.Name()),
		zap.Int("units", a.manager.Alphabet().Len()),
		zap.Duration("duration", a.animator.Duration()),
		zap.Bool("plain", a.plain != nil),
	)
	return a, nil
}

// Session returns the identifier attached to every log line of this run.
func (a *App) Session() string {
	return a.session
}

// Manager returns the column manager. It must only be used from the
// goroutine running Run, or after Run has returned.
func (a *App) Manager() *ticker.Manager {
	return a.manager
}

// Close releases resources held by the formatter.
func (a *App) Close() error {
	if c, ok := a.formatter.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
