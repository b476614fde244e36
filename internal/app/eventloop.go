package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/dshills/ticker/internal/renderer/backend"
)

// Run drives the ticker until ctx is cancelled, the user quits, or the
// source fails. A quit key returns ErrQuit.
func (a *App) Run(ctx context.Context) error {
	if !a.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}
	defer a.running.Store(false)

	if err := a.backend.Init(); err != nil {
		return initError("backend", err)
	}
	defer a.backend.Shutdown()
	a.backend.HideCursor()

	ctx, cancel := context.WithCancel(ctx)
	// Wake the event poller once the loop is gone.
	defer a.backend.PostEvent(backend.Event{Type: backend.EventInterrupt})
	defer cancel()

	values := make(chan string)
	sourceDone := make(chan error, 1)
	go func() {
		sourceDone <- a.source.Run(ctx, func(v string) {
			select {
			case values <- v:
			case <-ctx.Done():
			}
		})
	}()

	events := make(chan backend.Event)
	go a.pollEvents(ctx, events)

	frames := time.NewTicker(a.frameInterval)
	frames.Stop()
	defer frames.Stop()

	a.logger.Debug("loop started", zap.Duration("frame_interval", a.frameInterval))
	a.render()

	finished := false
	for {
		select {
		case <-ctx.Done():
			return nil

		case err := <-sourceDone:
			if err != nil {
				return NewOperationError("run", a.source.Name(), err)
			}
			a.logger.Debug("source finished")
			sourceDone = nil
			finished = true
			if a.exitWhenDone && !a.animator.Running() {
				return nil
			}

		case v := <-values:
			if a.apply(v) {
				frames.Reset(a.frameInterval)
			}

		case ev := <-events:
			if ev.IsQuit() {
				return ErrQuit
			}
			if ev.Type == backend.EventResize {
				a.render()
			}

		case <-frames.C:
			if a.frame() {
				frames.Stop()
				if finished && a.exitWhenDone {
					return nil
				}
			}
		}
	}
}

// apply formats a raw value and hands it to the manager. It reports
// whether an animation was started. Plain output settles immediately.
func (a *App) apply(raw string) bool {
	text, err := a.formatter.Format(raw)
	if err != nil {
		a.logger.Warn("format failed", zap.String("value", raw), zap.Error(err))
		return false
	}

	runes := []rune(text)
	if a.manager.ShouldDebounce(runes) {
		a.logger.Debug("debounced", zap.String("text", text))
		return false
	}
	if err := a.manager.SetText(runes); err != nil {
		a.logger.Warn("value rejected", zap.String("text", text), zap.Error(err))
		return false
	}

	if a.plain != nil {
		a.manager.AdvanceAnimation(1)
		a.manager.OnAnimationSettled()
		a.render()
		a.writePlain()
		return false
	}

	a.animator.Start()
	a.manager.AdvanceAnimation(0)
	a.render()
	a.reportSettled(text)
	return true
}

// reportSettled logs how long text took to settle. The leading column is
// watched since it exists whenever text is non-empty; listeners left over
// from superseded values see a different target and stay quiet.
func (a *App) reportSettled(text string) {
	if a.manager.Len() == 0 {
		return
	}
	started := a.now()
	err := a.manager.NotifySettled(0, func() {
		if string(a.manager.TargetText()) != text {
			return
		}
		a.logger.Debug("value settled",
			zap.String("text", text),
			zap.Duration("elapsed", a.now().Sub(started)),
		)
	})
	if err != nil {
		a.logger.Warn("settle listener", zap.Error(err))
	}
}

// frame advances the running animation. It reports whether the animation
// settled on this frame.
func (a *App) frame() bool {
	progress, done := a.animator.Frame()
	a.manager.AdvanceAnimation(progress)
	if done {
		a.manager.OnAnimationSettled()
	}
	a.render()
	if done {
		a.writePlain()
	}
	return done
}

func (a *App) render() {
	a.renderer.Render(a.manager)
}

// writePlain prints the settled row once per distinct value.
func (a *App) writePlain() {
	if a.plain == nil {
		return
	}
	line := a.plainRows.Row(0)
	if line == a.lastPlain {
		return
	}
	a.lastPlain = line
	if _, err := fmt.Fprintln(a.plain, line); err != nil {
		a.logger.Warn("plain output failed", zap.Error(err))
	}
}

// pollEvents forwards backend events until ctx is done.
func (a *App) pollEvents(ctx context.Context, events chan<- backend.Event) {
	for {
		ev := a.backend.PollEvent()
		if ctx.Err() != nil {
			return
		}
		if ev.Type == backend.EventInterrupt {
			continue
		}
		select {
		case events <- ev:
		case <-ctx.Done():
			return
		}
	}
}

// IsQuit reports whether err is a normal exit requested by the user.
func IsQuit(err error) bool {
	return errors.Is(err, ErrQuit)
}
