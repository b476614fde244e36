package anim

import (
	"time"
)

// Animator tracks one timed transition. Starting it again while running
// restarts from zero, which is what a ticker wants when new text arrives
// mid-animation: the columns redirect from where they are.
//
// Animator is not safe for concurrent use.
type Animator struct {
	duration time.Duration
	interp   Interpolator
	now      func() time.Time

	start   time.Time
	running bool
}

// Option configures an Animator.
type Option func(*Animator)

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(a *Animator) {
		if now != nil {
			a.now = now
		}
	}
}

// New creates an animator. A nil interpolator means Linear; a non-positive
// duration makes every animation finish on its first frame.
func New(duration time.Duration, interp Interpolator, opts ...Option) *Animator {
	if interp == nil {
		interp = Linear
	}
	a := &Animator{
		duration: duration,
		interp:   interp,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Duration returns the length of one transition.
func (a *Animator) Duration() time.Duration {
	return a.duration
}

// Start begins, or restarts, a transition.
func (a *Animator) Start() {
	a.start = a.now()
	a.running = true
}

// Running reports whether a transition is in progress.
func (a *Animator) Running() bool {
	return a.running
}

// Frame returns the eased progress for the current time and whether the
// transition has completed. Once done is reported the animator stops
// running; callers then settle their columns.
func (a *Animator) Frame() (progress float64, done bool) {
	if !a.running {
		return 1, true
	}
	if a.duration <= 0 {
		a.running = false
		return 1, true
	}

	t := float64(a.now().Sub(a.start)) / float64(a.duration)
	if t >= 1 {
		a.running = false
		return 1, true
	}
	if t < 0 {
		t = 0
	}
	return a.interp(t), false
}

// Stop abandons the current transition.
func (a *Animator) Stop() {
	a.running = false
}

// FrameInterval returns the tick period for fps frames per second,
// defaulting to 60.
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		fps = 60
	}
	return time.Second / time.Duration(fps)
}
