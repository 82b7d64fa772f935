// Package scroll animates a scrollable surface towards a target position with
// cosine easing. The designer uses it to bring the selected component into
// view; any surface that can report and set its offset can be animated.
package scroll

import (
	"context"
	"errors"
	"math"
	"time"
)

// DefaultDuration is the animation length used when none is configured.
const DefaultDuration = 250 * time.Millisecond

// DefaultFrameInterval approximates a 60Hz display refresh.
const DefaultFrameInterval = time.Second / 60

// ErrNilTarget is returned when Animate receives no scrollable surface.
var ErrNilTarget = errors.New("scroll: target is nil")

// Scrollable is a surface with a two-dimensional scroll offset.
type Scrollable interface {
	ScrollPosition() (x, y float64)
	ScrollTo(x, y float64)
}

// Point is a scroll offset.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Ease maps linear progress k in [0, 1] onto a cosine ease-in-out curve.
func Ease(k float64) float64 {
	return 0.5 * (1 - math.Cos(math.Pi*k))
}

// Animation interpolates between two points over a fixed duration.
type Animation struct {
	Start    Point
	Target   Point
	Began    time.Time
	Duration time.Duration
}

// At returns the eased position at now and whether the animation finished.
// Progress is clamped to 1 so the final frame lands exactly on Target.
func (a Animation) At(now time.Time) (Point, bool) {
	progress := 1.0
	if a.Duration > 0 {
		progress = float64(now.Sub(a.Began)) / float64(a.Duration)
	}
	if progress >= 1 {
		return a.Target, true
	}
	if progress < 0 {
		progress = 0
	}
	value := Ease(progress)
	current := Point{
		X: a.Start.X + (a.Target.X-a.Start.X)*value,
		Y: a.Start.Y + (a.Target.Y-a.Start.Y)*value,
	}
	return current, current == a.Target
}

// Animator drives animations frame by frame.
type Animator struct {
	duration time.Duration
	interval time.Duration
	now      func() time.Time
	frames   func(time.Duration) (<-chan time.Time, func())
}

// New constructs an Animator with the supplied options applied over the
// defaults.
func New(options ...Option) *Animator {
	a := &Animator{
		duration: DefaultDuration,
		interval: DefaultFrameInterval,
		now:      time.Now,
		frames:   tickerFrames,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(a)
	}
	return a
}

// Animate moves target from its current offset to (x, y), calling ScrollTo
// once per frame. It returns when the target position is reached or ctx is
// cancelled, in which case the surface is left at the last rendered frame.
func (a *Animator) Animate(ctx context.Context, target Scrollable, x, y float64) error {
	if target == nil {
		return ErrNilTarget
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	startX, startY := target.ScrollPosition()
	anim := Animation{
		Start:    Point{X: startX, Y: startY},
		Target:   Point{X: x, Y: y},
		Began:    a.now(),
		Duration: a.duration,
	}

	if done := a.step(target, anim); done {
		return nil
	}

	frames, stop := a.frames(a.interval)
	defer stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-frames:
			if done := a.step(target, anim); done {
				return nil
			}
		}
	}
}

func (a *Animator) step(target Scrollable, anim Animation) bool {
	pos, done := anim.At(a.now())
	target.ScrollTo(pos.X, pos.Y)
	return done
}

func tickerFrames(interval time.Duration) (<-chan time.Time, func()) {
	ticker := time.NewTicker(interval)
	return ticker.C, ticker.Stop
}

// Animate runs a single animation with a default Animator.
func Animate(ctx context.Context, target Scrollable, x, y float64, options ...Option) error {
	return New(options...).Animate(ctx, target, x, y)
}
