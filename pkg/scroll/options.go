package scroll

import "time"

// Option configures an Animator.
type Option func(*Animator)

// WithDuration overrides the animation length. Non-positive values jump
// straight to the target on the first frame.
func WithDuration(d time.Duration) Option {
	return func(a *Animator) {
		a.duration = d
	}
}

// WithFrameInterval overrides the delay between frames.
func WithFrameInterval(interval time.Duration) Option {
	return func(a *Animator) {
		if interval > 0 {
			a.interval = interval
		}
	}
}

// WithClock injects the time source used to compute progress.
func WithClock(now func() time.Time) Option {
	return func(a *Animator) {
		if now != nil {
			a.now = now
		}
	}
}

// WithFrameSource replaces the ticker that paces frames. The returned stop
// function is called when the animation ends.
func WithFrameSource(source func(interval time.Duration) (<-chan time.Time, func())) Option {
	return func(a *Animator) {
		if source != nil {
			a.frames = source
		}
	}
}
