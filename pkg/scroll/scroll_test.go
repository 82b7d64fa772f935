package scroll_test

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formdesign/pkg/scroll"
)

type surface struct {
	x, y  float64
	calls []scroll.Point
}

func (s *surface) ScrollPosition() (float64, float64) {
	return s.x, s.y
}

func (s *surface) ScrollTo(x, y float64) {
	s.x, s.y = x, y
	s.calls = append(s.calls, scroll.Point{X: x, Y: y})
}

func steppingClock(step time.Duration) func() time.Time {
	current := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(step)
		return current
	}
}

func prefilledFrames(n int) func(time.Duration) (<-chan time.Time, func()) {
	return func(time.Duration) (<-chan time.Time, func()) {
		ch := make(chan time.Time, n)
		for i := 0; i < n; i++ {
			ch <- time.Time{}
		}
		return ch, func() {}
	}
}

func TestEase(t *testing.T) {
	cases := map[float64]float64{0: 0, 0.5: 0.5, 1: 1}
	for in, want := range cases {
		if got := scroll.Ease(in); math.Abs(got-want) > 1e-9 {
			t.Fatalf("Ease(%v) = %v, want %v", in, got, want)
		}
	}
	if scroll.Ease(0.25) >= 0.25 {
		t.Fatalf("expected ease-in below linear progress")
	}
}

func TestAnimation_At(t *testing.T) {
	began := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	anim := scroll.Animation{
		Start:    scroll.Point{X: 0, Y: 100},
		Target:   scroll.Point{X: 0, Y: 300},
		Began:    began,
		Duration: 200 * time.Millisecond,
	}

	mid, done := anim.At(began.Add(100 * time.Millisecond))
	if done {
		t.Fatalf("expected animation in progress at midpoint")
	}
	if math.Abs(mid.Y-200) > 1e-9 {
		t.Fatalf("expected midpoint y=200, got %v", mid.Y)
	}

	end, done := anim.At(began.Add(time.Second))
	if !done || end != anim.Target {
		t.Fatalf("expected clamp to target, got %v done=%v", end, done)
	}

	instant := scroll.Animation{Target: scroll.Point{X: 5, Y: 5}, Began: began}
	if pos, done := instant.At(began); !done || pos != instant.Target {
		t.Fatalf("zero duration must finish immediately, got %v done=%v", pos, done)
	}
}

func TestAnimator_ReachesTarget(t *testing.T) {
	s := &surface{x: 0, y: 0}
	animator := scroll.New(
		scroll.WithDuration(250*time.Millisecond),
		scroll.WithClock(steppingClock(50*time.Millisecond)),
		scroll.WithFrameSource(prefilledFrames(10)),
	)

	if err := animator.Animate(context.Background(), s, 0, 500); err != nil {
		t.Fatalf("animate: %v", err)
	}

	if len(s.calls) != 5 {
		t.Fatalf("expected 5 frames, got %d: %v", len(s.calls), s.calls)
	}
	last := s.calls[len(s.calls)-1]
	if diff := cmp.Diff(scroll.Point{X: 0, Y: 500}, last); diff != "" {
		t.Fatalf("final frame mismatch (-want +got):\n%s", diff)
	}
	for i := 1; i < len(s.calls); i++ {
		if s.calls[i].Y < s.calls[i-1].Y {
			t.Fatalf("frames must advance monotonically: %v", s.calls)
		}
	}
}

func TestAnimator_AlreadyAtTarget(t *testing.T) {
	s := &surface{x: 10, y: 20}
	err := scroll.Animate(context.Background(), s, 10, 20,
		scroll.WithClock(steppingClock(time.Millisecond)),
		scroll.WithFrameSource(prefilledFrames(0)),
	)
	if err != nil {
		t.Fatalf("animate: %v", err)
	}
	if len(s.calls) != 1 {
		t.Fatalf("expected a single frame, got %d", len(s.calls))
	}
}

func TestAnimator_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := &surface{}
	animator := scroll.New(
		scroll.WithClock(steppingClock(time.Millisecond)),
		scroll.WithFrameSource(func(time.Duration) (<-chan time.Time, func()) {
			cancel()
			return nil, func() {}
		}),
	)

	err := animator.Animate(ctx, s, 0, 1000)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(s.calls) != 1 {
		t.Fatalf("expected the first frame only, got %d", len(s.calls))
	}

	if err := animator.Animate(ctx, s, 0, 1000); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancelled context to short-circuit, got %v", err)
	}
	if err := animator.Animate(context.Background(), nil, 0, 0); !errors.Is(err, scroll.ErrNilTarget) {
		t.Fatalf("expected ErrNilTarget, got %v", err)
	}
}
