// Package reorder relocates a single element of an ordered sequence, the
// operation behind drag-and-drop list sorting. Every function returns a new
// slice; inputs are never modified.
package reorder

import (
	"errors"
	"fmt"
)

// ErrOutOfRange is returned when an index falls outside [0, len).
var ErrOutOfRange = errors.New("reorder: index out of range")

// Step describes a single move from one index to another.
type Step struct {
	From int `json:"from" yaml:"from"`
	To   int `json:"to" yaml:"to"`
}

// Move returns a copy of seq with the element at from relocated to to. The
// elements between the two indices shift by one slot towards from; all other
// elements keep their positions.
//
// When from equals to nothing is allocated and Move returns nil, false, nil.
// Indices are validated first, so an out-of-range pair fails even when equal.
func Move[T any](seq []T, from, to int) ([]T, bool, error) {
	if err := checkIndex(len(seq), from); err != nil {
		return nil, false, err
	}
	if err := checkIndex(len(seq), to); err != nil {
		return nil, false, err
	}
	if from == to {
		return nil, false, nil
	}

	out := make([]T, len(seq))
	switch {
	case from < to:
		copy(out[:from], seq[:from])
		copy(out[from:to], seq[from+1:to+1])
		out[to] = seq[from]
		copy(out[to+1:], seq[to+1:])
	default:
		copy(out[:to], seq[:to])
		out[to] = seq[from]
		copy(out[to+1:from+1], seq[to:from])
		copy(out[from+1:], seq[from+1:])
	}
	return out, true, nil
}

// MustMove is like Move but panics on invalid indices. It always returns a
// slice: a copy of seq when no move was needed.
func MustMove[T any](seq []T, from, to int) []T {
	out, moved, err := Move(seq, from, to)
	if err != nil {
		panic(err)
	}
	if !moved {
		return append([]T(nil), seq...)
	}
	return out
}

// Apply replays steps against seq in order and returns the final sequence.
// No-op steps are skipped. The first invalid step aborts with an error that
// names its position.
func Apply[T any](seq []T, steps ...Step) ([]T, error) {
	current := append([]T(nil), seq...)
	for i, step := range steps {
		next, moved, err := Move(current, step.From, step.To)
		if err != nil {
			return nil, fmt.Errorf("reorder: step %d: %w", i, err)
		}
		if moved {
			current = next
		}
	}
	return current, nil
}

func checkIndex(length, idx int) error {
	if idx < 0 || idx >= length {
		return fmt.Errorf("%w: %d (length %d)", ErrOutOfRange, idx, length)
	}
	return nil
}
