package bench

import (
	"cmp"
	"fmt"
	"sync/atomic"
)

// PendingResult is a submitted benchmark that has not been collected yet.
// It can be waited on exactly once.
type PendingResult[T any] struct {
	label    string
	future   Future
	resolved atomic.Bool
}

// NewPendingResult wraps a future that will yield a Timed[T].
func NewPendingResult[T any](label string, future Future) *PendingResult[T] {
	return &PendingResult[T]{label: label, future: future}
}

// Label returns the candidate name.
func (p *PendingResult[T]) Label() string { return p.label }

// Resolved reports whether Wait has already been called.
func (p *PendingResult[T]) Resolved() bool { return p.resolved.Load() }

// Wait blocks until the underlying job finishes and returns its result.
// There is no timeout other than one the pool itself imposes. Calling Wait a
// second time returns ErrDoubleResolution.
func (p *PendingResult[T]) Wait() (Result[T], error) {
	if !p.resolved.CompareAndSwap(false, true) {
		return Result[T]{}, fmt.Errorf("%w: %s", ErrDoubleResolution, p.label)
	}

	v, err := p.future.Get()
	if err != nil {
		return Result[T]{}, poolFailure(err)
	}
	timed, ok := v.(Timed[T])
	if !ok {
		return Result[T]{}, fmt.Errorf("%w: %s: unexpected result type %T", ErrPoolFailure, p.label, v)
	}
	return Result[T]{label: p.label, timed: timed}, nil
}

func (p *PendingResult[T]) String() string {
	state := "pending"
	if p.resolved.Load() {
		state = "resolved"
	}
	return fmt.Sprintf("%s: %s", p.label, state)
}

// ComparePending orders pending results by label so that they can be sorted
// before any of them resolves.
func ComparePending[T any](a, b *PendingResult[T]) int {
	return cmp.Compare(a.label, b.label)
}
