package bench

import (
	"errors"
	"fmt"
	"time"
)

// Timed is the outcome of a timed invocation: the total elapsed wall-clock
// time of the loop and the value returned by its last call.
type Timed[T any] struct {
	Duration time.Duration
	Payload  T
}

// TimeInvocation calls c.Fn(args) repeat times in a tight loop and returns the
// total elapsed time together with the last call's return value. Return values
// of earlier calls are discarded.
//
// repeat must be at least 1. An error or panic on any call aborts the loop
// immediately and is returned as a *CandidateError; no partial duration is
// reported. Argument mismatches reported by the candidate keep their
// ErrInvalidArgument classification instead.
func TimeInvocation[T any](c Candidate[T], repeat int, args Args) (Timed[T], error) {
	if repeat < 1 {
		return Timed[T]{}, invalidArgument("repeat count must be >= 1, got %d", repeat)
	}
	if c.Fn == nil {
		return Timed[T]{}, invalidArgument("candidate %q has no function", c.Name)
	}

	var (
		out T
		err error
		i   int
	)
	start := time.Now()
	for i = 1; i <= repeat; i++ {
		out, err = invoke(c.Fn, args)
		if err != nil {
			break
		}
	}
	elapsed := time.Since(start)

	switch {
	case errors.Is(err, ErrInvalidArgument):
		return Timed[T]{}, fmt.Errorf("candidate %q: %w", c.Name, err)
	case err != nil:
		return Timed[T]{}, &CandidateError{Label: c.Name, Iteration: i, Err: err}
	}
	return Timed[T]{Duration: elapsed, Payload: out}, nil
}

// invoke runs a single call, turning a panic into an error.
func invoke[T any](fn func(Args) (T, error), args Args) (out T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return fn(args)
}
