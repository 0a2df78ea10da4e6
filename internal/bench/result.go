package bench

import (
	"cmp"
	"fmt"
	"time"
)

// Result is a resolved benchmark result: a label paired with the timed value
// its candidate produced. It is read-only.
type Result[T any] struct {
	label string
	timed Timed[T]
}

// NewResult builds a resolved result. It is mostly useful for tests and for
// callers that time candidates without a pool.
func NewResult[T any](label string, timed Timed[T]) Result[T] {
	return Result[T]{label: label, timed: timed}
}

// Label returns the name of the candidate that produced the result.
func (r Result[T]) Label() string { return r.label }

// Duration returns the total elapsed time of the timed loop.
func (r Result[T]) Duration() time.Duration { return r.timed.Duration }

// Payload returns the value of the last invocation.
func (r Result[T]) Payload() T { return r.timed.Payload }

// Timed returns the (duration, payload) pair.
func (r Result[T]) Timed() Timed[T] { return r.timed }

func (r Result[T]) String() string {
	return fmt.Sprintf("Result(%s, %s, %v)", r.label, r.timed.Duration, r.timed.Payload)
}

// ComparePayload is the natural order of results: it compares payloads and
// ignores labels and durations.
func ComparePayload[T cmp.Ordered](a, b Result[T]) int {
	return cmp.Compare(a.timed.Payload, b.timed.Payload)
}

// ComparePayloadFunc lifts a payload comparator to results, for payload types
// that are not cmp.Ordered.
func ComparePayloadFunc[T any](compare func(a, b T) int) func(a, b Result[T]) int {
	return func(a, b Result[T]) int {
		return compare(a.timed.Payload, b.timed.Payload)
	}
}

// CompareDuration orders results by elapsed time.
func CompareDuration[T any](a, b Result[T]) int {
	return cmp.Compare(a.timed.Duration, b.timed.Duration)
}

// CompareLabel orders results by label.
func CompareLabel[T any](a, b Result[T]) int {
	return cmp.Compare(a.label, b.label)
}
