package bench

import (
	"iter"
	"slices"
)

// PendingResults is an ordered, growable collection of pending results.
// It is not safe for concurrent mutation.
type PendingResults[T any] struct {
	items []*PendingResult[T]
}

// NewPendingResults creates a collection holding items in the given order.
func NewPendingResults[T any](items ...*PendingResult[T]) *PendingResults[T] {
	return &PendingResults[T]{items: slices.Clone(items)}
}

// Append adds p to the end of the collection.
func (ps *PendingResults[T]) Append(p *PendingResult[T]) {
	ps.items = append(ps.items, p)
}

// Extend adds items to the end of the collection, preserving their order.
func (ps *PendingResults[T]) Extend(items ...*PendingResult[T]) {
	ps.items = append(ps.items, items...)
}

func (ps *PendingResults[T]) Len() int { return len(ps.items) }

// All iterates the collection in order.
func (ps *PendingResults[T]) All() iter.Seq2[int, *PendingResult[T]] {
	return slices.All(ps.items)
}

// Items returns a copy of the underlying slice.
func (ps *PendingResults[T]) Items() []*PendingResult[T] {
	return slices.Clone(ps.items)
}

// Sort orders the collection in place by label.
func (ps *PendingResults[T]) Sort() {
	slices.SortStableFunc(ps.items, ComparePending[T])
}

// Wait resolves every element in collection order, one at a time. A slow
// element delays reading the ones after it even if they already finished.
//
// The first failure aborts the whole operation: no partial collection is
// returned, and elements after the failing one are left unresolved.
func (ps *PendingResults[T]) Wait() (*Results[T], error) {
	out := make([]Result[T], 0, len(ps.items))
	for _, p := range ps.items {
		r, err := p.Wait()
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return &Results[T]{items: out}, nil
}

// Results is an ordered collection of resolved results. Elements are never
// modified after construction; only Sort reorders it in place.
type Results[T any] struct {
	items []Result[T]
}

// NewResults creates a collection holding items in the given order.
func NewResults[T any](items ...Result[T]) *Results[T] {
	return &Results[T]{items: slices.Clone(items)}
}

func (rs *Results[T]) Len() int { return len(rs.items) }

// At returns the i-th result.
func (rs *Results[T]) At(i int) Result[T] { return rs.items[i] }

// All iterates the collection in order.
func (rs *Results[T]) All() iter.Seq2[int, Result[T]] {
	return slices.All(rs.items)
}

// Items returns a copy of the underlying slice.
func (rs *Results[T]) Items() []Result[T] {
	return slices.Clone(rs.items)
}

// Labels returns the labels in collection order.
func (rs *Results[T]) Labels() []string {
	labels := make([]string, len(rs.items))
	for i, r := range rs.items {
		labels[i] = r.label
	}
	return labels
}

// SortedByTime returns a new collection ordered by ascending duration.
// Results with equal durations keep their relative order. The receiver is
// not modified.
func (rs *Results[T]) SortedByTime() *Results[T] {
	return rs.SortedFunc(CompareDuration[T])
}

// SortedFunc returns a new collection stably sorted with compare.
func (rs *Results[T]) SortedFunc(compare func(a, b Result[T]) int) *Results[T] {
	items := slices.Clone(rs.items)
	slices.SortStableFunc(items, compare)
	return &Results[T]{items: items}
}

// Sort orders the collection in place by label. Unlike SortedByTime it
// mutates the receiver and does not look at durations.
func (rs *Results[T]) Sort() {
	slices.SortStableFunc(rs.items, CompareLabel[T])
}
