// Package candidates holds the benchmark suites: native Go kernels, the same
// kernels called through reflection, and interpreted versions run by yaegi.
package candidates

import (
	"fmt"
	"slices"

	"github.com/aatumaykin/benchkit/internal/bench"
)

// Suite names.
const (
	SuiteAdd    = "add"
	SuiteReduce = "reduce"
)

// Entry is one candidate together with the arguments it is benchmarked with.
type Entry[T any] struct {
	Candidate bench.Candidate[T]
	Repeat    int
	Args      []any
}

// Suite is a named, ordered group of candidates sharing a payload type.
type Suite[T any] struct {
	Name    string
	Entries []Entry[T]
}

// Labels returns the candidate labels in suite order.
func (s Suite[T]) Labels() []string {
	labels := make([]string, len(s.Entries))
	for i, e := range s.Entries {
		labels[i] = e.Candidate.Name
	}
	return labels
}

// Filter returns the suite restricted to candidates whose label matches f.
func (s Suite[T]) Filter(f *Filter) Suite[T] {
	out := Suite[T]{Name: s.Name}
	for _, e := range s.Entries {
		if f.Match(e.Candidate.Name) {
			out.Entries = append(out.Entries, e)
		}
	}
	return out
}

// Dispatch submits every entry to p in suite order. On a submit error the
// handles dispatched so far are returned along with the error.
func (s Suite[T]) Dispatch(p bench.Pool) (*bench.PendingResults[T], error) {
	pending := bench.NewPendingResults[T]()
	for _, e := range s.Entries {
		pr, err := bench.Bench(p, e.Candidate, e.Repeat, e.Args...)
		if err != nil {
			return pending, fmt.Errorf("suite %s: %w", s.Name, err)
		}
		pending.Append(pr)
	}
	return pending, nil
}

// AddSuite benchmarks integer addition. Candidate idx is called iterations
// times with (idx, idx+1).
func AddSuite(iterations int) (Suite[int], error) {
	bound, err := bench.FromFunc[int](AddInt)
	if err != nil {
		return Suite[int]{}, err
	}
	bound.Name = "add_bound"

	interpAdd, err := interpretedFunc[func(int, int) int]("Add")
	if err != nil {
		return Suite[int]{}, err
	}

	cands := []bench.Candidate[int]{
		bench.Binary("add", AddInt),
		bound,
		bench.Binary("add_interp", interpAdd),
	}

	s := Suite[int]{Name: SuiteAdd}
	for idx, c := range cands {
		s.Entries = append(s.Entries, Entry[int]{Candidate: c, Repeat: iterations, Args: []any{idx, idx + 1}})
	}
	return s, nil
}

// ReduceSuite benchmarks folding [0, size) into a sum. Every candidate runs
// once over the same input slice.
func ReduceSuite(size int) (Suite[float64], error) {
	interpAdd, err := interpretedFunc[func(float64, float64) float64]("AddFloat")
	if err != nil {
		return Suite[float64]{}, err
	}
	interpReduce, err := interpretedFunc[func([]float64) (float64, error)]("ReduceAdd")
	if err != nil {
		return Suite[float64]{}, err
	}
	interpSum, err := interpretedFunc[func([]float64) float64]("Sum")
	if err != nil {
		return Suite[float64]{}, err
	}

	cands := []bench.Candidate[float64]{
		bench.UnaryE("reduce", func(nums []float64) (float64, error) {
			return Reduce(addFloat, nums)
		}),
		bench.UnaryE("reduce_callback", func(nums []float64) (float64, error) {
			return Reduce(interpAdd, nums)
		}),
		bench.UnaryE("reduce_interp", interpReduce),
		bench.Unary("reduce_add", ReduceAdd),
		bench.Unary("reduce_add_interp", interpSum),
	}

	nums := Range(size)
	s := Suite[float64]{Name: SuiteReduce}
	for _, c := range cands {
		s.Entries = append(s.Entries, Entry[float64]{Candidate: c, Repeat: 1, Args: []any{nums}})
	}
	return s, nil
}

// Range returns [0, 1, ..., n-1] as floats.
func Range(n int) []float64 {
	nums := make([]float64, max(n, 0))
	for i := range nums {
		nums[i] = float64(i)
	}
	return nums
}

// Names lists the suites in run order.
func Names() []string {
	return []string{SuiteAdd, SuiteReduce}
}

// Known reports whether name is a suite.
func Known(name string) bool {
	return slices.Contains(Names(), name)
}
