// Package bench times candidate functions on a worker pool and collects the
// results for comparison.
//
// Bench submits a timed loop to a Pool and returns a PendingResult right
// away, so many candidates can be in flight at once. Pending results are
// gathered in a PendingResults collection and resolved with a single Wait,
// which yields a Results collection that can be ordered by time, by label or
// by payload.
//
// Example:
//
//	pending := bench.NewPendingResults[int]()
//	for _, c := range candidates {
//	    p, err := bench.Bench(pool, c, 1_000_000, 2, 3)
//	    if err != nil {
//	        return err
//	    }
//	    pending.Append(p)
//	}
//	results, err := pending.Wait()
//	if err != nil {
//	    return err
//	}
//	for _, r := range results.SortedByTime().All() {
//	    fmt.Println(r)
//	}
//
// The package never logs and never retries.
package bench

import "fmt"

// Bench submits a timed invocation of c with positional arguments to p and
// returns immediately. repeat is the number of times c is called inside the
// timed loop.
func Bench[T any](p Pool, c Candidate[T], repeat int, args ...any) (*PendingResult[T], error) {
	return BenchArgs(p, c, repeat, Args{Positional: args})
}

// BenchArgs is Bench with explicit positional and keyword arguments.
//
// A repeat count below 1, a nil pool or a candidate without a function is
// reported as ErrInvalidArgument. If the pool rejects the job the error is
// wrapped in ErrPoolFailure. In both cases no PendingResult is created.
func BenchArgs[T any](p Pool, c Candidate[T], repeat int, args Args) (*PendingResult[T], error) {
	if p == nil {
		return nil, invalidArgument("pool is nil")
	}
	if c.Fn == nil {
		return nil, invalidArgument("candidate %q has no function", c.Name)
	}
	if repeat < 1 {
		return nil, invalidArgument("repeat count must be >= 1, got %d", repeat)
	}

	future, err := p.Submit(func() (any, error) {
		timed, err := TimeInvocation(c, repeat, args)
		if err != nil {
			return nil, err
		}
		return timed, nil
	})
	if err != nil {
		return nil, fmt.Errorf("submit %s: %w", c.Name, poolFailure(err))
	}
	return NewPendingResult[T](c.Name, future), nil
}
