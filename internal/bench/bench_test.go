package bench

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBench_Add(t *testing.T) {
	pool := &goPool{}
	c, err := FromFunc[int](add)
	require.NoError(t, err)

	pending, err := Bench(pool, c, 1000, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, "add", pending.Label())
	assert.False(t, pending.Resolved())

	result, err := pending.Wait()
	require.NoError(t, err)
	assert.Equal(t, "add", result.Label())
	assert.Equal(t, 5, result.Payload())
	assert.Greater(t, int64(result.Duration()), int64(0))
	assert.True(t, pending.Resolved())
}

func TestBench_KeywordArgs(t *testing.T) {
	pool := &goPool{}
	c := NewCandidate("greet", func(args Args) (string, error) {
		name, _ := args.Kw("name")
		return fmt.Sprintf("hello %v", name), nil
	})

	pending, err := BenchArgs(pool, c, 3, Args{Keyword: map[string]any{"name": "bench"}})
	require.NoError(t, err)

	result, err := pending.Wait()
	require.NoError(t, err)
	assert.Equal(t, "hello bench", result.Payload())
}

func TestBench_InvalidArguments(t *testing.T) {
	pool := &goPool{}
	c := Binary("add", add)

	_, err := Bench(pool, c, 0, 1, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Bench[int](nil, c, 1, 1, 2)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	_, err = Bench(pool, Candidate[int]{Name: "empty"}, 1)
	assert.ErrorIs(t, err, ErrInvalidArgument)

	assert.Zero(t, pool.submitted, "invalid calls must not reach the pool")
}

func TestBench_ArgumentMismatchSurfacesOnWait(t *testing.T) {
	pending, err := Bench(&goPool{}, Binary("add", add), 10, 1, "x")
	require.NoError(t, err)

	_, err = pending.Wait()
	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.NotErrorIs(t, err, ErrPoolFailure)
}

func TestBench_SubmitFailure(t *testing.T) {
	pool := &goPool{closed: true}

	pending, err := Bench(pool, Binary("add", add), 1, 1, 2)
	assert.Nil(t, pending)
	assert.ErrorIs(t, err, ErrPoolFailure)
	assert.ErrorIs(t, err, errPoolClosed)
}

func TestPendingResult_DoubleResolution(t *testing.T) {
	pending, err := Bench(&goPool{}, Binary("add", add), 1, 1, 2)
	require.NoError(t, err)

	_, err = pending.Wait()
	require.NoError(t, err)

	_, err = pending.Wait()
	assert.ErrorIs(t, err, ErrDoubleResolution)
}

func TestPendingResult_FutureErrors(t *testing.T) {
	crash := errors.New("worker crashed")

	t.Run("pool error", func(t *testing.T) {
		p := NewPendingResult[int]("x", staticFuture{err: crash})
		_, err := p.Wait()
		assert.ErrorIs(t, err, ErrPoolFailure)
		assert.ErrorIs(t, err, crash)
	})

	t.Run("candidate error passes through", func(t *testing.T) {
		cause := &CandidateError{Label: "x", Iteration: 2, Err: crash}
		p := NewPendingResult[int]("x", staticFuture{err: cause})
		_, err := p.Wait()
		assert.ErrorIs(t, err, ErrCandidateFailure)
		assert.NotErrorIs(t, err, ErrPoolFailure)
	})

	t.Run("wrong payload type", func(t *testing.T) {
		p := NewPendingResult[int]("x", staticFuture{v: Timed[string]{Payload: "nope"}})
		_, err := p.Wait()
		assert.ErrorIs(t, err, ErrPoolFailure)
	})
}

func TestPendingResult_String(t *testing.T) {
	p := NewPendingResult[int]("add", staticFuture{v: Timed[int]{Payload: 1}})
	assert.Equal(t, "add: pending", p.String())
	_, _ = p.Wait()
	assert.Equal(t, "add: resolved", p.String())

	r := NewResult("add", Timed[int]{Duration: 1500 * time.Nanosecond, Payload: 5})
	assert.Equal(t, "Result(add, 1.5µs, 5)", r.String())
}

func TestPendingResults_WaitPreservesOrder(t *testing.T) {
	for _, n := range []int{0, 1, 5, 32} {
		t.Run(fmt.Sprintf("n=%d", n), func(t *testing.T) {
			pool := &goPool{}
			pending := NewPendingResults[int]()

			want := make([]string, 0, n)
			for i := range n {
				label := fmt.Sprintf("c%02d", n-i)
				v := i
				p, err := Bench(pool, Nullary(label, func() int { return v }), 1)
				require.NoError(t, err)
				pending.Append(p)
				want = append(want, label)
			}
			require.Equal(t, n, pending.Len())

			results, err := pending.Wait()
			require.NoError(t, err)
			require.NotNil(t, results)
			assert.Equal(t, n, results.Len())
			assert.Equal(t, want, results.Labels()[:n])
			for i, r := range results.All() {
				assert.Equal(t, i, r.Payload())
			}
		})
	}
}

func TestPendingResults_FailFast(t *testing.T) {
	pool := &goPool{}
	errValue := errors.New("ValueError")

	first, err := Bench(pool, Nullary("first", func() int { return 1 }), 1)
	require.NoError(t, err)
	second, err := Bench(pool, NewCandidate("second", func(Args) (int, error) { return 0, errValue }), 1)
	require.NoError(t, err)
	third, err := Bench(pool, Nullary("third", func() int { return 3 }), 1)
	require.NoError(t, err)

	pending := NewPendingResults(first)
	pending.Extend(second, third)

	results, err := pending.Wait()
	assert.Nil(t, results)
	assert.ErrorIs(t, err, errValue)
	assert.ErrorIs(t, err, ErrCandidateFailure)
	assert.True(t, first.Resolved())
	assert.True(t, second.Resolved())
	assert.False(t, third.Resolved())
}

func TestPendingResults_SortByLabel(t *testing.T) {
	pending := NewPendingResults[int]()
	for _, label := range []string{"c", "a", "b"} {
		pending.Append(NewPendingResult[int](label, staticFuture{v: Timed[int]{}}))
	}

	pending.Sort()

	labels := make([]string, 0, pending.Len())
	for _, p := range pending.All() {
		labels = append(labels, p.Label())
		assert.False(t, p.Resolved())
	}
	assert.Equal(t, []string{"a", "b", "c"}, labels)
}

func TestRoundTrip_LabelAndTimeOrder(t *testing.T) {
	const unit = 20 * time.Millisecond
	pool := &goPool{}
	sleeps := map[string]time.Duration{"a": 3 * unit, "b": 1 * unit, "c": 2 * unit}

	pending := NewPendingResults[string]()
	for _, label := range []string{"c", "a", "b"} {
		p, err := Bench(pool, sleeper(label, sleeps[label]), 1)
		require.NoError(t, err)
		pending.Append(p)
	}

	results, err := pending.Wait()
	require.NoError(t, err)
	assert.Equal(t, []string{"c", "a", "b"}, results.Labels())

	byTime := results.SortedByTime()
	assert.Equal(t, []string{"b", "c", "a"}, byTime.Labels())
	assert.Equal(t, []string{"c", "a", "b"}, results.Labels(), "SortedByTime must not mutate the receiver")

	results.Sort()
	assert.Equal(t, []string{"a", "b", "c"}, results.Labels())
}
