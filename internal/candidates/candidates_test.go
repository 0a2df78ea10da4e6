package candidates

import (
	"testing"

	"github.com/aatumaykin/benchkit/internal/bench"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// syncPool runs each job on its own goroutine.
type syncPool struct{}

type doneFuture struct {
	done  chan struct{}
	value any
	err   error
}

func (f *doneFuture) Get() (any, error) {
	<-f.done
	return f.value, f.err
}

func (syncPool) Submit(job bench.Job) (bench.Future, error) {
	f := &doneFuture{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.value, f.err = job()
	}()
	return f, nil
}

func TestReduce(t *testing.T) {
	tests := []struct {
		name    string
		nums    []int
		want    int
		wantErr error
	}{
		{name: "empty", nums: nil, wantErr: ErrEmptyReduce},
		{name: "single", nums: []int{7}, want: 7},
		{name: "many", nums: []int{1, 2, 3, 4}, want: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Reduce(AddInt, tt.nums)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.EqualError(t, err, "cannot reduce an empty slice")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReduce_OrderIsLeftFold(t *testing.T) {
	got, err := Reduce(func(acc, s string) string { return "(" + acc + s + ")" }, []string{"a", "b", "c"})
	require.NoError(t, err)
	assert.Equal(t, "((ab)c)", got)
}

func TestReduceAdd(t *testing.T) {
	assert.Equal(t, 0.0, ReduceAdd(nil))
	assert.Equal(t, 0.0, ReduceAdd([]float64{}))
	assert.Equal(t, 6.5, ReduceAdd([]float64{1, 2, 3.5}))
}

func TestRange(t *testing.T) {
	assert.Empty(t, Range(0))
	assert.Empty(t, Range(-3))
	assert.Equal(t, []float64{0, 1, 2, 3}, Range(4))
}

func TestInterpretedKernels(t *testing.T) {
	add, err := interpretedFunc[func(int, int) int]("Add")
	require.NoError(t, err)
	assert.Equal(t, 5, add(2, 3))

	reduce, err := interpretedFunc[func([]float64) (float64, error)]("ReduceAdd")
	require.NoError(t, err)
	v, err := reduce([]float64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	_, err = reduce(nil)
	assert.EqualError(t, err, "cannot reduce an empty slice")

	sum, err := interpretedFunc[func([]float64) float64]("Sum")
	require.NoError(t, err)
	assert.Equal(t, 0.0, sum(nil))
}

func TestInterpretedKernels_LookupErrors(t *testing.T) {
	_, err := interpretedFunc[func(int, int) int]("Missing")
	assert.Error(t, err)

	_, err = interpretedFunc[func(string) string]("Add")
	assert.ErrorContains(t, err, "has type")
}

func TestAddSuite(t *testing.T) {
	s, err := AddSuite(1000)
	require.NoError(t, err)

	assert.Equal(t, SuiteAdd, s.Name)
	assert.Equal(t, []string{"add", "add_bound", "add_interp"}, s.Labels())
	for idx, e := range s.Entries {
		assert.Equal(t, 1000, e.Repeat)
		assert.Equal(t, []any{idx, idx + 1}, e.Args)
	}

	pending, err := s.Dispatch(syncPool{})
	require.NoError(t, err)
	results, err := pending.Wait()
	require.NoError(t, err)

	require.Equal(t, 3, results.Len())
	for idx, r := range results.All() {
		assert.Equal(t, 2*idx+1, r.Payload(), r.Label())
		assert.Positive(t, r.Duration())
	}
}

func TestReduceSuite(t *testing.T) {
	s, err := ReduceSuite(100)
	require.NoError(t, err)

	assert.Equal(t, SuiteReduce, s.Name)
	assert.Equal(t, []string{"reduce", "reduce_callback", "reduce_interp", "reduce_add", "reduce_add_interp"}, s.Labels())

	pending, err := s.Dispatch(syncPool{})
	require.NoError(t, err)
	results, err := pending.Wait()
	require.NoError(t, err)

	for _, r := range results.All() {
		assert.Equal(t, 4950.0, r.Payload(), r.Label())
	}
}

func TestReduceSuite_Empty(t *testing.T) {
	s, err := ReduceSuite(0)
	require.NoError(t, err)

	sums := s.Filter(mustFilter(t, "^reduce_add"))
	pending, err := sums.Dispatch(syncPool{})
	require.NoError(t, err)
	results, err := pending.Wait()
	require.NoError(t, err)
	for _, r := range results.All() {
		assert.Zero(t, r.Payload())
	}

	folds := s.Filter(mustFilter(t, "^reduce(_callback|_interp)?$"))
	require.Len(t, folds.Entries, 3)
	pending, err = folds.Dispatch(syncPool{})
	require.NoError(t, err)
	_, err = pending.Wait()
	assert.ErrorIs(t, err, bench.ErrCandidateFailure)
	assert.ErrorContains(t, err, "cannot reduce an empty slice")
}

func mustFilter(t *testing.T, pattern string) *Filter {
	t.Helper()
	f, err := NewFilter(pattern)
	require.NoError(t, err)
	return f
}

func TestFilter(t *testing.T) {
	var none *Filter
	assert.True(t, none.Match("anything"))
	assert.Empty(t, none.String())

	f, err := NewFilter("")
	require.NoError(t, err)
	assert.Nil(t, f)

	f = mustFilter(t, "interp$")
	assert.True(t, f.Match("add_interp"))
	assert.False(t, f.Match("add"))
	assert.Equal(t, "interp$", f.String())

	_, err = NewFilter("add(")
	assert.ErrorContains(t, err, "invalid candidate filter")
}

func TestSuite_FilterKeepsOrder(t *testing.T) {
	s, err := AddSuite(1)
	require.NoError(t, err)

	filtered := s.Filter(mustFilter(t, "bound|interp"))
	assert.Equal(t, []string{"add_bound", "add_interp"}, filtered.Labels())
	assert.Equal(t, []any{1, 2}, filtered.Entries[0].Args, "args keep the unfiltered index")
	assert.Len(t, s.Entries, 3, "source suite untouched")
}

type closedPool struct{}

func (closedPool) Submit(bench.Job) (bench.Future, error) {
	return nil, assert.AnError
}

func TestSuite_DispatchSubmitError(t *testing.T) {
	s, err := AddSuite(1)
	require.NoError(t, err)

	pending, err := s.Dispatch(closedPool{})
	assert.ErrorIs(t, err, bench.ErrPoolFailure)
	assert.ErrorContains(t, err, "suite add")
	assert.Zero(t, pending.Len())
}

func TestNamesAndKnown(t *testing.T) {
	assert.Equal(t, []string{"add", "reduce"}, Names())
	assert.True(t, Known("reduce"))
	assert.False(t, Known("mul"))
}

func BenchmarkAddInt(b *testing.B) {
	for i := range b.N {
		_ = AddInt(i, i+1)
	}
}

func BenchmarkReduceAdd(b *testing.B) {
	nums := Range(10_000)
	b.ResetTimer()
	for range b.N {
		_ = ReduceAdd(nums)
	}
}
