package candidates

import "errors"

// ErrEmptyReduce is returned by Reduce when there is no first element to
// seed the accumulator with.
var ErrEmptyReduce = errors.New("cannot reduce an empty slice")

// AddInt is the native add kernel.
func AddInt(a, b int) int {
	return a + b
}

func addFloat(a, b float64) float64 {
	return a + b
}

// Reduce folds nums left to right with f, seeded with the first element.
func Reduce[T any](f func(acc, item T) T, nums []T) (T, error) {
	if len(nums) == 0 {
		var zero T
		return zero, ErrEmptyReduce
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		acc = f(acc, n)
	}
	return acc, nil
}

// ReduceAdd sums nums. An empty slice sums to 0.
func ReduceAdd(nums []float64) float64 {
	var acc float64
	for _, n := range nums {
		acc += n
	}
	return acc
}
