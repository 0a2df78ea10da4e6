package candidates

import (
	"fmt"
	"sync"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"
)

// kernelSource is evaluated by yaegi; each interpreted candidate gets its own
// interpreter loaded with it.
const kernelSource = `package kernels

import "errors"

func Add(a, b int) int {
	return a + b
}

func AddFloat(a, b float64) float64 {
	return a + b
}

func Reduce(f func(float64, float64) float64, nums []float64) (float64, error) {
	if len(nums) == 0 {
		return 0, errors.New("cannot reduce an empty slice")
	}
	acc := nums[0]
	for _, n := range nums[1:] {
		acc = f(acc, n)
	}
	return acc, nil
}

func ReduceAdd(nums []float64) (float64, error) {
	return Reduce(AddFloat, nums)
}

func Sum(nums []float64) float64 {
	var acc float64
	for _, n := range nums {
		acc += n
	}
	return acc
}
`

// kernels is one yaegi interpreter with kernelSource loaded.
type kernels struct {
	interp *interp.Interpreter
	mu     sync.Mutex
}

func newKernels() (*kernels, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("failed to load stdlib: %w", err)
	}
	if _, err := i.Eval(kernelSource); err != nil {
		return nil, fmt.Errorf("failed to load kernels: %w", err)
	}
	return &kernels{interp: i}, nil
}

// lookup resolves an interpreted function and asserts its Go signature.
func lookup[F any](k *kernels, name string) (F, error) {
	k.mu.Lock()
	defer k.mu.Unlock()

	var zero F
	v, err := k.interp.Eval("kernels." + name)
	if err != nil {
		return zero, fmt.Errorf("kernel %q not found: %w", name, err)
	}
	if !v.IsValid() {
		return zero, fmt.Errorf("kernel %q is invalid", name)
	}
	fn, ok := v.Interface().(F)
	if !ok {
		return zero, fmt.Errorf("kernel %q has type %s, want %T", name, v.Type(), zero)
	}
	return fn, nil
}

// interpretedFunc loads a fresh interpreter and returns one of its functions.
func interpretedFunc[F any](name string) (F, error) {
	k, err := newKernels()
	if err != nil {
		var zero F
		return zero, err
	}
	return lookup[F](k, name)
}
