package bench

import (
	"fmt"
	"reflect"
	"runtime"
	"strings"
)

// Args holds the positional and keyword arguments passed to a candidate on
// every iteration of its timed loop.
type Args struct {
	Positional []any
	Keyword    map[string]any
}

// Positional builds Args from positional arguments only.
func Positional(args ...any) Args {
	return Args{Positional: args}
}

// Kw returns the keyword argument named key and whether it was set.
func (a Args) Kw(key string) (any, bool) {
	v, ok := a.Keyword[key]
	return v, ok
}

// Candidate is a named callable under comparison. Name is used as the label
// of every result the candidate produces.
type Candidate[T any] struct {
	Name string
	Fn   func(Args) (T, error)
}

// NewCandidate wraps fn under the given name.
func NewCandidate[T any](name string, fn func(Args) (T, error)) Candidate[T] {
	return Candidate[T]{Name: name, Fn: fn}
}

// Nullary adapts a function taking no arguments.
func Nullary[T any](name string, fn func() T) Candidate[T] {
	return Candidate[T]{Name: name, Fn: func(args Args) (T, error) {
		var zero T
		if err := expectArity(args, 0); err != nil {
			return zero, err
		}
		return fn(), nil
	}}
}

// Unary adapts a single-argument function. A missing or mistyped argument is
// reported as ErrInvalidArgument on the first call.
func Unary[A, T any](name string, fn func(A) T) Candidate[T] {
	return Candidate[T]{Name: name, Fn: func(args Args) (T, error) {
		var zero T
		if err := expectArity(args, 1); err != nil {
			return zero, err
		}
		a, err := argAt[A](args, 0)
		if err != nil {
			return zero, err
		}
		return fn(a), nil
	}}
}

// UnaryE adapts a single-argument function that can fail. Its error is
// reported as a candidate failure.
func UnaryE[A, T any](name string, fn func(A) (T, error)) Candidate[T] {
	return Candidate[T]{Name: name, Fn: func(args Args) (T, error) {
		var zero T
		if err := expectArity(args, 1); err != nil {
			return zero, err
		}
		a, err := argAt[A](args, 0)
		if err != nil {
			return zero, err
		}
		return fn(a)
	}}
}

// Binary adapts a two-argument function.
func Binary[A, B, T any](name string, fn func(A, B) T) Candidate[T] {
	return Candidate[T]{Name: name, Fn: func(args Args) (T, error) {
		var zero T
		if err := expectArity(args, 2); err != nil {
			return zero, err
		}
		a, err := argAt[A](args, 0)
		if err != nil {
			return zero, err
		}
		b, err := argAt[B](args, 1)
		if err != nil {
			return zero, err
		}
		return fn(a, b), nil
	}}
}

func expectArity(args Args, n int) error {
	if len(args.Positional) != n {
		return invalidArgument("expected %d positional arguments, got %d", n, len(args.Positional))
	}
	if len(args.Keyword) > 0 {
		return invalidArgument("unexpected keyword arguments")
	}
	return nil
}

func argAt[A any](args Args, i int) (A, error) {
	v, ok := args.Positional[i].(A)
	if !ok {
		var zero A
		return zero, invalidArgument("argument %d: expected %T, got %T", i, zero, args.Positional[i])
	}
	return v, nil
}

var errorType = reflect.TypeFor[error]()

// FromFunc wraps an arbitrary Go function as a candidate using reflection.
// fn must return either (T) or (T, error). The label is the function's
// declared name. Keyword arguments are not supported and are rejected as
// ErrInvalidArgument when the candidate is invoked.
func FromFunc[T any](fn any) (Candidate[T], error) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return Candidate[T]{}, invalidArgument("expected a function, got %T", fn)
	}
	ft := v.Type()
	switch {
	case ft.NumOut() == 1:
	case ft.NumOut() == 2 && ft.Out(1) == errorType:
	default:
		return Candidate[T]{}, invalidArgument("%s must return (T) or (T, error)", ft)
	}
	if want := reflect.TypeFor[T](); !ft.Out(0).AssignableTo(want) {
		return Candidate[T]{}, invalidArgument("%s returns %s, not assignable to %s", ft, ft.Out(0), want)
	}

	call := func(args Args) (T, error) {
		var zero T
		if len(args.Keyword) > 0 {
			return zero, invalidArgument("keyword arguments are not supported by %s", ft)
		}
		in, err := reflectArgs(ft, args.Positional)
		if err != nil {
			return zero, err
		}
		out := v.Call(in)
		if len(out) == 2 && !out[1].IsNil() {
			return zero, out[1].Interface().(error)
		}
		res, _ := out[0].Interface().(T)
		return res, nil
	}
	return Candidate[T]{Name: FuncName(fn), Fn: call}, nil
}

func reflectArgs(ft reflect.Type, args []any) ([]reflect.Value, error) {
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
		if len(args) < fixed {
			return nil, invalidArgument("%s expects at least %d arguments, got %d", ft, fixed, len(args))
		}
	} else if len(args) != fixed {
		return nil, invalidArgument("%s expects %d arguments, got %d", ft, fixed, len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		var pt reflect.Type
		if i < fixed {
			pt = ft.In(i)
		} else {
			pt = ft.In(fixed).Elem()
		}
		if a == nil {
			switch pt.Kind() {
			case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
				in[i] = reflect.Zero(pt)
				continue
			}
			return nil, invalidArgument("argument %d: nil is not a valid %s", i, pt)
		}
		av := reflect.ValueOf(a)
		if !av.Type().AssignableTo(pt) {
			return nil, invalidArgument("argument %d: expected %s, got %s", i, pt, av.Type())
		}
		in[i] = av
	}
	return in, nil
}

// FuncName returns the declared name of fn without its package path,
// e.g. "AddNative" for candidates.AddNative.
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func || v.IsNil() {
		return fmt.Sprintf("%T", fn)
	}
	f := runtime.FuncForPC(v.Pointer())
	if f == nil {
		return "unknown"
	}
	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.Index(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimSuffix(name, "-fm")
}
