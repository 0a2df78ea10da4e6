package workers

import "sync"

// Future is the handle returned by Submit. It resolves exactly once.
type Future struct {
	id    string
	done  chan struct{}
	once  sync.Once
	value any
	err   error
}

func newFuture(id string) *Future {
	return &Future{id: id, done: make(chan struct{})}
}

// ID returns the task identifier the future belongs to.
func (f *Future) ID() string { return f.id }

// Done is closed once the future is resolved.
func (f *Future) Done() <-chan struct{} { return f.done }

// Ready reports whether Get would return without blocking.
func (f *Future) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Get blocks until the task finishes and returns its result.
func (f *Future) Get() (any, error) {
	<-f.done
	return f.value, f.err
}

// resolve sets the outcome. Later calls are ignored; it reports whether this
// call won.
func (f *Future) resolve(value any, err error) bool {
	won := false
	f.once.Do(func() {
		f.value, f.err = value, err
		close(f.done)
		won = true
	})
	return won
}
