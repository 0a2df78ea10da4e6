package bench

import (
	"errors"
	"time"
)

var errPoolClosed = errors.New("pool closed")

// goPool runs every job on its own goroutine.
type goPool struct {
	closed    bool
	submitted int
}

type outcome struct {
	v   any
	err error
}

type chanFuture struct {
	ch chan outcome
}

func (f *chanFuture) Get() (any, error) {
	o := <-f.ch
	return o.v, o.err
}

func (p *goPool) Submit(job Job) (Future, error) {
	if p.closed {
		return nil, errPoolClosed
	}
	p.submitted++
	f := &chanFuture{ch: make(chan outcome, 1)}
	go func() {
		v, err := job()
		f.ch <- outcome{v: v, err: err}
	}()
	return f, nil
}

// staticFuture returns a fixed value without running anything.
type staticFuture struct {
	v   any
	err error
}

func (f staticFuture) Get() (any, error) { return f.v, f.err }

func add(a, b int) int { return a + b }

func sleeper(name string, d time.Duration) Candidate[string] {
	return Nullary(name, func() string {
		time.Sleep(d)
		return name
	})
}

func resultsOf(durations map[string]time.Duration, order ...string) *Results[int] {
	rs := NewResults[int]()
	for i, label := range order {
		rs.items = append(rs.items, NewResult(label, Timed[int]{Duration: durations[label], Payload: i}))
	}
	return rs
}
