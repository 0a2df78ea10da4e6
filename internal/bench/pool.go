package bench

// Job is a zero-argument unit of work handed to a Pool.
type Job func() (any, error)

// Future is a handle to a submitted Job. Get blocks until the job has
// finished and returns its result. A Future is resolved at most once by this
// package.
type Future interface {
	Get() (any, error)
}

// Pool is the submission capability the harness depends on. Submit must not
// run the job synchronously to completion; it should return as soon as the job
// is queued, or fail if the pool cannot accept it.
type Pool interface {
	Submit(job Job) (Future, error)
}
