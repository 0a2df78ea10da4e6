// Package workers provides a goroutine worker pool that runs benchmark jobs
// in the background. Submit is non-blocking and hands back a Future, so the
// pool satisfies bench.Pool.
package workers

import (
	"errors"
	"time"

	"github.com/aatumaykin/benchkit/internal/bench"
)

var (
	// ErrPoolClosed is returned for work submitted to a pool that is not
	// running, and resolves futures still queued when the pool stops.
	ErrPoolClosed = errors.New("worker pool is not running")

	// ErrPoolSaturated is returned by Submit when the task queue is full.
	ErrPoolSaturated = errors.New("worker pool queue is full")

	// ErrTaskTimeout resolves a future whose job ran longer than the pool's
	// task timeout. The job itself keeps running until it returns.
	ErrTaskTimeout = errors.New("task timed out")

	// ErrWorkerPanic resolves a future whose job panicked.
	ErrWorkerPanic = errors.New("worker panic")
)

// Task represents a unit of work queued on the pool.
type Task struct {
	ID          string     // Unique task identifier
	Job         bench.Job  // Work to run
	SubmittedAt time.Time  // When the task entered the queue
	future      *Future
}

// PoolMetrics tracks execution metrics for the worker pool.
type PoolMetrics struct {
	TasksSubmitted uint64
	TasksCompleted uint64
	TasksFailed    uint64
	TasksRejected  uint64
	TotalDuration  time.Duration
}

// Constants for worker pool configuration
const (
	DefaultPoolSize  = 5
	DefaultQueueSize = 100
)

// Task statuses used in logs and Prometheus labels.
const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusTimeout   = "timeout"
	StatusRejected  = "rejected"
	StatusCancelled = "cancelled"
)
