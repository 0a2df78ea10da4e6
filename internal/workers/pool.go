package workers

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/aatumaykin/benchkit/internal/bench"
	"github.com/aatumaykin/benchkit/internal/logger"
	"github.com/google/uuid"
)

// WorkerPool manages a pool of goroutine workers for concurrent job execution.
type WorkerPool struct {
	taskQueue   chan Task
	workers     int
	taskTimeout time.Duration
	wg          *taskWaitGroup
	ctx         context.Context
	cancel      context.CancelFunc
	logger      *logger.Logger
	metrics     *PoolMetrics
	prom        *PrometheusMetrics

	stateMu sync.RWMutex
	running bool
	stopped bool
}

var _ bench.Pool = (*WorkerPool)(nil)

// Option configures a WorkerPool.
type Option func(*WorkerPool)

// WithTaskTimeout makes the pool resolve futures with ErrTaskTimeout when a
// job runs longer than d. Zero disables the timeout.
func WithTaskTimeout(d time.Duration) Option {
	return func(p *WorkerPool) { p.taskTimeout = d }
}

// WithPrometheus records task metrics into m.
func WithPrometheus(m *PrometheusMetrics) Option {
	return func(p *WorkerPool) { p.prom = m }
}

// NewPool creates a new worker pool. workers <= 0 falls back to
// DefaultPoolSize and bufferSize < 0 to DefaultQueueSize.
func NewPool(workers int, bufferSize int, log *logger.Logger, opts ...Option) *WorkerPool {
	if workers <= 0 {
		workers = DefaultPoolSize
	}
	if bufferSize < 0 {
		bufferSize = DefaultQueueSize
	}
	if log == nil {
		log = logger.Nop()
	}

	ctx, cancel := context.WithCancel(context.Background())
	p := &WorkerPool{
		taskQueue: make(chan Task, bufferSize),
		workers:   workers,
		wg:        newTaskWaitGroup(),
		ctx:       ctx,
		cancel:    cancel,
		logger:    log.With(logger.Field{Key: "component", Value: "workers"}),
		metrics:   &PoolMetrics{},
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.prom != nil {
		p.prom.SetWorkers(workers)
	}
	return p
}

// Start initializes and starts all worker goroutines. Calling Start on a
// running or stopped pool does nothing.
func (p *WorkerPool) Start() {
	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	if p.running || p.stopped {
		return
	}
	p.running = true

	p.logger.Info("starting worker pool",
		logger.Field{Key: "workers", Value: p.workers},
		logger.Field{Key: "buffer_size", Value: cap(p.taskQueue)},
		logger.Field{Key: "task_timeout", Value: p.taskTimeout})

	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
}

// Submit queues job without blocking. It fails with ErrPoolClosed if the pool
// is nil or not running and with ErrPoolSaturated if the queue is full.
func (p *WorkerPool) Submit(job bench.Job) (bench.Future, error) {
	if p == nil {
		return nil, ErrPoolClosed
	}
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()

	task, err := p.newTask(job)
	if err != nil {
		return nil, err
	}

	select {
	case p.taskQueue <- task:
		p.accepted(task)
		return task.future, nil
	default:
		p.rejected(task, ErrPoolSaturated)
		return nil, ErrPoolSaturated
	}
}

// SubmitWithContext queues job, waiting for queue space until ctx is done.
func (p *WorkerPool) SubmitWithContext(ctx context.Context, job bench.Job) (bench.Future, error) {
	if p == nil {
		return nil, ErrPoolClosed
	}
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()

	task, err := p.newTask(job)
	if err != nil {
		return nil, err
	}

	select {
	case p.taskQueue <- task:
		p.accepted(task)
		return task.future, nil
	case <-ctx.Done():
		p.rejected(task, ctx.Err())
		return nil, ctx.Err()
	case <-p.ctx.Done():
		p.rejected(task, ErrPoolClosed)
		return nil, ErrPoolClosed
	}
}

// newTask must be called with stateMu held.
func (p *WorkerPool) newTask(job bench.Job) (Task, error) {
	if job == nil {
		return Task{}, fmt.Errorf("nil job")
	}
	if !p.running || p.stopped {
		p.rejected(Task{}, ErrPoolClosed)
		return Task{}, ErrPoolClosed
	}
	id := uuid.NewString()
	return Task{ID: id, Job: job, SubmittedAt: time.Now(), future: newFuture(id)}, nil
}

func (p *WorkerPool) accepted(task Task) {
	p.incrementSubmitted()
	if p.prom != nil {
		p.prom.SetQueueDepth(len(p.taskQueue))
	}
	p.logger.DebugCtx(p.ctx, "task submitted",
		logger.Field{Key: "task_id", Value: task.ID},
		logger.Field{Key: "queue_size", Value: len(p.taskQueue)})
}

func (p *WorkerPool) rejected(task Task, err error) {
	p.incrementRejected()
	if p.prom != nil {
		p.prom.RecordRejected()
	}
	p.logger.WarnCtx(p.ctx, "task rejected",
		logger.Field{Key: "task_id", Value: task.ID},
		logger.Field{Key: "reason", Value: err.Error()})
}

// Stop shuts the pool down. Jobs already running finish; jobs still queued
// are not started and their futures resolve with ErrPoolClosed.
func (p *WorkerPool) Stop() {
	p.cancel()

	p.stateMu.Lock()
	if p.stopped {
		p.stateMu.Unlock()
		return
	}
	wasRunning := p.running
	p.stopped = true
	p.running = false
	p.stateMu.Unlock()

	if wasRunning {
		p.wg.Wait()
	}

	drained := 0
drain:
	for {
		select {
		case task := <-p.taskQueue:
			if task.future.resolve(nil, ErrPoolClosed) {
				drained++
				p.incrementFailed()
				if p.prom != nil {
					p.prom.RecordTask(StatusCancelled, 0)
				}
			}
		default:
			break drain
		}
	}
	if p.prom != nil {
		p.prom.SetQueueDepth(0)
	}

	metrics := p.Metrics()
	p.logger.Info("worker pool stopped",
		logger.Field{Key: "tasks_submitted", Value: metrics.TasksSubmitted},
		logger.Field{Key: "tasks_completed", Value: metrics.TasksCompleted},
		logger.Field{Key: "tasks_failed", Value: metrics.TasksFailed},
		logger.Field{Key: "tasks_rejected", Value: metrics.TasksRejected},
		logger.Field{Key: "tasks_drained", Value: drained})
}

// Close is Stop for use with defer and io.Closer-style cleanup.
func (p *WorkerPool) Close() error {
	p.Stop()
	return nil
}

// WorkerCount returns the number of workers.
func (p *WorkerPool) WorkerCount() int {
	return p.workers
}

// QueueSize returns the current number of tasks waiting in the queue.
func (p *WorkerPool) QueueSize() int {
	return len(p.taskQueue)
}

// Running reports whether the pool accepts work.
func (p *WorkerPool) Running() bool {
	p.stateMu.RLock()
	defer p.stateMu.RUnlock()
	return p.running && !p.stopped
}

// taskWaitGroup wraps sync.WaitGroup with thread-safe metrics access.
type taskWaitGroup struct {
	sync.RWMutex
	wg sync.WaitGroup
}

func newTaskWaitGroup() *taskWaitGroup {
	return &taskWaitGroup{}
}

func (twg *taskWaitGroup) Add(delta int) {
	twg.wg.Add(delta)
}

func (twg *taskWaitGroup) Done() {
	twg.wg.Done()
}

func (twg *taskWaitGroup) Wait() {
	twg.wg.Wait()
}
