package workers

import (
	"errors"
	"fmt"
	"time"

	"github.com/aatumaykin/benchkit/internal/logger"
)

// worker is the main worker goroutine that processes tasks from the queue.
func (p *WorkerPool) worker(id int) {
	defer p.wg.Done()

	p.logger.DebugCtx(p.ctx, "worker started",
		logger.Field{Key: "worker_id", Value: id})

	for {
		// Shutdown wins over queued work.
		select {
		case <-p.ctx.Done():
			p.logger.DebugCtx(p.ctx, "worker stopping",
				logger.Field{Key: "worker_id", Value: id})
			return
		default:
		}

		select {
		case task := <-p.taskQueue:
			p.processTask(id, task)
		case <-p.ctx.Done():
			p.logger.DebugCtx(p.ctx, "worker stopping",
				logger.Field{Key: "worker_id", Value: id})
			return
		}
	}
}

// processTask runs a single task and resolves its future.
func (p *WorkerPool) processTask(workerID int, task Task) {
	startTime := time.Now()
	if p.prom != nil {
		p.prom.SetQueueDepth(len(p.taskQueue))
		p.prom.ObserveQueueWait(startTime.Sub(task.SubmittedAt))
	}

	p.logger.DebugCtx(p.ctx, "processing task",
		logger.Field{Key: "worker_id", Value: workerID},
		logger.Field{Key: "task_id", Value: task.ID},
		logger.Field{Key: "queued_for", Value: startTime.Sub(task.SubmittedAt)})

	value, err := p.executeTask(task)
	duration := time.Since(startTime)
	task.future.resolve(value, err)

	status := StatusCompleted
	switch {
	case errors.Is(err, ErrTaskTimeout):
		status = StatusTimeout
	case err != nil:
		status = StatusFailed
	}
	if err != nil {
		p.incrementFailed()
	} else {
		p.incrementCompleted()
	}
	p.recordDuration(duration)
	if p.prom != nil {
		p.prom.RecordTask(status, duration)
	}

	p.logger.DebugCtx(p.ctx, "task processed",
		logger.Field{Key: "worker_id", Value: workerID},
		logger.Field{Key: "task_id", Value: task.ID},
		logger.Field{Key: "status", Value: status},
		logger.Field{Key: "duration_ms", Value: duration.Milliseconds()},
		logger.Field{Key: "error", Value: err})
}

// executeTask runs the job with panic recovery. With a task timeout the job
// runs on its own goroutine and is abandoned, not cancelled, when the timer
// fires.
func (p *WorkerPool) executeTask(task Task) (any, error) {
	if p.taskTimeout <= 0 {
		return p.runRecovered(task)
	}

	type outcome struct {
		value any
		err   error
	}
	done := make(chan outcome, 1)
	go func() {
		v, err := p.runRecovered(task)
		done <- outcome{value: v, err: err}
	}()

	timer := time.NewTimer(p.taskTimeout)
	defer timer.Stop()

	select {
	case o := <-done:
		return o.value, o.err
	case <-timer.C:
		p.logger.WarnCtx(p.ctx, "task exceeded timeout",
			logger.Field{Key: "task_id", Value: task.ID},
			logger.Field{Key: "timeout", Value: p.taskTimeout})
		return nil, fmt.Errorf("%w after %s", ErrTaskTimeout, p.taskTimeout)
	}
}

func (p *WorkerPool) runRecovered(task Task) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrWorkerPanic, r)
			p.logger.ErrorCtx(p.ctx, "task panic recovered", err,
				logger.Field{Key: "task_id", Value: task.ID})
		}
	}()
	return task.Job()
}
