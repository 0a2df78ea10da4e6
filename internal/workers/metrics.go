package workers

import (
	"time"
)

// Metrics returns a snapshot of the pool counters.
func (p *WorkerPool) Metrics() PoolMetrics {
	p.wg.RLock()
	defer p.wg.RUnlock()
	return *p.metrics
}

// InFlight returns the number of accepted tasks that have not finished yet,
// queued ones included.
func (p *WorkerPool) InFlight() uint64 {
	m := p.Metrics()
	return m.TasksSubmitted - m.TasksCompleted - m.TasksFailed
}

// MeanDuration is the average worker time per finished task.
func (m PoolMetrics) MeanDuration() time.Duration {
	done := m.TasksCompleted + m.TasksFailed
	if done == 0 {
		return 0
	}
	return m.TotalDuration / time.Duration(done)
}

func (p *WorkerPool) updateMetrics(fn func(m *PoolMetrics)) {
	p.wg.Lock()
	defer p.wg.Unlock()
	fn(p.metrics)
}

func (p *WorkerPool) incrementSubmitted() {
	p.updateMetrics(func(m *PoolMetrics) { m.TasksSubmitted++ })
}

func (p *WorkerPool) incrementCompleted() {
	p.updateMetrics(func(m *PoolMetrics) { m.TasksCompleted++ })
}

func (p *WorkerPool) incrementFailed() {
	p.updateMetrics(func(m *PoolMetrics) { m.TasksFailed++ })
}

func (p *WorkerPool) incrementRejected() {
	p.updateMetrics(func(m *PoolMetrics) { m.TasksRejected++ })
}

func (p *WorkerPool) recordDuration(d time.Duration) {
	p.updateMetrics(func(m *PoolMetrics) { m.TotalDuration += d })
}
