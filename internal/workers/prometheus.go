package workers

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

type PrometheusMetrics struct {
	registry   prometheus.Registerer
	tasksTotal *prometheus.CounterVec
	taskDur    *prometheus.HistogramVec
	queueWait  prometheus.Histogram
	queueDepth prometheus.Gauge
	workers    prometheus.Gauge
}

func InitPrometheusMetrics(namespace string, reg prometheus.Registerer) *PrometheusMetrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &PrometheusMetrics{
		registry: reg,
		tasksTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "pool_tasks_total",
				Help:      "Total number of pool tasks by final status",
			},
			[]string{"status"},
		),
		taskDur: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pool_task_duration_seconds",
				Help:      "Wall-clock time a worker spent on a task",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 12),
			},
			[]string{"status"},
		),
		queueWait: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "pool_queue_wait_seconds",
				Help:      "Time a task spent queued before a worker picked it up",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 12),
			},
		),
		queueDepth: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "pool_queue_depth",
				Help:      "Number of tasks waiting in the queue",
			},
		),
		workers: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "pool_workers",
				Help:      "Number of pool workers",
			},
		),
	}

	reg.MustRegister(
		m.tasksTotal,
		m.taskDur,
		m.queueWait,
		m.queueDepth,
		m.workers,
	)

	return m
}

func (m *PrometheusMetrics) RecordTask(status string, duration time.Duration) {
	m.tasksTotal.WithLabelValues(status).Inc()
	m.taskDur.WithLabelValues(status).Observe(duration.Seconds())
}

func (m *PrometheusMetrics) RecordRejected() {
	m.tasksTotal.WithLabelValues(StatusRejected).Inc()
}

func (m *PrometheusMetrics) ObserveQueueWait(d time.Duration) {
	m.queueWait.Observe(d.Seconds())
}

func (m *PrometheusMetrics) SetQueueDepth(n int) {
	m.queueDepth.Set(float64(n))
}

func (m *PrometheusMetrics) SetWorkers(n int) {
	m.workers.Set(float64(n))
}

// WriteTextfile dumps everything gathered by g in the Prometheus text format,
// for node_exporter's textfile collector.
func WriteTextfile(path string, g prometheus.Gatherer) error {
	if err := prometheus.WriteToTextfile(path, g); err != nil {
		return fmt.Errorf("failed to write metrics to %s: %w", path, err)
	}
	return nil
}
