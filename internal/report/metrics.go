package report

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics exports the latest result of every candidate as Prometheus gauges.
type Metrics struct {
	duration *prometheus.GaugeVec
	relative *prometheus.GaugeVec
	runs     prometheus.Counter
	lastRun  prometheus.Gauge
}

func NewMetrics(namespace string, reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		duration: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "candidate_duration_seconds",
				Help:      "Total time of the last timed loop of a candidate",
			},
			[]string{"suite", "label"},
		),
		relative: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "candidate_relative_duration",
				Help:      "Candidate duration divided by the fastest candidate of its suite",
			},
			[]string{"suite", "label"},
		),
		runs: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "runs_total",
				Help:      "Number of completed benchmark runs",
			},
		),
		lastRun: prometheus.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time of the last completed benchmark run",
			},
		),
	}

	reg.MustRegister(m.duration, m.relative, m.runs, m.lastRun)
	return m
}

// Observe records every row of r.
func (m *Metrics) Observe(r Report) {
	for _, s := range r.Sections {
		for _, row := range s.Rows {
			m.duration.WithLabelValues(s.Suite, row.Label).Set(float64(row.DurationNs) / 1e9)
			m.relative.WithLabelValues(s.Suite, row.Label).Set(row.Relative)
		}
	}
	m.runs.Inc()
	m.lastRun.Set(float64(r.GeneratedAt.UnixNano()) / 1e9)
}
