// Package config provides configuration loading and validation for benchkit.
// It supports TOML configuration files with environment variable expansion,
// default values, and validation.
//
// Configuration structure:
//   - [pool]: worker count, queue size and per-task timeout
//   - [bench]: suite parameters, candidate filter, ordering and output format
//   - [schedule]: optional cron spec for repeated runs
//   - [metrics]: Prometheus textfile output
//   - [logging]: logging level, format, and output
//
// Environment variables:
// String values can reference environment variables using ${VAR} or
// ${VAR:default} syntax. For example: file = "${BENCH_METRICS:/tmp/bench.prom}"
package config

// Config represents the main application configuration.
type Config struct {
	Pool     PoolConfig     `toml:"pool"`
	Bench    BenchConfig    `toml:"bench"`
	Schedule ScheduleConfig `toml:"schedule"`
	Metrics  MetricsConfig  `toml:"metrics"`
	Logging  LoggingConfig  `toml:"logging"`
}

// PoolConfig представляет конфигурацию worker pool
type PoolConfig struct {
	Workers            int `toml:"workers"`
	QueueSize          int `toml:"queue_size"`
	TaskTimeoutSeconds int `toml:"task_timeout_seconds"` // 0 = без таймаута
}

// BenchConfig представляет параметры прогона бенчмарков
type BenchConfig struct {
	Suites        []string `toml:"suites"`
	AddIterations int      `toml:"add_iterations"`
	ReduceSize    int      `toml:"reduce_size"`
	Filter        string   `toml:"filter"` // RE2 по именам кандидатов
	Sort          string   `toml:"sort"`   // time, label, payload, none
	Format        string   `toml:"format"` // text, json, yaml
}

// ScheduleConfig представляет конфигурацию периодического запуска
type ScheduleConfig struct {
	Spec string `toml:"spec"`
}

// MetricsConfig представляет конфигурацию метрик Prometheus
type MetricsConfig struct {
	Enabled   bool   `toml:"enabled"`
	Namespace string `toml:"namespace"`
	File      string `toml:"file"`
}

// LoggingConfig представляет конфигурацию логирования
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
	Output string `toml:"output"`
}

// Valid values for the enumerated bench settings.
var (
	ValidSorts   = []string{"time", "label", "payload", "none"}
	ValidFormats = []string{"text", "json", "yaml"}
	ValidSuites  = []string{"add", "reduce"}
)
