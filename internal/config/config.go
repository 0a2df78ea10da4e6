package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/aatumaykin/benchkit/internal/constants"
	"github.com/aatumaykin/benchkit/internal/schedule"
	"github.com/wasilibs/go-re2"
)

// Load загружает конфигурацию из TOML файла
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// LoadOrDefault загружает конфигурацию, а при отсутствии файла возвращает
// значения по умолчанию
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Parse разбирает TOML и применяет значения по умолчанию
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("unknown config keys: %s", strings.Join(keys, ", "))
	}

	expandEnvVars(&cfg)
	applyDefaults(&cfg)

	return &cfg, nil
}

// Default возвращает конфигурацию со значениями по умолчанию
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Validate проверяет валидность конфигурации
func (c *Config) Validate() []error {
	var errs []error

	// Проверка pool
	if c.Pool.Workers < 1 {
		errs = append(errs, fmt.Errorf("pool.workers must be >= 1, got %d", c.Pool.Workers))
	}
	if c.Pool.QueueSize < 1 {
		errs = append(errs, fmt.Errorf("pool.queue_size must be >= 1, got %d", c.Pool.QueueSize))
	}
	if c.Pool.TaskTimeoutSeconds < 0 {
		errs = append(errs, fmt.Errorf("pool.task_timeout_seconds cannot be negative, got %d", c.Pool.TaskTimeoutSeconds))
	}

	// Проверка bench
	if c.Bench.AddIterations < 1 {
		errs = append(errs, fmt.Errorf("bench.add_iterations must be >= 1, got %d", c.Bench.AddIterations))
	}
	if c.Bench.ReduceSize < 0 {
		errs = append(errs, fmt.Errorf("bench.reduce_size cannot be negative, got %d", c.Bench.ReduceSize))
	}
	for _, s := range c.Bench.Suites {
		if !slices.Contains(ValidSuites, s) {
			errs = append(errs, fmt.Errorf("invalid bench.suites entry: %s (expected: %s)", s, strings.Join(ValidSuites, ", ")))
		}
	}
	if !slices.Contains(ValidSorts, strings.ToLower(c.Bench.Sort)) {
		errs = append(errs, fmt.Errorf("invalid bench.sort: %s (expected: %s)", c.Bench.Sort, strings.Join(ValidSorts, ", ")))
	}
	if !slices.Contains(ValidFormats, strings.ToLower(c.Bench.Format)) {
		errs = append(errs, fmt.Errorf("invalid bench.format: %s (expected: %s)", c.Bench.Format, strings.Join(ValidFormats, ", ")))
	}
	if c.Bench.Filter != "" {
		if _, err := re2.Compile(c.Bench.Filter); err != nil {
			errs = append(errs, fmt.Errorf("invalid bench.filter: %w", err))
		}
	}

	// Проверка schedule
	if c.Schedule.Spec != "" {
		if _, err := schedule.ParseSpec(c.Schedule.Spec); err != nil {
			errs = append(errs, fmt.Errorf("invalid schedule.spec: %w", err))
		}
	}

	// Проверка metrics
	if c.Metrics.Enabled && c.Metrics.File == "" {
		errs = append(errs, fmt.Errorf("metrics.file is required when metrics are enabled"))
	}
	if c.Metrics.File != "" {
		if err := validatePath(c.Metrics.File, "metrics.file"); err != nil {
			errs = append(errs, err)
		}
	}

	// Проверка logging config
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[strings.ToLower(c.Logging.Level)] {
		errs = append(errs, fmt.Errorf("invalid logging.level: %s (expected: debug, info, warn, error)", c.Logging.Level))
	}
	validFormats := map[string]bool{"json": true, "text": true}
	if !validFormats[strings.ToLower(c.Logging.Format)] {
		errs = append(errs, fmt.Errorf("invalid logging.format: %s (expected: json, text)", c.Logging.Format))
	}
	if c.Logging.Output == "" {
		errs = append(errs, fmt.Errorf("logging.output is required"))
	}

	return errs
}

func validatePath(path, fieldName string) error {
	if strings.HasPrefix(path, "~") {
		return nil
	}
	if strings.Contains(path, "..") {
		return fmt.Errorf("%s contains potentially dangerous path traversal sequence", fieldName)
	}
	return nil
}

// applyDefaults применяет значения по умолчанию
func applyDefaults(c *Config) {
	if c.Pool.Workers == 0 {
		c.Pool.Workers = runtime.NumCPU()
	}
	if c.Pool.QueueSize == 0 {
		c.Pool.QueueSize = constants.DefaultQueueSize
	}

	if len(c.Bench.Suites) == 0 {
		c.Bench.Suites = slices.Clone(ValidSuites)
	}
	if c.Bench.AddIterations == 0 {
		c.Bench.AddIterations = constants.DefaultAddIterations
	}
	if c.Bench.ReduceSize == 0 {
		c.Bench.ReduceSize = constants.DefaultReduceSize
	}
	if c.Bench.Sort == "" {
		c.Bench.Sort = "time"
	}
	if c.Bench.Format == "" {
		c.Bench.Format = "text"
	}

	if c.Metrics.Namespace == "" {
		c.Metrics.Namespace = constants.MetricsNamespace
	}

	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stderr"
	}
}

// expandEnvVars расширяет переменные окружения в конфигурации
func expandEnvVars(c *Config) {
	c.Bench.Filter = expandEnv(c.Bench.Filter)
	c.Schedule.Spec = expandEnv(c.Schedule.Spec)
	c.Metrics.File = expandHome(expandEnv(c.Metrics.File))
	c.Logging.Level = expandEnv(c.Logging.Level)
	c.Logging.Output = expandHome(expandEnv(c.Logging.Output))
}

// expandEnv расширяет переменную окружения формата ${VAR:default}
func expandEnv(s string) string {
	if !strings.HasPrefix(s, "${") {
		return s
	}

	end := strings.Index(s, "}")
	if end == -1 {
		return s
	}

	content := s[2:end]
	if key, defaultVal, ok := strings.Cut(content, ":"); ok {
		if val := os.Getenv(key); val != "" {
			return val + s[end+1:]
		}
		return defaultVal + s[end+1:]
	}

	// Без значения по умолчанию
	return os.Getenv(content) + s[end+1:]
}

// expandHome расширяет ~ в пути
func expandHome(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}
