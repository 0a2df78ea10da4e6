package main

import (
	"cmp"
	"context"
	"fmt"
	"io"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aatumaykin/benchkit/internal/bench"
	"github.com/aatumaykin/benchkit/internal/candidates"
	"github.com/aatumaykin/benchkit/internal/config"
	"github.com/aatumaykin/benchkit/internal/constants"
	"github.com/aatumaykin/benchkit/internal/logger"
	"github.com/aatumaykin/benchkit/internal/report"
	"github.com/aatumaykin/benchkit/internal/schedule"
	"github.com/aatumaykin/benchkit/internal/version"
	"github.com/aatumaykin/benchkit/internal/workers"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type runOptions struct {
	configPath  string
	iters       int
	size        int
	filter      string
	sort        string
	format      string
	workers     int
	queue       int
	schedule    string
	metricsFile string
	debug       bool
}

var runOpts runOptions

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run [suite...]",
	Short: "Run benchmark suites",
	Long: `Run the add and reduce suites (or the ones named) on a worker pool and
print the results. With --schedule the run repeats on a cron spec until
interrupted.`,
	Args: func(cmd *cobra.Command, args []string) error {
		for _, a := range args {
			if !candidates.Known(a) {
				return fmt.Errorf("unknown suite %q (expected: %s)", a, strings.Join(candidates.Names(), ", "))
			}
		}
		return nil
	},
	RunE: runHandler,
}

func runHandler(cmd *cobra.Command, args []string) error {
	cfg, err := loadRunConfig(runOpts, cmd.Flags(), args)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg, runOpts.debug)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer log.Close()
	logger.SetDefault(log)

	log.Info("Starting benchkit",
		logger.Field{Key: "version", Value: version.Version},
		logger.Field{Key: "suites", Value: cfg.Bench.Suites},
		logger.Field{Key: "workers", Value: cfg.Pool.Workers},
		logger.Field{Key: "schedule", Value: cfg.Schedule.Spec},
	)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	r, err := newRunner(cfg, log, cmd.OutOrStdout())
	if err != nil {
		return err
	}
	defer r.Close()

	if cfg.Schedule.Spec == "" {
		return r.Run(ctx, "")
	}

	sched, err := schedule.New(cfg.Schedule.Spec, r.Run, log)
	if err != nil {
		return err
	}
	if err := r.Run(ctx, fmt.Sprintf(constants.ScheduleRunIDFormat, 0)); err != nil {
		log.Error("initial run failed", err)
	}
	return sched.Run(ctx)
}

// loadRunConfig reads the config file (a missing file means defaults) and
// applies explicitly set flags on top.
func loadRunConfig(opts runOptions, flags *pflag.FlagSet, suites []string) (*config.Config, error) {
	path := cmp.Or(opts.configPath, constants.DefaultConfigPath)

	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(path)
	} else {
		cfg, err = config.LoadOrDefault(path)
	}
	if err != nil {
		return nil, err
	}

	if len(suites) > 0 {
		cfg.Bench.Suites = suites
	}
	if flags.Changed("iters") {
		cfg.Bench.AddIterations = opts.iters
	}
	if flags.Changed("size") {
		cfg.Bench.ReduceSize = opts.size
	}
	if flags.Changed("filter") {
		cfg.Bench.Filter = opts.filter
	}
	if flags.Changed("sort") {
		cfg.Bench.Sort = opts.sort
	}
	if flags.Changed("format") {
		cfg.Bench.Format = opts.format
	}
	if flags.Changed("workers") {
		cfg.Pool.Workers = opts.workers
	}
	if flags.Changed("queue") {
		cfg.Pool.QueueSize = opts.queue
	}
	if flags.Changed("schedule") {
		cfg.Schedule.Spec = opts.schedule
	}
	if flags.Changed("metrics-file") {
		cfg.Metrics.File = opts.metricsFile
		cfg.Metrics.Enabled = opts.metricsFile != ""
	}

	if errs := cfg.Validate(); len(errs) > 0 {
		msgs := make([]string, len(errs))
		for i, e := range errs {
			msgs[i] = "  - " + e.Error()
		}
		return nil, fmt.Errorf("configuration validation failed:\n%s", strings.Join(msgs, "\n"))
	}
	return cfg, nil
}

func newLogger(cfg *config.Config, debug bool) (*logger.Logger, error) {
	level := cfg.Logging.Level
	if debug {
		level = "debug"
	}
	return logger.New(logger.Config{
		Level:  level,
		Format: cfg.Logging.Format,
		Output: cfg.Logging.Output,
	})
}

// runner owns the pool and metrics shared by every run of one invocation.
type runner struct {
	cfg     *config.Config
	log     *logger.Logger
	out     io.Writer
	filter  *candidates.Filter
	pool    *workers.WorkerPool
	reg     *prometheus.Registry
	metrics *report.Metrics
}

func newRunner(cfg *config.Config, log *logger.Logger, out io.Writer) (*runner, error) {
	filter, err := candidates.NewFilter(cfg.Bench.Filter)
	if err != nil {
		return nil, err
	}

	r := &runner{cfg: cfg, log: log, out: out, filter: filter}

	var opts []workers.Option
	if cfg.Pool.TaskTimeoutSeconds > 0 {
		opts = append(opts, workers.WithTaskTimeout(time.Duration(cfg.Pool.TaskTimeoutSeconds)*time.Second))
	}
	if cfg.Metrics.Enabled {
		r.reg = prometheus.NewRegistry()
		r.reg.MustRegister(collectors.NewGoCollector())
		opts = append(opts, workers.WithPrometheus(workers.InitPrometheusMetrics(cfg.Metrics.Namespace, r.reg)))
		r.metrics = report.NewMetrics(cfg.Metrics.Namespace, r.reg)
	}

	r.pool = workers.NewPool(cfg.Pool.Workers, cfg.Pool.QueueSize, log, opts...)
	r.pool.Start()
	return r, nil
}

func (r *runner) Close() {
	r.pool.Stop()
}

// sectionWaiter blocks until a dispatched suite has resolved.
type sectionWaiter func() (report.Section, error)

// Run dispatches every configured suite before waiting on any of them, then
// renders the report and refreshes the metrics textfile.
func (r *runner) Run(ctx context.Context, runID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	var waiters []sectionWaiter
	for _, name := range r.cfg.Bench.Suites {
		w, err := r.dispatch(name)
		if err != nil {
			return err
		}
		waiters = append(waiters, w)
	}

	rep := report.Report{Banner: version.Banner(), RunID: runID}
	for _, w := range waiters {
		section, err := w()
		if err != nil {
			return err
		}
		rep.Sections = append(rep.Sections, section)
	}
	rep.GeneratedAt = time.Now()

	if err := report.Render(r.out, rep, r.cfg.Bench.Format); err != nil {
		return err
	}

	if r.metrics != nil {
		r.metrics.Observe(rep)
		if err := workers.WriteTextfile(r.cfg.Metrics.File, r.reg); err != nil {
			return err
		}
	}

	r.log.InfoCtx(ctx, "run finished",
		logger.Field{Key: "run_id", Value: runID},
		logger.Field{Key: "pool_mean_task", Value: r.pool.Metrics().MeanDuration()})
	return nil
}

func (r *runner) dispatch(name string) (sectionWaiter, error) {
	switch name {
	case candidates.SuiteAdd:
		s, err := candidates.AddSuite(r.cfg.Bench.AddIterations)
		if err != nil {
			return nil, err
		}
		return dispatchSuite(r.pool, s.Filter(r.filter), r.cfg.Bench.Sort)
	case candidates.SuiteReduce:
		s, err := candidates.ReduceSuite(r.cfg.Bench.ReduceSize)
		if err != nil {
			return nil, err
		}
		return dispatchSuite(r.pool, s.Filter(r.filter), r.cfg.Bench.Sort)
	default:
		return nil, fmt.Errorf("unknown suite %q", name)
	}
}

func dispatchSuite[T cmp.Ordered](p bench.Pool, s candidates.Suite[T], sortMode string) (sectionWaiter, error) {
	pending, err := s.Dispatch(p)
	if err != nil {
		return nil, err
	}
	repeat := 0
	if len(s.Entries) > 0 {
		repeat = s.Entries[0].Repeat
	}
	return func() (report.Section, error) {
		results, err := pending.Wait()
		if err != nil {
			return report.Section{}, fmt.Errorf("suite %s: %w", s.Name, err)
		}
		return report.NewSection(s.Name, repeat, results, sortMode)
	}, nil
}

// newRunFlags declares the run flags bound to opts.
func newRunFlags(opts *runOptions) *pflag.FlagSet {
	f := pflag.NewFlagSet("run", pflag.ContinueOnError)
	f.StringVarP(&opts.configPath, "config", "c", "", "Path to configuration file (default: ./benchkit.toml)")
	f.IntVar(&opts.iters, "iters", constants.DefaultAddIterations, "Repetitions per add candidate")
	f.IntVar(&opts.size, "size", constants.DefaultReduceSize, "Input length for the reduce suite")
	f.StringVar(&opts.filter, "filter", "", "RE2 pattern selecting candidates by label")
	f.StringVar(&opts.sort, "sort", "time", "Result order: time, label, payload, none")
	f.StringVar(&opts.format, "format", "text", "Output format: text, json, yaml")
	f.IntVar(&opts.workers, "workers", 0, "Worker count (default: number of CPUs)")
	f.IntVar(&opts.queue, "queue", constants.DefaultQueueSize, "Pool queue size")
	f.StringVar(&opts.schedule, "schedule", "", "Cron spec to repeat the run on, e.g. \"@every 10m\"")
	f.StringVar(&opts.metricsFile, "metrics-file", "", "Write Prometheus metrics to this textfile after each run")
	f.BoolVarP(&opts.debug, "debug", "d", false, "Enable debug logging")
	return f
}

func init() {
	runCmd.Flags().AddFlagSet(newRunFlags(&runOpts))
}
