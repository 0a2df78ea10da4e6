// Package schedule re-runs benchmark suites on a cron schedule.
// It uses robfig/cron/v3; specs accept an optional seconds field and the
// @every / @hourly style descriptors.
package schedule

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/aatumaykin/benchkit/internal/constants"
	"github.com/aatumaykin/benchkit/internal/logger"
	"github.com/robfig/cron/v3"
)

var parser = cron.NewParser(cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor)

// ParseSpec validates a cron expression.
func ParseSpec(spec string) (cron.Schedule, error) {
	sched, err := parser.Parse(spec)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	return sched, nil
}

// RunFunc performs one scheduled run. runID is unique per scheduler.
type RunFunc func(ctx context.Context, runID string) error

// Scheduler triggers a RunFunc on every tick of its cron spec.
// A tick that fires while the previous run is still going is skipped.
type Scheduler struct {
	cron    *cron.Cron
	spec    string
	run     RunFunc
	logger  *logger.Logger
	entryID cron.EntryID

	ctx     context.Context
	cancel  context.CancelFunc
	stopped chan struct{} // closed once the cron loop and its runs are done
	started bool
	mu      sync.Mutex

	runs     atomic.Uint64
	failures atomic.Uint64
}

// New creates a scheduler for spec. It does not start ticking until Start.
func New(spec string, run RunFunc, log *logger.Logger) (*Scheduler, error) {
	if run == nil {
		return nil, fmt.Errorf("schedule: run func is nil")
	}
	if log == nil {
		log = logger.Nop()
	}
	log = log.With(logger.Field{Key: "component", Value: "schedule"})

	cl := cronLogger{log: log}
	s := &Scheduler{
		cron: cron.New(
			cron.WithParser(parser),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		spec:   spec,
		run:    run,
		logger: log,
		ctx:    context.Background(),
	}

	id, err := s.cron.AddFunc(spec, s.execute)
	if err != nil {
		return nil, fmt.Errorf("invalid cron expression %q: %w", spec, err)
	}
	s.entryID = id

	return s, nil
}

// Start begins ticking. The scheduler stops on its own when ctx is done.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return fmt.Errorf("scheduler already started")
	}

	s.ctx, s.cancel = context.WithCancel(ctx)
	s.stopped = make(chan struct{})
	s.started = true
	s.cron.Start()

	s.logger.Info("scheduler started",
		logger.Field{Key: "spec", Value: s.spec},
		logger.Field{Key: "next", Value: s.Next().Format(time.RFC3339)})

	go func() {
		<-s.ctx.Done()
		_ = s.Stop()
	}()

	return nil
}

// Stop halts ticking and waits for an in-progress run to return.
func (s *Scheduler) Stop() error {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return fmt.Errorf("scheduler not started")
	}
	s.started = false
	s.cancel()
	stopped := s.stopped
	s.mu.Unlock()

	<-s.cron.Stop().Done()
	close(stopped)
	s.logger.Info("scheduler stopped",
		logger.Field{Key: "runs", Value: s.runs.Load()},
		logger.Field{Key: "failures", Value: s.failures.Load()})
	return nil
}

// Run starts the scheduler and blocks until ctx is done and any run in
// progress has returned.
func (s *Scheduler) Run(ctx context.Context) error {
	if err := s.Start(ctx); err != nil {
		return err
	}
	s.mu.Lock()
	stopped := s.stopped
	s.mu.Unlock()

	<-ctx.Done()
	if err := s.Stop(); err != nil {
		// already stopped by the ctx watcher
		s.logger.Debug("stop after cancel", logger.Field{Key: "reason", Value: err.Error()})
	}
	<-stopped
	return nil
}

// Next returns the time of the next tick, or the zero time if not running.
func (s *Scheduler) Next() time.Time {
	return s.cron.Entry(s.entryID).Next
}

// Runs is the number of runs triggered so far.
func (s *Scheduler) Runs() uint64 {
	return s.runs.Load()
}

// Failures is the number of runs that returned an error.
func (s *Scheduler) Failures() uint64 {
	return s.failures.Load()
}

func (s *Scheduler) execute() {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()

	runID := fmt.Sprintf(constants.ScheduleRunIDFormat, s.runs.Add(1))
	start := time.Now()

	if err := s.run(ctx, runID); err != nil {
		s.failures.Add(1)
		s.logger.ErrorCtx(ctx, "scheduled run failed", err,
			logger.Field{Key: "run_id", Value: runID},
			logger.Field{Key: "duration", Value: time.Since(start)})
		return
	}

	s.logger.InfoCtx(ctx, "scheduled run finished",
		logger.Field{Key: "run_id", Value: runID},
		logger.Field{Key: "duration", Value: time.Since(start)})
}

// cronLogger routes robfig/cron's internal logging into our logger.
type cronLogger struct {
	log *logger.Logger
}

func (c cronLogger) Info(msg string, keysAndValues ...any) {
	c.log.Debug("cron: "+msg, kvFields(keysAndValues)...)
}

func (c cronLogger) Error(err error, msg string, keysAndValues ...any) {
	c.log.Error("cron: "+msg, err, kvFields(keysAndValues)...)
}

func kvFields(kv []any) []logger.Field {
	fields := make([]logger.Field, 0, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		fields = append(fields, logger.Field{Key: fmt.Sprint(kv[i]), Value: kv[i+1]})
	}
	return fields
}
