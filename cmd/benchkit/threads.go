package main

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/aatumaykin/benchkit/internal/bench"
	"github.com/aatumaykin/benchkit/internal/logger"
	"github.com/aatumaykin/benchkit/internal/workers"
	"github.com/spf13/cobra"
)

var threadsUnit time.Duration

// threadsCmd represents the threads command
var threadsCmd = &cobra.Command{
	Use:   "threads",
	Short: "Show how the worker pool schedules sleeping jobs",
	Long: `Submit sleeping jobs to small pools and print when each one is queued
and resolved: an async job racing a synchronous one on two workers, then six
jobs on four workers where the last ones wait for a free worker.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runThreads(cmd.OutOrStdout(), threadsUnit, logger.Nop())
	},
}

// lockedWriter serializes writes coming from pool workers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) Printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format, args...)
}

func sleepJob(d time.Duration) bench.Job {
	return func() (any, error) {
		time.Sleep(d)
		return d, nil
	}
}

func runThreads(w io.Writer, unit time.Duration, log *logger.Logger) error {
	out := &lockedWriter{w: w}
	units := func(n float64) time.Duration { return time.Duration(n * float64(unit)) }

	pool := workers.NewPool(2, 2, log)
	pool.Start()

	start := time.Now()
	async, err := pool.Submit(sleepJob(units(1.5)))
	if err != nil {
		pool.Stop()
		return err
	}
	out.Printf("time to queue: %s\n", time.Since(start))

	blocking, err := pool.Submit(sleepJob(units(1)))
	if err != nil {
		pool.Stop()
		return err
	}
	if _, err := blocking.Get(); err != nil {
		pool.Stop()
		return err
	}
	if f, ok := async.(*workers.Future); ok && !f.Ready() {
		out.Printf("async still pending...\n")
	}
	out.Printf("time to sync complete: %s\n", time.Since(start))

	if _, err := async.Get(); err != nil {
		pool.Stop()
		return err
	}
	out.Printf("async resolved...\n")
	out.Printf("time for async complete: %s\n", time.Since(start))
	pool.Stop()

	// Six jobs on four workers: the last two start only once a worker frees up.
	pool = workers.NewPool(4, 6, log)
	pool.Start()
	defer pool.Stop()

	start = time.Now()
	var futures []bench.Future
	for _, n := range []float64{1, 1, 2, 3, 4, 1} {
		f, err := pool.Submit(func() (any, error) {
			time.Sleep(units(n))
			out.Printf("time for %g: %s\n", n, time.Since(start))
			return nil, nil
		})
		if err != nil {
			return err
		}
		futures = append(futures, f)
	}
	for _, f := range futures {
		if _, err := f.Get(); err != nil {
			return err
		}
	}
	out.Printf("DONE\n")
	return nil
}

func init() {
	threadsCmd.Flags().DurationVar(&threadsUnit, "unit", time.Second, "Length of one sleep unit")
}
