// Package scheduler runs the server's periodic jobs on gocron.
package scheduler

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"stockfolio/internal/logger"

	"github.com/go-co-op/gocron/v2"
	"go.uber.org/zap"
)

// Task is the body of a job. The context is cancelled on shutdown.
type Task func(ctx context.Context) error

// Scheduler wraps a gocron scheduler. Jobs never overlap with themselves
// and a panicking job is logged instead of taking the process down.
type Scheduler struct {
	scheduler gocron.Scheduler
	log       *zap.SugaredLogger
}

// New creates a stopped scheduler.
func New() (*Scheduler, error) {
	s, err := gocron.NewScheduler()
	if err != nil {
		return nil, fmt.Errorf("create scheduler: %w", err)
	}
	return &Scheduler{scheduler: s, log: logger.Named("scheduler")}, nil
}

// Start begins running registered jobs.
func (s *Scheduler) Start() {
	s.scheduler.Start()
}

// Stop shuts the scheduler down and waits for running jobs.
func (s *Scheduler) Stop() error {
	return s.scheduler.Shutdown()
}

// NewIntervalJob runs fn every interval, optionally once right away.
func (s *Scheduler) NewIntervalJob(name string, fn Task, interval time.Duration, startImmediately bool) error {
	opts := []gocron.JobOption{
		gocron.WithName(name),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	}
	if startImmediately {
		opts = append(opts, gocron.WithStartAt(gocron.WithStartImmediately()))
	}

	if _, err := s.scheduler.NewJob(gocron.DurationJob(interval), gocron.NewTask(s.withRecover(name, fn)), opts...); err != nil {
		return fmt.Errorf("create job %s: %w", name, err)
	}
	return nil
}

func (s *Scheduler) withRecover(name string, fn Task) func(ctx context.Context) {
	return func(ctx context.Context) {
		defer func() {
			if r := recover(); r != nil {
				s.log.Errorw("panic recovered in scheduled job",
					"job", name,
					"panic", r,
					"stacktrace", string(debug.Stack()),
				)
			}
		}()

		start := time.Now()
		if err := fn(ctx); err != nil {
			s.log.Errorw("job failed", "job", name, "error", err)
			return
		}
		s.log.Debugw("job completed", "job", name, "duration", time.Since(start))
	}
}
