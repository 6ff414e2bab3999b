// Package scheduler drives the recurring background jobs, each on its own
// ticker so a slow job never delays the others.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

// Job is one recurring unit of work. Interval is the cadence; when AtHour is
// set the first run is aligned to the next occurrence of that wall-clock hour
// (daily jobs). RunAtStart fires one run immediately on scheduler start.
type Job struct {
	Name       string
	Interval   time.Duration
	AtHour     *int
	RunAtStart bool
	Run        func(ctx context.Context) error
}

type Scheduler struct {
	jobs   []Job
	logger *slog.Logger
	now    func() time.Time

	wg      sync.WaitGroup
	started bool
	mu      sync.Mutex
}

func New(logger *slog.Logger) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		logger: logger,
		now:    time.Now,
	}
}

func (s *Scheduler) Add(job Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs = append(s.jobs, job)
}

// Start launches one goroutine per job and returns. Jobs stop when ctx is
// cancelled; Wait blocks until every job goroutine and in-flight run has
// drained.
func (s *Scheduler) Start(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.started {
		return
	}
	s.started = true

	for i := range s.jobs {
		job := s.jobs[i]
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.loop(ctx, job)
		}()
	}
}

func (s *Scheduler) Wait() {
	s.wg.Wait()
}

func (s *Scheduler) loop(ctx context.Context, job Job) {
	// Per-job overlap guard: a tick that fires while the previous run of the
	// same job is still in flight is skipped, never queued. Other jobs are
	// unaffected; they tick on their own goroutines.
	var running sync.Mutex

	if job.AtHour != nil {
		delay := untilHour(s.now(), *job.AtHour)
		s.logger.Info("job aligned to daily schedule", "job", job.Name, "first_run_in", delay.Round(time.Second))
		select {
		case <-time.After(delay):
			s.spawn(ctx, job, &running)
		case <-ctx.Done():
			return
		}
	} else if job.RunAtStart {
		s.spawn(ctx, job, &running)
	}

	ticker := time.NewTicker(job.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.spawn(ctx, job, &running)
		case <-ctx.Done():
			s.logger.Info("job stopped", "job", job.Name)
			return
		}
	}
}

func (s *Scheduler) spawn(ctx context.Context, job Job, running *sync.Mutex) {
	if !running.TryLock() {
		s.logger.Warn("previous run still in progress, skipping tick", "job", job.Name)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer running.Unlock()
		s.run(ctx, job)
	}()
}

func (s *Scheduler) run(ctx context.Context, job Job) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("job panicked", "job", job.Name, "panic", r)
		}
	}()

	start := s.now()
	if err := job.Run(ctx); err != nil {
		s.logger.Error("job run failed", "job", job.Name, "error", err, "duration", time.Since(start).Round(time.Millisecond))
		return
	}
	s.logger.Debug("job run completed", "job", job.Name, "duration", time.Since(start).Round(time.Millisecond))
}

// untilHour returns the wait until the next occurrence of the given
// wall-clock hour.
func untilHour(now time.Time, hour int) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, 0, 0, 0, now.Location())
	if !next.After(now) {
		next = next.Add(24 * time.Hour)
	}
	return next.Sub(now)
}
