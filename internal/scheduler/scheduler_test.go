package scheduler

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScheduler_RunsJobOnInterval(t *testing.T) {
	var runs atomic.Int64

	s := New(slog.Default())
	s.Add(Job{
		Name:     "counter",
		Interval: 10 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(t.Context())
	s.Start(ctx)

	require.Eventually(t, func() bool { return runs.Load() >= 3 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	s.Wait()
}

func TestScheduler_RunAtStart(t *testing.T) {
	ran := make(chan struct{})

	s := New(slog.Default())
	s.Add(Job{
		Name:       "immediate",
		Interval:   time.Hour,
		RunAtStart: true,
		Run: func(ctx context.Context) error {
			close(ran)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	s.Start(ctx)

	select {
	case <-ran:
	case <-time.After(time.Second):
		t.Fatal("job did not run at start")
	}

	cancel()
	s.Wait()
}

func TestScheduler_SkipsTickWhileJobStillRunning(t *testing.T) {
	var inFlight atomic.Int64
	var overlapped atomic.Bool
	var runs atomic.Int64

	release := make(chan struct{})

	s := New(slog.Default())
	s.Add(Job{
		Name:     "slow",
		Interval: 5 * time.Millisecond,
		Run: func(ctx context.Context) error {
			if inFlight.Add(1) > 1 {
				overlapped.Store(true)
			}
			defer inFlight.Add(-1)

			runs.Add(1)
			if runs.Load() == 1 {
				<-release
			}
			return nil
		},
	})

	ctx, cancel := context.WithCancel(t.Context())
	s.Start(ctx)

	// Let several ticks fire while the first run is stuck.
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), runs.Load(), "ticks during a running job are skipped, not queued")

	close(release)
	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	s.Wait()
	assert.False(t, overlapped.Load(), "two runs of the same job must never overlap")
}

func TestScheduler_JobsTickIndependently(t *testing.T) {
	var fastRuns atomic.Int64
	blocked := make(chan struct{})

	s := New(slog.Default())
	s.Add(Job{
		Name:     "stuck",
		Interval: 5 * time.Millisecond,
		Run: func(ctx context.Context) error {
			<-blocked
			return nil
		},
	})
	s.Add(Job{
		Name:     "fast",
		Interval: 5 * time.Millisecond,
		Run: func(ctx context.Context) error {
			fastRuns.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(t.Context())
	s.Start(ctx)

	require.Eventually(t, func() bool { return fastRuns.Load() >= 3 }, 2*time.Second, 5*time.Millisecond,
		"a stuck job must not delay the others")

	cancel()
	close(blocked)
	s.Wait()
}

func TestScheduler_RecoversFromPanic(t *testing.T) {
	var runs atomic.Int64

	s := New(slog.Default())
	s.Add(Job{
		Name:     "panicky",
		Interval: 5 * time.Millisecond,
		Run: func(ctx context.Context) error {
			if runs.Add(1) == 1 {
				panic("boom")
			}
			return nil
		},
	})

	ctx, cancel := context.WithCancel(t.Context())
	s.Start(ctx)

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond,
		"a panicking run must not kill the job's ticker")

	cancel()
	s.Wait()
}

func TestScheduler_ErrorDoesNotStopJob(t *testing.T) {
	var runs atomic.Int64

	s := New(slog.Default())
	s.Add(Job{
		Name:     "failing",
		Interval: 5 * time.Millisecond,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return errors.New("transient")
		},
	})

	ctx, cancel := context.WithCancel(t.Context())
	s.Start(ctx)

	require.Eventually(t, func() bool { return runs.Load() >= 2 }, 2*time.Second, 5*time.Millisecond)

	cancel()
	s.Wait()
}

func TestScheduler_StartIsIdempotent(t *testing.T) {
	var runs atomic.Int64

	s := New(slog.Default())
	s.Add(Job{
		Name:       "once",
		Interval:   time.Hour,
		RunAtStart: true,
		Run: func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	})

	ctx, cancel := context.WithCancel(t.Context())
	s.Start(ctx)
	s.Start(ctx)

	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, int64(1), runs.Load())

	cancel()
	s.Wait()
}

func TestUntilHour(t *testing.T) {
	base := time.Date(2026, 8, 1, 10, 30, 0, 0, time.UTC)

	assert.Equal(t, 4*time.Hour+30*time.Minute, untilHour(base, 15))
	assert.Equal(t, 16*time.Hour+30*time.Minute, untilHour(base, 3), "past hours roll to the next day")

	exact := time.Date(2026, 8, 1, 3, 0, 0, 0, time.UTC)
	assert.Equal(t, 24*time.Hour, untilHour(exact, 3), "the current instant is not a future occurrence")
}
