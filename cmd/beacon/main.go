// Beacon runs the CodeCanvas background jobs: hourly article score
// recalculation, the every-minute scheduled-publish sweep and the daily
// dead-link scan, plus the small admin API in front of them.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/codecanvas/beacon/internal/linkscan"
	"github.com/codecanvas/beacon/internal/notify"
	"github.com/codecanvas/beacon/internal/publish"
	"github.com/codecanvas/beacon/internal/router"
	"github.com/codecanvas/beacon/internal/scheduler"
	"github.com/codecanvas/beacon/internal/score"
	"github.com/codecanvas/beacon/internal/server"
	"github.com/codecanvas/beacon/internal/storage/factory"
)

func main() {
	slog.SetLogLoggerLevel(slog.LevelDebug)

	sCfg, err := server.LoadConfig()
	if err != nil {
		slog.Error("Failed to load server config", "error", err)
		os.Exit(1)
	}

	appSettings := NewAppConfig()
	cfg, err := appSettings.Load()
	if err != nil {
		slog.Error("Failed to load app configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stores, err := factory.NewStores(ctx, &cfg.StorageConfig)
	if err != nil {
		slog.Error("Failed to create stores", "error", err)
		os.Exit(1)
	}
	defer stores.Close()

	logger := slog.Default()

	publisher := notify.NewPublisher(
		notify.NewWebhookDispatcher(stores.Webhooks, nil, logger.With("component", "webhooks")),
		notify.NewSubscriberNotifier(stores.Subscribers, nil, logger.With("component", "subscribers")),
		logger,
	)

	calculator := score.NewCalculator(stores.Articles, logger.With("job", "score"))
	sweeper := publish.NewSweeper(stores.Articles, publisher, logger.With("job", "publish"))
	scanner := linkscan.NewScanner(
		stores.Articles,
		stores.Comments,
		stores.DeadLinks,
		nil,
		cfg.Jobs.ScanWorkers,
		logger.With("job", "linkscan"),
	)

	sched := scheduler.New(logger.With("component", "scheduler"))
	sched.Add(scheduler.Job{
		Name:     "publish-sweep",
		Interval: cfg.Jobs.PublishSweepInterval,
		Run:      sweeper.Run,
	})
	sched.Add(scheduler.Job{
		Name:       "score-calculation",
		Interval:   cfg.Jobs.ScoreInterval,
		RunAtStart: true,
		Run:        calculator.Run,
	})
	sched.Add(scheduler.Job{
		Name:     "dead-link-scan",
		Interval: cfg.Jobs.ScanInterval,
		AtHour:   cfg.Jobs.ScanAtHour,
		Run: func(ctx context.Context) error {
			// Losing the scanner's guard to a manually triggered scan is a
			// skip, not a failure of the scheduled job.
			if err := scanner.Run(ctx); err != nil && !errors.Is(err, linkscan.ErrScanInProgress) {
				return err
			}
			return nil
		},
	})
	sched.Start(ctx)

	s := server.New(sCfg, stores.Health)
	adminRouter := router.NewAdminRouter(s.Echo, stores.DeadLinks, stores.Articles, scanner)
	adminRouter.Bind()

	err = s.Start(func() {
		slog.Info("Shutdown started, stopping background jobs...")
		cancel()
		sched.Wait()
	})
	if err != nil {
		slog.Error("Failed to start server", "error", err)
		os.Exit(1)
	}
}
