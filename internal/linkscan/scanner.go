// Package linkscan sweeps the full article and comment corpus for broken
// hyperlinks and regenerates the dead-link report set.
package linkscan

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/codecanvas/beacon/internal/storage"
	"github.com/google/uuid"
)

const DefaultWorkers = 10

// target is one URL occurrence to probe, tied to the document it came from.
// The same URL appearing in two documents produces two targets and, if dead,
// two report rows.
type target struct {
	url        string
	sourceType domain.SourceType
	sourceID   uuid.UUID
}

type Scanner struct {
	articles storage.ArticleStore
	comments storage.CommentStore
	reports  storage.DeadLinkStore
	prober   Prober
	workers  int
	logger   *slog.Logger

	running atomic.Bool
}

func NewScanner(
	articles storage.ArticleStore,
	comments storage.CommentStore,
	reports storage.DeadLinkStore,
	prober Prober,
	workers int,
	logger *slog.Logger,
) *Scanner {
	if prober == nil {
		prober = NewHTTPProber(nil)
	}
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Scanner{
		articles: articles,
		comments: comments,
		reports:  reports,
		prober:   prober,
		workers:  workers,
		logger:   logger,
	}
}

// ErrScanInProgress is returned when a scan is requested while another one
// holds the scanner. The caller skips; the request is never queued.
var ErrScanInProgress = errors.New("dead link scan already in progress")

// Start launches a scan in the background and returns immediately. It
// reports whether the scan was started; false means one is already running.
func (s *Scanner) Start(ctx context.Context) bool {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("dead link scan already in progress, skipping")
		return false
	}

	go func() {
		defer s.running.Store(false)
		if err := s.scan(ctx); err != nil {
			s.logger.Error("dead link scan failed", "error", err)
		}
	}()
	return true
}

// Running reports whether a scan is in flight, whatever path started it.
func (s *Scanner) Running() bool {
	return s.running.Load()
}

// Run executes one full scan synchronously. The scheduled run and the admin
// trigger share the same guard: delete-then-repopulate must never overlap
// with itself, so whichever path finds a scan already holding the flag skips
// with ErrScanInProgress.
func (s *Scanner) Run(ctx context.Context) error {
	if !s.running.CompareAndSwap(false, true) {
		s.logger.Warn("dead link scan already in progress, skipping")
		return ErrScanInProgress
	}
	defer s.running.Store(false)

	return s.scan(ctx)
}

// scan reads the corpus, wipes the old report set, probes every extracted
// URL over a bounded worker pool and persists the dead ones. An unreadable
// corpus abandons the run before anything is deleted; individual probe
// outcomes are data, never errors. Callers must hold the running flag.
func (s *Scanner) scan(ctx context.Context) error {
	s.logger.Info("starting dead link scan")

	articles, err := s.articles.ListContent(ctx)
	if err != nil {
		return fmt.Errorf("list article content: %w", err)
	}
	comments, err := s.comments.ListComments(ctx)
	if err != nil {
		return fmt.Errorf("list comments: %w", err)
	}

	targets := collectTargets(articles, comments)

	if err := s.reports.DeleteAll(ctx); err != nil {
		return fmt.Errorf("clear previous reports: %w", err)
	}

	dead := s.probeAll(ctx, targets)

	s.logger.Info("dead link scan completed", "urls", len(targets), "dead", dead)
	return ctx.Err()
}

func collectTargets(articles []domain.Article, comments []domain.Comment) []target {
	var targets []target
	for _, a := range articles {
		for _, u := range ExtractURLs(a.Content) {
			targets = append(targets, target{url: u, sourceType: domain.SourceArticle, sourceID: a.ID})
		}
	}
	for _, c := range comments {
		for _, u := range ExtractURLs(c.Content) {
			targets = append(targets, target{url: u, sourceType: domain.SourceComment, sourceID: c.ID})
		}
	}
	return targets
}

// probeAll fans the targets out over the worker pool and returns how many
// dead links were recorded. Report rows are written from worker goroutines;
// the store must tolerate concurrent single-row inserts.
func (s *Scanner) probeAll(ctx context.Context, targets []target) int64 {
	jobs := make(chan target)
	var dead atomic.Int64

	var wg sync.WaitGroup
	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for t := range jobs {
				if s.probe(ctx, t) {
					dead.Add(1)
				}
			}
		}()
	}

	for _, t := range targets {
		select {
		case jobs <- t:
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return dead.Load()
		}
	}
	close(jobs)
	wg.Wait()

	return dead.Load()
}

func (s *Scanner) probe(ctx context.Context, t target) bool {
	status := s.prober.Probe(ctx, t.url)
	if !domain.Dead(status) {
		return false
	}

	message := "HTTP Error"
	if status == domain.StatusConnectionFailed {
		message = "Connection Failed"
	}

	link := domain.DeadLink{
		URL:          t.url,
		StatusCode:   status,
		ErrorMessage: message,
		SourceType:   t.sourceType,
		SourceID:     t.sourceID,
	}
	if err := s.reports.Save(ctx, link); err != nil {
		s.logger.Error("failed to save dead link", "url", t.url, "error", err)
		return false
	}

	s.logger.Warn("dead link found", "url", t.url, "status", status, "source_type", t.sourceType, "source_id", t.sourceID)
	return true
}
