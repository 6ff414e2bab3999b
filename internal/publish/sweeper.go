// Package publish promotes scheduled articles to published once their
// release time arrives.
package publish

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/codecanvas/beacon/internal/storage"
)

// Publisher receives the post-transition side effects (subscriber mail,
// webhooks). Implementations must swallow their own failures; a notification
// outage must never surface into the sweep.
type Publisher interface {
	ArticlePublished(ctx context.Context, article domain.Article)
}

// Sweeper is the every-minute job over articles in the scheduled state.
type Sweeper struct {
	articles  storage.ArticleStore
	publisher Publisher
	logger    *slog.Logger
	now       func() time.Time
}

func NewSweeper(articles storage.ArticleStore, publisher Publisher, logger *slog.Logger) *Sweeper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sweeper{
		articles:  articles,
		publisher: publisher,
		logger:    logger,
		now:       time.Now,
	}
}

// Run publishes every due article. Articles are independent: a failed
// transition is logged and skipped without aborting the rest of the batch.
// MarkPublished only matches rows still in the scheduled state, so an
// article already flipped by an earlier or concurrent sweep is skipped and
// its notifications cannot fire twice.
func (s *Sweeper) Run(ctx context.Context) error {
	now := s.now()

	due, err := s.articles.ListDuePublishing(ctx, now)
	if err != nil {
		return fmt.Errorf("list due articles: %w", err)
	}
	if len(due) == 0 {
		return nil
	}

	s.logger.Info("found scheduled articles to publish", "count", len(due))

	published := 0
	for _, article := range due {
		transitioned, err := s.articles.MarkPublished(ctx, article.ID, now)
		if err != nil {
			s.logger.Error("failed to publish scheduled article", "article", article.ID, "error", err)
			continue
		}
		if !transitioned {
			continue
		}

		published++
		article.Status = domain.StatusPublished
		if article.PublishedAt == nil {
			article.PublishedAt = &now
		}
		if s.publisher != nil {
			s.publisher.ArticlePublished(ctx, article)
		}
	}

	s.logger.Info("publish sweep completed", "published", published)
	return nil
}
