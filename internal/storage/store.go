package storage

import (
	"context"
	"time"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/google/uuid"
)

// ArticleStore is the narrow view of the article table the background jobs
// need. The request-handling side of the platform owns everything else.
type ArticleStore interface {
	// ListPublished returns every published article with its counters and
	// publish timestamp. Input to the score calculator.
	ListPublished(ctx context.Context) ([]domain.Article, error)
	// ListDuePublishing returns scheduled articles whose release time has
	// arrived. Input to the publish sweeper.
	ListDuePublishing(ctx context.Context, now time.Time) ([]domain.Article, error)
	// ListContent returns id, title and body of every article regardless of
	// status. Input to the dead-link scanner.
	ListContent(ctx context.Context) ([]domain.Article, error)
	// ListHottest returns published articles ordered by score descending.
	ListHottest(ctx context.Context, limit int) ([]domain.Article, error)
	// UpdateScores writes a batch of score values. Writes are best-effort per
	// row; the returned error aggregates the rows that failed.
	UpdateScores(ctx context.Context, updates []domain.ScoreUpdate) error
	// MarkPublished conditionally flips a scheduled article to published,
	// filling publishedAt if it was never set. Returns false when the article
	// was no longer in the scheduled state, which keeps the sweep idempotent.
	MarkPublished(ctx context.Context, id uuid.UUID, publishedAt time.Time) (bool, error)
}

type CommentStore interface {
	ListComments(ctx context.Context) ([]domain.Comment, error)
}

// DeadLinkStore holds the scan report set, replaced wholesale on every run.
type DeadLinkStore interface {
	DeleteAll(ctx context.Context) error
	Save(ctx context.Context, link domain.DeadLink) error
	List(ctx context.Context, page, size int) ([]domain.DeadLink, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type WebhookStore interface {
	ListActive(ctx context.Context, event string) ([]domain.Webhook, error)
}

type SubscriberStore interface {
	ListSubscribers(ctx context.Context) ([]domain.Subscriber, error)
}

type Type string

const (
	PG    Type = "pg"
	InMem Type = "in_mem"
)

type StoreError string

const (
	ErrUnsupportedStore StoreError = "unsupported store type: %s"
)

func (e StoreError) Error() string {
	return string(e)
}
