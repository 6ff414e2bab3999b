package factory

import (
	"context"
	"fmt"

	"github.com/codecanvas/beacon/internal/storage"
	"github.com/codecanvas/beacon/internal/storage/in_mem"
	"github.com/codecanvas/beacon/internal/storage/pg"
	pkgserver "github.com/codecanvas/beacon/pkg/server"
)

// Stores bundles every narrow store view the jobs and the admin API consume.
// With the pg backend they all share one connection pool; with in_mem they
// are the same object behind each interface.
type Stores struct {
	Articles    storage.ArticleStore
	Comments    storage.CommentStore
	DeadLinks   storage.DeadLinkStore
	Webhooks    storage.WebhookStore
	Subscribers storage.SubscriberStore

	Health pkgserver.HealthChecker
	close  func()
}

// Close releases the underlying connection pool, if any.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

func NewStores(ctx context.Context, cfg *StorageConfig) (*Stores, error) {
	switch cfg.Type {
	case storage.PG:
		pool, err := pg.NewConnectionPool(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL connection pool: %w", err)
		}

		articles, err := pg.NewArticleStore(pool)
		if err != nil {
			return nil, err
		}
		comments, err := pg.NewCommentStore(pool)
		if err != nil {
			return nil, err
		}
		deadLinks, err := pg.NewDeadLinkStore(pool)
		if err != nil {
			return nil, err
		}
		webhooks, err := pg.NewWebhookStore(pool)
		if err != nil {
			return nil, err
		}
		subscribers, err := pg.NewSubscriberStore(pool)
		if err != nil {
			return nil, err
		}

		return &Stores{
			Articles:    articles,
			Comments:    comments,
			DeadLinks:   deadLinks,
			Webhooks:    webhooks,
			Subscribers: subscribers,
			Health:      pg.NewHealthChecker(pool),
			close:       pool.Close,
		}, nil

	case storage.InMem:
		s := in_mem.NewStore()
		return &Stores{
			Articles:    s,
			Comments:    s,
			DeadLinks:   s,
			Webhooks:    s,
			Subscribers: s,
			Health:      pkgserver.NewOkHealthChecker(),
		}, nil

	default:
		return nil, fmt.Errorf(string(storage.ErrUnsupportedStore), cfg.Type)
	}
}
