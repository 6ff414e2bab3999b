// Package notify fans the article-published side effects out to subscribers
// and registered webhooks, fire-and-forget.
package notify

import (
	"context"
	"log/slog"
	"time"

	"github.com/codecanvas/beacon/internal/domain"
)

const dispatchTimeout = 30 * time.Second

// Publisher is the sweep's side-effect sink. Dispatch runs detached from the
// caller: the state transition is already committed by the time these fire,
// and an outage here must never block or fail the sweep.
type Publisher struct {
	webhooks    *WebhookDispatcher
	subscribers *SubscriberNotifier
	logger      *slog.Logger
}

func NewPublisher(webhooks *WebhookDispatcher, subscribers *SubscriberNotifier, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Publisher{
		webhooks:    webhooks,
		subscribers: subscribers,
		logger:      logger,
	}
}

func (p *Publisher) ArticlePublished(ctx context.Context, article domain.Article) {
	// Detach from the sweep's context so a shutdown mid-sweep cannot cancel
	// notifications for transitions that already happened, but still bound
	// the dispatch.
	dispatchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), dispatchTimeout)

	go func() {
		defer cancel()

		if p.subscribers != nil {
			p.subscribers.NotifySubscribers(dispatchCtx, article.Title, "/articles/"+article.Slug)
		}
		if p.webhooks != nil {
			p.webhooks.TriggerEvent(dispatchCtx, domain.EventArticlePublished, article)
		}
	}()
}
