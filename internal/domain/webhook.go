package domain

import "github.com/google/uuid"

// EventArticlePublished fires when an article transitions to published,
// whether through the scheduled sweep or an admin audit.
const EventArticlePublished = "article_published"

type Webhook struct {
	ID        uuid.UUID `json:"id"`
	Event     string    `json:"event"`
	TargetURL string    `json:"targetUrl"`
	IsActive  bool      `json:"isActive"`
}
