package domain

import (
	"time"

	"github.com/google/uuid"
)

type ArticleStatus string

const (
	StatusDraft     ArticleStatus = "draft"
	StatusPublished ArticleStatus = "published"
	StatusScheduled ArticleStatus = "scheduled"
	StatusHidden    ArticleStatus = "hidden"
	StatusPending   ArticleStatus = "pending"
	StatusRejected  ArticleStatus = "rejected"
)

// Article carries the subset of the blog article the background jobs touch.
// Counters are mutated by the request-handling side; Score is owned by the
// score calculator and only meaningful while the article is published.
type Article struct {
	ID           uuid.UUID     `json:"id"`
	Title        string        `json:"title"`
	Slug         string        `json:"slug,omitempty"`
	Content      string        `json:"content,omitempty"`
	Status       ArticleStatus `json:"status"`
	PublishedAt  *time.Time    `json:"publishedAt,omitempty"`
	ViewCount    int           `json:"viewCount"`
	LikeCount    int           `json:"likeCount"`
	CommentCount int           `json:"commentCount"`
	Score        float64       `json:"score"`
	CreatedAt    time.Time     `json:"createdAt"`
}

// ScoreUpdate is one pending score write produced by a calculator run.
type ScoreUpdate struct {
	ArticleID uuid.UUID
	Score     float64
}
