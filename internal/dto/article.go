package dto

import (
	"time"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/google/uuid"
)

type HotArticleResponse struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Slug         string     `json:"slug,omitempty"`
	Score        float64    `json:"score"`
	ViewCount    int        `json:"viewCount"`
	LikeCount    int        `json:"likeCount"`
	CommentCount int        `json:"commentCount"`
	PublishedAt  *time.Time `json:"publishedAt,omitempty"`
}

func FromHotArticles(articles []domain.Article) []HotArticleResponse {
	result := make([]HotArticleResponse, 0, len(articles))
	for _, a := range articles {
		result = append(result, HotArticleResponse{
			ID:           a.ID,
			Title:        a.Title,
			Slug:         a.Slug,
			Score:        a.Score,
			ViewCount:    a.ViewCount,
			LikeCount:    a.LikeCount,
			CommentCount: a.CommentCount,
			PublishedAt:  a.PublishedAt,
		})
	}
	return result
}
