package domain

import (
	"time"

	"github.com/google/uuid"
)

// Comment is read-only input to the dead-link scanner.
type Comment struct {
	ID        uuid.UUID `json:"id"`
	ArticleID uuid.UUID `json:"articleId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}
