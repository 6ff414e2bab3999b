package dto

import (
	"time"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/google/uuid"
)

type DeadLinkResponse struct {
	ID           uuid.UUID `json:"id"`
	URL          string    `json:"url"`
	StatusCode   int       `json:"statusCode"`
	ErrorMessage string    `json:"errorMessage"`
	SourceType   string    `json:"sourceType"`
	SourceID     uuid.UUID `json:"sourceId"`
	CreatedAt    time.Time `json:"createdAt"`
}

func FromDeadLink(link domain.DeadLink) DeadLinkResponse {
	return DeadLinkResponse{
		ID:           link.ID,
		URL:          link.URL,
		StatusCode:   link.StatusCode,
		ErrorMessage: link.ErrorMessage,
		SourceType:   string(link.SourceType),
		SourceID:     link.SourceID,
		CreatedAt:    link.CreatedAt,
	}
}

func FromDeadLinks(links []domain.DeadLink) []DeadLinkResponse {
	result := make([]DeadLinkResponse, 0, len(links))
	for _, l := range links {
		result = append(result, FromDeadLink(l))
	}
	return result
}
