package domain

import (
	"time"

	"github.com/google/uuid"
)

type SourceType string

const (
	SourceArticle SourceType = "ARTICLE"
	SourceComment SourceType = "COMMENT"
)

// StatusConnectionFailed is the sentinel status code recorded when a probe
// got no HTTP response at all (DNS failure, refused connection, timeout).
const StatusConnectionFailed = -1

// DeadLink is one broken hyperlink found during a scan. The whole set is
// regenerated on every scan, so rows have no cross-run identity.
type DeadLink struct {
	ID           uuid.UUID  `json:"id"`
	URL          string     `json:"url"`
	StatusCode   int        `json:"statusCode"`
	ErrorMessage string     `json:"errorMessage"`
	SourceType   SourceType `json:"sourceType"`
	SourceID     uuid.UUID  `json:"sourceId"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Dead reports whether a probe outcome should be persisted as a dead link.
func Dead(statusCode int) bool {
	return statusCode >= 400 || statusCode == StatusConnectionFailed
}
