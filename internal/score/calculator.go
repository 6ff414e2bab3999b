// Package score recomputes the time-decayed popularity score that drives the
// "hottest" article sort.
package score

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/codecanvas/beacon/internal/storage"
)

// Score = (views*1 + likes*2 + comments*5) / (hours + 2)^1.5
// The gravity exponent controls how fast a fixed amount of engagement
// decays with article age.
const (
	weightView    = 1.0
	weightLike    = 2.0
	weightComment = 5.0
	gravity       = 1.5
	ageOffset     = 2.0
)

// Compute returns the score of one article at the given instant. Articles
// without a publish timestamp are treated as zero hours old; a publish time
// in the future is clamped to zero as well.
func Compute(a domain.Article, now time.Time) float64 {
	weighted := float64(a.ViewCount)*weightView +
		float64(a.LikeCount)*weightLike +
		float64(a.CommentCount)*weightComment

	var hours float64
	if a.PublishedAt != nil {
		hours = now.Sub(*a.PublishedAt).Hours()
		if hours < 0 {
			hours = 0
		}
	}

	return weighted / math.Pow(hours+ageOffset, gravity)
}

// Calculator is the hourly job: read every published article, recompute its
// score, write the batch back.
type Calculator struct {
	articles storage.ArticleStore
	logger   *slog.Logger
	now      func() time.Time
}

func NewCalculator(articles storage.ArticleStore, logger *slog.Logger) *Calculator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Calculator{
		articles: articles,
		logger:   logger,
		now:      time.Now,
	}
}

// Run performs one full recalculation sweep. Persistence is best-effort:
// rows that fail to update are reported in the returned error, the rest are
// written regardless.
func (c *Calculator) Run(ctx context.Context) error {
	articles, err := c.articles.ListPublished(ctx)
	if err != nil {
		return fmt.Errorf("list published articles: %w", err)
	}
	if len(articles) == 0 {
		return nil
	}

	now := c.now()
	updates := make([]domain.ScoreUpdate, 0, len(articles))
	for _, a := range articles {
		updates = append(updates, domain.ScoreUpdate{
			ArticleID: a.ID,
			Score:     Compute(a, now),
		})
	}

	if err := c.articles.UpdateScores(ctx, updates); err != nil {
		return fmt.Errorf("update scores: %w", err)
	}

	c.logger.Info("article score calculation completed", "articles", len(updates))
	return nil
}
