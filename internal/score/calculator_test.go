package score

import (
	"log/slog"
	"testing"
	"time"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/codecanvas/beacon/internal/storage/in_mem"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrTime(t time.Time) *time.Time { return &t }

func TestCompute_FreshArticle(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	a := domain.Article{
		ViewCount:    100,
		LikeCount:    10,
		CommentCount: 4,
		PublishedAt:  ptrTime(now),
	}

	// (100*1 + 10*2 + 4*5) / (0+2)^1.5 = 140 / 2.828...
	got := Compute(a, now)
	assert.InDelta(t, 49.497, got, 0.001)
}

func TestCompute_DecaysWithAge(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)
	engagement := domain.Article{ViewCount: 500, LikeCount: 30, CommentCount: 12}

	fresh := engagement
	fresh.PublishedAt = ptrTime(now.Add(-1 * time.Hour))
	old := engagement
	old.PublishedAt = ptrTime(now.Add(-72 * time.Hour))

	assert.Greater(t, Compute(fresh, now), Compute(old, now),
		"same engagement must score higher when newer")
}

func TestCompute_CommentsOutweighViewsAndLikes(t *testing.T) {
	now := time.Now()
	published := ptrTime(now.Add(-6 * time.Hour))

	commented := domain.Article{CommentCount: 10, PublishedAt: published}
	viewed := domain.Article{ViewCount: 40, PublishedAt: published}
	liked := domain.Article{LikeCount: 20, PublishedAt: published}

	assert.Greater(t, Compute(commented, now), Compute(viewed, now))
	assert.Greater(t, Compute(commented, now), Compute(liked, now))
}

func TestCompute_NoPublishTimestamp(t *testing.T) {
	now := time.Now()
	a := domain.Article{ViewCount: 10}

	// Treated as zero hours old: 10 / 2^1.5.
	assert.InDelta(t, 3.5355, Compute(a, now), 0.001)
}

func TestCompute_FuturePublishTimeClampedToZero(t *testing.T) {
	now := time.Now()
	future := domain.Article{ViewCount: 10, PublishedAt: ptrTime(now.Add(2 * time.Hour))}
	fresh := domain.Article{ViewCount: 10, PublishedAt: ptrTime(now)}

	assert.Equal(t, Compute(fresh, now), Compute(future, now))
}

func TestCompute_ZeroEngagement(t *testing.T) {
	a := domain.Article{PublishedAt: ptrTime(time.Now())}
	assert.Zero(t, Compute(a, time.Now()))
}

func TestCalculator_Run(t *testing.T) {
	now := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	published := domain.Article{
		ID:          uuid.New(),
		Title:       "published",
		Status:      domain.StatusPublished,
		ViewCount:   100,
		PublishedAt: ptrTime(now.Add(-2 * time.Hour)),
	}
	draft := domain.Article{
		ID:     uuid.New(),
		Title:  "draft",
		Status: domain.StatusDraft,
	}

	store := in_mem.NewStore()
	store.SeedArticles(published, draft)

	calc := NewCalculator(store, slog.Default())
	calc.now = func() time.Time { return now }

	require.NoError(t, calc.Run(t.Context()))

	got, ok := store.Article(published.ID)
	require.True(t, ok)
	assert.InDelta(t, Compute(published, now), got.Score, 1e-9)
	assert.NotZero(t, got.Score)

	unscored, ok := store.Article(draft.ID)
	require.True(t, ok)
	assert.Zero(t, unscored.Score, "drafts are not scored")
}

func TestCalculator_RunEmptyStore(t *testing.T) {
	calc := NewCalculator(in_mem.NewStore(), slog.Default())
	require.NoError(t, calc.Run(t.Context()))
}
