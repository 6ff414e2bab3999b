package pg

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ArticleStore struct {
	db *pgxpool.Pool
}

func NewArticleStore(pool *ConnectionPool) (*ArticleStore, error) {
	return &ArticleStore{db: pool.conn}, nil
}

func (s *ArticleStore) ListPublished(ctx context.Context) ([]domain.Article, error) {
	query := `
		SELECT id, title, slug, status, published_at, view_count, like_count, comment_count, score, created_at
		FROM articles
		WHERE status = $1
	`
	rows, err := s.db.Query(ctx, query, domain.StatusPublished)
	if err != nil {
		return nil, fmt.Errorf("failed to query published articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

func (s *ArticleStore) ListDuePublishing(ctx context.Context, now time.Time) ([]domain.Article, error) {
	query := `
		SELECT id, title, slug, status, published_at, view_count, like_count, comment_count, score, created_at
		FROM articles
		WHERE status = $1 AND published_at <= $2
	`
	rows, err := s.db.Query(ctx, query, domain.StatusScheduled, now)
	if err != nil {
		return nil, fmt.Errorf("failed to query due articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

func (s *ArticleStore) ListContent(ctx context.Context) ([]domain.Article, error) {
	query := `SELECT id, title, content FROM articles`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query article content: %w", err)
	}
	defer rows.Close()

	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(&a.ID, &a.Title, &a.Content); err != nil {
			return nil, fmt.Errorf("failed to scan article content: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate article content: %w", err)
	}
	return articles, nil
}

func (s *ArticleStore) ListHottest(ctx context.Context, limit int) ([]domain.Article, error) {
	query := `
		SELECT id, title, slug, status, published_at, view_count, like_count, comment_count, score, created_at
		FROM articles
		WHERE status = $1
		ORDER BY score DESC, published_at DESC
		LIMIT $2
	`
	rows, err := s.db.Query(ctx, query, domain.StatusPublished, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query hottest articles: %w", err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// UpdateScores pipelines one UPDATE per article and collects per-row
// failures so a single bad row never discards the rest of the batch.
func (s *ArticleStore) UpdateScores(ctx context.Context, updates []domain.ScoreUpdate) error {
	if len(updates) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for _, u := range updates {
		batch.Queue(`UPDATE articles SET score = $1 WHERE id = $2`, u.Score, u.ArticleID)
	}

	results := s.db.SendBatch(ctx, batch)
	var itemErrs []error
	for _, u := range updates {
		if _, err := results.Exec(); err != nil {
			itemErrs = append(itemErrs, fmt.Errorf("update score for article %s: %w", u.ArticleID, err))
		}
	}
	if err := results.Close(); err != nil {
		itemErrs = append(itemErrs, fmt.Errorf("close score batch: %w", err))
	}

	return errors.Join(itemErrs...)
}

func (s *ArticleStore) MarkPublished(ctx context.Context, id uuid.UUID, publishedAt time.Time) (bool, error) {
	query := `
		UPDATE articles
		SET status = $1, published_at = COALESCE(published_at, $2)
		WHERE id = $3 AND status = $4
	`
	tag, err := s.db.Exec(ctx, query, domain.StatusPublished, publishedAt, id, domain.StatusScheduled)
	if err != nil {
		return false, fmt.Errorf("failed to mark article %s published: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

func scanArticles(rows pgx.Rows) ([]domain.Article, error) {
	var articles []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(
			&a.ID,
			&a.Title,
			&a.Slug,
			&a.Status,
			&a.PublishedAt,
			&a.ViewCount,
			&a.LikeCount,
			&a.CommentCount,
			&a.Score,
			&a.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan article: %w", err)
		}
		articles = append(articles, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate articles: %w", err)
	}
	return articles, nil
}
