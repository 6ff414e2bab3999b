package pg

import (
	"context"
	"fmt"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentStore struct {
	db *pgxpool.Pool
}

func NewCommentStore(pool *ConnectionPool) (*CommentStore, error) {
	return &CommentStore{db: pool.conn}, nil
}

func (s *CommentStore) ListComments(ctx context.Context) ([]domain.Comment, error) {
	query := `SELECT id, article_id, content, created_at FROM comments`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query comments: %w", err)
	}
	defer rows.Close()

	var comments []domain.Comment
	for rows.Next() {
		var c domain.Comment
		if err := rows.Scan(&c.ID, &c.ArticleID, &c.Content, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate comments: %w", err)
	}
	return comments, nil
}
