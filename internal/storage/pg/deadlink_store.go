package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DeadLinkStore struct {
	db *pgxpool.Pool
}

func NewDeadLinkStore(pool *ConnectionPool) (*DeadLinkStore, error) {
	return &DeadLinkStore{db: pool.conn}, nil
}

func (s *DeadLinkStore) DeleteAll(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM dead_links`); err != nil {
		return fmt.Errorf("failed to clear dead links: %w", err)
	}
	return nil
}

// Save inserts one report row. Called concurrently from probe workers; each
// insert is an independent single-row statement, so no extra locking is
// needed on top of the pool.
func (s *DeadLinkStore) Save(ctx context.Context, link domain.DeadLink) error {
	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}

	cmd := `
		INSERT INTO dead_links (id, url, status_code, error_message, source_type, source_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.Exec(ctx, cmd,
		link.ID,
		link.URL,
		link.StatusCode,
		link.ErrorMessage,
		link.SourceType,
		link.SourceID,
		link.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert dead link: %w", err)
	}
	return nil
}

func (s *DeadLinkStore) List(ctx context.Context, page, size int) ([]domain.DeadLink, int64, error) {
	var total int64
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM dead_links`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count dead links: %w", err)
	}

	query := `
		SELECT id, url, status_code, error_message, source_type, source_id, created_at
		FROM dead_links
		ORDER BY created_at DESC, id
		LIMIT $1 OFFSET $2
	`
	rows, err := s.db.Query(ctx, query, size, (page-1)*size)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query dead links: %w", err)
	}
	defer rows.Close()

	var links []domain.DeadLink
	for rows.Next() {
		var l domain.DeadLink
		if err := rows.Scan(&l.ID, &l.URL, &l.StatusCode, &l.ErrorMessage, &l.SourceType, &l.SourceID, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan dead link: %w", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate dead links: %w", err)
	}
	return links, total, nil
}

func (s *DeadLinkStore) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.db.Exec(ctx, `DELETE FROM dead_links WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete dead link %s: %w", id, err)
	}
	return nil
}
