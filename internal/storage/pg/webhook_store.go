package pg

import (
	"context"
	"fmt"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WebhookStore struct {
	db *pgxpool.Pool
}

func NewWebhookStore(pool *ConnectionPool) (*WebhookStore, error) {
	return &WebhookStore{db: pool.conn}, nil
}

func (s *WebhookStore) ListActive(ctx context.Context, event string) ([]domain.Webhook, error) {
	query := `SELECT id, event, target_url, is_active FROM webhooks WHERE event = $1 AND is_active`

	rows, err := s.db.Query(ctx, query, event)
	if err != nil {
		return nil, fmt.Errorf("failed to query webhooks: %w", err)
	}
	defer rows.Close()

	var webhooks []domain.Webhook
	for rows.Next() {
		var w domain.Webhook
		if err := rows.Scan(&w.ID, &w.Event, &w.TargetURL, &w.IsActive); err != nil {
			return nil, fmt.Errorf("failed to scan webhook: %w", err)
		}
		webhooks = append(webhooks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate webhooks: %w", err)
	}
	return webhooks, nil
}
