package pg

import (
	"context"
	"fmt"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SubscriberStore struct {
	db *pgxpool.Pool
}

func NewSubscriberStore(pool *ConnectionPool) (*SubscriberStore, error) {
	return &SubscriberStore{db: pool.conn}, nil
}

func (s *SubscriberStore) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	query := `SELECT id, email, unsubscribe_token FROM subscribers WHERE is_verified`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query subscribers: %w", err)
	}
	defer rows.Close()

	var subscribers []domain.Subscriber
	for rows.Next() {
		var sub domain.Subscriber
		if err := rows.Scan(&sub.ID, &sub.Email, &sub.UnsubscribeToken); err != nil {
			return nil, fmt.Errorf("failed to scan subscriber: %w", err)
		}
		subscribers = append(subscribers, sub)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate subscribers: %w", err)
	}
	return subscribers, nil
}
