package in_mem

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/google/uuid"
)

// Store keeps the whole corpus in memory behind one RWMutex. It backs unit
// tests and the in_mem storage mode.
type Store struct {
	mu          sync.RWMutex
	articles    map[uuid.UUID]domain.Article
	comments    map[uuid.UUID]domain.Comment
	deadLinks   []domain.DeadLink
	webhooks    []domain.Webhook
	subscribers []domain.Subscriber
}

func NewStore() *Store {
	return &Store{
		articles: make(map[uuid.UUID]domain.Article),
		comments: make(map[uuid.UUID]domain.Comment),
	}
}

func (s *Store) SeedArticles(articles ...domain.Article) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range articles {
		if a.ID == uuid.Nil {
			a.ID = uuid.New()
		}
		s.articles[a.ID] = a
	}
}

func (s *Store) SeedComments(comments ...domain.Comment) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, c := range comments {
		if c.ID == uuid.Nil {
			c.ID = uuid.New()
		}
		s.comments[c.ID] = c
	}
}

func (s *Store) SeedWebhooks(webhooks ...domain.Webhook) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.webhooks = append(s.webhooks, webhooks...)
}

func (s *Store) SeedSubscribers(subscribers ...domain.Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subscribers = append(s.subscribers, subscribers...)
}

// Article returns a snapshot of one article for test assertions.
func (s *Store) Article(id uuid.UUID) (domain.Article, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.articles[id]
	return a, ok
}

func (s *Store) ListPublished(ctx context.Context) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Article
	for _, a := range s.articles {
		if a.Status == domain.StatusPublished {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *Store) ListDuePublishing(ctx context.Context, now time.Time) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Article
	for _, a := range s.articles {
		if a.Status == domain.StatusScheduled && a.PublishedAt != nil && !a.PublishedAt.After(now) {
			result = append(result, a)
		}
	}
	return result, nil
}

func (s *Store) ListContent(ctx context.Context) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Article, 0, len(s.articles))
	for _, a := range s.articles {
		result = append(result, domain.Article{ID: a.ID, Title: a.Title, Content: a.Content})
	}
	return result, nil
}

func (s *Store) ListHottest(ctx context.Context, limit int) ([]domain.Article, error) {
	published, err := s.ListPublished(ctx)
	if err != nil {
		return nil, err
	}

	sort.Slice(published, func(i, j int) bool {
		return published[i].Score > published[j].Score
	})
	if limit > 0 && len(published) > limit {
		published = published[:limit]
	}
	return published, nil
}

func (s *Store) UpdateScores(ctx context.Context, updates []domain.ScoreUpdate) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range updates {
		if a, ok := s.articles[u.ArticleID]; ok {
			a.Score = u.Score
			s.articles[u.ArticleID] = a
		}
	}
	return nil
}

func (s *Store) MarkPublished(ctx context.Context, id uuid.UUID, publishedAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok || a.Status != domain.StatusScheduled {
		return false, nil
	}
	a.Status = domain.StatusPublished
	if a.PublishedAt == nil {
		a.PublishedAt = &publishedAt
	}
	s.articles[id] = a
	return true, nil
}

func (s *Store) ListComments(ctx context.Context) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Comment, 0, len(s.comments))
	for _, c := range s.comments {
		result = append(result, c)
	}
	return result, nil
}

func (s *Store) DeleteAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deadLinks = nil
	return nil
}

func (s *Store) Save(ctx context.Context, link domain.DeadLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if link.ID == uuid.Nil {
		link.ID = uuid.New()
	}
	if link.CreatedAt.IsZero() {
		link.CreatedAt = time.Now()
	}
	s.deadLinks = append(s.deadLinks, link)
	return nil
}

func (s *Store) List(ctx context.Context, page, size int) ([]domain.DeadLink, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := int64(len(s.deadLinks))
	offset := (page - 1) * size
	if offset >= len(s.deadLinks) {
		return nil, total, nil
	}
	end := offset + size
	if end > len(s.deadLinks) {
		end = len(s.deadLinks)
	}

	result := make([]domain.DeadLink, end-offset)
	copy(result, s.deadLinks[offset:end])
	return result, total, nil
}

func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, link := range s.deadLinks {
		if link.ID == id {
			s.deadLinks = append(s.deadLinks[:i], s.deadLinks[i+1:]...)
			return nil
		}
	}
	return nil
}

func (s *Store) ListActive(ctx context.Context, event string) ([]domain.Webhook, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []domain.Webhook
	for _, w := range s.webhooks {
		if w.IsActive && w.Event == event {
			result = append(result, w)
		}
	}
	return result, nil
}

func (s *Store) ListSubscribers(ctx context.Context) ([]domain.Subscriber, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]domain.Subscriber, len(s.subscribers))
	copy(result, s.subscribers)
	return result, nil
}
