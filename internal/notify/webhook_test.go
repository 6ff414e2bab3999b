package notify

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/codecanvas/beacon/internal/domain"
	"github.com/codecanvas/beacon/internal/storage/in_mem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	contentType string
	body        []byte
}

func captureServer(t *testing.T) (*httptest.Server, func() []capturedRequest) {
	t.Helper()

	var mu sync.Mutex
	var requests []capturedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		mu.Lock()
		requests = append(requests, capturedRequest{contentType: r.Header.Get("Content-Type"), body: body})
		mu.Unlock()
	}))
	t.Cleanup(srv.Close)

	return srv, func() []capturedRequest {
		mu.Lock()
		defer mu.Unlock()
		return append([]capturedRequest(nil), requests...)
	}
}

func TestWebhookDispatcher_DeliversToActiveHooks(t *testing.T) {
	srv, requests := captureServer(t)

	store := in_mem.NewStore()
	store.SeedWebhooks(
		domain.Webhook{Event: domain.EventArticlePublished, TargetURL: srv.URL, IsActive: true},
		domain.Webhook{Event: domain.EventArticlePublished, TargetURL: srv.URL + "/inactive", IsActive: false},
		domain.Webhook{Event: "comment_created", TargetURL: srv.URL + "/other", IsActive: true},
	)

	d := NewWebhookDispatcher(store, srv.Client(), slog.Default())
	d.TriggerEvent(t.Context(), domain.EventArticlePublished, map[string]string{"title": "hello"})

	got := requests()
	require.Len(t, got, 1, "inactive hooks and other events are not delivered")
	assert.Equal(t, "application/json", got[0].contentType)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(got[0].body, &payload))
	assert.Equal(t, "hello", payload["title"])
}

func TestWebhookDispatcher_FailedTargetDoesNotStopOthers(t *testing.T) {
	srv, requests := captureServer(t)

	failing := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusBadGateway)
	}))
	defer failing.Close()

	store := in_mem.NewStore()
	store.SeedWebhooks(
		domain.Webhook{Event: domain.EventArticlePublished, TargetURL: failing.URL, IsActive: true},
		domain.Webhook{Event: domain.EventArticlePublished, TargetURL: srv.URL, IsActive: true},
	)

	d := NewWebhookDispatcher(store, nil, slog.Default())
	d.TriggerEvent(t.Context(), domain.EventArticlePublished, map[string]string{"title": "hello"})

	assert.Len(t, requests(), 1, "the healthy target still gets its delivery")
}

func TestWebhookDispatcher_NoRegisteredHooks(t *testing.T) {
	d := NewWebhookDispatcher(in_mem.NewStore(), nil, slog.Default())
	// Must be a no-op, not a panic.
	d.TriggerEvent(t.Context(), domain.EventArticlePublished, map[string]string{"title": "hello"})
}
