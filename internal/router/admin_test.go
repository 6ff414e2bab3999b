package router

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/codecanvas/beacon/internal/apperr"
	"github.com/codecanvas/beacon/internal/domain"
	"github.com/codecanvas/beacon/internal/dto"
	"github.com/codecanvas/beacon/internal/linkscan"
	"github.com/codecanvas/beacon/internal/storage/in_mem"
	"github.com/codecanvas/beacon/pkg/pagination"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// releaseProber blocks every probe until released, so tests can observe a
// scan mid-flight.
type releaseProber struct {
	once    sync.Once
	started chan struct{}
	release chan struct{}
}

func newReleaseProber() *releaseProber {
	return &releaseProber{
		started: make(chan struct{}),
		release: make(chan struct{}),
	}
}

func (p *releaseProber) Probe(ctx context.Context, url string) int {
	p.once.Do(func() { close(p.started) })
	<-p.release
	return http.StatusOK
}

func newTestRouter(t *testing.T, store *in_mem.Store, prober linkscan.Prober) (*echo.Echo, *linkscan.Scanner) {
	t.Helper()

	e := echo.New()
	e.HTTPErrorHandler = apperr.GlobalErrorHandler()

	scanner := linkscan.NewScanner(store, store, store, prober, 2, slog.Default())
	NewAdminRouter(e, store, store, scanner).Bind()
	return e, scanner
}

func TestListDeadLinks_Paginates(t *testing.T) {
	store := in_mem.NewStore()
	for i := 0; i < 5; i++ {
		require.NoError(t, store.Save(t.Context(), domain.DeadLink{
			URL:          "https://dead.example/" + uuid.NewString(),
			StatusCode:   http.StatusNotFound,
			ErrorMessage: "HTTP Error",
			SourceType:   domain.SourceArticle,
			SourceID:     uuid.New(),
		}))
	}

	e, _ := newTestRouter(t, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dead-links?page=2&size=2", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result pagination.OffsetResult[dto.DeadLinkResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))

	assert.Equal(t, int64(5), result.Total)
	assert.Equal(t, 2, result.Page)
	assert.Len(t, result.Items, 2)
	assert.True(t, result.HasMore)
	assert.Equal(t, "HTTP Error", result.Items[0].ErrorMessage)
}

func TestListDeadLinks_DefaultsPagination(t *testing.T) {
	store := in_mem.NewStore()
	require.NoError(t, store.Save(t.Context(), domain.DeadLink{URL: "https://dead.example"}))

	e, _ := newTestRouter(t, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/dead-links", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var result pagination.OffsetResult[dto.DeadLinkResponse]
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.Equal(t, 1, result.Page)
	assert.Len(t, result.Items, 1)
	assert.False(t, result.HasMore)
}

func TestTriggerScan_AcceptsAndRejectsWhileRunning(t *testing.T) {
	store := in_mem.NewStore()
	store.SeedArticles(domain.Article{ID: uuid.New(), Content: "https://example.com/x"})

	prober := newReleaseProber()
	e, scanner := newTestRouter(t, store, prober)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/dead-links/scan", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)

	select {
	case <-prober.started:
	case <-time.After(2 * time.Second):
		t.Fatal("scan never started probing")
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/admin/dead-links/scan", nil))
	assert.Equal(t, http.StatusConflict, rec.Code)

	close(prober.release)
	require.Eventually(t, func() bool { return !scanner.Running() }, 2*time.Second, 10*time.Millisecond)
}

func TestDeleteDeadLink(t *testing.T) {
	store := in_mem.NewStore()
	id := uuid.New()
	require.NoError(t, store.Save(t.Context(), domain.DeadLink{ID: id, URL: "https://dead.example"}))

	e, _ := newTestRouter(t, store, nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/dead-links/"+id.String(), nil))
	require.Equal(t, http.StatusNoContent, rec.Code)

	links, total, err := store.List(t.Context(), 1, 10)
	require.NoError(t, err)
	assert.Empty(t, links)
	assert.Zero(t, total)
}

func TestDeleteDeadLink_InvalidID(t *testing.T) {
	e, _ := newTestRouter(t, in_mem.NewStore(), nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, "/api/admin/dead-links/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHottestArticles_OrderedByScore(t *testing.T) {
	store := in_mem.NewStore()
	store.SeedArticles(
		domain.Article{ID: uuid.New(), Title: "cold", Status: domain.StatusPublished, Score: 1.5},
		domain.Article{ID: uuid.New(), Title: "hot", Status: domain.StatusPublished, Score: 42.0},
		domain.Article{ID: uuid.New(), Title: "warm", Status: domain.StatusPublished, Score: 7.3},
		domain.Article{ID: uuid.New(), Title: "hidden", Status: domain.StatusDraft, Score: 99.0},
	)

	e, _ := newTestRouter(t, store, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/articles/hottest?limit=2", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var articles []dto.HotArticleResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &articles))
	require.Len(t, articles, 2)
	assert.Equal(t, "hot", articles[0].Title)
	assert.Equal(t, "warm", articles[1].Title)
}

func TestHottestArticles_InvalidLimit(t *testing.T) {
	e, _ := newTestRouter(t, in_mem.NewStore(), nil)

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/articles/hottest?limit=zero", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
