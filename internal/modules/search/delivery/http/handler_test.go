package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"teamnexus.com/collegeportal/internal/entity"
	"teamnexus.com/collegeportal/internal/modules/search/dto"
	search "teamnexus.com/collegeportal/internal/modules/search/service"
)

type stubBackend struct {
	lastQuery string
	lastLimit int64
}

func (b *stubBackend) IndexPost(*entity.Post) error                 { return nil }
func (b *stubBackend) DeletePost(string) error                      { return nil }
func (b *stubBackend) IndexAnnouncement(*entity.Announcement) error { return nil }
func (b *stubBackend) DeleteAnnouncement(string) error              { return nil }
func (b *stubBackend) Search(query string, limit int64) (*dto.SearchResponse, error) {
	b.lastQuery, b.lastLimit = query, limit
	return &dto.SearchResponse{
		Query: query,
		Posts: []dto.PostHit{{ID: "p1", Title: "Exam schedule"}},
	}, nil
}

func serve(t *testing.T, svc search.SearchService, target string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/search", NewSearchHandler(svc).Search)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, target, nil).WithContext(context.Background())
	r.ServeHTTP(w, req)
	return w
}

func TestSearchUnconfigured(t *testing.T) {
	w := serve(t, search.NewSearchService(nil), "/search?q=exam")
	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", w.Code)
	}
}

func TestSearchRequiresQuery(t *testing.T) {
	w := serve(t, search.NewSearchService(&stubBackend{}), "/search")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

func TestSearchReturnsHits(t *testing.T) {
	backend := &stubBackend{}
	w := serve(t, search.NewSearchService(backend), "/search?q=+exam+&limit=5")

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if backend.lastQuery != "exam" || backend.lastLimit != 5 {
		t.Errorf("backend got %q / %d", backend.lastQuery, backend.lastLimit)
	}
	if !strings.Contains(w.Body.String(), "Exam schedule") {
		t.Errorf("body = %s", w.Body.String())
	}
}
