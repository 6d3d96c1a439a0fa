package service

import (
	"context"
	"net/http"
	"strings"

	"teamnexus.com/collegeportal/internal/modules/search/dto"
	"teamnexus.com/collegeportal/pkg/apperror"
)

type SearchService interface {
	Search(ctx context.Context, q dto.SearchQuery) (*dto.SearchResponse, error)
}

type searchService struct {
	meili MeiliSearchService
}

// NewSearchService wraps the Meilisearch backend. A nil backend answers every
// query with apperror.ErrUnavailable.
func NewSearchService(meili MeiliSearchService) SearchService {
	return &searchService{meili: meili}
}

func (s *searchService) Search(ctx context.Context, q dto.SearchQuery) (*dto.SearchResponse, error) {
	if s.meili == nil {
		return nil, apperror.New(http.StatusServiceUnavailable, "search is not configured", apperror.ErrUnavailable)
	}

	query := strings.TrimSpace(q.Q)
	if query == "" {
		return nil, apperror.Validation("search query is empty")
	}
	return s.meili.Search(query, q.Limit)
}
