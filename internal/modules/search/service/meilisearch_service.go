package service

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/meilisearch/meilisearch-go"
	"teamnexus.com/collegeportal/internal/entity"
	"teamnexus.com/collegeportal/internal/modules/search/dto"
	"teamnexus.com/collegeportal/pkg/markdown"
)

const (
	postsIndex         = "posts"
	announcementsIndex = "announcements"
	defaultLimit       = 10
)

type MeiliSearchService interface {
	Indexer
	Search(query string, limit int64) (*dto.SearchResponse, error)
}

type meiliSearchService struct {
	client meilisearch.ServiceManager
}

func NewMeiliSearchService(client meilisearch.ServiceManager) MeiliSearchService {
	s := &meiliSearchService{client: client}
	s.initIndexes()
	return s
}

func (s *meiliSearchService) initIndexes() {
	postFilterable := []any{"tags"}
	if _, err := s.client.Index(postsIndex).UpdateFilterableAttributes(&postFilterable); err != nil {
		log.Printf("Failed to update posts filterable attributes: %v", err)
	}
	postSortable := []string{"created_at"}
	if _, err := s.client.Index(postsIndex).UpdateSortableAttributes(&postSortable); err != nil {
		log.Printf("Failed to update posts sortable attributes: %v", err)
	}

	annFilterable := []any{"category", "tags", "is_pinned"}
	if _, err := s.client.Index(announcementsIndex).UpdateFilterableAttributes(&annFilterable); err != nil {
		log.Printf("Failed to update announcements filterable attributes: %v", err)
	}
	annSortable := []string{"posted_at", "is_pinned"}
	if _, err := s.client.Index(announcementsIndex).UpdateSortableAttributes(&annSortable); err != nil {
		log.Printf("Failed to update announcements sortable attributes: %v", err)
	}

	log.Println("Meilisearch indexes initialized")
}

func tagNames(tags []entity.Tag) []string {
	names := make([]string, 0, len(tags))
	for _, t := range tags {
		names = append(names, t.Name)
	}
	return names
}

func (s *meiliSearchService) IndexPost(post *entity.Post) error {
	doc := dto.PostHit{
		ID:        post.ID.String(),
		Title:     markdown.StripTags(post.Title),
		Content:   markdown.StripTags(markdown.Render(post.Content)),
		Author:    post.Author.DisplayName(),
		Tags:      tagNames(post.Tags),
		CreatedAt: post.CreatedAt.Unix(),
	}

	task, err := s.client.Index(postsIndex).AddDocuments([]dto.PostHit{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed post %s, task id: %d", post.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) IndexAnnouncement(a *entity.Announcement) error {
	doc := dto.AnnouncementHit{
		ID:       a.ID.String(),
		Title:    markdown.StripTags(a.Title),
		Content:  markdown.StripTags(markdown.Render(a.Content)),
		Poster:   a.Poster.DisplayName(),
		Tags:     tagNames(a.Tags),
		IsPinned: a.IsPinned,
		PostedAt: a.PostedAt.Unix(),
	}
	if a.Category != nil {
		doc.Category = *a.Category
	}

	task, err := s.client.Index(announcementsIndex).AddDocuments([]dto.AnnouncementHit{doc}, strPtr("id"))
	if err != nil {
		return err
	}
	log.Printf("Indexed announcement %s, task id: %d", a.ID, task.TaskUID)
	return nil
}

func (s *meiliSearchService) DeletePost(id string) error {
	_, err := s.client.Index(postsIndex).DeleteDocument(id)
	return err
}

func (s *meiliSearchService) DeleteAnnouncement(id string) error {
	_, err := s.client.Index(announcementsIndex).DeleteDocument(id)
	return err
}

func (s *meiliSearchService) Search(query string, limit int64) (*dto.SearchResponse, error) {
	if limit <= 0 {
		limit = defaultLimit
	}

	res := &dto.SearchResponse{
		Query:         query,
		Posts:         []dto.PostHit{},
		Announcements: []dto.AnnouncementHit{},
	}

	if err := s.search(postsIndex, query, &meilisearch.SearchRequest{
		Limit: limit,
		Sort:  []string{"created_at:desc"},
	}, &res.Posts); err != nil {
		return nil, err
	}

	if err := s.search(announcementsIndex, query, &meilisearch.SearchRequest{
		Limit: limit,
		Sort:  []string{"is_pinned:desc", "posted_at:desc"},
	}, &res.Announcements); err != nil {
		return nil, err
	}

	return res, nil
}

// search decodes the raw hits of one index into out.
func (s *meiliSearchService) search(index, query string, req *meilisearch.SearchRequest, out any) error {
	raw, err := s.client.Index(index).SearchRaw(query, req)
	if err != nil {
		return fmt.Errorf("search %s: %w", index, err)
	}

	var body struct {
		Hits json.RawMessage `json:"hits"`
	}
	if err := json.Unmarshal(*raw, &body); err != nil {
		return fmt.Errorf("decode %s hits: %w", index, err)
	}
	if len(body.Hits) == 0 {
		return nil
	}
	return json.Unmarshal(body.Hits, out)
}

func strPtr(s string) *string {
	return &s
}
