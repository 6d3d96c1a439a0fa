package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	annDto "teamnexus.com/collegeportal/internal/modules/announcement/dto"
	annRepo "teamnexus.com/collegeportal/internal/modules/announcement/repository"
	search "teamnexus.com/collegeportal/internal/modules/search/service"
	"teamnexus.com/collegeportal/internal/policy"
	"teamnexus.com/collegeportal/pkg/apperror"
	"teamnexus.com/collegeportal/pkg/dto"
	"teamnexus.com/collegeportal/pkg/markdown"
	"teamnexus.com/collegeportal/pkg/storage"
)

// RedirectList is where clients go after a refused announcement action.
const RedirectList = "/announcements"

type AnnouncementService interface {
	List(ctx context.Context, filter annDto.AnnouncementFilter) ([]annDto.AnnouncementResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*annDto.AnnouncementResponse, error)
	Create(ctx context.Context, user *entity.User, req annDto.AnnouncementRequest, file *dto.FileUpload) (*annDto.AnnouncementResponse, error)
	Update(ctx context.Context, user *entity.User, id uuid.UUID, req annDto.AnnouncementRequest, file *dto.FileUpload) (*annDto.AnnouncementResponse, error)
	Delete(ctx context.Context, user *entity.User, id uuid.UUID) error
}

type announcementService struct {
	repo        annRepo.AnnouncementRepository
	fileStorage storage.FileStorage
	meili       search.Indexer
}

func NewAnnouncementService(repo annRepo.AnnouncementRepository, fileStorage storage.FileStorage, meili search.Indexer) AnnouncementService {
	return &announcementService{
		repo:        repo,
		fileStorage: fileStorage,
		meili:       meili,
	}
}

func (s *announcementService) List(ctx context.Context, filter annDto.AnnouncementFilter) ([]annDto.AnnouncementResponse, error) {
	announcements, err := s.repo.FindAll(ctx, strings.TrimSpace(filter.Category))
	if err != nil {
		return nil, err
	}

	out := make([]annDto.AnnouncementResponse, 0, len(announcements))
	for i := range announcements {
		out = append(out, mapAnnouncement(&announcements[i]))
	}
	return out, nil
}

func (s *announcementService) Get(ctx context.Context, id uuid.UUID) (*annDto.AnnouncementResponse, error) {
	announcement, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := mapAnnouncement(announcement)
	return &res, nil
}

func (s *announcementService) Create(ctx context.Context, user *entity.User, req annDto.AnnouncementRequest, file *dto.FileUpload) (*annDto.AnnouncementResponse, error) {
	if !policy.CanModerate(user, policy.ActionCreateAnnouncement, nil) {
		return nil, apperror.Forbidden("you do not have permission to post announcements")
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperror.Validation("Title and Content are required")
	}

	fileURL, err := s.saveFile(ctx, file)
	if err != nil {
		return nil, err
	}

	announcement := &entity.Announcement{
		Title:    title,
		Content:  content,
		PosterID: user.ID,
		Category: optional(req.Category),
		FileURL:  fileURL,
		IsPinned: req.IsPinned,
	}

	if err := s.repo.Create(ctx, announcement, SplitTags(req.Tags)); err != nil {
		s.discardFile(ctx, fileURL)
		return nil, fmt.Errorf("create announcement: %w", err)
	}

	s.index(announcement)

	res := mapAnnouncement(announcement)
	return &res, nil
}

func (s *announcementService) Update(ctx context.Context, user *entity.User, id uuid.UUID, req annDto.AnnouncementRequest, file *dto.FileUpload) (*annDto.AnnouncementResponse, error) {
	announcement, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanModerate(user, policy.ActionEditAnnouncement, announcement) {
		return nil, apperror.Forbidden("you do not have permission to edit this announcement")
	}

	title := strings.TrimSpace(req.Title)
	content := strings.TrimSpace(req.Content)
	if title == "" || content == "" {
		return nil, apperror.Validation("Title and Content are required")
	}

	fileURL, err := s.saveFile(ctx, file)
	if err != nil {
		return nil, err
	}

	previousFile := announcement.FileURL
	announcement.Title = title
	announcement.Content = content
	announcement.Category = optional(req.Category)
	announcement.IsPinned = req.IsPinned
	if fileURL != nil {
		announcement.FileURL = fileURL
	}

	if err := s.repo.Update(ctx, announcement, SplitTags(req.Tags)); err != nil {
		s.discardFile(ctx, fileURL)
		return nil, fmt.Errorf("update announcement: %w", err)
	}

	// replaced attachment
	if fileURL != nil {
		s.discardFile(ctx, previousFile)
	}

	s.index(announcement)

	res := mapAnnouncement(announcement)
	return &res, nil
}

func (s *announcementService) Delete(ctx context.Context, user *entity.User, id uuid.UUID) error {
	announcement, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanModerate(user, policy.ActionDeleteAnnouncement, announcement) {
		return apperror.Forbidden("you do not have permission to delete this announcement")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("announcement")
		}
		return err
	}

	s.discardFile(ctx, announcement.FileURL)

	if s.meili != nil {
		if err := s.meili.DeleteAnnouncement(id.String()); err != nil {
			log.Printf("Failed to remove announcement %s from index: %v", id, err)
		}
	}
	return nil
}

func (s *announcementService) find(ctx context.Context, id uuid.UUID) (*entity.Announcement, error) {
	announcement, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("announcement")
		}
		return nil, err
	}
	return announcement, nil
}

func (s *announcementService) saveFile(ctx context.Context, file *dto.FileUpload) (*string, error) {
	if file == nil {
		return nil, nil
	}
	return storage.SaveUpload(ctx, s.fileStorage, storage.AreaAnnouncements, file.Name, file.File)
}

func (s *announcementService) discardFile(ctx context.Context, fileURL *string) {
	if fileURL == nil {
		return
	}
	if err := s.fileStorage.Delete(ctx, *fileURL); err != nil {
		log.Printf("Failed to delete file %s: %v", *fileURL, err)
	}
}

func (s *announcementService) index(announcement *entity.Announcement) {
	if s.meili == nil {
		return
	}
	if err := s.meili.IndexAnnouncement(announcement); err != nil {
		log.Printf("Failed to index announcement %s: %v", announcement.ID, err)
	}
}

// SplitTags turns "exams, results,,exams" into the distinct names in order.
func SplitTags(raw string) []string {
	var names []string
	seen := make(map[string]struct{})
	for _, part := range strings.Split(raw, ",") {
		name := strings.TrimSpace(part)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}
	return names
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func mapAnnouncement(a *entity.Announcement) annDto.AnnouncementResponse {
	return annDto.AnnouncementResponse{
		ID:          a.ID,
		Title:       a.Title,
		Content:     a.Content,
		ContentHTML: markdown.Render(a.Content),
		Category:    a.Category,
		FileURL:     a.FileURL,
		IsPinned:    a.IsPinned,
		Tags:        dto.NewTagResponses(a.Tags),
		Poster:      dto.NewAuthorResponse(a.Poster),
		PostedAt:    dto.FormatTime(a.PostedAt),
	}
}
