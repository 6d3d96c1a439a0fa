package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	eventDto "teamnexus.com/collegeportal/internal/modules/event/dto"
	eventRepo "teamnexus.com/collegeportal/internal/modules/event/repository"
	"teamnexus.com/collegeportal/internal/policy"
	"teamnexus.com/collegeportal/pkg/apperror"
	"teamnexus.com/collegeportal/pkg/dto"
	"teamnexus.com/collegeportal/pkg/markdown"
	"teamnexus.com/collegeportal/pkg/storage"
)

const RedirectList = "/events"

var timeLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

type EventService interface {
	List(ctx context.Context) (*eventDto.EventListResponse, error)
	Get(ctx context.Context, viewerID, id uuid.UUID) (*eventDto.EventDetailResponse, error)
	Create(ctx context.Context, user *entity.User, req eventDto.EventRequest, file *dto.FileUpload) (*eventDto.EventResponse, error)
	Update(ctx context.Context, user *entity.User, id uuid.UUID, req eventDto.EventRequest, file *dto.FileUpload) (*eventDto.EventResponse, error)
	Delete(ctx context.Context, user *entity.User, id uuid.UUID) error
	// RSVP registers the user once; created is false on repeat calls.
	RSVP(ctx context.Context, userID, id uuid.UUID) (created bool, err error)
	Registered(ctx context.Context, userID uuid.UUID) ([]eventDto.EventResponse, error)
}

type eventService struct {
	repo        eventRepo.EventRepository
	fileStorage storage.FileStorage
	now         func() time.Time
}

func NewEventService(repo eventRepo.EventRepository, fileStorage storage.FileStorage) EventService {
	return &eventService{
		repo:        repo,
		fileStorage: fileStorage,
		now:         time.Now,
	}
}

func (s *eventService) List(ctx context.Context) (*eventDto.EventListResponse, error) {
	now := s.now().UTC()

	upcoming, err := s.repo.FindUpcoming(ctx, now)
	if err != nil {
		return nil, err
	}
	past, err := s.repo.FindPast(ctx, now)
	if err != nil {
		return nil, err
	}

	return &eventDto.EventListResponse{
		Upcoming: mapEvents(upcoming),
		Past:     mapEvents(past),
	}, nil
}

func (s *eventService) Get(ctx context.Context, viewerID, id uuid.UUID) (*eventDto.EventDetailResponse, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	registered, err := s.repo.HasRSVP(ctx, id, viewerID)
	if err != nil {
		return nil, err
	}
	count, err := s.repo.CountRSVPs(ctx, id)
	if err != nil {
		return nil, err
	}

	return &eventDto.EventDetailResponse{
		Event:        mapEvent(event),
		IsRegistered: registered,
		RSVPCount:    count,
	}, nil
}

func (s *eventService) Create(ctx context.Context, user *entity.User, req eventDto.EventRequest, file *dto.FileUpload) (*eventDto.EventResponse, error) {
	if !policy.CanModerate(user, policy.ActionCreateEvent, nil) {
		return nil, apperror.Forbidden("you do not have permission to create events")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("Title is required")
	}

	start, end, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	fileURL, err := s.saveFile(ctx, file)
	if err != nil {
		return nil, err
	}

	event := &entity.Event{
		Title:            title,
		Description:      optional(req.Description),
		StartTime:        start,
		EndTime:          end,
		Location:         optional(req.Location),
		RegistrationLink: optional(req.RegistrationLink),
		Category:         optional(req.Category),
		FileURL:          fileURL,
		PosterID:         user.ID,
	}

	if err := s.repo.Create(ctx, event); err != nil {
		s.discardFile(ctx, fileURL)
		return nil, fmt.Errorf("create event: %w", err)
	}

	res := mapEvent(event)
	return &res, nil
}

func (s *eventService) Update(ctx context.Context, user *entity.User, id uuid.UUID, req eventDto.EventRequest, file *dto.FileUpload) (*eventDto.EventResponse, error) {
	event, err := s.find(ctx, id)
	if err != nil {
		return nil, err
	}

	if !policy.CanModerate(user, policy.ActionEditEvent, event) {
		return nil, apperror.Forbidden("you do not have permission to edit this event")
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperror.Validation("Title is required")
	}

	start, end, err := parseWindow(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	fileURL, err := s.saveFile(ctx, file)
	if err != nil {
		return nil, err
	}

	previousFile := event.FileURL
	event.Title = title
	event.Description = optional(req.Description)
	event.StartTime = start
	event.EndTime = end
	event.Location = optional(req.Location)
	event.RegistrationLink = optional(req.RegistrationLink)
	event.Category = optional(req.Category)
	if fileURL != nil {
		event.FileURL = fileURL
	}

	if err := s.repo.Update(ctx, event); err != nil {
		s.discardFile(ctx, fileURL)
		return nil, fmt.Errorf("update event: %w", err)
	}
	if fileURL != nil {
		s.discardFile(ctx, previousFile)
	}

	res := mapEvent(event)
	return &res, nil
}

func (s *eventService) Delete(ctx context.Context, user *entity.User, id uuid.UUID) error {
	event, err := s.find(ctx, id)
	if err != nil {
		return err
	}

	if !policy.CanModerate(user, policy.ActionDeleteEvent, event) {
		return apperror.Forbidden("you do not have permission to delete this event")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("event")
		}
		return err
	}

	s.discardFile(ctx, event.FileURL)
	return nil
}

func (s *eventService) RSVP(ctx context.Context, userID, id uuid.UUID) (bool, error) {
	if _, err := s.find(ctx, id); err != nil {
		return false, err
	}
	return s.repo.AddRSVP(ctx, id, userID)
}

func (s *eventService) Registered(ctx context.Context, userID uuid.UUID) ([]eventDto.EventResponse, error) {
	events, err := s.repo.ListRSVPedEvents(ctx, userID)
	if err != nil {
		return nil, err
	}
	return mapEvents(events), nil
}

func (s *eventService) find(ctx context.Context, id uuid.UUID) (*entity.Event, error) {
	event, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("event")
		}
		return nil, err
	}
	return event, nil
}

func (s *eventService) saveFile(ctx context.Context, file *dto.FileUpload) (*string, error) {
	if file == nil {
		return nil, nil
	}
	return storage.SaveUpload(ctx, s.fileStorage, storage.AreaEvents, file.Name, file.File)
}

func (s *eventService) discardFile(ctx context.Context, fileURL *string) {
	if fileURL == nil {
		return
	}
	if err := s.fileStorage.Delete(ctx, *fileURL); err != nil {
		log.Printf("Failed to delete file %s: %v", *fileURL, err)
	}
}

// ParseTime reads a form timestamp. Values without a zone are local time.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, value, time.Local); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperror.Validation(fmt.Sprintf("invalid time %q", value))
}

func parseWindow(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := ParseTime(startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end, err := ParseTime(endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, apperror.Validation("end time must not be before start time")
	}
	return start.UTC(), end.UTC(), nil
}

func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func mapEvents(events []entity.Event) []eventDto.EventResponse {
	out := make([]eventDto.EventResponse, 0, len(events))
	for i := range events {
		out = append(out, mapEvent(&events[i]))
	}
	return out
}

func mapEvent(e *entity.Event) eventDto.EventResponse {
	res := eventDto.EventResponse{
		ID:               e.ID,
		Title:            e.Title,
		Description:      e.Description,
		StartTime:        e.StartTime,
		EndTime:          e.EndTime,
		Location:         e.Location,
		RegistrationLink: e.RegistrationLink,
		Category:         e.Category,
		FileURL:          e.FileURL,
		Poster:           dto.NewAuthorResponse(e.Poster),
		PostedAt:         dto.FormatTime(e.PostedAt),
	}
	if e.Description != nil {
		res.DescriptionHTML = markdown.Render(*e.Description)
	}
	return res
}
