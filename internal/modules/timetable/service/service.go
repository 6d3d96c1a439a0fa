package service

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	timetableDto "teamnexus.com/collegeportal/internal/modules/timetable/dto"
	timetableRepo "teamnexus.com/collegeportal/internal/modules/timetable/repository"
	userRepo "teamnexus.com/collegeportal/internal/modules/user/repository"
	"teamnexus.com/collegeportal/internal/policy"
	"teamnexus.com/collegeportal/pkg/apperror"
)

// Weekdays in timetable order.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

type TimetableService interface {
	Create(ctx context.Context, user *entity.User, req timetableDto.CreateEntryRequest) (*timetableDto.EntryResponse, error)
	// ForStudent lists entries Monday first. Students may only read their own.
	ForStudent(ctx context.Context, viewer *entity.User, studentID uuid.UUID) ([]timetableDto.EntryResponse, error)
	Delete(ctx context.Context, user *entity.User, id uuid.UUID) error
}

type timetableService struct {
	repo     timetableRepo.TimetableRepository
	userRepo userRepo.UserRepository
}

func NewTimetableService(repo timetableRepo.TimetableRepository, userRepo userRepo.UserRepository) TimetableService {
	return &timetableService{repo: repo, userRepo: userRepo}
}

func (s *timetableService) Create(ctx context.Context, user *entity.User, req timetableDto.CreateEntryRequest) (*timetableDto.EntryResponse, error) {
	if !policy.CanModerate(user, policy.ActionManageTimetable, nil) {
		return nil, apperror.Forbidden("you do not have permission to manage timetables")
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, apperror.Validation("invalid student id")
	}
	if _, err := s.userRepo.FindByID(ctx, studentID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("student")
		}
		return nil, err
	}

	day, ok := normalizeDay(req.Day)
	if !ok {
		return nil, apperror.Validation(fmt.Sprintf("unknown day %q", req.Day))
	}

	start, err := ParseClock(req.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := ParseClock(req.EndTime)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, apperror.Validation("end time must be after start time")
	}

	entry := &entity.TimetableEntry{
		StudentID: studentID,
		Day:       day,
		Period:    strings.TrimSpace(req.Period),
		Subject:   strings.TrimSpace(req.Subject),
		StartTime: datatypes.NewTime(start.Hour(), start.Minute(), 0, 0),
		EndTime:   datatypes.NewTime(end.Hour(), end.Minute(), 0, 0),
	}
	if loc := strings.TrimSpace(req.Location); loc != "" {
		entry.Location = &loc
	}

	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create timetable entry: %w", err)
	}

	res := mapEntry(entry)
	return &res, nil
}

func (s *timetableService) ForStudent(ctx context.Context, viewer *entity.User, studentID uuid.UUID) ([]timetableDto.EntryResponse, error) {
	if viewer == nil {
		return nil, apperror.ErrUnauthorized
	}
	if viewer.ID != studentID && !policy.CanModerate(viewer, policy.ActionManageTimetable, nil) {
		return nil, apperror.Forbidden("you can only view your own timetable")
	}

	entries, err := s.repo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	// stable keeps the start_time order within a day
	slices.SortStableFunc(entries, func(a, b entity.TimetableEntry) int {
		return slices.Index(Weekdays, a.Day) - slices.Index(Weekdays, b.Day)
	})

	out := make([]timetableDto.EntryResponse, 0, len(entries))
	for i := range entries {
		out = append(out, mapEntry(&entries[i]))
	}
	return out, nil
}

func (s *timetableService) Delete(ctx context.Context, user *entity.User, id uuid.UUID) error {
	if !policy.CanModerate(user, policy.ActionManageTimetable, nil) {
		return apperror.Forbidden("you do not have permission to manage timetables")
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("timetable entry")
		}
		return err
	}
	return nil
}

// ParseClock reads "15:04" or "15:04:05".
func ParseClock(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	for _, layout := range []string{"15:04", "15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperror.Validation(fmt.Sprintf("invalid time %q", value))
}

func normalizeDay(day string) (string, bool) {
	for _, d := range Weekdays {
		if strings.EqualFold(d, strings.TrimSpace(day)) {
			return d, true
		}
	}
	return "", false
}

func clock(t datatypes.Time) string {
	return t.String()[:5]
}

func mapEntry(e *entity.TimetableEntry) timetableDto.EntryResponse {
	return timetableDto.EntryResponse{
		ID:        e.ID,
		StudentID: e.StudentID,
		Day:       e.Day,
		Period:    e.Period,
		Subject:   e.Subject,
		StartTime: clock(e.StartTime),
		EndTime:   clock(e.EndTime),
		Location:  e.Location,
	}
}
