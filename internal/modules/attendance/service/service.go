package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	attendanceDto "teamnexus.com/collegeportal/internal/modules/attendance/dto"
	attendanceRepo "teamnexus.com/collegeportal/internal/modules/attendance/repository"
	userRepo "teamnexus.com/collegeportal/internal/modules/user/repository"
	"teamnexus.com/collegeportal/internal/policy"
	"teamnexus.com/collegeportal/pkg/apperror"
	"teamnexus.com/collegeportal/pkg/dto"
)

type AttendanceService interface {
	Mark(ctx context.Context, marker *entity.User, req attendanceDto.MarkAttendanceRequest) (*attendanceDto.AttendanceResponse, error)
	// Report returns a student's attendance. Students may only read their own.
	Report(ctx context.Context, viewer *entity.User, studentID uuid.UUID, filter attendanceDto.AttendanceFilter) (*attendanceDto.AttendanceReport, error)
}

type attendanceService struct {
	repo     attendanceRepo.AttendanceRepository
	userRepo userRepo.UserRepository
}

func NewAttendanceService(repo attendanceRepo.AttendanceRepository, userRepo userRepo.UserRepository) AttendanceService {
	return &attendanceService{repo: repo, userRepo: userRepo}
}

func (s *attendanceService) Mark(ctx context.Context, marker *entity.User, req attendanceDto.MarkAttendanceRequest) (*attendanceDto.AttendanceResponse, error) {
	if !policy.CanModerate(marker, policy.ActionMarkAttendance, nil) {
		return nil, apperror.Forbidden("you do not have permission to mark attendance")
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, apperror.Validation("invalid student id")
	}
	if _, err := s.student(ctx, studentID); err != nil {
		return nil, err
	}

	day, err := time.Parse(attendanceDto.DateLayout, req.Date)
	if err != nil {
		return nil, apperror.Validation("invalid date")
	}

	status := strings.ToLower(strings.TrimSpace(req.Status))
	if status == "" {
		return nil, apperror.Validation("status is required")
	}

	record := &entity.Attendance{
		StudentID: studentID,
		Date:      datatypes.Date(day),
		Status:    status,
		MarkedBy:  marker.ID,
	}
	if err := s.repo.Mark(ctx, record); err != nil {
		return nil, fmt.Errorf("mark attendance: %w", err)
	}

	res := mapRecord(record)
	return &res, nil
}

func (s *attendanceService) Report(ctx context.Context, viewer *entity.User, studentID uuid.UUID, filter attendanceDto.AttendanceFilter) (*attendanceDto.AttendanceReport, error) {
	if viewer == nil {
		return nil, apperror.ErrUnauthorized
	}
	if viewer.ID != studentID && !policy.CanModerate(viewer, policy.ActionMarkAttendance, nil) {
		return nil, apperror.Forbidden("you can only view your own attendance")
	}

	student, err := s.student(ctx, studentID)
	if err != nil {
		return nil, err
	}

	from, err := parseBound(filter.From)
	if err != nil {
		return nil, err
	}
	to, err := parseBound(filter.To)
	if err != nil {
		return nil, err
	}

	records, err := s.repo.FindByStudent(ctx, studentID, from, to)
	if err != nil {
		return nil, err
	}

	report := &attendanceDto.AttendanceReport{
		Student: dto.NewAuthorResponse(*student),
		Records: make([]attendanceDto.AttendanceResponse, 0, len(records)),
		Summary: make(map[string]int),
	}
	for i := range records {
		report.Records = append(report.Records, mapRecord(&records[i]))
		report.Summary[records[i].Status]++
	}
	return report, nil
}

func (s *attendanceService) student(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("student")
		}
		return nil, err
	}
	if user.Role != entity.RoleStudent && user.Role != entity.RoleCR {
		return nil, apperror.Validation("user is not a student")
	}
	return user, nil
}

func parseBound(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(attendanceDto.DateLayout, value)
	if err != nil {
		return time.Time{}, apperror.Validation("invalid date")
	}
	return t, nil
}

func mapRecord(a *entity.Attendance) attendanceDto.AttendanceResponse {
	return attendanceDto.AttendanceResponse{
		ID:        a.ID,
		StudentID: a.StudentID,
		Date:      time.Time(a.Date).Format(attendanceDto.DateLayout),
		Status:    a.Status,
		MarkedBy:  dto.NewAuthorResponse(a.Marker),
		MarkedAt:  dto.FormatTime(a.MarkedAt),
	}
}
