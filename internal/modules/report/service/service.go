package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	reportDto "teamnexus.com/collegeportal/internal/modules/report/dto"
	reportRepo "teamnexus.com/collegeportal/internal/modules/report/repository"
	"teamnexus.com/collegeportal/internal/policy"
	"teamnexus.com/collegeportal/internal/realtime"
	"teamnexus.com/collegeportal/pkg/apperror"
	"teamnexus.com/collegeportal/pkg/dto"
)

type ReportService interface {
	CreateReport(ctx context.Context, user *entity.User, req reportDto.CreateReportRequest) (*reportDto.ReportResponse, error)
	ListReports(ctx context.Context, user *entity.User) ([]reportDto.ReportResponse, error)
	ResolveReport(ctx context.Context, user *entity.User, id uuid.UUID) (*reportDto.ReportResponse, error)
}

type reportService struct {
	repo      reportRepo.ReportRepository
	publisher realtime.Publisher
}

func NewReportService(repo reportRepo.ReportRepository, publisher realtime.Publisher) ReportService {
	if publisher == nil {
		publisher = realtime.Discard
	}
	return &reportService{repo: repo, publisher: publisher}
}

func (s *reportService) CreateReport(ctx context.Context, user *entity.User, req reportDto.CreateReportRequest) (*reportDto.ReportResponse, error) {
	postID, err := optionalID(req.PostID)
	if err != nil {
		return nil, err
	}
	commentID, err := optionalID(req.CommentID)
	if err != nil {
		return nil, err
	}
	if postID == nil && commentID == nil {
		return nil, apperror.Validation("a post or comment to report is required")
	}

	report := &entity.Report{
		ReporterID: user.ID,
		PostID:     postID,
		CommentID:  commentID,
		Reason:     strings.TrimSpace(req.Reason),
	}

	if err := s.repo.Create(ctx, report); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("reported content")
		}
		return nil, fmt.Errorf("create report: %w", err)
	}
	report.Reporter = *user

	s.publisher.Publish(realtime.EventReportContent, realtime.ReportPayload{
		ReportID:  report.ID,
		PostID:    report.PostID,
		CommentID: report.CommentID,
		Reason:    report.Reason,
		Reporter:  user.DisplayName(),
	})

	res := mapReport(report)
	return &res, nil
}

func (s *reportService) ListReports(ctx context.Context, user *entity.User) ([]reportDto.ReportResponse, error) {
	if !policy.CanModerate(user, policy.ActionViewReports, nil) {
		return nil, apperror.Forbidden("you do not have permission to view reports")
	}

	reports, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]reportDto.ReportResponse, 0, len(reports))
	for i := range reports {
		out = append(out, mapReport(&reports[i]))
	}
	return out, nil
}

// ResolveReport closes an open report. Resolving twice returns the report unchanged.
func (s *reportService) ResolveReport(ctx context.Context, user *entity.User, id uuid.UUID) (*reportDto.ReportResponse, error) {
	if !policy.CanModerate(user, policy.ActionResolveReport, nil) {
		return nil, apperror.Forbidden("you do not have permission to resolve reports")
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("report")
		}
		return nil, err
	}

	if !report.IsResolved {
		if err := s.repo.Resolve(ctx, id); err != nil {
			return nil, err
		}
		report.IsResolved = true
	}

	res := mapReport(report)
	return &res, nil
}

func optionalID(raw string) (*uuid.UUID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil, apperror.Validation(fmt.Sprintf("invalid id %q", raw))
	}
	return &id, nil
}

func mapReport(r *entity.Report) reportDto.ReportResponse {
	return reportDto.ReportResponse{
		ID:         r.ID,
		PostID:     r.PostID,
		CommentID:  r.CommentID,
		Reason:     r.Reason,
		Reporter:   dto.NewAuthorResponse(r.Reporter),
		IsResolved: r.IsResolved,
		CreatedAt:  dto.FormatTime(r.CreatedAt),
	}
}
