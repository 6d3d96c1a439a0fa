package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	resultDto "teamnexus.com/collegeportal/internal/modules/result/dto"
	resultRepo "teamnexus.com/collegeportal/internal/modules/result/repository"
	userRepo "teamnexus.com/collegeportal/internal/modules/user/repository"
	"teamnexus.com/collegeportal/internal/policy"
	"teamnexus.com/collegeportal/pkg/apperror"
	"teamnexus.com/collegeportal/pkg/dto"
)

type ResultService interface {
	Publish(ctx context.Context, poster *entity.User, req resultDto.PublishResultRequest) (*resultDto.ResultResponse, error)
	// ForStudent lists a student's results. Students may only read their own.
	ForStudent(ctx context.Context, viewer *entity.User, studentID uuid.UUID) (*resultDto.StudentResults, error)
	Delete(ctx context.Context, user *entity.User, id uuid.UUID) error
}

type resultService struct {
	repo     resultRepo.ResultRepository
	userRepo userRepo.UserRepository
}

func NewResultService(repo resultRepo.ResultRepository, userRepo userRepo.UserRepository) ResultService {
	return &resultService{repo: repo, userRepo: userRepo}
}

func (s *resultService) Publish(ctx context.Context, poster *entity.User, req resultDto.PublishResultRequest) (*resultDto.ResultResponse, error) {
	if !policy.CanModerate(poster, policy.ActionPublishResult, nil) {
		return nil, apperror.Forbidden("you do not have permission to publish results")
	}

	studentID, err := uuid.Parse(req.StudentID)
	if err != nil {
		return nil, apperror.Validation("invalid student id")
	}
	if _, err := s.student(ctx, studentID); err != nil {
		return nil, err
	}

	details, err := parseDetails(req.Details)
	if err != nil {
		return nil, err
	}

	result := &entity.Result{
		StudentID: studentID,
		Semester:  req.Semester,
		SGPA:      req.SGPA,
		CGPA:      req.CGPA,
		Details:   details,
		PostedBy:  poster.ID,
	}
	if err := s.repo.Upsert(ctx, result); err != nil {
		return nil, fmt.Errorf("publish result: %w", err)
	}

	res := mapResult(result)
	return &res, nil
}

func (s *resultService) ForStudent(ctx context.Context, viewer *entity.User, studentID uuid.UUID) (*resultDto.StudentResults, error) {
	if viewer == nil {
		return nil, apperror.ErrUnauthorized
	}
	if viewer.ID != studentID && !policy.CanModerate(viewer, policy.ActionPublishResult, nil) {
		return nil, apperror.Forbidden("you can only view your own results")
	}

	student, err := s.student(ctx, studentID)
	if err != nil {
		return nil, err
	}

	results, err := s.repo.FindByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}

	out := &resultDto.StudentResults{
		Student: dto.NewAuthorResponse(*student),
		Results: make([]resultDto.ResultResponse, 0, len(results)),
	}
	for i := range results {
		out.Results = append(out.Results, mapResult(&results[i]))
	}
	return out, nil
}

func (s *resultService) Delete(ctx context.Context, user *entity.User, id uuid.UUID) error {
	if !policy.CanModerate(user, policy.ActionPublishResult, nil) {
		return apperror.Forbidden("you do not have permission to delete results")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("result")
		}
		return err
	}
	return nil
}

func (s *resultService) student(ctx context.Context, id uuid.UUID) (*entity.User, error) {
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

// parseDetails accepts an absent value, null, or a JSON object.
func parseDetails(raw json.RawMessage) (datatypes.JSON, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	var obj map[string]any
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return nil, apperror.Validation("details must be a JSON object")
	}
	return datatypes.JSON(trimmed), nil
}

func mapResult(r *entity.Result) resultDto.ResultResponse {
	return resultDto.ResultResponse{
		ID:        r.ID,
		StudentID: r.StudentID,
		Semester:  r.Semester,
		SGPA:      r.SGPA,
		CGPA:      r.CGPA,
		Details:   r.Details,
		PostedBy:  dto.NewAuthorResponse(r.Poster),
		UpdatedAt: dto.FormatTime(r.UpdatedAt),
	}
}
