package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
	feedbackDto "teamnexus.com/collegeportal/internal/modules/feedback/dto"
	feedbackRepo "teamnexus.com/collegeportal/internal/modules/feedback/repository"
	"teamnexus.com/collegeportal/internal/policy"
	"teamnexus.com/collegeportal/pkg/apperror"
	"teamnexus.com/collegeportal/pkg/dto"
)

type FeedbackService interface {
	Submit(ctx context.Context, user *entity.User, req feedbackDto.SubmitFeedbackRequest) (*feedbackDto.FeedbackResponse, error)
	// List is the staff inbox. Anonymous authors are shown to admins only.
	List(ctx context.Context, viewer *entity.User) ([]feedbackDto.FeedbackResponse, error)
	Mine(ctx context.Context, user *entity.User) ([]feedbackDto.FeedbackResponse, error)
	Delete(ctx context.Context, user *entity.User, id uuid.UUID) error
}

type feedbackService struct {
	repo feedbackRepo.FeedbackRepository
}

func NewFeedbackService(repo feedbackRepo.FeedbackRepository) FeedbackService {
	return &feedbackService{repo: repo}
}

func (s *feedbackService) Submit(ctx context.Context, user *entity.User, req feedbackDto.SubmitFeedbackRequest) (*feedbackDto.FeedbackResponse, error) {
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}

	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, apperror.Validation("Content is required")
	}

	anonymous := true
	if req.Anonymous != nil {
		anonymous = *req.Anonymous
	}

	feedback := &entity.Feedback{
		UserID:      user.ID,
		IsAnonymous: anonymous,
		Content:     content,
	}
	if err := s.repo.Create(ctx, feedback); err != nil {
		return nil, fmt.Errorf("submit feedback: %w", err)
	}

	res := mapFeedback(feedback, user)
	return &res, nil
}

func (s *feedbackService) List(ctx context.Context, viewer *entity.User) ([]feedbackDto.FeedbackResponse, error) {
	if !policy.CanModerate(viewer, policy.ActionViewFeedback, nil) {
		return nil, apperror.Forbidden("you do not have permission to read feedback")
	}

	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapAll(items, viewer), nil
}

func (s *feedbackService) Mine(ctx context.Context, user *entity.User) ([]feedbackDto.FeedbackResponse, error) {
	if user == nil {
		return nil, apperror.ErrUnauthorized
	}

	items, err := s.repo.FindByUser(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return mapAll(items, user), nil
}

func (s *feedbackService) Delete(ctx context.Context, user *entity.User, id uuid.UUID) error {
	if !policy.CanModerate(user, policy.ActionDeleteFeedback, nil) {
		return apperror.Forbidden("you do not have permission to delete feedback")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperror.NotFound("feedback")
		}
		return err
	}
	return nil
}

func mapAll(items []entity.Feedback, viewer *entity.User) []feedbackDto.FeedbackResponse {
	out := make([]feedbackDto.FeedbackResponse, 0, len(items))
	for i := range items {
		out = append(out, mapFeedback(&items[i], viewer))
	}
	return out
}

// mapFeedback hides the author of anonymous feedback unless the viewer wrote
// it or is allowed to reveal it.
func mapFeedback(f *entity.Feedback, viewer *entity.User) feedbackDto.FeedbackResponse {
	res := feedbackDto.FeedbackResponse{
		ID:          f.ID,
		Content:     f.Content,
		IsAnonymous: f.IsAnonymous,
		SubmittedAt: dto.FormatTime(f.SubmittedAt),
	}

	reveal := !f.IsAnonymous ||
		(viewer != nil && viewer.ID == f.UserID) ||
		policy.CanModerate(viewer, policy.ActionRevealFeedback, nil)
	if reveal {
		author := dto.NewAuthorResponse(f.User)
		res.Author = &author
	}
	return res
}
