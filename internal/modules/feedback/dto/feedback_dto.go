package dto

import (
	"github.com/google/uuid"
	"teamnexus.com/collegeportal/pkg/dto"
)

// SubmitFeedbackRequest defaults to anonymous when is_anonymous is absent.
type SubmitFeedbackRequest struct {
	Content   string `form:"content" json:"content" binding:"required,max=5000"`
	Anonymous *bool  `form:"is_anonymous" json:"is_anonymous"`
}

type FeedbackResponse struct {
	ID          uuid.UUID           `json:"id"`
	Content     string              `json:"content"`
	IsAnonymous bool                `json:"is_anonymous"`
	Author      *dto.AuthorResponse `json:"author,omitempty"`
	SubmittedAt string              `json:"submitted_at"`
}
