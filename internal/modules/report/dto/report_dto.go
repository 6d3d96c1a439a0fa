package dto

import (
	"github.com/google/uuid"
	commonDto "teamnexus.com/collegeportal/pkg/dto"
)

type CreateReportRequest struct {
	PostID    string `form:"post_id" json:"post_id" binding:"omitempty,uuid"`
	CommentID string `form:"comment_id" json:"comment_id" binding:"omitempty,uuid"`
	Reason    string `form:"reason" json:"reason" binding:"max=255"`
}

type ReportResponse struct {
	ID         uuid.UUID                `json:"id"`
	PostID     *uuid.UUID               `json:"post_id"`
	CommentID  *uuid.UUID               `json:"comment_id"`
	Reason     string                   `json:"reason"`
	Reporter   commonDto.AuthorResponse `json:"reporter"`
	IsResolved bool                     `json:"is_resolved"`
	CreatedAt  string                   `json:"created_at"`
}
