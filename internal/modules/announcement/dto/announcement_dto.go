package dto

import (
	"github.com/google/uuid"
	commonDto "teamnexus.com/collegeportal/pkg/dto"
)

// AnnouncementRequest is used for both create and edit. Tags is a comma
// separated list of tag names; unknown names are created.
type AnnouncementRequest struct {
	Title    string `form:"title" json:"title" binding:"required,max=255"`
	Content  string `form:"content" json:"content" binding:"required"`
	Category string `form:"category" json:"category" binding:"max=100"`
	IsPinned bool   `form:"is_pinned" json:"is_pinned"`
	Tags     string `form:"tags" json:"tags"`
}

type AnnouncementFilter struct {
	Category string `form:"category"`
}

type AnnouncementResponse struct {
	ID          uuid.UUID                `json:"id"`
	Title       string                   `json:"title"`
	Content     string                   `json:"content"`
	ContentHTML string                   `json:"content_html"`
	Category    *string                  `json:"category,omitempty"`
	FileURL     *string                  `json:"file_url,omitempty"`
	IsPinned    bool                     `json:"is_pinned"`
	Tags        []commonDto.TagResponse  `json:"tags"`
	Poster      commonDto.AuthorResponse `json:"poster"`
	PostedAt    string                   `json:"posted_at"`
}
