package dto

import (
	"github.com/google/uuid"
	"teamnexus.com/collegeportal/pkg/dto"
)

type UploadNoteRequest struct {
	Title       string `form:"title" json:"title" binding:"required,max=255"`
	Description string `form:"description" json:"description"`
	Semester    int    `form:"semester" json:"semester" binding:"required,min=1,max=12"`
	Subject     string `form:"subject" json:"subject" binding:"required,max=120"`
}

// NoteFilter narrows the listing. Zero values do not filter.
type NoteFilter struct {
	Semester int    `form:"semester" binding:"omitempty,min=1,max=12"`
	Subject  string `form:"subject"`
}

type NoteResponse struct {
	ID          uuid.UUID          `json:"id"`
	Title       string             `json:"title"`
	Description *string            `json:"description,omitempty"`
	FileURL     string             `json:"file_url"`
	FileName    string             `json:"file_name"`
	Semester    int                `json:"semester"`
	Subject     string             `json:"subject"`
	Uploader    dto.AuthorResponse `json:"uploader"`
	UploadedAt  string             `json:"uploaded_at"`
}
