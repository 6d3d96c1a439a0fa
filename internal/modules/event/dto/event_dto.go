package dto

import (
	"time"

	"github.com/google/uuid"
	"teamnexus.com/collegeportal/pkg/dto"
)

// EventRequest is the create/edit form. Times accept RFC 3339 or the
// browser datetime-local layout ("2025-03-05T14:30").
type EventRequest struct {
	Title            string `form:"title" json:"title" binding:"required,max=255"`
	Description      string `form:"description" json:"description"`
	StartTime        string `form:"start_time" json:"start_time" binding:"required"`
	EndTime          string `form:"end_time" json:"end_time" binding:"required"`
	Location         string `form:"location" json:"location" binding:"max=255"`
	RegistrationLink string `form:"registration_link" json:"registration_link" binding:"omitempty,url,max=255"`
	Category         string `form:"category" json:"category" binding:"max=100"`
}

type EventResponse struct {
	ID               uuid.UUID          `json:"id"`
	Title            string             `json:"title"`
	Description      *string            `json:"description,omitempty"`
	DescriptionHTML  string             `json:"description_html,omitempty"`
	StartTime        time.Time          `json:"start_time"`
	EndTime          time.Time          `json:"end_time"`
	Location         *string            `json:"location,omitempty"`
	RegistrationLink *string            `json:"registration_link,omitempty"`
	Category         *string            `json:"category,omitempty"`
	FileURL          *string            `json:"file_url,omitempty"`
	Poster           dto.AuthorResponse `json:"poster"`
	PostedAt         string             `json:"posted_at"`
}

type EventListResponse struct {
	Upcoming []EventResponse `json:"upcoming"`
	Past     []EventResponse `json:"past"`
}

type EventDetailResponse struct {
	Event        EventResponse `json:"event"`
	IsRegistered bool          `json:"is_registered"`
	RSVPCount    int64         `json:"rsvp_count"`
}
