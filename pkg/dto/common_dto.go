package dto

import (
	"time"

	"github.com/google/uuid"
	"teamnexus.com/collegeportal/internal/entity"
)

// DisplayTimeLayout is the timestamp format shown to people, e.g. "05 Mar 2025 14:30".
const DisplayTimeLayout = "02 Jan 2006 15:04"

type AuthorResponse struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
}

type TagResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

func NewAuthorResponse(u entity.User) AuthorResponse {
	if u.ID == uuid.Nil {
		return AuthorResponse{Name: "Unknown", Username: "unknown"}
	}
	return AuthorResponse{
		ID:       u.ID,
		Name:     u.DisplayName(),
		Username: u.Username,
		Role:     u.Role,
	}
}

func NewTagResponses(tags []entity.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, t := range tags {
		out = append(out, TagResponse{ID: t.ID, Name: t.Name})
	}
	return out
}

func FormatTime(t time.Time) string {
	return t.Format(DisplayTimeLayout)
}
