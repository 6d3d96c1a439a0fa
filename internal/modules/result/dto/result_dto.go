package dto

import (
	"encoding/json"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"teamnexus.com/collegeportal/pkg/dto"
)

// PublishResultRequest posts or replaces a student's result for a semester.
// Details holds the per-subject breakdown as a JSON object.
type PublishResultRequest struct {
	StudentID string          `json:"student_id" binding:"required,uuid"`
	Semester  int             `json:"semester" binding:"required,min=1,max=12"`
	SGPA      *float64        `json:"sgpa" binding:"omitempty,gte=0,lte=10"`
	CGPA      *float64        `json:"cgpa" binding:"omitempty,gte=0,lte=10"`
	Details   json.RawMessage `json:"details"`
}

type ResultResponse struct {
	ID        uuid.UUID          `json:"id"`
	StudentID uuid.UUID          `json:"student_id"`
	Semester  int                `json:"semester"`
	SGPA      *float64           `json:"sgpa,omitempty"`
	CGPA      *float64           `json:"cgpa,omitempty"`
	Details   datatypes.JSON     `json:"details,omitempty"`
	PostedBy  dto.AuthorResponse `json:"posted_by"`
	UpdatedAt string             `json:"updated_at"`
}

// StudentResults lists one student's semesters in order.
type StudentResults struct {
	Student dto.AuthorResponse `json:"student"`
	Results []ResultResponse   `json:"results"`
}
