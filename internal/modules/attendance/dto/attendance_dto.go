package dto

import (
	"github.com/google/uuid"
	"teamnexus.com/collegeportal/pkg/dto"
)

// DateLayout is the wire format of attendance dates.
const DateLayout = "2006-01-02"

type MarkAttendanceRequest struct {
	StudentID string `form:"student_id" json:"student_id" binding:"required,uuid"`
	Date      string `form:"date" json:"date" binding:"required,datetime=2006-01-02"`
	Status    string `form:"status" json:"status" binding:"required,max=20"`
}

type AttendanceFilter struct {
	From string `form:"from" binding:"omitempty,datetime=2006-01-02"`
	To   string `form:"to" binding:"omitempty,datetime=2006-01-02"`
}

type AttendanceResponse struct {
	ID        uuid.UUID          `json:"id"`
	StudentID uuid.UUID          `json:"student_id"`
	Date      string             `json:"date"`
	Status    string             `json:"status"`
	MarkedBy  dto.AuthorResponse `json:"marked_by"`
	MarkedAt  string             `json:"marked_at"`
}

// AttendanceReport is one student's records with a count per status.
type AttendanceReport struct {
	Student dto.AuthorResponse   `json:"student"`
	Records []AttendanceResponse `json:"records"`
	Summary map[string]int       `json:"summary"`
}
