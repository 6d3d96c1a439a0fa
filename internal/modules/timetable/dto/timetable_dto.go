package dto

import "github.com/google/uuid"

type CreateEntryRequest struct {
	StudentID string `form:"student_id" json:"student_id" binding:"required,uuid"`
	Day       string `form:"day" json:"day" binding:"required"`
	Period    string `form:"period" json:"period" binding:"required,max=20"`
	Subject   string `form:"subject" json:"subject" binding:"required,max=120"`
	StartTime string `form:"start_time" json:"start_time" binding:"required"`
	EndTime   string `form:"end_time" json:"end_time" binding:"required"`
	Location  string `form:"location" json:"location" binding:"max=120"`
}

type EntryResponse struct {
	ID        uuid.UUID `json:"id"`
	StudentID uuid.UUID `json:"student_id"`
	Day       string    `json:"day"`
	Period    string    `json:"period"`
	Subject   string    `json:"subject"`
	StartTime string    `json:"start_time"`
	EndTime   string    `json:"end_time"`
	Location  *string   `json:"location,omitempty"`
}
