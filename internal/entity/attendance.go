package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Attendance struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_attendance_student_date,priority:1" json:"student_id"`
	Student   User           `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Date      datatypes.Date `gorm:"not null;uniqueIndex:idx_attendance_student_date,priority:2" json:"date"`
	Status    string         `gorm:"size:20;not null" json:"status"`
	MarkedBy  uuid.UUID      `gorm:"type:uuid;not null" json:"marked_by"`
	Marker    User           `gorm:"foreignKey:MarkedBy;constraint:OnDelete:CASCADE" json:"-"`
	MarkedAt  time.Time      `gorm:"autoCreateTime" json:"marked_at"`
}

func (a *Attendance) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}

func (Attendance) TableName() string {
	return "attendance"
}

type TimetableEntry struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID      `gorm:"type:uuid;not null;index" json:"student_id"`
	Student   User           `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Day       string         `gorm:"size:20;not null" json:"day"`
	Period    string         `gorm:"size:20;not null" json:"period"`
	Subject   string         `gorm:"size:120;not null" json:"subject"`
	StartTime datatypes.Time `gorm:"not null" json:"start_time"`
	EndTime   datatypes.Time `gorm:"not null" json:"end_time"`
	Location  *string        `gorm:"size:120" json:"location,omitempty"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

func (t *TimetableEntry) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == uuid.Nil {
		t.ID, err = uuid.NewV7()
	}
	return
}
