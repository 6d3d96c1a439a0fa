package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Result is a student's grade sheet for one semester.
type Result struct {
	ID        uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex:idx_result_student_semester,priority:1" json:"student_id"`
	Student   User           `gorm:"foreignKey:StudentID;constraint:OnDelete:CASCADE" json:"-"`
	Semester  int            `gorm:"not null;uniqueIndex:idx_result_student_semester,priority:2" json:"semester"`
	SGPA      *float64       `json:"sgpa,omitempty"`
	CGPA      *float64       `json:"cgpa,omitempty"`
	Details   datatypes.JSON `json:"details,omitempty"`
	PostedBy  uuid.UUID      `gorm:"type:uuid;not null" json:"posted_by"`
	Poster    User           `gorm:"foreignKey:PostedBy;constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
}

func (r *Result) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

// Feedback is free text sent to staff. UserID is always kept; anonymity only
// hides it from non-admin readers.
type Feedback struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID      uuid.UUID `gorm:"type:uuid;not null;index" json:"-"`
	User        User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	IsAnonymous bool      `gorm:"not null" json:"is_anonymous"`
	Content     string    `gorm:"type:text;not null" json:"content"`
	SubmittedAt time.Time `gorm:"autoCreateTime;index" json:"submitted_at"`
}

func (f *Feedback) BeforeCreate(tx *gorm.DB) (err error) {
	if f.ID == uuid.Nil {
		f.ID, err = uuid.NewV7()
	}
	return
}
