package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Event struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title            string    `gorm:"size:255;not null" json:"title"`
	Description      *string   `gorm:"type:text" json:"description,omitempty"`
	StartTime        time.Time `gorm:"not null;index" json:"start_time"`
	EndTime          time.Time `gorm:"not null" json:"end_time"`
	Location         *string   `gorm:"size:255" json:"location,omitempty"`
	RegistrationLink *string   `gorm:"size:255" json:"registration_link,omitempty"`
	FileURL          *string   `gorm:"size:255" json:"file_url,omitempty"`
	Category         *string   `gorm:"size:100" json:"category,omitempty"`
	PosterID         uuid.UUID `gorm:"type:uuid;not null;index" json:"poster_id"`
	Poster           User      `gorm:"foreignKey:PosterID;constraint:OnDelete:CASCADE" json:"poster"`
	PostedAt         time.Time `gorm:"autoCreateTime" json:"posted_at"`
}

func (e *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == uuid.Nil {
		e.ID, err = uuid.NewV7()
	}
	return
}

// OwnerID satisfies policy.Resource.
func (e *Event) OwnerID() uuid.UUID { return e.PosterID }

// EventRSVP is the join row between an event and an attending user. The
// composite primary key rules out duplicate registrations.
type EventRSVP struct {
	EventID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"event_id"`
	Event     *Event    `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	UserID    uuid.UUID `gorm:"type:uuid;primaryKey" json:"user_id"`
	User      *User     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (EventRSVP) TableName() string {
	return "event_rsvps"
}
