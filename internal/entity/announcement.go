package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Announcement struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title    string    `gorm:"size:255;not null" json:"title"`
	Content  string    `gorm:"type:text;not null" json:"content"`
	PosterID uuid.UUID `gorm:"type:uuid;not null;index" json:"poster_id"`
	Poster   User      `gorm:"foreignKey:PosterID;constraint:OnDelete:CASCADE" json:"poster"`
	Category *string   `gorm:"size:100;index" json:"category,omitempty"`
	FileURL  *string   `gorm:"size:255" json:"file_url,omitempty"`
	IsPinned bool      `gorm:"default:false" json:"is_pinned"`
	Tags     []Tag     `gorm:"many2many:announcement_tags;constraint:OnDelete:CASCADE" json:"tags"`
	PostedAt time.Time `gorm:"autoCreateTime" json:"posted_at"`
}

func (a *Announcement) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == uuid.Nil {
		a.ID, err = uuid.NewV7()
	}
	return
}

// OwnerID satisfies policy.Resource.
func (a *Announcement) OwnerID() uuid.UUID { return a.PosterID }
