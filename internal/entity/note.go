package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Note struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	FileURL     string    `gorm:"size:255;not null" json:"file_url"`
	Semester    int       `gorm:"not null;index" json:"semester"`
	Subject     string    `gorm:"size:120;not null;index" json:"subject"`
	UploaderID  uuid.UUID `gorm:"type:uuid;not null" json:"uploader_id"`
	Uploader    User      `gorm:"foreignKey:UploaderID;constraint:OnDelete:CASCADE" json:"uploader"`
	UploadedAt  time.Time `gorm:"autoCreateTime" json:"uploaded_at"`
}

func (n *Note) BeforeCreate(tx *gorm.DB) (err error) {
	if n.ID == uuid.Nil {
		n.ID, err = uuid.NewV7()
	}
	return
}

// OwnerID satisfies policy.Resource.
func (n *Note) OwnerID() uuid.UUID { return n.UploaderID }
