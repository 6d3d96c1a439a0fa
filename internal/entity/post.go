package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Post struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null;index" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Title      string    `gorm:"size:255;not null" json:"title"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	FileURL    *string   `gorm:"size:255" json:"file_url,omitempty"`
	IsDeleted  bool      `gorm:"default:false;index" json:"is_deleted"`
	IsReported bool      `gorm:"default:false" json:"is_reported"`
	Tags       []Tag     `gorm:"many2many:post_tags;constraint:OnDelete:CASCADE" json:"tags"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == uuid.Nil {
		p.ID, err = uuid.NewV7()
	}
	return
}

type Comment struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	PostID     uuid.UUID `gorm:"type:uuid;not null;index" json:"post_id"`
	Post       *Post     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	AuthorID   uuid.UUID `gorm:"type:uuid;not null" json:"author_id"`
	Author     User      `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	IsDeleted  bool      `gorm:"default:false" json:"is_deleted"`
	IsReported bool      `gorm:"default:false" json:"is_reported"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == uuid.Nil {
		c.ID, err = uuid.NewV7()
	}
	return
}

// Like is one user's upvote on a post. The (user_id, post_id) pair is unique
// at the storage level so concurrent toggles can never insert twice.
type Like struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_post,priority:1" json:"user_id"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	PostID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_likes_user_post,priority:2;index" json:"post_id"`
	Post      *Post     `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (l *Like) BeforeCreate(tx *gorm.DB) (err error) {
	if l.ID == uuid.Nil {
		l.ID, err = uuid.NewV7()
	}
	return
}

type Report struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReporterID uuid.UUID  `gorm:"type:uuid;not null" json:"reporter_id"`
	Reporter   User       `gorm:"foreignKey:ReporterID;constraint:OnDelete:CASCADE" json:"reporter"`
	PostID     *uuid.UUID `gorm:"type:uuid;index" json:"post_id,omitempty"`
	Post       *Post      `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CommentID  *uuid.UUID `gorm:"type:uuid;index" json:"comment_id,omitempty"`
	Comment    *Comment   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Reason     string     `gorm:"size:255" json:"reason"`
	IsResolved bool       `gorm:"default:false" json:"is_resolved"`
	CreatedAt  time.Time  `gorm:"autoCreateTime;index" json:"created_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == uuid.Nil {
		r.ID, err = uuid.NewV7()
	}
	return
}

// OwnerID satisfies policy.Resource.
func (p *Post) OwnerID() uuid.UUID { return p.AuthorID }

// OwnerID satisfies policy.Resource.
func (c *Comment) OwnerID() uuid.UUID { return c.AuthorID }
