package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleFaculty = "faculty"
	RoleStudent = "student"
	RoleCR      = "cr"
)

// Roles lists every role a user account may hold.
var Roles = []string{RoleAdmin, RoleTeacher, RoleFaculty, RoleStudent, RoleCR}

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name         string    `gorm:"size:120;not null" json:"name"`
	Username     string    `gorm:"size:120;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;index" json:"role"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID, err = uuid.NewV7()
	}
	return
}

// HasRole reports whether the user holds one of the given roles.
func (u *User) HasRole(roles ...string) bool {
	if u == nil {
		return false
	}
	for _, r := range roles {
		if u.Role == r {
			return true
		}
	}
	return false
}

// DisplayName is the name shown next to authored content.
func (u *User) DisplayName() string {
	if u == nil {
		return "Unknown"
	}
	if u.Name != "" {
		return u.Name
	}
	return u.Username
}
