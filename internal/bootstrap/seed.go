package bootstrap

import (
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"teamnexus.com/collegeportal/internal/entity"
)

const (
	AdminUsername = "admin"
	AdminEmail    = "admin@teamnexus.com"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Tag{},
		&entity.Post{},
		&entity.Comment{},
		&entity.Like{},
		&entity.Report{},
		&entity.Announcement{},
		&entity.Event{},
		&entity.EventRSVP{},
		&entity.Note{},
		&entity.Attendance{},
		&entity.TimetableEntry{},
		&entity.Result{},
		&entity.Feedback{},
	)
}

// SeedAdminUser creates the bootstrap administrator unless a user named
// admin already exists. Further admins are promoted through UpdateRole.
func SeedAdminUser(db *gorm.DB, password string) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("username = ?", AdminUsername).
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashedPasswordBytes, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	adminUser := entity.User{
		Name:         "Administrator",
		Username:     AdminUsername,
		Email:        AdminEmail,
		PasswordHash: string(hashedPasswordBytes),
		Role:         entity.RoleAdmin,
	}

	if err := db.Create(&adminUser).Error; err != nil {
		return err
	}

	log.Println("✅ Admin user seeded successfully")
	log.Printf("   Username: %s", AdminUsername)

	return nil
}
