package bootstrap

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"teamnexus.com/collegeportal/internal/entity"
)

func TestSeedAdminUserIsIdempotent(t *testing.T) {
	db, err := gorm.Open(sqlite.Open("file:seed?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err := Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	for i := 0; i < 2; i++ {
		if err := SeedAdminUser(db, "secret-pass"); err != nil {
			t.Fatalf("seed #%d: %v", i, err)
		}
	}

	var admins []entity.User
	if err := db.Where("username = ?", AdminUsername).Find(&admins).Error; err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(admins) != 1 {
		t.Fatalf("admins = %d, want 1", len(admins))
	}
	if admins[0].Role != entity.RoleAdmin {
		t.Errorf("role = %q", admins[0].Role)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admins[0].PasswordHash), []byte("secret-pass")); err != nil {
		t.Errorf("password hash does not match: %v", err)
	}
}
