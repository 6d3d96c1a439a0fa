// Package testdb opens throwaway sqlite databases for repository and service tests.
package testdb

import (
	"fmt"
	"strings"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"teamnexus.com/collegeportal/internal/bootstrap"
	"teamnexus.com/collegeportal/internal/entity"
)

// New returns a migrated in-memory database private to t.
func New(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", name)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	// one connection keeps the memory database alive and serialises writers
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := bootstrap.Migrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// CreateUser inserts a user with the given role and a unique username.
func CreateUser(t *testing.T, db *gorm.DB, username, role string) *entity.User {
	t.Helper()

	user := &entity.User{
		Name:         strings.ToUpper(username[:1]) + username[1:],
		Username:     username,
		Email:        username + "@example.edu",
		PasswordHash: "x",
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("create user %s: %v", username, err)
	}
	return user
}
