package repositories

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lumora-app/backend/internal/models"
)

var testDBCounter int64

// newTestDB opens a fresh in-memory SQLite database with the full schema.
// cache=shared keeps GORM's connection pool on the same database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Account{},
		&models.Profile{},
		&models.Post{},
		&models.Follow{},
		&models.Like{},
		&models.Comment{},
		&models.Notification{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// seedProfile creates a profile with a matching account
func seedProfile(t *testing.T, db *gorm.DB, username string) *models.Profile {
	t.Helper()

	account := &models.Account{Email: username + "@example.com"}
	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to seed account: %v", err)
	}

	profile := &models.Profile{AccountID: account.ID, Username: username}
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to seed profile: %v", err)
	}
	return profile
}

// seedPost creates a post owned by the given profile
func seedPost(t *testing.T, db *gorm.DB, profileID uint, content string) *models.Post {
	t.Helper()

	post := &models.Post{ProfileID: profileID, Content: content}
	if err := db.Create(post).Error; err != nil {
		t.Fatalf("failed to seed post: %v", err)
	}
	return post
}
