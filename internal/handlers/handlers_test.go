package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/labstack/echo/v4"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/lumora-app/backend/internal/middleware"
	"github.com/lumora-app/backend/internal/models"
	"github.com/lumora-app/backend/internal/repositories"
)

var testDBCounter int64

// envelope mirrors the response body written by respondOK/respondError
type envelope struct {
	Success      bool            `json:"success"`
	Data         json.RawMessage `json:"data"`
	ErrorCode    string          `json:"error_code"`
	ErrorMessage string          `json:"error_message"`
}

// newTestDB opens a fresh in-memory SQLite database with the full schema
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:handlertestdb%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
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

// invoke runs a handler directly against a synthetic request, with the
// acting account injected the way the JWT middleware does
func invoke(t *testing.T, h echo.HandlerFunc, method, path, body string, accountID uint, params map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()

	c := echo.New().NewContext(req, rec)
	if accountID != 0 {
		c.Set(middleware.ContextAccountIDKey, accountID)
	}
	names := make([]string, 0, len(params))
	values := make([]string, 0, len(params))
	for name, value := range params {
		names = append(names, name)
		values = append(values, value)
	}
	c.SetParamNames(names...)
	c.SetParamValues(values...)

	if err := h(c); err != nil {
		// Echo-level errors (e.g. missing authentication) are rendered
		// by the default error handler in production; surface the status
		// here so tests can assert on it.
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			rec.Code = httpErr.Code
		} else {
			t.Fatalf("handler returned unexpected error: %v", err)
		}
	}

	return rec
}

// decode parses the response envelope
func decode(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return env
}

// newFollowEnv wires a FollowHandler against a fresh database
func newFollowEnv(t *testing.T) (*gorm.DB, *FollowHandler) {
	db := newTestDB(t)
	h := NewFollowHandler(
		repositories.NewPostgresFollowRepository(db),
		repositories.NewPostgresProfileRepository(db),
		repositories.NewPostgresNotificationRepository(db),
		nil,
	)
	return db, h
}

// newLikeEnv wires a LikeHandler against a fresh database
func newLikeEnv(t *testing.T) (*gorm.DB, *LikeHandler) {
	db := newTestDB(t)
	h := NewLikeHandler(
		repositories.NewPostgresLikeRepository(db),
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresProfileRepository(db),
		repositories.NewPostgresNotificationRepository(db),
		nil,
	)
	return db, h
}

// newCommentEnv wires a CommentHandler against a fresh database
func newCommentEnv(t *testing.T) (*gorm.DB, *CommentHandler) {
	db := newTestDB(t)
	h := NewCommentHandler(
		repositories.NewPostgresCommentRepository(db),
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresProfileRepository(db),
		repositories.NewPostgresNotificationRepository(db),
	)
	return db, h
}
