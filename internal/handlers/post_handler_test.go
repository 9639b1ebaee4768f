package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"gorm.io/gorm"

	"github.com/lumora-app/backend/internal/models"
	"github.com/lumora-app/backend/internal/repositories"
)

func newPostEnv(t *testing.T) (*gorm.DB, *PostHandler) {
	db := newTestDB(t)
	h := NewPostHandler(
		repositories.NewPostgresPostRepository(db),
		repositories.NewPostgresProfileRepository(db),
		nil,
	)
	return db, h
}

func TestCreatePostBindsOwnership(t *testing.T) {
	db, h := newPostEnv(t)
	ann := seedProfile(t, db, "ann")

	// profile_id in the payload is ignored; the actor owns the post
	body := `{"content":"hello #golang","profile_id":999}`
	rec := invoke(t, h.CreatePost, http.MethodPost, "/posts", body, ann.AccountID, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var post models.Post
	if err := json.Unmarshal(decode(t, rec).Data, &post); err != nil {
		t.Fatalf("failed to decode post: %v", err)
	}
	if post.ProfileID != ann.ID {
		t.Errorf("ownership must come from the actor, got profile %d", post.ProfileID)
	}
	if post.Posted.IsZero() {
		t.Error("posted timestamp should be assigned on creation")
	}
}

func TestOnlyOwnerMayModifyPost(t *testing.T) {
	db, h := newPostEnv(t)
	ann := seedProfile(t, db, "ann")
	bob := seedProfile(t, db, "bob")
	post := seedPost(t, db, ann.ID, "ann's post")

	params := map[string]string{"id": fmt.Sprint(post.ID)}

	rec := invoke(t, h.UpdatePost, http.MethodPut, "/posts/1", `{"content":"hijacked"}`, bob.AccountID, params)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner update, got %d", rec.Code)
	}
	rec = invoke(t, h.DeletePost, http.MethodDelete, "/posts/1", "", bob.AccountID, params)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for non-owner delete, got %d", rec.Code)
	}

	rec = invoke(t, h.UpdatePost, http.MethodPut, "/posts/1", `{"content":"edited"}`, ann.AccountID, params)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for owner update, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = invoke(t, h.DeletePost, http.MethodDelete, "/posts/1", "", ann.AccountID, params)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for owner delete, got %d", rec.Code)
	}
	var count int64
	db.Model(&models.Post{}).Count(&count)
	if count != 0 {
		t.Errorf("expected post gone, found %d", count)
	}
}

func TestListPostsByProfileAndFilter(t *testing.T) {
	db, h := newPostEnv(t)
	ann := seedProfile(t, db, "ann")
	bob := seedProfile(t, db, "bob")
	seedPost(t, db, ann.ID, "ann writes about #golang")
	seedPost(t, db, bob.ID, "bob writes about gardening")

	// profile_id listing
	rec := invoke(t, h.ListPosts, http.MethodGet, fmt.Sprintf("/posts?profile_id=%d", ann.ID), "", ann.AccountID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var posts []models.Post
	if err := json.Unmarshal(decode(t, rec).Data, &posts); err != nil {
		t.Fatalf("failed to decode posts: %v", err)
	}
	if len(posts) != 1 || posts[0].ProfileID != ann.ID {
		t.Errorf("expected only ann's post, got %+v", posts)
	}

	// hashtag filter
	rec = invoke(t, h.ListPosts, http.MethodGet, "/posts?hashtag=golang", "", ann.AccountID, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	posts = nil
	if err := json.Unmarshal(decode(t, rec).Data, &posts); err != nil {
		t.Fatalf("failed to decode posts: %v", err)
	}
	if len(posts) != 1 || posts[0].ProfileID != ann.ID {
		t.Errorf("expected the #golang post, got %+v", posts)
	}
}

func TestUpdatePostKeepsOmittedContent(t *testing.T) {
	db, h := newPostEnv(t)
	ann := seedProfile(t, db, "ann")
	post := seedPost(t, db, ann.ID, "original content")

	params := map[string]string{"id": fmt.Sprint(post.ID)}
	rec := invoke(t, h.UpdatePost, http.MethodPut, "/posts/1", `{}`, ann.AccountID, params)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var got models.Post
	db.First(&got, post.ID)
	if got.Content != "original content" {
		t.Errorf("omitted content must keep its value, got %q", got.Content)
	}
}

func TestGetPostNotFound(t *testing.T) {
	db, h := newPostEnv(t)
	ann := seedProfile(t, db, "ann")

	rec := invoke(t, h.GetPost, http.MethodGet, "/posts/42", "", ann.AccountID, map[string]string{"id": "42"})
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if env := decode(t, rec); env.ErrorCode != "not_found" {
		t.Errorf("expected not_found error code, got %q", env.ErrorCode)
	}
}
