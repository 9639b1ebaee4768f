package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/lumora-app/backend/internal/apperrors"
	"github.com/lumora-app/backend/internal/authz"
	"github.com/lumora-app/backend/internal/models"
	"github.com/lumora-app/backend/internal/repositories"
	"github.com/lumora-app/backend/internal/utils"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	postRepository    repositories.PostRepository
	profileRepository repositories.ProfileRepository
	mediaRepository   repositories.MediaRepository
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(postRepo repositories.PostRepository, profileRepo repositories.ProfileRepository, mediaRepo repositories.MediaRepository) *PostHandler {
	return &PostHandler{
		postRepository:    postRepo,
		profileRepository: profileRepo,
		mediaRepository:   mediaRepo,
	}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts", h.ListPosts)
	g.GET("/posts/:id", h.GetPost)
	g.PUT("/posts/:id", h.UpdatePost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.POST("/posts/:id/media", h.UploadMedia)
}

// getPost loads a post or returns a NotFound application error
func (h *PostHandler) getPost(id uint) (*models.Post, error) {
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, err
	}
	return post, nil
}

// CreatePost creates a new post owned by the acting profile. Ownership is
// bound server-side; the posted timestamp is assigned by the store.
func (h *PostHandler) CreatePost(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	var req models.CreatePostRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.Validation("Invalid request payload"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, apperrors.Validation(err.Error()))
	}

	post := &models.Post{
		ProfileID: actor.ID,
		Content:   req.Content,
	}

	if err := h.postRepository.CreatePost(post); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusCreated, post)
}

// ListPosts retrieves posts, optionally filtered by hashtag, content
// substring, and liking profile's username. Results are distinct and
// newest first.
func (h *PostHandler) ListPosts(c echo.Context) error {
	if profileID := c.QueryParam("profile_id"); profileID != "" {
		id, err := pathIDValue(profileID)
		if err != nil {
			return respondError(c, err)
		}
		posts, err := h.postRepository.GetPostsByProfileID(id)
		if err != nil {
			return respondError(c, err)
		}
		return respondOK(c, http.StatusOK, posts)
	}

	filter := models.PostFilter{
		Hashtag: c.QueryParam("hashtag"),
		Content: c.QueryParam("content"),
		LikedBy: c.QueryParam("liked_by"),
	}

	posts, err := h.postRepository.GetPosts(filter)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, posts)
}

// GetPost retrieves a post by ID
func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.getPost(id)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, post)
}

// UpdatePost updates a post; only its owner may do so. Updates are
// partial: an absent or empty content field keeps the current value.
func (h *PostHandler) UpdatePost(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.getPost(id)
	if err != nil {
		return respondError(c, err)
	}

	if err := authz.CanModifyPost(actor.ID, post.ProfileID); err != nil {
		return respondError(c, err)
	}

	var req models.UpdatePostRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.Validation("Invalid request payload"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, apperrors.Validation(err.Error()))
	}

	if req.Content != "" {
		post.Content = req.Content
	}

	if err := h.postRepository.UpdatePost(post); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, post)
}

// DeletePost deletes a post together with its likes and comments; only
// its owner may do so
func (h *PostHandler) DeletePost(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.getPost(id)
	if err != nil {
		return respondError(c, err)
	}

	if err := authz.CanModifyPost(actor.ID, post.ProfileID); err != nil {
		return respondError(c, err)
	}

	if err := h.postRepository.DeletePost(post.ID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadMedia stores an image for the post in the media store and saves
// its key; only the owner may do so
func (h *PostHandler) UploadMedia(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.getPost(id)
	if err != nil {
		return respondError(c, err)
	}

	if err := authz.CanModifyPost(actor.ID, post.ProfileID); err != nil {
		return respondError(c, err)
	}

	fileHeader, err := c.FormFile("media")
	if err != nil {
		return respondError(c, apperrors.Validation("Form file 'media' is required"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer src.Close()

	key := utils.MediaKey(actor.Username, fileHeader.Filename)
	if err := h.mediaRepository.Put(c.Request().Context(), key, src, fileHeader.Header.Get("Content-Type")); err != nil {
		return respondError(c, err)
	}

	post.MediaKey = key
	if err := h.postRepository.UpdatePost(post); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, post)
}
