package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/lumora-app/backend/internal/apperrors"
	"github.com/lumora-app/backend/internal/authz"
	"github.com/lumora-app/backend/internal/cache"
	"github.com/lumora-app/backend/internal/models"
	"github.com/lumora-app/backend/internal/repositories"
)

const likeCountTTL = 5 * time.Minute

// LikeHandler handles HTTP requests related to likes
type LikeHandler struct {
	likeRepository         repositories.LikeRepository
	postRepository         repositories.PostRepository
	profileRepository      repositories.ProfileRepository
	notificationRepository repositories.NotificationRepository
	countCache             *cache.Cache
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, postRepo repositories.PostRepository, profileRepo repositories.ProfileRepository, notifRepo repositories.NotificationRepository, countCache *cache.Cache) *LikeHandler {
	return &LikeHandler{
		likeRepository:         likeRepo,
		postRepository:         postRepo,
		profileRepository:      profileRepo,
		notificationRepository: notifRepo,
		countCache:             countCache,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/posts/:id/likes", h.LikePost)
	g.DELETE("/posts/:id/likes", h.UnlikePost)
	g.GET("/posts/:id/likes", h.GetLikesForPost)
	g.GET("/posts/:id/likes/count", h.GetLikesCountForPost)
	g.GET("/profiles/:id/liked-posts", h.GetLikedPosts)
}

// getPost loads a post or returns a NotFound application error
func (h *LikeHandler) getPost(id uint) (*models.Post, error) {
	post, err := h.postRepository.GetPostByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Post not found")
		}
		return nil, err
	}
	return post, nil
}

// LikePost likes a post. Liking an already-liked post is a success with
// a note, not an error; liking and following deliberately disagree here.
func (h *LikeHandler) LikePost(c echo.Context) error {
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

	created, err := h.likeRepository.CreateLike(&models.Like{
		ProfileID: actor.ID,
		PostID:    post.ID,
	})
	if err != nil {
		return respondError(c, err)
	}

	if !created {
		return respondOK(c, http.StatusOK, echo.Map{"liked": true, "already_liked": true})
	}

	h.countCache.Delete(cache.PostLikeCountKey(post.ID))

	if h.notificationRepository != nil && post.ProfileID != actor.ID {
		notif := &models.Notification{
			Type:        "like",
			ActorID:     actor.ID,
			RecipientID: post.ProfileID,
			TargetID:    post.ID,
			TargetType:  "post",
			Message:     actor.Username + " liked your post",
		}
		h.notificationRepository.CreateNotification(notif)
	}

	return respondOK(c, http.StatusCreated, echo.Map{"liked": true, "already_liked": false})
}

// UnlikePost unlikes a post. Removing a like that does not exist fails
// the precondition rather than silently succeeding.
func (h *LikeHandler) UnlikePost(c echo.Context) error {
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

	if err := h.likeRepository.DeleteLike(post.ID, actor.ID); err != nil {
		return respondError(c, err)
	}

	h.countCache.Delete(cache.PostLikeCountKey(post.ID))

	return c.NoContent(http.StatusNoContent)
}

// GetLikesForPost retrieves the likes on a post, denormalized with the
// liker's username, in like order
func (h *LikeHandler) GetLikesForPost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.getPost(id)
	if err != nil {
		return respondError(c, err)
	}

	records, err := h.likeRepository.GetLikeRecordsByPostID(post.ID)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, records)
}

// GetLikesCountForPost retrieves the number of likes on a post, served
// from the counter cache when warm
func (h *LikeHandler) GetLikesCountForPost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	post, err := h.getPost(id)
	if err != nil {
		return respondError(c, err)
	}

	count, err := h.countCache.GetCount(cache.PostLikeCountKey(post.ID))
	if err != nil {
		if count, err = h.likeRepository.GetLikesCountByPostID(post.ID); err != nil {
			return respondError(c, err)
		}
		h.countCache.SetCount(cache.PostLikeCountKey(post.ID), count, likeCountTTL)
	}

	return respondOK(c, http.StatusOK, echo.Map{"post_id": post.ID, "likes_count": count})
}

// GetLikedPosts retrieves the posts a profile has liked. The listing is
// visible only to the profile itself.
func (h *LikeHandler) GetLikedPosts(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.profileRepository.GetProfileByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, apperrors.NotFound("Profile not found"))
		}
		return respondError(c, err)
	}

	if err := authz.CanViewLikedPosts(actor.ID, id); err != nil {
		return respondError(c, err)
	}

	posts, err := h.postRepository.GetLikedPosts(actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, posts)
}
