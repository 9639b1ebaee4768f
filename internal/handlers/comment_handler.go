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
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository      repositories.CommentRepository
	postRepository         repositories.PostRepository
	profileRepository      repositories.ProfileRepository
	notificationRepository repositories.NotificationRepository
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, postRepo repositories.PostRepository, profileRepo repositories.ProfileRepository, notifRepo repositories.NotificationRepository) *CommentHandler {
	return &CommentHandler{
		commentRepository:      commentRepo,
		postRepository:         postRepo,
		profileRepository:      profileRepo,
		notificationRepository: notifRepo,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/posts/:post_id/comments", h.CreateComment)
	g.GET("/posts/:post_id/comments", h.GetCommentsByPostID)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CreateComment creates a new comment on a post. Any profile may comment
// on any post; authorship is bound server-side.
func (h *CommentHandler) CreateComment(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	postID, err := pathID(c, "post_id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.Validation("Invalid request payload"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, apperrors.Validation(err.Error()))
	}

	post, err := h.postRepository.GetPostByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, apperrors.NotFound("Post not found"))
		}
		return respondError(c, err)
	}

	comment := &models.Comment{
		PostID:    post.ID,
		ProfileID: actor.ID,
		Content:   req.Content,
	}

	if err := h.commentRepository.CreateComment(comment); err != nil {
		return respondError(c, err)
	}

	if h.notificationRepository != nil && post.ProfileID != actor.ID {
		notif := &models.Notification{
			Type:        "comment",
			ActorID:     actor.ID,
			RecipientID: post.ProfileID,
			TargetID:    comment.ID,
			TargetType:  "comment",
			Message:     actor.Username + " commented on your post",
		}
		h.notificationRepository.CreateNotification(notif)
	}

	return respondOK(c, http.StatusCreated, comment)
}

// GetCommentsByPostID retrieves the comments on a post in creation order,
// denormalized with the commenter's username and the post content
func (h *CommentHandler) GetCommentsByPostID(c echo.Context) error {
	postID, err := pathID(c, "post_id")
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.postRepository.GetPostByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, apperrors.NotFound("Post not found"))
		}
		return respondError(c, err)
	}

	records, err := h.commentRepository.GetCommentRecordsByPostID(postID)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, records)
}

// UpdateComment updates a comment; only its author may do so. Authorship
// is compared on Profile identity, the same comparison delete uses.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	commentID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.Validation("Invalid request payload"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, apperrors.Validation(err.Error()))
	}

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, apperrors.NotFound("Comment not found"))
		}
		return respondError(c, err)
	}

	if err := authz.CanModifyComment(actor.ID, comment.ProfileID); err != nil {
		return respondError(c, err)
	}

	comment.Content = req.Content

	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, comment)
}

// DeleteComment deletes a comment; only its author may do so, regardless
// of who owns the post
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	commentID, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	comment, err := h.commentRepository.GetCommentByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, apperrors.NotFound("Comment not found"))
		}
		return respondError(c, err)
	}

	if err := authz.CanModifyComment(actor.ID, comment.ProfileID); err != nil {
		return respondError(c, err)
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}
