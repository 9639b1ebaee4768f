package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"github.com/lumora-app/backend/internal/apperrors"
	"github.com/lumora-app/backend/internal/repositories"
)

// NotificationHandler handles HTTP requests related to notifications
type NotificationHandler struct {
	notificationRepository repositories.NotificationRepository
	profileRepository      repositories.ProfileRepository
}

// NewNotificationHandler creates a new NotificationHandler
func NewNotificationHandler(notifRepo repositories.NotificationRepository, profileRepo repositories.ProfileRepository) *NotificationHandler {
	return &NotificationHandler{
		notificationRepository: notifRepo,
		profileRepository:      profileRepo,
	}
}

// RegisterNotificationRoutes registers notification-related routes
func (h *NotificationHandler) RegisterNotificationRoutes(g *echo.Group) {
	g.GET("/notifications", h.GetNotifications)
	g.PUT("/notifications/:id/read", h.MarkAsRead)
}

// GetNotifications retrieves the acting profile's notifications, newest first
func (h *NotificationHandler) GetNotifications(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	notifications, err := h.notificationRepository.GetNotificationsByRecipient(actor.ID)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, notifications)
}

// MarkAsRead marks one of the acting profile's notifications as read
func (h *NotificationHandler) MarkAsRead(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.notificationRepository.MarkAsRead(id, actor.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, apperrors.NotFound("Notification not found"))
		}
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, echo.Map{"read": true})
}
