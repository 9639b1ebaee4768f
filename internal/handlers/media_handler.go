package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lumora-app/backend/internal/apperrors"
	"github.com/lumora-app/backend/internal/repositories"
)

// MediaHandler serves stored media bytes by key
type MediaHandler struct {
	mediaRepository repositories.MediaRepository
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaRepo repositories.MediaRepository) *MediaHandler {
	return &MediaHandler{mediaRepository: mediaRepo}
}

// RegisterMediaRoutes registers media-serving routes
func (h *MediaHandler) RegisterMediaRoutes(e *echo.Echo) {
	e.GET("/media/*", h.GetMedia)
}

// GetMedia streams the media stored under the requested key
func (h *MediaHandler) GetMedia(c echo.Context) error {
	key := c.Param("*")
	if key == "" {
		return respondError(c, apperrors.Validation("Media key is required"))
	}

	stream, contentType, err := h.mediaRepository.Open(c.Request().Context(), key)
	if err != nil {
		return respondError(c, apperrors.NotFound("Media not found"))
	}
	defer stream.Close()

	return c.Stream(http.StatusOK, contentType, stream)
}
