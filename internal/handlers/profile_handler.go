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

// ProfileHandler handles HTTP requests related to profiles
type ProfileHandler struct {
	profileRepository repositories.ProfileRepository
	mediaRepository   repositories.MediaRepository
}

// NewProfileHandler creates a new ProfileHandler
func NewProfileHandler(profileRepo repositories.ProfileRepository, mediaRepo repositories.MediaRepository) *ProfileHandler {
	return &ProfileHandler{
		profileRepository: profileRepo,
		mediaRepository:   mediaRepo,
	}
}

// RegisterProfileRoutes registers profile-related routes
func (h *ProfileHandler) RegisterProfileRoutes(g *echo.Group) {
	g.POST("/profiles", h.CreateProfile)
	g.GET("/profiles", h.ListProfiles)
	g.GET("/profiles/:id", h.GetProfile)
	g.PUT("/profiles/:id", h.UpdateProfile)
	g.DELETE("/profiles/:id", h.DeleteProfile)
	g.POST("/profiles/:id/avatar", h.UploadAvatar)
}

// CreateProfile creates the profile for the authenticated account. The
// owner binding is taken from the actor, never from the payload, and at
// most one profile may exist per account.
func (h *ProfileHandler) CreateProfile(c echo.Context) error {
	accountID, err := actorAccountID(c)
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.profileRepository.GetProfileByAccountID(accountID); err == nil {
		return respondError(c, apperrors.Conflict("A profile already exists for this account"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, err)
	}

	var req models.CreateProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.Validation("Invalid request payload"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, apperrors.Validation(err.Error()))
	}

	if _, err := h.profileRepository.GetProfileByUsername(req.Username); err == nil {
		return respondError(c, apperrors.Conflict("Username is already taken"))
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return respondError(c, err)
	}

	profile := &models.Profile{
		AccountID: accountID,
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Pronouns:  req.Pronouns,
	}

	if err := h.profileRepository.CreateProfile(profile); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusCreated, profile)
}

// ListProfiles retrieves profiles, optionally filtered by username and
// bio substrings (case-insensitive, AND semantics). Reads are open to any
// authenticated account.
func (h *ProfileHandler) ListProfiles(c echo.Context) error {
	filter := models.ProfileFilter{
		Username: c.QueryParam("username"),
		Bio:      c.QueryParam("bio"),
	}

	profiles, err := h.profileRepository.GetProfiles(filter)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, profiles)
}

// GetProfile retrieves a profile by ID
func (h *ProfileHandler) GetProfile(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	profile, err := h.profileRepository.GetProfileByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, apperrors.NotFound("Profile not found"))
		}
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, profile)
}

// UpdateProfile updates a profile; only its owner may do so. Updates are
// partial: fields absent from (or empty in) the payload keep their
// current value, so a field cannot be cleared through this endpoint.
func (h *ProfileHandler) UpdateProfile(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	profile, err := h.profileRepository.GetProfileByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, apperrors.NotFound("Profile not found"))
		}
		return respondError(c, err)
	}

	if err := authz.CanModifyProfile(actor.ID, profile.ID); err != nil {
		return respondError(c, err)
	}

	var req models.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.Validation("Invalid request payload"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, apperrors.Validation(err.Error()))
	}

	if req.Username != "" && req.Username != profile.Username {
		if _, err := h.profileRepository.GetProfileByUsername(req.Username); err == nil {
			return respondError(c, apperrors.Conflict("Username is already taken"))
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, err)
		}
		profile.Username = req.Username
	}
	if req.FirstName != "" {
		profile.FirstName = req.FirstName
	}
	if req.LastName != "" {
		profile.LastName = req.LastName
	}
	if req.Bio != "" {
		profile.Bio = req.Bio
	}
	if req.Pronouns != "" {
		profile.Pronouns = req.Pronouns
	}

	if err := h.profileRepository.UpdateProfile(profile); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, profile)
}

// DeleteProfile deletes a profile and cascades to everything it owns;
// only the owner may do so
func (h *ProfileHandler) DeleteProfile(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	profile, err := h.profileRepository.GetProfileByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, apperrors.NotFound("Profile not found"))
		}
		return respondError(c, err)
	}

	if err := authz.CanModifyProfile(actor.ID, profile.ID); err != nil {
		return respondError(c, err)
	}

	if err := h.profileRepository.DeleteProfile(profile.ID); err != nil {
		return respondError(c, err)
	}

	return c.NoContent(http.StatusNoContent)
}

// UploadAvatar stores an avatar image for the profile in the media store
// and saves its key; only the owner may do so
func (h *ProfileHandler) UploadAvatar(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	id, err := pathID(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	profile, err := h.profileRepository.GetProfileByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, apperrors.NotFound("Profile not found"))
		}
		return respondError(c, err)
	}

	if err := authz.CanModifyProfile(actor.ID, profile.ID); err != nil {
		return respondError(c, err)
	}

	fileHeader, err := c.FormFile("avatar")
	if err != nil {
		return respondError(c, apperrors.Validation("Form file 'avatar' is required"))
	}

	src, err := fileHeader.Open()
	if err != nil {
		return respondError(c, err)
	}
	defer src.Close()

	key := utils.MediaKey(profile.Username, fileHeader.Filename)
	if err := h.mediaRepository.Put(c.Request().Context(), key, src, fileHeader.Header.Get("Content-Type")); err != nil {
		return respondError(c, err)
	}

	profile.AvatarKey = key
	if err := h.profileRepository.UpdateProfile(profile); err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, profile)
}
