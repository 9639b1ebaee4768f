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

const followCountTTL = 5 * time.Minute

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository       repositories.FollowRepository
	profileRepository      repositories.ProfileRepository
	notificationRepository repositories.NotificationRepository
	countCache             *cache.Cache
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, profileRepo repositories.ProfileRepository, notifRepo repositories.NotificationRepository, countCache *cache.Cache) *FollowHandler {
	return &FollowHandler{
		followRepository:       followRepo,
		profileRepository:      profileRepo,
		notificationRepository: notifRepo,
		countCache:             countCache,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/profiles/:id/follow", h.FollowProfile)
	g.DELETE("/profiles/:id/follow", h.UnfollowProfile)
	g.GET("/profiles/:id/followers", h.GetFollowers)
	g.GET("/profiles/:id/following", h.GetFollowing)
	g.GET("/profiles/:id/follow-counts", h.GetFollowCounts)
}

// target loads the target profile or returns a NotFound application error
func (h *FollowHandler) target(c echo.Context) (*models.Profile, error) {
	id, err := pathID(c, "id")
	if err != nil {
		return nil, err
	}
	profile, err := h.profileRepository.GetProfileByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound("Profile not found")
		}
		return nil, err
	}
	return profile, nil
}

// FollowProfile follows another profile. The edge insert is idempotent at
// the store; a pre-existing edge is reported as a conflict here.
func (h *FollowHandler) FollowProfile(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	target, err := h.target(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := authz.CheckNotSelf(actor.ID, target.ID, "follow"); err != nil {
		return respondError(c, err)
	}

	created, err := h.followRepository.CreateFollow(&models.Follow{
		FollowerID: actor.ID,
		FollowedID: target.ID,
	})
	if err != nil {
		return respondError(c, err)
	}
	if !created {
		return respondError(c, apperrors.Conflict("You are already following this profile"))
	}

	h.countCache.Delete(cache.FollowerCountKey(target.ID), cache.FollowingCountKey(actor.ID))

	if h.notificationRepository != nil {
		notif := &models.Notification{
			Type:        "follow",
			ActorID:     actor.ID,
			RecipientID: target.ID,
			TargetID:    actor.ID,
			TargetType:  "profile",
			Message:     actor.Username + " started following you",
		}
		h.notificationRepository.CreateNotification(notif)
	}

	return respondOK(c, http.StatusOK, echo.Map{"following": true})
}

// UnfollowProfile unfollows another profile. Removing an edge that does
// not exist fails the precondition rather than silently succeeding.
func (h *FollowHandler) UnfollowProfile(c echo.Context) error {
	actor, err := actorProfile(c, h.profileRepository)
	if err != nil {
		return respondError(c, err)
	}

	target, err := h.target(c)
	if err != nil {
		return respondError(c, err)
	}

	if err := authz.CheckNotSelf(actor.ID, target.ID, "unfollow"); err != nil {
		return respondError(c, err)
	}

	if err := h.followRepository.DeleteFollow(actor.ID, target.ID); err != nil {
		return respondError(c, err)
	}

	h.countCache.Delete(cache.FollowerCountKey(target.ID), cache.FollowingCountKey(actor.ID))

	return respondOK(c, http.StatusOK, echo.Map{"following": false})
}

// GetFollowers retrieves all followers of a profile
func (h *FollowHandler) GetFollowers(c echo.Context) error {
	target, err := h.target(c)
	if err != nil {
		return respondError(c, err)
	}

	followers, err := h.followRepository.GetFollowers(target.ID)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, followers)
}

// GetFollowing retrieves all profiles a profile is following
func (h *FollowHandler) GetFollowing(c echo.Context) error {
	target, err := h.target(c)
	if err != nil {
		return respondError(c, err)
	}

	following, err := h.followRepository.GetFollowing(target.ID)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, following)
}

// GetFollowCounts retrieves a profile's follower/following counts,
// served from the counter cache when warm
func (h *FollowHandler) GetFollowCounts(c echo.Context) error {
	target, err := h.target(c)
	if err != nil {
		return respondError(c, err)
	}

	followers, err := h.countCache.GetCount(cache.FollowerCountKey(target.ID))
	if err != nil {
		if followers, err = h.followRepository.GetFollowersCount(target.ID); err != nil {
			return respondError(c, err)
		}
		h.countCache.SetCount(cache.FollowerCountKey(target.ID), followers, followCountTTL)
	}

	following, err := h.countCache.GetCount(cache.FollowingCountKey(target.ID))
	if err != nil {
		if following, err = h.followRepository.GetFollowingCount(target.ID); err != nil {
			return respondError(c, err)
		}
		h.countCache.SetCount(cache.FollowingCountKey(target.ID), following, followCountTTL)
	}

	return respondOK(c, http.StatusOK, echo.Map{
		"profile_id": target.ID,
		"followers":  followers,
		"following":  following,
	})
}
