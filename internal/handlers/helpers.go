package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/lumora-app/backend/internal/apperrors"
	"github.com/lumora-app/backend/internal/middleware"
	"github.com/lumora-app/backend/internal/models"
	"github.com/lumora-app/backend/internal/repositories"
	"github.com/lumora-app/backend/pkg/logging"
)

var validate = validator.New()

// respondOK writes the success envelope
func respondOK(c echo.Context, status int, payload interface{}) error {
	return c.JSON(status, echo.Map{"success": true, "data": payload})
}

// respondError writes the failure envelope with a stable error code.
// Unknown errors are logged and reported as internal.
func respondError(c echo.Context, err error) error {
	// Echo-level errors (authentication) already carry their status
	var httpErr *echo.HTTPError
	if errors.As(err, &httpErr) {
		return c.JSON(httpErr.Code, echo.Map{
			"success":       false,
			"error_code":    strings.ReplaceAll(strings.ToLower(http.StatusText(httpErr.Code)), " ", "_"),
			"error_message": fmt.Sprint(httpErr.Message),
		})
	}

	kind := apperrors.KindOf(err)
	message := err.Error()

	if kind == apperrors.KindInternal {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			kind = apperrors.KindNotFound
			message = "Record not found"
		} else {
			logging.GetLogger().Error("request failed", zap.Error(err), zap.String("path", c.Path()))
			message = "Internal server error"
		}
	}

	return c.JSON(kind.HTTPStatus(), echo.Map{
		"success":       false,
		"error_code":    kind.Code(),
		"error_message": message,
	})
}

// actorAccountID extracts the authenticated account ID set by the JWT middleware
func actorAccountID(c echo.Context) (uint, error) {
	id, ok := c.Get(middleware.ContextAccountIDKey).(uint)
	if !ok || id == 0 {
		return 0, echo.NewHTTPError(http.StatusUnauthorized, "Account not authenticated")
	}
	return id, nil
}

// actorProfile resolves the acting Profile for the authenticated account.
// Everything below the handler layer receives this identity explicitly.
func actorProfile(c echo.Context, profiles repositories.ProfileRepository) (*models.Profile, error) {
	accountID, err := actorAccountID(c)
	if err != nil {
		return nil, err
	}
	profile, err := profiles.GetProfileByAccountID(accountID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.Forbidden("No profile exists for this account")
		}
		return nil, err
	}
	return profile, nil
}

// pathID parses the named path parameter as an unsigned ID
func pathID(c echo.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, apperrors.Newf(apperrors.KindValidation, "Invalid %s", name)
	}
	return uint(id), nil
}

// pathIDValue parses a raw string as an unsigned ID
func pathIDValue(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperrors.Validation("Invalid ID")
	}
	return uint(id), nil
}
