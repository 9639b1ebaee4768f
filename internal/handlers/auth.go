package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"firebase.google.com/go/v4/auth"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/lumora-app/backend/internal/apperrors"
	"github.com/lumora-app/backend/internal/models"
	"github.com/lumora-app/backend/internal/repositories"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	accountRepository repositories.AccountRepository
	firebaseAuth      *auth.Client
	jwtSecret         string
}

// NewAuthHandler creates a new AuthHandler. firebaseAuthClient may be nil
// when Firebase is not configured; the firebase-login route then rejects.
func NewAuthHandler(accountRepo repositories.AccountRepository, firebaseAuthClient *auth.Client, jwtSecret string) *AuthHandler {
	return &AuthHandler{
		accountRepository: accountRepo,
		firebaseAuth:      firebaseAuthClient,
		jwtSecret:         jwtSecret,
	}
}

// RegisterAuthRoutes registers authentication-related routes
func (h *AuthHandler) RegisterAuthRoutes(g *echo.Group) {
	g.POST("/signup", h.Signup)
	g.POST("/signin", h.SignIn)
	g.POST("/firebase-login", h.FirebaseLogin)
}

// Signup handles local account registration with email and password
func (h *AuthHandler) Signup(c echo.Context) error {
	var req models.SignupRequest

	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.Validation("Invalid request payload"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, apperrors.Validation(err.Error()))
	}

	// Check if an account with this email already exists
	if _, err := h.accountRepository.GetAccountByEmail(req.Email); err == nil {
		return respondError(c, apperrors.Conflict("An account with this email is already registered"))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return respondError(c, err)
	}

	account := &models.Account{
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	if err := h.accountRepository.CreateAccount(account); err != nil {
		return respondError(c, err)
	}

	token, err := h.generateJWT(account)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusCreated, echo.Map{"token": token})
}

// SignIn handles local authentication with email and password
func (h *AuthHandler) SignIn(c echo.Context) error {
	var req models.SigninRequest

	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.Validation("Invalid request payload"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, apperrors.Validation(err.Error()))
	}

	account, err := h.accountRepository.GetAccountByEmail(req.Email)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	token, err := h.generateJWT(account)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, echo.Map{"token": token})
}

// FirebaseLogin verifies a Firebase ID token, finds or creates the
// matching account, and issues a local JWT
func (h *AuthHandler) FirebaseLogin(c echo.Context) error {
	if h.firebaseAuth == nil {
		return echo.NewHTTPError(http.StatusServiceUnavailable, "Firebase authentication is not configured")
	}

	var req models.FirebaseLoginRequest

	if err := c.Bind(&req); err != nil {
		return respondError(c, apperrors.Validation("Invalid request payload"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, apperrors.Validation(err.Error()))
	}

	token, err := h.firebaseAuth.VerifyIDToken(context.Background(), req.IDToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Firebase ID token")
	}

	firebaseUID := token.UID
	email, _ := token.Claims["email"].(string)

	account, err := h.accountRepository.GetAccountByFirebaseUID(firebaseUID)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return respondError(c, err)
		}
		// Not known by UID; link by email or create a fresh account
		account, err = h.accountRepository.GetAccountByEmail(email)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return respondError(c, err)
			}
			account = &models.Account{Email: email, FirebaseUID: &firebaseUID}
			if err := h.accountRepository.CreateAccount(account); err != nil {
				return respondError(c, err)
			}
		} else {
			account.FirebaseUID = &firebaseUID
			if err := h.accountRepository.UpdateAccount(account); err != nil {
				return respondError(c, err)
			}
		}
	}

	localJWT, err := h.generateJWT(account)
	if err != nil {
		return respondError(c, err)
	}

	return respondOK(c, http.StatusOK, echo.Map{"token": localJWT})
}

// generateJWT generates a JWT token for a given account
func (h *AuthHandler) generateJWT(account *models.Account) (string, error) {
	claims := &models.JwtCustomClaims{
		AccountID: account.ID,
		Email:     account.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(h.jwtSecret))
}
