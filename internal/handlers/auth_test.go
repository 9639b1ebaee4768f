package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v4"

	"github.com/lumora-app/backend/internal/models"
	"github.com/lumora-app/backend/internal/repositories"
)

const testJWTSecret = "test-secret"

func TestSignupAndSignIn(t *testing.T) {
	db := newTestDB(t)
	h := NewAuthHandler(repositories.NewPostgresAccountRepository(db), nil, testJWTSecret)

	body := `{"email":"ann@example.com","password":"hunter22"}`
	rec := invoke(t, h.Signup, http.MethodPost, "/auth/signup", body, 0, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Passwords are stored hashed, never verbatim
	var account models.Account
	if err := db.Where("email = ?", "ann@example.com").First(&account).Error; err != nil {
		t.Fatalf("expected account created: %v", err)
	}
	if account.Password == "hunter22" || account.Password == "" {
		t.Error("password must be stored as a hash")
	}

	// Signing up with the same email again is a conflict
	rec = invoke(t, h.Signup, http.MethodPost, "/auth/signup", body, 0, nil)
	if rec.Code != http.StatusConflict {
		t.Errorf("expected 409 for duplicate email, got %d", rec.Code)
	}

	// Signing in returns a JWT carrying the account ID
	rec = invoke(t, h.SignIn, http.MethodPost, "/auth/signin", body, 0, nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 on signin, got %d: %s", rec.Code, rec.Body.String())
	}
	var tokenBody struct {
		Token string `json:"token"`
	}
	if err := json.Unmarshal(decode(t, rec).Data, &tokenBody); err != nil {
		t.Fatalf("failed to decode token response: %v", err)
	}

	claims := &models.JwtCustomClaims{}
	_, err := jwt.ParseWithClaims(tokenBody.Token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	if err != nil {
		t.Fatalf("token did not parse: %v", err)
	}
	if claims.AccountID != account.ID || claims.Email != "ann@example.com" {
		t.Errorf("unexpected claims %+v", claims)
	}
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	h := NewAuthHandler(repositories.NewPostgresAccountRepository(db), nil, testJWTSecret)

	rec := invoke(t, h.Signup, http.MethodPost, "/auth/signup", `{"email":"ann@example.com","password":"hunter22"}`, 0, nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("signup failed: %d", rec.Code)
	}

	rec = invoke(t, h.SignIn, http.MethodPost, "/auth/signin", `{"email":"ann@example.com","password":"wrong"}`, 0, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for wrong password, got %d", rec.Code)
	}

	rec = invoke(t, h.SignIn, http.MethodPost, "/auth/signin", `{"email":"ghost@example.com","password":"hunter22"}`, 0, nil)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 for unknown email, got %d", rec.Code)
	}
}

func TestFirebaseLoginUnconfigured(t *testing.T) {
	db := newTestDB(t)
	h := NewAuthHandler(repositories.NewPostgresAccountRepository(db), nil, testJWTSecret)

	rec := invoke(t, h.FirebaseLogin, http.MethodPost, "/auth/firebase-login", `{"idToken":"x"}`, 0, nil)
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("expected 503 when Firebase is not configured, got %d", rec.Code)
	}
}
