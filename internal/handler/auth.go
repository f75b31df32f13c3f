package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-network/internal/auth"
	"github.com/iliyamo/social-network/internal/config"
	"github.com/iliyamo/social-network/internal/repository"
	"github.com/iliyamo/social-network/internal/utils"
)

// AuthHandler bundles dependencies for the authentication endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users repository.UserStore
}

func NewAuthHandler(cfg config.Config, users repository.UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a signed bearer token.  Unknown
// email and wrong password produce the identical response so the endpoint
// never discloses which one failed.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "email/password required"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	if !auth.VerifyPassword(u.PasswordHash, u.PasswordSalt, req.Password) {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}

	ttl := time.Duration(h.Cfg.TokenTTLDays) * 24 * time.Hour
	token, err := auth.NewAuthToken(h.Cfg.JWTSecret, h.Cfg.JWTIssuer, h.Cfg.JWTAudience, u.ID, ttl)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusOK, echo.Map{
		"user":  u.Summary(),
		"token": token,
	})
}

type changePasswordReq struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword replaces the caller's credential after re-verifying the
// current password.  The new password must satisfy the registration
// policy.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if !utils.ValidatePassword(req.NewPassword) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Your password is not valid. Make sure it is at least 8 characters long and contains one uppercase letter, one lowercase letter, one number and one special character ('@', '#', '$', '%', '^', '&', '+', '=', '!', '?')."})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	ok, err := auth.NewCredentialVerifier(h.Users).Verify(ctx, uid, req.CurrentPassword)
	if err != nil {
		return fail(c, err)
	}
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid credentials"})
	}
	if err := h.Users.UpdatePassword(ctx, uid, req.NewPassword); err != nil {
		return fail(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// Me returns the authenticated user's profile.
func (h *AuthHandler) Me(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Users.Profile(ctx, uid)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}
