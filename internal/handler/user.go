package handler

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-network/internal/auth"
	"github.com/iliyamo/social-network/internal/config"
	"github.com/iliyamo/social-network/internal/model"
	"github.com/iliyamo/social-network/internal/repository"
	"github.com/iliyamo/social-network/internal/utils"
)

// maxAvatarBytes caps avatar uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

// UserHandler bundles the stores behind the user, follow and file
// endpoints.
type UserHandler struct {
	Cfg     config.Config
	Users   repository.UserStore
	Follows repository.SocialGraphStore
	Posts   repository.PostStore
	Files   repository.FileStore
}

func NewUserHandler(cfg config.Config, users repository.UserStore, follows repository.SocialGraphStore, posts repository.PostStore, files repository.FileStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: users, Follows: follows, Posts: posts, Files: files}
}

type registerReq struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Register creates a user and returns the profile together with a signed
// token so the client is logged in immediately.
func (h *UserHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if !utils.ValidateEmail(req.Email) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Your email is not valid. Please, check it for correctness."})
	}
	if !utils.ValidatePassword(req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Your password is not valid. Make sure it is at least 8 characters long and contains one uppercase letter, one lowercase letter, one number and one special character ('@', '#', '$', '%', '^', '&', '+', '=', '!', '?')."})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	u, err := h.Users.Create(ctx, strings.TrimSpace(req.FirstName), strings.TrimSpace(req.LastName), req.Email, req.Password)
	if err != nil {
		return fail(c, err)
	}

	ttl := time.Duration(h.Cfg.TokenTTLDays) * 24 * time.Hour
	token, err := auth.NewAuthToken(h.Cfg.JWTSecret, h.Cfg.JWTIssuer, h.Cfg.JWTAudience, u.ID, ttl)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "issue token failed"})
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"user":  u.Summary(),
		"token": token,
	})
}

// List returns summaries of all users.
func (h *UserHandler) List(c echo.Context) error {
	ctx, cancel := reqContext(c)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}

// Get returns one user's profile with derived follower counts.
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	p, err := h.Users.Profile(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, p)
}

// ListPosts lists the posts written by a user.
func (h *UserHandler) ListPosts(c echo.Context) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if ok, err := h.Users.Exists(ctx, id); err != nil {
		return fail(c, err)
	} else if !ok {
		return fail(c, repository.ErrUserNotFound)
	}
	posts, err := h.Posts.ListByAuthor(ctx, id)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, posts)
}

// Followers lists the users following the given user, optionally truncated
// by ?limit=.
func (h *UserHandler) Followers(c echo.Context) error {
	return h.adjacency(c, h.Follows.Followers)
}

// Following lists the users the given user follows.
func (h *UserHandler) Following(c echo.Context) error {
	return h.adjacency(c, h.Follows.Following)
}

// Follow creates a follow edge from the authenticated user to the target.
// The :userId path segment must name the caller; nobody follows on behalf
// of someone else.  Repeating an existing follow succeeds without creating
// a duplicate.
func (h *UserHandler) Follow(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	pathUID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if pathUID != uid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot follow as another user"})
	}
	target, err := pathID(c, "otherId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Follows.Add(ctx, uid, target); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"following": true})
}

// Unfollow removes the follow edge from the authenticated user to the
// target, under the same path-identity rule as Follow.
func (h *UserHandler) Unfollow(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	pathUID, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	if pathUID != uid {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot unfollow as another user"})
	}
	target, err := pathID(c, "otherId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if err := h.Follows.Remove(ctx, uid, target); err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"following": false})
}

// HasFollow reports whether userId follows otherId.
func (h *UserHandler) HasFollow(c echo.Context) error {
	follower, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	followee, err := pathID(c, "otherId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	ok, err := h.Follows.Has(ctx, follower, followee)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{"follows": ok})
}

// UploadAvatar replaces the authenticated user's avatar with the uploaded
// multipart file.  The previous blob is removed in the same transaction.
func (h *UserHandler) UploadAvatar(c echo.Context) error {
	uid, err := currentUserID(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	fh, err := c.FormFile("file")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file is required"})
	}
	if fh.Size > maxAvatarBytes {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "file too large"})
	}
	src, err := fh.Open()
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable file"})
	}
	defer src.Close()
	content, err := io.ReadAll(io.LimitReader(src, maxAvatarBytes))
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unreadable file"})
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	fileID, err := h.Users.ReplaceAvatar(ctx, uid, model.File{
		FileName:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusCreated, echo.Map{"avatar_file_id": fileID})
}

func (h *UserHandler) adjacency(c echo.Context, list func(ctx context.Context, userID uint64, limit int) ([]model.UserSummary, error)) error {
	id, err := pathID(c, "userId")
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	}
	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid limit"})
		}
		limit = n
	}

	ctx, cancel := reqContext(c)
	defer cancel()

	if ok, err := h.Users.Exists(ctx, id); err != nil {
		return fail(c, err)
	} else if !ok {
		return fail(c, repository.ErrUserNotFound)
	}
	users, err := list(ctx, id, limit)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(http.StatusOK, users)
}
