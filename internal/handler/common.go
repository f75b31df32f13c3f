package handler // handler defines http handlers

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-network/internal/repository"
)

// dbTimeout bounds the duration of database work per request.
const dbTimeout = 5 * time.Second

// reqContext derives a bounded context from the incoming request so that
// caller cancellation and the timeout both propagate into store calls.
func reqContext(c echo.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request().Context(), dbTimeout)
}

// currentUserID extracts the authenticated user's id placed into the
// context by the JWTAuth middleware.
func currentUserID(c echo.Context) (uint64, error) {
	if v, ok := c.Get("user_id").(uint64); ok && v != 0 {
		return v, nil
	}
	return 0, errors.New("missing user_id in context")
}

// pathID parses a positive numeric path parameter.
func pathID(c echo.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, errors.New("invalid " + name)
	}
	return id, nil
}

// fail maps a repository error onto the HTTP taxonomy.  The mapping is
// decided once here: not-found sentinels become 404, ownership violations
// 403, duplicate email 409, self-follow 400, and anything unexpected is an
// opaque 500.
func fail(c echo.Context, err error) error {
	switch {
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrPostNotFound),
		errors.Is(err, repository.ErrCommentNotFound),
		errors.Is(err, repository.ErrLikeNotFound),
		errors.Is(err, repository.ErrFollowNotFound),
		errors.Is(err, repository.ErrFileNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": err.Error()})
	case errors.Is(err, repository.ErrForbidden):
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	case errors.Is(err, repository.ErrEmailExists):
		return c.JSON(http.StatusConflict, echo.Map{"error": "email already exists"})
	case errors.Is(err, repository.ErrSelfFollow):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "cannot follow yourself"})
	default:
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
