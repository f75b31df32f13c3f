package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
    "net/http" // HTTP status codes for responses
    "strings"  // string utilities for prefix checking and trimming

    "github.com/labstack/echo/v4" // Echo framework used for defining middleware and handlers

    "github.com/iliyamo/social-network/internal/auth"   // token parsing and validation
    "github.com/iliyamo/social-network/internal/config" // signing secret, issuer and audience
)

// JWTAuth returns an Echo middleware that validates a Bearer access token
// and injects the authenticated user's id into the request context.  The
// token must carry the configured issuer and audience and a numeric
// subject; anything else is rejected with 401 before the handler runs.
// Handlers read the identity back via `c.Get("user_id")` as a uint64.
func JWTAuth(cfg config.Config) echo.MiddlewareFunc {
    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            // A valid header is "Bearer " followed by the JWT.  Absence of
            // the prefix means the call is unauthenticated.
            header := c.Request().Header.Get("Authorization")
            if !strings.HasPrefix(header, "Bearer ") {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
            }
            raw := strings.TrimPrefix(header, "Bearer ")

            // ParseAuthToken folds every failure mode (signature, issuer,
            // audience, lifetime, malformed claims) into one error so the
            // response never reveals why the token was rejected.
            uid, err := auth.ParseAuthToken(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience, raw)
            if err != nil {
                return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
            }

            c.Set("user_id", uid)
            return next(c)
        }
    }
}
