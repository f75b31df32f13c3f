package middleware

import (
    "fmt"
    "net/http"
    "strconv"
    "time"

    "github.com/labstack/echo/v4"
    "github.com/redis/go-redis/v9"

    "github.com/iliyamo/social-network/internal/config"
)

// NewRateLimiter returns a fixed-window rate limiter for credential
// endpoints, keyed by client IP and route.  The counter lives in Redis so
// the limit holds across replicas.  When limiting is disabled or no Redis
// client is available the middleware is a pass-through.
func NewRateLimiter(cfg config.RateLimitConfig, rdb *redis.Client) echo.MiddlewareFunc {
    if !cfg.Enabled || rdb == nil {
        return func(next echo.HandlerFunc) echo.HandlerFunc {
            return func(c echo.Context) error { return next(c) }
        }
    }

    return func(next echo.HandlerFunc) echo.HandlerFunc {
        return func(c echo.Context) error {
            window := time.Now().Unix() / int64(cfg.Window.Seconds())
            key := fmt.Sprintf("%s:%s:%s:%d", cfg.Prefix, c.Path(), c.RealIP(), window)

            ctx := c.Request().Context()
            count, err := rdb.Incr(ctx, key).Result()
            if err != nil {
                // Redis trouble must not take the endpoint down.
                return next(c)
            }
            if count == 1 {
                _ = rdb.Expire(ctx, key, cfg.Window).Err()
            }
            if count > int64(cfg.Max) {
                c.Response().Header().Set("Retry-After", strconv.Itoa(int(cfg.Window.Seconds())))
                return c.JSON(http.StatusTooManyRequests, echo.Map{"error": "too many requests"})
            }
            return next(c)
        }
    }
}
