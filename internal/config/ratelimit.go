package config

import (
    "strconv"
    "time"
)

// RateLimitConfig defines settings for the credential-endpoint rate limiter.
// When Enabled is false or no Redis client is configured, limiting is
// disabled.  Max is the number of requests allowed per Window for a single
// client key.  Prefix namespaces the Redis keys.
type RateLimitConfig struct {
    Enabled bool
    Max     int
    Window  time.Duration
    Prefix  string
}

// LoadRateLimitConfig reads environment variables to build a
// RateLimitConfig.  Defaults allow 10 attempts per minute.
func LoadRateLimitConfig() RateLimitConfig {
    return RateLimitConfig{
        Enabled: getenv("RATE_LIMIT_ENABLED", "true") == "true",
        Max:     atoi(getenv("RATE_LIMIT_MAX", "10")),
        Window:  parseDur(getenv("RATE_LIMIT_WINDOW", "1m")),
        Prefix:  getenv("RATE_LIMIT_PREFIX", "ratelimit"),
    }
}

func atoi(s string) int {
    i, _ := strconv.Atoi(s)
    return i
}

func parseDur(s string) time.Duration {
    d, err := time.ParseDuration(s)
    if err != nil {
        return time.Minute
    }
    return d
}
