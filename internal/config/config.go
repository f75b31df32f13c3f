package config // package config loads application configuration from environment variables

import (
    "log"     // log is used to report configuration errors and halt execution
    "os"      // os provides access to environment variables
    "strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The token signing material (secret, issuer,
// audience) is read once at startup and treated as immutable for the
// lifetime of the process; key rotation is an external secret-management
// concern.
type Config struct {
    Env          string // application environment (e.g. "dev", "prod")
    Port         string // HTTP port to listen on
    DBUser       string // database username
    DBPass       string // database password (optional)
    DBHost       string // database host address
    DBPort       string // database port number
    DBName       string // database name
    JWTSecret    string // symmetric secret used to sign auth tokens
    JWTIssuer    string // issuer claim stamped on every token
    JWTAudience  string // audience claim stamped on every token
    TokenTTLDays int    // auth token time-to-live in days
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
    return Config{
        Env:          must("APP_ENV"),      // environment (dev/test/prod)
        Port:         must("APP_PORT"),     // port to bind the HTTP server
        DBUser:       must("DB_USER"),      // database user
        DBPass:       os.Getenv("DB_PASS"), // database password (empty allowed)
        DBHost:       must("DB_HOST"),      // database host
        DBPort:       must("DB_PORT"),      // database port
        DBName:       must("DB_NAME"),      // database name
        JWTSecret:    must("JWT_SECRET"),   // secret used for signing auth tokens
        JWTIssuer:    getenv("JWT_ISSUER", "SocialNetwork.Issuer"),     // issuer claim on every token
        JWTAudience:  getenv("JWT_AUDIENCE", "SocialNetwork.Audience"), // audience claim on every token
        TokenTTLDays: getenvInt("TOKEN_TTL_DAYS", 30),                  // TTL for auth tokens in days
    }
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
    v, ok := os.LookupEnv(key)
    if !ok || v == "" {
        log.Fatalf("missing required env var: %s", key)
    }
    return v
}

// getenvInt returns the integer value of an optional environment variable,
// or the provided default when the variable is unset.  A set but
// non-numeric value is still fatal rather than silently defaulted.
func getenvInt(key string, def int) int {
    s := os.Getenv(key)
    if s == "" {
        return def
    }
    n, err := strconv.Atoi(s)
    if err != nil {
        log.Fatalf("invalid int for %s: %q", key, s)
    }
    return n
}

// getenv returns the value of an optional environment variable, or the
// provided default when the variable is unset or empty.
func getenv(key, def string) string {
    if v := os.Getenv(key); v != "" {
        return v
    }
    return def
}
