package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every token rejection: bad signature, wrong
// issuer or audience, expired or not yet valid, malformed input, missing
// or non-numeric subject.  Callers must not learn which one it was.
var ErrInvalidToken = errors.New("invalid token")

// AuthToken represents a signed JWT access token along with its expiry.
// The Token field contains the serialized JWT string, Exp the UTC
// expiration time.  It is presented as a bearer credential on every
// authenticated call.
type AuthToken struct {
	Token string    `json:"token"`
	Exp   time.Time `json:"expires_at"`
}

// NewAuthToken builds and signs an HS256 JWT asserting the given user's
// identity.  Claims: sub = decimal user id, iss/aud from configuration,
// iat/nbf = now, exp = now + ttl.
func NewAuthToken(secret, issuer, audience string, userID uint64, ttl time.Duration) (AuthToken, error) {
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"sub": strconv.FormatUint(userID, 10),
		"iss": issuer,
		"aud": audience,
		"iat": now.Unix(),
		"nbf": now.Unix(),
		"exp": exp.Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString([]byte(secret))
	if err != nil {
		return AuthToken{}, err
	}
	return AuthToken{Token: signed, Exp: exp}, nil
}

// ParseAuthToken verifies signature, issuer, audience and lifetime of a
// raw bearer token and returns the user id carried in the subject claim.
// Every failure, including garbage input, yields ErrInvalidToken.
func ParseAuthToken(secret, issuer, audience, raw string) (uint64, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	},
		jwt.WithValidMethods([]string{"HS256"}),
		jwt.WithIssuer(issuer),
		jwt.WithAudience(audience),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !tok.Valid {
		return 0, ErrInvalidToken
	}
	sub, err := tok.Claims.GetSubject()
	if err != nil || sub == "" {
		return 0, ErrInvalidToken
	}
	uid, err := strconv.ParseUint(sub, 10, 64)
	if err != nil || uid == 0 {
		return 0, ErrInvalidToken
	}
	return uid, nil
}

// ValidateAuthToken reports whether a raw token would be accepted.  It
// never panics on malformed input.
func ValidateAuthToken(secret, issuer, audience, raw string) bool {
	_, err := ParseAuthToken(secret, issuer, audience, raw)
	return err == nil
}
