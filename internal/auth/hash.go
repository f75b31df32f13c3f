package auth

import (
	"crypto/rand"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/base64"

	"golang.org/x/crypto/pbkdf2"
)

// Password digests are PBKDF2-HMAC-SHA512 with a per-user random salt.
// The parameters are part of the stored-credential format: changing any of
// them invalidates every digest already in the users table.
const (
	saltSize       = 16
	iterationCount = 100
	keySize        = 32
)

// HashedPassword carries a freshly generated salt and the digest derived
// from it, both base64 encoded for storage.
type HashedPassword struct {
	Salt   string
	Digest string
}

// GenerateHash draws a random salt and derives the digest for the given
// password.  The same salt and password always reproduce the same digest;
// distinct salts make equal passwords produce different digests.
func GenerateHash(password string) (HashedPassword, error) {
	salt := make([]byte, saltSize)
	if _, err := rand.Read(salt); err != nil {
		return HashedPassword{}, err
	}
	digest := pbkdf2.Key([]byte(password), salt, iterationCount, keySize, sha512.New)
	return HashedPassword{
		Salt:   base64.StdEncoding.EncodeToString(salt),
		Digest: base64.StdEncoding.EncodeToString(digest),
	}, nil
}

// VerifyPassword recomputes the digest for the candidate password under the
// stored salt and compares it against the stored digest in constant time.
// Any decoding failure counts as a mismatch.
func VerifyPassword(storedDigest, storedSalt, password string) bool {
	salt, err := base64.StdEncoding.DecodeString(storedSalt)
	if err != nil {
		return false
	}
	want, err := base64.StdEncoding.DecodeString(storedDigest)
	if err != nil {
		return false
	}
	got := pbkdf2.Key([]byte(password), salt, iterationCount, keySize, sha512.New)
	return subtle.ConstantTimeCompare(got, want) == 1
}
