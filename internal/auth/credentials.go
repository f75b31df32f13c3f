package auth

import (
	"context"

	"github.com/iliyamo/social-network/internal/model"
)

// UserLookup is the slice of the user store the verifier needs.  The
// MySQL user repository satisfies it.
type UserLookup interface {
	GetByID(ctx context.Context, id uint64) (model.User, error)
}

// CredentialVerifier checks a password against a user's stored salted
// digest.
type CredentialVerifier struct {
	Users UserLookup
}

func NewCredentialVerifier(users UserLookup) *CredentialVerifier {
	return &CredentialVerifier{Users: users}
}

// Verify loads the stored salt and digest for the user and recomputes the
// digest from the candidate password.  A missing user is an error; a
// wrong password is simply false.
func (v *CredentialVerifier) Verify(ctx context.Context, userID uint64, password string) (bool, error) {
	u, err := v.Users.GetByID(ctx, userID)
	if err != nil {
		return false, err
	}
	return VerifyPassword(u.PasswordHash, u.PasswordSalt, password), nil
}
