package auth

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/social-network/internal/model"
)

var errNoUser = errors.New("no such user")

// lookupMap is a UserLookup backed by a map.
type lookupMap map[uint64]model.User

func (m lookupMap) GetByID(_ context.Context, id uint64) (model.User, error) {
	u, ok := m[id]
	if !ok {
		return model.User{}, errNoUser
	}
	return u, nil
}

func TestCredentialVerifier(t *testing.T) {
	h, err := GenerateHash("Sup3rSecret!")
	if err != nil {
		t.Fatalf("GenerateHash: %v", err)
	}
	v := NewCredentialVerifier(lookupMap{
		1: {ID: 1, PasswordHash: h.Digest, PasswordSalt: h.Salt},
	})

	ok, err := v.Verify(context.Background(), 1, "Sup3rSecret!")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = v.Verify(context.Background(), 1, "WrongPass1!")
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}

	if _, err := v.Verify(context.Background(), 2, "Sup3rSecret!"); !errors.Is(err, errNoUser) {
		t.Errorf("missing user: err = %v, want errNoUser", err)
	}
}
