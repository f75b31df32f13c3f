// Package repository defines the data access layer and the sentinel error
// taxonomy shared across repositories.  Handlers translate these values
// into protocol status codes and must never leak any other failure detail:
// everything that is not one of these sentinels is reported as an opaque
// internal error.
package repository

import (
	"errors"
	"strings"
)

// ErrForbidden is returned when the caller attempts a mutation on a
// resource owned by someone else.  Handlers translate this into 403.
var ErrForbidden = errors.New("forbidden")

// ErrSelfFollow is returned when a user attempts to follow themselves.
var ErrSelfFollow = errors.New("cannot follow yourself")

// ErrEmailExists is returned when registering with an email that is
// already taken.  Handlers translate this into 409.
var ErrEmailExists = errors.New("email already exists")

// Not-found sentinels, one per aggregate.  Handlers translate them into
// 404.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrCommentNotFound = errors.New("comment not found")
	ErrLikeNotFound    = errors.New("like not found")
	ErrFollowNotFound  = errors.New("follow not found")
	ErrFileNotFound    = errors.New("file not found")
)

// isDuplicateKey reports whether a MySQL error is a duplicate-key
// violation (error 1062).  Concurrent duplicate inserts on follows and
// post_likes are resolved through this check rather than application-level
// locking.
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
