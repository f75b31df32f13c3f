package repository

import (
	"context"

	"github.com/iliyamo/social-network/internal/model"
)

// Capability interfaces for the stores.  Handlers depend on these rather
// than on the concrete MySQL types so tests can substitute in-memory
// implementations.

// UserStore manages user records and avatar references.
type UserStore interface {
	Create(ctx context.Context, firstName, lastName, email, password string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	GetByEmail(ctx context.Context, email string) (model.User, error)
	Exists(ctx context.Context, id uint64) (bool, error)
	List(ctx context.Context) ([]model.UserSummary, error)
	Profile(ctx context.Context, id uint64) (model.Profile, error)
	ReplaceAvatar(ctx context.Context, userID uint64, file model.File) (uint64, error)
	UpdatePassword(ctx context.Context, userID uint64, password string) error
}

// SocialGraphStore maintains directed follow edges.
type SocialGraphStore interface {
	Add(ctx context.Context, followerID, followeeID uint64) error
	Remove(ctx context.Context, followerID, followeeID uint64) error
	Followers(ctx context.Context, userID uint64, limit int) ([]model.UserSummary, error)
	Following(ctx context.Context, userID uint64, limit int) ([]model.UserSummary, error)
	Has(ctx context.Context, followerID, followeeID uint64) (bool, error)
}

// PostStore creates, reads and deletes posts, and aggregates the
// personalized feed.
type PostStore interface {
	Create(ctx context.Context, authorID uint64, text string) (model.PostView, error)
	GetByID(ctx context.Context, postID uint64) (model.PostView, error)
	ListByAuthor(ctx context.Context, authorID uint64) ([]model.PostView, error)
	Feed(ctx context.Context, userID uint64) ([]model.PostView, error)
	Delete(ctx context.Context, postID, requesterID uint64) error
}

// EngagementLedger records likes and comments with uniqueness and
// ownership constraints.
type EngagementLedger interface {
	AddLike(ctx context.Context, postID, userID uint64) (model.LikeView, error)
	RemoveLike(ctx context.Context, postID, userID uint64) error
	Likes(ctx context.Context, postID uint64) ([]model.LikeView, error)
	AddComment(ctx context.Context, postID, authorID uint64, text string) (model.CommentView, error)
	Comments(ctx context.Context, postID uint64) ([]model.CommentView, error)
	RemoveComment(ctx context.Context, commentID, postID, requesterID uint64) error
}

// FileStore serves stored blobs by id.
type FileStore interface {
	GetByID(ctx context.Context, id uint64) (model.File, error)
}
