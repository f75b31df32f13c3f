package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/social-network/internal/model"
)

// FollowRepo maintains the directed follow edges in the 'follows' table.
// The composite primary key (follower_id, followee_id) is the only
// guarantee against duplicate edges; a losing concurrent insert is folded
// into the idempotent success path.
type FollowRepo struct{ DB *sql.DB }

func NewFollowRepo(db *sql.DB) *FollowRepo { return &FollowRepo{DB: db} }

// Add creates the follower -> followee edge.  Self-loops are rejected and
// both endpoints must exist.  Inserting an edge that is already present is
// a no-op reported as success.
func (r *FollowRepo) Add(ctx context.Context, followerID, followeeID uint64) error {
	if followerID == followeeID {
		return ErrSelfFollow
	}
	for _, id := range []uint64{followerID, followeeID} {
		var one int
		err := r.DB.QueryRowContext(ctx,
			"SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&one)
		if err == sql.ErrNoRows {
			return ErrUserNotFound
		}
		if err != nil {
			return err
		}
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO follows (follower_id, followee_id) VALUES (?,?)",
		followerID, followeeID)
	if isDuplicateKey(err) {
		return nil
	}
	return err
}

// Remove deletes the edge, reporting ErrFollowNotFound when it was not
// there.
func (r *FollowRepo) Remove(ctx context.Context, followerID, followeeID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM follows WHERE follower_id=? AND followee_id=?",
		followerID, followeeID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// Followers returns the users following userID.  Ordering by user id keeps
// repeated calls stable; limit <= 0 means no truncation.
func (r *FollowRepo) Followers(ctx context.Context, userID uint64, limit int) ([]model.UserSummary, error) {
	return r.adjacent(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.email, u.avatar_file_id
		 FROM follows f JOIN users u ON u.id = f.follower_id
		 WHERE f.followee_id = ? ORDER BY u.id`, userID, limit)
}

// Following returns the users that userID follows.
func (r *FollowRepo) Following(ctx context.Context, userID uint64, limit int) ([]model.UserSummary, error) {
	return r.adjacent(ctx,
		`SELECT u.id, u.first_name, u.last_name, u.email, u.avatar_file_id
		 FROM follows f JOIN users u ON u.id = f.followee_id
		 WHERE f.follower_id = ? ORDER BY u.id`, userID, limit)
}

// Has probes the composite key for an existing edge.
func (r *FollowRepo) Has(ctx context.Context, followerID, followeeID uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM follows WHERE follower_id=? AND followee_id=? LIMIT 1",
		followerID, followeeID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *FollowRepo) adjacent(ctx context.Context, query string, userID uint64, limit int) ([]model.UserSummary, error) {
	args := []interface{}{userID}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSummaries(rows)
}
