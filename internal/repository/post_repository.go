package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/social-network/internal/model"
)

// PostRepo persists posts and computes the personalized feed.  Posts are
// flat rows joined to their author at query time; like and comment totals
// are counted live so they can never drift.
type PostRepo struct{ DB *sql.DB }

func NewPostRepo(db *sql.DB) *PostRepo { return &PostRepo{DB: db} }

// postViewSelect is the shared projection for post read models.  The
// correlated subqueries derive the engagement counters per row.
const postViewSelect = `
	SELECT p.id, p.text, p.created_at,
	       (SELECT COUNT(*) FROM post_likes l WHERE l.post_id = p.id),
	       (SELECT COUNT(*) FROM post_comments c WHERE c.post_id = p.id),
	       u.id, u.first_name, u.last_name, u.email, u.avatar_file_id
	FROM posts p
	JOIN users u ON u.id = p.author_id`

func scanPostView(s interface {
	Scan(dest ...interface{}) error
}) (model.PostView, error) {
	var (
		v      model.PostView
		avatar sql.NullInt64
	)
	err := s.Scan(&v.ID, &v.Text, &v.CreatedAt, &v.TotalLikes, &v.TotalComments,
		&v.Author.ID, &v.Author.FirstName, &v.Author.LastName, &v.Author.Email, &avatar)
	if err != nil {
		return model.PostView{}, err
	}
	if avatar.Valid {
		id := uint64(avatar.Int64)
		v.Author.AvatarFileID = &id
	}
	return v, nil
}

// Create inserts a post and returns its view.
func (r *PostRepo) Create(ctx context.Context, authorID uint64, text string) (model.PostView, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO posts (author_id, text) VALUES (?,?)", authorID, text)
	if err != nil {
		return model.PostView{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.PostView{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByID returns a single post view.
func (r *PostRepo) GetByID(ctx context.Context, postID uint64) (model.PostView, error) {
	v, err := scanPostView(r.DB.QueryRowContext(ctx,
		postViewSelect+" WHERE p.id=? LIMIT 1", postID))
	if err == sql.ErrNoRows {
		return model.PostView{}, ErrPostNotFound
	}
	return v, err
}

// ListByAuthor returns all posts written by one user, newest first.
func (r *PostRepo) ListByAuthor(ctx context.Context, authorID uint64) ([]model.PostView, error) {
	return r.queryViews(ctx,
		postViewSelect+" WHERE p.author_id=? ORDER BY p.id DESC", authorID)
}

// Feed returns the personalized feed for a user: their own posts plus the
// posts of everyone they follow, newest first.  The predicate form (OR +
// IN subquery) yields each post at most once even if the graph held a
// redundant edge, and descending post id stands in for recency since ids
// are monotonically increasing at creation.  The feed is recomputed on
// every call; no caching or pagination here.
func (r *PostRepo) Feed(ctx context.Context, userID uint64) ([]model.PostView, error) {
	return r.queryViews(ctx, postViewSelect+`
		WHERE p.author_id = ?
		   OR p.author_id IN (SELECT f.followee_id FROM follows f WHERE f.follower_id = ?)
		ORDER BY p.id DESC`, userID, userID)
}

// Delete removes a post together with its comments and likes in one
// transaction.  Only the author may delete; everyone else gets
// ErrForbidden.
func (r *PostRepo) Delete(ctx context.Context, postID, requesterID uint64) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var authorID uint64
	err = tx.QueryRowContext(ctx,
		"SELECT author_id FROM posts WHERE id=? FOR UPDATE", postID).Scan(&authorID)
	if err == sql.ErrNoRows {
		return ErrPostNotFound
	}
	if err != nil {
		return err
	}
	if authorID != requesterID {
		return ErrForbidden
	}

	if _, err = tx.ExecContext(ctx, "DELETE FROM post_comments WHERE post_id=?", postID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM post_likes WHERE post_id=?", postID); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM posts WHERE id=?", postID); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

func (r *PostRepo) queryViews(ctx context.Context, query string, args ...interface{}) ([]model.PostView, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.PostView{}
	for rows.Next() {
		v, err := scanPostView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
