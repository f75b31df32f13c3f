package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/social-network/internal/model"
)

// EngagementRepo records likes and comments.  Likes are unique per
// (post_id, user_id); the table constraint settles concurrent duplicate
// inserts and the repo reports the surviving row as the successful
// outcome.  Comment removal is ownership-checked here so no call site can
// forget it.
type EngagementRepo struct{ DB *sql.DB }

func NewEngagementRepo(db *sql.DB) *EngagementRepo { return &EngagementRepo{DB: db} }

const likeViewSelect = `
	SELECT l.id, l.post_id, l.liked_at,
	       u.id, u.first_name, u.last_name, u.email, u.avatar_file_id
	FROM post_likes l
	JOIN users u ON u.id = l.user_id`

const commentViewSelect = `
	SELECT c.id, c.post_id, c.text, c.created_at,
	       u.id, u.first_name, u.last_name, u.email, u.avatar_file_id
	FROM post_comments c
	JOIN users u ON u.id = c.author_id`

// AddLike records that a user likes a post.  Liking an absent post is
// ErrPostNotFound; liking a post twice returns the existing row unchanged.
func (r *EngagementRepo) AddLike(ctx context.Context, postID, userID uint64) (model.LikeView, error) {
	if err := r.requirePost(ctx, postID); err != nil {
		return model.LikeView{}, err
	}
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO post_likes (post_id, user_id) VALUES (?,?)", postID, userID)
	if err != nil && !isDuplicateKey(err) {
		return model.LikeView{}, err
	}
	return r.likeByPostUser(ctx, postID, userID)
}

// RemoveLike deletes the caller's like from a post.
func (r *EngagementRepo) RemoveLike(ctx context.Context, postID, userID uint64) error {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM post_likes WHERE post_id=? AND user_id=?", postID, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrLikeNotFound
	}
	return nil
}

// Likes lists a post's likes with the liking users attached.
func (r *EngagementRepo) Likes(ctx context.Context, postID uint64) ([]model.LikeView, error) {
	if err := r.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx,
		likeViewSelect+" WHERE l.post_id=? ORDER BY l.id", postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.LikeView{}
	for rows.Next() {
		var (
			v      model.LikeView
			avatar sql.NullInt64
		)
		if err := rows.Scan(&v.ID, &v.PostID, &v.LikedAt,
			&v.User.ID, &v.User.FirstName, &v.User.LastName, &v.User.Email, &avatar); err != nil {
			return nil, err
		}
		if avatar.Valid {
			id := uint64(avatar.Int64)
			v.User.AvatarFileID = &id
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// AddComment appends a comment to a post and returns it with the author
// summary attached.
func (r *EngagementRepo) AddComment(ctx context.Context, postID, authorID uint64, text string) (model.CommentView, error) {
	if err := r.requirePost(ctx, postID); err != nil {
		return model.CommentView{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO post_comments (post_id, author_id, text) VALUES (?,?,?)",
		postID, authorID, text)
	if err != nil {
		return model.CommentView{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.CommentView{}, err
	}
	return r.commentByID(ctx, uint64(id))
}

// Comments lists a post's comments oldest first.
func (r *EngagementRepo) Comments(ctx context.Context, postID uint64) ([]model.CommentView, error) {
	if err := r.requirePost(ctx, postID); err != nil {
		return nil, err
	}
	rows, err := r.DB.QueryContext(ctx,
		commentViewSelect+" WHERE c.post_id=? ORDER BY c.id", postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []model.CommentView{}
	for rows.Next() {
		v, err := scanCommentView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}

// RemoveComment deletes a comment.  The comment must belong to the given
// post and only its author may remove it.
func (r *EngagementRepo) RemoveComment(ctx context.Context, commentID, postID, requesterID uint64) error {
	var authorID uint64
	err := r.DB.QueryRowContext(ctx,
		"SELECT author_id FROM post_comments WHERE id=? AND post_id=? LIMIT 1",
		commentID, postID).Scan(&authorID)
	if err == sql.ErrNoRows {
		return ErrCommentNotFound
	}
	if err != nil {
		return err
	}
	if authorID != requesterID {
		return ErrForbidden
	}
	_, err = r.DB.ExecContext(ctx, "DELETE FROM post_comments WHERE id=?", commentID)
	return err
}

func (r *EngagementRepo) requirePost(ctx context.Context, postID uint64) error {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM posts WHERE id=? LIMIT 1", postID).Scan(&one)
	if err == sql.ErrNoRows {
		return ErrPostNotFound
	}
	return err
}

func (r *EngagementRepo) likeByPostUser(ctx context.Context, postID, userID uint64) (model.LikeView, error) {
	var (
		v      model.LikeView
		avatar sql.NullInt64
	)
	err := r.DB.QueryRowContext(ctx,
		likeViewSelect+" WHERE l.post_id=? AND l.user_id=? LIMIT 1", postID, userID).
		Scan(&v.ID, &v.PostID, &v.LikedAt,
			&v.User.ID, &v.User.FirstName, &v.User.LastName, &v.User.Email, &avatar)
	if err == sql.ErrNoRows {
		return model.LikeView{}, ErrLikeNotFound
	}
	if err != nil {
		return model.LikeView{}, err
	}
	if avatar.Valid {
		id := uint64(avatar.Int64)
		v.User.AvatarFileID = &id
	}
	return v, nil
}

func (r *EngagementRepo) commentByID(ctx context.Context, id uint64) (model.CommentView, error) {
	v, err := scanCommentView(r.DB.QueryRowContext(ctx,
		commentViewSelect+" WHERE c.id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.CommentView{}, ErrCommentNotFound
	}
	return v, err
}

func scanCommentView(s interface {
	Scan(dest ...interface{}) error
}) (model.CommentView, error) {
	var (
		v      model.CommentView
		avatar sql.NullInt64
	)
	err := s.Scan(&v.ID, &v.PostID, &v.Text, &v.CreatedAt,
		&v.Author.ID, &v.Author.FirstName, &v.Author.LastName, &v.Author.Email, &avatar)
	if err != nil {
		return model.CommentView{}, err
	}
	if avatar.Valid {
		id := uint64(avatar.Int64)
		v.Author.AvatarFileID = &id
	}
	return v, nil
}
