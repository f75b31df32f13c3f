package repository

import (
	"context"
	"database/sql"
	"strings"

	"github.com/iliyamo/social-network/internal/auth"
	"github.com/iliyamo/social-network/internal/model"
)

// UserRepo persists users in the 'users' table.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

const userColumns = "id,first_name,last_name,email,password_hash,password_salt,avatar_file_id,created_at"

func scanUser(row *sql.Row) (model.User, error) {
	var (
		u      model.User
		avatar sql.NullInt64
	)
	err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email,
		&u.PasswordHash, &u.PasswordSalt, &avatar, &u.CreatedAt)
	if err != nil {
		return model.User{}, err
	}
	if avatar.Valid {
		id := uint64(avatar.Int64)
		u.AvatarFileID = &id
	}
	return u, nil
}

// Create inserts a user with a freshly salted password digest and returns
// the stored record.  The email is normalized to lower case before the
// uniqueness check fires.
func (r *UserRepo) Create(ctx context.Context, firstName, lastName, email, password string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hashed, err := auth.GenerateHash(password)
	if err != nil {
		return model.User{}, err
	}
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (first_name, last_name, email, password_hash, password_salt) VALUES (?,?,?,?,?)",
		firstName, lastName, email, hashed.Digest, hashed.Salt)
	if err != nil {
		if isDuplicateKey(err) {
			return model.User{}, ErrEmailExists
		}
		return model.User{}, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.User{}, err
	}
	return r.GetByID(ctx, uint64(id))
}

// GetByEmail fetches a user by normalized email.  Missing users surface as
// ErrUserNotFound.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE email=? LIMIT 1", email))
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (model.User, error) {
	u, err := scanUser(r.DB.QueryRowContext(ctx,
		"SELECT "+userColumns+" FROM users WHERE id=? LIMIT 1", id))
	if err == sql.ErrNoRows {
		return model.User{}, ErrUserNotFound
	}
	return u, err
}

// Exists reports whether a user row with the given id is present.
func (r *UserRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM users WHERE id=? LIMIT 1", id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// List returns summaries of every user ordered by id.
func (r *UserRepo) List(ctx context.Context) ([]model.UserSummary, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT id,first_name,last_name,email,avatar_file_id FROM users ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectSummaries(rows)
}

// Profile returns a single user with derived follower/following counts.
func (r *UserRepo) Profile(ctx context.Context, id uint64) (model.Profile, error) {
	var (
		p      model.Profile
		avatar sql.NullInt64
	)
	err := r.DB.QueryRowContext(ctx, `
		SELECT u.id, u.first_name, u.last_name, u.email, u.avatar_file_id, u.created_at,
		       (SELECT COUNT(*) FROM follows f WHERE f.followee_id = u.id),
		       (SELECT COUNT(*) FROM follows f WHERE f.follower_id = u.id)
		FROM users u WHERE u.id=? LIMIT 1`, id).
		Scan(&p.ID, &p.FirstName, &p.LastName, &p.Email, &avatar, &p.CreatedAt,
			&p.TotalFollowers, &p.TotalFollowing)
	if err == sql.ErrNoRows {
		return model.Profile{}, ErrUserNotFound
	}
	if err != nil {
		return model.Profile{}, err
	}
	if avatar.Valid {
		fid := uint64(avatar.Int64)
		p.AvatarFileID = &fid
	}
	return p, nil
}

// ReplaceAvatar stores the uploaded file, points the user at it and drops
// the previous avatar row, all in one transaction.  It returns the new
// file id.
func (r *UserRepo) ReplaceAvatar(ctx context.Context, userID uint64, file model.File) (uint64, error) {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var old sql.NullInt64
	err = tx.QueryRowContext(ctx,
		"SELECT avatar_file_id FROM users WHERE id=? FOR UPDATE", userID).Scan(&old)
	if err == sql.ErrNoRows {
		return 0, ErrUserNotFound
	}
	if err != nil {
		return 0, err
	}

	res, err := tx.ExecContext(ctx,
		"INSERT INTO files (file_name, content_type, content) VALUES (?,?,?)",
		file.FileName, file.ContentType, file.Content)
	if err != nil {
		return 0, err
	}
	newID, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	if _, err = tx.ExecContext(ctx,
		"UPDATE users SET avatar_file_id=? WHERE id=?", newID, userID); err != nil {
		return 0, err
	}
	if old.Valid {
		if _, err = tx.ExecContext(ctx, "DELETE FROM files WHERE id=?", old.Int64); err != nil {
			return 0, err
		}
	}
	if err = tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return uint64(newID), nil
}

// UpdatePassword re-salts and re-digests the user's credential.
func (r *UserRepo) UpdatePassword(ctx context.Context, userID uint64, password string) error {
	hashed, err := auth.GenerateHash(password)
	if err != nil {
		return err
	}
	res, err := r.DB.ExecContext(ctx,
		"UPDATE users SET password_hash=?, password_salt=? WHERE id=?",
		hashed.Digest, hashed.Salt, userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrUserNotFound
	}
	return nil
}

// collectSummaries scans rows shaped as (id, first_name, last_name, email,
// avatar_file_id) into user summaries.
func collectSummaries(rows *sql.Rows) ([]model.UserSummary, error) {
	out := []model.UserSummary{}
	for rows.Next() {
		var (
			s      model.UserSummary
			avatar sql.NullInt64
		)
		if err := rows.Scan(&s.ID, &s.FirstName, &s.LastName, &s.Email, &avatar); err != nil {
			return nil, err
		}
		if avatar.Valid {
			id := uint64(avatar.Int64)
			s.AvatarFileID = &id
		}
		out = append(out, s)
	}
	return out, rows.Err()
}
