package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/social-network/internal/model"
)

// FileRepo reads stored blobs from the 'files' table.  Writes happen
// through UserRepo.ReplaceAvatar so the user pointer and the blob move in
// the same transaction.
type FileRepo struct{ DB *sql.DB }

func NewFileRepo(db *sql.DB) *FileRepo { return &FileRepo{DB: db} }

// GetByID fetches a stored file by id.
func (r *FileRepo) GetByID(ctx context.Context, id uint64) (model.File, error) {
	var f model.File
	err := r.DB.QueryRowContext(ctx,
		"SELECT id, file_name, content_type, content, created_at FROM files WHERE id=? LIMIT 1",
		id).Scan(&f.ID, &f.FileName, &f.ContentType, &f.Content, &f.CreatedAt)
	if err == sql.ErrNoRows {
		return model.File{}, ErrFileNotFound
	}
	return f, err
}
