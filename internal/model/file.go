package model

import "time"

// File mirrors the `files` table.  Avatars are stored as blobs and served
// by the file endpoint; users reference them through avatar_file_id.
type File struct {
    ID          uint64    // files.id
    FileName    string    // files.file_name
    ContentType string    // files.content_type
    Content     []byte    // files.content
    CreatedAt   time.Time // files.created_at
}
