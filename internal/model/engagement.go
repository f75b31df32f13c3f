package model

import "time"

// Comment mirrors the `post_comments` table.
type Comment struct {
    ID        uint64    // post_comments.id
    PostID    uint64    // post_comments.post_id
    AuthorID  uint64    // post_comments.author_id
    Text      string    // post_comments.text
    CreatedAt time.Time // post_comments.created_at
}

// CommentView is a comment with its author summary attached.
type CommentView struct {
    ID        uint64      `json:"id"`
    PostID    uint64      `json:"post_id"`
    Text      string      `json:"text"`
    CreatedAt time.Time   `json:"created_at"`
    Author    UserSummary `json:"author"`
}

// Like mirrors the `post_likes` table.  The (PostID, UserID) pair is
// unique; adding a like that already exists returns the existing row.
type Like struct {
    ID      uint64    // post_likes.id
    PostID  uint64    // post_likes.post_id
    UserID  uint64    // post_likes.user_id
    LikedAt time.Time // post_likes.liked_at
}

// LikeView is a like with the liking user's summary attached.
type LikeView struct {
    ID      uint64      `json:"id"`
    PostID  uint64      `json:"post_id"`
    LikedAt time.Time   `json:"liked_at"`
    User    UserSummary `json:"user"`
}
