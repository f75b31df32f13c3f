package model

import "time"

// Post mirrors the `posts` table.  Ownership is expressed through
// AuthorID; a post never embeds its comments or likes, they are joined at
// query time by id.
type Post struct {
    ID        uint64    // posts.id
    AuthorID  uint64    // posts.author_id
    Text      string    // posts.text
    CreatedAt time.Time // posts.created_at
}

// PostView is the read model returned by the feed and post endpoints.
// TotalLikes and TotalComments are derived live from the engagement tables
// on every query, never stored as mutable counters.
type PostView struct {
    ID            uint64      `json:"id"`
    Text          string      `json:"text"`
    CreatedAt     time.Time   `json:"created_at"`
    TotalLikes    int         `json:"total_likes"`
    TotalComments int         `json:"total_comments"`
    Author        UserSummary `json:"author"`
}
