// Package queue defines message payloads exchanged over the message broker
// and the background consumer that processes them.
package queue

// PostCreatedEvent is published when a user successfully creates a post.
// It carries enough information for downstream consumers (notification
// fan-out, analytics) to act without querying the primary database.
type PostCreatedEvent struct {
    PostID    uint64 `json:"post_id"`
    AuthorID  uint64 `json:"author_id"`
    Text      string `json:"text"`
    CreatedAt string `json:"created_at"`
}
