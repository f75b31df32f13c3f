package model

import "time"

// Follow mirrors the `follows` table.  The edge is directed: the follower
// receives the followee's posts in their feed.  (FollowerID, FolloweeID)
// is the composite primary key and a self-loop is rejected before insert.
type Follow struct {
    FollowerID uint64    // follows.follower_id
    FolloweeID uint64    // follows.followee_id
    CreatedAt  time.Time // follows.created_at
}
