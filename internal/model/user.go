package model

import "time"

// User represents an application user record as stored in the `users`
// table.  The password is never stored in clear text: PasswordHash holds
// the base64 PBKDF2 digest and PasswordSalt the base64 salt it was derived
// with.  AvatarFileID references a row in the `files` table and is nil for
// users without an avatar.
type User struct {
    ID           uint64     // users.id
    FirstName    string     // users.first_name
    LastName     string     // users.last_name
    Email        string     // users.email (unique, stored lower-case)
    PasswordHash string     // users.password_hash (base64 digest)
    PasswordSalt string     // users.password_salt (base64 salt)
    AvatarFileID *uint64    // users.avatar_file_id, nil when unset
    CreatedAt    time.Time  // users.created_at
}

// UserSummary is the reduced author/profile projection embedded in posts,
// comments and listings.
type UserSummary struct {
    ID           uint64  `json:"id"`
    FirstName    string  `json:"first_name"`
    LastName     string  `json:"last_name"`
    Email        string  `json:"email"`
    AvatarFileID *uint64 `json:"avatar_file_id,omitempty"`
}

// Summary projects a full user record onto its summary form.
func (u User) Summary() UserSummary {
    return UserSummary{
        ID:           u.ID,
        FirstName:    u.FirstName,
        LastName:     u.LastName,
        Email:        u.Email,
        AvatarFileID: u.AvatarFileID,
    }
}

// Profile extends the summary with follower/following counts for the
// single-user endpoint.
type Profile struct {
    UserSummary
    CreatedAt      time.Time `json:"created_at"`
    TotalFollowers int       `json:"total_followers"`
    TotalFollowing int       `json:"total_following"`
}
