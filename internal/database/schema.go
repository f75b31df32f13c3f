package database

import (
	"context"
	"database/sql"
)

// schema contains the idempotent DDL for every table the service uses.
// The composite keys matter: follows and post_likes carry the uniqueness
// constraints that make concurrent duplicate inserts resolve to the
// "already exists" outcome instead of creating extra rows.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS files (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		file_name VARCHAR(255) NOT NULL,
		content_type VARCHAR(127) NOT NULL,
		content LONGBLOB NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		first_name VARCHAR(100) NOT NULL,
		last_name VARCHAR(100) NOT NULL,
		email VARCHAR(255) NOT NULL,
		password_hash VARCHAR(64) NOT NULL,
		password_salt VARCHAR(32) NOT NULL,
		avatar_file_id BIGINT UNSIGNED NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email),
		CONSTRAINT fk_users_avatar FOREIGN KEY (avatar_file_id) REFERENCES files (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS posts (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		author_id BIGINT UNSIGNED NOT NULL,
		text TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_posts_author (author_id),
		CONSTRAINT fk_posts_author FOREIGN KEY (author_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS post_comments (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		post_id BIGINT UNSIGNED NOT NULL,
		author_id BIGINT UNSIGNED NOT NULL,
		text TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		KEY idx_comments_post (post_id),
		CONSTRAINT fk_comments_post FOREIGN KEY (post_id) REFERENCES posts (id),
		CONSTRAINT fk_comments_author FOREIGN KEY (author_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS post_likes (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		post_id BIGINT UNSIGNED NOT NULL,
		user_id BIGINT UNSIGNED NOT NULL,
		liked_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (id),
		UNIQUE KEY uq_likes_post_user (post_id, user_id),
		CONSTRAINT fk_likes_post FOREIGN KEY (post_id) REFERENCES posts (id),
		CONSTRAINT fk_likes_user FOREIGN KEY (user_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,

	`CREATE TABLE IF NOT EXISTS follows (
		follower_id BIGINT UNSIGNED NOT NULL,
		followee_id BIGINT UNSIGNED NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (follower_id, followee_id),
		KEY idx_follows_followee (followee_id),
		CONSTRAINT fk_follows_follower FOREIGN KEY (follower_id) REFERENCES users (id),
		CONSTRAINT fk_follows_followee FOREIGN KEY (followee_id) REFERENCES users (id)
	) ENGINE=InnoDB DEFAULT CHARSET=utf8mb4`,
}

// EnsureSchema creates any missing tables.  It is safe to run on every
// startup.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
