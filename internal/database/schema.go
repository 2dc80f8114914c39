package database

import (
	"context"
	"database/sql"
	"strings"

	"github.com/mdobak/go-xerrors"
)

// Versioned migrations own the production schema; this bootstrap serves development and tests.
var schemas = map[string][]string{
	DriverPostgres: {
		`CREATE TABLE IF NOT EXISTS users (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			email TEXT NOT NULL,
			password BYTEA NOT NULL,
			bio TEXT,
			image TEXT,
			CONSTRAINT users_username_key UNIQUE (username),
			CONSTRAINT users_email_key UNIQUE (email)
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			id BIGSERIAL PRIMARY KEY,
			slug TEXT NOT NULL,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL,
			tag_list TEXT NOT NULL DEFAULT '',
			favorites_count BIGINT NOT NULL DEFAULT 0,
			author_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL,
			CONSTRAINT articles_slug_key UNIQUE (slug)
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles (created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_author ON articles (author_id)`,
		`CREATE TABLE IF NOT EXISTS follows (
			follower_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			following_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			PRIMARY KEY (follower_id, following_id),
			CONSTRAINT follows_no_self CHECK (follower_id <> following_id)
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			user_id BIGINT NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			article_id BIGINT NOT NULL REFERENCES articles (id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, article_id)
		)`,
	},
	DriverSQLite: {
		`CREATE TABLE IF NOT EXISTS users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT NOT NULL UNIQUE,
			email TEXT NOT NULL UNIQUE,
			password BLOB NOT NULL,
			bio TEXT,
			image TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS articles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			body TEXT NOT NULL,
			tag_list TEXT NOT NULL DEFAULT '',
			favorites_count INTEGER NOT NULL DEFAULT 0,
			author_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			created_at TIMESTAMP NOT NULL,
			updated_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_created_at ON articles (created_at DESC, id DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_articles_author ON articles (author_id)`,
		`CREATE TABLE IF NOT EXISTS follows (
			follower_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			following_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			PRIMARY KEY (follower_id, following_id),
			CHECK (follower_id <> following_id)
		)`,
		`CREATE TABLE IF NOT EXISTS favorites (
			user_id INTEGER NOT NULL REFERENCES users (id) ON DELETE CASCADE,
			article_id INTEGER NOT NULL REFERENCES articles (id) ON DELETE CASCADE,
			PRIMARY KEY (user_id, article_id)
		)`,
	},
}

// EnsureSchema creates the tables this service reads and writes when they are missing.
func EnsureSchema(ctx context.Context, db *sql.DB, driver string) error {
	statements, ok := schemas[driver]
	if !ok {
		return xerrors.Newf("database: no schema for driver %q", driver)
	}

	for _, statement := range statements {
		if _, err := db.ExecContext(ctx, statement); err != nil {
			return xerrors.Newf("database: apply schema (%s...): %w", firstLine(statement), err)
		}
	}
	return nil
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return line
}
