package database

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchemaIsRepeatable(t *testing.T) {
	db, err := sql.Open(DriverSQLite, "file:"+filepath.Join(t.TempDir(), "schema.db")+"?_foreign_keys=on")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, db, DriverSQLite))
	require.NoError(t, EnsureSchema(ctx, db, DriverSQLite))

	assert.Error(t, EnsureSchema(ctx, db, "mysql"))
}

func TestUniqueViolation(t *testing.T) {
	db, err := sql.Open(DriverSQLite, "file:"+filepath.Join(t.TempDir(), "unique.db")+"?_foreign_keys=on")
	require.NoError(t, err)
	defer db.Close()

	ctx := context.Background()
	require.NoError(t, EnsureSchema(ctx, db, DriverSQLite))

	insert := `INSERT INTO users (username, email, password) VALUES ($1, $2, $3)`
	_, err = db.ExecContext(ctx, insert, "jake", "jake@example.com", []byte("x"))
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, insert, "other", "jake@example.com", []byte("x"))
	require.Error(t, err)
	assert.True(t, IsUniqueViolation(err))
	assert.Contains(t, ViolatedConstraint(err), "users.email")

	_, err = db.ExecContext(ctx, `INSERT INTO follows (follower_id, following_id) VALUES ($1, $1)`, 1)
	require.Error(t, err)
	assert.False(t, IsUniqueViolation(err))

	assert.False(t, IsUniqueViolation(sql.ErrNoRows))
	assert.Empty(t, ViolatedConstraint(sql.ErrNoRows))
}
