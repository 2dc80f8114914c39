package databaseutils

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/mdobak/go-xerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "github.com/mattn/go-sqlite3"
)

func newTestDB(t *testing.T) (*sql.DB, *SQLTemplate, Session) {
	t.Helper()

	db, err := sql.Open("sqlite3", "file:"+filepath.Join(t.TempDir(), "session.db")+"?_busy_timeout=5000")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`CREATE TABLE notes (id INTEGER PRIMARY KEY, body TEXT NOT NULL)`)
	require.NoError(t, err)

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return db, NewSQLTemplate(db, 0), NewSession(db, log)
}

func scanBody(rows *sql.Rows) (string, error) {
	var body string
	err := rows.Scan(&body)
	return body, err
}

func TestDoTransactionallyCommits(t *testing.T) {
	_, template, session := newTestDB(t)
	ctx := context.Background()

	err := session.DoTransactionally(ctx, func(txCtx context.Context) error {
		_, err := Execute(template, txCtx, `INSERT INTO notes (body) VALUES ($1)`, "kept")
		return err
	})
	require.NoError(t, err)

	bodies, err := ExecuteQuery(template, ctx, `SELECT body FROM notes`, scanBody)
	require.NoError(t, err)
	assert.Equal(t, []string{"kept"}, bodies)
}

func TestDoTransactionallyRollsBackOnError(t *testing.T) {
	_, template, session := newTestDB(t)
	ctx := context.Background()
	errBoom := xerrors.Message("boom")

	err := session.DoTransactionally(ctx, func(txCtx context.Context) error {
		if _, err := Execute(template, txCtx, `INSERT INTO notes (body) VALUES ($1)`, "lost"); err != nil {
			return err
		}
		return errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	_, err = ExecuteSingleQuery(template, ctx, `SELECT body FROM notes`, scanBody)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestNestedTransactionJoinsOuter(t *testing.T) {
	_, template, session := newTestDB(t)
	ctx := context.Background()
	errBoom := xerrors.Message("boom")

	_, err := DoTransactionally(ctx, session, func(txCtx context.Context) (int64, error) {
		inner, err := DoTransactionally(txCtx, session, func(innerCtx context.Context) (int64, error) {
			return Execute(template, innerCtx, `INSERT INTO notes (body) VALUES ($1)`, "inner")
		})
		if err != nil {
			return 0, err
		}
		return inner, errBoom
	})
	assert.ErrorIs(t, err, errBoom)

	bodies, err := ExecuteQuery(template, ctx, `SELECT body FROM notes`, scanBody)
	require.NoError(t, err)
	assert.Empty(t, bodies)
}

func TestExecuteReportsRowsAffected(t *testing.T) {
	_, template, _ := newTestDB(t)
	ctx := context.Background()

	for _, body := range []string{"a", "b", "c"} {
		_, err := Execute(template, ctx, `INSERT INTO notes (body) VALUES ($1)`, body)
		require.NoError(t, err)
	}

	affected, err := Execute(template, ctx, `DELETE FROM notes WHERE body <> $1`, "a")
	require.NoError(t, err)
	assert.Equal(t, int64(2), affected)
}
