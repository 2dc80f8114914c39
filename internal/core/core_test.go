package core

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/database"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
	"github.com/siahsang/conduit/models"
)

func newTestCore(t *testing.T) *Core {
	t.Helper()

	dsn := "file:" + filepath.Join(t.TempDir(), "conduit.db") + "?_foreign_keys=on&_busy_timeout=5000&_txlock=immediate"
	db, err := sql.Open(database.DriverSQLite, dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.EnsureSchema(context.Background(), db, database.DriverSQLite))

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	c := NewCore(db, log, databaseutils.NewSQLTemplate(db, 0))
	c.now = steppingClock()
	return c
}

// steppingClock advances one second per call so creation order is strict.
func steppingClock() func() time.Time {
	var mu sync.Mutex
	current := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		current = current.Add(time.Second)
		return current
	}
}

func createUser(t *testing.T, c *Core, username string) *auth.User {
	t.Helper()

	user := &auth.User{
		Username: username,
		Email:    username + "@example.com",
		Password: []byte("hash"),
	}
	require.NoError(t, c.CreateUser(context.Background(), user))
	return user
}

func createArticle(t *testing.T, c *Core, author *auth.User, title string, tags ...string) *models.Article {
	t.Helper()

	article, err := c.CreateArticle(context.Background(), author, ArticleInput{
		Title:       title,
		Description: "about " + title,
		Body:        "body of " + title,
		TagList:     tags,
	})
	require.NoError(t, err)
	return article
}

func slugs(articles []*models.Article) []string {
	result := make([]string, len(articles))
	for i, article := range articles {
		result[i] = article.Slug
	}
	return result
}
