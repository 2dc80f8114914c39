package core

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/filter"
)

func TestListArticlesFiltersAndOrder(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	jake := createUser(t, c, "jake")
	anne := createUser(t, c, "anne")

	first := createArticle(t, c, jake, "First", "go", "sql")
	second := createArticle(t, c, anne, "Second", "golang")
	third := createArticle(t, c, jake, "Third")

	tests := []struct {
		name   string
		filter filter.ArticleFilter
		want   []string
	}{
		{name: "no filter is newest first", want: []string{third.Slug, second.Slug, first.Slug}},
		{name: "tag matches by substring", filter: filter.ArticleFilter{Tag: "go"}, want: []string{second.Slug, first.Slug}},
		{name: "author", filter: filter.ArticleFilter{Author: "jake"}, want: []string{third.Slug, first.Slug}},
		{name: "unknown author", filter: filter.ArticleFilter{Author: "nobody"}, want: []string{}},
		{name: "tag and author combine", filter: filter.ArticleFilter{Tag: "go", Author: "anne"}, want: []string{second.Slug}},
		{name: "article ids", filter: filter.ArticleFilter{ArticleIDs: filter.Only(first.ID, third.ID)}, want: []string{third.Slug, first.Slug}},
		{name: "empty id set matches nothing", filter: filter.ArticleFilter{ArticleIDs: filter.Only()}, want: []string{}},
		{name: "author ids", filter: filter.ArticleFilter{AuthorIDs: filter.Only(anne.ID)}, want: []string{second.Slug}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			articles, total, err := c.ListArticles(ctx, tt.filter, filter.Pagination{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, slugs(articles))
			assert.Equal(t, int64(len(tt.want)), total)
		})
	}
}

func TestListArticlesCountIgnoresPagination(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	jake := createUser(t, c, "jake")

	var created []string
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		created = append([]string{createArticle(t, c, jake, title).Slug}, created...)
	}

	tests := []struct {
		page filter.Pagination
		want []string
	}{
		{page: filter.NewPagination(2, 0), want: created[0:2]},
		{page: filter.NewPagination(2, 2), want: created[2:4]},
		{page: filter.NewPagination(2, 4), want: created[4:5]},
		{page: filter.NewPagination(10, 10), want: []string{}},
		{page: filter.NewPagination(0, 3), want: created[3:]},
	}
	for _, tt := range tests {
		articles, total, err := c.ListArticles(ctx, filter.ArticleFilter{}, tt.page)
		require.NoError(t, err)
		assert.Equal(t, tt.want, slugs(articles))
		assert.Equal(t, int64(5), total)
	}
}

func TestGetArticle(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()
	jake := createUser(t, c, "jake")
	anne := createUser(t, c, "anne")
	article := createArticle(t, c, jake, "Hello World", "greeting")

	_, err := c.GetArticle(ctx, auth.Anonymous(), "missing")
	assert.ErrorIs(t, err, ErrArticleNotFound)

	got, err := c.GetArticle(ctx, auth.Anonymous(), article.Slug)
	require.NoError(t, err)
	assert.Equal(t, "Hello World", got.Title)
	assert.Equal(t, []string{"greeting"}, got.TagList)
	assert.Equal(t, "jake", got.Author.Username)
	assert.False(t, got.Favorited)
	assert.False(t, got.Author.Following)

	_, err = c.FollowProfile(ctx, anne.ID, "jake")
	require.NoError(t, err)
	_, err = c.FavoriteArticle(ctx, anne, article.Slug)
	require.NoError(t, err)

	got, err = c.GetArticle(ctx, auth.Authenticated(anne), article.Slug)
	require.NoError(t, err)
	assert.True(t, got.Favorited)
	assert.True(t, got.Author.Following)
	assert.Equal(t, int64(1), got.FavoritesCount)
}

func TestTags(t *testing.T) {
	c := newTestCore(t)
	ctx := context.Background()

	tags, err := c.Tags(ctx)
	require.NoError(t, err)
	assert.Empty(t, tags)

	jake := createUser(t, c, "jake")
	createArticle(t, c, jake, "One", "go", "sql")
	createArticle(t, c, jake, "Two", "docker", "go")
	createArticle(t, c, jake, "Three")

	tags, err = c.Tags(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"docker", "go", "sql"}, tags)
}
