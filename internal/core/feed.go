package core

import (
	"context"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/internal/utils/collectionutils"
	"github.com/siahsang/conduit/models"
)

type articleLister interface {
	ListArticles(ctx context.Context, f filter.ArticleFilter, page filter.Pagination) ([]*models.Article, int64, error)
}

type socialGraph interface {
	FollowingIDs(ctx context.Context, followerID int64) ([]int64, error)
	FavoriteArticleIDs(ctx context.Context, userID int64) ([]int64, error)
	FavoriteArticleIDsByUsername(ctx context.Context, username string) ([]int64, error)
}

// Feed composes article pages from the repository and the social graph.
type Feed struct {
	articles articleLister
	graph    socialGraph
}

func NewFeed(articles articleLister, graph socialGraph) *Feed {
	return &Feed{articles: articles, graph: graph}
}

// ArticleQuery holds the optional listing filters. Empty fields do not filter.
type ArticleQuery struct {
	Tag       string
	Author    string
	Favorited string
}

// ListArticles returns the filtered page. For an authenticated viewer every article
// carries the viewer's favorited and following state.
func (f *Feed) ListArticles(ctx context.Context, identity auth.Identity, query ArticleQuery, page filter.Pagination) (*models.ArticlePage, error) {
	articleFilter := filter.ArticleFilter{
		Tag:    query.Tag,
		Author: query.Author,
	}

	if query.Favorited != "" {
		ids, err := f.graph.FavoriteArticleIDsByUsername(ctx, query.Favorited)
		if err != nil {
			return nil, err
		}
		articleFilter.ArticleIDs = filter.Only(ids...)
	}

	articles, total, err := f.articles.ListArticles(ctx, articleFilter, page)
	if err != nil {
		return nil, err
	}

	viewerID, ok := identity.UserID()
	if ok && len(articles) > 0 {
		favoriteIDs, err := f.graph.FavoriteArticleIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}
		followingIDs, err := f.graph.FollowingIDs(ctx, viewerID)
		if err != nil {
			return nil, err
		}

		favorites := collectionutils.ToSet(favoriteIDs)
		following := collectionutils.ToSet(followingIDs)
		for _, article := range articles {
			article.Favorited = favorites[article.ID]
			article.Author.Following = following[article.AuthorID]
		}
	}

	return &models.ArticlePage{Articles: articles, ArticlesCount: total}, nil
}

// GetFeed returns articles written by the users the viewer follows.
// Favorited is not computed for feed items.
func (f *Feed) GetFeed(ctx context.Context, viewerID int64, page filter.Pagination) (*models.ArticlePage, error) {
	followingIDs, err := f.graph.FollowingIDs(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	if len(followingIDs) == 0 {
		return models.EmptyArticlePage(), nil
	}

	articles, total, err := f.articles.ListArticles(ctx, filter.ArticleFilter{AuthorIDs: filter.Only(followingIDs...)}, page)
	if err != nil {
		return nil, err
	}

	for _, article := range articles {
		article.Author.Following = true
	}

	return &models.ArticlePage{Articles: articles, ArticlesCount: total}, nil
}
