package core

import (
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"unicode"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/utils/collectionutils"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
	"github.com/siahsang/conduit/internal/utils/stringutils"
	"github.com/siahsang/conduit/models"
)

const (
	slugSuffixLength = 6
	slugAttempts     = 3
	base36           = "0123456789abcdefghijklmnopqrstuvwxyz"
)

type ArticleInput struct {
	Title       string
	Description string
	Body        string
	TagList     []string
}

// ArticlePatch holds the fields an author may change. Nil fields are left untouched.
type ArticlePatch struct {
	Title       *string
	Description *string
	Body        *string
	TagList     *[]string
}

func IsOwner(article *models.Article, viewerID int64) bool {
	return article.AuthorID == viewerID
}

// Slugify lower-cases the title and joins its letter and digit runs with single hyphens.
func Slugify(title string) string {
	var sb strings.Builder
	pendingHyphen := false

	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if pendingHyphen && sb.Len() > 0 {
				sb.WriteByte('-')
			}
			pendingHyphen = false
			sb.WriteRune(r)
			continue
		}
		pendingHyphen = true
	}

	return sb.String()
}

func randomSlugSuffix() string {
	n := rand.Uint64N(36 * 36 * 36 * 36 * 36 * 36)

	suffix := make([]byte, slugSuffixLength)
	for i := slugSuffixLength - 1; i >= 0; i-- {
		suffix[i] = base36[n%36]
		n /= 36
	}
	return string(suffix)
}

func (c *Core) newSlug(title string) string {
	base := Slugify(title)
	if base == "" {
		return c.slugSuffix()
	}
	return base + "-" + c.slugSuffix()
}

func normalizeTags(tags []string) []string {
	return collectionutils.Distinct(stringutils.TrimAll(tags))
}

func authorProfile(user *auth.User) models.Profile {
	return models.Profile{
		ID:       user.ID,
		Username: user.Username,
		Bio:      user.Bio,
		Image:    user.Image,
	}
}

// CreateArticle stores a new article owned by author. A slug collision is retried with a fresh suffix.
func (c *Core) CreateArticle(ctx context.Context, author *auth.User, input ArticleInput) (*models.Article, error) {
	now := c.now()
	article := &models.Article{
		Title:       strings.TrimSpace(input.Title),
		Description: strings.TrimSpace(input.Description),
		Body:        input.Body,
		TagList:     normalizeTags(input.TagList),
		CreatedAt:   now,
		UpdatedAt:   now,
		AuthorID:    author.ID,
		Author:      authorProfile(author),
	}

	var err error
	for attempt := 0; attempt < slugAttempts; attempt++ {
		article.Slug = c.newSlug(article.Title)

		err = c.insertArticle(ctx, article)
		if err == nil {
			c.log.InfoContext(ctx, "Article created", "slug", article.Slug, "author_id", author.ID)
			return article, nil
		}
		if !errors.Is(err, ErrDuplicatedSlug) {
			return nil, err
		}
		c.log.WarnContext(ctx, "Slug collision, retrying", "slug", article.Slug, "attempt", attempt+1)
	}

	return nil, err
}

// UpdateArticle merges patch into the article. Only the author may update it.
func (c *Core) UpdateArticle(ctx context.Context, viewerID int64, slug string, patch ArticlePatch) (*models.Article, error) {
	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Article, error) {
		article, err := c.GetArticleBySlug(txCtx, slug)
		if err != nil {
			return nil, err
		}
		if !IsOwner(article, viewerID) {
			return nil, xerrors.New(ErrNotArticleAuthor)
		}

		if patch.Title != nil {
			article.Title = strings.TrimSpace(*patch.Title)
		}
		if patch.Description != nil {
			article.Description = strings.TrimSpace(*patch.Description)
		}
		if patch.Body != nil {
			article.Body = *patch.Body
		}
		if patch.TagList != nil {
			article.TagList = normalizeTags(*patch.TagList)
		}
		article.UpdatedAt = c.now()

		if err := c.updateArticle(txCtx, article); err != nil {
			return nil, err
		}

		following, err := c.IsFollowing(txCtx, viewerID, article.AuthorID)
		if err != nil {
			return nil, err
		}
		favorited, err := c.IsFavorited(txCtx, viewerID, article.ID)
		if err != nil {
			return nil, err
		}
		article.Author.Following = following
		article.Favorited = favorited

		c.log.InfoContext(ctx, "Article updated", "slug", article.Slug)
		return article, nil
	})
}

// DeleteArticle removes the article and every favorite pointing at it. Only the author may delete it.
func (c *Core) DeleteArticle(ctx context.Context, viewerID int64, slug string) error {
	return c.session.DoTransactionally(ctx, func(txCtx context.Context) error {
		article, err := c.GetArticleBySlug(txCtx, slug)
		if err != nil {
			return err
		}
		if !IsOwner(article, viewerID) {
			return xerrors.New(ErrNotArticleAuthor)
		}

		if err := c.deleteArticle(txCtx, article.ID); err != nil {
			return err
		}

		c.log.InfoContext(ctx, "Article deleted", "slug", slug, "author_id", viewerID)
		return nil
	})
}

// FavoriteArticle is idempotent: the counter moves only when the favorite is new.
func (c *Core) FavoriteArticle(ctx context.Context, viewer *auth.User, slug string) (*models.Article, error) {
	return c.toggleFavorite(ctx, viewer, slug, true)
}

// UnfavoriteArticle is idempotent: removing a missing favorite changes nothing.
func (c *Core) UnfavoriteArticle(ctx context.Context, viewer *auth.User, slug string) (*models.Article, error) {
	return c.toggleFavorite(ctx, viewer, slug, false)
}

func (c *Core) toggleFavorite(ctx context.Context, viewer *auth.User, slug string, favorite bool) (*models.Article, error) {
	return databaseutils.DoTransactionally(ctx, c.session, func(txCtx context.Context) (*models.Article, error) {
		article, err := c.GetArticleBySlug(txCtx, slug)
		if err != nil {
			return nil, err
		}

		var changed bool
		var delta int64
		if favorite {
			changed, err = c.insertFavorite(txCtx, viewer.ID, article.ID)
			delta = 1
		} else {
			changed, err = c.deleteFavorite(txCtx, viewer.ID, article.ID)
			delta = -1
		}
		if err != nil {
			return nil, err
		}

		if changed {
			if err := c.adjustFavoritesCount(txCtx, article.ID, delta); err != nil {
				return nil, err
			}
			if article, err = c.GetArticleBySlug(txCtx, slug); err != nil {
				return nil, err
			}
		}

		if err := c.decorateArticle(txCtx, auth.Authenticated(viewer), article); err != nil {
			return nil, err
		}
		return article, nil
	})
}
