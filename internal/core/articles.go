package core

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/database"
	"github.com/siahsang/conduit/internal/filter"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
	"github.com/siahsang/conduit/internal/utils/stringutils"
	"github.com/siahsang/conduit/models"
)

const tagSeparator = ","

const articleColumns = `
	a.id, a.slug, a.title, a.description, a.body, a.tag_list, a.favorites_count,
	a.created_at, a.updated_at, a.author_id, u.username, u.bio, u.image
`

const articleFrom = `FROM articles a JOIN users u ON u.id = a.author_id`

func scanArticle(rows *sql.Rows) (*models.Article, error) {
	var article = &models.Article{}
	var tagList string

	if err := rows.Scan(
		&article.ID,
		&article.Slug,
		&article.Title,
		&article.Description,
		&article.Body,
		&tagList,
		&article.FavoritesCount,
		&article.CreatedAt,
		&article.UpdatedAt,
		&article.AuthorID,
		&article.Author.Username,
		&article.Author.Bio,
		&article.Author.Image,
	); err != nil {
		return nil, xerrors.New(err)
	}

	article.TagList = decodeTags(tagList)
	article.Author.ID = article.AuthorID
	return article, nil
}

func encodeTags(tags []string) string {
	return strings.Join(tags, tagSeparator)
}

func decodeTags(tagList string) []string {
	if tagList == "" {
		return []string{}
	}
	return strings.Split(tagList, tagSeparator)
}

// articleQuery accumulates WHERE predicates and their numbered arguments.
type articleQuery struct {
	predicates []string
	args       []any
}

func (q *articleQuery) arg(value any) string {
	q.args = append(q.args, value)
	return fmt.Sprintf("$%d", len(q.args))
}

func (q *articleQuery) in(column string, ids []int64) {
	clause, args := stringutils.INClause(ids, len(q.args)+1)
	q.args = append(q.args, args...)
	q.predicates = append(q.predicates, column+" IN ("+clause+")")
}

func (q *articleQuery) where() string {
	if len(q.predicates) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(q.predicates, " AND ")
}

func buildArticleQuery(f filter.ArticleFilter) *articleQuery {
	q := &articleQuery{}

	if f.Tag != "" {
		q.predicates = append(q.predicates, "a.tag_list LIKE "+q.arg("%"+f.Tag+"%"))
	}
	if f.Author != "" {
		q.predicates = append(q.predicates, "u.username = "+q.arg(f.Author))
	}

	if f.ArticleIDs.MatchesNothing() || f.AuthorIDs.MatchesNothing() {
		q.predicates = append(q.predicates, "1 = 0")
		return q
	}
	if f.ArticleIDs.Active {
		q.in("a.id", f.ArticleIDs.IDs)
	}
	if f.AuthorIDs.Active {
		q.in("a.author_id", f.AuthorIDs.IDs)
	}
	return q
}

// ListArticles returns one page of the articles matching f, newest first,
// together with the number of matching articles before pagination.
// The returned articles carry no viewer state.
func (c *Core) ListArticles(ctx context.Context, f filter.ArticleFilter, page filter.Pagination) ([]*models.Article, int64, error) {
	q := buildArticleQuery(f)

	countQuery := `SELECT COUNT(*) ` + articleFrom + q.where()
	total, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, countQuery, scanID, q.args...)
	if err != nil {
		return nil, 0, xerrors.New(err)
	}

	if total == 0 {
		return []*models.Article{}, 0, nil
	}

	limit := page.Limit
	if limit <= 0 {
		limit = math.MaxInt64
	}

	listQuery := `SELECT ` + articleColumns + articleFrom + q.where() +
		` ORDER BY a.created_at DESC, a.id DESC` +
		` LIMIT ` + q.arg(limit) + ` OFFSET ` + q.arg(page.Offset)

	articles, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, listQuery, scanArticle, q.args...)
	if err != nil {
		return nil, 0, xerrors.New(err)
	}
	if articles == nil {
		articles = []*models.Article{}
	}

	return articles, total, nil
}

func (c *Core) GetArticleBySlug(ctx context.Context, slug string) (*models.Article, error) {
	query := `SELECT ` + articleColumns + articleFrom + ` WHERE a.slug = $1`

	article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanArticle, slug)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return nil, xerrors.New(ErrArticleNotFound)
		default:
			return nil, xerrors.New(err)
		}
	}
	return article, nil
}

// GetArticle loads a single article decorated for the viewer.
func (c *Core) GetArticle(ctx context.Context, identity auth.Identity, slug string) (*models.Article, error) {
	article, err := c.GetArticleBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}

	if err := c.decorateArticle(ctx, identity, article); err != nil {
		return nil, err
	}
	return article, nil
}

// decorateArticle sets Favorited and Author.Following for an authenticated viewer.
func (c *Core) decorateArticle(ctx context.Context, identity auth.Identity, article *models.Article) error {
	viewerID, ok := identity.UserID()
	if !ok {
		return nil
	}

	favorited, err := c.IsFavorited(ctx, viewerID, article.ID)
	if err != nil {
		return err
	}
	following, err := c.IsFollowing(ctx, viewerID, article.AuthorID)
	if err != nil {
		return err
	}

	article.Favorited = favorited
	article.Author.Following = following
	return nil
}

func (c *Core) insertArticle(ctx context.Context, article *models.Article) error {
	query := `
		INSERT INTO articles (slug, title, description, body, tag_list, favorites_count, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id
	`
	args := []any{
		article.Slug,
		article.Title,
		article.Description,
		article.Body,
		encodeTags(article.TagList),
		article.FavoritesCount,
		article.AuthorID,
		article.CreatedAt,
		article.UpdatedAt,
	}

	id, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanID, args...)
	if err != nil {
		switch {
		case database.IsUniqueViolation(err):
			return xerrors.New(ErrDuplicatedSlug)
		default:
			return xerrors.New(err)
		}
	}

	article.ID = id
	return nil
}

// updateArticle writes the mutable fields only.
func (c *Core) updateArticle(ctx context.Context, article *models.Article) error {
	query := `
		UPDATE articles
		SET title = $1, description = $2, body = $3, tag_list = $4, updated_at = $5
		WHERE id = $6
	`
	args := []any{
		article.Title,
		article.Description,
		article.Body,
		encodeTags(article.TagList),
		article.UpdatedAt,
		article.ID,
	}

	if _, err := databaseutils.Execute(c.sqlTemplate, ctx, query, args...); err != nil {
		return xerrors.New(err)
	}
	return nil
}

// deleteArticle must run inside a transaction so favorites and the article go together.
func (c *Core) deleteArticle(ctx context.Context, articleID int64) error {
	if _, err := databaseutils.Execute(c.sqlTemplate, ctx, `DELETE FROM favorites WHERE article_id = $1`, articleID); err != nil {
		return xerrors.New(err)
	}
	if _, err := databaseutils.Execute(c.sqlTemplate, ctx, `DELETE FROM articles WHERE id = $1`, articleID); err != nil {
		return xerrors.New(err)
	}
	return nil
}

func (c *Core) adjustFavoritesCount(ctx context.Context, articleID int64, delta int64) error {
	query := `UPDATE articles SET favorites_count = favorites_count + $1 WHERE id = $2`

	if _, err := databaseutils.Execute(c.sqlTemplate, ctx, query, delta, articleID); err != nil {
		return xerrors.New(err)
	}
	return nil
}
