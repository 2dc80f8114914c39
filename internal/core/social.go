package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/conduit/internal/utils/databaseutils"
)

func scanID(rows *sql.Rows) (int64, error) {
	var id int64
	if err := rows.Scan(&id); err != nil {
		return 0, xerrors.New(err)
	}
	return id, nil
}

// FollowingIDs returns the ids of every user the follower follows.
func (c *Core) FollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	query := `SELECT following_id FROM follows WHERE follower_id = $1`

	ids, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanID, followerID)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return ids, nil
}

func (c *Core) IsFollowing(ctx context.Context, followerID, followingID int64) (bool, error) {
	query := `SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2`

	rows, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanID, followerID, followingID)
	if err != nil {
		return false, xerrors.New(err)
	}
	return len(rows) > 0, nil
}

// FavoriteArticleIDs returns the ids of every article the user has favorited.
func (c *Core) FavoriteArticleIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := `SELECT article_id FROM favorites WHERE user_id = $1`

	ids, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanID, userID)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return ids, nil
}

// FavoriteArticleIDsByUsername resolves the username first. An unknown username has no favorites.
func (c *Core) FavoriteArticleIDsByUsername(ctx context.Context, username string) ([]int64, error) {
	query := `
		SELECT f.article_id
		FROM favorites f
		JOIN users u ON u.id = f.user_id
		WHERE u.username = $1
	`

	ids, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanID, username)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return ids, nil
}

func (c *Core) IsFavorited(ctx context.Context, userID, articleID int64) (bool, error) {
	query := `SELECT 1 FROM favorites WHERE user_id = $1 AND article_id = $2`

	rows, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanID, userID, articleID)
	if err != nil {
		return false, xerrors.New(err)
	}
	return len(rows) > 0, nil
}

// insertFollow reports whether a new edge was stored; an existing edge is left as is.
func (c *Core) insertFollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	query := `
		INSERT INTO follows (follower_id, following_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	affected, err := databaseutils.Execute(c.sqlTemplate, ctx, query, followerID, followingID)
	if err != nil {
		return false, xerrors.New(err)
	}
	return affected > 0, nil
}

func (c *Core) deleteFollow(ctx context.Context, followerID, followingID int64) (bool, error) {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`

	affected, err := databaseutils.Execute(c.sqlTemplate, ctx, query, followerID, followingID)
	if err != nil {
		return false, xerrors.New(err)
	}
	return affected > 0, nil
}

func (c *Core) insertFavorite(ctx context.Context, userID, articleID int64) (bool, error) {
	query := `
		INSERT INTO favorites (user_id, article_id)
		VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`
	affected, err := databaseutils.Execute(c.sqlTemplate, ctx, query, userID, articleID)
	if err != nil {
		return false, xerrors.New(err)
	}
	return affected > 0, nil
}

func (c *Core) deleteFavorite(ctx context.Context, userID, articleID int64) (bool, error) {
	query := `DELETE FROM favorites WHERE user_id = $1 AND article_id = $2`

	affected, err := databaseutils.Execute(c.sqlTemplate, ctx, query, userID, articleID)
	if err != nil {
		return false, xerrors.New(err)
	}
	return affected > 0, nil
}
