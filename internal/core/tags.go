package core

import (
	"context"
	"database/sql"
	"sort"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/conduit/internal/utils/collectionutils"
	"github.com/siahsang/conduit/internal/utils/databaseutils"
)

// Tags returns every tag used by at least one article, sorted.
func (c *Core) Tags(ctx context.Context) ([]string, error) {
	query := `SELECT DISTINCT tag_list FROM articles WHERE tag_list <> ''`

	tagLists, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, func(rows *sql.Rows) (string, error) {
		var tagList string
		if err := rows.Scan(&tagList); err != nil {
			return "", xerrors.New(err)
		}
		return tagList, nil
	})
	if err != nil {
		return nil, xerrors.New(err)
	}

	var all []string
	for _, tagList := range tagLists {
		all = append(all, decodeTags(tagList)...)
	}

	tags := collectionutils.Distinct(all)
	sort.Strings(tags)
	return tags, nil
}
