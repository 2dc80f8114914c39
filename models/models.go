package models

import "time"

type Profile struct {
	ID        int64   `json:"-"`
	Username  string  `json:"username"`
	Bio       *string `json:"bio"`
	Image     *string `json:"image"`
	Following bool    `json:"following"`
}

// Article carries the stored record plus the per-viewer Favorited flag,
// which is false unless a viewer-aware read set it.
type Article struct {
	ID             int64     `json:"-"`
	Slug           string    `json:"slug"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Body           string    `json:"body"`
	TagList        []string  `json:"tagList"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
	Favorited      bool      `json:"favorited"`
	FavoritesCount int64     `json:"favoritesCount"`
	AuthorID       int64     `json:"-"`
	Author         Profile   `json:"author"`
}

type ArticlePage struct {
	Articles      []*Article `json:"articles"`
	ArticlesCount int64      `json:"articlesCount"`
}

func EmptyArticlePage() *ArticlePage {
	return &ArticlePage{Articles: []*Article{}, ArticlesCount: 0}
}
