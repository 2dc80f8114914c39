package main

import (
	"net/http"
	"strings"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/validator"
)

const feedSlug = "feed"

func checkTags(v *validator.Validator, tags []string) {
	for _, tag := range tags {
		v.Check(!strings.Contains(tag, ","), "tagList", "must not contain commas")
	}
	v.Check(v.IsUnique(tags), "tagList", "must not contain duplicate values")
}

func (app *application) listArticlesHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	qs := r.URL.Query()

	query := core.ArticleQuery{
		Tag:       app.readString(qs, "tag", ""),
		Author:    app.readString(qs, "author", ""),
		Favorited: app.readString(qs, "favorited", ""),
	}
	page := app.readPagination(qs, v)

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	articlePage, err := app.feed.ListArticles(r.Context(), auth.IdentityFrom(r.Context()), query, page)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	response := envelope{"articles": articlePage.Articles, "articlesCount": articlePage.ArticlesCount}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) feedHandler(w http.ResponseWriter, r *http.Request) {
	v := validator.New()
	page := app.readPagination(r.URL.Query(), v)

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	articlePage, err := app.feed.GetFeed(r.Context(), app.currentUser(r).ID, page)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	response := envelope{"articles": articlePage.Articles, "articlesCount": articlePage.ArticlesCount}
	if err := app.writeJSON(w, http.StatusOK, response, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

// showArticleHandler also serves GET /api/articles/feed. Generated slugs always end in a
// random suffix, so no article can be addressed as "feed".
func (app *application) showArticleHandler(w http.ResponseWriter, r *http.Request) {
	slug := app.readParam(r, "slug")
	if slug == feedSlug {
		app.requireAuthenticatedUser(app.feedHandler)(w, r)
		return
	}

	article, err := app.core.GetArticle(r.Context(), auth.IdentityFrom(r.Context()), slug)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) createArticleHandler(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Body        string   `json:"body"`
		TagList     []string `json:"tagList"`
	}

	var request struct {
		Article input `json:"article"`
	}

	if err := app.readJSON(w, r, &request); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	v.CheckNotBlank(request.Article.Title, "title", "must be provided")
	v.CheckNotBlank(request.Article.Description, "description", "must be provided")
	v.CheckNotBlank(request.Article.Body, "body", "must be provided")
	checkTags(v, request.Article.TagList)

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	article, err := app.core.CreateArticle(r.Context(), app.currentUser(r), core.ArticleInput{
		Title:       request.Article.Title,
		Description: request.Article.Description,
		Body:        request.Article.Body,
		TagList:     request.Article.TagList,
	})
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateArticleHandler(w http.ResponseWriter, r *http.Request) {
	type input struct {
		Title       *string   `json:"title"`
		Description *string   `json:"description"`
		Body        *string   `json:"body"`
		TagList     *[]string `json:"tagList"`
	}

	var request struct {
		Article input `json:"article"`
	}

	if err := app.readJSON(w, r, &request); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	if request.Article.Title != nil {
		v.CheckNotBlank(*request.Article.Title, "title", "must not be blank")
	}
	if request.Article.Description != nil {
		v.CheckNotBlank(*request.Article.Description, "description", "must not be blank")
	}
	if request.Article.Body != nil {
		v.CheckNotBlank(*request.Article.Body, "body", "must not be blank")
	}
	if request.Article.TagList != nil {
		checkTags(v, *request.Article.TagList)
	}

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	article, err := app.core.UpdateArticle(r.Context(), app.currentUser(r).ID, app.readParam(r, "slug"), core.ArticlePatch{
		Title:       request.Article.Title,
		Description: request.Article.Description,
		Body:        request.Article.Body,
		TagList:     request.Article.TagList,
	})
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) deleteArticleHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.core.DeleteArticle(r.Context(), app.currentUser(r).ID, app.readParam(r, "slug")); err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (app *application) favoriteArticleHandler(w http.ResponseWriter, r *http.Request) {
	article, err := app.core.FavoriteArticle(r.Context(), app.currentUser(r), app.readParam(r, "slug"))
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) unfavoriteArticleHandler(w http.ResponseWriter, r *http.Request) {
	article, err := app.core.UnfavoriteArticle(r.Context(), app.currentUser(r), app.readParam(r, "slug"))
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
