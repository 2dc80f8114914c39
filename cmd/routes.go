package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	router.HandlerFunc(http.MethodGet, "/healthz", app.healthcheckHandler)

	router.HandlerFunc(http.MethodPost, "/api/users", app.registerUserHandler)
	router.HandlerFunc(http.MethodPost, "/api/users/login", app.loginHandler)
	router.HandlerFunc(http.MethodGet, "/api/user", app.requireAuthenticatedUser(app.currentUserHandler))
	router.HandlerFunc(http.MethodPut, "/api/user", app.requireAuthenticatedUser(app.updateUserHandler))

	router.HandlerFunc(http.MethodGet, "/api/profiles/:username", app.getProfileHandler)
	router.HandlerFunc(http.MethodPost, "/api/profiles/:username/follow", app.requireAuthenticatedUser(app.followUserHandler))
	router.HandlerFunc(http.MethodDelete, "/api/profiles/:username/follow", app.requireAuthenticatedUser(app.unfollowUserHandler))

	router.HandlerFunc(http.MethodGet, "/api/articles", app.listArticlesHandler)
	router.HandlerFunc(http.MethodPost, "/api/articles", app.requireAuthenticatedUser(app.createArticleHandler))
	// /api/articles/feed shares this route; see showArticleHandler.
	router.HandlerFunc(http.MethodGet, "/api/articles/:slug", app.showArticleHandler)
	router.HandlerFunc(http.MethodPut, "/api/articles/:slug", app.requireAuthenticatedUser(app.updateArticleHandler))
	router.HandlerFunc(http.MethodDelete, "/api/articles/:slug", app.requireAuthenticatedUser(app.deleteArticleHandler))
	router.HandlerFunc(http.MethodPost, "/api/articles/:slug/favorite", app.requireAuthenticatedUser(app.favoriteArticleHandler))
	router.HandlerFunc(http.MethodDelete, "/api/articles/:slug/favorite", app.requireAuthenticatedUser(app.unfavoriteArticleHandler))

	router.HandlerFunc(http.MethodGet, "/api/tags", app.listTagsHandler)

	return app.recoverPanic(app.assignRequestID(app.logRequests(app.authenticate(router))))
}
