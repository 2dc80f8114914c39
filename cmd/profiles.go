package main

import (
	"net/http"

	"github.com/siahsang/conduit/internal/auth"
)

func (app *application) getProfileHandler(w http.ResponseWriter, r *http.Request) {
	username := app.readParam(r, "username")

	profile, err := app.core.GetProfile(r.Context(), auth.IdentityFrom(r.Context()), username)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"profile": profile}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) followUserHandler(w http.ResponseWriter, r *http.Request) {
	username := app.readParam(r, "username")

	profile, err := app.core.FollowProfile(r.Context(), app.currentUser(r).ID, username)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"profile": profile}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) unfollowUserHandler(w http.ResponseWriter, r *http.Request) {
	username := app.readParam(r, "username")

	profile, err := app.core.UnfollowProfile(r.Context(), app.currentUser(r).ID, username)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"profile": profile}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
