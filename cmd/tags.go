package main

import "net/http"

func (app *application) listTagsHandler(w http.ResponseWriter, r *http.Request) {
	tags, err := app.core.Tags(r.Context())
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"tags": tags}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) healthcheckHandler(w http.ResponseWriter, r *http.Request) {
	if err := app.db.PingContext(r.Context()); err != nil {
		app.errorResponse(w, r, http.StatusServiceUnavailable, &AppError{
			ErrorStack:   err,
			ErrorMessage: "The database is unavailable.",
		})
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"status": "ok"}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
