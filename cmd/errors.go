package main

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/web"
)

// AppError is rendered as {"errors": ErrorDetails}, or {"errors": {"message": ErrorMessage}}
// when there are no field details.
type AppError struct {
	ErrorStack   error
	ErrorMessage string
	ErrorDetails map[string]string
}

func (app *application) badRequestResponse(w http.ResponseWriter, r *http.Request, appError *AppError) {
	app.errorResponse(w, r, http.StatusBadRequest, appError)
}

func (app *application) failedValidationResponse(w http.ResponseWriter, r *http.Request, errorDetails map[string]string) {
	app.errorResponse(w, r, http.StatusUnprocessableEntity, &AppError{ErrorDetails: errorDetails})
}

func (app *application) invalidCredentialsResponse(w http.ResponseWriter, r *http.Request) {
	app.failedValidationResponse(w, r, map[string]string{"email or password": "is invalid"})
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusNotFound, &AppError{
		ErrorMessage: "The requested resource could not be found.",
	})
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponse(w, r, http.StatusMethodNotAllowed, &AppError{
		ErrorMessage: fmt.Sprintf("The %s method is not supported for this resource.", r.Method),
	})
}

func (app *application) authenticationRequiredResponse(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("WWW-Authenticate", app.config.Auth.TokenScheme)
	app.errorResponse(w, r, http.StatusUnauthorized, &AppError{
		ErrorMessage: "You must be authenticated to access this resource.",
	})
}

func (app *application) internalErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	app.errorResponse(w, r, http.StatusInternalServerError, &AppError{
		ErrorStack:   err,
		ErrorMessage: "An internal server error occurred.",
	})
}

// coreErrorResponse maps the core error taxonomy onto HTTP statuses.
func (app *application) coreErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	var conflict *core.ConflictError

	switch {
	case errors.As(err, &conflict):
		app.errorResponse(w, r, http.StatusUnprocessableEntity, &AppError{ErrorStack: err, ErrorDetails: conflict.Fields})
	case errors.Is(err, core.ErrArticleNotFound):
		app.errorResponse(w, r, http.StatusNotFound, &AppError{ErrorStack: err, ErrorMessage: core.ErrArticleNotFound.Error()})
	case errors.Is(err, core.ErrProfileNotFound):
		app.errorResponse(w, r, http.StatusNotFound, &AppError{ErrorStack: err, ErrorMessage: core.ErrProfileNotFound.Error()})
	case errors.Is(err, core.NoRecordFound):
		app.errorResponse(w, r, http.StatusNotFound, &AppError{ErrorStack: err, ErrorMessage: core.NoRecordFound.Error()})
	case errors.Is(err, core.ErrNotArticleAuthor):
		app.errorResponse(w, r, http.StatusForbidden, &AppError{ErrorStack: err, ErrorMessage: core.ErrNotArticleAuthor.Error()})
	case errors.Is(err, core.ErrFollowSelf):
		app.badRequestResponse(w, r, &AppError{ErrorStack: err, ErrorMessage: core.ErrFollowSelf.Error()})
	case errors.Is(err, auth.ErrUnauthorized):
		app.authenticationRequiredResponse(w, r)
	default:
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) errorResponse(w http.ResponseWriter, r *http.Request, status int, appError *AppError) {
	errorDetails := appError.ErrorDetails
	if len(errorDetails) == 0 {
		errorDetails = map[string]string{"message": appError.ErrorMessage}
	}

	attrs := []slog.Attr{
		slog.Int("status", status),
		slog.String("request_url", r.URL.String()),
		slog.String("request_method", r.Method),
		slog.String("request_id", web.RequestID(r.Context())),
	}
	if appError.ErrorStack != nil {
		attrs = append(attrs, slog.String("stack", xerrors.Sprint(appError.ErrorStack)))
	}
	for key, valueData := range appError.ErrorDetails {
		attrs = append(attrs, slog.String(key, valueData))
	}

	level := slog.LevelInfo
	if status >= http.StatusInternalServerError {
		level = slog.LevelError
	}
	app.logger.LogAttrs(r.Context(), level, "Error in handling request", attrs...)

	if err := app.writeJSON(w, status, envelope{"errors": errorDetails}, nil); err != nil {
		app.logger.Error("Failed to write error response", slog.String("error", err.Error()))
		w.WriteHeader(http.StatusInternalServerError)
	}
}
