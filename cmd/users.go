package main

import (
	"errors"
	"net/http"
	"strings"

	"github.com/siahsang/conduit/internal/auth"
	"github.com/siahsang/conduit/internal/core"
	"github.com/siahsang/conduit/internal/validator"
)

const minPasswordLength = 8

func checkEmail(v *validator.Validator, email string) {
	v.CheckNotBlank(email, "email", "must be provided")
	v.CheckEmail(email, "must be a valid email address")
}

func checkUsername(v *validator.Validator, username string) {
	v.CheckNotBlank(username, "username", "must be provided")
	v.Check(len(username) <= 64, "username", "must not be more than 64 characters long")
}

func checkPassword(v *validator.Validator, password string) {
	v.CheckNotBlank(password, "password", "must be provided")
	v.Check(len(password) >= minPasswordLength, "password", "must be at least 8 characters long")
	v.Check(len(password) <= 72, "password", "must not be more than 72 characters long")
}

func (app *application) registerUserHandler(w http.ResponseWriter, r *http.Request) {
	type registerUserPayload struct {
		Email    string `json:"email"`
		Username string `json:"username"`
		Password string `json:"password"`
	}

	var request struct {
		User registerUserPayload `json:"user"`
	}

	if err := app.readJSON(w, r, &request); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	user := &auth.User{
		Email:    strings.TrimSpace(request.User.Email),
		Username: strings.TrimSpace(request.User.Username),
	}

	v := validator.New()
	checkEmail(v, user.Email)
	checkUsername(v, user.Username)
	checkPassword(v, request.User.Password)

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	if err := user.SetPassword(request.User.Password); err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}

	if err := app.core.CreateUser(r.Context(), user); err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	app.writeUser(w, r, http.StatusCreated, user)
}

func (app *application) loginHandler(w http.ResponseWriter, r *http.Request) {
	type loginUserPayload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	var request struct {
		User loginUserPayload `json:"user"`
	}

	if err := app.readJSON(w, r, &request); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	v := validator.New()
	checkEmail(v, request.User.Email)
	v.CheckNotBlank(request.User.Password, "password", "must be provided")

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, err := app.core.GetUserByEmail(r.Context(), strings.TrimSpace(request.User.Email))
	if err != nil {
		switch {
		case errors.Is(err, core.NoRecordFound):
			app.invalidCredentialsResponse(w, r)
		default:
			app.internalErrorResponse(w, r, err)
		}
		return
	}

	match, err := user.IsPasswordMatch(request.User.Password)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	if !match {
		app.invalidCredentialsResponse(w, r)
		return
	}

	app.writeUser(w, r, http.StatusOK, user)
}

func (app *application) currentUserHandler(w http.ResponseWriter, r *http.Request) {
	user := app.currentUser(r)

	if err := app.writeJSON(w, http.StatusOK, envelope{"user": user}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}

func (app *application) updateUserHandler(w http.ResponseWriter, r *http.Request) {
	var request struct {
		User struct {
			Email    *string `json:"email"`
			Username *string `json:"username"`
			Password *string `json:"password"`
			Bio      *string `json:"bio"`
			Image    *string `json:"image"`
		} `json:"user"`
	}

	if err := app.readJSON(w, r, &request); err != nil {
		app.badRequestResponse(w, r, &AppError{
			ErrorMessage: err.Error(),
			ErrorStack:   err,
		})
		return
	}

	patch := core.UserPatch{
		Email:    request.User.Email,
		Username: request.User.Username,
		Password: request.User.Password,
		Bio:      request.User.Bio,
		Image:    request.User.Image,
	}

	v := validator.New()
	if patch.Email != nil {
		checkEmail(v, strings.TrimSpace(*patch.Email))
	}
	if patch.Username != nil {
		checkUsername(v, strings.TrimSpace(*patch.Username))
	}
	if patch.Password != nil {
		checkPassword(v, *patch.Password)
	}

	if !v.IsValid() {
		app.failedValidationResponse(w, r, v.Errors)
		return
	}

	user, err := app.core.UpdateUser(r.Context(), app.currentUser(r).ID, patch)
	if err != nil {
		app.coreErrorResponse(w, r, err)
		return
	}

	app.writeUser(w, r, http.StatusOK, user)
}

// writeUser issues a fresh token so its claims match the stored email and username.
func (app *application) writeUser(w http.ResponseWriter, r *http.Request, status int, user *auth.User) {
	token, err := app.tokens.Issue(user)
	if err != nil {
		app.internalErrorResponse(w, r, err)
		return
	}
	user.Token = token

	if err := app.writeJSON(w, status, envelope{"user": user}, nil); err != nil {
		app.internalErrorResponse(w, r, err)
	}
}
