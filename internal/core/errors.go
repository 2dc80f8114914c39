package core

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mdobak/go-xerrors"
)

var (
	NoRecordFound        = xerrors.Message("No record found")
	ErrArticleNotFound   = xerrors.Message("Article does not exist")
	ErrProfileNotFound   = xerrors.Message("Profile does not exist")
	ErrNotArticleAuthor  = xerrors.Message("You are not an author")
	ErrFollowSelf        = xerrors.Message("Follower and following can not be equal")
	ErrDuplicatedSlug    = xerrors.Message("Duplicate slug")
	ErrDuplicateEmail    = xerrors.Message("Duplicate email")
	ErrDuplicateUsername = xerrors.Message("Duplicate username")
)

const alreadyTaken = "has already been taken"

// ConflictError reports unique fields already held by another user, keyed by field name.
type ConflictError struct {
	Fields map[string]string
}

func (e *ConflictError) Error() string {
	keys := make([]string, 0, len(e.Fields))
	for key := range e.Fields {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, len(keys))
	for i, key := range keys {
		parts[i] = fmt.Sprintf("%s %s", key, e.Fields[key])
	}
	return "conflict: " + strings.Join(parts, ", ")
}

func (e *ConflictError) Unwrap() []error {
	var errs []error
	if _, ok := e.Fields["email"]; ok {
		errs = append(errs, ErrDuplicateEmail)
	}
	if _, ok := e.Fields["username"]; ok {
		errs = append(errs, ErrDuplicateUsername)
	}
	return errs
}
