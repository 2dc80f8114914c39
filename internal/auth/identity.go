package auth

import (
	"context"

	"github.com/mdobak/go-xerrors"

	"github.com/siahsang/conduit/internal/web"
)

// Identity is either anonymous or an authenticated user. The zero value is anonymous.
type Identity struct {
	user *User
}

func Anonymous() Identity {
	return Identity{}
}

func Authenticated(user *User) Identity {
	if user == nil {
		return Anonymous()
	}
	return Identity{user: user}
}

// User returns the authenticated user and true, or nil and false for an anonymous identity.
func (id Identity) User() (*User, bool) {
	return id.user, id.user != nil
}

func (id Identity) IsAnonymous() bool {
	return id.user == nil
}

// UserID returns the authenticated user's id and true, or 0 and false.
func (id Identity) UserID() (int64, bool) {
	if id.user == nil {
		return 0, false
	}
	return id.user.ID, true
}

// RequireUser is the access guard predicate: anonymous identities are rejected.
func RequireUser(id Identity) (*User, error) {
	user, ok := id.User()
	if !ok {
		return nil, xerrors.New(ErrUnauthorized)
	}
	return user, nil
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom returns the identity resolved for the request, anonymous if none was stored.
func IdentityFrom(ctx context.Context) Identity {
	id, _ := web.GetValueFromContext[Identity](ctx, identityKey{})
	return id
}
