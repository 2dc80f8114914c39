package auth

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errNoUser = xerrors.Message("no such user")

type fakeUsers map[int64]*User

func (f fakeUsers) GetUserByID(_ context.Context, id int64) (*User, error) {
	user, ok := f[id]
	if !ok {
		return nil, errNoUser
	}
	copied := *user
	return &copied, nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestPasswordHashing(t *testing.T) {
	user := &User{}
	require.NoError(t, user.SetPassword("correct horse"))
	assert.NotEqual(t, []byte("correct horse"), user.Password)

	match, err := user.IsPasswordMatch("correct horse")
	require.NoError(t, err)
	assert.True(t, match)

	match, err = user.IsPasswordMatch("battery staple")
	require.NoError(t, err)
	assert.False(t, match)
}

func TestTokenRoundTrip(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	token, err := issuer.Issue(&User{ID: 42, Username: "jake", Email: "jake@jake.jake"})
	require.NoError(t, err)

	userID, claim, err := issuer.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, int64(42), userID)
	assert.Equal(t, "jake", claim.Username)
	assert.Equal(t, "jake@jake.jake", claim.Email)
}

func TestVerifyRejectsForeignSecret(t *testing.T) {
	token, err := NewTokenIssuer("one", time.Hour).Issue(&User{ID: 1})
	require.NoError(t, err)

	_, _, err = NewTokenIssuer("two", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestVerifyRejectsExpiredToken(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Minute)
	issuer.now = func() time.Time { return time.Now().Add(-time.Hour) }
	token, err := issuer.Issue(&User{ID: 1})
	require.NoError(t, err)

	_, _, err = NewTokenIssuer("secret", time.Minute).Verify(token)
	assert.Error(t, err)
}

func TestExtractToken(t *testing.T) {
	tests := []struct {
		header string
		token  string
		ok     bool
	}{
		{header: "Token abc.def.ghi", token: "abc.def.ghi", ok: true},
		{header: "Bearer abc.def.ghi", token: "abc.def.ghi", ok: true},
		{header: "bearer abc", token: "abc", ok: true},
		{header: "abc.def.ghi"},
		{header: "Basic dXNlcjpwYXNz"},
		{header: "Token "},
		{header: "Token a b"},
	}
	for _, tt := range tests {
		t.Run(tt.header, func(t *testing.T) {
			token, ok := ExtractToken(tt.header)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.token, token)
		})
	}
}

func TestResolver(t *testing.T) {
	issuer := NewTokenIssuer("secret", time.Hour)
	users := fakeUsers{7: {ID: 7, Username: "jake", Email: "jake@jake.jake"}}
	resolver := NewResolver(issuer, users, discardLogger())
	ctx := context.Background()

	valid, err := issuer.Issue(users[7])
	require.NoError(t, err)
	orphan, err := issuer.Issue(&User{ID: 99, Username: "gone"})
	require.NoError(t, err)
	foreign, err := NewTokenIssuer("other", time.Hour).Issue(users[7])
	require.NoError(t, err)

	t.Run("no header is anonymous", func(t *testing.T) {
		assert.True(t, resolver.Resolve(ctx, "").IsAnonymous())
	})
	t.Run("malformed header is anonymous", func(t *testing.T) {
		assert.True(t, resolver.Resolve(ctx, valid).IsAnonymous())
	})
	t.Run("bad signature is anonymous", func(t *testing.T) {
		assert.True(t, resolver.Resolve(ctx, "Token "+foreign).IsAnonymous())
	})
	t.Run("deleted user is anonymous", func(t *testing.T) {
		assert.True(t, resolver.Resolve(ctx, "Token "+orphan).IsAnonymous())
	})
	t.Run("valid token resolves the live user", func(t *testing.T) {
		id := resolver.Resolve(ctx, "Token "+valid)
		user, ok := id.User()
		require.True(t, ok)
		assert.Equal(t, int64(7), user.ID)
		assert.Equal(t, valid, user.Token)
	})
}

func TestRequireUser(t *testing.T) {
	_, err := RequireUser(Anonymous())
	assert.ErrorIs(t, err, ErrUnauthorized)

	user, err := RequireUser(Authenticated(&User{ID: 3}))
	require.NoError(t, err)
	assert.Equal(t, int64(3), user.ID)

	assert.True(t, Authenticated(nil).IsAnonymous())
}

func TestIdentityContext(t *testing.T) {
	ctx := context.Background()
	assert.True(t, IdentityFrom(ctx).IsAnonymous())

	ctx = WithIdentity(ctx, Authenticated(&User{ID: 5}))
	id, ok := IdentityFrom(ctx).UserID()
	assert.True(t, ok)
	assert.Equal(t, int64(5), id)
}
