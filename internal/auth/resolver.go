package auth

import (
	"context"
	"log/slog"
	"strings"
)

// UserLookup loads a live user record by id.
type UserLookup interface {
	GetUserByID(ctx context.Context, id int64) (*User, error)
}

// Resolver turns an Authorization header into an Identity. It never fails:
// a missing, malformed, badly signed or expired token, or a token for a user
// that no longer exists, all resolve to Anonymous.
type Resolver struct {
	tokens *TokenIssuer
	users  UserLookup
	log    *slog.Logger
}

func NewResolver(tokens *TokenIssuer, users UserLookup, log *slog.Logger) *Resolver {
	return &Resolver{
		tokens: tokens,
		users:  users,
		log:    log,
	}
}

func (r *Resolver) Resolve(ctx context.Context, authorizationHeader string) Identity {
	if strings.TrimSpace(authorizationHeader) == "" {
		return Anonymous()
	}

	token, ok := ExtractToken(authorizationHeader)
	if !ok {
		r.log.DebugContext(ctx, "Malformed authorization header")
		return Anonymous()
	}

	userID, _, err := r.tokens.Verify(token)
	if err != nil {
		r.log.DebugContext(ctx, "Token rejected", slog.String("reason", err.Error()))
		return Anonymous()
	}

	user, err := r.users.GetUserByID(ctx, userID)
	if err != nil {
		r.log.DebugContext(ctx, "Token subject could not be loaded",
			slog.Int64("user_id", userID), slog.String("reason", err.Error()))
		return Anonymous()
	}

	user.Token = token
	return Authenticated(user)
}

// ExtractToken accepts "Token <jwt>" and "Bearer <jwt>".
func ExtractToken(authorizationHeader string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(authorizationHeader), " ")
	if !found {
		return "", false
	}
	if !strings.EqualFold(scheme, "Token") && !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.Contains(token, " ") {
		return "", false
	}
	return token, true
}
