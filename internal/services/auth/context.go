package auth

import (
	"context"

	"github.com/akulikov/tasklist/internal/domain/model"
)

type contextKey string

const (
	identityKey contextKey = "auth_identity"
	sessionKey  contextKey = "auth_session"
)

// Identity is what the access-token gate binds to the request context.
type Identity struct {
	UserID string
}

// SessionContext is what the refresh gate binds: the verified user record
// plus the refresh token that authorized the request.
type SessionContext struct {
	UserID       string
	RefreshToken string
	User         model.User
}

func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, identityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(identityKey).(Identity)
	return identity, ok
}

func WithSession(ctx context.Context, session SessionContext) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}

func SessionFromContext(ctx context.Context) (SessionContext, bool) {
	session, ok := ctx.Value(sessionKey).(SessionContext)
	return session, ok
}
