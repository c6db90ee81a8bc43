package auth

import (
	"context"
	"errors"
	"time"

	"github.com/akulikov/tasklist/internal/domain/model"
)

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrBadCredentials  = errors.New("invalid email or password")
	ErrEmailTaken      = errors.New("email already exists")
	ErrUserNotFound    = errors.New("user not found")
	ErrSessionNotFound = errors.New("session not found")
	ErrSessionExpired  = errors.New("session expired")
	ErrTokenExpired    = errors.New("access token expired")
	ErrTokenInvalid    = errors.New("invalid access token")
)

// UserStore is the credential-store collaborator. Lookups are equality
// filters on email, id, and session token; writes go through Create and
// AppendSession only.
type UserStore interface {
	Create(ctx context.Context, user model.User) (model.User, error)
	FindByEmail(ctx context.Context, email string) (model.User, error)
	FindByID(ctx context.Context, id string) (model.User, error)
	FindByIDAndToken(ctx context.Context, id, token string) (model.User, error)
	AppendSession(ctx context.Context, userID string, session model.Session) error
}

type AccessClaims struct {
	UserID    string
	ExpiresAt time.Time
}

type AuthResult struct {
	User          model.User
	AccessToken   string
	RefreshToken  string
	AccessExpires time.Time
}
