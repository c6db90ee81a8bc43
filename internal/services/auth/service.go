package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/akulikov/tasklist/internal/domain/model"
	"github.com/akulikov/tasklist/internal/services/password"
)

const DefaultRefreshTTLDays = 10

type Service struct {
	jwt            *JWTManager
	users          UserStore
	hasher         *password.Hasher
	refreshTTLDays int
	now            func() time.Time
}

func NewService(jwtManager *JWTManager, users UserStore, hasher *password.Hasher, refreshTTLDays int) *Service {
	if refreshTTLDays <= 0 {
		refreshTTLDays = DefaultRefreshTTLDays
	}

	return &Service{
		jwt:            jwtManager,
		users:          users,
		hasher:         hasher,
		refreshTTLDays: refreshTTLDays,
		now:            time.Now,
	}
}

// Signup creates the account, opens its first session and issues an access
// token. The email pre-check keeps the original "email already exists" reply,
// but the store's unique index is the authoritative duplicate signal.
func (s *Service) Signup(ctx context.Context, email, plaintext string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || plaintext == "" {
		return AuthResult{}, ErrInvalidInput
	}

	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return AuthResult{}, ErrEmailTaken
	} else if !errors.Is(err, ErrUserNotFound) {
		return AuthResult{}, fmt.Errorf("check email uniqueness: %w", err)
	}

	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return AuthResult{}, fmt.Errorf("hash signup password: %w", err)
	}

	user, err := s.users.Create(ctx, model.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
	})
	if err != nil {
		return AuthResult{}, fmt.Errorf("create user: %w", err)
	}

	return s.issueForUser(ctx, user)
}

// Login verifies credentials and opens a new session. Unknown email and wrong
// password both map to ErrBadCredentials so the response cannot be used to
// enumerate accounts.
func (s *Service) Login(ctx context.Context, email, plaintext string) (AuthResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || plaintext == "" {
		return AuthResult{}, ErrInvalidInput
	}

	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return AuthResult{}, ErrBadCredentials
		}
		return AuthResult{}, fmt.Errorf("find user by email: %w", err)
	}

	ok, err := s.hasher.Verify(plaintext, user.PasswordHash)
	if err != nil {
		return AuthResult{}, fmt.Errorf("verify password: %w", err)
	}
	if !ok {
		return AuthResult{}, ErrBadCredentials
	}

	return s.issueForUser(ctx, user)
}

// VerifySession authorizes a (userID, refreshToken) pair for minting a fresh
// access token. The token-containment lookup runs first; expiry is checked on
// the matching entry afterwards, so a matched-but-expired token is still
// rejected.
func (s *Service) VerifySession(ctx context.Context, userID, refreshToken string) (model.User, error) {
	if strings.TrimSpace(userID) == "" || strings.TrimSpace(refreshToken) == "" {
		return model.User{}, ErrInvalidInput
	}

	user, err := s.FindSession(ctx, userID, refreshToken)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) || errors.Is(err, ErrSessionNotFound) {
			return model.User{}, ErrSessionNotFound
		}
		return model.User{}, fmt.Errorf("find session: %w", err)
	}

	for _, session := range user.Sessions {
		if session.Token == refreshToken && !s.IsExpired(session.ExpiresAt) {
			return user, nil
		}
	}

	return model.User{}, ErrSessionExpired
}

// RefreshAccessToken mints a replacement access token for an
// already-verified session. The refresh token itself is never rotated here;
// a session is reused until it expires naturally.
func (s *Service) RefreshAccessToken(userID string) (string, time.Time, error) {
	accessToken, expiresAt, err := s.jwt.GenerateAccessToken(userID)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("generate access token: %w", err)
	}
	return accessToken, expiresAt, nil
}

func (s *Service) ValidateAccessToken(accessToken string) (AccessClaims, error) {
	return s.jwt.ParseAccessToken(accessToken)
}

func (s *Service) issueForUser(ctx context.Context, user model.User) (AuthResult, error) {
	refreshToken, err := s.CreateSession(ctx, user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("create session: %w", err)
	}

	accessToken, accessExpires, err := s.jwt.GenerateAccessToken(user.ID)
	if err != nil {
		return AuthResult{}, fmt.Errorf("generate access token: %w", err)
	}

	return AuthResult{
		User:          user,
		AccessToken:   accessToken,
		RefreshToken:  refreshToken,
		AccessExpires: accessExpires,
	}, nil
}
