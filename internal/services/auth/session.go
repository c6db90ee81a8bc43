package auth

import (
	"context"
	"fmt"

	"github.com/akulikov/tasklist/internal/domain/model"
)

// CreateSession mints a refresh token, stamps its expiry and appends the
// session to the user's session list. This is the only write path for
// sessions; nothing here ever rewrites or removes existing entries.
func (s *Service) CreateSession(ctx context.Context, userID string) (string, error) {
	token, err := NewSessionToken()
	if err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}

	session := model.Session{
		Token:     token,
		ExpiresAt: s.now().Unix() + s.refreshTTLSeconds(),
	}
	if err := s.users.AppendSession(ctx, userID, session); err != nil {
		return "", fmt.Errorf("append session: %w", err)
	}

	return token, nil
}

// IsExpired treats an expiry exactly equal to now as already expired.
func (s *Service) IsExpired(expiresAt int64) bool {
	return expiresAt <= s.now().Unix()
}

// FindSession locates the user whose session list contains token. Presence of
// the token is necessary but not sufficient: the caller still has to check
// expiry on the matching entry.
func (s *Service) FindSession(ctx context.Context, userID, token string) (model.User, error) {
	user, err := s.users.FindByIDAndToken(ctx, userID, token)
	if err != nil {
		return model.User{}, err
	}
	return user, nil
}

func (s *Service) refreshTTLSeconds() int64 {
	return int64(s.refreshTTLDays) * 24 * 60 * 60
}
