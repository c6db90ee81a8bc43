package apiapp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/akulikov/tasklist/internal/domain/model"
	authsvc "github.com/akulikov/tasklist/internal/services/auth"
	"github.com/akulikov/tasklist/internal/services/password"
)

type staticUserStore struct {
	user model.User
}

func (s *staticUserStore) Create(_ context.Context, user model.User) (model.User, error) {
	return user, nil
}

func (s *staticUserStore) FindByEmail(_ context.Context, email string) (model.User, error) {
	if email != s.user.Email {
		return model.User{}, authsvc.ErrUserNotFound
	}
	return s.user, nil
}

func (s *staticUserStore) FindByID(_ context.Context, id string) (model.User, error) {
	if id != s.user.ID {
		return model.User{}, authsvc.ErrUserNotFound
	}
	return s.user, nil
}

func (s *staticUserStore) FindByIDAndToken(_ context.Context, id, token string) (model.User, error) {
	if id != s.user.ID {
		return model.User{}, authsvc.ErrSessionNotFound
	}
	for _, session := range s.user.Sessions {
		if session.Token == token {
			return s.user, nil
		}
	}
	return model.User{}, authsvc.ErrSessionNotFound
}

func (s *staticUserStore) AppendSession(_ context.Context, userID string, session model.Session) error {
	s.user.Sessions = append(s.user.Sessions, session)
	return nil
}

func newTestAuthService(store authsvc.UserStore) *authsvc.Service {
	jwtManager := authsvc.NewJWTManager("test-secret", 15*time.Minute)
	return authsvc.NewService(jwtManager, store, password.NewHasher(4), 10)
}

func TestAuthMiddlewareRejectsMissingToken(t *testing.T) {
	mw := AuthMiddleware(newTestAuthService(&staticUserStore{}), nil)

	req := httptest.NewRequest(http.MethodGet, "/lists", nil)
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called without a token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareRejectsGarbageToken(t *testing.T) {
	mw := AuthMiddleware(newTestAuthService(&staticUserStore{}), nil)

	req := httptest.NewRequest(http.MethodGet, "/lists", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called on invalid token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestAuthMiddlewareAcceptsBearerAndLegacyHeader(t *testing.T) {
	service := newTestAuthService(&staticUserStore{})
	token, _, err := service.RefreshAccessToken("user-1")
	if err != nil {
		t.Fatalf("mint access token: %v", err)
	}

	for _, tt := range []struct {
		name   string
		header string
		value  string
	}{
		{name: "bearer", header: "Authorization", value: "Bearer " + token},
		{name: "legacy", header: "x-access-token", value: token},
	} {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/lists", nil)
			req.Header.Set(tt.header, tt.value)
			rr := httptest.NewRecorder()

			AuthMiddleware(service, nil)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				identity, ok := authsvc.IdentityFromContext(r.Context())
				if !ok || identity.UserID != "user-1" {
					t.Fatalf("identity missing or wrong: %+v", identity)
				}
				w.WriteHeader(http.StatusNoContent)
			})).ServeHTTP(rr, req)

			if rr.Code != http.StatusNoContent {
				t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
			}
		})
	}
}

func TestSessionMiddlewareRequiresBothHeaders(t *testing.T) {
	store := &staticUserStore{user: model.User{ID: "user-1", Email: "a@b.c"}}
	mw := SessionMiddleware(newTestAuthService(store), nil)

	for _, tt := range []struct {
		name    string
		headers map[string]string
	}{
		{name: "no headers", headers: nil},
		{name: "token only", headers: map[string]string{"x-refresh-token": "tok"}},
		{name: "id only", headers: map[string]string{"_id": "user-1"}},
	} {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/users/me/access-token", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()

			mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				t.Fatalf("handler must not be called with incomplete headers")
			})).ServeHTTP(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusBadRequest)
			}
		})
	}
}

func TestSessionMiddlewareAcceptsAlternateHeaderNames(t *testing.T) {
	store := &staticUserStore{user: model.User{
		ID:    "user-1",
		Email: "a@b.c",
		Sessions: []model.Session{
			{Token: "refresh-token-1", ExpiresAt: time.Now().Add(time.Hour).Unix()},
		},
	}}
	mw := SessionMiddleware(newTestAuthService(store), nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me/access-token", nil)
	req.Header.Set("refreshToken", "refresh-token-1")
	req.Header.Set("x-id", "user-1")
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := authsvc.SessionFromContext(r.Context())
		if !ok || session.UserID != "user-1" || session.RefreshToken != "refresh-token-1" {
			t.Fatalf("session context missing or wrong: %+v", session)
		}
		w.WriteHeader(http.StatusNoContent)
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusNoContent {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusNoContent)
	}
}

func TestSessionMiddlewareRejectsExpiredSession(t *testing.T) {
	store := &staticUserStore{user: model.User{
		ID:    "user-1",
		Email: "a@b.c",
		Sessions: []model.Session{
			{Token: "refresh-token-1", ExpiresAt: time.Now().Add(-time.Hour).Unix()},
		},
	}}
	mw := SessionMiddleware(newTestAuthService(store), nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me/access-token", nil)
	req.Header.Set("x-refresh-token", "refresh-token-1")
	req.Header.Set("_id", "user-1")
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called for expired session")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}

func TestSessionMiddlewareRejectsUnknownToken(t *testing.T) {
	store := &staticUserStore{user: model.User{ID: "user-1", Email: "a@b.c"}}
	mw := SessionMiddleware(newTestAuthService(store), nil)

	req := httptest.NewRequest(http.MethodGet, "/users/me/access-token", nil)
	req.Header.Set("x-refresh-token", "missing-token")
	req.Header.Set("_id", "user-1")
	rr := httptest.NewRecorder()

	mw(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		t.Fatalf("handler must not be called for unknown token")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusUnauthorized)
	}
}
