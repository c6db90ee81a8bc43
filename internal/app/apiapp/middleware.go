package apiapp

import (
	"errors"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	authsvc "github.com/akulikov/tasklist/internal/services/auth"
	httperrors "github.com/akulikov/tasklist/internal/transport/http/errors"
)

func ApplyMiddlewares(r chiRouter, log *zap.Logger) {
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(requestLogger(log))
}

// AuthMiddleware guards routes with a short-lived access token. The token
// is read from the Authorization header in Bearer form, with x-access-token
// kept as a fallback for older clients.
func AuthMiddleware(authService *authsvc.Service, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authService == nil {
				httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{
					Code:    "AUTH_SERVICE_UNAVAILABLE",
					Message: "auth service is unavailable",
				})
				return
			}

			accessToken, ok := extractAccessToken(r)
			if !ok {
				httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
					Code:    "UNAUTHORIZED",
					Message: "missing access token",
				})
				return
			}

			claims, err := authService.ValidateAccessToken(accessToken)
			if err != nil {
				if log != nil {
					log.Debug("auth middleware validation failed", zap.Error(err))
				}
				if errors.Is(err, authsvc.ErrTokenExpired) {
					httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
						Code:    "TOKEN_EXPIRED",
						Message: "access token expired",
					})
					return
				}
				httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
					Code:    "TOKEN_INVALID",
					Message: "invalid access token",
				})
				return
			}

			ctx := authsvc.WithIdentity(r.Context(), authsvc.Identity{
				UserID: claims.UserID,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionMiddleware guards the token refresh route with the long-lived
// refresh token. Both the user id and the refresh token arrive in headers;
// if either is absent the request is rejected before storage is touched.
func SessionMiddleware(authService *authsvc.Service, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authService == nil {
				httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{
					Code:    "AUTH_SERVICE_UNAVAILABLE",
					Message: "auth service is unavailable",
				})
				return
			}

			refreshToken := firstHeader(r, "x-refresh-token", "refreshToken")
			userID := firstHeader(r, "_id", "x-id")
			if refreshToken == "" || userID == "" {
				httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{
					Code:    "MISSING_CREDENTIALS",
					Message: "refresh token and user id headers are required",
				})
				return
			}

			user, err := authService.VerifySession(r.Context(), userID, refreshToken)
			if err != nil {
				if log != nil {
					log.Debug("session middleware verification failed", zap.Error(err))
				}
				switch {
				case errors.Is(err, authsvc.ErrInvalidInput):
					httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{
						Code:    "MISSING_CREDENTIALS",
						Message: "refresh token and user id headers are required",
					})
				case errors.Is(err, authsvc.ErrSessionExpired):
					httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
						Code:    "SESSION_EXPIRED",
						Message: "session expired, please log in again",
					})
				case errors.Is(err, authsvc.ErrSessionNotFound), errors.Is(err, authsvc.ErrUserNotFound):
					httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
						Code:    "SESSION_INVALID",
						Message: "invalid session",
					})
				default:
					httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{
						Code:    "INTERNAL_ERROR",
						Message: "internal server error",
					})
				}
				return
			}

			ctx := authsvc.WithSession(r.Context(), authsvc.SessionContext{
				UserID:       user.ID,
				RefreshToken: refreshToken,
				User:         user,
			})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractAccessToken(r *http.Request) (string, bool) {
	if token, ok := extractBearerToken(r.Header.Get("Authorization")); ok {
		return token, true
	}
	if token := strings.TrimSpace(r.Header.Get("x-access-token")); token != "" {
		return token, true
	}
	return "", false
}

func extractBearerToken(value string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(value), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return parts[1], true
}

func firstHeader(r *http.Request, names ...string) string {
	for _, name := range names {
		if value := strings.TrimSpace(r.Header.Get(name)); value != "" {
			return value
		}
	}
	return ""
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			next.ServeHTTP(w, r)
			if log != nil {
				log.Info("http_request",
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Duration("duration", time.Since(start)),
				)
			}
		})
	}
}

type chiRouter interface {
	Use(middlewares ...func(http.Handler) http.Handler)
}
