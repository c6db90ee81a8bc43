package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/akulikov/tasklist/internal/pkg/validate"
	authsvc "github.com/akulikov/tasklist/internal/services/auth"
	"github.com/akulikov/tasklist/internal/transport/http/dto"
	httperrors "github.com/akulikov/tasklist/internal/transport/http/errors"
)

type LoginLimiter interface {
	AllowLogin(ctx context.Context, email string) (int64, bool, error)
}

type AuthHandler struct {
	service *authsvc.Service
	limiter LoginLimiter
}

func NewAuthHandler(service *authsvc.Service) *AuthHandler {
	return &AuthHandler{service: service}
}

// AttachLoginLimiter enables per-account login throttling. Without it logins
// are unthrottled.
func (h *AuthHandler) AttachLoginLimiter(limiter LoginLimiter) {
	h.limiter = limiter
}

// Signup handles POST /users. The response body is the sanitized user; the
// tokens travel in the x-access-token and x-refresh-token response headers.
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.SignupRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "email and a password of at least 8 characters are required")
		return
	}

	res, err := h.service.Signup(r.Context(), req.Email, req.Password)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	w.Header().Set("x-refresh-token", res.RefreshToken)
	w.Header().Set("x-access-token", res.AccessToken)
	httperrors.Write(w, http.StatusCreated, dto.UserResponse{
		ID:    res.User.ID,
		Email: res.User.Email,
	})
}

// Login handles POST /users/login. Bad credentials always produce the same
// generic reply regardless of which part failed.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		writeBadRequest(w, "VALIDATION_ERROR", "email and password are required")
		return
	}

	if h.limiter != nil {
		retryAfter, allowed, err := h.limiter.AllowLogin(r.Context(), req.Email)
		if err == nil && !allowed {
			httperrors.Write(w, http.StatusTooManyRequests, httperrors.RateLimitError{
				Code:          "TOO_MANY_ATTEMPTS",
				Message:       "too many login attempts",
				RetryAfterSec: retryAfter,
			})
			return
		}
	}

	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleAuthError(w, err)
		return
	}

	w.Header().Set("x-refresh-token", res.RefreshToken)
	w.Header().Set("x-access-token", res.AccessToken)
	httperrors.Write(w, http.StatusOK, dto.LoginResponse{
		ID:           res.User.ID,
		Email:        res.User.Email,
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
	})
}

// AccessToken handles GET /users/me/access-token. The session gate has
// already verified the (user id, refresh token) pair; this only mints a fresh
// access token. The refresh token is never rotated here.
func (h *AuthHandler) AccessToken(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		writeInternal(w, "AUTH_SERVICE_UNAVAILABLE", "auth service is unavailable")
		return
	}

	session, ok := authsvc.SessionFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "session verification required")
		return
	}

	accessToken, _, err := h.service.RefreshAccessToken(session.UserID)
	if err != nil {
		writeInternal(w, "INTERNAL_ERROR", "failed to generate access token")
		return
	}

	w.Header().Set("x-access-token", accessToken)
	httperrors.Write(w, http.StatusOK, dto.AccessTokenResponse{AccessToken: accessToken})
}

func handleAuthError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, authsvc.ErrInvalidInput):
		writeBadRequest(w, "VALIDATION_ERROR", "email and password are required")
	case errors.Is(err, authsvc.ErrEmailTaken):
		httperrors.Write(w, http.StatusConflict, httperrors.APIError{
			Code:    "EMAIL_TAKEN",
			Message: "email already exists",
		})
	case errors.Is(err, authsvc.ErrBadCredentials):
		writeUnauthorized(w, "BAD_CREDENTIALS", "invalid email or password")
	default:
		writeInternal(w, "INTERNAL_ERROR", "internal server error")
	}
}
