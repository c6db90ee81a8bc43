package dto

// SignupRequest mirrors the credential payload: email plus a password of at
// least 8 characters.
type SignupRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse is the sanitized user record. The password hash and the
// session list are never serialized on any route.
type UserResponse struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
}

type LoginResponse struct {
	ID           string `json:"_id"`
	Email        string `json:"email"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}
