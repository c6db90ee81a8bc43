package model

import "time"

// User is the credential record. PasswordHash always holds a bcrypt hash,
// never a plaintext password.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Sessions     []Session
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
