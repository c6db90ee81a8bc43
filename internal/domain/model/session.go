package model

// Session is one refresh grant: an opaque token plus an absolute expiry in
// epoch seconds. A user holds one session per logged-in device.
type Session struct {
	Token     string
	ExpiresAt int64
}
