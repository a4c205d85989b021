package domain

import "time"

// Session is a server-side sign-in record backing cookie authentication.
// Only the SHA-256 fingerprint of the opaque session token is stored.
type Session struct {
	ID         string
	UserID     string
	Username   string
	TokenHash  string
	Persistent bool
	ExpiresAt  time.Time
	CreatedAt  time.Time
}
