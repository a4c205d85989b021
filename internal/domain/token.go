package domain

import "time"

// IssuedToken is the result of a successful token issuance: the compact
// signed bearer token and its validity window. Tokens are stateless; nothing
// is persisted and there is no revocation list.
type IssuedToken struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
}
