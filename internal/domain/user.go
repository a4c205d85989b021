package domain

import "time"

// User is a credential-store record. The authentication core only reads it;
// the single exception is the password hash, which may be upgraded in place
// after a successful verification against an outdated hash.
type User struct {
	ID                string
	Username          string
	FirstName         string
	LastName          string
	Email             string
	PasswordHash      string // argon2id, PHC encoded
	AccessFailedCount int
	Claims            []CustomClaim // store-ordered
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// CustomClaim is an arbitrary (type, value) assertion attached to a user.
// Claims are kept in an explicit store order and appended verbatim to every
// token issued for the user.
type CustomClaim struct {
	Type  string
	Value string
}
