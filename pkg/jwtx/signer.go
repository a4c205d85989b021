package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenLifetime is the lifetime applied when a signer is constructed
// with a non-positive lifetime. Short-lived by design.
const DefaultTokenLifetime = 15 * time.Minute

// MinHS256KeyBytes is the minimum symmetric key length accepted for HS256.
// Anything shorter than the hash output weakens the MAC.
const MinHS256KeyBytes = 32

var (
	ErrWeakKey      = errors.New("jwtx: signing key shorter than 32 bytes")
	ErrNoIssuer     = errors.New("jwtx: issuer is required")
	ErrNoAudience   = errors.New("jwtx: audience is required")
	ErrSigning      = errors.New("jwtx: token signing failed")
	ErrMalformed    = errors.New("jwtx: malformed token")
	ErrExpired      = errors.New("jwtx: token expired")
	ErrInvalidSig   = errors.New("jwtx: invalid signature")
	ErrIssuer       = errors.New("jwtx: issuer mismatch")
	ErrAudience     = errors.New("jwtx: audience mismatch")
	ErrInvalidClaim = errors.New("jwtx: invalid claims")
)

// SignedToken is the result of a signing operation: the compact serialized
// token plus the time bounds and the full claim set the signature covers.
type SignedToken struct {
	Token     string
	IssuedAt  time.Time
	ExpiresAt time.Time
	Claims    *ClaimSet
}

// HS256Signer serializes claim sets into compact HMAC-SHA-256 signed tokens.
// Issuer, audience, key and lifetime come from service configuration and are
// immutable for the life of the process.
type HS256Signer struct {
	key      []byte
	issuer   string
	audience string
	lifetime time.Duration
}

// NewHS256Signer validates the key material and returns a signer. A key
// shorter than MinHS256KeyBytes fails with ErrWeakKey so a misconfigured
// deployment dies at startup rather than minting forgeable tokens.
func NewHS256Signer(key []byte, issuer, audience string, lifetime time.Duration) (*HS256Signer, error) {
	if len(key) < MinHS256KeyBytes {
		return nil, ErrWeakKey
	}
	if issuer == "" {
		return nil, ErrNoIssuer
	}
	if audience == "" {
		return nil, ErrNoAudience
	}
	if lifetime <= 0 {
		lifetime = DefaultTokenLifetime
	}

	k := make([]byte, len(key))
	copy(k, key)

	return &HS256Signer{
		key:      k,
		issuer:   issuer,
		audience: audience,
		lifetime: lifetime,
	}, nil
}

// Lifetime returns the configured token lifetime.
func (s *HS256Signer) Lifetime() time.Duration { return s.lifetime }

// Sign appends issuer, audience and the time bounds to a copy of the given
// claims and produces a compact signed token. IssuedAt and ExpiresAt are
// always set by the signer; callers cannot override them. The signature
// covers the entire ordered claim set including the timestamps, so two
// issuances are never byte-identical as long as their jti values differ.
func (s *HS256Signer) Sign(claims *ClaimSet) (SignedToken, error) {
	now := time.Now().UTC()
	expires := now.Add(s.lifetime)

	full := claims.Clone().
		Add(ClaimIssuer, s.issuer).
		Add(ClaimAudience, s.audience).
		Add(ClaimExpiresAt, jwt.NewNumericDate(expires)).
		Add(ClaimIssuedAt, jwt.NewNumericDate(now))

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, full).SignedString(s.key)
	if err != nil {
		return SignedToken{}, fmt.Errorf("%w: %v", ErrSigning, err)
	}

	return SignedToken{
		Token:     token,
		IssuedAt:  now,
		ExpiresAt: expires,
		Claims:    full,
	}, nil
}
