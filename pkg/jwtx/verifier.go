package jwtx

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a compact token and returns its claims if it's legit.
type Verifier interface {
	Verify(token string) (*ClaimSet, error)
}

// HS256Verifier checks HMAC-SHA-256 tokens against the same symmetric key,
// issuer and audience the signer was configured with. Any holder of the key
// can verify a token without contacting the issuer.
type HS256Verifier struct {
	key      []byte
	issuer   string
	audience string
	parser   *jwt.Parser
}

// NewHS256Verifier builds a verifier enforcing algorithm, issuer, audience
// and expiry. The same key length rules as the signer apply.
func NewHS256Verifier(key []byte, issuer, audience string) (*HS256Verifier, error) {
	if len(key) < MinHS256KeyBytes {
		return nil, ErrWeakKey
	}

	k := make([]byte, len(key))
	copy(k, key)

	return &HS256Verifier{
		key:      k,
		issuer:   issuer,
		audience: audience,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithAudience(audience),
			jwt.WithExpirationRequired(),
		),
	}, nil
}

// Verify parses and validates token, returning the ordered claim set.
func (v *HS256Verifier) Verify(token string) (*ClaimSet, error) {
	claims := NewClaimSet()
	_, err := v.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return v.key, nil
	})
	if err != nil {
		return nil, translateError(err)
	}
	return claims, nil
}

// translateError maps golang-jwt's joined errors onto the package sentinels
// so callers can errors.Is without importing the underlying library.
func translateError(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return ErrInvalidSig
	case errors.Is(err, jwt.ErrTokenInvalidIssuer):
		return ErrIssuer
	case errors.Is(err, jwt.ErrTokenInvalidAudience):
		return ErrAudience
	case errors.Is(err, jwt.ErrTokenMalformed):
		return ErrMalformed
	default:
		return err
	}
}
