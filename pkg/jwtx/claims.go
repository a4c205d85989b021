// Package jwtx wraps golang-jwt with an order-preserving claim set and an
// HMAC-SHA-256 signer/verifier pair sharing one symmetric key.
package jwtx

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Registered claim types used across the service.
const (
	ClaimSubject    = "sub"
	ClaimTokenID    = "jti"
	ClaimGivenName  = "given_name"
	ClaimFamilyName = "family_name"
	ClaimEmail      = "email"
	ClaimIssuer     = "iss"
	ClaimAudience   = "aud"
	ClaimExpiresAt  = "exp"
	ClaimIssuedAt   = "iat"
	ClaimNotBefore  = "nbf"
)

// Claim is a single (type, value) assertion about an identity.
type Claim struct {
	Type  string
	Value any
}

// ClaimSet is an explicitly ordered sequence of claims. Unlike a map-backed
// claim type it keeps insertion order and permits duplicate claim types; the
// payload is serialized exactly in the order claims were added. When a type
// occurs more than once, lookups return the last occurrence, matching how
// JSON consumers read duplicate object keys.
//
// ClaimSet implements jwt.Claims, json.Marshaler and json.Unmarshaler, so it
// can be passed directly to golang-jwt for signing and parsing.
type ClaimSet struct {
	claims []Claim
}

// NewClaimSet returns an empty claim set.
func NewClaimSet() *ClaimSet {
	return &ClaimSet{}
}

// Add appends a claim, keeping any existing claims of the same type.
func (cs *ClaimSet) Add(claimType string, value any) *ClaimSet {
	cs.claims = append(cs.claims, Claim{Type: claimType, Value: value})
	return cs
}

// Len returns the number of claims including duplicates.
func (cs *ClaimSet) Len() int { return len(cs.claims) }

// Claims returns a copy of the ordered claim sequence.
func (cs *ClaimSet) Claims() []Claim {
	out := make([]Claim, len(cs.claims))
	copy(out, cs.claims)
	return out
}

// Clone returns an independent copy of the claim set.
func (cs *ClaimSet) Clone() *ClaimSet {
	return &ClaimSet{claims: cs.Claims()}
}

// Get returns the value of the last claim with the given type.
func (cs *ClaimSet) Get(claimType string) (any, bool) {
	for i := len(cs.claims) - 1; i >= 0; i-- {
		if cs.claims[i].Type == claimType {
			return cs.claims[i].Value, true
		}
	}
	return nil, false
}

// GetString returns the last claim of the given type as a string.
func (cs *ClaimSet) GetString(claimType string) (string, bool) {
	v, ok := cs.Get(claimType)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

// MarshalJSON writes the claims as a JSON object in insertion order.
// Duplicate keys are written as-is; RFC 8259 tolerates them and consumers
// conventionally take the last value.
func (cs *ClaimSet) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range cs.claims {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Type)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(c.Value)
		if err != nil {
			return nil, fmt.Errorf("marshal claim %q: %w", c.Type, err)
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving key order and duplicates.
func (cs *ClaimSet) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("%w: claims payload is not an object", ErrMalformed)
	}

	cs.claims = cs.claims[:0]
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("%w: non-string claim type", ErrMalformed)
		}

		var value any
		if err := dec.Decode(&value); err != nil {
			return fmt.Errorf("%w: claim %q: %v", ErrMalformed, key, err)
		}
		cs.claims = append(cs.claims, Claim{Type: key, Value: value})
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return nil
}

/* jwt.Claims implementation */

func (cs *ClaimSet) GetExpirationTime() (*jwt.NumericDate, error) {
	return cs.numericDate(ClaimExpiresAt)
}

func (cs *ClaimSet) GetIssuedAt() (*jwt.NumericDate, error) {
	return cs.numericDate(ClaimIssuedAt)
}

func (cs *ClaimSet) GetNotBefore() (*jwt.NumericDate, error) {
	return cs.numericDate(ClaimNotBefore)
}

func (cs *ClaimSet) GetIssuer() (string, error) {
	v, ok := cs.Get(ClaimIssuer)
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: iss is not a string", ErrInvalidClaim)
	}
	return s, nil
}

func (cs *ClaimSet) GetSubject() (string, error) {
	v, ok := cs.Get(ClaimSubject)
	if !ok {
		return "", nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: sub is not a string", ErrInvalidClaim)
	}
	return s, nil
}

func (cs *ClaimSet) GetAudience() (jwt.ClaimStrings, error) {
	v, ok := cs.Get(ClaimAudience)
	if !ok {
		return nil, nil
	}
	switch aud := v.(type) {
	case string:
		return jwt.ClaimStrings{aud}, nil
	case []string:
		return jwt.ClaimStrings(aud), nil
	case []any:
		out := make(jwt.ClaimStrings, 0, len(aud))
		for _, item := range aud {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("%w: aud entry is not a string", ErrInvalidClaim)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: aud has unsupported type %T", ErrInvalidClaim, v)
	}
}

// numericDate converts the last claim of the given type into a NumericDate.
// Absent claims return (nil, nil) which golang-jwt treats as "not present".
func (cs *ClaimSet) numericDate(claimType string) (*jwt.NumericDate, error) {
	v, ok := cs.Get(claimType)
	if !ok {
		return nil, nil
	}

	switch d := v.(type) {
	case *jwt.NumericDate:
		return d, nil
	case jwt.NumericDate:
		return &d, nil
	case time.Time:
		return jwt.NewNumericDate(d), nil
	case json.Number:
		f, err := d.Float64()
		if err != nil {
			return nil, fmt.Errorf("%w: %s is not numeric", ErrInvalidClaim, claimType)
		}
		return jwt.NewNumericDate(time.Unix(0, int64(f*float64(time.Second)))), nil
	case float64:
		return jwt.NewNumericDate(time.Unix(0, int64(d*float64(time.Second)))), nil
	case int64:
		return jwt.NewNumericDate(time.Unix(d, 0)), nil
	case int:
		return jwt.NewNumericDate(time.Unix(int64(d), 0)), nil
	default:
		return nil, fmt.Errorf("%w: %s has unsupported type %T", ErrInvalidClaim, claimType, v)
	}
}
