package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

// VerifyResult is the outcome of a password verification.
type VerifyResult int

const (
	// VerifyFailed means the password does not match the stored hash.
	VerifyFailed VerifyResult = iota

	// VerifySuccess means the password matches the stored hash.
	VerifySuccess

	// VerifyRehashNeeded means the password matches but the stored hash was
	// produced with outdated cost parameters. Callers should treat this as a
	// successful verification and re-hash the password at their convenience.
	VerifyRehashNeeded
)

// ErrMalformedHash reports a stored hash that is not a valid PHC-format
// Argon2id string. This indicates store corruption, not a wrong password.
var ErrMalformedHash = errors.New("cryptox: malformed password hash")

// HashPassword generates a PHC-format Argon2id hash string including salt and
// the current cost parameters.
func HashPassword(password string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", err
	}
	hash := argon2.IDKey(
		[]byte(password+GetPepper()),
		salt,
		iterations,
		memory,
		parallelism,
		keyLength,
	)
	b64Salt := base64.RawStdEncoding.EncodeToString(salt)
	b64Hash := base64.RawStdEncoding.EncodeToString(hash)

	return fmt.Sprintf(
		"$argon2id$v=19$m=%d,t=%d,p=%d$%s$%s",
		memory,
		iterations,
		parallelism,
		b64Salt,
		b64Hash,
	), nil
}

// VerifyPassword compares a plaintext password against a PHC-style Argon2id
// hash. The comparison of the derived keys is constant-time; the plaintext is
// never retained or logged.
//
// A non-nil error is only returned for malformed stored hashes. A wrong
// password is reported as (VerifyFailed, nil).
func VerifyPassword(password, encodedHash string) (VerifyResult, error) {
	salt, expected, params, err := decodeHash(encodedHash)
	if err != nil {
		return VerifyFailed, err
	}

	computed := argon2.IDKey(
		[]byte(password+GetPepper()),
		salt,
		params.iterations,
		params.memory,
		params.parallelism,
		uint32(len(expected)), // #nosec G115 - hash lengths are small
	)

	if subtle.ConstantTimeCompare(computed, expected) != 1 {
		return VerifyFailed, nil
	}

	if params.outdated(uint32(len(expected))) {
		return VerifyRehashNeeded, nil
	}
	return VerifySuccess, nil
}

type hashParams struct {
	memory      uint32
	iterations  uint32
	parallelism uint8
}

// outdated reports whether the stored parameters lag the current defaults.
func (p hashParams) outdated(storedKeyLen uint32) bool {
	return p.memory != memory ||
		p.iterations != iterations ||
		p.parallelism != parallelism ||
		storedKeyLen != keyLength
}

// decodeHash parses "$argon2id$v=19$m=X,t=Y,p=Z$salt$hash".
func decodeHash(encodedHash string) ([]byte, []byte, hashParams, error) {
	var params hashParams

	parts := make([]string, 0, 6)
	start := 0
	for i := range len(encodedHash) {
		if encodedHash[i] == '$' {
			parts = append(parts, encodedHash[start:i])
			start = i + 1
		}
	}
	parts = append(parts, encodedHash[start:])

	// Expected structure: ["", "argon2id", "v=19", "m=X,t=Y,p=Z", salt, hash]
	if len(parts) != 6 {
		return nil, nil, params, fmt.Errorf("%w: expected 6 parts, got %d", ErrMalformedHash, len(parts))
	}
	if parts[1] != "argon2id" {
		return nil, nil, params, fmt.Errorf("%w: unsupported algorithm %q", ErrMalformedHash, parts[1])
	}
	if parts[2] != "v=19" {
		return nil, nil, params, fmt.Errorf("%w: unsupported version %q", ErrMalformedHash, parts[2])
	}

	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d",
		&params.memory, &params.iterations, &params.parallelism); err != nil {
		return nil, nil, params, fmt.Errorf("%w: bad parameters: %v", ErrMalformedHash, err)
	}

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, params, fmt.Errorf("%w: bad salt encoding", ErrMalformedHash)
	}
	hash, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, params, fmt.Errorf("%w: bad hash encoding", ErrMalformedHash)
	}

	return salt, hash, params, nil
}
