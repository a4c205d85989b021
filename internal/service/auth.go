// Package service holds the application services that sit between the HTTP
// layer and the store.
package service

import (
	"context"
	"errors"
	"log/slog"

	"github.com/google/uuid"

	"github.com/Chris-Devine/codecamp/internal/domain"
	"github.com/Chris-Devine/codecamp/internal/store"
	"github.com/Chris-Devine/codecamp/pkg/cryptox"
	"github.com/Chris-Devine/codecamp/pkg/jwtx"
	"github.com/Chris-Devine/codecamp/pkg/slogx"
)

var (
	// ErrUserNotFound and ErrInvalidCredentials are kept distinct internally
	// for logging and tests. The HTTP layer collapses both into the same
	// opaque response so callers cannot enumerate usernames.
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid_credentials")
	ErrSigningFailed      = errors.New("token signing failed")
)

// AuthService verifies credentials and issues signed bearer tokens.
type AuthService struct {
	Store  store.Store
	Signer *jwtx.HS256Signer
}

// IssueToken runs the full issuance path: credential lookup, password
// verification, claim composition and signing. On success the stored hash is
// opportunistically upgraded if it was produced with outdated cost
// parameters; a failed upgrade never fails the issuance.
func (s *AuthService) IssueToken(ctx context.Context, username, password string) (domain.IssuedToken, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("token issuance for unknown user", slog.String("username", username))
			return domain.IssuedToken{}, ErrUserNotFound
		}
		return domain.IssuedToken{}, err
	}

	result, err := cryptox.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		// A malformed stored hash is corruption, not a wrong password.
		l.Error("stored password hash is malformed",
			slog.Any("error", err),
			slog.String("user_id", user.ID),
		)
		return domain.IssuedToken{}, err
	}

	// Verification is CPU-bound and ignores the context; discard the result
	// if the caller went away in the meantime.
	if err := ctx.Err(); err != nil {
		return domain.IssuedToken{}, err
	}

	switch result {
	case cryptox.VerifyFailed:
		l.Info("password verification failed", slog.String("user_id", user.ID))
		return domain.IssuedToken{}, ErrInvalidCredentials

	case cryptox.VerifyRehashNeeded:
		l.Info("password hash uses outdated parameters, upgrading", slog.String("user_id", user.ID))
		if newHash, err := cryptox.HashPassword(password); err == nil {
			if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
				l.Warn("password hash upgrade failed", slog.Any("error", err))
			}
		}
	}

	signed, err := s.Signer.Sign(ComposeClaims(user))
	if err != nil {
		l.Error("token signing failed", slog.Any("error", err), slog.String("user_id", user.ID))
		return domain.IssuedToken{}, ErrSigningFailed
	}

	return domain.IssuedToken{
		Token:     signed.Token,
		IssuedAt:  signed.IssuedAt,
		ExpiresAt: signed.ExpiresAt,
	}, nil
}

// ComposeClaims builds the ordered claim set for a user: the identity claims
// first, then the user's custom claims exactly in store order. Custom claims
// are appended verbatim, so a custom "email" claim coexists with the identity
// one rather than replacing it.
func ComposeClaims(user domain.User) *jwtx.ClaimSet {
	cs := jwtx.NewClaimSet().
		Add(jwtx.ClaimSubject, user.Username).
		Add(jwtx.ClaimTokenID, uuid.NewString()).
		Add(jwtx.ClaimGivenName, user.FirstName).
		Add(jwtx.ClaimFamilyName, user.LastName).
		Add(jwtx.ClaimEmail, user.Email)

	for _, c := range user.Claims {
		cs.Add(c.Type, c.Value)
	}
	return cs
}
