package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/Chris-Devine/codecamp/internal/domain"
	"github.com/Chris-Devine/codecamp/internal/store"
	"github.com/Chris-Devine/codecamp/pkg/cryptox"
	"github.com/Chris-Devine/codecamp/pkg/idx"
	"github.com/Chris-Devine/codecamp/pkg/slogx"
)

const (
	// DefaultSessionTTL is how long a non-persistent session lives server-side.
	DefaultSessionTTL = 12 * time.Hour

	// PersistentSessionTTL is used when the caller asked to stay signed in.
	PersistentSessionTTL = 30 * 24 * time.Hour
)

// ErrInvalidSession reports a cookie token that maps to no live session.
var ErrInvalidSession = errors.New("invalid_session")

// SignInOptions mirror the sign-in form: keep the session across browser
// restarts, and count failed attempts against the account.
type SignInOptions struct {
	Persistent       bool
	LockoutOnFailure bool
}

// SessionService is the cookie-based sign-in fallback for browser callers
// that cannot hold a bearer token. Only the SHA-256 fingerprint of the opaque
// session token is stored; the token itself exists solely in the cookie.
type SessionService struct {
	Store store.Store
}

// SignIn verifies the credentials and creates a session, returning the opaque
// token to place in the cookie. Unknown users and wrong passwords both come
// back as ErrInvalidCredentials; only the latter bumps the failure counter
// when lockout tracking is requested.
func (s *SessionService) SignIn(ctx context.Context, username, password string, opts SignInOptions) (string, domain.Session, error) {
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			l.Info("sign-in for unknown user", slog.String("username", username))
			return "", domain.Session{}, ErrInvalidCredentials
		}
		return "", domain.Session{}, err
	}

	result, err := cryptox.VerifyPassword(password, user.PasswordHash)
	if err != nil {
		l.Error("stored password hash is malformed",
			slog.Any("error", err),
			slog.String("user_id", user.ID),
		)
		return "", domain.Session{}, err
	}
	if err := ctx.Err(); err != nil {
		return "", domain.Session{}, err
	}

	switch result {
	case cryptox.VerifyFailed:
		if opts.LockoutOnFailure {
			if err := s.Store.Users().RecordAccessFailure(ctx, user.ID); err != nil {
				l.Warn("recording access failure failed", slog.Any("error", err))
			}
		}
		l.Info("sign-in password verification failed", slog.String("user_id", user.ID))
		return "", domain.Session{}, ErrInvalidCredentials

	case cryptox.VerifyRehashNeeded:
		if newHash, err := cryptox.HashPassword(password); err == nil {
			if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, newHash); err != nil {
				l.Warn("password hash upgrade failed", slog.Any("error", err))
			}
		}
	}

	opaque, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", domain.Session{}, err
	}

	ttl := DefaultSessionTTL
	if opts.Persistent {
		ttl = PersistentSessionTTL
	}

	session := domain.Session{
		ID:         idx.New().String(),
		UserID:     user.ID,
		Username:   user.Username,
		TokenHash:  cryptox.FingerprintToken(opaque),
		Persistent: opts.Persistent,
		ExpiresAt:  time.Now().UTC().Add(ttl),
	}

	if err := s.Store.Sessions().CreateSession(ctx, session); err != nil {
		return "", domain.Session{}, err
	}

	return opaque, session, nil
}

// Resolve maps an opaque cookie token back to its live session.
func (s *SessionService) Resolve(ctx context.Context, opaque string) (domain.Session, error) {
	if opaque == "" {
		return domain.Session{}, ErrInvalidSession
	}

	session, err := s.Store.Sessions().GetSessionByTokenHash(ctx, cryptox.FingerprintToken(opaque))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Session{}, ErrInvalidSession
		}
		return domain.Session{}, err
	}
	return session, nil
}

// SignOut deletes the session behind the opaque cookie token. Unknown tokens
// are not an error; the outcome the caller wants already holds.
func (s *SessionService) SignOut(ctx context.Context, opaque string) error {
	if opaque == "" {
		return nil
	}
	err := s.Store.Sessions().DeleteSession(ctx, cryptox.FingerprintToken(opaque))
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	return err
}
