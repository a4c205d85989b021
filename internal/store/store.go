// Package store defines the data access contracts for the camp backend.
// Concrete drivers live under drivers/.
package store

import (
	"context"
	"errors"

	"github.com/Chris-Devine/codecamp/internal/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. It exposes sub-repositories to
// keep concerns tidy and testable; multi-step operations that must be atomic
// go through WithTx.
type Store interface {
	Users() Users
	Camps() Camps
	Sessions() Sessions

	ApplyMigrations() error

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error

	// Close releases any underlying resources.
	Close() error
}

// Tx is a transaction-scoped view of the store.
type Tx interface {
	Users() Users
	Camps() Camps
	Sessions() Sessions
}

type Users interface {
	// GetUserByID returns a user, custom claims included, by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByUsername is the credential-store lookup used during sign-in.
	// Custom claims are loaded in store order.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user and its custom claims (id is a ULID
	// provided by the caller).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash replaces the stored hash, e.g. after a rehash-needed
	// verification outcome.
	UpdatePasswordHash(ctx context.Context, userID, newHash string) error

	// RecordAccessFailure bumps the failed sign-in counter. Lockout policy on
	// top of the counter is the store owner's concern, not the core's.
	RecordAccessFailure(ctx context.Context, userID string) error

	// IsEmpty reports whether any users exist (used by the seeder).
	IsEmpty(ctx context.Context) (bool, error)
}

type Camps interface {
	// ListCamps returns all camps ordered by event date.
	ListCamps(ctx context.Context) ([]domain.Camp, error)

	// GetCampByMoniker fetches a camp by its moniker (case-insensitive).
	GetCampByMoniker(ctx context.Context, moniker string) (domain.Camp, error)

	// CreateCamp inserts a new camp; a duplicate moniker is ErrAlreadyExists.
	CreateCamp(ctx context.Context, c domain.Camp) error

	// UpdateCampByMoniker overwrites the mutable fields of an existing camp.
	UpdateCampByMoniker(ctx context.Context, moniker string, c domain.Camp) error

	// DeleteCampByMoniker removes a camp and, via the schema, its speakers.
	DeleteCampByMoniker(ctx context.Context, moniker string) error

	// ListSpeakersByCampID returns a camp's speakers ordered by name.
	ListSpeakersByCampID(ctx context.Context, campID string) ([]domain.Speaker, error)

	// CreateSpeaker attaches a speaker to an existing camp.
	CreateSpeaker(ctx context.Context, sp domain.Speaker) error

	// IsEmpty reports whether any camps exist (used by the seeder).
	IsEmpty(ctx context.Context) (bool, error)
}

type Sessions interface {
	// CreateSession stores a new sign-in session record.
	CreateSession(ctx context.Context, s domain.Session) error

	// GetSessionByTokenHash returns an unexpired session by token fingerprint.
	GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error)

	// DeleteSession removes a session by token fingerprint.
	DeleteSession(ctx context.Context, hash string) error

	// DeleteExpiredSessions is housekeeping.
	DeleteExpiredSessions(ctx context.Context) error
}
