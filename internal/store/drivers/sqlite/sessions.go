package sqlite

import (
	"context"
	"time"

	"github.com/Chris-Devine/codecamp/internal/domain"
)

type sessionsRepo struct {
	db dbtx
}

func (r *sessionsRepo) CreateSession(ctx context.Context, s domain.Session) error {
	if s.CreatedAt.IsZero() {
		s.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO sessions (id, user_id, token_hash, persistent, expires_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		s.ID, s.UserID, s.TokenHash, s.Persistent,
		toMillis(s.ExpiresAt), toMillis(s.CreatedAt))
	return mapConflict(err)
}

// GetSessionByTokenHash looks up an unexpired session by its token
// fingerprint and joins the username so callers don't need a second query.
func (r *sessionsRepo) GetSessionByTokenHash(ctx context.Context, hash string) (domain.Session, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT s.id, s.user_id, u.username, s.token_hash, s.persistent,
			s.expires_at, s.created_at
		FROM sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token_hash = ? AND s.expires_at > ?`,
		hash, toMillis(time.Now().UTC()))

	var (
		s                domain.Session
		expires, created int64
	)
	err := row.Scan(&s.ID, &s.UserID, &s.Username, &s.TokenHash, &s.Persistent,
		&expires, &created)
	if err != nil {
		return domain.Session{}, mapNotFound(err)
	}
	s.ExpiresAt = fromMillis(expires)
	s.CreatedAt = fromMillis(created)
	return s, nil
}

func (r *sessionsRepo) DeleteSession(ctx context.Context, hash string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE token_hash = ?`, hash)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *sessionsRepo) DeleteExpiredSessions(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at <= ?`,
		toMillis(time.Now().UTC()))
	return err
}
