package sqlite

import (
	"context"
	"time"

	"github.com/Chris-Devine/codecamp/internal/domain"
)

type usersRepo struct {
	db dbtx
}

const userColumns = `id, username, first_name, last_name, email, password_hash,
	access_failed_count, created_at, updated_at`

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)
	return r.scanUser(ctx, row)
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	return r.scanUser(ctx, row)
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	if u.UpdatedAt.IsZero() {
		u.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (id, username, first_name, last_name, email,
			password_hash, access_failed_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.FirstName, u.LastName, u.Email,
		u.PasswordHash, u.AccessFailedCount, toMillis(u.CreatedAt), toMillis(u.UpdatedAt))
	if err != nil {
		return mapConflict(err)
	}

	// Claims are written with an explicit position so reads replay them in
	// the order they were stored. Run CreateUser inside WithTx when the two
	// inserts must be atomic.
	for i, c := range u.Claims {
		_, err := r.db.ExecContext(ctx, `
			INSERT INTO user_claims (user_id, position, claim_type, claim_value)
			VALUES (?, ?, ?, ?)`,
			u.ID, i, c.Type, c.Value)
		if err != nil {
			return err
		}
	}

	return nil
}

func (r *usersRepo) UpdatePasswordHash(ctx context.Context, userID, newHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`,
		newHash, toMillis(time.Now().UTC()), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) RecordAccessFailure(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users
		SET access_failed_count = access_failed_count + 1, updated_at = ?
		WHERE id = ?`,
		toMillis(time.Now().UTC()), userID)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *usersRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *usersRepo) scanUser(ctx context.Context, row rowScanner) (domain.User, error) {
	var (
		u                domain.User
		created, updated int64
	)
	err := row.Scan(&u.ID, &u.Username, &u.FirstName, &u.LastName, &u.Email,
		&u.PasswordHash, &u.AccessFailedCount, &created, &updated)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.CreatedAt = fromMillis(created)
	u.UpdatedAt = fromMillis(updated)

	claims, err := r.loadClaims(ctx, u.ID)
	if err != nil {
		return domain.User{}, err
	}
	u.Claims = claims

	return u, nil
}

func (r *usersRepo) loadClaims(ctx context.Context, userID string) ([]domain.CustomClaim, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT claim_type, claim_value FROM user_claims
		WHERE user_id = ? ORDER BY position`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var claims []domain.CustomClaim
	for rows.Next() {
		var c domain.CustomClaim
		if err := rows.Scan(&c.Type, &c.Value); err != nil {
			return nil, err
		}
		claims = append(claims, c)
	}
	return claims, rows.Err()
}
