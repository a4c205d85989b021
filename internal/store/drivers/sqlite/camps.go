package sqlite

import (
	"context"
	"time"

	"github.com/Chris-Devine/codecamp/internal/domain"
)

type campsRepo struct {
	db dbtx
}

const campColumns = `id, moniker, name, event_date, length, description,
	address1, address2, address3, city_town, state_province, postal_code,
	country, created_at, updated_at`

func (r *campsRepo) ListCamps(ctx context.Context) ([]domain.Camp, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+campColumns+` FROM camps ORDER BY event_date, moniker`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var camps []domain.Camp
	for rows.Next() {
		c, err := scanCamp(rows)
		if err != nil {
			return nil, err
		}
		camps = append(camps, c)
	}
	return camps, rows.Err()
}

func (r *campsRepo) GetCampByMoniker(ctx context.Context, moniker string) (domain.Camp, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+campColumns+` FROM camps WHERE moniker = ?`, moniker)
	c, err := scanCamp(row)
	if err != nil {
		return domain.Camp{}, mapNotFound(err)
	}
	return c, nil
}

func (r *campsRepo) CreateCamp(ctx context.Context, c domain.Camp) error {
	now := time.Now().UTC()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO camps (id, moniker, name, event_date, length, description,
			address1, address2, address3, city_town, state_province,
			postal_code, country, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Moniker, c.Name, toMillis(c.EventDate), c.Length, c.Description,
		c.Location.Address1, c.Location.Address2, c.Location.Address3,
		c.Location.CityTown, c.Location.StateProvince, c.Location.PostalCode,
		c.Location.Country, toMillis(c.CreatedAt), toMillis(c.UpdatedAt))
	return mapConflict(err)
}

func (r *campsRepo) UpdateCampByMoniker(ctx context.Context, moniker string, c domain.Camp) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE camps
		SET moniker = ?, name = ?, event_date = ?, length = ?, description = ?,
			address1 = ?, address2 = ?, address3 = ?, city_town = ?,
			state_province = ?, postal_code = ?, country = ?, updated_at = ?
		WHERE moniker = ?`,
		c.Moniker, c.Name, toMillis(c.EventDate), c.Length, c.Description,
		c.Location.Address1, c.Location.Address2, c.Location.Address3,
		c.Location.CityTown, c.Location.StateProvince, c.Location.PostalCode,
		c.Location.Country, toMillis(time.Now().UTC()), moniker)
	if err != nil {
		return mapConflict(err)
	}
	return requireRowAffected(res)
}

func (r *campsRepo) DeleteCampByMoniker(ctx context.Context, moniker string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM camps WHERE moniker = ?`, moniker)
	if err != nil {
		return err
	}
	return requireRowAffected(res)
}

func (r *campsRepo) IsEmpty(ctx context.Context) (bool, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM camps`).Scan(&n); err != nil {
		return false, err
	}
	return n == 0, nil
}

func scanCamp(row rowScanner) (domain.Camp, error) {
	var (
		c                       domain.Camp
		event, created, updated int64
	)
	err := row.Scan(&c.ID, &c.Moniker, &c.Name, &event, &c.Length, &c.Description,
		&c.Location.Address1, &c.Location.Address2, &c.Location.Address3,
		&c.Location.CityTown, &c.Location.StateProvince, &c.Location.PostalCode,
		&c.Location.Country, &created, &updated)
	if err != nil {
		return domain.Camp{}, err
	}
	c.EventDate = fromMillis(event)
	c.CreatedAt = fromMillis(created)
	c.UpdatedAt = fromMillis(updated)
	return c, nil
}
