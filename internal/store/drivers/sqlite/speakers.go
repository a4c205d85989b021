package sqlite

import (
	"context"
	"time"

	"github.com/Chris-Devine/codecamp/internal/domain"
)

const speakerColumns = `id, camp_id, name, company_name, phone_number,
	website_url, bio, created_at, updated_at`

func (r *campsRepo) ListSpeakersByCampID(ctx context.Context, campID string) ([]domain.Speaker, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+speakerColumns+` FROM speakers WHERE camp_id = ? ORDER BY name, id`, campID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var speakers []domain.Speaker
	for rows.Next() {
		sp, err := scanSpeaker(rows)
		if err != nil {
			return nil, err
		}
		speakers = append(speakers, sp)
	}
	return speakers, rows.Err()
}

func (r *campsRepo) CreateSpeaker(ctx context.Context, sp domain.Speaker) error {
	now := time.Now().UTC()
	if sp.CreatedAt.IsZero() {
		sp.CreatedAt = now
	}
	if sp.UpdatedAt.IsZero() {
		sp.UpdatedAt = now
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO speakers (id, camp_id, name, company_name, phone_number,
			website_url, bio, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sp.ID, sp.CampID, sp.Name, sp.CompanyName, sp.PhoneNumber,
		sp.WebsiteURL, sp.Bio, toMillis(sp.CreatedAt), toMillis(sp.UpdatedAt))
	return mapConflict(err)
}

func scanSpeaker(row rowScanner) (domain.Speaker, error) {
	var (
		sp               domain.Speaker
		created, updated int64
	)
	err := row.Scan(&sp.ID, &sp.CampID, &sp.Name, &sp.CompanyName, &sp.PhoneNumber,
		&sp.WebsiteURL, &sp.Bio, &created, &updated)
	if err != nil {
		return domain.Speaker{}, err
	}
	sp.CreatedAt = fromMillis(created)
	sp.UpdatedAt = fromMillis(updated)
	return sp, nil
}
