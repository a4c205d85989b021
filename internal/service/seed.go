package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/Chris-Devine/codecamp/internal/domain"
	"github.com/Chris-Devine/codecamp/internal/store"
	"github.com/Chris-Devine/codecamp/pkg/cryptox"
	"github.com/Chris-Devine/codecamp/pkg/idx"
	"github.com/Chris-Devine/codecamp/pkg/slogx"
)

// SeedService populates an empty database with a demo user and camp so a
// fresh deployment is immediately usable. It never touches a database that
// already has data.
type SeedService struct {
	Store store.Store

	// DemoPassword is the password for the seeded user. Empty disables user
	// seeding entirely; there is no default password.
	DemoUsername string
	DemoPassword string
}

// Seed inserts the demo records where the corresponding tables are empty.
func (s *SeedService) Seed(ctx context.Context) error {
	l := slogx.FromContext(ctx)

	if err := s.seedUser(ctx, l); err != nil {
		return err
	}
	return s.seedCamp(ctx, l)
}

func (s *SeedService) seedUser(ctx context.Context, l *slog.Logger) error {
	if s.DemoUsername == "" || s.DemoPassword == "" {
		return nil
	}

	empty, err := s.Store.Users().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	hash, err := cryptox.HashPassword(s.DemoPassword)
	if err != nil {
		return err
	}

	user := domain.User{
		ID:           idx.New().String(),
		Username:     s.DemoUsername,
		FirstName:    "Sam",
		LastName:     "Hastings",
		Email:        s.DemoUsername + "@codecamp.local",
		PasswordHash: hash,
		Claims: []domain.CustomClaim{
			{Type: "SuperUser", Value: "True"},
		},
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		return err
	}

	l.Info("seeded demo user", slog.String("username", user.Username))
	return nil
}

func (s *SeedService) seedCamp(ctx context.Context, l *slog.Logger) error {
	empty, err := s.Store.Camps().IsEmpty(ctx)
	if err != nil {
		return err
	}
	if !empty {
		return nil
	}

	camp := domain.Camp{
		ID:          idx.New().String(),
		Moniker:     "ATL2018",
		Name:        "Atlanta Code Camp",
		EventDate:   time.Date(2018, 10, 18, 0, 0, 0, 0, time.UTC),
		Length:      1,
		Description: "Atlanta Code Camp is a great, free conference",
		Location: domain.Location{
			Address1:      "123 Main Street",
			CityTown:      "Atlanta",
			StateProvince: "GA",
			PostalCode:    "12345",
			Country:       "USA",
		},
	}

	speaker := domain.Speaker{
		ID:          idx.New().String(),
		CampID:      camp.ID,
		Name:        "Dana Whitaker",
		CompanyName: "Whitaker Consulting",
		WebsiteURL:  "https://example.com/dana",
		Bio:         "Talks about APIs and making them not terrible",
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Camps().CreateCamp(ctx, camp); err != nil {
			return err
		}
		return tx.Camps().CreateSpeaker(ctx, speaker)
	})
	if err != nil {
		return err
	}

	l.Info("seeded demo camp", slog.String("moniker", camp.Moniker))
	return nil
}
