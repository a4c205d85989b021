package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/Chris-Devine/codecamp/internal/domain"
	"github.com/Chris-Devine/codecamp/internal/store"
	"github.com/Chris-Devine/codecamp/pkg/idx"
	"github.com/Chris-Devine/codecamp/pkg/slogx"
)

var (
	ErrCampNotFound     = errors.New("camp not found")
	ErrDuplicateMoniker = errors.New("moniker already in use")
	ErrInvalidMoniker   = errors.New("moniker is required")
)

// CampService implements the camp catalogue: list, fetch, create, update and
// delete, all keyed by the human-readable moniker.
type CampService struct {
	Store store.Store
}

func (s *CampService) ListCamps(ctx context.Context) ([]domain.Camp, error) {
	return s.Store.Camps().ListCamps(ctx)
}

func (s *CampService) GetCamp(ctx context.Context, moniker string) (domain.Camp, error) {
	moniker = strings.TrimSpace(moniker)
	if moniker == "" {
		return domain.Camp{}, ErrCampNotFound
	}

	camp, err := s.Store.Camps().GetCampByMoniker(ctx, moniker)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Camp{}, ErrCampNotFound
		}
		return domain.Camp{}, err
	}
	return camp, nil
}

// GetCampWithSpeakers fetches a camp and loads its speaker list. Speakers is
// non-nil on success even when the camp has none.
func (s *CampService) GetCampWithSpeakers(ctx context.Context, moniker string) (domain.Camp, error) {
	camp, err := s.GetCamp(ctx, moniker)
	if err != nil {
		return domain.Camp{}, err
	}

	speakers, err := s.Store.Camps().ListSpeakersByCampID(ctx, camp.ID)
	if err != nil {
		return domain.Camp{}, err
	}
	if speakers == nil {
		speakers = []domain.Speaker{}
	}
	camp.Speakers = speakers
	return camp, nil
}

func (s *CampService) CreateCamp(ctx context.Context, camp domain.Camp) (domain.Camp, error) {
	l := slogx.FromContext(ctx)

	camp.Moniker = strings.TrimSpace(camp.Moniker)
	if camp.Moniker == "" {
		return domain.Camp{}, ErrInvalidMoniker
	}
	if camp.Length < 1 {
		camp.Length = 1
	}
	camp.ID = idx.New().String()

	if err := s.Store.Camps().CreateCamp(ctx, camp); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return domain.Camp{}, ErrDuplicateMoniker
		}
		return domain.Camp{}, err
	}

	l.Info("camp created", slog.String("moniker", camp.Moniker))
	return s.GetCamp(ctx, camp.Moniker)
}

// UpdateCamp overwrites the mutable fields of the camp at moniker. The body
// may carry a new moniker, which renames the camp.
func (s *CampService) UpdateCamp(ctx context.Context, moniker string, camp domain.Camp) (domain.Camp, error) {
	moniker = strings.TrimSpace(moniker)
	camp.Moniker = strings.TrimSpace(camp.Moniker)
	if camp.Moniker == "" {
		camp.Moniker = moniker
	}
	if camp.Length < 1 {
		camp.Length = 1
	}

	if err := s.Store.Camps().UpdateCampByMoniker(ctx, moniker, camp); err != nil {
		switch {
		case errors.Is(err, store.ErrNotFound):
			return domain.Camp{}, ErrCampNotFound
		case errors.Is(err, store.ErrAlreadyExists):
			return domain.Camp{}, ErrDuplicateMoniker
		default:
			return domain.Camp{}, err
		}
	}

	return s.GetCamp(ctx, camp.Moniker)
}

func (s *CampService) DeleteCamp(ctx context.Context, moniker string) error {
	l := slogx.FromContext(ctx)

	err := s.Store.Camps().DeleteCampByMoniker(ctx, strings.TrimSpace(moniker))
	if errors.Is(err, store.ErrNotFound) {
		return ErrCampNotFound
	}
	if err != nil {
		return err
	}

	l.Info("camp deleted", slog.String("moniker", moniker))
	return nil
}
