package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Chris-Devine/codecamp/internal/domain"
	"github.com/Chris-Devine/codecamp/internal/store"
	"github.com/Chris-Devine/codecamp/pkg/idx"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	s, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.ApplyMigrations())
	return s
}

func testUser(username string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Username:     username,
		FirstName:    "Sam",
		LastName:     "Hastings",
		Email:        username + "@example.com",
		PasswordHash: "$argon2id$v=19$m=19456,t=2,p=1$c2FsdHNhbHQ$aGFzaGhhc2g",
	}
}

func TestUsersRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	t.Run("create and fetch with ordered claims", func(t *testing.T) {
		u := testUser("sam")
		u.Claims = []domain.CustomClaim{
			{Type: "SuperUser", Value: "True"},
			{Type: "Department", Value: "Engineering"},
			{Type: "SuperUser", Value: "False"},
		}
		require.NoError(t, s.Users().CreateUser(ctx, u))

		got, err := s.Users().GetUserByUsername(ctx, "sam")
		require.NoError(t, err)
		require.Equal(t, u.ID, got.ID)
		require.Equal(t, u.PasswordHash, got.PasswordHash)
		require.Equal(t, u.Claims, got.Claims, "claims must come back in store order, duplicates intact")

		byID, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, got, byID)
	})

	t.Run("username lookup is case-insensitive", func(t *testing.T) {
		got, err := s.Users().GetUserByUsername(ctx, "SAM")
		require.NoError(t, err)
		require.Equal(t, "sam", got.Username)
	})

	t.Run("unknown username is ErrNotFound", func(t *testing.T) {
		_, err := s.Users().GetUserByUsername(ctx, "nobody")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("duplicate username is ErrAlreadyExists", func(t *testing.T) {
		err := s.Users().CreateUser(ctx, testUser("sam"))
		require.ErrorIs(t, err, store.ErrAlreadyExists)
	})

	t.Run("update password hash", func(t *testing.T) {
		u, err := s.Users().GetUserByUsername(ctx, "sam")
		require.NoError(t, err)

		require.NoError(t, s.Users().UpdatePasswordHash(ctx, u.ID, "$argon2id$new"))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, "$argon2id$new", got.PasswordHash)
	})

	t.Run("record access failure increments counter", func(t *testing.T) {
		u, err := s.Users().GetUserByUsername(ctx, "sam")
		require.NoError(t, err)
		before := u.AccessFailedCount

		require.NoError(t, s.Users().RecordAccessFailure(ctx, u.ID))
		require.NoError(t, s.Users().RecordAccessFailure(ctx, u.ID))

		got, err := s.Users().GetUserByID(ctx, u.ID)
		require.NoError(t, err)
		require.Equal(t, before+2, got.AccessFailedCount)
	})

	t.Run("update on unknown user is ErrNotFound", func(t *testing.T) {
		err := s.Users().UpdatePasswordHash(ctx, "missing", "$argon2id$x")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("is empty", func(t *testing.T) {
		empty, err := s.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.False(t, empty)
	})
}

func TestCampsRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	camp := domain.Camp{
		ID:          idx.New().String(),
		Moniker:     "ATL2018",
		Name:        "Atlanta Code Camp",
		EventDate:   time.Date(2018, 10, 1, 0, 0, 0, 0, time.UTC),
		Length:      1,
		Description: "The Atlanta Code Camp",
		Location: domain.Location{
			Address1:      "123 Main Street",
			CityTown:      "Atlanta",
			StateProvince: "GA",
			PostalCode:    "30303",
			Country:       "USA",
		},
	}

	t.Run("create and fetch by moniker", func(t *testing.T) {
		require.NoError(t, s.Camps().CreateCamp(ctx, camp))

		got, err := s.Camps().GetCampByMoniker(ctx, "ATL2018")
		require.NoError(t, err)
		require.Equal(t, camp.Name, got.Name)
		require.True(t, camp.EventDate.Equal(got.EventDate))
		require.Equal(t, camp.Location, got.Location)
	})

	t.Run("moniker is case-insensitive", func(t *testing.T) {
		got, err := s.Camps().GetCampByMoniker(ctx, "atl2018")
		require.NoError(t, err)
		require.Equal(t, camp.ID, got.ID)
	})

	t.Run("duplicate moniker is ErrAlreadyExists", func(t *testing.T) {
		dup := camp
		dup.ID = idx.New().String()
		dup.Moniker = "atl2018"
		require.ErrorIs(t, s.Camps().CreateCamp(ctx, dup), store.ErrAlreadyExists)
	})

	t.Run("list is ordered by event date", func(t *testing.T) {
		earlier := domain.Camp{
			ID:        idx.New().String(),
			Moniker:   "SEA2017",
			Name:      "Seattle Code Camp",
			EventDate: time.Date(2017, 6, 10, 0, 0, 0, 0, time.UTC),
			Length:    2,
		}
		require.NoError(t, s.Camps().CreateCamp(ctx, earlier))

		camps, err := s.Camps().ListCamps(ctx)
		require.NoError(t, err)
		require.Len(t, camps, 2)
		require.Equal(t, "SEA2017", camps[0].Moniker)
		require.Equal(t, "ATL2018", camps[1].Moniker)
	})

	t.Run("update by moniker", func(t *testing.T) {
		updated := camp
		updated.Name = "Atlanta Code Camp 2018"
		updated.Length = 2
		require.NoError(t, s.Camps().UpdateCampByMoniker(ctx, "ATL2018", updated))

		got, err := s.Camps().GetCampByMoniker(ctx, "ATL2018")
		require.NoError(t, err)
		require.Equal(t, "Atlanta Code Camp 2018", got.Name)
		require.Equal(t, 2, got.Length)
	})

	t.Run("update unknown moniker is ErrNotFound", func(t *testing.T) {
		err := s.Camps().UpdateCampByMoniker(ctx, "NOPE", camp)
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete by moniker", func(t *testing.T) {
		require.NoError(t, s.Camps().DeleteCampByMoniker(ctx, "SEA2017"))

		_, err := s.Camps().GetCampByMoniker(ctx, "SEA2017")
		require.ErrorIs(t, err, store.ErrNotFound)

		require.ErrorIs(t, s.Camps().DeleteCampByMoniker(ctx, "SEA2017"), store.ErrNotFound)
	})
}

func TestSpeakersRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	camp := domain.Camp{
		ID:        idx.New().String(),
		Moniker:   "ATL2018",
		Name:      "Atlanta Code Camp",
		EventDate: time.Date(2018, 10, 18, 0, 0, 0, 0, time.UTC),
		Length:    1,
	}
	require.NoError(t, s.Camps().CreateCamp(ctx, camp))

	t.Run("create and list ordered by name", func(t *testing.T) {
		for _, name := range []string{"Zoe Park", "Alma Reyes"} {
			require.NoError(t, s.Camps().CreateSpeaker(ctx, domain.Speaker{
				ID:          idx.New().String(),
				CampID:      camp.ID,
				Name:        name,
				CompanyName: "Big Geek Consulting",
			}))
		}

		speakers, err := s.Camps().ListSpeakersByCampID(ctx, camp.ID)
		require.NoError(t, err)
		require.Len(t, speakers, 2)
		require.Equal(t, "Alma Reyes", speakers[0].Name)
		require.Equal(t, "Zoe Park", speakers[1].Name)
	})

	t.Run("camp without speakers lists none", func(t *testing.T) {
		other := domain.Camp{
			ID:        idx.New().String(),
			Moniker:   "SEA2017",
			Name:      "Seattle Code Camp",
			EventDate: time.Date(2017, 6, 10, 0, 0, 0, 0, time.UTC),
			Length:    1,
		}
		require.NoError(t, s.Camps().CreateCamp(ctx, other))

		speakers, err := s.Camps().ListSpeakersByCampID(ctx, other.ID)
		require.NoError(t, err)
		require.Empty(t, speakers)
	})

	t.Run("deleting the camp removes its speakers", func(t *testing.T) {
		require.NoError(t, s.Camps().DeleteCampByMoniker(ctx, "ATL2018"))

		speakers, err := s.Camps().ListSpeakersByCampID(ctx, camp.ID)
		require.NoError(t, err)
		require.Empty(t, speakers)
	})
}

func TestSessionsRepo(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	user := testUser("sam")
	require.NoError(t, s.Users().CreateUser(ctx, user))

	live := domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: "hash-live",
		ExpiresAt: time.Now().Add(time.Hour),
	}
	expired := domain.Session{
		ID:        idx.New().String(),
		UserID:    user.ID,
		TokenHash: "hash-expired",
		ExpiresAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, s.Sessions().CreateSession(ctx, live))
	require.NoError(t, s.Sessions().CreateSession(ctx, expired))

	t.Run("fetch live session joins username", func(t *testing.T) {
		got, err := s.Sessions().GetSessionByTokenHash(ctx, "hash-live")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.UserID)
		require.Equal(t, "sam", got.Username)
	})

	t.Run("expired session is ErrNotFound", func(t *testing.T) {
		_, err := s.Sessions().GetSessionByTokenHash(ctx, "hash-expired")
		require.ErrorIs(t, err, store.ErrNotFound)
	})

	t.Run("delete expired sessions", func(t *testing.T) {
		require.NoError(t, s.Sessions().DeleteExpiredSessions(ctx))

		// The live one survives.
		_, err := s.Sessions().GetSessionByTokenHash(ctx, "hash-live")
		require.NoError(t, err)
	})

	t.Run("delete session", func(t *testing.T) {
		require.NoError(t, s.Sessions().DeleteSession(ctx, "hash-live"))
		_, err := s.Sessions().GetSessionByTokenHash(ctx, "hash-live")
		require.ErrorIs(t, err, store.ErrNotFound)
	})
}

func TestWithTxRollsBackOnError(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	err := s.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, testUser("ghost")); err != nil {
			return err
		}
		return context.Canceled
	})
	require.ErrorIs(t, err, context.Canceled)

	_, err = s.Users().GetUserByUsername(ctx, "ghost")
	require.ErrorIs(t, err, store.ErrNotFound)
}
