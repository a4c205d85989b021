package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Chris-Devine/codecamp/internal/domain"
	"github.com/Chris-Devine/codecamp/pkg/idx"
)

func testCamp(moniker string) domain.Camp {
	return domain.Camp{
		Moniker:   moniker,
		Name:      "Atlanta Code Camp",
		EventDate: time.Date(2018, 10, 18, 0, 0, 0, 0, time.UTC),
		Length:    1,
		Location: domain.Location{
			CityTown:      "Atlanta",
			StateProvince: "GA",
			Country:       "USA",
		},
	}
}

func TestCampService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CampService{Store: st}

	t.Run("create assigns an id and round trips", func(t *testing.T) {
		created, err := svc.CreateCamp(ctx, testCamp("ATL2018"))
		require.NoError(t, err)
		require.NotEmpty(t, created.ID)

		got, err := svc.GetCamp(ctx, "ATL2018")
		require.NoError(t, err)
		require.Equal(t, created.ID, got.ID)
		require.Equal(t, "Atlanta Code Camp", got.Name)
	})

	t.Run("create rejects a blank moniker", func(t *testing.T) {
		_, err := svc.CreateCamp(ctx, testCamp("   "))
		require.ErrorIs(t, err, ErrInvalidMoniker)
	})

	t.Run("create rejects a duplicate moniker regardless of case", func(t *testing.T) {
		_, err := svc.CreateCamp(ctx, testCamp("atl2018"))
		require.ErrorIs(t, err, ErrDuplicateMoniker)
	})

	t.Run("zero length is normalized to one day", func(t *testing.T) {
		camp := testCamp("SEA2017")
		camp.Length = 0
		created, err := svc.CreateCamp(ctx, camp)
		require.NoError(t, err)
		require.Equal(t, 1, created.Length)
		require.True(t, created.EndDate().Equal(created.EventDate))
	})

	t.Run("list returns camps in event date order", func(t *testing.T) {
		camps, err := svc.ListCamps(ctx)
		require.NoError(t, err)
		require.Len(t, camps, 2)
		require.Equal(t, "ATL2018", camps[1].Moniker)
	})

	t.Run("update can rename the moniker", func(t *testing.T) {
		update := testCamp("ATL2018v2")
		update.Name = "Atlanta Code Camp 2018"
		update.Length = 2

		updated, err := svc.UpdateCamp(ctx, "ATL2018", update)
		require.NoError(t, err)
		require.Equal(t, "ATL2018v2", updated.Moniker)
		require.Equal(t, 2, updated.Length)
		require.True(t, updated.EndDate().Equal(updated.EventDate.AddDate(0, 0, 1)))

		_, err = svc.GetCamp(ctx, "ATL2018")
		require.ErrorIs(t, err, ErrCampNotFound)
	})

	t.Run("update keeps the moniker when the body omits it", func(t *testing.T) {
		update := testCamp("")
		update.Name = "Renamed In Place"

		updated, err := svc.UpdateCamp(ctx, "SEA2017", update)
		require.NoError(t, err)
		require.Equal(t, "SEA2017", updated.Moniker)
		require.Equal(t, "Renamed In Place", updated.Name)
	})

	t.Run("update of an unknown camp", func(t *testing.T) {
		_, err := svc.UpdateCamp(ctx, "NOPE", testCamp("NOPE"))
		require.ErrorIs(t, err, ErrCampNotFound)
	})

	t.Run("delete removes the camp", func(t *testing.T) {
		require.NoError(t, svc.DeleteCamp(ctx, "SEA2017"))
		_, err := svc.GetCamp(ctx, "SEA2017")
		require.ErrorIs(t, err, ErrCampNotFound)

		require.ErrorIs(t, svc.DeleteCamp(ctx, "SEA2017"), ErrCampNotFound)
	})
}

func TestGetCampWithSpeakers(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &CampService{Store: st}

	created, err := svc.CreateCamp(ctx, testCamp("ATL2018"))
	require.NoError(t, err)

	t.Run("plain get leaves speakers unloaded", func(t *testing.T) {
		got, err := svc.GetCamp(ctx, "ATL2018")
		require.NoError(t, err)
		require.Nil(t, got.Speakers)
	})

	t.Run("no speakers yields an empty, non-nil list", func(t *testing.T) {
		got, err := svc.GetCampWithSpeakers(ctx, "ATL2018")
		require.NoError(t, err)
		require.NotNil(t, got.Speakers)
		require.Empty(t, got.Speakers)
	})

	t.Run("speakers come back with the camp", func(t *testing.T) {
		require.NoError(t, st.Camps().CreateSpeaker(ctx, domain.Speaker{
			ID:     idx.New().String(),
			CampID: created.ID,
			Name:   "Alma Reyes",
			Bio:    "Distributed systems, reluctantly",
		}))

		got, err := svc.GetCampWithSpeakers(ctx, "ATL2018")
		require.NoError(t, err)
		require.Len(t, got.Speakers, 1)
		require.Equal(t, "Alma Reyes", got.Speakers[0].Name)
	})

	t.Run("unknown camp", func(t *testing.T) {
		_, err := svc.GetCampWithSpeakers(ctx, "NOPE")
		require.ErrorIs(t, err, ErrCampNotFound)
	})
}

func TestSeedService(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	seeder := &SeedService{Store: st, DemoUsername: "sam", DemoPassword: "demo-password"}
	require.NoError(t, seeder.Seed(ctx))

	t.Run("demo user can sign in", func(t *testing.T) {
		sessions := &SessionService{Store: st}
		_, session, err := sessions.SignIn(ctx, "sam", "demo-password", SignInOptions{})
		require.NoError(t, err)
		require.Equal(t, "sam", session.Username)
	})

	t.Run("demo user carries its custom claim", func(t *testing.T) {
		user, err := st.Users().GetUserByUsername(ctx, "sam")
		require.NoError(t, err)
		require.Equal(t, []domain.CustomClaim{{Type: "SuperUser", Value: "True"}}, user.Claims)
	})

	t.Run("demo camp exists with a speaker", func(t *testing.T) {
		camps := &CampService{Store: st}
		camp, err := camps.GetCampWithSpeakers(ctx, "ATL2018")
		require.NoError(t, err)
		require.Equal(t, "Atlanta Code Camp", camp.Name)
		require.Len(t, camp.Speakers, 1)
		require.Equal(t, "Dana Whitaker", camp.Speakers[0].Name)
	})

	t.Run("seeding is idempotent", func(t *testing.T) {
		require.NoError(t, seeder.Seed(ctx))

		camps, err := st.Camps().ListCamps(ctx)
		require.NoError(t, err)
		require.Len(t, camps, 1)
	})

	t.Run("no password means no user seeding", func(t *testing.T) {
		fresh := newTestStore(t)
		require.NoError(t, (&SeedService{Store: fresh}).Seed(ctx))

		empty, err := fresh.Users().IsEmpty(ctx)
		require.NoError(t, err)
		require.True(t, empty)
	})
}
