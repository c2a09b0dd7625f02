package session

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/habit-grid/internal/api"
	"github.com/nhle/habit-grid/internal/model"
	"github.com/nhle/habit-grid/tests/testutil"
)

func newResolver(srv *testutil.Server) *Resolver {
	client := api.NewClient(srv.URL())
	return NewResolver(client.Users(), client.Habits(), client.Dates())
}

func TestResolveCreatesDefaultUserWhenNoneExist(t *testing.T) {
	srv := testutil.NewServer(t)

	st := newResolver(srv).Resolve(context.Background())

	require.NotNil(t, st.User)
	assert.Equal(t, "default-user", st.User.Slug)
	assert.Equal(t, "Default User", st.User.Name)
	assert.Equal(t, "25", st.User.Age)

	users := srv.Users()
	require.Len(t, users, 1, "exactly one default user is created")
	assert.Equal(t, st.User.ID, users[0].ID)

	assert.Empty(t, st.Habits)
	assert.Empty(t, st.Records)
	assert.False(t, st.Loading)
	assert.False(t, st.Degraded)
}

func TestResolveAdoptsFirstUser(t *testing.T) {
	srv := testutil.NewServer(t)
	first := srv.SeedUser(model.User{Name: "Anna", Age: "30", Slug: "anna"})
	srv.SeedUser(model.User{Name: "Boris", Age: "40", Slug: "boris"})

	st := newResolver(srv).Resolve(context.Background())

	require.NotNil(t, st.User)
	assert.Equal(t, first.ID, st.User.ID, "pure first-match, no ownership logic")
	assert.Len(t, srv.Users(), 2, "no extra user is created")
}

func TestResolveFiltersByOwnership(t *testing.T) {
	srv := testutil.NewServer(t)
	owner := srv.SeedUser(model.User{Name: "Anna", Slug: "anna"})
	other := srv.SeedUser(model.User{Name: "Boris", Slug: "boris"})

	mine := srv.SeedHabit(model.Habit{Name: "Пост", Slug: "post", User: owner.ID})
	srv.SeedHabit(model.Habit{Name: "КК", Slug: "kk", User: other.ID})

	srv.SeedDate(model.DateRecord{
		User: owner.ID, Habit: mine.ID,
		HabitDate: "2025-07-01", Name: "day-0", IsDone: true,
		Slug: "post-2025-07-01-0",
	})
	srv.SeedDate(model.DateRecord{
		User: other.ID, Habit: mine.ID,
		HabitDate: "2025-07-01", Name: "day-1", IsDone: true,
	})

	st := newResolver(srv).Resolve(context.Background())

	require.Len(t, st.Habits, 1)
	assert.Equal(t, mine.ID, st.Habits[0].ID)
	require.Len(t, st.Records, 1)
	assert.Equal(t, owner.ID, st.Records[0].User)
}

func TestResolveDegradesToFallbackHabits(t *testing.T) {
	srv := testutil.NewServer(t)
	srv.FailWith(http.StatusInternalServerError)

	st := newResolver(srv).Resolve(context.Background())

	require.NotNil(t, st)
	assert.True(t, st.Degraded)
	assert.False(t, st.Loading, "loading clears even on failure")
	assert.Nil(t, st.User)
	assert.Empty(t, st.Records)

	require.Len(t, st.Habits, 7)
	assert.Equal(t, "Пост", st.Habits[0].Name)
	assert.Equal(t, "post", st.Habits[0].Slug)
	assert.Equal(t, "Настрой на благополучный день", st.Habits[6].Name)
	assert.Equal(t, "mood", st.Habits[6].Slug)
}

func TestResolveDegradesMidwayKeepsAdoptedUser(t *testing.T) {
	srv := testutil.NewServer(t)
	user := srv.SeedUser(model.User{Name: "Anna", Slug: "anna"})

	client := api.NewClient(srv.URL())
	r := NewResolver(client.Users(), failingHabits{}, client.Dates())

	st := r.Resolve(context.Background())

	assert.True(t, st.Degraded)
	require.NotNil(t, st.User, "user adopted before the failure is kept")
	assert.Equal(t, user.ID, st.User.ID)
	assert.Len(t, st.Habits, 7)
	assert.Empty(t, st.Records)
}

type failingHabits struct{}

func (failingHabits) List(context.Context) ([]model.Habit, error) {
	return nil, &api.TransportError{Method: "GET", Path: "/v1/habits/", Status: 503}
}

func TestResolveNetworkFailure(t *testing.T) {
	srv := testutil.NewServer(t)
	url := srv.URL()
	srv.Close()

	client := api.NewClient(url)
	st := NewResolver(client.Users(), client.Habits(), client.Dates()).
		Resolve(context.Background())

	assert.True(t, st.Degraded)
	assert.False(t, st.Loading)
	assert.Len(t, st.Habits, 7)
}
