package session

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/habit-grid/internal/api"
	"github.com/nhle/habit-grid/internal/model"
)

// fakeDates is an in-memory DateWriter that records the payloads it
// receives and hands out server-style IDs.
type fakeDates struct {
	creates []model.DateRecord
	updates []model.DateRecord
	nextID  int
	err     error
}

func (f *fakeDates) Create(_ context.Context, r model.DateRecord) (model.DateRecord, error) {
	if f.err != nil {
		return model.DateRecord{}, f.err
	}
	f.creates = append(f.creates, r)
	f.nextID++
	r.ID = f.nextID
	return r, nil
}

func (f *fakeDates) Update(_ context.Context, id int, r model.DateRecord) (model.DateRecord, error) {
	if f.err != nil {
		return model.DateRecord{}, f.err
	}
	r.ID = id
	f.updates = append(f.updates, r)
	return r, nil
}

func testState() *State {
	return &State{
		User: &model.User{ID: 1, Name: "Default User", Slug: "default-user"},
		Habits: []model.Habit{
			{ID: 3, Name: "Пост", Slug: "post", User: 1},
			{ID: 4, Name: "КК", Slug: "kk", User: 1},
		},
	}
}

func testEngine(st *State) (*Engine, *fakeDates) {
	fake := &fakeDates{}
	e := NewEngine(fake, st)
	e.now = func() time.Time {
		return time.Date(2025, 7, 1, 15, 4, 5, 0, time.UTC)
	}
	return e, fake
}

func TestToggleCreatesOnFirstUse(t *testing.T) {
	st := testState()
	e, fake := testEngine(st)

	res, ok := e.Toggle(context.Background(), 0, 2)
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, OutcomeCreated, res.Outcome)

	require.Len(t, fake.creates, 1)
	assert.Equal(t, model.DateRecord{
		User:      1,
		Habit:     3,
		HabitDate: "2025-07-01",
		Name:      "day-2",
		IsDone:    true,
		Slug:      "post-2025-07-01-2",
	}, fake.creates[0])

	require.Len(t, st.Records, 1)
	assert.Equal(t, 1, st.Records[0].ID, "server-assigned id is kept")
	assert.True(t, st.IsDone(0, 2, "2025-07-01"))
}

func TestToggleFlipsExistingRecord(t *testing.T) {
	st := testState()
	e, fake := testEngine(st)
	ctx := context.Background()

	_, ok := e.Toggle(ctx, 0, 2)
	require.True(t, ok)

	res, ok := e.Toggle(ctx, 0, 2)
	require.True(t, ok)
	require.NoError(t, res.Err)
	assert.Equal(t, OutcomeUpdated, res.Outcome)

	require.Len(t, fake.updates, 1)
	assert.False(t, fake.updates[0].IsDone, "second toggle sends is_done=false")
	assert.Equal(t, st.Records[0].ID, fake.updates[0].ID)

	require.Len(t, st.Records, 1, "update replaces, never appends")
	assert.False(t, st.IsDone(0, 2, "2025-07-01"))
}

func TestSequentialTogglesKeepOneRecord(t *testing.T) {
	st := testState()
	e, fake := testEngine(st)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, ok := e.Toggle(ctx, 1, 0)
		require.True(t, ok)
	}

	assert.Len(t, fake.creates, 1, "only the first toggle creates")
	assert.Len(t, fake.updates, 4)
	require.Len(t, st.Records, 1)
	// Odd number of toggles ends done.
	assert.True(t, st.Records[0].IsDone)
}

func TestDoubleToggleRestoresOriginal(t *testing.T) {
	st := testState()
	e, _ := testEngine(st)
	ctx := context.Background()

	_, ok := e.Toggle(ctx, 0, 4)
	require.True(t, ok)
	before := st.Records[0].IsDone

	_, _ = e.Toggle(ctx, 0, 4)
	_, _ = e.Toggle(ctx, 0, 4)

	assert.Equal(t, before, st.Records[0].IsDone)
}

func TestPendingGuardBlocksOverlappingToggle(t *testing.T) {
	st := testState()
	e, fake := testEngine(st)

	plan, ok := e.Begin(0, 2)
	require.True(t, ok)

	// A second toggle on the same tuple before the first resolves is a
	// no-op rather than a duplicate create.
	_, ok = e.Begin(0, 2)
	assert.False(t, ok)

	// A different slot is unaffected.
	_, ok = e.Begin(0, 3)
	assert.True(t, ok)

	res := e.Do(context.Background(), plan)
	e.Apply(res)
	assert.Len(t, fake.creates, 1)

	_, ok = e.Begin(0, 2)
	assert.True(t, ok, "guard releases once the result is applied")
}

func TestToggleSilentGuards(t *testing.T) {
	ctx := context.Background()

	noUser := testState()
	noUser.User = nil
	e, fake := testEngine(noUser)
	_, ok := e.Toggle(ctx, 0, 0)
	assert.False(t, ok)
	assert.Empty(t, fake.creates)

	st := testState()
	e, fake = testEngine(st)
	_, ok = e.Toggle(ctx, len(st.Habits), 0)
	assert.False(t, ok)
	_, ok = e.Toggle(ctx, -1, 0)
	assert.False(t, ok)
	_, ok = e.Toggle(ctx, 0, model.SlotCount)
	assert.False(t, ok)
	assert.Empty(t, fake.creates)
}

func TestToggleFailureLeavesStateUntouched(t *testing.T) {
	st := testState()
	e, fake := testEngine(st)
	fake.err = &api.TransportError{
		Method: http.MethodPost,
		Path:   "/v1/dates/",
		Status: http.StatusBadGateway,
	}

	res, ok := e.Toggle(context.Background(), 0, 2)
	require.True(t, ok)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.Error(t, res.Err)
	assert.True(t, res.Retryable)
	assert.Empty(t, st.Records, "no rollback needed, nothing was applied")

	// The tuple is not stuck pending after a failure.
	fake.err = nil
	res, ok = e.Toggle(context.Background(), 0, 2)
	require.True(t, ok)
	assert.Equal(t, OutcomeCreated, res.Outcome)
}

func TestToggleFailureNotRetryableOn4xx(t *testing.T) {
	st := testState()
	e, fake := testEngine(st)
	fake.err = &api.TransportError{
		Method: http.MethodPost,
		Path:   "/v1/dates/",
		Status: http.StatusBadRequest,
	}

	res, ok := e.Toggle(context.Background(), 0, 0)
	require.True(t, ok)
	assert.Equal(t, OutcomeFailed, res.Outcome)
	assert.False(t, res.Retryable)
}

func TestIsDoneReflectsPriorSessionRecords(t *testing.T) {
	// Records loaded at bootstrap render without any toggle having
	// happened in this session.
	st := testState()
	st.Records = []model.DateRecord{
		{ID: 9, User: 1, Habit: 3, HabitDate: "2025-07-01", Name: "day-5", IsDone: true},
	}

	assert.True(t, st.IsDone(0, 5, "2025-07-01"))
	assert.False(t, st.IsDone(0, 5, "2025-07-02"), "other days unaffected")
	assert.False(t, st.IsDone(1, 5, "2025-07-01"), "other habits unaffected")
}
