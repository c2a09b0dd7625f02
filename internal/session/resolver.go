package session

import (
	"context"

	"github.com/nhle/habit-grid/internal/logger"
	"github.com/nhle/habit-grid/internal/model"
)

// UserDirectory is the slice of the user collection the resolver needs.
type UserDirectory interface {
	List(ctx context.Context) ([]model.User, error)
	Create(ctx context.Context, u model.User) (model.User, error)
}

// HabitLister lists the habit collection.
type HabitLister interface {
	List(ctx context.Context) ([]model.Habit, error)
}

// DateLister lists the completion-record collection.
type DateLister interface {
	List(ctx context.Context) ([]model.DateRecord, error)
}

// Resolver performs session bootstrap: ensure an active user exists,
// then load that user's habits and completion records.
type Resolver struct {
	users  UserDirectory
	habits HabitLister
	dates  DateLister
}

// NewResolver creates a Resolver over the given collection accessors.
func NewResolver(users UserDirectory, habits HabitLister, dates DateLister) *Resolver {
	return &Resolver{users: users, habits: habits, dates: dates}
}

// Resolve runs the bootstrap sequence and always returns a usable,
// non-nil state with Loading cleared:
//
//  1. List users; adopt the first, or create the default user when the
//     collection is empty. Pure first-match, no ownership logic.
//  2. List habits and keep those owned by the active user.
//  3. List completion records and keep those owned by the active user.
//
// Any failure degrades to the fixed fallback habit set with no records,
// keeping whatever user had been adopted by that point, so the UI stays
// usable when the API is down.
func (r *Resolver) Resolve(ctx context.Context) *State {
	st := NewState()
	defer func() { st.Loading = false }()

	users, err := r.users.List(ctx)
	if err != nil {
		return r.degrade(st, err)
	}

	var user model.User
	if len(users) == 0 {
		user, err = r.users.Create(ctx, model.DefaultUser())
		if err != nil {
			return r.degrade(st, err)
		}
	} else {
		user = users[0]
	}
	st.User = &user

	habits, err := r.habits.List(ctx)
	if err != nil {
		return r.degrade(st, err)
	}
	for _, h := range habits {
		if h.User == user.ID {
			st.Habits = append(st.Habits, h)
		}
	}

	records, err := r.dates.List(ctx)
	if err != nil {
		return r.degrade(st, err)
	}
	for _, rec := range records {
		if rec.User == user.ID {
			st.Records = append(st.Records, rec)
		}
	}

	return st
}

// degrade switches the state to the hardcoded fallback habits. A user
// adopted before the failure is kept; records are dropped since their
// completion state can no longer be trusted.
func (r *Resolver) degrade(st *State, err error) *State {
	logger.Logger.Error("bootstrap failed, using fallback habits", "err", err)
	st.Habits = model.FallbackHabits()
	st.Records = nil
	st.Degraded = true
	return st
}
