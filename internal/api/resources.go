package api

import (
	"context"
	"fmt"

	"github.com/nhle/habit-grid/internal/model"
)

// Resource paths. The date collection and item endpoints use different
// resource-name casing ("dates" vs "date"); the server has shipped that
// way and the asymmetry must be preserved for compatibility. Users are
// split the same way ("userall" vs "user").
const (
	usersPath  = "/v1/userall/"
	userPath   = "/v1/user/%d/"
	habitsPath = "/v1/habits/"
	habitPath  = "/v1/habits/%d/"
	datesPath  = "/v1/dates/"
	datePath   = "/v1/date/%d/"
)

// Users returns the typed accessor for the user collection.
func (c *Client) Users() *UserService { return &UserService{c: c} }

// Habits returns the typed accessor for the habit collection.
func (c *Client) Habits() *HabitService { return &HabitService{c: c} }

// Dates returns the typed accessor for the completion-record collection.
func (c *Client) Dates() *DateService { return &DateService{c: c} }

// UserService exposes list/create/get/update/delete for users.
type UserService struct {
	c *Client
}

// List fetches all users. No pagination; the API returns a single page.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := s.c.get(ctx, usersPath, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// Create posts a new user; the server assigns the ID.
func (s *UserService) Create(ctx context.Context, u model.User) (model.User, error) {
	var created model.User
	if err := s.c.post(ctx, usersPath, u, &created); err != nil {
		return model.User{}, err
	}
	return created, nil
}

// Get fetches a single user by ID.
func (s *UserService) Get(ctx context.Context, id int) (model.User, error) {
	var u model.User
	if err := s.c.get(ctx, fmt.Sprintf(userPath, id), &u); err != nil {
		return model.User{}, err
	}
	return u, nil
}

// Update replaces a user's fields.
func (s *UserService) Update(ctx context.Context, id int, u model.User) (model.User, error) {
	var updated model.User
	if err := s.c.put(ctx, fmt.Sprintf(userPath, id), u, &updated); err != nil {
		return model.User{}, err
	}
	return updated, nil
}

// Delete removes a user.
func (s *UserService) Delete(ctx context.Context, id int) error {
	return s.c.delete(ctx, fmt.Sprintf(userPath, id))
}

// HabitService exposes list/create/get/update/delete for habits. The
// client only lists habits in normal flow; the rest of the contract
// exists for out-of-band management.
type HabitService struct {
	c *Client
}

// List fetches all habits across users; callers filter by ownership.
func (s *HabitService) List(ctx context.Context) ([]model.Habit, error) {
	var habits []model.Habit
	if err := s.c.get(ctx, habitsPath, &habits); err != nil {
		return nil, err
	}
	return habits, nil
}

// Create posts a new habit; the server assigns the ID.
func (s *HabitService) Create(ctx context.Context, h model.Habit) (model.Habit, error) {
	var created model.Habit
	if err := s.c.post(ctx, habitsPath, h, &created); err != nil {
		return model.Habit{}, err
	}
	return created, nil
}

// Get fetches a single habit by ID.
func (s *HabitService) Get(ctx context.Context, id int) (model.Habit, error) {
	var h model.Habit
	if err := s.c.get(ctx, fmt.Sprintf(habitPath, id), &h); err != nil {
		return model.Habit{}, err
	}
	return h, nil
}

// Update replaces a habit's fields.
func (s *HabitService) Update(ctx context.Context, id int, h model.Habit) (model.Habit, error) {
	var updated model.Habit
	if err := s.c.put(ctx, fmt.Sprintf(habitPath, id), h, &updated); err != nil {
		return model.Habit{}, err
	}
	return updated, nil
}

// Delete removes a habit.
func (s *HabitService) Delete(ctx context.Context, id int) error {
	return s.c.delete(ctx, fmt.Sprintf(habitPath, id))
}

// DateService exposes list/create/get/update/delete for completion
// records.
type DateService struct {
	c *Client
}

// List fetches all completion records; callers filter by ownership.
func (s *DateService) List(ctx context.Context) ([]model.DateRecord, error) {
	var records []model.DateRecord
	if err := s.c.get(ctx, datesPath, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create posts a new completion record; the server assigns the ID.
func (s *DateService) Create(ctx context.Context, r model.DateRecord) (model.DateRecord, error) {
	var created model.DateRecord
	if err := s.c.post(ctx, datesPath, r, &created); err != nil {
		return model.DateRecord{}, err
	}
	return created, nil
}

// Get fetches a single completion record by ID.
func (s *DateService) Get(ctx context.Context, id int) (model.DateRecord, error) {
	var r model.DateRecord
	if err := s.c.get(ctx, fmt.Sprintf(datePath, id), &r); err != nil {
		return model.DateRecord{}, err
	}
	return r, nil
}

// Update replaces a record's fields. The full record is sent, matching
// the server's PUT semantics.
func (s *DateService) Update(ctx context.Context, id int, r model.DateRecord) (model.DateRecord, error) {
	var updated model.DateRecord
	if err := s.c.put(ctx, fmt.Sprintf(datePath, id), r, &updated); err != nil {
		return model.DateRecord{}, err
	}
	return updated, nil
}

// Delete removes a completion record. Normal toggle flow never deletes;
// this completes the resource contract.
func (s *DateService) Delete(ctx context.Context, id int) error {
	return s.c.delete(ctx, fmt.Sprintf(datePath, id))
}
