package model

import (
	"fmt"
	"time"
)

// SlotCount is the number of independently togglable slots per habit
// per day. Slot semantics are left to the user (time of day, weekly
// recurrence); the client treats them as opaque positions 0..6.
const SlotCount = 7

// DateRecord is the persisted completion fact for one
// (user, habit, day, slot) tuple. At most one record exists per tuple;
// records are created lazily on first toggle and only mutated afterwards.
type DateRecord struct {
	// ID is the server-assigned unique identifier.
	ID int `json:"id"`

	// User is the ID of the owning user.
	User int `json:"user"`

	// Habit is the ID of the habit this record belongs to.
	Habit int `json:"habit"`

	// HabitDate is the calendar day in ISO form (YYYY-MM-DD).
	HabitDate string `json:"habit_date"`

	// Name identifies the slot within the day ("day-0".."day-6").
	Name string `json:"name"`

	// IsDone is the completion flag flipped by each toggle.
	IsDone bool `json:"is_done"`

	// Slug is the derived uniqueness key: {habit.slug}-{date}-{slot}.
	Slug string `json:"slug"`
}

// SlotName returns the wire name for a slot index.
func SlotName(slot int) string {
	return fmt.Sprintf("day-%d", slot)
}

// RecordSlug derives the uniqueness key for a completion record.
func RecordSlug(habitSlug, date string, slot int) string {
	return fmt.Sprintf("%s-%s-%d", habitSlug, date, slot)
}

// Day truncates a time to the ISO day form used in HabitDate.
func Day(t time.Time) string {
	return t.Format("2006-01-02")
}

// Matches reports whether the record is the completion fact for the
// given (habit, day, slot) tuple.
func (r DateRecord) Matches(habitID int, date, slotName string) bool {
	return r.Habit == habitID && r.HabitDate == date && r.Name == slotName
}
