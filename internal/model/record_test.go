package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSlotName(t *testing.T) {
	assert.Equal(t, "day-0", SlotName(0))
	assert.Equal(t, "day-6", SlotName(6))
}

func TestRecordSlug(t *testing.T) {
	assert.Equal(t, "post-2025-07-01-2", RecordSlug("post", "2025-07-01", 2))
	assert.Equal(t, "gymnastics-2025-12-31-6", RecordSlug("gymnastics", "2025-12-31", 6))
}

func TestDayTruncatesToDate(t *testing.T) {
	ts := time.Date(2025, 7, 1, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, "2025-07-01", Day(ts))
}

func TestMatches(t *testing.T) {
	rec := DateRecord{Habit: 3, HabitDate: "2025-07-01", Name: "day-2"}

	assert.True(t, rec.Matches(3, "2025-07-01", "day-2"))
	assert.False(t, rec.Matches(4, "2025-07-01", "day-2"))
	assert.False(t, rec.Matches(3, "2025-07-02", "day-2"))
	assert.False(t, rec.Matches(3, "2025-07-01", "day-3"))
}

func TestFallbackHabits(t *testing.T) {
	habits := FallbackHabits()

	assert.Len(t, habits, 7)
	slugs := make([]string, 0, len(habits))
	for _, h := range habits {
		assert.NotZero(t, h.ID)
		assert.Zero(t, h.User, "fallback habits carry no server ownership")
		slugs = append(slugs, h.Slug)
	}
	assert.Equal(t, []string{
		"post", "techedjut", "kk", "djevshen", "tarsir", "gymnastics", "mood",
	}, slugs)
}
