package session

import "github.com/nhle/habit-grid/internal/model"

// State is the session state owned by the root of the application: the
// active user plus that user's habits and completion records. It is
// mutated only on the UI event loop, so no locking is needed; the
// record collection is authoritative and everything shown on screen is
// derived from it by lookup.
type State struct {
	// User is the active session user; nil when bootstrap degraded
	// before one could be adopted.
	User *model.User

	// Habits are the active user's habits, or the fallback set when
	// the API was unreachable at bootstrap.
	Habits []model.Habit

	// Records are the active user's completion records.
	Records []model.DateRecord

	// Loading is true only while bootstrap is in flight.
	Loading bool

	// Degraded is true when the fallback habit set is in use.
	Degraded bool
}

// NewState returns an empty state in the loading phase.
func NewState() *State {
	return &State{Loading: true}
}

// FindRecord returns the completion record for a (habit, day, slot)
// tuple, if one exists. At most one should; the first match wins.
func (s *State) FindRecord(habitID int, date, slotName string) (model.DateRecord, bool) {
	for _, r := range s.Records {
		if r.Matches(habitID, date, slotName) {
			return r, true
		}
	}
	return model.DateRecord{}, false
}

// IsDone reports the completion state for a board position on the given
// day. It is a pure lookup over Records, so records loaded from a
// previous session render correctly without any separate activation
// cache to keep in sync.
func (s *State) IsDone(habitIndex, slotIndex int, date string) bool {
	if habitIndex < 0 || habitIndex >= len(s.Habits) {
		return false
	}
	rec, ok := s.FindRecord(s.Habits[habitIndex].ID, date, model.SlotName(slotIndex))
	return ok && rec.IsDone
}

// replaceRecord swaps the record with the same ID for the given copy.
func (s *State) replaceRecord(rec model.DateRecord) {
	for i := range s.Records {
		if s.Records[i].ID == rec.ID {
			s.Records[i] = rec
			return
		}
	}
}
