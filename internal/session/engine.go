package session

import (
	"context"
	"time"

	"github.com/nhle/habit-grid/internal/api"
	"github.com/nhle/habit-grid/internal/logger"
	"github.com/nhle/habit-grid/internal/model"
)

// DateWriter is the slice of the completion-record collection the
// engine writes through.
type DateWriter interface {
	Create(ctx context.Context, r model.DateRecord) (model.DateRecord, error)
	Update(ctx context.Context, id int, r model.DateRecord) (model.DateRecord, error)
}

// Outcome classifies what a toggle did.
type Outcome int

const (
	// OutcomeCreated means no record existed for the tuple; one was
	// created with is_done=true.
	OutcomeCreated Outcome = iota

	// OutcomeUpdated means an existing record had its is_done flipped.
	OutcomeUpdated

	// OutcomeFailed means the remote call failed; state is unchanged.
	OutcomeFailed
)

// Plan is a prepared toggle: the request to send and where its result
// lands. Plans are computed synchronously on the event loop against the
// current record collection, then executed off-loop.
type Plan struct {
	HabitIndex int
	SlotIndex  int

	// Create selects POST over PUT.
	Create bool

	// Record is the payload: a new record for creates, a flipped copy
	// of the existing record for updates.
	Record model.DateRecord

	key string
}

// ToggleResult is the explicit outcome of a toggle, returned to the
// presentation layer so it can decide whether to show a retry
// affordance. Nothing is silently swallowed.
type ToggleResult struct {
	HabitIndex int
	SlotIndex  int
	Outcome    Outcome
	Record     model.DateRecord
	Err        error

	// Retryable is true for network and server-side failures.
	Retryable bool

	key string
}

// Engine reconciles toggle requests against the remote completion-record
// store: it decides create vs. update for a (habit, day, slot) tuple,
// keeps at most one in-flight request per tuple, and folds results back
// into the session state.
//
// Begin and Apply must run on the UI event loop; Do is pure with
// respect to state and runs inside a command goroutine.
type Engine struct {
	dates   DateWriter
	state   *State
	pending map[string]struct{}
	now     func() time.Time
}

// NewEngine creates an Engine writing through dates and reconciling st.
func NewEngine(dates DateWriter, st *State) *Engine {
	return &Engine{
		dates:   dates,
		state:   st,
		pending: make(map[string]struct{}),
		now:     time.Now,
	}
}

// Begin plans a toggle for a board position "today". It returns ok=false
// as a silent no-op when there is no active user, the position is out of
// range, or a toggle for the same (habit, day, slot) tuple is already in
// flight — the last guard is what keeps search-then-create from racing
// itself into duplicate records.
func (e *Engine) Begin(habitIndex, slotIndex int) (Plan, bool) {
	if e.state.User == nil {
		return Plan{}, false
	}
	if habitIndex < 0 || habitIndex >= len(e.state.Habits) {
		return Plan{}, false
	}
	if slotIndex < 0 || slotIndex >= model.SlotCount {
		return Plan{}, false
	}

	habit := e.state.Habits[habitIndex]
	today := model.Day(e.now())
	slot := model.SlotName(slotIndex)
	key := model.RecordSlug(habit.Slug, today, slotIndex)

	if _, busy := e.pending[key]; busy {
		return Plan{}, false
	}

	p := Plan{HabitIndex: habitIndex, SlotIndex: slotIndex, key: key}
	if existing, ok := e.state.FindRecord(habit.ID, today, slot); ok {
		existing.IsDone = !existing.IsDone
		p.Record = existing
	} else {
		// First toggle of a slot always marks it done.
		p.Create = true
		p.Record = model.DateRecord{
			User:      e.state.User.ID,
			Habit:     habit.ID,
			HabitDate: today,
			Name:      slot,
			IsDone:    true,
			Slug:      key,
		}
	}

	e.pending[key] = struct{}{}
	return p, true
}

// Do executes a plan against the remote store and classifies the result.
// It performs no state mutation and is safe to run concurrently with
// rendering.
func (e *Engine) Do(ctx context.Context, p Plan) ToggleResult {
	res := ToggleResult{
		HabitIndex: p.HabitIndex,
		SlotIndex:  p.SlotIndex,
		key:        p.key,
	}

	var rec model.DateRecord
	var err error
	if p.Create {
		rec, err = e.dates.Create(ctx, p.Record)
	} else {
		rec, err = e.dates.Update(ctx, p.Record.ID, p.Record)
	}

	if err != nil {
		res.Outcome = OutcomeFailed
		res.Err = err
		if te, ok := api.IsTransport(err); ok {
			res.Retryable = te.Retryable()
		}
		logger.Logger.Error("toggle failed",
			"habit", p.Record.Habit,
			"slot", p.Record.Name,
			"date", p.Record.HabitDate,
			"err", err)
		return res
	}

	res.Record = rec
	if p.Create {
		res.Outcome = OutcomeCreated
	} else {
		res.Outcome = OutcomeUpdated
	}
	return res
}

// Apply folds a toggle result back into the session state and releases
// the in-flight guard for its tuple. Failed toggles leave the record
// collection untouched; the caller surfaces the error.
func (e *Engine) Apply(res ToggleResult) {
	delete(e.pending, res.key)

	switch res.Outcome {
	case OutcomeCreated:
		e.state.Records = append(e.state.Records, res.Record)
	case OutcomeUpdated:
		e.state.replaceRecord(res.Record)
	}
}

// Toggle runs Begin, Do, and Apply in sequence for callers outside the
// event loop. It returns ok=false when the toggle was a silent no-op.
func (e *Engine) Toggle(ctx context.Context, habitIndex, slotIndex int) (ToggleResult, bool) {
	p, ok := e.Begin(habitIndex, slotIndex)
	if !ok {
		return ToggleResult{}, false
	}
	res := e.Do(ctx, p)
	e.Apply(res)
	return res, true
}

// Today returns the engine's notion of the current day.
func (e *Engine) Today() string {
	return model.Day(e.now())
}
