package board

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/habit-grid/internal/keys"
	"github.com/nhle/habit-grid/internal/model"
	"github.com/nhle/habit-grid/internal/session"
)

func testBoard(habitCount int) Model {
	st := session.NewState()
	st.Loading = false
	for i := 0; i < habitCount; i++ {
		st.Habits = append(st.Habits, model.Habit{ID: i + 1, User: 1})
	}
	return New(st, keys.DefaultKeyMap(), 80, 24)
}

func press(m Model, k string) (Model, tea.Cmd) {
	return m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)})
}

func TestCursorMovementClampsToGrid(t *testing.T) {
	m := testBoard(2)

	m, _ = press(m, "k")
	m, _ = press(m, "h")
	row, col := m.Cursor()
	assert.Equal(t, 0, row, "cursor does not move above the first habit")
	assert.Equal(t, 0, col, "cursor does not move past the first slot")

	for i := 0; i < 10; i++ {
		m, _ = press(m, "j")
		m, _ = press(m, "l")
	}
	row, col = m.Cursor()
	assert.Equal(t, 1, row)
	assert.Equal(t, model.SlotCount-1, col)
}

func TestToggleEmitsRequestForCursorPosition(t *testing.T) {
	m := testBoard(3)
	m, _ = press(m, "j")
	m, _ = press(m, "j")
	m, _ = press(m, "l")

	m, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	require.NotNil(t, cmd)

	msg, ok := cmd().(ToggleRequestMsg)
	require.True(t, ok)
	assert.Equal(t, 2, msg.HabitIndex)
	assert.Equal(t, 1, msg.SlotIndex)
}

func TestToggleNoOpWithoutHabits(t *testing.T) {
	m := testBoard(0)

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace})
	assert.Nil(t, cmd)
}
