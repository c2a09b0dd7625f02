package board

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habit-grid/internal/keys"
	"github.com/nhle/habit-grid/internal/model"
	"github.com/nhle/habit-grid/internal/session"
	"github.com/nhle/habit-grid/internal/theme"
)

// ToggleRequestMsg is emitted when the user toggles the slot under the
// cursor. The root model feeds it to the reconciliation engine.
type ToggleRequestMsg struct {
	HabitIndex int
	SlotIndex  int
}

// Model is the habit board component: one row per habit, seven slot
// cells per row. It renders purely from the session state; completion
// marks come from State.IsDone, never from a local cache.
type Model struct {
	state *session.State
	keys  *keys.KeyMap

	habitRow int
	slotCol  int

	width  int
	height int
}

// New creates a board over the given session state.
func New(st *session.State, k *keys.KeyMap, width, height int) Model {
	return Model{
		state:  st,
		keys:   k,
		width:  width,
		height: height,
	}
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Cursor returns the board position under the cursor.
func (m Model) Cursor() (habitIndex, slotIndex int) {
	return m.habitRow, m.slotCol
}

// Update handles key messages for cursor movement and toggling.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Down):
		if m.habitRow < len(m.state.Habits)-1 {
			m.habitRow++
		}
	case key.Matches(keyMsg, m.keys.Up):
		if m.habitRow > 0 {
			m.habitRow--
		}
	case key.Matches(keyMsg, m.keys.Right):
		if m.slotCol < model.SlotCount-1 {
			m.slotCol++
		}
	case key.Matches(keyMsg, m.keys.Left):
		if m.slotCol > 0 {
			m.slotCol--
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		if len(m.state.Habits) == 0 {
			return m, nil
		}
		habitIndex, slotIndex := m.habitRow, m.slotCol
		return m, func() tea.Msg {
			return ToggleRequestMsg{
				HabitIndex: habitIndex,
				SlotIndex:  slotIndex,
			}
		}
	}

	return m, nil
}

// View renders the habit rows with their slot cells.
func (m Model) View() string {
	if m.state.Loading {
		return theme.HelpStyle.Render("Загрузка привычек...")
	}
	if len(m.state.Habits) == 0 {
		return theme.HelpStyle.Render("Нет привычек")
	}

	today := model.Day(time.Now())

	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render("Ежедневные привычки"))
	b.WriteString("\n")

	if m.state.Degraded {
		b.WriteString(theme.DegradedStyle.Render(
			"⚠ API недоступен — показан резервный список привычек"))
		b.WriteString("\n")
	}

	for i, habit := range m.state.Habits {
		name := habit.Name
		if i == m.habitRow {
			name = theme.SelectedHabitStyle.Render(name)
		} else {
			name = theme.HabitNameStyle.Render(name)
		}

		cells := make([]string, 0, model.SlotCount)
		for slot := 0; slot < model.SlotCount; slot++ {
			cells = append(cells, m.renderCell(i, slot, today))
		}

		b.WriteString(name)
		b.WriteString("\n")
		b.WriteString(theme.HabitNameStyle.Render(strings.Join(cells, " ")))
		if i < len(m.state.Habits)-1 {
			b.WriteString("\n")
		}
	}

	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}

// renderCell draws one slot cell, marking completion and the cursor.
func (m Model) renderCell(habitIndex, slot int, today string) string {
	done := m.state.IsDone(habitIndex, slot, today)

	mark := "□"
	style := theme.SlotOpenStyle
	if done {
		mark = "■"
		style = theme.SlotDoneStyle
	}

	cell := fmt.Sprintf("[%s]", mark)
	if habitIndex == m.habitRow && slot == m.slotCol {
		return theme.SlotCursorStyle.Render(cell)
	}
	return style.Render(cell)
}
