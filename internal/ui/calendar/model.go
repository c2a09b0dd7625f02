package calendar

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nhle/habit-grid/internal/keys"
	"github.com/nhle/habit-grid/internal/theme"
)

// Day is one cell of the calendar strip: a weekday label and its
// display value.
type Day struct {
	Label string
	Value string
}

// SelectedDayMsg carries the day the user opened; the root model shows
// it in a dismissible overlay. No business logic is attached.
type SelectedDayMsg struct {
	Day Day
}

// Month is the static month header. Like the day values below it, this
// is placeholder demo data carried over from the web client; it is not
// derived from the real calendar date.
const Month = "30 июня-июля 2025г."

// Days returns the fixed weekday strip.
func Days() []Day {
	return []Day{
		{Label: "Пн", Value: "Душа"},
		{Label: "Вт", Value: "Личное"},
		{Label: "Ср", Value: "Работа"},
		{Label: "Чт", Value: ""},
		{Label: "Пт", Value: "50 Вчера"},
		{Label: "Сб", Value: ""},
		{Label: "Вс", Value: "35 Сегодня"},
	}
}

// ExtraTasks is the static auxiliary task row rendered under the strip.
var ExtraTasks = []string{
	"Журналы",
	"Графики",
	"Смелки",
	"Испоминания",
	"Настройка",
}

// Model is the calendar strip component. It only handles day-cursor
// movement and selection while focused.
type Model struct {
	days     []Day
	keys     *keys.KeyMap
	selected int
	focused  bool
	width    int
}

// New creates the calendar strip.
func New(k *keys.KeyMap, width int) Model {
	return Model{
		days:  Days(),
		keys:  k,
		width: width,
	}
}

// SetSize updates the component width.
func (m *Model) SetSize(width int) {
	m.width = width
}

// Focus gives the strip the cursor.
func (m *Model) Focus() { m.focused = true }

// Blur removes the cursor from the strip.
func (m *Model) Blur() { m.focused = false }

// Focused reports whether the strip owns the cursor.
func (m Model) Focused() bool { return m.focused }

// Update handles day-cursor movement and selection while focused.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !m.focused {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Right):
		if m.selected < len(m.days)-1 {
			m.selected++
		}
	case key.Matches(keyMsg, m.keys.Left):
		if m.selected > 0 {
			m.selected--
		}
	case key.Matches(keyMsg, m.keys.Toggle):
		day := m.days[m.selected]
		if day.Value == "" {
			return m, nil
		}
		return m, func() tea.Msg {
			return SelectedDayMsg{Day: day}
		}
	}

	return m, nil
}

// View renders the month header, the weekday strip, and the extra-task
// row.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(theme.HeaderStyle.Render(Month))
	b.WriteString("\n")

	cells := make([]string, 0, len(m.days))
	for i, d := range m.days {
		text := d.Label
		if d.Value != "" {
			text += " · " + d.Value
		}
		style := theme.CalendarDayStyle
		if m.focused && i == m.selected {
			style = theme.CalendarSelectedStyle
		}
		cells = append(cells, style.Render(text))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	b.WriteString("\n")

	b.WriteString(theme.HelpStyle.Render(strings.Join(ExtraTasks, "  ")))

	return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
}
