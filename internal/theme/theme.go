package theme

import "github.com/charmbracelet/lipgloss"

// Adaptive color pairs (dark terminal value, light terminal value).
var (
	ColorBlue   = lipgloss.AdaptiveColor{Dark: "#5B9BD5", Light: "#2B6CB0"}
	ColorGreen  = lipgloss.AdaptiveColor{Dark: "#6BCB77", Light: "#2F855A"}
	ColorYellow = lipgloss.AdaptiveColor{Dark: "#FFD93D", Light: "#B7791F"}
	ColorRed    = lipgloss.AdaptiveColor{Dark: "#FF6B6B", Light: "#C53030"}
	ColorGray   = lipgloss.AdaptiveColor{Dark: "#868E96", Light: "#718096"}
	ColorWhite  = lipgloss.AdaptiveColor{Dark: "#F8F9FA", Light: "#1A202C"}
	ColorSubtle = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#CBD5E0"}
	ColorBorder = lipgloss.AdaptiveColor{Dark: "#495057", Light: "#E2E8F0"}
)

// HeaderStyle is used for the application title bar.
var HeaderStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorBlue).
	Padding(0, 1)

// StatusBarStyle is used for the bottom status bar.
var StatusBarStyle = lipgloss.NewStyle().
	Foreground(ColorWhite).
	Background(ColorSubtle).
	Padding(0, 1)

// ErrorBarStyle replaces the status bar style for failure messages.
var ErrorBarStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorWhite).
	Background(ColorRed).
	Padding(0, 1)

// HabitNameStyle renders habit labels on the board.
var HabitNameStyle = lipgloss.NewStyle().
	PaddingLeft(2)

// SelectedHabitStyle highlights the habit row under the cursor.
var SelectedHabitStyle = lipgloss.NewStyle().
	PaddingLeft(1).
	Bold(true).
	Foreground(ColorBlue).
	Border(lipgloss.NormalBorder(), false, false, false, true).
	BorderForeground(ColorBlue)

// SlotDoneStyle renders a completed slot cell.
var SlotDoneStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorGreen)

// SlotOpenStyle renders an untouched or un-done slot cell.
var SlotOpenStyle = lipgloss.NewStyle().
	Foreground(ColorGray)

// SlotCursorStyle marks the slot cell under the cursor.
var SlotCursorStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorYellow)

// CalendarDayStyle renders a day cell in the calendar strip.
var CalendarDayStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Foreground(ColorWhite)

// CalendarSelectedStyle highlights the selected day cell.
var CalendarSelectedStyle = lipgloss.NewStyle().
	Padding(0, 1).
	Bold(true).
	Foreground(ColorYellow)

// OverlayStyle frames the selected-day overlay and other modal panels.
var OverlayStyle = lipgloss.NewStyle().
	Padding(1, 2).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(ColorBorder)

// DegradedStyle renders the offline-fallback banner.
var DegradedStyle = lipgloss.NewStyle().
	Bold(true).
	Foreground(ColorYellow)

// HelpStyle is used for keyboard shortcut hints and muted text.
var HelpStyle = lipgloss.NewStyle().
	Foreground(ColorGray).
	Italic(true)
