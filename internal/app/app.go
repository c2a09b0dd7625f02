package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/habit-grid/internal/api"
	"github.com/nhle/habit-grid/internal/keys"
	"github.com/nhle/habit-grid/internal/logger"
	"github.com/nhle/habit-grid/internal/model"
	"github.com/nhle/habit-grid/internal/session"
	"github.com/nhle/habit-grid/internal/ui"
	"github.com/nhle/habit-grid/internal/ui/board"
	"github.com/nhle/habit-grid/internal/ui/calendar"
	"github.com/nhle/habit-grid/internal/ui/settings"
)

// ViewState represents the current active view in the application.
type ViewState int

const (
	ViewBoard    ViewState = iota // Calendar strip + habit board
	ViewDay                       // Selected-day overlay
	ViewSettings                  // API settings form
	ViewHelp                      // Keybinding help overlay
)

// Model is the root Bubble Tea model. It owns the session state and the
// reconciliation engine; every state mutation happens here, on the
// event loop, in response to completed commands.
type Model struct {
	currentView ViewState
	layout      ui.Layout
	ready       bool

	cfg     *model.AppConfig
	cfgPath string

	client   *api.Client
	resolver *session.Resolver
	engine   *session.Engine
	state    *session.State
	keys     *keys.KeyMap

	board        board.Model
	calendar     calendar.Model
	settingsView settings.Model
	help         help.Model

	selectedDay *calendar.Day

	statusMsg   string
	statusIsErr bool

	// lastFailed remembers the board position of the most recent failed
	// toggle so the retry key can replay it.
	lastFailed *board.ToggleRequestMsg
}

// New creates the root application model for the given configuration.
func New(cfg *model.AppConfig, cfgPath string) Model {
	k := keys.DefaultKeyMap()
	st := session.NewState()
	client := api.NewClient(cfg.API.BaseURL)

	h := help.New()
	h.ShowAll = true

	return Model{
		currentView:  ViewBoard,
		cfg:          cfg,
		cfgPath:      cfgPath,
		client:       client,
		resolver:     session.NewResolver(client.Users(), client.Habits(), client.Dates()),
		engine:       session.NewEngine(client.Dates(), st),
		state:        st,
		keys:         k,
		board:        board.New(st, k, 80, 24),
		calendar:     calendar.New(k, 80),
		settingsView: settings.New(cfg.API.BaseURL, 80, 24),
		help:         h,
	}
}

// Init starts session bootstrap.
func (m Model) Init() tea.Cmd {
	return m.bootstrap()
}

// Update handles messages and dispatches to the active view.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.layout = ui.NewLayout(msg.Width, msg.Height)
		m.ready = true
		contentWidth := m.layout.ContentWidth()
		contentHeight := m.layout.ContentHeight()
		m.calendar.SetSize(contentWidth)
		m.board.SetSize(contentWidth, contentHeight-4)
		m.settingsView.SetSize(contentWidth, contentHeight)
		m.help.Width = contentWidth
		return m.updateActiveView(msg)

	case bootstrapDoneMsg:
		// Replace state contents in place; the board and engine hold
		// the same *State. Loading is cleared unconditionally.
		*m.state = *msg.state
		m.state.Loading = false
		if m.state.Degraded {
			m.setStatus("API unreachable, showing fallback habits", true)
		} else {
			m.clearStatus()
		}
		return m, nil

	case board.ToggleRequestMsg:
		plan, ok := m.engine.Begin(msg.HabitIndex, msg.SlotIndex)
		if !ok {
			// Silent no-op: no user, bad index, or toggle in flight.
			return m, nil
		}
		return m, m.performToggle(plan)

	case toggleResultMsg:
		m.engine.Apply(msg.res)
		if msg.res.Err != nil {
			m.lastFailed = &board.ToggleRequestMsg{
				HabitIndex: msg.res.HabitIndex,
				SlotIndex:  msg.res.SlotIndex,
			}
			hint := ""
			if msg.res.Retryable {
				hint = " — press t to retry"
			}
			m.setStatus(fmt.Sprintf("toggle failed: %v%s", msg.res.Err, hint), true)
			return m, nil
		}
		m.lastFailed = nil
		m.clearStatus()
		return m, nil

	case calendar.SelectedDayMsg:
		day := msg.Day
		m.selectedDay = &day
		m.currentView = ViewDay
		return m, nil

	case settings.DoneMsg:
		m.currentView = ViewBoard
		if !msg.Saved {
			return m, nil
		}
		return m, m.applyBaseURL(msg.BaseURL)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateActiveView(msg)
}

// handleKey routes key messages: view-local dismissal first, then the
// global bindings, then the focused component.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.currentView {
	case ViewDay:
		switch msg.String() {
		case "esc", "enter", "q":
			m.selectedDay = nil
			m.currentView = ViewBoard
		}
		return m, nil

	case ViewHelp:
		switch msg.String() {
		case "?", "esc", "q":
			m.currentView = ViewBoard
		}
		return m, nil

	case ViewSettings:
		return m.updateActiveView(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit

	case "?":
		m.currentView = ViewHelp
		return m, nil

	case "s":
		m.currentView = ViewSettings
		m.settingsView = settings.New(
			m.cfg.API.BaseURL,
			m.layout.ContentWidth(),
			m.layout.ContentHeight(),
		)
		return m, m.settingsView.Init()

	case "r":
		m.state.Loading = true
		m.clearStatus()
		return m, m.bootstrap()

	case "t":
		if m.lastFailed != nil {
			req := *m.lastFailed
			m.lastFailed = nil
			return m, func() tea.Msg { return req }
		}
		return m, nil

	case "tab":
		if m.calendar.Focused() {
			m.calendar.Blur()
		} else {
			m.calendar.Focus()
		}
		return m, nil
	}

	if m.calendar.Focused() {
		var cmd tea.Cmd
		m.calendar, cmd = m.calendar.Update(msg)
		return m, cmd
	}
	return m.updateActiveView(msg)
}

// updateActiveView dispatches the message to the currently active view.
func (m Model) updateActiveView(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch m.currentView {
	case ViewSettings:
		m.settingsView, cmd = m.settingsView.Update(msg)
	default:
		m.board, cmd = m.board.Update(msg)
	}

	return m, cmd
}

// View renders the full terminal UI using the layout manager.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}

	header := m.layout.RenderHeader("Habit Grid", m.sessionStatus())
	content := m.renderContent()
	statusBar := m.layout.RenderStatusBar(m.statusLine(), m.statusIsErr)

	return m.layout.RenderWithFrame(header, content, statusBar)
}

// renderContent returns the rendered string for the current active view.
func (m Model) renderContent() string {
	switch m.currentView {
	case ViewSettings:
		return m.settingsView.View()
	case ViewHelp:
		return m.layout.RenderOverlay(m.help.View(m.keys))
	case ViewDay:
		return m.layout.RenderOverlay(m.renderDayDetail())
	default:
		return m.calendar.View() + "\n\n" + m.board.View()
	}
}

// renderDayDetail shows the static label of the selected calendar day.
func (m Model) renderDayDetail() string {
	if m.selectedDay == nil {
		return ""
	}
	return fmt.Sprintf("Детали дня\n\n%s: %s\n\n%s",
		m.selectedDay.Label,
		m.selectedDay.Value,
		"esc закрыть")
}

// sessionStatus returns a short string for the header's right side.
func (m Model) sessionStatus() string {
	switch {
	case m.state.Loading:
		return "loading"
	case m.state.Degraded:
		return "offline"
	case m.state.User != nil:
		return m.state.User.Slug
	default:
		return "no user"
	}
}

// statusLine returns the status bar content: a transient message when
// one is set, keyboard hints otherwise.
func (m Model) statusLine() string {
	if m.statusMsg != "" {
		return m.statusMsg
	}

	switch m.currentView {
	case ViewSettings:
		return "enter submit | esc cancel"
	case ViewHelp:
		return "? close help"
	case ViewDay:
		return "esc close"
	default:
		if m.calendar.Focused() {
			return "h/l select day | enter details | tab board"
		}
		return "space toggle | h/j/k/l move | r refresh | tab calendar | s settings | ? help | q quit"
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.statusMsg = text
	m.statusIsErr = isErr
	if isErr {
		logger.Logger.Warn(text)
	}
}

func (m *Model) clearStatus() {
	m.statusMsg = ""
	m.statusIsErr = false
}
