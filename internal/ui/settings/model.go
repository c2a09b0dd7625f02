package settings

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/nhle/habit-grid/internal/api"
	"github.com/nhle/habit-grid/internal/theme"
)

// Mode represents the current state of the settings view.
type Mode int

const (
	ModeForm       Mode = iota // Editing the base URL
	ModeValidating             // Testing connectivity
	ModeResult                 // Showing the connection-test outcome
)

// DoneMsg signals the settings view should close. When Saved is true
// the root model persists BaseURL and rebuilds its API client.
type DoneMsg struct {
	Saved   bool
	BaseURL string
}

// validateResultMsg carries the result of a connection test.
type validateResultMsg struct {
	err error
}

// pingTimeout bounds the connection test.
const pingTimeout = 10 * time.Second

// Model is the Bubble Tea model for the settings form. It edits the
// API base URL, tests connectivity against it, and hands the result
// back to the root model.
type Model struct {
	mode Mode
	form *huh.Form

	// baseURL is heap-allocated so the huh binding survives model copies.
	baseURL *string

	spinner  spinner.Model
	validErr error

	// ping is swappable so tests do not dial a live server.
	ping func(ctx context.Context, baseURL string) error

	width  int
	height int
}

// New creates a settings view seeded with the current base URL.
func New(baseURL string, width, height int) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	u := baseURL
	m := Model{
		mode:    ModeForm,
		baseURL: &u,
		spinner: sp,
		width:   width,
		height:  height,
		ping: func(ctx context.Context, u string) error {
			return api.NewClient(u).Ping(ctx)
		},
	}
	m.form = m.buildForm()
	return m
}

// SetSize updates the component dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// Init starts the form.
func (m Model) Init() tea.Cmd {
	return m.form.Init()
}

func (m Model) buildForm() *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("API base URL").
				Description("Root URL of the habit API (e.g., http://localhost:8000/api)").
				Placeholder("http://localhost:8000/api").
				Value(m.baseURL).
				Validate(validateURL),
		),
	).WithWidth(m.width)
}

// Update handles messages based on current mode.
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case validateResultMsg:
		m.validErr = msg.err
		m.mode = ModeResult
		return m, nil

	case spinner.TickMsg:
		if m.mode == ModeValidating {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch m.mode {
	case ModeForm:
		return m.updateForm(msg)
	case ModeValidating:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "esc" {
			m.mode = ModeForm
			m.form = m.buildForm()
			return m, m.form.Init()
		}
		return m, nil
	case ModeResult:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			return m.handleResultKeys(keyMsg)
		}
	}
	return m, nil
}

// updateForm drives the huh form until it completes or aborts.
func (m Model) updateForm(msg tea.Msg) (Model, tea.Cmd) {
	mdl, cmd := m.form.Update(msg)
	if f, ok := mdl.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		m.mode = ModeValidating
		return m, tea.Batch(
			m.spinner.Tick,
			m.testConnection(*m.baseURL),
		)
	}
	if m.form.State == huh.StateAborted {
		return m, func() tea.Msg { return DoneMsg{Saved: false} }
	}

	return m, cmd
}

// handleResultKeys processes keys on the connection-test result screen:
// enter accepts, e re-edits, esc discards. A failed test can still be
// accepted; the API may simply be down right now.
func (m Model) handleResultKeys(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		url := *m.baseURL
		return m, func() tea.Msg { return DoneMsg{Saved: true, BaseURL: url} }
	case "e":
		m.mode = ModeForm
		m.form = m.buildForm()
		return m, m.form.Init()
	case "esc":
		return m, func() tea.Msg { return DoneMsg{Saved: false} }
	}
	return m, nil
}

// testConnection returns a command that pings the API at the given URL.
func (m Model) testConnection(baseURL string) tea.Cmd {
	ping := m.ping
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
		defer cancel()
		return validateResultMsg{err: ping(ctx, baseURL)}
	}
}

// View renders the settings form or the connection-test status.
func (m Model) View() string {
	switch m.mode {
	case ModeValidating:
		return fmt.Sprintf("%s Testing connection to %s...\n\n%s",
			m.spinner.View(),
			*m.baseURL,
			theme.HelpStyle.Render("esc cancel"))
	case ModeResult:
		status := theme.SlotDoneStyle.Render("✓ Connection OK")
		if m.validErr != nil {
			status = theme.ErrorBarStyle.Render(
				fmt.Sprintf("✗ Connection failed: %v", m.validErr))
		}
		return fmt.Sprintf("%s\n\n%s\n%s",
			status,
			*m.baseURL,
			theme.HelpStyle.Render("enter save | e edit | esc cancel"))
	default:
		return m.form.View()
	}
}

// validateURL rejects values that do not parse as absolute http(s) URLs.
func validateURL(s string) error {
	if s == "" {
		return fmt.Errorf("URL is required")
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("must be an absolute URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("scheme must be http or https")
	}
	return nil
}
