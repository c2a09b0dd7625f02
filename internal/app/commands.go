package app

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhle/habit-grid/internal/api"
	"github.com/nhle/habit-grid/internal/logger"
	"github.com/nhle/habit-grid/internal/model"
	"github.com/nhle/habit-grid/internal/session"
)

// bootstrapDoneMsg carries the resolved session state.
type bootstrapDoneMsg struct {
	state *session.State
}

// toggleResultMsg carries the outcome of an executed toggle plan.
type toggleResultMsg struct {
	res session.ToggleResult
}

// bootstrap returns a command that runs the bootstrap resolver. Resolve
// never fails; a degraded state is still a usable state.
func (m Model) bootstrap() tea.Cmd {
	r := m.resolver
	return func() tea.Msg {
		return bootstrapDoneMsg{state: r.Resolve(context.Background())}
	}
}

// performToggle returns a command that executes a prepared toggle plan
// against the remote store. The plan was computed on the event loop;
// Do touches no shared state, and the result is folded back in Update
// via Engine.Apply.
func (m Model) performToggle(plan session.Plan) tea.Cmd {
	e := m.engine
	return func() tea.Msg {
		return toggleResultMsg{res: e.Do(context.Background(), plan)}
	}
}

// applyBaseURL persists a new API base URL and rebuilds the client,
// resolver, and engine around it, then re-runs bootstrap. The session
// state pointer is kept so the board keeps rendering.
func (m *Model) applyBaseURL(baseURL string) tea.Cmd {
	m.cfg.API.BaseURL = baseURL
	if err := model.SaveConfig(m.cfgPath, m.cfg); err != nil {
		logger.Logger.Error("saving config", "path", m.cfgPath, "err", err)
		m.setStatus("could not save config, applying for this session only", true)
	}

	m.client = api.NewClient(baseURL)
	m.resolver = session.NewResolver(
		m.client.Users(),
		m.client.Habits(),
		m.client.Dates(),
	)
	m.engine = session.NewEngine(m.client.Dates(), m.state)
	m.state.Loading = true

	return m.bootstrap()
}
