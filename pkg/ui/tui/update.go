package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"instagrowth/pkg/engine"
)

// EngineEventMsg wraps an engine event for the bubbletea loop. The Run
// helper forwards bus events as these messages.
type EngineEventMsg struct {
	Event engine.Event
}

// refreshMsg re-reads the engine stats on a fixed cadence so the dashboard
// stays correct even if an event was missed.
type refreshMsg time.Time

func refreshCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return refreshMsg(t)
	})
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.goalBar.Width = min(60, msg.Width-12)
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progress.FrameMsg:
		bar, cmd := m.goalBar.Update(msg)
		m.goalBar = bar.(progress.Model)
		return m, cmd

	case refreshMsg:
		m.stats = m.engine.Stats()
		return m, tea.Batch(refreshCmd(), m.goalBar.SetPercent(m.stats.GoalProgress/100))

	case EngineEventMsg:
		return m.handleEngineEvent(msg.Event)
	}

	return m, nil
}

func (m Model) handleEngineEvent(e engine.Event) (tea.Model, tea.Cmd) {
	m.stats = m.engine.Stats()

	switch e.Type {
	case engine.EventGrowthStarted:
		m.addActivity("Simulation started", 0)
	case engine.EventGrowthStopped:
		m.addActivity("Simulation stopped", 0)
	case engine.EventFollowersUpdated:
		m.addActivity(fmt.Sprintf("+%d followers (%d today)", e.Amount, e.TodayTotal), e.Amount)
	case engine.EventTargetReached:
		m.goalReached = true
		m.addActivity(fmt.Sprintf("Goal reached: %d followers!", e.Current), 0)
	case engine.EventSettingsUpdated:
		m.addActivity("Settings updated", 0)
	}

	return m, m.goalBar.SetPercent(m.stats.GoalProgress / 100)
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "ctrl+c":
		return m, tea.Quit

	case "s", "S":
		if m.engine.Running() {
			m.engine.Stop()
		} else {
			if err := m.engine.Start(context.Background()); err != nil {
				m.err = err
			} else {
				m.err = nil
				m.goalReached = false
			}
		}
		m.stats = m.engine.Stats()
		return m, nil

	case "r", "R":
		m.stats = m.engine.Stats()
		return m, nil

	case "?":
		m.showHelp = !m.showHelp
		return m, nil
	}

	return m, nil
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
