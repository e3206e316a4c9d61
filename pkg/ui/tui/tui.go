// Package tui renders the live growth dashboard with bubbletea. The
// dashboard is a pure read surface over the engine's stats plus two
// keystrokes that delegate straight back to the engine.
package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"instagrowth/pkg/engine"
)

// Run starts the dashboard and blocks until the user quits. Engine events
// are forwarded into the bubbletea loop for the activity feed; the
// subscription is removed on exit.
func Run(eng *engine.Engine) error {
	program := tea.NewProgram(NewModel(eng), tea.WithAltScreen())

	sub := eng.Events().Subscribe(func(e engine.Event) {
		program.Send(EngineEventMsg{Event: e})
	})
	defer eng.Events().Unsubscribe(sub)

	_, err := program.Run()
	return err
}
