package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"instagrowth/pkg/engine"
)

// Activity is one line in the dashboard's activity feed.
type Activity struct {
	Time    time.Time
	Message string
	Amount  int
}

const maxActivity = 30

// Model is the dashboard's bubbletea model. It renders the engine's read
// model and forwards start/stop keystrokes back to the engine.
type Model struct {
	engine *engine.Engine

	spinner  spinner.Model
	goalBar  progress.Model
	stats    engine.Stats
	activity []Activity

	width       int
	height      int
	showHelp    bool
	goalReached bool
	err         error
}

// NewModel creates the dashboard model around a running engine.
func NewModel(eng *engine.Engine) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(gradientPink)

	bar := progress.New(progress.WithGradient(string(gradientPurple), string(gradientPink)))
	bar.Width = 40

	return Model{
		engine:  eng,
		spinner: s,
		goalBar: bar,
		stats:   eng.Stats(),
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, refreshCmd())
}

func (m *Model) addActivity(message string, amount int) {
	m.activity = append(m.activity, Activity{Time: time.Now(), Message: message, Amount: amount})
	if len(m.activity) > maxActivity {
		m.activity = m.activity[len(m.activity)-maxActivity:]
	}
}
