package tui

import (
	"github.com/charmbracelet/lipgloss"
)

var (
	// Instagram-gradient palette
	gradientPink   = lipgloss.Color("#E1306C")
	gradientPurple = lipgloss.Color("#833AB4")
	gradientOrange = lipgloss.Color("#F77737")
	gradientYellow = lipgloss.Color("#FCAF45")
	accentGreen    = lipgloss.Color("#2ECC71")
	accentRed      = lipgloss.Color("#E74C3C")
	dimWhite       = lipgloss.Color("#B0B0B0")

	logoStyle = lipgloss.NewStyle().
			Foreground(gradientPink).
			Bold(true).
			Padding(1, 0).
			Align(lipgloss.Center)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(gradientPurple).
			Padding(1, 2)

	titleStyle = lipgloss.NewStyle().
			Background(gradientPurple).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true).
			Padding(0, 1)

	statsLabelStyle = lipgloss.NewStyle().
			Foreground(gradientOrange).
			Bold(true)

	statsValueStyle = lipgloss.NewStyle().
			Foreground(gradientYellow)

	runningStyle = lipgloss.NewStyle().
			Foreground(accentGreen).
			Bold(true)

	stoppedStyle = lipgloss.NewStyle().
			Foreground(accentRed).
			Bold(true)

	goalReachedStyle = lipgloss.NewStyle().
				Foreground(accentGreen).
				Bold(true).
				Blink(true)

	activityTimeStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#666666"))

	activityTextStyle = lipgloss.NewStyle().
				Foreground(dimWhite)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262")).
			Padding(1, 0, 0, 2)
)

// deltaStyle colors a follower delta by sign.
func deltaStyle(amount int) lipgloss.Style {
	if amount > 0 {
		return lipgloss.NewStyle().Foreground(accentGreen)
	}
	return lipgloss.NewStyle().Foreground(dimWhite)
}
