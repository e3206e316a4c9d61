package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	var sections []string
	sections = append(sections, m.renderLogo())

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.renderStatsPanel(),
		m.renderGoalPanel(),
	)
	right := m.renderActivityPanel()
	sections = append(sections, lipgloss.JoinHorizontal(lipgloss.Top, left, "  ", right))

	if m.err != nil {
		sections = append(sections, stoppedStyle.Render("error: "+m.err.Error()))
	}
	if m.showHelp {
		sections = append(sections, m.renderHelp())
	} else {
		sections = append(sections, helpStyle.Render("s start/stop • q quit • ? help"))
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderLogo() string {
	return logoStyle.Width(m.width).Render("▐ INSTAGROWTH ▌ follower growth simulator")
}

func (m Model) renderStatsPanel() string {
	width := (m.width - 6) / 2

	status := stoppedStyle.Render("● STOPPED")
	if m.stats.Running {
		status = runningStyle.Render(m.spinner.View() + " GROWING")
	}

	rows := []string{
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Account:"), statsValueStyle.Render("@"+m.stats.Username)),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Status:"), status),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Followers:"), statsValueStyle.Render(formatCount(m.stats.CurrentFollowers))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Today:"), deltaStyle(m.stats.TodayGrowth).Render(fmt.Sprintf("+%d", m.stats.TodayGrowth))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Total growth:"), deltaStyle(m.stats.TotalGrowth).Render(fmt.Sprintf("+%d", m.stats.TotalGrowth))),
		fmt.Sprintf("%s %s", statsLabelStyle.Render("Rate:"), statsValueStyle.Render(fmt.Sprintf("%d/day • %s • %s", m.stats.FollowersPerDay, m.stats.Speed, m.stats.Mode))),
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return panelStyle.Width(width).Render(titleStyle.Render(" ACCOUNT ") + "\n\n" + content)
}

func (m Model) renderGoalPanel() string {
	width := (m.width - 6) / 2

	var rows []string
	if m.stats.TargetGoal > 0 {
		rows = append(rows,
			fmt.Sprintf("%s %s", statsLabelStyle.Render("Target:"), statsValueStyle.Render(formatCount(m.stats.TargetGoal))),
			m.goalBar.View(),
			fmt.Sprintf("%.1f%%", m.stats.GoalProgress),
		)
		if m.goalReached {
			rows = append(rows, goalReachedStyle.Render("★ GOAL REACHED ★"))
		} else if m.stats.DaysToGoal > 0 {
			rows = append(rows, fmt.Sprintf("%s %s", statsLabelStyle.Render("ETA:"),
				statsValueStyle.Render(fmt.Sprintf("~%d days", m.stats.DaysToGoal))))
		}
	} else {
		rows = append(rows, activityTextStyle.Render("No goal set"))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return panelStyle.Width(width).Render(titleStyle.Render(" GOAL ") + "\n\n" + content)
}

func (m Model) renderActivityPanel() string {
	width := (m.width - 6) / 2

	var rows []string
	if len(m.activity) == 0 {
		rows = append(rows, activityTextStyle.Render("Waiting for activity..."))
	}
	// Newest first, bounded by available height.
	visible := len(m.activity)
	if max := m.height - 12; max > 0 && visible > max {
		visible = max
	}
	for i := len(m.activity) - 1; i >= len(m.activity)-visible; i-- {
		entry := m.activity[i]
		rows = append(rows, fmt.Sprintf("%s %s",
			activityTimeStyle.Render(entry.Time.Format("15:04:05")),
			deltaStyle(entry.Amount).Render(entry.Message)))
	}

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)
	return panelStyle.Width(width).Render(titleStyle.Render(" ACTIVITY ") + "\n\n" + content)
}

func (m Model) renderHelp() string {
	help := []string{
		"s      start or stop the simulation",
		"r      refresh stats",
		"?      toggle this help",
		"q      quit (simulation keeps its state)",
	}
	return helpStyle.Render(strings.Join(help, "\n"))
}

// formatCount renders 12345 as 12,345.
func formatCount(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
