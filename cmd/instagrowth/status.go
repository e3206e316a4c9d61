package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"instagrowth/pkg/advisor"
	"instagrowth/pkg/analytics"
	"instagrowth/pkg/ui"
)

var (
	statusTips     bool
	statusReport   bool
	statusHashtags string
)

// statusCmd represents the status command
var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current simulation state",
	Long: `Show the current simulation state: follower count, today's growth,
goal progress, and configuration. Add --report for growth statistics and
--tips for organic growth suggestions.`,
	Run: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusTips, "tips", false, "show organic growth suggestions")
	statusCmd.Flags().BoolVar(&statusReport, "report", false, "show growth statistics")
	statusCmd.Flags().StringVar(&statusHashtags, "hashtags", "", "show hashtag suggestions for a niche (fitness, food, travel, ...)")
}

func runStatus(cmd *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail(err)
	}

	stats := a.engine.Stats()
	if stats.Username == "" {
		ui.PrintWarning("No target account configured, run 'instagrowth login <username>' first")
		return
	}

	status := ui.Red("stopped")
	if a.store.GrowthData().Active {
		status = ui.Green("growing")
	}

	ui.PrintInfo("Account", "@"+stats.Username)
	ui.PrintInfo("Status", status)
	ui.PrintInfo("Followers", fmt.Sprintf("%d", stats.CurrentFollowers))
	ui.PrintInfo("Today", fmt.Sprintf("+%d", stats.TodayGrowth))
	ui.PrintInfo("Total growth", fmt.Sprintf("+%d", stats.TotalGrowth))
	ui.PrintInfo("Rate", fmt.Sprintf("%d/day, %s speed, %s mode", stats.FollowersPerDay, stats.Speed, stats.Mode))

	if stats.TargetGoal > 0 {
		goal := fmt.Sprintf("%d (%.1f%%)", stats.TargetGoal, stats.GoalProgress)
		if stats.DaysToGoal > 0 {
			goal += fmt.Sprintf(", ~%d days left", stats.DaysToGoal)
		}
		ui.PrintInfo("Goal", goal)
	}
	if !stats.StartedAt.IsZero() {
		ui.PrintInfo("Tracking since", fmt.Sprintf("%s (%d days, +%.1f%%)",
			stats.StartedAt.Format("2006-01-02"), stats.DaysActive, stats.GrowthPercent))
	}

	if statusReport {
		printReport(analytics.BuildReport(stats.History))
	}
	if statusTips {
		printTips(a)
	}
	if statusHashtags != "" {
		printHashtags(statusHashtags)
	}
}

func printReport(report analytics.Report) {
	fmt.Println()
	ui.PrintHighlight("Growth report")
	if report.Ticks == 0 {
		fmt.Println("  No history yet")
		return
	}
	ui.PrintInfo("  Ticks recorded", fmt.Sprintf("%d", report.Ticks))
	ui.PrintInfo("  Average per tick", fmt.Sprintf("%.1f", report.AvgPerTick))
	ui.PrintInfo("  Average per day", fmt.Sprintf("%.0f", report.AvgPerDay))
	ui.PrintInfo("  Monthly rate", fmt.Sprintf("~%.0f", report.MonthlyRate))
	ui.PrintInfo("  Best hour", fmt.Sprintf("%02d:00", report.BestHour))
	if !report.BestDay.Date.IsZero() {
		ui.PrintInfo("  Best day", fmt.Sprintf("%s (+%d)",
			report.BestDay.Date.Format("2006-01-02"), report.BestDay.Amount))
	}
}

func printTips(a *app) {
	stats := a.engine.Stats()
	snapshot := a.store.Account()
	suggestions := advisor.Suggest(snapshot, analytics.BuildReport(stats.History))

	fmt.Println()
	ui.PrintHighlight("Tip of the day")
	fmt.Println("  " + advisor.DailyTip(time.Now()))

	fmt.Println()
	ui.PrintHighlight("Suggestions")
	for _, s := range suggestions {
		marker := ui.Dim("•")
		switch s.Priority {
		case advisor.PriorityHigh:
			marker = ui.Red("!")
		case advisor.PriorityMedium:
			marker = ui.Yellow("•")
		}
		fmt.Printf("  %s %s\n    %s\n", marker, s.Title, ui.Dim(s.Detail))
	}

	fmt.Println()
	ui.PrintHighlight("Playbook")
	for _, s := range advisor.Strategies() {
		fmt.Println("  " + ui.Dim(s))
	}
}

func printHashtags(niche string) {
	fmt.Println()
	ui.PrintHighlight("Hashtags for " + niche)
	fmt.Println("  " + strings.Join(advisor.Hashtags(niche), " "))
	fmt.Println(ui.Dim("  Known niches: " + strings.Join(advisor.Niches(), ", ")))
}
