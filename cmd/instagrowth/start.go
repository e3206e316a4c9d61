package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"instagrowth/pkg/engine"
	"instagrowth/pkg/models"
	"instagrowth/pkg/ui"
	"instagrowth/pkg/ui/tui"
)

var (
	startPerDay int
	startSpeed  string
	startMode   string
	startGoal   int
	startNoTUI  bool
)

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the growth simulation",
	Long: `Start the growth simulation and open the live dashboard.

On first start the target account's follower count is captured as the
baseline. After that the simulation grows its own counter; real numbers are
never consulted again until a reset.

Settings flags override the stored configuration for this and future runs.
Quitting the dashboard leaves the simulation marked active, so the next
start resumes it; use 'instagrowth stop' to stop it for good.`,
	Run: runStart,
}

// stopCmd represents the stop command
var stopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the growth simulation",
	Run:   runStop,
}

func init() {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)

	startCmd.Flags().IntVar(&startPerDay, "per-day", 0, "target followers per day (1-10000)")
	startCmd.Flags().StringVar(&startSpeed, "speed", "", "tick cadence: slow, medium, fast, turbo")
	startCmd.Flags().StringVar(&startMode, "mode", "", "growth mode: conservative, normal, aggressive, turbo")
	startCmd.Flags().IntVar(&startGoal, "goal", -1, "follower goal that auto-stops the simulation (0 disables)")
	startCmd.Flags().BoolVar(&startNoTUI, "no-tui", false, "run headless and log events instead of opening the dashboard")
}

func runStart(cmd *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail(err)
	}

	if err := applySettingsFlags(a); err != nil {
		fail(err)
	}

	if err := a.engine.Start(cmd.Context()); err != nil {
		fail(err)
	}

	if startNoTUI {
		runHeadless(a)
		return
	}

	if err := tui.Run(a.engine); err != nil {
		fail(err)
	}
}

func runStop(cmd *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail(err)
	}

	record := a.store.GrowthData()
	if !record.Active {
		ui.PrintWarning("Simulation is not running")
		return
	}

	// The ticking process is elsewhere (or already gone); flip the
	// persisted flag so it will not resume.
	record.Active = false
	if err := a.store.SaveGrowthData(record); err != nil {
		fail(err)
	}
	ui.PrintSuccess("Simulation stopped")
}

// runHeadless blocks until interrupted, announcing milestones through the
// desktop notifier.
func runHeadless(a *app) {
	notifier := ui.NewNotifier()
	sub := a.engine.Events().Subscribe(func(e engine.Event) {
		switch e.Type {
		case engine.EventTargetReached:
			notifier.NotifySuccess("Goal reached", formatReached(e))
		case engine.EventGrowthStopped:
			notifier.Notify("Instagrowth", "Simulation stopped")
		}
	})
	defer a.engine.Events().Unsubscribe(sub)

	ui.PrintInfo("Simulation", "running, press Ctrl+C to exit")

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig
}

func formatReached(e engine.Event) string {
	return fmt.Sprintf("%d followers (target was %d)", e.Current, e.Target)
}

func applySettingsFlags(a *app) error {
	settings := a.store.Settings()
	changed := false

	if startPerDay > 0 {
		settings.FollowersPerDay = startPerDay
		changed = true
	}
	if startSpeed != "" {
		settings.Speed = models.Speed(startSpeed)
		changed = true
	}
	if startMode != "" {
		settings.GrowthMode = models.Mode(startMode)
		changed = true
	}
	if startGoal >= 0 {
		settings.TargetGoal = startGoal
		changed = true
	}

	if !changed {
		return nil
	}
	return a.engine.UpdateSettings(settings)
}
