package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"instagrowth/pkg/ui"
)

var (
	resetAll bool
	resetYes bool
)

// resetCmd represents the reset command
var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard growth history and start over",
	Long: `Discard the growth record. The next start captures a fresh baseline
from the target account.

With --all the session, settings, and account snapshot are wiped too,
returning the installation to a clean slate.`,
	Run: runReset,
}

func init() {
	rootCmd.AddCommand(resetCmd)

	resetCmd.Flags().BoolVar(&resetAll, "all", false, "also wipe session, settings, and account data")
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "skip the confirmation prompt")
}

func runReset(cmd *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail(err)
	}

	what := "growth history"
	if resetAll {
		what = "all local data"
	}
	if !resetYes && !confirm(fmt.Sprintf("This will delete %s. Continue?", what)) {
		ui.PrintWarning("Aborted")
		return
	}

	if resetAll {
		if err := a.store.ClearAll(); err != nil {
			fail(err)
		}
	} else {
		if err := a.engine.Reset(); err != nil {
			fail(err)
		}
	}
	ui.PrintSuccess("Reset complete")
}

func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
