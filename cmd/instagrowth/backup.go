package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"instagrowth/pkg/ui"
)

var (
	backupFile  string
	restoreFile string
)

// backupCmd represents the backup command
var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Back up simulation state",
	Long: `Back up settings, growth history, and the account snapshot.

With --file the backup is written to a local JSON file. Without it the
backup is uploaded to a private gist, which requires a GitHub token in the
configuration (backup.token or INSTAGROWTH_BACKUP_TOKEN). Sessions are
never included in backups.`,
	Run: runBackup,
}

// restoreCmd represents the restore command
var restoreCmd = &cobra.Command{
	Use:   "restore [gist-id]",
	Short: "Restore simulation state from a backup",
	Long: `Restore state from a backup, replacing current settings and growth
history. Pass a gist ID for remote backups or --file for a local one.`,
	Args: cobra.MaximumNArgs(1),
	Run:  runRestore,
}

func init() {
	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)

	backupCmd.Flags().StringVar(&backupFile, "file", "", "write the backup to a local file instead of uploading")
	restoreCmd.Flags().StringVar(&restoreFile, "file", "", "restore from a local backup file")
}

func runBackup(cmd *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail(err)
	}

	if backupFile != "" {
		if err := a.backup.WriteFile(backupFile); err != nil {
			fail(err)
		}
		ui.PrintSuccess("Backup written to " + backupFile)
		return
	}

	gistID, err := a.backup.Upload(cmd.Context())
	if err != nil {
		fail(err)
	}
	ui.PrintSuccess("Backup uploaded")
	ui.PrintInfo("Gist ID", gistID)
	ui.PrintInfo("Restore with", "instagrowth restore "+gistID)
}

func runRestore(cmd *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail(err)
	}

	switch {
	case restoreFile != "":
		if err := a.backup.ReadFile(restoreFile); err != nil {
			fail(err)
		}
	case len(args) == 1:
		if err := a.backup.Download(cmd.Context(), args[0]); err != nil {
			fail(err)
		}
	default:
		ui.PrintError("Nothing to restore", "pass a gist ID or --file")
		return
	}

	ui.PrintSuccess("Backup restored")
	stats := a.engine.Stats()
	ui.PrintInfo("Account", "@"+stats.Username)
	ui.PrintInfo("Followers", fmt.Sprintf("%d", stats.CurrentFollowers))
}
