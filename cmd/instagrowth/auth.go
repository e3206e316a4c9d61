package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"instagrowth/pkg/models"
	"instagrowth/pkg/ui"
)

var loginDemo bool

// loginCmd represents the login command
var loginCmd = &cobra.Command{
	Use:   "login <username>",
	Short: "Bind the simulation to an Instagram account",
	Long: `Bind the simulation to an Instagram account and start a session.

No password is involved: the username is validated (and checked against
public profile endpoints when reachable) and a local 24-hour session is
created. With --demo the existence check is skipped and the profile is
generated entirely offline.`,
	Args: cobra.ExactArgs(1),
	Run:  runLogin,
}

// logoutCmd represents the logout command
var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "End the current session",
	Long: `End the current session.

Growth data and settings are kept; logging back in with the same username
resumes the simulation where it left off.`,
	Run: runLogout,
}

// whoamiCmd represents the whoami command
var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session",
	Run:   runWhoami,
}

func init() {
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)

	loginCmd.Flags().BoolVar(&loginDemo, "demo", false, "skip the account existence check and use generated data")
}

func runLogin(cmd *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail(err)
	}

	provider := models.ProviderManual
	if loginDemo {
		provider = models.ProviderDemo
	}

	session, err := a.auth.Login(cmd.Context(), args[0], provider)
	if err != nil {
		fail(err)
	}

	ui.PrintSuccess("Logged in as @" + session.Username)
	ui.PrintInfo("Session expires", session.LoginTime.Add(models.SessionMaxAge).Format(time.RFC1123))
}

func runLogout(cmd *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail(err)
	}

	if a.auth.Current() == nil {
		ui.PrintWarning("No active session")
		return
	}
	if err := a.auth.Logout(); err != nil {
		fail(err)
	}
	ui.PrintSuccess("Logged out")
}

func runWhoami(cmd *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail(err)
	}

	session := a.auth.Current()
	if session == nil {
		ui.PrintWarning("Not logged in")
		return
	}

	ui.PrintInfo("Username", "@"+session.Username)
	ui.PrintInfo("Provider", string(session.Provider))
	ui.PrintInfo("Logged in", session.LoginTime.Format(time.RFC1123))
	fmt.Println()
}
