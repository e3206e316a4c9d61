package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"instagrowth/pkg/config"
	"instagrowth/pkg/ui"
)

// configCmd represents the config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration files",
	Long: `Manage Instagrowth configuration files.

Configuration is loaded from, in priority order:
  - Command line flags
  - Environment variables (INSTAGROWTH_*)
  - Configuration file
  - Default values`,
}

// configInitCmd represents the config init command
var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a configuration file with the current defaults",
	Run:   runConfigInit,
}

// configShowCmd represents the config show command
var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after merging all sources. Secrets (API keys,
backup token, passphrase) are masked.`,
	Run: runConfigShow,
}

// configValidateCmd represents the config validate command
var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration",
	Run:   runConfigValidate,
}

func init() {
	rootCmd.AddCommand(configCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configValidateCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) {
	path := configFile
	if path == "" {
		path = ".instagrowth.yaml"
	}

	if _, err := os.Stat(path); err == nil {
		ui.PrintError("Configuration file already exists", path)
		os.Exit(1)
	}

	if err := config.DefaultConfig().Save(path); err != nil {
		fail(err)
	}
	ui.PrintSuccess("Created " + path)
	fmt.Println("\nEdit it, then verify with:")
	fmt.Println("  instagrowth config validate")
}

func runConfigShow(cmd *cobra.Command, args []string) {
	a, err := newApp()
	if err != nil {
		fail(err)
	}

	masked := *a.cfg
	masked.Instagram.ProfileHosts = append([]config.ProfileHost(nil), a.cfg.Instagram.ProfileHosts...)
	if masked.Backup.Token != "" {
		masked.Backup.Token = "********"
	}
	for i := range masked.Instagram.ProfileHosts {
		if masked.Instagram.ProfileHosts[i].Key != "" {
			masked.Instagram.ProfileHosts[i].Key = "********"
		}
	}

	data, err := yaml.Marshal(&masked)
	if err != nil {
		fail(err)
	}
	fmt.Print(string(data))
}

func runConfigValidate(cmd *cobra.Command, args []string) {
	if _, err := newApp(); err != nil {
		ui.PrintError("Configuration is invalid", err.Error())
		os.Exit(1)
	}
	ui.PrintSuccess("Configuration is valid")
}
