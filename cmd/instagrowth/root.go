package main

import (
	"fmt"
	"os"
	"runtime"

	"github.com/benbjohnson/clock"
	"github.com/spf13/cobra"

	"instagrowth/pkg/auth"
	"instagrowth/pkg/backup"
	"instagrowth/pkg/config"
	"instagrowth/pkg/engine"
	"instagrowth/pkg/logger"
	"instagrowth/pkg/profile"
	"instagrowth/pkg/store"
)

var (
	// Version information
	version   = "1.0.0"
	gitCommit = "unknown"
	buildDate = "unknown"

	// Global flags
	configFile string
	logLevel   string
	dataDir    string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "instagrowth",
	Short: "Simulate organic Instagram follower growth",
	Long: `Instagrowth simulates follower growth for an Instagram account.

It seeds a baseline from the account's real follower count (or generated
numbers when offline), then grows a local counter on a realistic schedule:
bursts, peak hours, quiet nights, weekend boosts. Nothing is ever written
to Instagram; all state lives on your machine.

Common workflow:
  instagrowth login yourhandle
  instagrowth start
  instagrowth status
  instagrowth export -o growth.csv`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, gitCommit, buildDate),
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "config file (default is $HOME/.instagrowth.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for persisted state")

	rootCmd.SetVersionTemplate(`Instagrowth {{.Version}}
Go Version: ` + runtime.Version() + `
OS/Arch: ` + runtime.GOOS + `/` + runtime.GOARCH + `
`)

	rootCmd.CompletionOptions.DisableDefaultCmd = true
}

// app wires the full dependency graph for one command invocation.
type app struct {
	cfg    *config.Config
	store  *store.Store
	source *profile.Source
	engine *engine.Engine
	auth   *auth.Manager
	backup *backup.Manager
	log    logger.Logger
}

// newApp loads configuration and builds the component graph. Every command
// goes through here so flag and env precedence behave identically
// everywhere.
func newApp() (*app, error) {
	flags := make(map[string]interface{})
	if logLevel != "" {
		flags["log-level"] = logLevel
	}
	if dataDir != "" {
		flags["data-dir"] = dataDir
	}

	cfg, err := config.Load(configFile, flags)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := logger.Initialize(logger.Options{Level: cfg.Logging.Level, File: cfg.Logging.File}); err != nil {
		return nil, err
	}
	log := logger.GetLogger()

	dir, err := cfg.DataDir()
	if err != nil {
		return nil, err
	}

	var storeOpts []store.Option
	if !cfg.Storage.Obfuscate {
		storeOpts = append(storeOpts, store.WithoutObfuscation())
	}
	st, err := store.New(dir, log, storeOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to open data store: %w", err)
	}

	source := profile.NewSource(cfg, log)
	eng := engine.New(st, source, clock.New(), log)

	return &app{
		cfg:    cfg,
		store:  st,
		source: source,
		engine: eng,
		auth:   auth.NewManager(st, source, log),
		backup: backup.NewManager(st, cfg.Backup, log),
		log:    log,
	}, nil
}

// fail prints the error and exits. Used by command Run funcs.
func fail(err error) {
	fmt.Fprintln(os.Stderr, "Error:", err)
	os.Exit(1)
}
