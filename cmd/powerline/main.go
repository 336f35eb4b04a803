package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	paths "github.com/young1lin/powerline-footer/internal/config"
	"github.com/young1lin/powerline-footer/internal/logging"
	"github.com/young1lin/powerline-footer/internal/statusline/config"
	"github.com/young1lin/powerline-footer/internal/update"
)

var (
	// Global flags.
	flagDir      string
	flagLogDir   string
	flagLogLevel string
)

func main() {
	initConsole()
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "powerline: %v\n", err)
		logging.Close()
		os.Exit(1)
	}
	logging.Close()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "powerline",
		Short: "Powerline status line for terminal coding agents",
		Long: `powerline renders a width-aware status line from session usage, git
state and account quota. Use "render" as a status line command, or
"preview" to try presets interactively.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&flagDir, "dir", "C", "", "Working directory (default: current directory)")
	rootCmd.PersistentFlags().StringVar(&flagLogDir, "log-dir", "", "Write debug logs to this directory")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	rootCmd.Version = update.Version
	rootCmd.SetVersionTemplate("powerline {{.Version}} (" + update.Commit + ", " + update.BuildDate + ")\n")

	rootCmd.AddCommand(renderCmd())
	rootCmd.AddCommand(previewCmd())
	rootCmd.AddCommand(presetsCmd())
	rootCmd.AddCommand(searchCmd())
	rootCmd.AddCommand(stashCmd())
	rootCmd.AddCommand(updateCmd())
	return rootCmd
}

// workDir resolves --dir.
func workDir() string {
	if flagDir != "" {
		return flagDir
	}
	wd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return wd
}

// initLogging applies config then flags. Nothing is logged without a
// directory, except at debug level which falls back to the cache dir.
func initLogging(cfg *config.Config) {
	lc := logging.Config{Format: "text"}
	if cfg != nil {
		lc.LogDir = cfg.Log.Dir
		lc.Level = cfg.Log.Level
		if cfg.Log.JSON {
			lc.Format = "json"
		}
	}
	if flagLogDir != "" {
		lc.LogDir = flagLogDir
	}
	if flagLogLevel != "" {
		lc.Level = flagLogLevel
	}
	if lc.LogDir == "" && lc.Level == "debug" {
		lc.LogDir = paths.LogDir()
	}
	logging.Init(lc)
}
