package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	verbose   bool
	repoRoot  string
	remoteURL string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "conform",
	Short: "Keep a project's tooling configuration in line with its canonical baseline",
	Long: `Conform validates local configuration files (formatter and linter tables,
pre-commit hooks, CI workflows, .gitignore ordering, version strings) against
expected baselines, fetching reference copies from a remote tree where one
exists. Stale synchronized files are rewritten; structural mismatches are
reported, never silently fixed.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&repoRoot, "root", "", "Repository root (default: discovered via git)")
	rootCmd.PersistentFlags().StringVar(&remoteURL, "remote", "", "Base URL of the canonical reference tree")
}
