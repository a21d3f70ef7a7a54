package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	conform "github.com/conformhq/conform"
	"github.com/spf13/cobra"
)

var watchMode bool

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check [files...]",
	Short: "Check configuration files against their baselines",
	Long: `Check each named file with its registered check. Files without a
registered check are skipped. Extra keys and values are reported as warnings;
missing or mismatched ones fail the check for that file.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		opts := commonOptions()
		ctx := cmd.Context()

		if watchMode {
			ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
			defer stop()

			err := conform.Watch(ctx, args, printFailures, opts...)
			if err != nil && !errors.Is(err, context.Canceled) {
				fatal("Watch failed", err)
			}
			return
		}

		failures, err := conform.Check(ctx, args, opts...)
		if err != nil {
			fatal("Check could not run", err)
		}
		printFailures(failures)
		if len(failures) > 0 {
			os.Exit(1)
		}
	},
}

func printFailures(failures []conform.Failure) {
	for _, f := range failures {
		fmt.Fprintf(os.Stderr, "FAIL %s: %v\n", f.File, f.Err)
	}
	if len(failures) == 0 {
		fmt.Println("All checks passed.")
	}
}

func commonOptions() []conform.Option {
	opts := []conform.Option{conform.WithLogger(slog.Default())}
	if repoRoot != "" {
		opts = append(opts, conform.WithRoot(repoRoot))
	}
	if remoteURL != "" {
		opts = append(opts, conform.WithRemoteBaseURL(remoteURL))
	}
	return opts
}

func init() {
	checkCmd.Flags().BoolVarP(&watchMode, "watch", "w", false, "Re-run checks when the files change")
	rootCmd.AddCommand(checkCmd)
}
