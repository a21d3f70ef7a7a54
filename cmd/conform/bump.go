package main

import (
	"fmt"
	"os"

	conform "github.com/conformhq/conform"
	"github.com/spf13/cobra"
)

var setupCfg bool

// bumpCmd represents the bump command
var bumpCmd = &cobra.Command{
	Use:   "bump",
	Short: "Gate the project version against the baseline and bump if needed",
	Long: `Bump reads the version from .bumpversion.cfg (or setup.cfg), compares it
with the version at the baseline revision, and accepts it when it is exactly
one major, minor or patch bump ahead. Anything else is rewritten to the
patch-bumped baseline via bump2version.`,
	Run: func(cmd *cobra.Command, args []string) {
		ok, err := conform.Bump(cmd.Context(), setupCfg, commonOptions()...)
		if err != nil {
			fatal("Bump failed", err)
		}
		if !ok {
			fmt.Fprintln(os.Stderr, "Version could not be brought to an accepted state.")
			fmt.Println("Tip: Ensure `bump2version` is installed and the version file is well-formed.")
			os.Exit(1)
		}
		fmt.Println("Version is in an accepted state.")
	},
}

func init() {
	bumpCmd.Flags().BoolVar(&setupCfg, "setup-cfg", false, "Read setup.cfg instead of .bumpversion.cfg")
	rootCmd.AddCommand(bumpCmd)
}
