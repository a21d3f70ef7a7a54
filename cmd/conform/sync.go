package main

import (
	"fmt"
	"os"

	conform "github.com/conformhq/conform"
	"github.com/spf13/cobra"
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync [files...]",
	Short: "Overwrite local files with their remote reference copies",
	Long: `Sync replaces each named local file with the canonical remote copy when
the local one is missing or byte-for-byte stale. This is a full-file
overwrite, not a structural merge.`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		if err := conform.Sync(cmd.Context(), args, commonOptions()...); err != nil {
			// User friendly error handling
			fmt.Fprintf(os.Stderr, "Error: Sync failed: %v\n", err)
			fmt.Println("Tip: Check that the reference tree is reachable and the file names are correct.")
			os.Exit(1)
		}

		fmt.Println("Sync completed successfully.")
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
