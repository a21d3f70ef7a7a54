package main

import (
	"fmt"
	"strings"

	conform "github.com/conformhq/conform"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of conform",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("conform version %s\n", strings.TrimSpace(conform.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
