package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/topcards/internal/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "topcards %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
