package main

import (
	"github.com/spf13/cobra"
)

var (
	fetchDataDir  string
	fetchDataRepo string
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Clone or update the decklist data repository",
	Long: `Make a shallow clone of the data repository into the data directory, or
fast-forward it when it is already a checkout. Requires git on PATH.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if cmd.Flags().Changed("data-dir") {
			cfg.Data.DataDir = fetchDataDir
		}
		if cmd.Flags().Changed("data-repo") {
			cfg.Data.DataRepo = fetchDataRepo
		}
		return fetchCorpus(cmd.Context())
	},
}

func init() {
	fetchCmd.Flags().StringVar(&fetchDataDir, "data-dir", "", "Checkout directory of the data repository")
	fetchCmd.Flags().StringVar(&fetchDataRepo, "data-repo", "", "Git URL of the data repository")
	rootCmd.AddCommand(fetchCmd)
}
