package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/topcards/internal/config"
	"github.com/ramonehamilton/topcards/internal/version"
)

var (
	configPath string
	verbose    bool

	// Set by the root PersistentPreRunE before any command runs.
	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "topcards",
	Short: "Rank the most played cards in tournament decklists",
	Long: `topcards scans a directory of tournament decklist records and ranks cards
by how often they are played, with recent events weighted more heavily.
It can also search the same corpus for decks containing given cards.

Results are written to stdout (or --output); diagnostics go to stderr.`,
	Version:           version.String(),
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.SetVersionTemplate("topcards version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Config file (default: ~/.topcards/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	if configPath != "" {
		cfg, err = config.LoadFrom(configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if verbose || cfg.App.DebugMode {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)

	return nil
}

// validate checks cfg after command flags have been applied.
func validate() error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
