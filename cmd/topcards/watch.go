package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/topcards/internal/corpus"
)

var (
	watchOpts     rankFlags
	watchDebounce time.Duration
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-rank whenever records in the corpus change",
	Long: `Rank the corpus once, then watch it and print a fresh ranking every time
record files are added or modified. Takes the same flags as rank.`,
	Args: cobra.NoArgs,
	RunE: runWatch,
}

func init() {
	watchOpts.register(watchCmd)
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", corpus.DefaultDebounce,
		"Quiet period before re-ranking after a change")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	watchOpts.apply(cmd)
	if err := validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	files, dir, err := watchOpts.files(ctx)
	if err != nil {
		return err
	}
	index := faceIndex(ctx, cfg.Faces.Enabled)
	if err := rankOnce(files, index, watchOpts.output, watchOpts.chartPath); err != nil {
		return err
	}

	watcher, err := corpus.NewWatcher(dir, watchDebounce, logger)
	if err != nil {
		return err
	}
	defer watcher.Close()

	logger.Info("Watching corpus for changes", "dir", dir)
	return watcher.Run(ctx, func() {
		files, err := corpus.FindRecordFiles(dir)
		if err != nil {
			logger.Warn("Cannot list corpus", "error", err)
			return
		}
		fmt.Fprintf(os.Stderr, "Processing %d files...\n", len(files))
		if err := rankOnce(files, index, watchOpts.output, watchOpts.chartPath); err != nil {
			logger.Warn("Ranking failed", "error", err)
		}
	})
}
