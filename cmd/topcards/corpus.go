package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/topcards/internal/corpus"
)

// corpusFlags are the corpus selection flags shared by rank, search and watch.
type corpusFlags struct {
	dir      string
	dataDir  string
	dataRepo string
	formats  string
	fetch    bool
	maxAge   int
	workers  int
}

func (f *corpusFlags) register(cmd *cobra.Command) {
	flags := cmd.Flags()
	flags.StringVarP(&f.dir, "dir", "d", "", "Directory to scan (default: data dir when fetching, else .)")
	flags.StringVar(&f.dataDir, "data-dir", "", "Checkout directory of the data repository")
	flags.StringVar(&f.dataRepo, "data-repo", "", "Git URL of the data repository")
	flags.StringVarP(&f.formats, "formats", "f", "", "Comma-separated formats to include (substring, case-insensitive)")
	flags.BoolVarP(&f.fetch, "fetch", "F", false, "Clone or update the data repository before scanning")
	flags.IntVarP(&f.maxAge, "max-age", "m", 0, "Maximum age in days to include")
	flags.IntVar(&f.workers, "workers", 0, "Parallel file workers (default: CPU count)")
}

// apply overrides cfg with the flags set on the command line.
func (f *corpusFlags) apply(cmd *cobra.Command) {
	flags := cmd.Flags()
	if flags.Changed("dir") {
		cfg.Data.Dir = f.dir
	}
	if flags.Changed("data-dir") {
		cfg.Data.DataDir = f.dataDir
	}
	if flags.Changed("data-repo") {
		cfg.Data.DataRepo = f.dataRepo
	}
	if flags.Changed("formats") {
		cfg.Rank.Formats = f.formats
	}
	if flags.Changed("max-age") {
		cfg.Rank.MaxAge = f.maxAge
	}
	if flags.Changed("workers") {
		cfg.App.Workers = f.workers
	}
}

// files fetches the corpus when requested and lists its record files.
// It returns the scanned directory alongside.
func (f *corpusFlags) files(ctx context.Context) ([]string, string, error) {
	if f.fetch {
		if err := fetchCorpus(ctx); err != nil {
			return nil, "", err
		}
	}

	dir := cfg.SearchDir(f.fetch)
	files, err := corpus.FindRecordFiles(dir)
	if err != nil {
		return nil, "", err
	}

	fmt.Fprintf(os.Stderr, "Processing %d files...\n", len(files))
	return files, dir, nil
}

func fetchCorpus(ctx context.Context) error {
	fetcher := &corpus.Fetcher{
		DataDir: cfg.Data.DataDir,
		RepoURL: cfg.Data.DataRepo,
		Logger:  logger,
	}
	if err := fetcher.Fetch(ctx); err != nil {
		return fmt.Errorf("fetch corpus: %w", err)
	}
	return nil
}

func logStats(stats corpus.ScanStats) {
	logger.Info("Scan complete",
		"files", stats.Files,
		"used", stats.Used,
		"skipped", stats.Skipped(),
	)
	logger.Debug("Skip reasons", "stats", stats.String())
}

// openOutput returns stdout, or the created file at path.
func openOutput(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopCloser{os.Stdout}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	return f, nil
}

// writeOutput runs write against the output destination and reports where a
// file was written.
func writeOutput(path string, write func(io.Writer) error) error {
	out, err := openOutput(path)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		_ = out.Close()
		return fmt.Errorf("write output: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("close output: %w", err)
	}
	if path != "" {
		fmt.Fprintf(os.Stderr, "Output written to %s\n", path)
	}
	return nil
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }
