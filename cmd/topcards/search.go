package main

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/topcards/internal/corpus"
	"github.com/ramonehamilton/topcards/internal/display"
	"github.com/ramonehamilton/topcards/internal/search"
)

var (
	searchCorpus     corpusFlags
	searchExact      bool
	searchSideboard  bool
	searchMaxResults int
	searchOutput     string
)

var searchCmd = &cobra.Command{
	Use:   "search <card>...",
	Short: "Find decks that play the given cards",
	Long: `Find decks containing every given card. A card may be prefixed with a copy
count: "4 Lightning Bolt" requires at least four copies (exactly four with
--exact). Names are matched case-insensitively. Decks are listed newest first.

Examples:
  topcards search "Lightning Bolt"
  topcards search "4 Ragavan, Nimble Pilferer" "2 Blood Moon" --sideboard
  topcards search -f Legacy --exact "4 Brainstorm" "0 Force of Will"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCorpus.register(searchCmd)
	flags := searchCmd.Flags()
	flags.BoolVar(&searchExact, "exact", false, "Require exact copy counts")
	flags.BoolVar(&searchSideboard, "sideboard", false, "Count sideboard copies toward the criteria")
	flags.IntVar(&searchMaxResults, "max-results", 0, "Maximum decks to print (0 = all)")
	flags.StringVarP(&searchOutput, "output", "o", "", "Write matches to a file instead of stdout")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	searchCorpus.apply(cmd)
	flags := cmd.Flags()
	if flags.Changed("exact") {
		cfg.Search.Exact = searchExact
	}
	if flags.Changed("sideboard") {
		cfg.Search.IncludeSideboard = searchSideboard
	}
	if flags.Changed("max-results") {
		cfg.Search.MaxResults = searchMaxResults
	}
	if err := validate(); err != nil {
		return err
	}

	criteria := search.ParseCriteria(args)
	if len(criteria) == 0 {
		return fmt.Errorf("no card names given")
	}
	logger.Debug("Search criteria", "criteria", fmt.Sprint(criteria))

	files, _, err := searchCorpus.files(cmd.Context())
	if err != nil {
		return err
	}

	matches, stats := search.Search(files, criteria, search.Options{
		Formats:          cfg.FormatPatterns(),
		Today:            corpus.TodayDays(time.Now()),
		MaxAge:           cfg.Rank.MaxAge,
		Exact:            cfg.Search.Exact,
		IncludeSideboard: cfg.Search.IncludeSideboard,
		MaxResults:       cfg.Search.MaxResults,
		Workers:          cfg.App.Workers,
		Logger:           logger,
	})
	logStats(stats)

	return writeOutput(searchOutput, func(w io.Writer) error {
		return display.WriteMatches(w, matches)
	})
}
