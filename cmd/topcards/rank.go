package main

import (
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ramonehamilton/topcards/internal/charts"
	"github.com/ramonehamilton/topcards/internal/corpus"
	"github.com/ramonehamilton/topcards/internal/display"
	"github.com/ramonehamilton/topcards/internal/faces"
	"github.com/ramonehamilton/topcards/internal/rank"
)

// rankFlags are the ranking flags shared by rank and watch.
type rankFlags struct {
	corpusFlags
	num       int
	halfLife  float64
	noWeight  bool
	noFaces   bool
	output    string
	chartPath string
}

func (f *rankFlags) register(cmd *cobra.Command) {
	f.corpusFlags.register(cmd)
	flags := cmd.Flags()
	flags.IntVarP(&f.num, "num", "n", 0, "Number of top cards to output (0 = all)")
	flags.Float64VarP(&f.halfLife, "half-life", "l", 0, "Half-life in days for time decay")
	flags.BoolVarP(&f.noWeight, "no-weight", "w", false, "Disable time-based weighting")
	flags.BoolVar(&f.noFaces, "no-faces", false, "Do not list back faces of multi-faced cards")
	flags.StringVarP(&f.output, "output", "o", "", "Write the ranking to a file instead of stdout")
	flags.StringVar(&f.chartPath, "chart", "", "Also write an HTML bar chart of the ranking")
}

func (f *rankFlags) apply(cmd *cobra.Command) {
	f.corpusFlags.apply(cmd)
	flags := cmd.Flags()
	if flags.Changed("num") {
		cfg.Rank.Num = f.num
	}
	if flags.Changed("half-life") {
		cfg.Rank.HalfLife = f.halfLife
	}
	if flags.Changed("no-weight") {
		cfg.Rank.NoWeight = f.noWeight
	}
	if f.noFaces {
		cfg.Faces.Enabled = false
	}
}

var rankOpts rankFlags

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank cards by recency-weighted play count",
	Long: `Rank cards across every decklist of the selected formats. Each copy of a
card counts 2^(-age/half-life), where age is the number of days since the
event date found in the record's path. Records older than --max-age are ignored.

Examples:
  topcards rank -f Modern -n 100
  topcards rank -f modern,pioneer --half-life 30 -o top.txt
  topcards rank -F --chart top.html`,
	Args: cobra.NoArgs,
	RunE: runRank,
}

func init() {
	rankOpts.register(rankCmd)
	rootCmd.AddCommand(rankCmd)
}

func runRank(cmd *cobra.Command, args []string) error {
	rankOpts.apply(cmd)
	if err := validate(); err != nil {
		return err
	}

	ctx := cmd.Context()
	files, _, err := rankOpts.files(ctx)
	if err != nil {
		return err
	}

	index := faceIndex(ctx, cfg.Faces.Enabled)
	return rankOnce(files, index, rankOpts.output, rankOpts.chartPath)
}

// rankOnce ranks files and writes the result, and the chart when chartPath is
// set.
func rankOnce(files []string, index *faces.Index, output, chartPath string) error {
	var expander rank.Expander
	if index != nil {
		expander = index
	}

	ranked, stats := rank.Rank(files, rankOptions(), expander)
	logStats(stats)

	if err := writeOutput(output, func(w io.Writer) error {
		return display.WriteRanking(w, ranked)
	}); err != nil {
		return err
	}

	if chartPath != "" {
		chartConfig := charts.DefaultChartConfig()
		chartConfig.Subtitle = strings.Join(cfg.FormatPatterns(), ", ")
		if err := charts.WriteRankingChart(ranked, chartConfig, chartPath); err != nil {
			return err
		}
		logger.Info("Chart written", "path", chartPath)
	}
	return nil
}

func rankOptions() rank.Options {
	return rank.Options{
		Formats:  cfg.FormatPatterns(),
		Today:    corpus.TodayDays(time.Now()),
		HalfLife: cfg.Rank.HalfLife,
		MaxAge:   cfg.Rank.MaxAge,
		Weighted: !cfg.Rank.NoWeight,
		TopN:     cfg.Rank.Num,
		Workers:  cfg.App.Workers,
		Logger:   logger,
	}
}
