// Package charts renders a card ranking as an interactive HTML bar chart.
package charts

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ramonehamilton/topcards/internal/rank"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string   // Chart title
	Subtitle   string   // Chart subtitle
	SeriesName string   // Legend label of the weight series
	Width      string   // Chart width (e.g., "900px")
	Height     string   // Chart height (e.g., "500px")
	Theme      string   // Chart theme
	ShowLegend bool     // Show legend
	MaxBars    int      // Bars drawn; 0 draws every card
	Colors     []string // Custom colors
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Title:      "Most played cards",
		SeriesName: "Weight",
		Width:      "1200px",
		Height:     "600px",
		Theme:      "light",
		ShowLegend: false,
		MaxBars:    50,
		Colors:     []string{"#5470C6"},
	}
}

// DataPoint represents a single bar.
type DataPoint struct {
	Label string
	Value float64
}

// RankingPoints converts a ranking into bars, keeping at most limit when positive.
// Weights are rounded to two decimals, as in the text output.
func RankingPoints(ranked []rank.CardWeight, limit int) []DataPoint {
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	points := make([]DataPoint, len(ranked))
	for i, c := range ranked {
		points[i] = DataPoint{Label: c.Name, Value: math.Round(c.Weight*100) / 100}
	}
	return points
}

// RenderBarChart writes an HTML bar chart of data to w.
func RenderBarChart(w io.Writer, data []DataPoint, config ChartConfig) error {
	bar := charts.NewBar()

	globalOpts := []charts.GlobalOpts{
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
	}
	if len(config.Colors) > 0 {
		globalOpts = append(globalOpts, charts.WithColorsOpts(opts.Colors(config.Colors)))
	}
	bar.SetGlobalOptions(globalOpts...)

	xLabels := make([]string, len(data))
	yData := make([]opts.BarData, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
		yData[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries(config.SeriesName, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	if err := bar.Render(w); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// WriteRankingChart renders ranked into an HTML file at outputPath.
func WriteRankingChart(ranked []rank.CardWeight, config ChartConfig, outputPath string) error {
	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	return RenderBarChart(f, RankingPoints(ranked, config.MaxBars), config)
}
