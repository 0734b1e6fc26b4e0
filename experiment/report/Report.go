// Package report renders the results of experiments: learning curves
// as HTML charts, run summaries for the terminal, and heatmaps of value
// functions over 2-dimensional state spaces.
package report

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"gonum.org/v1/gonum/stat"
)

// Series is a named sequence of per-episode values, such as returns
type Series struct {
	Name string
	Data []float64
}

// LearningCurve renders an HTML page with one line per series, plotted
// against the episode number. If window is larger than 1, each series
// is replaced by its moving average over the previous window episodes.
func LearningCurve(w io.Writer, title string, window int,
	series ...Series) error {
	if len(series) == 0 {
		return fmt.Errorf("learningCurve: no series to plot")
	}

	episodes := 0
	for _, s := range series {
		if len(s.Data) > episodes {
			episodes = len(s.Data)
		}
	}
	xAxis := make([]string, episodes)
	for i := range xAxis {
		xAxis[i] = fmt.Sprintf("%d", i+1)
	}

	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title: title,
		}),
		charts.WithInitializationOpts(opts.Initialization{
			Theme: "shine",
		}),
	)

	line = line.SetXAxis(xAxis)
	for _, s := range series {
		data := Smooth(s.Data, window)
		items := make([]opts.LineData, 0, len(data))
		for _, v := range data {
			items = append(items, opts.LineData{Value: v})
		}
		line.AddSeries(s.Name, items)
	}

	page := components.NewPage()
	page.AddCharts(line)
	if err := page.Render(w); err != nil {
		return fmt.Errorf("learningCurve: %v", err)
	}
	return nil
}

// Smooth returns the moving average of data over windows of the given
// size. Early entries average over the values seen so far.
func Smooth(data []float64, window int) []float64 {
	if window <= 1 {
		return append([]float64(nil), data...)
	}

	smoothed := make([]float64, len(data))
	for i := range data {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		smoothed[i] = stat.Mean(data[start:i+1], nil)
	}
	return smoothed
}
