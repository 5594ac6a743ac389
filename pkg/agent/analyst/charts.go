package analyst

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// periodMarkers matches year and quarter tokens in a period string, English
// and Korean alike.
var periodMarkers = regexp.MustCompile(`(?i)(19|20)\d{2}|q[1-4]|quarter|year|yoy|분기|연도|년`)

// classifyChart maps a data point onto its chart type.
//
// Growth data reads as a comparison (bar); a dated period reads as a trend
// (line); a bounded percentage reads as a composition (pie); everything
// else falls back to bar.
func classifyChart(dp models.DataPoint) models.ChartType {
	if _, ok := growthRate(dp); ok {
		return models.ChartBar
	}
	if periodMarkers.MatchString(dp.Period) {
		return models.ChartLine
	}
	if dp.Unit == "%" && dp.Value <= 100 {
		return models.ChartPie
	}
	return models.ChartBar
}

// syntheticSeries is the bounded fallback emitted when a data point carries
// no comparison fields. Four steps converging on the observed value keep
// the chart renderable without inventing a specific history.
func syntheticSeries(value float64) ([]string, []float64) {
	labels := []string{"T-3", "T-2", "T-1", "Current"}
	values := []float64{value * 0.70, value * 0.82, value * 0.93, value}
	return labels, values
}

// buildChart produces the chart spec for one data point. The Synthetic flag
// is set when the series had to be invented.
func buildChart(dp models.DataPoint) models.ChartSpec {
	spec := models.ChartSpec{
		Type:        classifyChart(dp),
		Title:       chartTitle(dp),
		DataPointID: dp.ID,
	}

	switch {
	case dp.Comparison != nil && dp.Comparison.Previous != 0:
		spec.Labels = []string{"Previous", "Current"}
		spec.Values = []float64{dp.Comparison.Previous, dp.Value}
	case dp.Comparison != nil && dp.Comparison.Benchmark != 0:
		spec.Labels = []string{dp.Metric, "Benchmark"}
		spec.Values = []float64{dp.Value, dp.Comparison.Benchmark}
	case dp.Unit == "%" && dp.Value <= 100 && spec.Type == models.ChartPie:
		spec.Labels = []string{dp.Metric, "Other"}
		spec.Values = []float64{dp.Value, 100 - dp.Value}
	default:
		spec.Labels, spec.Values = syntheticSeries(dp.Value)
		spec.Synthetic = true
	}

	if len(spec.Labels) > models.MaxChartLabels {
		spec.Labels = spec.Labels[:models.MaxChartLabels]
		spec.Values = spec.Values[:models.MaxChartLabels]
	}
	return spec
}

func chartTitle(dp models.DataPoint) string {
	if dp.Period != "" {
		return fmt.Sprintf("%s (%s)", titleCase(dp.Metric), dp.Period)
	}
	return titleCase(dp.Metric)
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		words[i] = strings.ToUpper(string(r[0])) + string(r[1:])
	}
	return strings.Join(words, " ")
}
