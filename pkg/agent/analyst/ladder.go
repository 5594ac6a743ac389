package analyst

import (
	"fmt"
	"math"
	"strings"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// Ladder derives the four-level Insight from a DataPoint. It is a pure
// function of the data point and the configured language: no LLM calls,
// no clock, no randomness.
type Ladder struct {
	language string
}

// NewLadder creates a ladder for the given content language.
func NewLadder(language string) *Ladder {
	return &Ladder{language: language}
}

// Confidence levels assigned by the ladder. A data point with usable
// comparison data gets the full confidence; one that only supports a
// qualitative statement is marked lower.
const (
	confidenceFull       = 0.9
	confidenceNoContrast = 0.6
)

// benchmarkSalienceGap is the minimum deviation of value/benchmark from 1
// before the ratio is considered worth stating.
const benchmarkSalienceGap = 0.2

// Build computes the Insight for one DataPoint. All four levels are always
// non-empty.
func (l *Ladder) Build(dp models.DataPoint) models.Insight {
	ins := models.Insight{
		DataPointID: dp.ID,
		Observation: l.observation(dp),
		Confidence:  confidenceFull,
	}

	comparison, polarity, contrasted := l.comparison(dp)
	ins.Comparison = comparison
	if !contrasted {
		ins.Confidence = confidenceNoContrast
	}

	ins.Implication = l.implication(dp, polarity)
	ins.Action = l.action(dp, ins.Implication)
	return ins
}

func (l *Ladder) observation(dp models.DataPoint) string {
	period := dp.Period
	if period == "" {
		period = "Current"
	}
	return fmt.Sprintf("%s %s is %s%s", period, dp.Metric, FormatValue(dp.Value, l.language), dp.Unit)
}

// polarity classifies the movement behind a data point.
type polarity int

const (
	polarityFlat polarity = iota
	polarityUp
	polarityDown
)

// comparison picks the most salient contrast available: growth first, then
// benchmark ratio. The bool reports whether any real contrast was found.
func (l *Ladder) comparison(dp models.DataPoint) (string, polarity, bool) {
	if growth, ok := growthRate(dp); ok {
		if growth >= 0 {
			return fmt.Sprintf("Up %s%% YoY", formatPercent(growth)), polarityUp, true
		}
		return fmt.Sprintf("Down %s%% YoY", formatPercent(math.Abs(growth))), polarityDown, true
	}

	if dp.Comparison != nil && dp.Comparison.Benchmark != 0 {
		ratio := dp.Value / dp.Comparison.Benchmark
		if math.Abs(ratio-1) >= benchmarkSalienceGap {
			pol := polarityUp
			if ratio < 1 {
				pol = polarityDown
			}
			return fmt.Sprintf("%s industry average", formatRatio(ratio)), pol, true
		}
	}

	return fmt.Sprintf("%s at elevated level", dp.Metric), polarityFlat, false
}

// growthRate returns the growth percentage, preferring an explicit rate over
// one derived from the previous value.
func growthRate(dp models.DataPoint) (float64, bool) {
	if dp.Comparison == nil {
		return 0, false
	}
	if dp.Comparison.GrowthRate != nil {
		return *dp.Comparison.GrowthRate, true
	}
	if dp.Comparison.Previous != 0 {
		return (dp.Value - dp.Comparison.Previous) / dp.Comparison.Previous * 100, true
	}
	return 0, false
}

func (l *Ladder) implication(dp models.DataPoint, pol polarity) string {
	if driver, pct, ok := maxDriver(dp); ok {
		return fmt.Sprintf("%s contributes %s%% of change", driver, formatPercent(pct))
	}
	switch pol {
	case polarityUp:
		return "Growth reflects market expansion and product strength"
	case polarityDown:
		return "Decline signals market deterioration or competitive pressure"
	default:
		return "Movement driven by mixed factors"
	}
}

// maxDriver returns the largest contributing driver, if any. Ties break
// alphabetically so the ladder stays deterministic.
func maxDriver(dp models.DataPoint) (string, float64, bool) {
	var (
		best    string
		bestPct float64
		found   bool
	)
	for name, pct := range dp.Drivers {
		if !found || pct > bestPct || (pct == bestPct && name < best) {
			best, bestPct, found = name, pct, true
		}
	}
	return best, bestPct, found
}

// action maps the implication onto a recommendation template keyed by the
// dominant theme of the implication text.
func (l *Ladder) action(dp models.DataPoint, implication string) string {
	lower := strings.ToLower(implication)
	switch {
	case strings.Contains(lower, "contribut"):
		return fmt.Sprintf("Concentrate investment on the primary driver of %s", dp.Metric)
	case strings.Contains(lower, "growth") || strings.Contains(lower, "expansion"):
		return fmt.Sprintf("Scale the initiatives behind %s while momentum holds", dp.Metric)
	case strings.Contains(lower, "decline") || strings.Contains(lower, "deterioration"):
		return fmt.Sprintf("Launch a recovery plan targeting %s within the quarter", dp.Metric)
	case strings.Contains(lower, "competit"):
		return fmt.Sprintf("Sharpen differentiation to defend %s against competitors", dp.Metric)
	case strings.Contains(lower, "market"):
		return fmt.Sprintf("Reassess the market position underlying %s", dp.Metric)
	default:
		return fmt.Sprintf("Track %s closely and revisit the plan next cycle", dp.Metric)
	}
}
