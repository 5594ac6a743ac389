// Package analyst implements the data-analysis stage: quantitative
// extraction from the document, the deterministic insight ladder, and the
// chart mapping. It is the only stage allowed to absorb a total LLM failure
// by synthesizing fallback data, because an empty analyst output would make
// quality evaluation and chart generation impossible.
package analyst

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/slidesmith/slidesmith/pkg/agent"
	"github.com/slidesmith/slidesmith/pkg/models"
)

// DegradedFallbackData names the fallback in stage results and response
// metadata.
const DegradedFallbackData = "fallback_data"

// Analyst is the second pipeline stage.
type Analyst struct{}

// New creates the Analyst stage.
func New() *Analyst { return &Analyst{} }

// Name implements agent.Stage.
func (a *Analyst) Name() string { return string(models.StageDataExtraction) }

// Run extracts data points, falls back to synthesized ones when extraction
// yields nothing valid, and derives insights and chart specs. Cancellation
// and deadline errors still surface as terminal results; only an empty or
// unparseable extraction degrades.
func (a *Analyst) Run(ctx context.Context, execCtx *agent.ExecutionContext) (*agent.StageResult, error) {
	log := slog.With("job_id", execCtx.JobID, "stage", a.Name())

	points, err := extractDataPoints(ctx, execCtx)
	degraded := false
	if err != nil {
		if ctx.Err() != nil {
			return agent.ClassifyError(fmt.Errorf("data extraction: %w", err)), nil
		}
		log.Warn("Data extraction failed, synthesizing fallback data", "error", err)
		degraded = true
	} else if len(points) == 0 {
		log.Warn("Data extraction returned no valid points, synthesizing fallback data")
		degraded = true
	}
	if degraded {
		points = fallbackDataPoints(execCtx.Input.Document)
	}

	ladder := NewLadder(execCtx.Language())
	insights := make([]models.Insight, len(points))
	charts := make([]models.ChartSpec, len(points))
	for i, dp := range points {
		insights[i] = ladder.Build(dp)
		charts[i] = buildChart(dp)
	}

	execCtx.Artifacts.Analyst = &models.AnalystOutput{
		DataPoints: points,
		Insights:   insights,
		Charts:     charts,
		Degraded:   degraded,
	}
	log.Info("Analysis complete",
		"data_points", len(points), "charts", len(charts), "degraded", degraded)

	if degraded {
		return agent.Degraded(DegradedFallbackData), nil
	}
	return agent.Completed(), nil
}
