// Package pipeline orchestrates the five-stage deck generation sequence
// with quality-driven iterative refinement. Stages run strictly
// sequentially within a job; the orchestrator owns progress publication,
// deadlines, cancellation checks at stage boundaries, and the partial
// re-run strategy between iterations.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/slidesmith/slidesmith/pkg/agent"
	"github.com/slidesmith/slidesmith/pkg/agent/analyst"
	"github.com/slidesmith/slidesmith/pkg/agent/designer"
	"github.com/slidesmith/slidesmith/pkg/agent/storyteller"
	"github.com/slidesmith/slidesmith/pkg/agent/strategist"
	"github.com/slidesmith/slidesmith/pkg/config"
	"github.com/slidesmith/slidesmith/pkg/emitter"
	"github.com/slidesmith/slidesmith/pkg/llm"
	"github.com/slidesmith/slidesmith/pkg/models"
	"github.com/slidesmith/slidesmith/pkg/progress"
	"github.com/slidesmith/slidesmith/pkg/quality"
)

// Progress percents for the fixed stage sequence.
const (
	percentStrategist  = 20
	percentAnalyst     = 40
	percentStoryteller = 60
	percentDesigner    = 80
	percentReviewer    = 95
	percentDone        = 100
)

// Orchestrator executes jobs end to end. One orchestrator serves all jobs;
// per-job state lives in the ExecutionContext created for each Execute call.
type Orchestrator struct {
	cfg       *config.PipelineConfig
	llmClient llm.Client
	sink      progress.Sink
	emit      emitter.Emitter
	evaluator *quality.Evaluator

	strategist agent.Stage
	analyst    agent.Stage
	storytell  agent.Stage
	designer   agent.Stage
}

// New creates an orchestrator with the built-in stages.
func New(cfg *config.PipelineConfig, client llm.Client, sink progress.Sink, emit emitter.Emitter) *Orchestrator {
	return &Orchestrator{
		cfg:        cfg,
		llmClient:  client,
		sink:       sink,
		emit:       emit,
		evaluator:  quality.NewEvaluator(cfg.TargetQuality),
		strategist: strategist.New(),
		analyst:    analyst.New(),
		storytell:  storyteller.New(),
		designer:   designer.New(),
	}
}

// WithDesigner swaps in an external Designer stage.
func (o *Orchestrator) WithDesigner(stage agent.Stage) *Orchestrator {
	o.designer = stage
	return o
}

// replaySet selects the stages to run in one iteration. Reviewer always
// runs; the zero value replays nothing else.
type replaySet struct {
	strategist  bool
	analyst     bool
	storyteller bool
	designer    bool
}

func fullReplay() replaySet {
	return replaySet{strategist: true, analyst: true, storyteller: true, designer: true}
}

// Execute runs one job to its terminal response. The returned response is
// never nil: failures, timeouts, and cancellations are reported in it.
func (o *Orchestrator) Execute(ctx context.Context, jobID string, input models.DocumentInput) *models.Response {
	start := time.Now()
	log := slog.With("job_id", jobID)

	jobTimeout := o.cfg.JobTimeout
	if jobTimeout <= 0 {
		jobTimeout = 10 * time.Minute
	}
	jobCtx, cancel := context.WithTimeout(ctx, jobTimeout)
	defer cancel()

	execCtx := &agent.ExecutionContext{
		JobID:    jobID,
		Input:    input.Normalized(),
		Pipeline: o.cfg,
		LLM:      o.llmClient,
	}

	resp := &models.Response{JobID: jobID, Status: models.JobStatusFailed}
	defer func() { resp.Elapsed = time.Since(start) }()

	maxIterations := o.cfg.MaxIterations
	if maxIterations <= 0 {
		maxIterations = 3
	}

	replay := fullReplay()
	var deckPath string
	for iteration := 1; iteration <= maxIterations; iteration++ {
		resp.Iterations = iteration
		log.Info("Starting iteration", "iteration", iteration,
			"strategist", replay.strategist, "analyst", replay.analyst,
			"storyteller", replay.storyteller, "designer", replay.designer)

		if done := o.runIteration(jobCtx, execCtx, replay, resp, log); done {
			return resp
		}

		path, err := o.emit.Emit(jobCtx, jobID, execCtx.Artifacts.Deck)
		if err != nil {
			return o.fail(jobCtx, resp, fmt.Errorf("emitting deck: %w", err), log)
		}
		deckPath = path

		score := o.evaluator.Evaluate(
			execCtx.Artifacts.Deck, execCtx.Artifacts.Analyst, execCtx.Artifacts.Pyramid)
		execCtx.Artifacts.Score = score
		resp.QualityScore = score.Total
		resp.QualityPassed = score.Passed
		log.Info("Quality evaluated", "iteration", iteration,
			"total", score.Total, "passed", score.Passed, "hints", len(score.Hints))

		if score.Passed {
			break
		}

		next, ok := planReplay(score.Hints)
		if !ok {
			// Nothing scored badly enough to justify another pass.
			log.Info("No high-priority hints, finalizing below target", "total", score.Total)
			break
		}
		if iteration == maxIterations {
			log.Info("Iteration budget exhausted, finalizing below target", "total", score.Total)
			break
		}
		replay = next
		invalidate(execCtx, next)
	}

	resp.Status = models.JobStatusCompleted
	resp.DeckPath = deckPath
	o.publish(jobCtx, execCtx.JobID, models.ProgressSnapshot{
		Stage: models.StageCompleted, Percent: percentDone,
	}, log)
	log.Info("Job completed", "deck_path", deckPath,
		"quality", resp.QualityScore, "passed", resp.QualityPassed, "iterations", resp.Iterations)
	return resp
}

// runIteration executes the replayed stages of one pass up to and including
// the draft handoff point. It returns true when the job reached a terminal
// failure and resp is already populated.
func (o *Orchestrator) runIteration(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	replay replaySet,
	resp *models.Response,
	log *slog.Logger,
) bool {
	type step struct {
		run     bool
		stage   agent.Stage
		percent int
		name    models.Stage
	}
	steps := []step{
		{replay.strategist, o.strategist, percentStrategist, models.StageDocumentAnalysis},
		{replay.analyst, o.analyst, percentAnalyst, models.StageDataExtraction},
		{replay.storyteller, o.storytell, percentStoryteller, models.StageStructureDesign},
		{replay.designer, o.designer, percentDesigner, models.StageDesignApplication},
	}

	for _, s := range steps {
		if !s.run {
			continue
		}
		if err := ctx.Err(); err != nil {
			o.stopAtBoundary(ctx, resp, err, log)
			return true
		}

		snap := models.ProgressSnapshot{Stage: s.name, Percent: s.percent}
		if s.name == models.StageStructureDesign {
			snap.StructurePreview = structurePreview(execCtx.Artifacts.Outline)
		}
		o.publish(ctx, execCtx.JobID, snap, log)

		if done := o.runStage(ctx, execCtx, s.stage, resp, log); done {
			return true
		}
	}

	if err := ctx.Err(); err != nil {
		o.stopAtBoundary(ctx, resp, err, log)
		return true
	}
	o.publish(ctx, execCtx.JobID, models.ProgressSnapshot{
		Stage: models.StageQualityReview, Percent: percentReviewer,
	}, log)
	return false
}

// stopAtBoundary classifies an expired context observed between stages.
// Job-deadline expiry is fatal and leaves a durable failed snapshot;
// observer cancellation ends the job with no further progress writes.
func (o *Orchestrator) stopAtBoundary(ctx context.Context, resp *models.Response, err error, log *slog.Logger) {
	if errors.Is(err, context.DeadlineExceeded) {
		o.fail(ctx, resp, fmt.Errorf("job deadline exceeded: %w", err), log)
		return
	}
	o.abort(resp, err, log)
}

// runStage executes one stage under the per-stage deadline. Returns true
// when the job must stop.
func (o *Orchestrator) runStage(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	stage agent.Stage,
	resp *models.Response,
	log *slog.Logger,
) bool {
	timeout := o.cfg.PerStageTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	stageCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	result, err := stage.Run(stageCtx, execCtx)
	result = agent.Guard(result, err)

	switch result.Status {
	case agent.StatusCompleted:
		return false
	case agent.StatusDegraded:
		resp.Degraded = true
		log.Warn("Stage degraded", "stage", stage.Name(), "reason", result.DegradedReason)
		return false
	case agent.StatusCancelled:
		o.abort(resp, result.Err, log)
		return true
	default:
		// A stage deadline inside a live job is a stage failure; the whole
		// job timing out is reported as such.
		err := result.Err
		if err == nil {
			err = fmt.Errorf("stage %s %s", stage.Name(), result.Status)
		}
		if ctx.Err() == context.DeadlineExceeded {
			err = fmt.Errorf("job deadline exceeded during %s: %w", stage.Name(), err)
		}
		o.fail(ctx, resp, err, log)
		return true
	}
}

// fail marks the response failed and publishes the terminal snapshot. The
// snapshot write detaches from the job context's deadline so the failure
// is still recorded when the job itself timed out.
func (o *Orchestrator) fail(ctx context.Context, resp *models.Response, err error, log *slog.Logger) *models.Response {
	resp.Status = models.JobStatusFailed
	resp.Errors = append(resp.Errors, err.Error())
	log.Error("Job failed", "error", err)
	o.publish(context.WithoutCancel(ctx), resp.JobID, models.ProgressSnapshot{
		Stage: models.StageFailed, Percent: percentDone, Error: err.Error(),
	}, log)
	return resp
}

// abort handles observer cancellation: no further progress writes.
func (o *Orchestrator) abort(resp *models.Response, err error, log *slog.Logger) {
	if err == nil {
		err = context.Canceled
	}
	resp.Status = models.JobStatusCancelled
	resp.Errors = append(resp.Errors, err.Error())
	log.Info("Job cancelled", "error", err)
}

func (o *Orchestrator) publish(ctx context.Context, jobID string, snap models.ProgressSnapshot, log *slog.Logger) {
	if err := o.sink.Publish(ctx, jobID, snap); err != nil {
		// Progress is observability, not correctness; the job carries on.
		log.Warn("Progress publish failed", "stage", snap.Stage, "error", err)
	}
}

// structurePreview summarizes the outline for observers, bounded by
// MaxPreviewRows.
func structurePreview(outline *models.Outline) []models.PreviewRow {
	if outline == nil {
		return nil
	}
	rows := make([]models.PreviewRow, 0, len(outline.Slides))
	for _, s := range outline.Slides {
		if len(rows) == models.MaxPreviewRows {
			break
		}
		rows = append(rows, models.PreviewRow{
			Slide:  s.Number,
			Title:  s.Title,
			Layout: string(s.LayoutType),
		})
	}
	return rows
}

// planReplay maps high-priority hints onto the stages to run next pass.
// Returns false when no hint is high priority.
func planReplay(hints []models.ImprovementHint) (replaySet, bool) {
	var replay replaySet
	found := false
	for _, h := range hints {
		if h.Priority != models.HintPriorityHigh {
			continue
		}
		found = true
		switch h.Criterion {
		case models.CriterionClarity, models.CriterionInsight:
			replay.analyst = true
			replay.designer = true
		case models.CriterionActionability:
			replay.storyteller = true
			replay.designer = true
		case models.CriterionStructure:
			replay = fullReplay()
		case models.CriterionVisual:
			replay.designer = true
		}
	}
	return replay, found
}

// invalidate drops the artifacts the next pass will regenerate. Artifacts
// upstream of the replayed stages are reused verbatim.
func invalidate(execCtx *agent.ExecutionContext, replay replaySet) {
	if replay.strategist {
		execCtx.Artifacts.Analysis = nil
		execCtx.Artifacts.Framework = nil
		execCtx.Artifacts.Pyramid = nil
		execCtx.Artifacts.Outline = nil
	}
	if replay.analyst {
		execCtx.Artifacts.Analyst = nil
	}
	if replay.storyteller {
		execCtx.Artifacts.Narrative = nil
	}
	if replay.designer {
		execCtx.Artifacts.Deck = nil
	}
	execCtx.Artifacts.Score = nil
}
