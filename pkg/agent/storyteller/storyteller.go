// Package storyteller implements the narrative stage: the situation /
// complication / resolution arc, slide transitions, and speaker notes.
// SCR assignment tolerates LLM failure through a deterministic partition;
// transitions and speaker notes do not, because they are visible narrative
// content with no acceptable heuristic substitute.
package storyteller

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/slidesmith/slidesmith/pkg/agent"
	"github.com/slidesmith/slidesmith/pkg/llm"
	"github.com/slidesmith/slidesmith/pkg/models"
)

// DegradedSCRPartition names the deterministic SCR fallback in stage
// results and response metadata.
const DegradedSCRPartition = "scr_partition"

// scrAttempts is the number of LLM tries before the partition fallback.
const scrAttempts = 3

// defaultSCRTimeout bounds one SCR attempt when configuration does not.
const defaultSCRTimeout = 15 * time.Second

// Storyteller is the third pipeline stage.
type Storyteller struct{}

// New creates the Storyteller stage.
func New() *Storyteller { return &Storyteller{} }

// Name implements agent.Stage.
func (s *Storyteller) Name() string { return string(models.StageStructureDesign) }

// Run assigns the SCR arc, then builds transitions and speaker notes.
func (s *Storyteller) Run(ctx context.Context, execCtx *agent.ExecutionContext) (*agent.StageResult, error) {
	log := slog.With("job_id", execCtx.JobID, "stage", s.Name())

	outline := execCtx.Artifacts.Outline
	if outline == nil || outline.SlideCount() < models.MinSlideCount {
		return agent.Failed(fmt.Errorf("storyteller requires an outline with at least %d slides", models.MinSlideCount)), nil
	}

	scr, fellBack, err := s.assignSCR(ctx, execCtx, log)
	if err != nil {
		return agent.ClassifyError(fmt.Errorf("scr assignment: %w", err)), nil
	}

	transitions, err := buildTransitions(ctx, execCtx, outline, scr, log)
	if err != nil {
		return agent.ClassifyError(fmt.Errorf("transitions: %w", err)), nil
	}

	var insights []models.Insight
	if execCtx.Artifacts.Analyst != nil {
		insights = execCtx.Artifacts.Analyst.Insights
	}
	notes, err := buildSpeakerNotes(ctx, execCtx, outline, insights, log)
	if err != nil {
		return agent.ClassifyError(fmt.Errorf("speaker notes: %w", err)), nil
	}

	execCtx.Artifacts.Narrative = &models.Narrative{
		SCR:          scr,
		Transitions:  transitions,
		SpeakerNotes: notes,
		SCRFallback:  fellBack,
	}
	log.Info("Narrative built",
		"transitions", len(transitions), "speaker_notes", len(notes), "scr_fallback", fellBack)

	if fellBack {
		return agent.Degraded(DegradedSCRPartition), nil
	}
	return agent.Completed(), nil
}

// assignSCR tries the LLM up to scrAttempts times, each attempt under its
// own short deadline, and validates each reply against the partition
// invariant. Exhaustion falls back to the deterministic partition. Job
// cancellation is the only error that aborts instead of falling back.
func (s *Storyteller) assignSCR(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	log *slog.Logger,
) (models.SCRStructure, bool, error) {
	outline := execCtx.Artifacts.Outline
	slideCount := outline.SlideCount()

	timeout := defaultSCRTimeout
	if execCtx.Pipeline != nil && execCtx.Pipeline.SCRTimeout > 0 {
		timeout = execCtx.Pipeline.SCRTimeout
	}

	prompt := buildSCRPrompt(outline, execCtx.Artifacts.Pyramid, execCtx.Language())
	for attempt := 1; attempt <= scrAttempts; attempt++ {
		scr, err := s.scrAttempt(ctx, execCtx, prompt, slideCount, timeout)
		if err == nil {
			return scr, false, nil
		}
		if ctx.Err() != nil {
			return models.SCRStructure{}, false, err
		}
		log.Warn("SCR attempt failed", "attempt", attempt, "error", err)
	}

	log.Warn("SCR attempts exhausted, applying deterministic partition", "slides", slideCount)
	return fallbackSCR(slideCount), true, nil
}

func (s *Storyteller) scrAttempt(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	prompt string,
	slideCount int,
	timeout time.Duration,
) (models.SCRStructure, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	reply, err := execCtx.LLM.Complete(attemptCtx, prompt, llm.Options{Timeout: timeout})
	if err != nil {
		return models.SCRStructure{}, err
	}

	var scr models.SCRStructure
	if err := llm.Unmarshal(reply, llm.ShapeObject, &scr); err != nil {
		return models.SCRStructure{}, err
	}
	if err := validateSCR(scr, slideCount); err != nil {
		return models.SCRStructure{}, err
	}
	normalizeSCR(&scr)
	return scr, nil
}
