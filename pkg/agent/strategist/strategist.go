// Package strategist implements the first pipeline stage: document
// analysis, framework selection, pyramid construction, and the slide
// outline. Its failures are fatal; downstream stages cannot proceed
// without its artifacts.
package strategist

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/slidesmith/slidesmith/pkg/agent"
	"github.com/slidesmith/slidesmith/pkg/llm"
	"github.com/slidesmith/slidesmith/pkg/models"
)

// Strategist runs the four sequential sub-steps of the planning stage.
type Strategist struct{}

// New creates the Strategist stage.
func New() *Strategist { return &Strategist{} }

// Name implements agent.Stage.
func (s *Strategist) Name() string { return string(models.StageDocumentAnalysis) }

// Run executes analyze → select framework → build pyramid → build outline.
// Any parse or invariant failure surfaces as a failed result: the
// orchestrator aborts the job.
func (s *Strategist) Run(ctx context.Context, execCtx *agent.ExecutionContext) (*agent.StageResult, error) {
	log := slog.With("job_id", execCtx.JobID, "stage", s.Name())

	analysis, err := s.analyze(ctx, execCtx)
	if err != nil {
		return agent.ClassifyError(fmt.Errorf("document analysis: %w", err)), nil
	}
	execCtx.Artifacts.Analysis = analysis
	log.Info("Document analyzed", "key_message", analysis.KeyMessage)

	framework := SelectFramework(analysis)
	execCtx.Artifacts.Framework = &framework
	log.Info("Framework selected", "framework", framework.Name, "categories", len(framework.Categories))

	pyramid, err := s.buildPyramid(ctx, execCtx, analysis, &framework)
	if err != nil {
		return agent.ClassifyError(fmt.Errorf("pyramid construction: %w", err)), nil
	}
	execCtx.Artifacts.Pyramid = pyramid

	outline, err := s.buildOutline(ctx, execCtx, pyramid, &framework)
	if err != nil {
		return agent.ClassifyError(fmt.Errorf("outline construction: %w", err)), nil
	}
	execCtx.Artifacts.Outline = outline
	log.Info("Outline built", "slides", outline.SlideCount())

	return agent.Completed(), nil
}

// analyze submits the document for structured analysis. Parse failures are
// surfaced, not defaulted: everything downstream depends on this artifact.
func (s *Strategist) analyze(ctx context.Context, execCtx *agent.ExecutionContext) (*models.Analysis, error) {
	prompt := buildAnalysisPrompt(
		execCtx.Input.Document,
		execCtx.Input.TargetAudience,
		execCtx.Input.Purpose,
		execCtx.Language(),
	)

	reply, err := execCtx.LLM.Complete(ctx, prompt, llm.Options{})
	if err != nil {
		return nil, err
	}

	var analysis models.Analysis
	if err := llm.Unmarshal(reply, llm.ShapeObject, &analysis); err != nil {
		return nil, err
	}
	if analysis.KeyMessage == "" {
		return nil, fmt.Errorf("analysis missing key_message")
	}
	return &analysis, nil
}

// buildPyramid asks for one supporting argument per framework category and
// validates the MECE invariant: the set of argument categories must equal
// the framework's category set.
func (s *Strategist) buildPyramid(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	analysis *models.Analysis,
	fw *models.Framework,
) (*models.Pyramid, error) {
	prompt := buildPyramidPrompt(analysis, fw, execCtx.Language())

	reply, err := execCtx.LLM.Complete(ctx, prompt, llm.Options{})
	if err != nil {
		return nil, err
	}

	var pyramid models.Pyramid
	if err := llm.Unmarshal(reply, llm.ShapeObject, &pyramid); err != nil {
		return nil, err
	}
	if pyramid.TopMessage == "" {
		pyramid.TopMessage = analysis.KeyMessage
	}

	if err := validateMECE(&pyramid, fw); err != nil {
		return nil, err
	}
	return &pyramid, nil
}

// validateMECE checks set equality between pyramid argument categories and
// framework categories.
func validateMECE(p *models.Pyramid, fw *models.Framework) error {
	got := p.CategorySet()
	if len(got) != len(fw.Categories) {
		return fmt.Errorf("MECE violation: pyramid has %d categories, framework declares %d (%s)",
			len(got), len(fw.Categories), describeSet(got))
	}
	for _, c := range fw.Categories {
		if !got[c] {
			return fmt.Errorf("MECE violation: framework category %q has no supporting argument", c)
		}
	}
	return nil
}

func describeSet(set map[string]bool) string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return fmt.Sprint(keys)
}

// buildOutline asks for the full slide plan and normalizes it against the
// structural rules.
func (s *Strategist) buildOutline(
	ctx context.Context,
	execCtx *agent.ExecutionContext,
	pyramid *models.Pyramid,
	fw *models.Framework,
) (*models.Outline, error) {
	slideCount := execCtx.SlideCount()
	prompt := buildOutlinePrompt(pyramid, fw, slideCount, execCtx.Language())

	reply, err := execCtx.LLM.Complete(ctx, prompt, llm.Options{})
	if err != nil {
		return nil, err
	}

	var slides []models.SlideSpec
	if err := llm.Unmarshal(reply, llm.ShapeArray, &slides); err != nil {
		return nil, err
	}
	if len(slides) == 0 {
		return nil, fmt.Errorf("outline reply contained no slides")
	}

	return normalizeOutline(slides, fw, slideCount)
}
