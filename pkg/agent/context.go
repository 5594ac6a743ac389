package agent

import (
	"github.com/slidesmith/slidesmith/pkg/config"
	"github.com/slidesmith/slidesmith/pkg/llm"
	"github.com/slidesmith/slidesmith/pkg/models"
)

// ExecutionContext carries all dependencies and per-job state a stage needs.
// Created once per job by the orchestrator; the Artifacts set is the only
// part that changes between stages, and only by the orchestrator writing a
// newly produced artifact before handing the context to the next stage.
type ExecutionContext struct {
	// Identity
	JobID string

	// Request
	Input models.DocumentInput

	// Configuration (resolved; never nil)
	Pipeline *config.PipelineConfig

	// Dependencies
	LLM llm.Client

	// Artifacts produced so far. Pointers are nil until the producing
	// stage has run; stages must treat them as immutable.
	Artifacts ArtifactSet
}

// ArtifactSet is the ordered collection of artifacts belonging to one job.
// Owned exclusively by the orchestrator; destroyed when the job terminates.
type ArtifactSet struct {
	Analysis  *models.Analysis
	Framework *models.Framework
	Pyramid   *models.Pyramid
	Outline   *models.Outline
	Analyst   *models.AnalystOutput
	Narrative *models.Narrative
	Deck      *models.StyledDeck
	Score     *models.QualityScore
}

// Language returns the effective content language for the job.
func (c *ExecutionContext) Language() string {
	if c.Input.Language != "" {
		return c.Input.Language
	}
	if c.Pipeline != nil && c.Pipeline.Language != "" {
		return c.Pipeline.Language
	}
	return "ko"
}

// SlideCount returns the effective requested slide count.
func (c *ExecutionContext) SlideCount() int {
	if c.Input.NumSlides >= models.MinSlideCount {
		return c.Input.NumSlides
	}
	if c.Pipeline != nil && c.Pipeline.DefaultSlideCount >= models.MinSlideCount {
		return c.Pipeline.DefaultSlideCount
	}
	return models.DefaultSlideCount
}
