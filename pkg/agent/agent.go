// Package agent provides the stage framework for the slide-generation
// pipeline. Stages consume typed artifacts, call the LLM client and pure
// transformers, and return typed results; they are stateless across
// invocations and created per job.
package agent

import "context"

// Stage is the interface implemented by every pipeline stage.
type Stage interface {
	// Name returns the stage's progress identity.
	Name() string

	// Run executes the stage. ctx carries the per-stage deadline and the
	// job's cancellation signal; execCtx carries dependencies and the
	// artifacts produced by earlier stages.
	//
	// Returns (*StageResult, nil) for all stage-level outcomes; check
	// Result.Status for degraded or failed runs. Returns (nil, error) only
	// for infrastructure failures where no meaningful result exists.
	Run(ctx context.Context, execCtx *ExecutionContext) (*StageResult, error)
}

// Status classifies the outcome of a stage run.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusDegraded  Status = "degraded"
	StatusFailed    Status = "failed"
	StatusTimedOut  Status = "timed_out"
	StatusCancelled Status = "cancelled"
)

// Terminal reports whether the status ends the job.
func (s Status) Terminal() bool {
	return s == StatusFailed || s == StatusTimedOut || s == StatusCancelled
}

// StageResult is returned by Stage.Run. Artifacts are written into the
// ExecutionContext's artifact set during the run; the result carries only
// outcome classification.
type StageResult struct {
	Status Status
	// DegradedReason names the fallback applied when Status is degraded
	// (for example "fallback_data" or "scr_partition").
	DegradedReason string
	Err            error
}

// Completed is the common success result.
func Completed() *StageResult { return &StageResult{Status: StatusCompleted} }

// Degraded marks a run that succeeded through a deterministic fallback.
func Degraded(reason string) *StageResult {
	return &StageResult{Status: StatusDegraded, DegradedReason: reason}
}

// Failed marks a fatal stage failure.
func Failed(err error) *StageResult { return &StageResult{Status: StatusFailed, Err: err} }
