package agent

import (
	"context"
	"errors"
	"fmt"
)

// ClassifyError converts a stage error into a StageResult, mapping context
// expiry to timed_out and cancellation to cancelled. errors.Is runs on the
// returned error (not ctx.Err()) so a concurrent context expiration does
// not misclassify an unrelated failure.
func ClassifyError(err error) *StageResult {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &StageResult{Status: StatusTimedOut, Err: err}
	case errors.Is(err, context.Canceled):
		return &StageResult{Status: StatusCancelled, Err: err}
	default:
		return &StageResult{Status: StatusFailed, Err: err}
	}
}

// Guard normalizes a (result, err) pair from a stage run: errors become
// classified results and a nil result without error becomes a failure.
func Guard(result *StageResult, err error) *StageResult {
	if err != nil {
		return ClassifyError(err)
	}
	if result == nil {
		return &StageResult{
			Status: StatusFailed,
			Err:    fmt.Errorf("stage returned nil result"),
		}
	}
	return result
}
