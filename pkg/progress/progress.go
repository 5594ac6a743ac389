// Package progress publishes job progress snapshots to a keyed store so
// observers can poll generation state. Writes are last-write-wins per
// (job, field); percent never goes backwards for a job.
package progress

import (
	"context"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// Sink is the write side of progress publication. Implementations must
// enforce the monotonic percent rule: a snapshot with a lower percent than
// the stored one is dropped, not an error.
type Sink interface {
	Publish(ctx context.Context, jobID string, snap models.ProgressSnapshot) error

	// Snapshot returns the last published state, or false when the job is
	// unknown or expired.
	Snapshot(ctx context.Context, jobID string) (models.ProgressSnapshot, bool, error)
}

// terminal reports whether a snapshot ends progress reporting for the job.
func terminal(stage models.Stage) bool {
	return stage == models.StageCompleted || stage == models.StageFailed
}
