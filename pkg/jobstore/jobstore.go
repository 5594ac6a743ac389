// Package jobstore persists job records so submissions survive across API
// reads and job results remain fetchable after the pipeline finishes.
package jobstore

import (
	"context"
	"errors"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// ErrNotFound is returned when a job id is unknown or has expired.
var ErrNotFound = errors.New("job not found")

// Store is the persistence boundary for job records.
type Store interface {
	// Create persists a new pending job record.
	Create(ctx context.Context, job *models.Job) error

	// Get returns the job or ErrNotFound.
	Get(ctx context.Context, jobID string) (*models.Job, error)

	// MarkStarted transitions the job to in_progress.
	MarkStarted(ctx context.Context, jobID string) error

	// Complete stores the terminal response and matching status.
	Complete(ctx context.Context, jobID string, resp *models.Response) error
}
