// Package queue runs submitted jobs on a bounded worker pool. Jobs are
// held in memory; their records and results are persisted through the job
// store so API reads survive the queue itself.
package queue

import (
	"context"
	"errors"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// ErrQueueFull is returned by Enqueue when the backlog is at capacity.
var ErrQueueFull = errors.New("job queue is full")

// ErrNotStarted is returned by Enqueue before Start or after Stop.
var ErrNotStarted = errors.New("worker pool is not running")

// Executor runs one job to its terminal response. The context carries the
// job's cancellation signal; implementations must honor it at stage
// boundaries.
type Executor interface {
	ExecuteJob(ctx context.Context, job *models.Job) *models.Response
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, job *models.Job) *models.Response

// ExecuteJob implements Executor.
func (f ExecutorFunc) ExecuteJob(ctx context.Context, job *models.Job) *models.Response {
	return f(ctx, job)
}

// WorkerStatus reports what a worker is doing.
type WorkerStatus string

const (
	WorkerStatusIdle    WorkerStatus = "idle"
	WorkerStatusWorking WorkerStatus = "working"
	WorkerStatusStopped WorkerStatus = "stopped"
)

// WorkerHealth is one worker's health snapshot.
type WorkerHealth struct {
	WorkerID string       `json:"worker_id"`
	Status   WorkerStatus `json:"status"`
	JobID    string       `json:"job_id,omitempty"`
}

// PoolHealth is the pool's health snapshot.
type PoolHealth struct {
	QueueDepth    int            `json:"queue_depth"`
	QueueCapacity int            `json:"queue_capacity"`
	ActiveJobs    int            `json:"active_jobs"`
	Workers       []WorkerHealth `json:"workers"`
}
