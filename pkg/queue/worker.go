package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// Worker pulls jobs from the pool's backlog and executes them one at a
// time.
type Worker struct {
	id   string
	pool *WorkerPool

	mu     sync.RWMutex
	status WorkerStatus
	jobID  string
}

// NewWorker creates an idle worker bound to its pool.
func NewWorker(id string, pool *WorkerPool) *Worker {
	return &Worker{id: id, pool: pool, status: WorkerStatusIdle}
}

// Start launches the worker's run loop.
func (w *Worker) Start(ctx context.Context) {
	w.pool.wg.Add(1)
	go func() {
		defer w.pool.wg.Done()
		w.run(ctx)
	}()
}

func (w *Worker) run(ctx context.Context) {
	log := slog.With("worker_id", w.id)
	log.Info("Worker started")
	defer func() {
		w.setState(WorkerStatusStopped, "")
		log.Info("Worker stopped")
	}()

	for {
		select {
		case <-w.pool.stopCh:
			return
		case <-ctx.Done():
			return
		case job := <-w.pool.jobs:
			if job == nil {
				return
			}
			w.process(ctx, job, log)
		}
	}
}

// process runs one job: store transition to in_progress, execution under a
// cancellable context, terminal store write. A store write failure is
// logged, not fatal; the next read simply sees the stale record.
func (w *Worker) process(ctx context.Context, job *models.Job, log *slog.Logger) {
	jobCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	w.pool.RegisterJob(job.ID, cancel)
	defer w.pool.UnregisterJob(job.ID)
	w.setState(WorkerStatusWorking, job.ID)
	defer w.setState(WorkerStatusIdle, "")

	log.Info("Processing job", "job_id", job.ID)

	// A job can be cancelled through the API while still queued. Its store
	// record is already terminal; skip execution.
	if stored, err := w.pool.store.Get(jobCtx, job.ID); err == nil &&
		stored.Status != models.JobStatusPending {
		log.Info("Skipping job in terminal state", "job_id", job.ID, "status", stored.Status)
		return
	}

	if err := w.pool.store.MarkStarted(jobCtx, job.ID); err != nil {
		log.Error("Failed to mark job started", "job_id", job.ID, "error", err)
	}

	resp := w.execute(jobCtx, job, log)
	if resp == nil {
		resp = &models.Response{JobID: job.ID, Status: models.JobStatusFailed,
			Errors: []string{"executor returned no response"}}
	}

	// The terminal write uses a fresh context: the job context may already
	// be cancelled and the outcome must still be recorded.
	if err := w.pool.store.Complete(context.Background(), job.ID, resp); err != nil {
		log.Error("Failed to record job completion", "job_id", job.ID, "error", err)
	}
	log.Info("Job finished", "job_id", job.ID, "status", resp.Status,
		"quality", resp.QualityScore, "iterations", resp.Iterations)
}

// execute runs the executor with a panic guard so one bad job cannot take
// the worker down; the panic becomes a failed terminal response.
func (w *Worker) execute(ctx context.Context, job *models.Job, log *slog.Logger) (resp *models.Response) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("Executor panicked", "job_id", job.ID, "panic", r)
			resp = &models.Response{JobID: job.ID, Status: models.JobStatusFailed,
				Errors: []string{fmt.Sprintf("internal error: %v", r)}}
		}
	}()
	return w.pool.executor.ExecuteJob(ctx, job)
}

func (w *Worker) setState(status WorkerStatus, jobID string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.status = status
	w.jobID = jobID
}

// Health returns the worker's health snapshot.
func (w *Worker) Health() WorkerHealth {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return WorkerHealth{WorkerID: w.id, Status: w.status, JobID: w.jobID}
}
