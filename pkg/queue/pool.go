package queue

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/slidesmith/slidesmith/pkg/config"
	"github.com/slidesmith/slidesmith/pkg/jobstore"
	"github.com/slidesmith/slidesmith/pkg/models"
)

// WorkerPool manages the job backlog and its workers.
type WorkerPool struct {
	cfg      *config.QueueConfig
	store    jobstore.Store
	executor Executor

	jobs     chan *models.Job
	workers  []*Worker
	stopCh   chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	// Job cancel registry: job_id → cancel function for observer-initiated
	// cancellation of in-flight jobs.
	mu         sync.RWMutex
	activeJobs map[string]context.CancelFunc
	started    bool
}

// NewWorkerPool creates a stopped pool.
func NewWorkerPool(cfg *config.QueueConfig, store jobstore.Store, executor Executor) *WorkerPool {
	return &WorkerPool{
		cfg:        cfg,
		store:      store,
		executor:   executor,
		jobs:       make(chan *models.Job, cfg.QueueCapacity),
		workers:    make([]*Worker, 0, cfg.WorkerCount),
		stopCh:     make(chan struct{}),
		activeJobs: make(map[string]context.CancelFunc),
	}
}

// Start spawns the worker goroutines. Safe to call multiple times;
// subsequent calls are no-ops.
func (p *WorkerPool) Start(ctx context.Context) error {
	p.mu.Lock()
	if p.started {
		p.mu.Unlock()
		slog.Warn("Worker pool already started, ignoring duplicate Start call")
		return nil
	}
	p.started = true
	p.mu.Unlock()

	slog.Info("Starting worker pool",
		"worker_count", p.cfg.WorkerCount, "queue_capacity", p.cfg.QueueCapacity)

	for i := 0; i < p.cfg.WorkerCount; i++ {
		worker := NewWorker(fmt.Sprintf("worker-%d", i), p)
		p.workers = append(p.workers, worker)
		worker.Start(ctx)
	}

	slog.Info("Worker pool started")
	return nil
}

// Stop signals all workers to stop and waits for them, up to the graceful
// shutdown timeout. Workers finish their current jobs before exiting;
// queued jobs that never started stay pending in the store.
func (p *WorkerPool) Stop() {
	slog.Info("Stopping worker pool gracefully")

	if active := p.ActiveJobIDs(); len(active) > 0 {
		slog.Info("Waiting for active jobs to complete",
			"count", len(active), "job_ids", active)
	}

	p.stopOnce.Do(func() { close(p.stopCh) })

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	timeout := p.cfg.GracefulShutdownTimeout
	if timeout <= 0 {
		timeout = time.Minute
	}
	select {
	case <-done:
		slog.Info("Worker pool stopped gracefully")
	case <-time.After(timeout):
		slog.Warn("Graceful shutdown timeout, cancelling remaining jobs")
		p.cancelAll()
		<-done
		slog.Info("Worker pool stopped after forced cancellation")
	}

	p.mu.Lock()
	p.started = false
	p.mu.Unlock()
}

// Enqueue accepts a job for execution. The record must already exist in
// the store; the pool only schedules it.
func (p *WorkerPool) Enqueue(job *models.Job) error {
	p.mu.RLock()
	started := p.started
	p.mu.RUnlock()
	if !started {
		return ErrNotStarted
	}

	select {
	case p.jobs <- job:
		slog.Info("Job enqueued", "job_id", job.ID, "queue_depth", len(p.jobs))
		return nil
	default:
		return ErrQueueFull
	}
}

// RegisterJob stores a cancel function for observer-initiated cancellation.
func (p *WorkerPool) RegisterJob(jobID string, cancel context.CancelFunc) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.activeJobs[jobID] = cancel
}

// UnregisterJob removes the cancel function when processing ends.
func (p *WorkerPool) UnregisterJob(jobID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.activeJobs, jobID)
}

// CancelJob triggers context cancellation for an in-flight job. Returns
// false when the job is not currently executing here.
func (p *WorkerPool) CancelJob(jobID string) bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if cancel, ok := p.activeJobs[jobID]; ok {
		cancel()
		return true
	}
	return false
}

// ActiveJobIDs lists the jobs currently executing.
func (p *WorkerPool) ActiveJobIDs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	ids := make([]string, 0, len(p.activeJobs))
	for id := range p.activeJobs {
		ids = append(ids, id)
	}
	return ids
}

func (p *WorkerPool) cancelAll() {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, cancel := range p.activeJobs {
		cancel()
	}
}

// Health returns the pool's current health snapshot.
func (p *WorkerPool) Health() *PoolHealth {
	health := &PoolHealth{
		QueueDepth:    len(p.jobs),
		QueueCapacity: cap(p.jobs),
		Workers:       make([]WorkerHealth, len(p.workers)),
	}
	for i, worker := range p.workers {
		stats := worker.Health()
		health.Workers[i] = stats
		if stats.Status == WorkerStatusWorking {
			health.ActiveJobs++
		}
	}
	return health
}
