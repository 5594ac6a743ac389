package api

import (
	"github.com/slidesmith/slidesmith/pkg/models"
	"github.com/slidesmith/slidesmith/pkg/queue"
)

// DeckAcceptedResponse is returned by POST /api/v1/decks.
type DeckAcceptedResponse struct {
	JobID   string `json:"job_id"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// DeckStatusResponse is returned by GET /api/v1/decks/:id. Progress is nil
// when no snapshot has been published yet.
type DeckStatusResponse struct {
	JobID     string                   `json:"job_id"`
	Status    models.JobStatus         `json:"status"`
	Input     models.DocumentInput     `json:"input"`
	Progress  *models.ProgressSnapshot `json:"progress,omitempty"`
	Result    *models.Response         `json:"result,omitempty"`
	CreatedAt string                   `json:"created_at"`
}

// CancelResponse is returned by POST /api/v1/decks/:id/cancel.
type CancelResponse struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

// HealthCheck is one component's health verdict.
type HealthCheck struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is returned by GET /health.
type HealthResponse struct {
	Status     string                 `json:"status"`
	Version    string                 `json:"version"`
	Checks     map[string]HealthCheck `json:"checks"`
	WorkerPool *queue.PoolHealth      `json:"worker_pool,omitempty"`
}
