package api

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/slidesmith/slidesmith/pkg/jobstore"
	"github.com/slidesmith/slidesmith/pkg/models"
	"github.com/slidesmith/slidesmith/pkg/queue"
)

// createDeckHandler handles POST /api/v1/decks. Creates the job record in
// "pending" status, enqueues it, and returns immediately with the job id.
func (s *Server) createDeckHandler(c *gin.Context) {
	var req CreateDeckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Document) > MaxDocumentBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": fmt.Sprintf("document exceeds maximum size of %d bytes", MaxDocumentBytes),
		})
		return
	}
	if req.NumSlides != 0 && req.NumSlides < models.MinSlideCount {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("num_slides must be at least %d", models.MinSlideCount),
		})
		return
	}

	input := models.DocumentInput{
		Document:       req.Document,
		NumSlides:      req.NumSlides,
		Language:       req.Language,
		TargetAudience: req.TargetAudience,
		Purpose:        req.Purpose,
	}.Normalized()

	job := &models.Job{ID: uuid.NewString(), Input: input}
	if err := s.store.Create(c.Request.Context(), job); err != nil {
		slog.Error("Failed to create job record", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create job"})
		return
	}

	if err := s.pool.Enqueue(job); err != nil {
		// The pending record would otherwise sit in the store forever.
		failed := &models.Response{JobID: job.ID, Status: models.JobStatusFailed,
			Errors: []string{err.Error()}}
		if storeErr := s.store.Complete(c.Request.Context(), job.ID, failed); storeErr != nil {
			slog.Error("Failed to record enqueue failure", "job_id", job.ID, "error", storeErr)
		}
		status := http.StatusInternalServerError
		if errors.Is(err, queue.ErrQueueFull) {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	slog.Info("Deck job submitted", "job_id", job.ID,
		"num_slides", input.NumSlides, "language", input.Language)

	c.JSON(http.StatusAccepted, &DeckAcceptedResponse{
		JobID:   job.ID,
		Status:  "queued",
		Message: "Deck generation submitted",
	})
}

// getDeckHandler handles GET /api/v1/decks/:id. Returns the job record plus
// the latest progress snapshot when one exists.
func (s *Server) getDeckHandler(c *gin.Context) {
	jobID := c.Param("id")

	job, err := s.store.Get(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, jobstore.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		slog.Error("Failed to load job", "job_id", jobID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job"})
		return
	}

	resp := &DeckStatusResponse{
		JobID:     job.ID,
		Status:    job.Status,
		Input:     job.Input,
		Result:    job.Response,
		CreatedAt: job.CreatedAt.Format(time.RFC3339),
	}
	if snap, ok, snapErr := s.sink.Snapshot(c.Request.Context(), jobID); snapErr != nil {
		slog.Warn("Failed to read progress snapshot", "job_id", jobID, "error", snapErr)
	} else if ok {
		resp.Progress = &snap
	}

	c.JSON(http.StatusOK, resp)
}

// cancelDeckHandler handles POST /api/v1/decks/:id/cancel. In-flight jobs
// get their context cancelled; still-queued jobs are marked cancelled in
// the store and skipped by the worker.
func (s *Server) cancelDeckHandler(c *gin.Context) {
	jobID := c.Param("id")

	job, err := s.store.Get(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, jobstore.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		slog.Error("Failed to load job", "job_id", jobID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job"})
		return
	}

	switch job.Status {
	case models.JobStatusCompleted, models.JobStatusFailed, models.JobStatusCancelled:
		c.JSON(http.StatusConflict, gin.H{"error": "job is not in a cancellable state"})
		return
	}

	if !s.pool.CancelJob(jobID) {
		// Not executing anywhere: terminalize the record so the worker
		// skips it when it reaches the front of the queue.
		cancelled := &models.Response{JobID: jobID, Status: models.JobStatusCancelled,
			Errors: []string{"cancelled before execution started"}}
		if err := s.store.Complete(c.Request.Context(), jobID, cancelled); err != nil {
			slog.Error("Failed to record cancellation", "job_id", jobID, "error", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to cancel job"})
			return
		}
	}

	slog.Info("Deck job cancellation requested", "job_id", jobID)
	c.JSON(http.StatusOK, &CancelResponse{
		JobID:   jobID,
		Message: "Cancellation requested",
	})
}

// downloadDeckHandler handles GET /api/v1/decks/:id/download. Serves the
// emitted deck file of a completed job.
func (s *Server) downloadDeckHandler(c *gin.Context) {
	jobID := c.Param("id")

	job, err := s.store.Get(c.Request.Context(), jobID)
	if err != nil {
		if errors.Is(err, jobstore.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "job not found"})
			return
		}
		slog.Error("Failed to load job", "job_id", jobID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load job"})
		return
	}

	if job.Status != models.JobStatusCompleted || job.Response == nil || job.Response.DeckPath == "" {
		c.JSON(http.StatusConflict, gin.H{"error": "deck is not available for this job"})
		return
	}

	c.FileAttachment(job.Response.DeckPath, jobID+".json")
}
