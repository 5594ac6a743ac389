package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/slidesmith/slidesmith/pkg/queue"
	"github.com/slidesmith/slidesmith/pkg/version"
)

const (
	healthStatusHealthy   = "healthy"
	healthStatusDegraded  = "degraded"
	healthStatusUnhealthy = "unhealthy"
)

// healthHandler handles GET /health. Only SlideSmith's own components
// (redis, worker pool) are checked; the LLM service is excluded so an
// upstream outage does not make the orchestrator restart this process.
func (s *Server) healthHandler(c *gin.Context) {
	reqCtx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]HealthCheck)
	status := healthStatusHealthy

	if s.rdb != nil {
		if err := s.rdb.Ping(reqCtx).Err(); err != nil {
			status = healthStatusUnhealthy
			checks["redis"] = HealthCheck{Status: healthStatusUnhealthy, Message: err.Error()}
		} else {
			checks["redis"] = HealthCheck{Status: healthStatusHealthy}
		}
	}

	var poolHealth *queue.PoolHealth
	if s.pool != nil {
		poolHealth = s.pool.Health()
		working := 0
		for _, w := range poolHealth.Workers {
			if w.Status != queue.WorkerStatusStopped {
				working++
			}
		}
		if working == 0 {
			if status == healthStatusHealthy {
				status = healthStatusDegraded
			}
			checks["worker_pool"] = HealthCheck{Status: healthStatusDegraded,
				Message: "no running workers"}
		} else {
			checks["worker_pool"] = HealthCheck{Status: healthStatusHealthy}
		}
	}

	httpStatus := http.StatusOK
	if status == healthStatusUnhealthy {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, &HealthResponse{
		Status:     status,
		Version:    version.GitCommit,
		Checks:     checks,
		WorkerPool: poolHealth,
	})
}
