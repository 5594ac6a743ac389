// Package api is the HTTP front door: deck submission, status and progress
// queries, cancellation, download, and health. It validates and translates;
// all deck work happens in the queue and pipeline packages.
package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/slidesmith/slidesmith/pkg/config"
	"github.com/slidesmith/slidesmith/pkg/jobstore"
	"github.com/slidesmith/slidesmith/pkg/progress"
	"github.com/slidesmith/slidesmith/pkg/queue"
)

// Server hosts the HTTP API over the job store, progress sink, and worker
// pool.
type Server struct {
	cfg   *config.Config
	store jobstore.Store
	sink  progress.Sink
	pool  *queue.WorkerPool

	// rdb is pinged by the health endpoint. Nil skips the check.
	rdb *redis.Client

	httpServer *http.Server
}

// NewServer creates the API server. Call Start to begin serving.
func NewServer(cfg *config.Config, store jobstore.Store, sink progress.Sink, pool *queue.WorkerPool) *Server {
	return &Server{cfg: cfg, store: store, sink: sink, pool: pool}
}

// SetRedisClient enables the redis health check.
func (s *Server) SetRedisClient(rdb *redis.Client) {
	s.rdb = rdb
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(), securityHeaders())

	router.GET("/health", s.healthHandler)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/decks", s.createDeckHandler)
		v1.GET("/decks/:id", s.getDeckHandler)
		v1.POST("/decks/:id/cancel", s.cancelDeckHandler)
		v1.GET("/decks/:id/download", s.downloadDeckHandler)
	}

	return router
}

// Start serves HTTP on addr. Blocks until the server stops.
func (s *Server) Start(addr string) error {
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s.httpServer.ListenAndServe()
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}
