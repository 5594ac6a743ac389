// SlideSmith server: provides the HTTP API, manages queue workers, and
// runs the deck-generation pipeline.
package main

import (
	"context"
	"flag"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/slidesmith/slidesmith/pkg/api"
	"github.com/slidesmith/slidesmith/pkg/config"
	"github.com/slidesmith/slidesmith/pkg/emitter"
	"github.com/slidesmith/slidesmith/pkg/jobstore"
	"github.com/slidesmith/slidesmith/pkg/llm"
	"github.com/slidesmith/slidesmith/pkg/models"
	"github.com/slidesmith/slidesmith/pkg/pipeline"
	"github.com/slidesmith/slidesmith/pkg/progress"
	"github.com/slidesmith/slidesmith/pkg/queue"
	"github.com/slidesmith/slidesmith/pkg/version"
)

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func main() {
	configPath := flag.String("config",
		getEnv("SLIDESMITH_CONFIG", "./slidesmith.yaml"),
		"Path to configuration file")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file, continuing with existing environment", "error", err)
	}

	httpPort := getEnv("HTTP_PORT", "8080")

	slog.Info("Starting SlideSmith",
		"version", version.Full(),
		"http_port", httpPort,
		"config", *configPath)

	ctx := context.Background()

	// 1. Configuration
	cfg, err := config.Initialize(*configPath)
	if err != nil {
		slog.Error("Failed to initialize configuration", "error", err)
		os.Exit(1)
	}

	// 2. Redis (progress sink + job store)
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: os.Getenv(cfg.Redis.PasswordEnv),
		DB:       cfg.Redis.DB,
	})
	defer func() {
		if err := rdb.Close(); err != nil {
			slog.Error("Error closing redis client", "error", err)
		}
	}()
	if err := rdb.Ping(ctx).Err(); err != nil {
		slog.Error("Failed to connect to redis", "addr", cfg.Redis.Addr, "error", err)
		os.Exit(1)
	}
	slog.Info("Connected to redis", "addr", cfg.Redis.Addr)

	sink := progress.NewRedisSink(rdb, cfg.Redis.ProgressTTL, cfg.Redis.JobTTL)
	store := jobstore.NewRedisStore(rdb, cfg.Redis.JobTTL)

	// 3. LLM client
	llmClient := llm.NewHTTPClient(llm.HTTPConfig{
		BaseURL:            cfg.LLM.BaseURL,
		APIKey:             os.Getenv(cfg.LLM.APIKeyEnv),
		Model:              cfg.LLM.Model,
		Temperature:        cfg.LLM.Temperature,
		MaxTokens:          cfg.LLM.MaxTokens,
		Timeout:            cfg.LLM.Timeout,
		BreakerMaxFailures: cfg.LLM.BreakerMaxFailures,
		BreakerCooldown:    cfg.LLM.BreakerCooldown,
	})
	slog.Info("LLM client initialized", "base_url", cfg.LLM.BaseURL, "model", cfg.LLM.Model)

	// 4. Pipeline orchestrator and worker pool
	emit := emitter.NewJSONEmitter(cfg.Pipeline.OutputDir)
	orch := pipeline.New(cfg.Pipeline, llmClient, sink, emit)

	executor := queue.ExecutorFunc(func(jobCtx context.Context, job *models.Job) *models.Response {
		return orch.Execute(jobCtx, job.ID, job.Input)
	})
	pool := queue.NewWorkerPool(cfg.Queue, store, executor)
	if err := pool.Start(ctx); err != nil {
		slog.Error("Failed to start worker pool", "error", err)
		os.Exit(1)
	}

	// 5. HTTP server
	httpServer := api.NewServer(cfg, store, sink, pool)
	httpServer.SetRedisClient(rdb)

	errCh := make(chan error, 1)
	go func() {
		addr := ":" + httpPort
		slog.Info("HTTP server listening", "addr", addr)
		if err := httpServer.Start(addr); err != nil && err != http.ErrServerClosed {
			slog.Error("HTTP server error", "error", err)
			errCh <- err
		}
	}()

	slog.Info("SlideSmith started", "workers", cfg.Queue.WorkerCount)

	// 6. Wait for shutdown signal or server error
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGTERM, syscall.SIGINT)

	select {
	case sig := <-sigCh:
		slog.Info("Shutdown signal received", "signal", sig)
	case err := <-errCh:
		slog.Error("Server error triggered shutdown", "error", err)
	}

	// 7. Graceful shutdown: stop accepting jobs, finish in-flight ones,
	// then drain the HTTP server.
	pool.Stop()

	httpShutdownCtx, httpCancel := context.WithTimeout(ctx, 5*time.Second)
	defer httpCancel()
	if err := httpServer.Shutdown(httpShutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}

	slog.Info("Shutdown complete")
}
