package config

import "time"

// QueueConfig contains worker pool configuration. These values control how
// many jobs are processed concurrently and how shutdown behaves.
type QueueConfig struct {
	// WorkerCount is the number of worker goroutines.
	// Each worker processes one job at a time.
	WorkerCount int `yaml:"worker_count"`

	// QueueCapacity bounds the number of pending jobs; submissions beyond
	// it are rejected so the caller sees back-pressure.
	QueueCapacity int `yaml:"queue_capacity"`

	// GracefulShutdownTimeout is the max time to wait for active jobs to
	// complete during shutdown. Should be at least the job timeout.
	GracefulShutdownTimeout time.Duration `yaml:"graceful_shutdown_timeout"`
}

// DefaultQueueConfig returns the built-in queue defaults.
func DefaultQueueConfig() *QueueConfig {
	return &QueueConfig{
		WorkerCount:             4,
		QueueCapacity:           64,
		GracefulShutdownTimeout: 10 * time.Minute,
	}
}
