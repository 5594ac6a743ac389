package jobstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/slidesmith/slidesmith/pkg/models"
)

const jobKeyPrefix = "slidesmith:job:"

// RedisStore keeps job records as JSON values with a retention TTL.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisStore creates a store over an existing client.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{client: client, ttl: ttl}
}

func jobKey(jobID string) string { return jobKeyPrefix + jobID }

// Create implements Store.
func (s *RedisStore) Create(ctx context.Context, job *models.Job) error {
	if job.CreatedAt.IsZero() {
		job.CreatedAt = time.Now().UTC()
	}
	if job.Status == "" {
		job.Status = models.JobStatusPending
	}
	return s.write(ctx, job)
}

// Get implements Store.
func (s *RedisStore) Get(ctx context.Context, jobID string) (*models.Job, error) {
	raw, err := s.client.Get(ctx, jobKey(jobID)).Result()
	if err == redis.Nil {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading job %s: %w", jobID, err)
	}

	var job models.Job
	if err := json.Unmarshal([]byte(raw), &job); err != nil {
		return nil, fmt.Errorf("decoding job %s: %w", jobID, err)
	}
	return &job, nil
}

// MarkStarted implements Store.
func (s *RedisStore) MarkStarted(ctx context.Context, jobID string) error {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	job.Status = models.JobStatusInProgress
	job.StartedAt = &now
	return s.write(ctx, job)
}

// Complete implements Store.
func (s *RedisStore) Complete(ctx context.Context, jobID string, resp *models.Response) error {
	job, err := s.Get(ctx, jobID)
	if err != nil {
		return err
	}
	now := time.Now().UTC()
	job.Status = resp.Status
	job.Response = resp
	job.CompletedAt = &now
	return s.write(ctx, job)
}

func (s *RedisStore) write(ctx context.Context, job *models.Job) error {
	raw, err := json.Marshal(job)
	if err != nil {
		return fmt.Errorf("encoding job %s: %w", job.ID, err)
	}
	if err := s.client.Set(ctx, jobKey(job.ID), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing job %s: %w", job.ID, err)
	}
	return nil
}
