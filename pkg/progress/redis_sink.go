package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/slidesmith/slidesmith/pkg/models"
)

const progressKeyPrefix = "slidesmith:progress:"

// Hash field names under the job's progress key.
const (
	fieldStage     = "current_stage"
	fieldPercent   = "progress"
	fieldUpdatedAt = "updated_at"
	fieldPreview   = "structure_preview"
	fieldError     = "error"
)

// RedisSink stores progress snapshots as Redis hashes with a sliding TTL.
// Terminal snapshots get the longer retention so observers arriving after
// completion still see the outcome.
type RedisSink struct {
	client      *redis.Client
	progressTTL time.Duration
	terminalTTL time.Duration
}

// NewRedisSink creates a sink over an existing client.
func NewRedisSink(client *redis.Client, progressTTL, terminalTTL time.Duration) *RedisSink {
	return &RedisSink{client: client, progressTTL: progressTTL, terminalTTL: terminalTTL}
}

func progressKey(jobID string) string { return progressKeyPrefix + jobID }

// Publish implements Sink. A snapshot whose percent is below the stored
// value is dropped silently to keep observers monotonic.
func (s *RedisSink) Publish(ctx context.Context, jobID string, snap models.ProgressSnapshot) error {
	key := progressKey(jobID)

	stored, err := s.client.HGet(ctx, key, fieldPercent).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("reading progress for %s: %w", jobID, err)
	}
	if err == nil {
		if prev, convErr := strconv.Atoi(stored); convErr == nil && snap.Percent < prev {
			slog.Debug("Dropping regressive progress update",
				"job_id", jobID, "stored", prev, "incoming", snap.Percent)
			return nil
		}
	}

	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = time.Now().UTC()
	}

	fields := map[string]any{
		fieldStage:     string(snap.Stage),
		fieldPercent:   snap.Percent,
		fieldUpdatedAt: snap.UpdatedAt.Format(time.RFC3339Nano),
	}
	if len(snap.StructurePreview) > 0 {
		preview, err := json.Marshal(snap.StructurePreview)
		if err != nil {
			return fmt.Errorf("encoding structure preview for %s: %w", jobID, err)
		}
		fields[fieldPreview] = string(preview)
	}
	if snap.Error != "" {
		fields[fieldError] = snap.Error
	}

	pipe := s.client.TxPipeline()
	pipe.HSet(ctx, key, fields)
	ttl := s.progressTTL
	if terminal(snap.Stage) {
		ttl = s.terminalTTL
	}
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publishing progress for %s: %w", jobID, err)
	}
	return nil
}

// Snapshot implements Sink.
func (s *RedisSink) Snapshot(ctx context.Context, jobID string) (models.ProgressSnapshot, bool, error) {
	values, err := s.client.HGetAll(ctx, progressKey(jobID)).Result()
	if err != nil {
		return models.ProgressSnapshot{}, false, fmt.Errorf("reading progress for %s: %w", jobID, err)
	}
	if len(values) == 0 {
		return models.ProgressSnapshot{}, false, nil
	}

	snap := models.ProgressSnapshot{
		Stage: models.Stage(values[fieldStage]),
		Error: values[fieldError],
	}
	if p, err := strconv.Atoi(values[fieldPercent]); err == nil {
		snap.Percent = p
	}
	if ts, err := time.Parse(time.RFC3339Nano, values[fieldUpdatedAt]); err == nil {
		snap.UpdatedAt = ts
	}
	if raw := values[fieldPreview]; raw != "" {
		if err := json.Unmarshal([]byte(raw), &snap.StructurePreview); err != nil {
			return models.ProgressSnapshot{}, false, fmt.Errorf("decoding structure preview for %s: %w", jobID, err)
		}
	}
	return snap, true, nil
}
