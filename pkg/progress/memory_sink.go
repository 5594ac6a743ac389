package progress

import (
	"context"
	"sync"
	"time"

	"github.com/slidesmith/slidesmith/pkg/models"
)

// MemorySink is an in-process Sink for tests and single-node development
// runs. It applies the same monotonic percent rule as the Redis sink.
type MemorySink struct {
	mu    sync.RWMutex
	snaps map[string]models.ProgressSnapshot
}

// NewMemorySink creates an empty in-memory sink.
func NewMemorySink() *MemorySink {
	return &MemorySink{snaps: make(map[string]models.ProgressSnapshot)}
}

// Publish implements Sink.
func (s *MemorySink) Publish(_ context.Context, jobID string, snap models.ProgressSnapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.snaps[jobID]; ok && snap.Percent < prev.Percent {
		return nil
	}
	if snap.UpdatedAt.IsZero() {
		snap.UpdatedAt = time.Now().UTC()
	}
	s.snaps[jobID] = snap
	return nil
}

// Snapshot implements Sink.
func (s *MemorySink) Snapshot(_ context.Context, jobID string) (models.ProgressSnapshot, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[jobID]
	return snap, ok, nil
}
