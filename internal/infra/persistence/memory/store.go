// Package memory provides an in-process snapshot store used by tests and
// ephemeral runs.
package memory

import (
	"context"
	"sync"

	"legislativelens/internal/infra/persistence"
	"legislativelens/pkg/domain"
)

var _ domain.SnapshotStore = (*Store)(nil)

// Store keeps the encoded bucket payloads in memory so a load goes through
// the same JSON codec as the durable stores.
type Store struct {
	mu      sync.RWMutex
	buckets map[string][]byte
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{buckets: make(map[string][]byte)}
}

// Save replaces every bucket with the snapshot's payloads.
func (s *Store) Save(ctx context.Context, snapshot domain.Snapshot) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	payloads, err := persistence.EncodeBuckets(snapshot)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.buckets = payloads
	return nil
}

// Load decodes the last saved snapshot. ok is false when nothing was saved.
func (s *Store) Load(ctx context.Context) (domain.Snapshot, bool, error) {
	if err := ctx.Err(); err != nil {
		return domain.Snapshot{}, false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.buckets) == 0 {
		return domain.Snapshot{}, false, nil
	}
	var snapshot domain.Snapshot
	for bucket, payload := range s.buckets {
		if err := persistence.DecodeBucket(&snapshot, bucket, payload); err != nil {
			return domain.Snapshot{}, false, err
		}
	}
	return snapshot, true, nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }
