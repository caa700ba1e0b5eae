// Package memory stores month snapshots in-memory for tests and development.
package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/emilroby/nsefi-harvester/internal/harvest"
)

// Store keeps snapshots in a map guarded by a mutex. Payloads are copied on
// both read and write so callers never share slices with the store.
type Store struct {
	mu    sync.RWMutex
	clock harvest.Clock
	snaps map[string]harvest.Snapshot
}

// New creates a new in-memory snapshot store.
func New(clock harvest.Clock) *Store {
	return &Store{
		clock: clock,
		snaps: make(map[string]harvest.Snapshot),
	}
}

func key(year, month int) string {
	return fmt.Sprintf("%04d_%02d", year, month)
}

// Read returns the stored snapshot, or harvest.ErrSnapshotNotFound.
func (s *Store) Read(_ context.Context, year, month int) (harvest.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap, ok := s.snaps[key(year, month)]
	if !ok {
		return harvest.Snapshot{}, harvest.ErrSnapshotNotFound
	}
	snap.Payload = copyPayload(snap.Payload)
	return snap, nil
}

// Write persists the payload with a fresh timestamp from the clock.
func (s *Store) Write(_ context.Context, year, month int, payload harvest.Payload) (harvest.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := harvest.Snapshot{
		Version:     harvest.SnapshotSchemaVersion,
		LastUpdated: s.clock.Now(),
		Payload:     copyPayload(payload),
	}
	s.snaps[key(year, month)] = snap

	snap.Payload = copyPayload(snap.Payload)
	return snap, nil
}

func copyPayload(p harvest.Payload) harvest.Payload {
	out := make(harvest.Payload, len(p))
	for category, items := range p {
		out[category] = append([]harvest.UpdateItem(nil), items...)
	}
	return out
}
