package harvest

import (
	"context"
	"time"
)

// Fetcher performs a single bounded-timeout request against a source
// endpoint and returns the raw document text.
type Fetcher interface {
	Fetch(ctx context.Context, src Source) (string, error)
}

// Store persists month-keyed snapshots.
type Store interface {
	// Read returns the stored snapshot, or ErrSnapshotNotFound.
	Read(ctx context.Context, year, month int) (Snapshot, error)
	// Write persists the full payload with a fresh IST timestamp,
	// atomically replacing any prior content for the month. The written
	// snapshot is returned.
	Write(ctx context.Context, year, month int, payload Payload) (Snapshot, error)
}

// Mirror pushes a written snapshot to a secondary location. Mirroring is
// best-effort; failures never abort a run.
type Mirror interface {
	Mirror(ctx context.Context, year, month int, snap Snapshot) error
}

// Clock returns the current time (useful for testing).
type Clock interface {
	Now() time.Time
}

// IDGenerator produces run IDs.
type IDGenerator interface {
	NewID() (string, error)
}
