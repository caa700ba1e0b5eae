// Package local implements the snapshot store on the local filesystem, one
// JSON document per (year, month).
package local

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/emilroby/nsefi-harvester/internal/harvest"
)

// Config captures the parameters for the local snapshot store.
type Config struct {
	// Dir is the directory holding snapshot files.
	Dir string `mapstructure:"dir" yaml:"dir"`
	// Prefix names the snapshot files: <prefix>_YYYY_MM.json.
	Prefix string `mapstructure:"prefix" yaml:"prefix"`
}

// Store reads and writes month snapshots as JSON files. Writes go through a
// temp file and rename so a concurrent reader never observes a torn document.
type Store struct {
	dir    string
	prefix string
	clock  harvest.Clock
}

// New creates a local snapshot store, creating the directory if needed.
func New(cfg Config, clock harvest.Clock) (*Store, error) {
	if strings.TrimSpace(cfg.Dir) == "" {
		return nil, fmt.Errorf("snapshot directory is required")
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "updates"
	}

	info, err := os.Stat(cfg.Dir)
	switch {
	case os.IsNotExist(err):
		if mkErr := os.MkdirAll(cfg.Dir, 0o750); mkErr != nil {
			return nil, fmt.Errorf("create snapshot directory: %w", mkErr)
		}
	case err != nil:
		return nil, fmt.Errorf("stat snapshot directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("snapshot path is not a directory")
	}

	return &Store{dir: cfg.Dir, prefix: prefix, clock: clock}, nil
}

// Path returns the snapshot file path for a month.
func (s *Store) Path(year, month int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%s_%04d_%02d.json", s.prefix, year, month))
}

// Read loads the stored snapshot, or harvest.ErrSnapshotNotFound.
func (s *Store) Read(_ context.Context, year, month int) (harvest.Snapshot, error) {
	raw, err := os.ReadFile(s.Path(year, month))
	if os.IsNotExist(err) {
		return harvest.Snapshot{}, harvest.ErrSnapshotNotFound
	}
	if err != nil {
		return harvest.Snapshot{}, &harvest.StorageError{Op: "read", Err: err}
	}

	var snap harvest.Snapshot
	if err := json.Unmarshal(raw, &snap); err != nil {
		return harvest.Snapshot{}, &harvest.StorageError{Op: "read", Err: err}
	}
	if snap.Payload == nil {
		snap.Payload = harvest.Payload{}
	}
	return snap, nil
}

// Write persists the payload with a fresh IST timestamp, replacing any prior
// month content atomically.
func (s *Store) Write(_ context.Context, year, month int, payload harvest.Payload) (harvest.Snapshot, error) {
	if payload == nil {
		payload = harvest.Payload{}
	}
	snap := harvest.Snapshot{
		Version:     harvest.SnapshotSchemaVersion,
		LastUpdated: s.clock.Now(),
		Payload:     payload,
	}

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return harvest.Snapshot{}, &harvest.StorageError{Op: "write", Err: err}
	}

	tmp, err := os.CreateTemp(s.dir, s.prefix+"-*.tmp")
	if err != nil {
		return harvest.Snapshot{}, &harvest.StorageError{Op: "write", Err: err}
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return harvest.Snapshot{}, &harvest.StorageError{Op: "write", Err: err}
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return harvest.Snapshot{}, &harvest.StorageError{Op: "write", Err: err}
	}
	if err := os.Rename(tmpName, s.Path(year, month)); err != nil {
		_ = os.Remove(tmpName)
		return harvest.Snapshot{}, &harvest.StorageError{Op: "write", Err: err}
	}
	return snap, nil
}
