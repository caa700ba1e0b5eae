// Package gcs mirrors written snapshots to a Google Cloud Storage bucket so
// the dashboard can be hosted away from the harvesting box.
package gcs

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"cloud.google.com/go/storage"

	"github.com/emilroby/nsefi-harvester/internal/harvest"
)

// Config captures the parameters required to mirror to GCS.
type Config struct {
	Bucket string
	Prefix string
}

// Mirror uploads snapshot documents to a configured bucket.
type Mirror struct {
	client *storage.Client
	bucket string
	prefix string
}

// New creates a GCS-backed snapshot mirror.
func New(client *storage.Client, cfg Config) (*Mirror, error) {
	if client == nil {
		return nil, fmt.Errorf("storage client is required")
	}
	if strings.TrimSpace(cfg.Bucket) == "" {
		return nil, fmt.Errorf("bucket name is required")
	}
	prefix := strings.TrimSpace(cfg.Prefix)
	if prefix == "" {
		prefix = "updates"
	}
	return &Mirror{
		client: client,
		bucket: cfg.Bucket,
		prefix: prefix,
	}, nil
}

// Mirror uploads the snapshot as <prefix>_YYYY_MM.json.
func (m *Mirror) Mirror(ctx context.Context, year, month int, snap harvest.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}

	object := fmt.Sprintf("%s_%04d_%02d.json", m.prefix, year, month)
	writer := m.client.Bucket(m.bucket).Object(object).NewWriter(ctx)
	writer.ContentType = "application/json"
	if _, err := writer.Write(data); err != nil {
		closeErr := writer.Close()
		if closeErr != nil {
			return fmt.Errorf("write object: %w (close writer: %v)", err, closeErr)
		}
		return fmt.Errorf("write object: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("close writer: %w", err)
	}
	return nil
}
