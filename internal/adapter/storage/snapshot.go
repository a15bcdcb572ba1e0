// Package storage persists the service's two pieces of durable state: the
// latest successful snapshot and the visit counter.
package storage

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/anchorpoint/lakewatch/internal/domain"
)

// SnapshotStore persists the latest snapshot as a single JSON document that
// is replaced wholesale on every save. A mutex serializes file access so a
// reader can never observe a half-written document; the lock is held only for
// the duration of one read or one write, never across a fetch or parse.
type SnapshotStore struct {
	path   string
	mu     sync.Mutex
	logger *slog.Logger
}

// NewSnapshotStore creates a store backed by the JSON document at path.
func NewSnapshotStore(path string, logger *slog.Logger) *SnapshotStore {
	return &SnapshotStore{path: path, logger: logger}
}

// Load returns the persisted snapshot, or ok=false when none exists or the
// file cannot be read or decoded. Corruption degrades to a cache miss rather
// than an error.
func (s *SnapshotStore) Load() (domain.Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Warn("snapshot read failed", "path", s.path, "error", err)
		}
		return domain.Snapshot{}, false
	}

	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		s.logger.Warn("snapshot decode failed", "path", s.path, "error", err)
		return domain.Snapshot{}, false
	}
	return snap, true
}

// Save overwrites the persisted snapshot.
func (s *SnapshotStore) Save(snap domain.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create storage dir: %w", err)
		}
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}
