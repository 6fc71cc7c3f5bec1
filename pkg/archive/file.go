package archive

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileStore is a file-based archive for CLI usage.
// Records are stored as JSON files in a local directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
}

// NewFileStore creates a file-based archive rooted at baseDir.
// If baseDir is empty, defaults to ~/.config/sccmap/archive/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "sccmap", "archive")
	}
	if err := os.MkdirAll(baseDir, 0755); err != nil {
		return nil, fmt.Errorf("create archive dir: %w", err)
	}
	return &FileStore{baseDir: baseDir}, nil
}

func (s *FileStore) recordPath(key string) string {
	return filepath.Join(s.baseDir, key+".json")
}

// Load retrieves a record by key. Returns nil, nil if absent; corrupt
// records surface as errors rather than being silently dropped.
func (s *FileStore) Load(ctx context.Context, key string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.recordPath(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read archive record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse archive record: %w", err)
	}
	return &rec, nil
}

// Save stores a record, replacing any existing one with the same key.
func (s *FileStore) Save(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal archive record: %w", err)
	}

	if err := os.WriteFile(s.recordPath(rec.Key), data, 0644); err != nil {
		return fmt.Errorf("write archive record: %w", err)
	}
	return nil
}

// Delete removes a record. Deleting an absent record is not an error.
func (s *FileStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.recordPath(key)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove archive record: %w", err)
	}
	return nil
}

// Close does nothing for the file store.
func (s *FileStore) Close() error { return nil }

// Path returns the base directory for archive records.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)
