package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/oracles/internal/config"
	"github.com/dyluth/oracles/pkg/workspace"
)

// FileStore keeps the snapshot in a single JSON file.
type FileStore struct {
	path string
}

// NewFileStore returns a store writing to path. Nothing is touched until Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file location.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Driver() string { return config.DriverFile }

func (s *FileStore) Close() error { return nil }

// Load reads the snapshot file.
func (s *FileStore) Load(ctx context.Context) (*workspace.Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot: %w", err)
	}
	return decode(s.path, data)
}

// Save writes the snapshot to a temporary file and renames it into place, so
// a failed write never truncates the previous snapshot.
func (s *FileStore) Save(ctx context.Context, snap *workspace.Snapshot) error {
	data, err := workspace.MarshalSnapshot(snap)
	if err != nil {
		return err
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".workspace-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("failed to replace snapshot: %w", err)
	}
	return nil
}

// Quarantine renames the snapshot file to <path>.corrupt, replacing any
// earlier quarantined copy.
func (s *FileStore) Quarantine(ctx context.Context) (string, error) {
	dst := s.path + ".corrupt"
	if err := os.Rename(s.path, dst); err != nil {
		return "", fmt.Errorf("failed to move snapshot aside: %w", err)
	}
	return dst, nil
}
