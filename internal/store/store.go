// Package store persists workspace snapshots. Every backend stores the whole
// snapshot as one JSON document and overwrites it on each save.
package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/dyluth/oracles/internal/config"
	"github.com/dyluth/oracles/pkg/workspace"
)

// ErrNoSnapshot is returned by Load when nothing has been saved yet.
var ErrNoSnapshot = errors.New("no snapshot saved")

// CorruptError reports a stored snapshot that could not be decoded.
type CorruptError struct {
	Location string
	Err      error
}

func (e *CorruptError) Error() string {
	return fmt.Sprintf("corrupt snapshot at %s: %v", e.Location, e.Err)
}

func (e *CorruptError) Unwrap() error {
	return e.Err
}

// IsCorrupt returns true if err is (or wraps) a CorruptError.
func IsCorrupt(err error) bool {
	var ce *CorruptError
	return errors.As(err, &ce)
}

// Store loads and saves the workspace snapshot.
type Store interface {
	// Load returns ErrNoSnapshot when nothing was saved and a *CorruptError
	// when the saved data cannot be decoded.
	Load(ctx context.Context) (*workspace.Snapshot, error)
	Save(ctx context.Context, s *workspace.Snapshot) error
	// Quarantine moves the stored snapshot aside so the next Save cannot
	// overwrite it, and returns where it was moved to.
	Quarantine(ctx context.Context) (string, error)
	Driver() string
	Close() error
}

// Open creates the store selected by cfg.Store.Driver.
func Open(ctx context.Context, cfg *config.Config) (Store, error) {
	switch cfg.Store.Driver {
	case config.DriverFile:
		return NewFileStore(cfg.StorePath()), nil
	case config.DriverSQLite:
		return OpenSQLite(ctx, cfg.StorePath(), cfg.Store.Key)
	case config.DriverRedis:
		return OpenRedis(ctx, cfg.Store.RedisURL, cfg.Store.Key)
	default:
		return nil, fmt.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

// decode turns stored bytes into a snapshot, classifying failures as corruption.
func decode(location string, data []byte) (*workspace.Snapshot, error) {
	s, err := workspace.UnmarshalSnapshot(data)
	if err != nil {
		return nil, &CorruptError{Location: location, Err: err}
	}
	return s, nil
}
