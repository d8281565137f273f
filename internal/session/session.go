// Package session ties the configuration, the oracle library and the
// persisted workspace together for one CLI invocation.
package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dyluth/oracles/internal/config"
	"github.com/dyluth/oracles/internal/store"
	"github.com/dyluth/oracles/pkg/oracle"
	"github.com/dyluth/oracles/pkg/workspace"
)

// Session is a loaded workspace plus everything needed to modify and save it.
type Session struct {
	Config    *config.Config
	Builder   *oracle.Builder
	Library   []*oracle.Oracle // oracles loaded from the spec directory, never drawn from
	Workspace *workspace.Workspace

	// LibraryErr and UpdateErr hold non-fatal problems found while loading.
	LibraryErr error
	UpdateErr  error
	// SnapshotErr is set when the saved workspace could not be restored. The
	// unreadable snapshot has been moved aside and a fresh workspace is used.
	SnapshotErr error

	store  store.Store
	rng    oracle.Randomizer
	logger *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithLogger sets the logger used for diagnostics. Defaults to a logger that
// discards everything.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) { s.logger = l }
}

// WithStore overrides the store selected by the configuration.
func WithStore(st store.Store) Option {
	return func(s *Session) { s.store = st }
}

// WithRandomizer overrides the configured random source.
func WithRandomizer(r oracle.Randomizer) Option {
	return func(s *Session) { s.rng = r }
}

// Open loads the source catalog, the spec library and the saved workspace.
// A missing snapshot gives a fresh workspace. A corrupt one is moved aside,
// reported in SnapshotErr and replaced by a fresh workspace.
func Open(ctx context.Context, cfg *config.Config, opts ...Option) (*Session, error) {
	s := &Session{Config: cfg}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = log.New(io.Discard, "", 0)
	}
	if s.rng == nil {
		s.rng = oracle.NewRand(cfg.Random.Seed)
	}

	catalog, err := oracle.LoadCatalog(cfg.SourcesPath())
	if err != nil {
		return nil, fmt.Errorf("failed to load source catalog: %w", err)
	}
	s.Builder = oracle.NewBuilder(catalog, s.rng)
	s.logger.Printf("[Session] Loaded %d sources from %s", len(catalog.Templates), catalog.Path)

	s.loadLibrary()

	if s.store == nil {
		st, err := store.Open(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s store: %w", cfg.Store.Driver, err)
		}
		s.store = st
	}

	ws, err := s.loadWorkspace(ctx)
	if err != nil {
		_ = s.store.Close()
		return nil, err
	}
	s.Workspace = ws

	if err := ws.Update(); err != nil {
		s.UpdateErr = err
		s.logger.Printf("[Session] WARN: workspace out of sync with spec files: %v", err)
	}
	return s, nil
}

func (s *Session) loadLibrary() {
	dir := s.Config.OraclesDir()
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		s.Library = nil
		s.LibraryErr = nil
		s.logger.Printf("[Session] No oracle directory at %s", dir)
		return
	}

	library, err := s.Builder.LoadDir(dir)
	s.Library = library
	s.LibraryErr = err
	if err != nil {
		s.logger.Printf("[Session] WARN: some oracle specs failed to load: %v", err)
	}
	s.logger.Printf("[Session] Loaded %d oracles from %s", len(library), dir)
}

func (s *Session) loadWorkspace(ctx context.Context) (*workspace.Workspace, error) {
	snap, err := s.store.Load(ctx)
	switch {
	case errors.Is(err, store.ErrNoSnapshot):
		s.logger.Printf("[Session] No saved workspace, starting fresh")
		return s.Fresh(), nil
	case store.IsCorrupt(err):
		return s.setAside(ctx, err)
	case err != nil:
		return nil, fmt.Errorf("failed to load workspace: %w", err)
	}

	ws, err := workspace.Restore(snap, s.Builder)
	if err != nil {
		return s.setAside(ctx, fmt.Errorf("saved workspace is inconsistent: %w", err))
	}
	s.logger.Printf("[Session] Restored workspace '%s' (%d oracles, %d records)", ws.Name, len(ws.Oracles()), len(ws.Records()))
	return ws, nil
}

// setAside quarantines the unreadable snapshot and starts a fresh workspace.
// If the snapshot cannot be moved, opening fails rather than risk overwriting it.
func (s *Session) setAside(ctx context.Context, cause error) (*workspace.Workspace, error) {
	s.logger.Printf("[Session] WARN: %v, starting fresh", cause)
	dst, err := s.store.Quarantine(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to preserve unreadable workspace (%v): %w", cause, err)
	}
	s.logger.Printf("[Session] Moved unreadable snapshot to %s", dst)
	s.SnapshotErr = fmt.Errorf("%w (moved to %s)", cause, dst)
	return s.Fresh(), nil
}

// Fresh returns an empty workspace named by the configuration.
func (s *Session) Fresh() *workspace.Workspace {
	return workspace.New(s.Config.Workspace.Name, s.Builder,
		workspace.WithDefaultRecord(s.Config.Workspace.DefaultRecord))
}

// Driver names the store backing the session.
func (s *Session) Driver() string {
	return s.store.Driver()
}

// Save persists the workspace.
func (s *Session) Save(ctx context.Context) error {
	if err := s.store.Save(ctx, s.Workspace.Snapshot()); err != nil {
		return fmt.Errorf("failed to save workspace: %w", err)
	}
	s.logger.Printf("[Session] Saved workspace to %s store", s.store.Driver())
	return nil
}

// Mutate applies fn to the workspace and saves the result. The workspace is
// saved even when fn fails, since fn may have drawn values before failing.
func (s *Session) Mutate(ctx context.Context, fn func(ws *workspace.Workspace) error) error {
	fnErr := fn(s.Workspace)
	if err := s.Save(ctx); err != nil {
		return errors.Join(fnErr, err)
	}
	return fnErr
}

// Reload re-reads the spec library and every spec referenced by the workspace,
// then saves. Problems are returned but the reloaded state is kept.
func (s *Session) Reload(ctx context.Context) error {
	s.loadLibrary()
	updateErr := s.Workspace.Update()
	s.UpdateErr = updateErr
	if err := s.Save(ctx); err != nil {
		return errors.Join(s.LibraryErr, updateErr, err)
	}
	return errors.Join(s.LibraryErr, updateErr)
}

// Close releases the store.
func (s *Session) Close() error {
	return s.store.Close()
}
