package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/dyluth/oracles/internal/config"
	"github.com/dyluth/oracles/pkg/workspace"

	_ "modernc.org/sqlite" // pure go sqlite driver
)

// SQLiteStore keeps snapshots in a single state table, one row per key.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	bucket string
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path, bucket string) (*SQLiteStore, error) {
	if path == "" {
		path = "workspace.db"
	}
	if bucket == "" {
		return nil, fmt.Errorf("store key cannot be empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil && !errors.Is(err, os.ErrExist) {
		return nil, fmt.Errorf("create dirs: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS state (
		bucket TEXT PRIMARY KEY,
		payload BLOB NOT NULL
	)`); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create state table: %w", err)
	}
	return &SQLiteStore{db: db, path: path, bucket: bucket}, nil
}

// Path returns the configured database path.
func (s *SQLiteStore) Path() string { return s.path }

func (s *SQLiteStore) Driver() string { return config.DriverSQLite }

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Load reads the row for the store's bucket.
func (s *SQLiteStore) Load(ctx context.Context) (*workspace.Snapshot, error) {
	var payload []byte
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM state WHERE bucket = ?`, s.bucket).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshot
	}
	if err != nil {
		return nil, fmt.Errorf("select state: %w", err)
	}
	return decode(s.path+"#"+s.bucket, payload)
}

// Save upserts the row for the store's bucket.
func (s *SQLiteStore) Save(ctx context.Context, snap *workspace.Snapshot) error {
	data, err := workspace.MarshalSnapshot(snap)
	if err != nil {
		return err
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO state(bucket,payload) VALUES(?,?) ON CONFLICT(bucket) DO UPDATE SET payload=excluded.payload`,
		s.bucket, data); err != nil {
		return fmt.Errorf("upsert %s: %w", s.bucket, err)
	}
	return nil
}

// Quarantine moves the store's row to the bucket "<key>.corrupt".
func (s *SQLiteStore) Quarantine(ctx context.Context) (string, error) {
	dst := s.bucket + ".corrupt"
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", fmt.Errorf("begin quarantine: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM state WHERE bucket = ?`, dst); err != nil {
		return "", fmt.Errorf("clear %s: %w", dst, err)
	}
	res, err := tx.ExecContext(ctx, `UPDATE state SET bucket = ? WHERE bucket = ?`, dst, s.bucket)
	if err != nil {
		return "", fmt.Errorf("move %s: %w", s.bucket, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return "", ErrNoSnapshot
	}
	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("commit quarantine: %w", err)
	}
	return s.path + "#" + dst, nil
}
