package store

import (
	"context"
	"fmt"
	"strconv"

	"github.com/dyluth/oracles/internal/config"
	"github.com/dyluth/oracles/pkg/workspace"
	"github.com/redis/go-redis/v9"
)

// WorkspaceKey returns the Redis key for a workspace snapshot hash.
// Pattern: oracles:{key}:workspace
func WorkspaceKey(key string) string {
	return fmt.Sprintf("oracles:%s:workspace", key)
}

// CorruptKey returns the Redis key a corrupt snapshot hash is moved to.
// Pattern: oracles:{key}:workspace:corrupt
func CorruptKey(key string) string {
	return WorkspaceKey(key) + ":corrupt"
}

// snapshotToHash stores the snapshot JSON next to the fields worth reading
// without decoding it.
func snapshotToHash(s *workspace.Snapshot) (map[string]interface{}, error) {
	payload, err := workspace.MarshalSnapshot(s)
	if err != nil {
		return nil, err
	}
	return map[string]interface{}{
		"payload":     string(payload),
		"version":     s.Version,
		"saved_at_ms": s.SavedAtMs,
	}, nil
}

func hashToSnapshot(location string, hash map[string]string) (*workspace.Snapshot, error) {
	version, err := strconv.Atoi(hash["version"])
	if err != nil {
		return nil, &CorruptError{Location: location, Err: fmt.Errorf("invalid version field: %w", err)}
	}
	if version != workspace.SnapshotVersion {
		return nil, &CorruptError{Location: location, Err: fmt.Errorf("unsupported snapshot version: %d", version)}
	}
	return decode(location, []byte(hash["payload"]))
}

// RedisStore keeps the snapshot in a Redis hash.
type RedisStore struct {
	rdb *redis.Client
	key string
}

// OpenRedis connects to url and verifies the server is reachable.
func OpenRedis(ctx context.Context, url, key string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}
	s, err := NewRedisStore(opts, key)
	if err != nil {
		return nil, err
	}
	if err := s.rdb.Ping(ctx).Err(); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	return s, nil
}

// NewRedisStore creates a store for the snapshot named key.
func NewRedisStore(opts *redis.Options, key string) (*RedisStore, error) {
	if key == "" {
		return nil, fmt.Errorf("store key cannot be empty")
	}
	return &RedisStore{rdb: redis.NewClient(opts), key: key}, nil
}

func (s *RedisStore) Driver() string { return config.DriverRedis }

func (s *RedisStore) Close() error {
	return s.rdb.Close()
}

// Load reads the snapshot hash.
func (s *RedisStore) Load(ctx context.Context) (*workspace.Snapshot, error) {
	key := WorkspaceKey(s.key)
	hash, err := s.rdb.HGetAll(ctx, key).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read snapshot from Redis: %w", err)
	}

	// HGetAll returns an empty map for non-existent keys
	if len(hash) == 0 {
		return nil, ErrNoSnapshot
	}
	return hashToSnapshot(key, hash)
}

// Save overwrites the snapshot hash.
func (s *RedisStore) Save(ctx context.Context, snap *workspace.Snapshot) error {
	hash, err := snapshotToHash(snap)
	if err != nil {
		return err
	}
	if err := s.rdb.HSet(ctx, WorkspaceKey(s.key), hash).Err(); err != nil {
		return fmt.Errorf("failed to write snapshot to Redis: %w", err)
	}
	return nil
}

// Quarantine renames the snapshot hash to its corrupt key.
func (s *RedisStore) Quarantine(ctx context.Context) (string, error) {
	dst := CorruptKey(s.key)
	if err := s.rdb.Rename(ctx, WorkspaceKey(s.key), dst).Err(); err != nil {
		return "", fmt.Errorf("failed to move snapshot aside in Redis: %w", err)
	}
	return dst, nil
}
