package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
workspace:
  name: "Campaign"
  default_record: "Draws"
catalog:
  sources: "catalog/sources.yml"
  oracles_dir: "/srv/oracles"
store:
  driver: "sqlite"
random:
  seed: 42
`)

	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Campaign", config.Workspace.Name)
	assert.Equal(t, "Draws", config.Workspace.DefaultRecord)
	assert.Equal(t, DriverSQLite, config.Store.Driver)
	assert.Equal(t, "workspace.db", config.Store.Path)
	assert.Equal(t, int64(42), config.Random.Seed)

	dir := filepath.Dir(path)
	assert.Equal(t, filepath.Join(dir, "catalog", "sources.yml"), config.SourcesPath())
	assert.Equal(t, "/srv/oracles", config.OraclesDir())
	assert.Equal(t, filepath.Join(dir, "workspace.db"), config.StorePath())
}

func TestLoad_Defaults(t *testing.T) {
	config, err := Load(writeConfig(t, `version: "1.0"`))
	require.NoError(t, err)
	assert.Equal(t, "Oracles", config.Workspace.Name)
	assert.Equal(t, "Values", config.Workspace.DefaultRecord)
	assert.Equal(t, "sources.yml", config.Catalog.Sources)
	assert.Equal(t, "oracles", config.Catalog.OraclesDir)
	assert.Equal(t, DriverFile, config.Store.Driver)
	assert.Equal(t, "workspace.json", config.Store.Path)
	assert.Equal(t, "default", config.Store.Key)
}

func TestLoad_FileNotFound(t *testing.T) {
	config, err := Load("/nonexistent/oracles.yml")
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config")
}

func TestLoad_InvalidYAML(t *testing.T) {
	path := writeConfig(t, `version: "1.0"
store:
  - this is invalid
    yaml syntax
`)
	config, err := Load(path)
	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestLoadOrDefault(t *testing.T) {
	t.Run("missing file yields defaults", func(t *testing.T) {
		dir := t.TempDir()
		config, err := LoadOrDefault(filepath.Join(dir, FileName))
		require.NoError(t, err)
		assert.Equal(t, dir, config.Dir)
		assert.Equal(t, filepath.Join(dir, "workspace.json"), config.StorePath())
	})

	t.Run("invalid file is still an error", func(t *testing.T) {
		_, err := LoadOrDefault(writeConfig(t, `version: "2.0"`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported version: 2.0")
	})
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("ORACLES_STORE_DRIVER", "redis")
	t.Setenv("ORACLES_REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("ORACLES_SEED", "7")
	t.Setenv("ORACLES_WORKSPACE_NAME", "From Env")

	config, err := Load(writeConfig(t, `version: "1.0"
workspace:
  name: "From File"
store:
  driver: "file"
`))
	require.NoError(t, err)
	assert.Equal(t, "From Env", config.Workspace.Name)
	assert.Equal(t, DriverRedis, config.Store.Driver)
	assert.Equal(t, "redis://localhost:6379/0", config.Store.RedisURL)
	assert.Equal(t, int64(7), config.Random.Seed)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr string
	}{
		{
			name:    "unsupported version",
			config:  Config{Version: "2.0"},
			wantErr: "unsupported version: 2.0",
		},
		{
			name:    "unknown driver",
			config:  Config{Version: "1.0", Store: StoreConfig{Driver: "postgres"}},
			wantErr: "invalid store.driver: postgres",
		},
		{
			name:    "redis without url",
			config:  Config{Version: "1.0", Store: StoreConfig{Driver: DriverRedis}},
			wantErr: "store.redis_url is required",
		},
		{
			name:   "redis with url",
			config: Config{Version: "1.0", Store: StoreConfig{Driver: DriverRedis, RedisURL: "redis://localhost:6379"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDefault_RoundTrip(t *testing.T) {
	data, err := Default().Marshal()
	require.NoError(t, err)

	path := writeConfig(t, string(data))
	config, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Store, config.Store)
	assert.Equal(t, Default().Workspace, config.Workspace)
}
