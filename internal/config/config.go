package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the working directory.
const FileName = "oracles.yml"

// Store drivers.
const (
	DriverFile   = "file"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
)

// Config represents the top-level oracles.yml configuration
type Config struct {
	Version   string          `yaml:"version"`
	Workspace WorkspaceConfig `yaml:"workspace"`
	Catalog   CatalogConfig   `yaml:"catalog"`
	Store     StoreConfig     `yaml:"store"`
	Random    RandomConfig    `yaml:"random"`

	// Dir is the directory relative paths resolve against. Not read from the file.
	Dir string `yaml:"-"`
}

// WorkspaceConfig names a fresh workspace and its default record
type WorkspaceConfig struct {
	Name          string `yaml:"name" env:"ORACLES_WORKSPACE_NAME"`
	DefaultRecord string `yaml:"default_record" env:"ORACLES_DEFAULT_RECORD"`
}

// CatalogConfig locates the source catalog and the oracle spec library
type CatalogConfig struct {
	Sources    string `yaml:"sources" env:"ORACLES_SOURCES"`
	OraclesDir string `yaml:"oracles_dir" env:"ORACLES_DIR"`
}

// StoreConfig selects where the workspace snapshot is persisted
type StoreConfig struct {
	Driver   string `yaml:"driver" env:"ORACLES_STORE_DRIVER"` // file, redis or sqlite
	Path     string `yaml:"path,omitempty" env:"ORACLES_STORE_PATH"`
	RedisURL string `yaml:"redis_url,omitempty" env:"ORACLES_REDIS_URL"`
	Key      string `yaml:"key,omitempty" env:"ORACLES_STORE_KEY"`
}

// RandomConfig controls the shared random source
type RandomConfig struct {
	Seed int64 `yaml:"seed" env:"ORACLES_SEED"` // 0 = seeded from the clock
}

// Default returns the configuration used when no oracles.yml exists.
func Default() *Config {
	c := &Config{Version: "1.0"}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Workspace.Name == "" {
		c.Workspace.Name = "Oracles"
	}
	if c.Workspace.DefaultRecord == "" {
		c.Workspace.DefaultRecord = "Values"
	}
	if c.Catalog.Sources == "" {
		c.Catalog.Sources = "sources.yml"
	}
	if c.Catalog.OraclesDir == "" {
		c.Catalog.OraclesDir = "oracles"
	}
	if c.Store.Driver == "" {
		c.Store.Driver = DriverFile
	}
	if c.Store.Key == "" {
		c.Store.Key = "default"
	}
	if c.Store.Path == "" {
		switch c.Store.Driver {
		case DriverFile:
			c.Store.Path = "workspace.json"
		case DriverSQLite:
			c.Store.Path = "workspace.db"
		}
	}
}

// Validate applies defaults and performs strict validation on the configuration
func (c *Config) Validate() error {
	// Required: version
	if c.Version != "1.0" {
		return fmt.Errorf("unsupported version: %s (expected: 1.0)", c.Version)
	}

	c.applyDefaults()

	switch c.Store.Driver {
	case DriverFile, DriverSQLite:
	case DriverRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store.redis_url is required for the redis driver")
		}
	default:
		return fmt.Errorf("invalid store.driver: %s (must be 'file', 'redis', or 'sqlite')", c.Store.Driver)
	}

	return nil
}

// Resolve returns path relative to the configuration directory unless it is absolute.
func (c *Config) Resolve(path string) string {
	if path == "" || filepath.IsAbs(path) || c.Dir == "" {
		return path
	}
	return filepath.Join(c.Dir, path)
}

// SourcesPath is the resolved path of the source catalog.
func (c *Config) SourcesPath() string {
	return c.Resolve(c.Catalog.Sources)
}

// OraclesDir is the resolved spec library directory.
func (c *Config) OraclesDir() string {
	return c.Resolve(c.Catalog.OraclesDir)
}

// StorePath is the resolved snapshot location for file based drivers.
func (c *Config) StorePath() string {
	return c.Resolve(c.Store.Path)
}

// Load reads and validates oracles.yml from the specified path, then applies
// ORACLES_* environment overrides
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}
	config.Dir = filepath.Dir(path)

	if err := finish(&config); err != nil {
		return nil, err
	}
	return &config, nil
}

// LoadOrDefault behaves like Load but returns the defaults, rooted at the
// file's directory, when the file does not exist.
func LoadOrDefault(path string) (*Config, error) {
	config, err := Load(path)
	if err == nil || !errors.Is(err, os.ErrNotExist) {
		return config, err
	}

	config = &Config{Version: "1.0", Dir: filepath.Dir(path)}
	if err := finish(config); err != nil {
		return nil, err
	}
	return config, nil
}

func finish(config *Config) error {
	if err := env.Parse(config); err != nil {
		return fmt.Errorf("failed to parse environment: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// Marshal renders the configuration as YAML.
func (c *Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}
