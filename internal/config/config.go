// Package config loads service configuration from YAML with
// environment-variable overrides.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults for fields left unset by the file and environment.
const (
	DefaultAddr            = ":8080"
	DefaultDatabase        = "sheetstore.db"
	DefaultPoolSize        = 20
	DefaultChunkSize       = 5000
	DefaultMaxBodyBytes    = 100 << 20 // 100 MB request ceiling
	DefaultShutdownTimeout = Duration(10 * time.Second)
)

// Duration wraps time.Duration so YAML can carry values like "30s".
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(s)
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", s, err)
	}
	*d = Duration(parsed)
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Config holds the service configuration.
type Config struct {
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`

	// Database is the path to the SQLite database file.
	Database string `yaml:"database"`

	// PoolSize bounds the shared connection pool.
	PoolSize int `yaml:"pool_size"`

	// ChunkSize is the number of rows per chunked bulk insert.
	ChunkSize int `yaml:"chunk_size"`

	// MaxBodyBytes caps inbound request bodies. Larger submissions must
	// be split by the caller.
	MaxBodyBytes int64 `yaml:"max_body_bytes"`

	// ShutdownTimeout bounds graceful drain of in-flight requests.
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`

	// Debug enables debug-level logging.
	Debug bool `yaml:"debug"`

	// HumanLogs switches from JSON to console log output.
	HumanLogs bool `yaml:"human_logs"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Addr:            DefaultAddr,
		Database:        DefaultDatabase,
		PoolSize:        DefaultPoolSize,
		ChunkSize:       DefaultChunkSize,
		MaxBodyBytes:    DefaultMaxBodyBytes,
		ShutdownTimeout: DefaultShutdownTimeout,
	}
}

// Load reads YAML from path, overlays it on the defaults, then applies
// environment overrides. An empty path skips the file entirely.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the configuration for values the service cannot run with.
func (c Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("addr is required")
	}
	if c.Database == "" {
		return fmt.Errorf("database path is required")
	}
	if c.PoolSize <= 0 {
		return fmt.Errorf("pool_size must be positive, got %d", c.PoolSize)
	}
	if c.ChunkSize <= 0 {
		return fmt.Errorf("chunk_size must be positive, got %d", c.ChunkSize)
	}
	if c.MaxBodyBytes <= 0 {
		return fmt.Errorf("max_body_bytes must be positive, got %d", c.MaxBodyBytes)
	}
	return nil
}

// applyEnv overrides fields from SHEETSTORE_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("SHEETSTORE_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("SHEETSTORE_DB"); v != "" {
		cfg.Database = v
	}
	if v := os.Getenv("SHEETSTORE_POOL_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.PoolSize = n
		}
	}
	if v := os.Getenv("SHEETSTORE_CHUNK_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.ChunkSize = n
		}
	}
	if v := os.Getenv("SHEETSTORE_DEBUG"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Debug = b
		}
	}
}
