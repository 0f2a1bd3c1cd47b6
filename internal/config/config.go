// Package config loads runtime settings from LENS_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"legislativelens/internal/blob"
	"legislativelens/internal/congress"
	"legislativelens/internal/core"
)

// Config is the full process configuration.
type Config struct {
	Fixtures FixtureConfig
	Snapshot SnapshotConfig
	Congress CongressConfig
	Log      LogConfig
	HTTP     HTTPConfig
}

// FixtureConfig selects the blob store that holds the fixture collections.
type FixtureConfig struct {
	Driver string `env:"LENS_FIXTURE_DRIVER" envDefault:"fs"`
	FSRoot string `env:"LENS_FIXTURE_ROOT" envDefault:"./fixtures"`
	Prefix string `env:"LENS_FIXTURE_PREFIX"`

	S3Bucket       string `env:"LENS_S3_BUCKET"`
	S3Region       string `env:"LENS_S3_REGION" envDefault:"us-east-1"`
	S3Endpoint     string `env:"LENS_S3_ENDPOINT"`
	S3UsePathStyle bool   `env:"LENS_S3_USE_PATH_STYLE"`
	S3AccessKey    string `env:"LENS_S3_ACCESS_KEY_ID"`
	S3SecretKey    string `env:"LENS_S3_SECRET_ACCESS_KEY"`
}

// SnapshotConfig selects the snapshot store.
type SnapshotConfig struct {
	Driver      string `env:"LENS_SNAPSHOT_DRIVER" envDefault:"sqlite"`
	SQLitePath  string `env:"LENS_SQLITE_PATH" envDefault:"legislativelens.db"`
	PostgresDSN string `env:"LENS_POSTGRES_DSN"`
}

// CongressConfig configures the remote API client.
type CongressConfig struct {
	BaseURL    string        `env:"LENS_CONGRESS_BASE_URL" envDefault:"https://api.congress.gov/v3"`
	APIKey     string        `env:"LENS_CONGRESS_API_KEY"`
	// Retries counts retries after the first attempt; 0 disables retrying.
	Retries    int           `env:"LENS_CONGRESS_RETRIES" envDefault:"3"`
	RetryDelay time.Duration `env:"LENS_CONGRESS_RETRY_DELAY" envDefault:"500ms"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level       string `env:"LENS_LOG_LEVEL" envDefault:"info"`
	Development bool   `env:"LENS_LOG_DEVELOPMENT"`
}

// HTTPConfig configures the read-only API server.
type HTTPConfig struct {
	Addr              string        `env:"LENS_HTTP_ADDR" envDefault:":8080"`
	ReadHeaderTimeout time.Duration `env:"LENS_HTTP_READ_HEADER_TIMEOUT" envDefault:"5s"`
	ShutdownTimeout   time.Duration `env:"LENS_HTTP_SHUTDOWN_TIMEOUT" envDefault:"10s"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// LoadFrom parses an explicit variable map, ignoring the process environment.
func LoadFrom(vars map[string]string) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Blob returns the fixture blob store configuration.
func (c FixtureConfig) Blob() blob.Config {
	return blob.Config{
		Driver: blob.Driver(strings.ToLower(c.Driver)),
		FSRoot: c.FSRoot,
		S3: blob.S3Config{
			Bucket:          c.S3Bucket,
			Region:          c.S3Region,
			Endpoint:        c.S3Endpoint,
			PathStyle:       c.S3UsePathStyle,
			AccessKeyID:     c.S3AccessKey,
			SecretAccessKey: c.S3SecretKey,
		},
	}
}

// Storage returns the snapshot store configuration.
func (c SnapshotConfig) Storage() core.StorageConfig {
	return core.StorageConfig{
		Driver:      core.StorageDriver(strings.ToLower(c.Driver)),
		SQLitePath:  c.SQLitePath,
		PostgresDSN: c.PostgresDSN,
	}
}

// Client returns the remote API client configuration. The env default already
// supplies the retry count, so a configured 0 means no retries.
func (c CongressConfig) Client() congress.Config {
	retries := c.Retries
	if retries <= 0 {
		retries = congress.NoRetries
	}
	return congress.Config{
		BaseURL:    c.BaseURL,
		APIKey:     c.APIKey,
		Retries:    retries,
		RetryDelay: c.RetryDelay,
	}
}

// NewLogger builds a zap logger at the configured level.
func (c LogConfig) NewLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	zc := zap.NewProductionConfig()
	if c.Development {
		zc = zap.NewDevelopmentConfig()
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}
