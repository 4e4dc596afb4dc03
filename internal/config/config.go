// Copyright (C) 2024 the quixsi maintainers
// See root-dir/LICENSE for more information

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the server configuration. Every field can also be set by the
// flag of the same name in cmd/server.
type Config struct {
	// ServiceName is the otel service name.
	ServiceName string `yaml:"service_name"`
	// Addr is the HTTP listen address.
	Addr string `yaml:"addr"`
	// DB selects the store backend: "mem://" or "kvdb://<path>".
	DB string `yaml:"db"`
	// OTLPGRPC is the collector address; empty disables tracing export.
	OTLPGRPC string `yaml:"otlp_grpc"`
	// LogLevel is parsed with slog.Level.UnmarshalText.
	LogLevel string `yaml:"log_level"`
	// StaticDir overrides the embedded static files.
	StaticDir string `yaml:"static_dir"`
	// Seed is an optional JSON fixture loaded on startup.
	Seed string `yaml:"seed"`
}

func DefaultConfig() *Config {
	return &Config{
		ServiceName: "event-planner",
		Addr:        "0.0.0.0:8080",
		DB:          "mem://",
		LogLevel:    "INFO",
	}
}

// Normalize fills zero values with defaults.
func (c *Config) Normalize() {
	def := DefaultConfig()
	if c.ServiceName == "" {
		c.ServiceName = def.ServiceName
	}
	if c.Addr == "" {
		c.Addr = def.Addr
	}
	if c.DB == "" {
		c.DB = def.DB
	}
	if c.LogLevel == "" {
		c.LogLevel = def.LogLevel
	}
}

// Level returns the parsed log level.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return slog.LevelInfo, fmt.Errorf("parse log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// Load reads a YAML config. An empty path yields the defaults; unlike the
// flags, a named file that does not exist is an error.
func Load(path string) (*Config, error) {
	if path == "" {
		return DefaultConfig(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg.Normalize()
	if _, err := cfg.Level(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ErrUnknownBackend is returned for a DB scheme other than mem or kvdb.
var ErrUnknownBackend = errors.New("unknown storage backend")

const (
	BackendMem  = "mem"
	BackendKVDB = "kvdb"
)

// Backend splits DB into its scheme and, for kvdb, the bolt file path.
func (c *Config) Backend() (scheme, path string, err error) {
	u, err := url.Parse(c.DB)
	if err != nil {
		return "", "", fmt.Errorf("parse db connection string: %w", err)
	}
	switch u.Scheme {
	case BackendMem:
		return BackendMem, "", nil
	case BackendKVDB:
		path = u.Host + u.Path
		if path == "" {
			return "", "", fmt.Errorf("%w: kvdb needs a path", ErrUnknownBackend)
		}
		return BackendKVDB, path, nil
	default:
		return "", "", fmt.Errorf("%w: %q", ErrUnknownBackend, u.Scheme)
	}
}
