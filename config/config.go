// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.



package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/madde/core"
)

// ErrInvalidConfig is returned when a configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

var logLevels = []string{"debug", "info", "warn", "error"}

// Config holds the settings shared by the CLI and the MCP server.
type Config struct {
	// CacheDir is where the document cache lives on disk.
	// Empty keeps the cache in memory for the lifetime of the process.
	CacheDir string `yaml:"cache_dir"`

	// CacheEnabled turns caching of converted documents on or off.
	// Default: true
	CacheEnabled bool `yaml:"cache_enabled"`

	// CacheTTL is how long a cached document stays valid.
	// Default: 1h
	CacheTTL time.Duration `yaml:"cache_ttl"`

	// PoolSize is the number of workers used to load and search documents.
	// Default: runtime.NumCPU() / 2, with a minimum of 1
	PoolSize int `yaml:"pool_size"`

	// MaxResults caps the matches returned per document.
	// Default: 50
	MaxResults int `yaml:"max_results"`

	CaseSensitive         bool `yaml:"case_sensitive"`
	WholeDocumentFallback bool `yaml:"whole_document_fallback"`

	// LogLevel is one of debug, info, warn, error.
	// Default: info
	LogLevel string `yaml:"log_level"`
}

// Option is a functional option for configuring a Config.
type Option func(*Config)

// WithCacheDir sets the on-disk cache directory.
func WithCacheDir(dir string) Option {
	return func(c *Config) {
		c.CacheDir = dir
	}
}

// WithCacheEnabled turns the document cache on or off.
func WithCacheEnabled(enabled bool) Option {
	return func(c *Config) {
		c.CacheEnabled = enabled
	}
}

// WithCacheTTL sets the cache entry lifetime.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.CacheTTL = ttl
	}
}

// WithPoolSize sets the worker pool size.
func WithPoolSize(size int) Option {
	return func(c *Config) {
		c.PoolSize = size
	}
}

// WithMaxResults sets the per-document result limit.
func WithMaxResults(n int) Option {
	return func(c *Config) {
		c.MaxResults = n
	}
}

// WithCaseSensitive sets the default case policy for searches.
func WithCaseSensitive(caseSensitive bool) Option {
	return func(c *Config) {
		c.CaseSensitive = caseSensitive
	}
}

// WithWholeDocumentFallback makes unmarked documents searchable as one unit.
func WithWholeDocumentFallback(enabled bool) Option {
	return func(c *Config) {
		c.WholeDocumentFallback = enabled
	}
}

// WithLogLevel sets the log level.
func WithLogLevel(level string) Option {
	return func(c *Config) {
		c.LogLevel = level
	}
}

// DefaultPoolSize returns half the CPUs, at least 1.
func DefaultPoolSize() int {
	return max(1, runtime.NumCPU()/2)
}

// DefaultConfig returns a Config with an enabled in-memory cache.
func DefaultConfig() *Config {
	return &Config{
		CacheEnabled: true,
		CacheTTL:     time.Hour,
		PoolSize:     DefaultPoolSize(),
		MaxResults:   core.DefaultMaxResults,
		LogLevel:     "info",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithCacheDir("/var/cache/madde"),
//	    WithMaxResults(10),
//	)
func NewConfig(opts ...Option) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// LoadConfig reads a YAML file over the defaults, then normalizes and
// validates the result. Keys missing from the file keep their defaults;
// unknown keys are an error.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	return ParseConfig(data)
}

// ParseConfig decodes YAML over the defaults, then normalizes and validates.
func ParseConfig(data []byte) (*Config, error) {
	cfg := DefaultConfig()

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Normalize puts the configuration in canonical form: trimmed paths, a
// lower-case log level and a usable pool size.
func (c *Config) Normalize() {
	c.CacheDir = strings.TrimSpace(c.CacheDir)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	switch c.LogLevel {
	case "":
		c.LogLevel = "info"
	case "warning":
		c.LogLevel = "warn"
	}
	if c.PoolSize < 1 {
		c.PoolSize = DefaultPoolSize()
	}
}

// Validate checks that the configuration is valid.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.CacheTTL < 0 {
		return fmt.Errorf("%w: cache_ttl must not be negative", ErrInvalidConfig)
	}
	if err := core.ValidateMaxResults(c.MaxResults); err != nil {
		return fmt.Errorf("%w: max_results: %w", ErrInvalidConfig, err)
	}
	if !slices.Contains(logLevels, c.LogLevel) {
		return fmt.Errorf("%w: log_level must be one of %s", ErrInvalidConfig, strings.Join(logLevels, ", "))
	}
	return nil
}

// SlogLevel maps LogLevel onto slog. Unknown levels map to Info.
func (c *Config) SlogLevel() slog.Level {
	level, err := ParseLogLevel(c.LogLevel)
	if err != nil {
		return slog.LevelInfo
	}
	return level
}

// ParseLogLevel converts a level name to a slog.Level.
func ParseLogLevel(level string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}
