// Package config loads and validates the application configuration.
// Defaults are always valid; a YAML file overlays them, and validation
// runs after the overlay so a bad file never half-configures the
// process.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pathwise/pathwise/internal/engine"
	"github.com/pathwise/pathwise/internal/logging"
)

// Configuration defaults. Durations are configured in whole seconds,
// following the cache package's TTL convention.
const (
	DefaultListenAddr                = ":8080"
	DefaultWorkers                   = 4
	DefaultCalculationTimeoutSeconds = 120
	DefaultCacheTTLSeconds           = 3600
	DefaultCacheMaxEntries           = 256
	DefaultStorePath                 = "pathwise.db"

	// MaxWorkers bounds the calculation pool; the per-year work units
	// are small, so anything larger just burns scheduler time.
	MaxWorkers = 64
)

// Configuration validation errors.
var (
	ErrInvalidWorkers     = errors.New("workers must be between 1 and 64")
	ErrInvalidCacheSize   = errors.New("cache max_entries must be positive")
	ErrInvalidCacheTTL    = errors.New("cache ttl must be positive")
	ErrInvalidTimeout     = errors.New("calculation timeout must be positive")
	ErrMissingListenAddr  = errors.New("server listen address cannot be empty")
	ErrMissingStorePath   = errors.New("store path cannot be empty")
	ErrInvalidCurveBounds = errors.New("adoption curve caps and floors must lie in (0,1]")
)

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	// ListenAddr is the host:port the API binds to.
	ListenAddr string `yaml:"listen_addr"`
}

// EngineConfig configures the calculation engine.
type EngineConfig struct {
	// Workers bounds the concurrent year calculations.
	Workers int `yaml:"workers"`

	// CalculationTimeoutSeconds bounds one whole scenario calculation.
	CalculationTimeoutSeconds int `yaml:"calculation_timeout_seconds"`
}

// CalculationTimeout returns the timeout as a duration.
func (e EngineConfig) CalculationTimeout() time.Duration {
	return time.Duration(e.CalculationTimeoutSeconds) * time.Second
}

// CacheConfig configures the calculation-result cache.
type CacheConfig struct {
	// MaxEntries bounds the entry count before eviction.
	MaxEntries int `yaml:"max_entries"`

	// TTLSeconds is the entry lifetime in seconds.
	TTLSeconds int `yaml:"ttl_seconds"`
}

// TTL returns the entry lifetime as a duration.
func (c CacheConfig) TTL() time.Duration {
	return time.Duration(c.TTLSeconds) * time.Second
}

// StoreConfig configures scenario persistence.
type StoreConfig struct {
	// Path is the SQLite database file path.
	Path string `yaml:"path"`
}

// Config is the full application configuration.
type Config struct {
	Server   ServerConfig         `yaml:"server"`
	Engine   EngineConfig         `yaml:"engine"`
	Cache    CacheConfig          `yaml:"cache"`
	Store    StoreConfig          `yaml:"store"`
	Adoption engine.AdoptionCurve `yaml:"adoption_curve"`
	Logging  logging.Config       `yaml:"logging"`
}

// New returns the default configuration.
func New() *Config {
	return &Config{
		Server: ServerConfig{ListenAddr: DefaultListenAddr},
		Engine: EngineConfig{
			Workers:                   DefaultWorkers,
			CalculationTimeoutSeconds: DefaultCalculationTimeoutSeconds,
		},
		Cache: CacheConfig{
			MaxEntries: DefaultCacheMaxEntries,
			TTLSeconds: DefaultCacheTTLSeconds,
		},
		Store:    StoreConfig{Path: DefaultStorePath},
		Adoption: engine.DefaultAdoptionCurve(),
		Logging:  logging.Config{Level: "info", Format: "console"},
	}
}

// Load returns the defaults overlaid with the YAML file at path. An
// empty path returns the defaults unchanged; a missing file is an
// error, since an explicitly named config must exist.
func Load(path string) (*Config, error) {
	cfg := New()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config file %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the configuration for values that cannot work.
func (c *Config) Validate() error {
	if c.Server.ListenAddr == "" {
		return ErrMissingListenAddr
	}
	if c.Engine.Workers < 1 || c.Engine.Workers > MaxWorkers {
		return fmt.Errorf("%w: got %d", ErrInvalidWorkers, c.Engine.Workers)
	}
	if c.Engine.CalculationTimeoutSeconds <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidTimeout, c.Engine.CalculationTimeoutSeconds)
	}
	if c.Cache.MaxEntries <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCacheSize, c.Cache.MaxEntries)
	}
	if c.Cache.TTLSeconds <= 0 {
		return fmt.Errorf("%w: got %d", ErrInvalidCacheTTL, c.Cache.TTLSeconds)
	}
	if c.Store.Path == "" {
		return ErrMissingStorePath
	}
	for _, bound := range []float64{
		c.Adoption.ElectricCap, c.Adoption.HybridCap, c.Adoption.FossilFloor,
	} {
		if bound <= 0 || bound > 1 {
			return fmt.Errorf("%w: got %g", ErrInvalidCurveBounds, bound)
		}
	}
	return nil
}
