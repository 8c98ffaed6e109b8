// Package config loads omnisearch settings from YAML files and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/poiesic/omnisearch/index"
	"github.com/poiesic/omnisearch/navigation"
	"github.com/poiesic/omnisearch/pipeline"
	"github.com/poiesic/omnisearch/query"
	"github.com/poiesic/omnisearch/remote"
	"github.com/poiesic/omnisearch/search"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "OMNISEARCH_"

// Config is the complete configuration.
type Config struct {
	Search  SearchConfig  `yaml:"search"`
	Request RequestConfig `yaml:"request"`
	Remote  remote.Config `yaml:"remote"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// SearchConfig tunes query handling and ranking.
type SearchConfig struct {
	Debounce       time.Duration `yaml:"debounce"`
	HomeNodeID     string        `yaml:"homeNodeId"`
	FuzzyThreshold float64       `yaml:"fuzzyThreshold"`
	PoolSize       int           `yaml:"poolSize"`
}

// RequestConfig is the default request context for CLI searches.
type RequestConfig struct {
	CurrentPath           string `yaml:"currentPath"`
	Locale                string `yaml:"locale"`
	MerchantAuthenticated bool   `yaml:"merchantAuthenticated"`
}

// StorageConfig locates the tree database.
type StorageConfig struct {
	Path     string `yaml:"path"`
	TreeName string `yaml:"treeName"`
}

// LogConfig sets the log level.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Search: SearchConfig{
			Debounce:       query.DefaultDebounce,
			HomeNodeID:     navigation.DefaultHomeNodeID,
			FuzzyThreshold: index.DefaultThreshold,
			PoolSize:       pipeline.DefaultPoolSize,
		},
		Request: RequestConfig{
			CurrentPath: "/",
			Locale:      "en-us",
		},
		Remote: *remote.DefaultConfig(),
		Storage: StorageConfig{
			Path:     "omnisearch.db",
			TreeName: "default",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load reads the YAML file at path over the defaults, applies environment
// overrides and validates the result. An empty path skips the file.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}

	if err := cfg.applyEnvOverrides(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() error {
	if v := os.Getenv(EnvPrefix + "LOOKUP_ENDPOINT"); v != "" {
		c.Remote.LookupEndpoint = v
	}
	if v := os.Getenv(EnvPrefix + "FAQ_HOST"); v != "" {
		c.Remote.FAQHost = v
	}
	if v := os.Getenv(EnvPrefix + "AUTH_TOKEN"); v != "" {
		c.Remote.AuthToken = v
	}
	if v := os.Getenv(EnvPrefix + "DB_PATH"); v != "" {
		c.Storage.Path = v
	}
	if v := os.Getenv(EnvPrefix + "LOCALE"); v != "" {
		c.Request.Locale = v
	}
	if v := os.Getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv(EnvPrefix + "DEBOUNCE"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sDEBOUNCE: %w", EnvPrefix, err)
		}
		c.Search.Debounce = d
	}
	if v := os.Getenv(EnvPrefix + "FUZZY_THRESHOLD"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("%sFUZZY_THRESHOLD: %w", EnvPrefix, err)
		}
		c.Search.FuzzyThreshold = f
	}
	return nil
}

// Validate checks the configuration for values the engine cannot use.
func (c *Config) Validate() error {
	if c.Search.Debounce <= 0 {
		return errors.New("config: search.debounce must be positive")
	}
	if c.Search.FuzzyThreshold < 0 || c.Search.FuzzyThreshold > 1 {
		return errors.New("config: search.fuzzyThreshold must be within [0,1]")
	}
	if c.Search.PoolSize < 1 {
		return errors.New("config: search.poolSize must be at least 1")
	}
	if strings.TrimSpace(c.Search.HomeNodeID) == "" {
		return errors.New("config: search.homeNodeId cannot be empty")
	}
	if strings.TrimSpace(c.Storage.TreeName) == "" {
		return errors.New("config: storage.treeName cannot be empty")
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: unknown log level %q", c.Log.Level)
	}
	return c.Remote.Validate()
}

// RequestContext returns the configured default request context.
func (c *Config) RequestContext() search.RequestContext {
	return search.RequestContext{
		CurrentPath:           c.Request.CurrentPath,
		Locale:                c.Request.Locale,
		MerchantAuthenticated: c.Request.MerchantAuthenticated,
	}
}

// PipelineOptions translates the search settings into pipeline options.
func (c *Config) PipelineOptions() []pipeline.Option {
	return []pipeline.Option{
		pipeline.WithDebounce(c.Search.Debounce),
		pipeline.WithHomeNodeID(c.Search.HomeNodeID),
		pipeline.WithPoolSize(c.Search.PoolSize),
		pipeline.WithIndexOptions(index.WithThreshold(c.Search.FuzzyThreshold)),
		pipeline.WithRequestContext(c.RequestContext()),
	}
}
