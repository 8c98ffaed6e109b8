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

package remote

import (
	"errors"
	"strings"
	"time"
)

// Config holds configuration for the remote services.
type Config struct {
	// LookupEndpoint is the GraphQL endpoint used for direct object lookups.
	// Example: "https://api.example.com/graphql"
	LookupEndpoint string `yaml:"lookupEndpoint"`

	// FAQHost is the base URL of the help center.
	// Example: "https://example.zendesk.com"
	FAQHost string `yaml:"faqHost"`

	// AuthToken is sent as a bearer token to the lookup endpoint when set.
	AuthToken string `yaml:"-"`

	// Timeout bounds each HTTP request.
	// Default: 5s
	Timeout time.Duration `yaml:"timeout"`

	// MaxAttempts is the number of tries per request, including the first.
	// Default: 2
	MaxAttempts int `yaml:"maxAttempts"`

	// RetryDelay is the base delay for exponential backoff between attempts.
	// Default: 100ms
	RetryDelay time.Duration `yaml:"retryDelay"`

	// CacheSize is the number of responses kept per service by the cached provider.
	// Zero disables caching.
	// Default: 256
	CacheSize int `yaml:"cacheSize"`
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithLookupEndpoint sets the GraphQL lookup endpoint.
func WithLookupEndpoint(endpoint string) ConfigOption {
	return func(c *Config) {
		c.LookupEndpoint = endpoint
	}
}

// WithFAQHost sets the help center base URL.
func WithFAQHost(host string) ConfigOption {
	return func(c *Config) {
		c.FAQHost = host
	}
}

// WithAuthToken sets the bearer token for lookups.
func WithAuthToken(token string) ConfigOption {
	return func(c *Config) {
		c.AuthToken = token
	}
}

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.Timeout = d
	}
}

// WithMaxAttempts sets the number of attempts per request.
func WithMaxAttempts(n int) ConfigOption {
	return func(c *Config) {
		c.MaxAttempts = n
	}
}

// WithRetryDelay sets the base backoff delay.
func WithRetryDelay(d time.Duration) ConfigOption {
	return func(c *Config) {
		c.RetryDelay = d
	}
}

// WithCacheSize sets the per-service response cache size.
func WithCacheSize(n int) ConfigOption {
	return func(c *Config) {
		c.CacheSize = n
	}
}

// DefaultConfig returns a Config with defaults and no endpoints.
// Services without an endpoint are disabled.
func DefaultConfig() *Config {
	return &Config{
		Timeout:     5 * time.Second,
		MaxAttempts: 2,
		RetryDelay:  100 * time.Millisecond,
		CacheSize:   256,
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithLookupEndpoint("https://api.example.com/graphql"),
//	    WithFAQHost("https://example.zendesk.com"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize trims whitespace and trailing slashes from the endpoints.
func (c *Config) Normalize() {
	c.LookupEndpoint = strings.TrimSpace(c.LookupEndpoint)
	c.FAQHost = strings.TrimSuffix(strings.TrimSpace(c.FAQHost), "/")
}

// Validate checks that the configuration is usable.
// It normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	if c.LookupEndpoint != "" && !isHTTPURL(c.LookupEndpoint) {
		return errors.New("remote config: LookupEndpoint must be an http(s) URL")
	}
	if c.FAQHost != "" && !isHTTPURL(c.FAQHost) {
		return errors.New("remote config: FAQHost must be an http(s) URL")
	}
	if c.Timeout <= 0 {
		return errors.New("remote config: Timeout must be positive")
	}
	if c.MaxAttempts < 1 {
		return errors.New("remote config: MaxAttempts must be at least 1")
	}
	if c.RetryDelay < 0 {
		return errors.New("remote config: RetryDelay cannot be negative")
	}
	if c.CacheSize < 0 {
		return errors.New("remote config: CacheSize cannot be negative")
	}
	return nil
}

func isHTTPURL(s string) bool {
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}
