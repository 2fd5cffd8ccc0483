// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by online providers and the
// native computation backend client.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "skyquery/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds retries on HTTP 429 (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// SearchMode selects which search paths run for a single query.
type SearchMode string

const (
	ModeLocal  SearchMode = "local"
	ModeOnline SearchMode = "online"
	ModeHybrid SearchMode = "hybrid"
)

// SearchConfig holds settings for the search stage.
type SearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// Mode is the default search mode (default hybrid).
	Mode SearchMode `json:"mode" yaml:"mode" mapstructure:"mode"`

	// MaxResults caps the merged result list (default 50).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// Sources lists the enabled online providers by name
	// (sesame, simbad, mpc, vizier). Empty enables all.
	Sources []string `json:"sources" yaml:"sources" mapstructure:"sources"`

	// RadiusDeg is the cone radius for coordinate searches (default 0.1).
	RadiusDeg float64 `json:"radius_deg" yaml:"radius_deg" mapstructure:"radius_deg"`

	// DedupRadiusArcsec is the merge identity threshold (default 5).
	DedupRadiusArcsec float64 `json:"dedup_radius_arcsec" yaml:"dedup_radius_arcsec" mapstructure:"dedup_radius_arcsec"`

	// IncludeMinorObjects keeps asteroids and comets in provider results.
	IncludeMinorObjects bool `json:"include_minor_objects" yaml:"include_minor_objects" mapstructure:"include_minor_objects"`

	// BatchConcurrency is the worker count for multi-line searches (default 3).
	BatchConcurrency int `json:"batch_concurrency" yaml:"batch_concurrency" mapstructure:"batch_concurrency"`

	// ProviderTimeout bounds each provider call (default 10s).
	ProviderTimeout time.Duration `json:"provider_timeout" yaml:"provider_timeout" mapstructure:"provider_timeout"`

	// RequestsPerSecond limits calls to each provider (default 5).
	RequestsPerSecond float64 `json:"requests_per_second" yaml:"requests_per_second" mapstructure:"requests_per_second"`
}

// ComputeConfig holds settings for the astronomy computation facade.
type ComputeConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// NativeEndpoint is the base URL of the native computation backend.
	// Empty disables the native backend.
	NativeEndpoint string `json:"native_endpoint" yaml:"native_endpoint" mapstructure:"native_endpoint"`

	// NativeToken is sent as a bearer token to the native backend.
	NativeToken string `json:"native_token,omitempty" yaml:"native_token,omitempty" mapstructure:"native_token"`

	// CacheCapacity bounds the number of cached responses (default 512).
	CacheCapacity int `json:"cache_capacity" yaml:"cache_capacity" mapstructure:"cache_capacity"`
}

// CatalogConfig locates the local object catalog.
type CatalogConfig struct {
	// Path is the SQLite database file (default "catalog.db").
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// LogConfig controls logger output.
type LogConfig struct {
	JSON  bool   `json:"json" yaml:"json" mapstructure:"json"`
	Level string `json:"level" yaml:"level" mapstructure:"level"`
}

// Config groups all runtime configuration.
type Config struct {
	Search   SearchConfig  `json:"search" yaml:"search" mapstructure:"search"`
	Compute  ComputeConfig `json:"compute" yaml:"compute" mapstructure:"compute"`
	Catalog  CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	Log      LogConfig     `json:"log" yaml:"log" mapstructure:"log"`
	Observer Observer      `json:"observer" yaml:"observer" mapstructure:"observer"`
}
