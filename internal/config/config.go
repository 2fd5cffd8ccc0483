// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config loads skyquery runtime configuration from viper: the
// skyquery.yaml config file, SKYQUERY_* environment variables and any flags
// bound by the CLI.
package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/pdiddy/skyquery/internal/errors"
	"github.com/pdiddy/skyquery/pkg/types"
)

// EnvPrefix is the prefix for environment overrides (SKYQUERY_SEARCH_MODE).
const EnvPrefix = "SKYQUERY"

// BindEnv enables environment overrides on the global viper instance.
// Nested keys use underscores: search.max_results reads
// SKYQUERY_SEARCH_MAX_RESULTS.
func BindEnv() {
	viper.SetEnvPrefix(EnvPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
}

// SetDefaults registers built-in defaults for every configuration key.
func SetDefaults() {
	viper.SetDefault("search.mode", string(types.ModeHybrid))
	viper.SetDefault("search.max_results", 50)
	viper.SetDefault("search.sources", []string{})
	viper.SetDefault("search.radius_deg", 0.1)
	viper.SetDefault("search.dedup_radius_arcsec", 5.0)
	viper.SetDefault("search.include_minor_objects", false)
	viper.SetDefault("search.batch_concurrency", 3)
	viper.SetDefault("search.provider_timeout", 10*time.Second)
	viper.SetDefault("search.requests_per_second", 5.0)
	viper.SetDefault("search.timeout", 30*time.Second)
	viper.SetDefault("search.user_agent", "skyquery/0.1")
	viper.SetDefault("search.max_retries", 3)

	viper.SetDefault("compute.native_endpoint", "")
	viper.SetDefault("compute.native_token", "")
	viper.SetDefault("compute.cache_capacity", 512)
	viper.SetDefault("compute.timeout", 5*time.Second)
	viper.SetDefault("compute.user_agent", "skyquery/0.1")
	viper.SetDefault("compute.max_retries", 1)

	viper.SetDefault("catalog.path", "catalog.db")

	viper.SetDefault("log.json", false)
	viper.SetDefault("log.level", "info")

	viper.SetDefault("observer.latitude", 0.0)
	viper.SetDefault("observer.longitude", 0.0)
	viper.SetDefault("observer.elevation", 0.0)
}

// Load applies defaults and unmarshals the merged configuration.
func Load() (types.Config, error) {
	SetDefaults()

	var cfg types.Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return types.Config{}, errors.Wrap(err, "decoding configuration")
	}
	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

// Validate rejects values the pipeline cannot run with.
func Validate(cfg types.Config) error {
	switch cfg.Search.Mode {
	case types.ModeLocal, types.ModeOnline, types.ModeHybrid:
	default:
		return errors.WithHint(
			errors.Mark(errors.Newf("unknown search mode %q", cfg.Search.Mode), errors.ErrInvalidInput),
			"use one of local, online, hybrid")
	}
	if cfg.Search.BatchConcurrency < 1 {
		return errors.Mark(errors.Newf("batch_concurrency must be at least 1, got %d", cfg.Search.BatchConcurrency), errors.ErrInvalidInput)
	}
	if cfg.Compute.CacheCapacity < 0 {
		return errors.Mark(errors.Newf("cache_capacity must not be negative, got %d", cfg.Compute.CacheCapacity), errors.ErrInvalidInput)
	}
	if cfg.Observer.Latitude < -90 || cfg.Observer.Latitude > 90 {
		return errors.Mark(errors.Newf("observer latitude %v out of range", cfg.Observer.Latitude), errors.ErrInvalidInput)
	}
	return nil
}
