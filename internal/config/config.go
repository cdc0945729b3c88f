// Package config defines the pipeline configuration and how it is loaded.
//
// Conventions:
// - New returns a Config filled with defaults.
// - Load layers defaults, an optional YAML file and environment variables.
// - Errors are reported through this package's sentinel kinds.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/okian/monetizer/internal/domain/model"
	"github.com/okian/monetizer/pkg/logger"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// OpportunityThreshold is the trend score a segment must exceed.
	OpportunityThreshold float64 `koanf:"opportunity_threshold"`

	// RipeMinLength and RipeKeyword define the segment ripeness heuristic.
	RipeMinLength int    `koanf:"ripe_min_length"`
	RipeKeyword   string `koanf:"ripe_keyword"`

	// TrackingInterval and TrackingRetention drive the performance tracker.
	TrackingInterval  time.Duration `koanf:"tracking_interval"`
	TrackingRetention int           `koanf:"tracking_retention"`

	// DefaultTactics are suggested for segments missing from Strategies.
	DefaultTactics []string `koanf:"default_tactics"`

	// Strategies maps a segment to its catalog of tactics.
	Strategies map[string][]string `koanf:"strategies"`

	// MarketData seeds the static data collector.
	MarketData []model.Observation `koanf:"market_data"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:             "info",
		OpportunityThreshold: 0.7,
		RipeMinLength:        5,
		RipeKeyword:          "tech",
		TrackingInterval:     5 * time.Second,
		TrackingRetention:    720,
		DefaultTactics:       []string{"advertising", "affiliate partnerships"},
		Strategies: map[string][]string{
			"techfinance": {"subscription plan", "transaction fees"},
			"healthtech":  {"freemium upsell", "subscription tiers"},
			"edtech":      {"course marketplace", "subscription access"},
		},
		MarketData: []model.Observation{
			{Segment: "techfinance", Score: 0.9},
			{Segment: "ab", Score: 0.9},
			{Segment: "retail", Score: 0.6},
			{Segment: "healthtech", Score: 0.75},
			{Segment: "edtech", Score: 0.65},
		},
	}
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	switch {
	case c.OpportunityThreshold <= 0:
		return fmt.Errorf("%w: opportunity_threshold must be positive", ErrInvalidConfig)
	case c.RipeMinLength < 0:
		return fmt.Errorf("%w: ripe_min_length must not be negative", ErrInvalidConfig)
	case strings.TrimSpace(c.RipeKeyword) == "":
		return fmt.Errorf("%w: ripe_keyword must not be empty", ErrInvalidConfig)
	case c.TrackingInterval <= 0:
		return fmt.Errorf("%w: tracking_interval must be positive", ErrInvalidConfig)
	case c.TrackingRetention <= 0:
		return fmt.Errorf("%w: tracking_retention must be positive", ErrInvalidConfig)
	}
	for i, o := range c.MarketData {
		if strings.TrimSpace(o.Segment) == "" {
			return fmt.Errorf("%w: market_data[%d] has no segment", ErrInvalidConfig, i)
		}
	}
	return nil
}
