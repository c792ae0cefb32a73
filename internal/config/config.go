// Package config loads runtime configuration from the environment.
package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config is the process configuration, filled from ONTHEGO_* environment
// variables (GOOGLE_API_KEY reads as ONTHEGO_GOOGLE_API_KEY and so on).
type Config struct {
	ListenAddr         string   `envconfig:"LISTEN_ADDR" default:":8080"`
	GoogleAPIKey       string   `envconfig:"GOOGLE_API_KEY"`
	OSRMBaseURL        string   `envconfig:"OSRM_BASE_URL"`
	DataDir            string   `envconfig:"DATA_DIR" default:"."`
	SearchRadiusMeters int      `envconfig:"SEARCH_RADIUS_METERS" default:"8047"`
	SearchLimit        int      `envconfig:"SEARCH_LIMIT" default:"20"`
	DemoMode           bool     `envconfig:"DEMO_MODE"`
	AllowedOrigins     []string `envconfig:"ALLOWED_ORIGINS"`
}

// Load reads the configuration. Missing GOOGLE_API_KEY is allowed: the place
// pipeline then runs on demo data and public routing only.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("onthego", &cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}
	if cfg.SearchRadiusMeters <= 0 {
		return nil, fmt.Errorf("SEARCH_RADIUS_METERS must be positive, got %d", cfg.SearchRadiusMeters)
	}
	if cfg.SearchLimit <= 0 {
		return nil, fmt.Errorf("SEARCH_LIMIT must be positive, got %d", cfg.SearchLimit)
	}
	return &cfg, nil
}
