package ratelimit

import (
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// Settings is the externally configurable part of Config.
type Settings struct {
	Enabled         bool          `koanf:"enabled"`
	DefaultLimit    int           `koanf:"default_limit"`
	DefaultWindow   time.Duration `koanf:"default_window"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	Whitelist       []string      `koanf:"whitelist"`
	Blacklist       []string      `koanf:"blacklist"`
}

// DefaultSettings returns the settings used when nothing is configured.
func DefaultSettings() Settings {
	return Settings{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
	}
}

// NewConfig builds a limiter Config from settings and the default endpoint tiers.
func NewConfig(s Settings) *Config {
	if !s.Enabled {
		return &Config{Enabled: false}
	}
	return &Config{
		Enabled:         true,
		DefaultLimit:    s.DefaultLimit,
		DefaultWindow:   s.DefaultWindow,
		CleanupInterval: s.CleanupInterval,
		Whitelist:       ipSet(s.Whitelist),
		Blacklist:       ipSet(s.Blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: calls the generative model
		{Path: "/v1/api/recommendation", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},

		// Tier 2: credential checks
		{Path: "/v1/api/student/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},
		{Path: "/v1/api/student/register", Method: "POST", Limit: 10, Window: time.Minute, Burst: 3},

		// Tier 3: bulk writes
		{Path: "/v1/api/college/bulk", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},
		{Path: "/v1/api/scholarship/bulk", Method: "POST", Limit: 10, Window: time.Hour, Burst: 2},

		// Tier 4: other writes
		{Path: "/v1/api/", Method: "POST", Limit: 100, Window: time.Minute, Burst: 10},

		// Reads fall back to the default limit
	}
}

// ipSet turns a list of addresses into a lookup set, skipping blanks.
func ipSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		ip = strings.TrimSpace(ip)
		if ip != "" {
			result[ip] = true
		}
	}
	return result
}
