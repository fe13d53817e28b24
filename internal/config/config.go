// Package config loads service configuration from built-in defaults, an
// optional YAML file, and the environment, in increasing precedence.
package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// ConfigPathEnvVar names the environment variable holding the YAML file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// EnvPrefix is the prefix for namespaced environment overrides. A double
// underscore separates nesting levels: CAREER_SERVER__PORT -> server.port.
const EnvPrefix = "CAREER_"

// Config is the complete service configuration.
type Config struct {
	Server    ServerConfig    `koanf:"server"`
	Database  DatabaseConfig  `koanf:"database"`
	Auth      AuthConfig      `koanf:"auth"`
	LLM       LLMConfig       `koanf:"llm"`
	Breaker   BreakerConfig   `koanf:"breaker"`
	RateLimit RateLimitConfig `koanf:"rate_limit"`
	Logging   LoggingConfig   `koanf:"logging"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// DatabaseConfig configures the PostgreSQL pool.
type DatabaseConfig struct {
	URL         string `koanf:"url"`
	MaxConns    int32  `koanf:"max_conns"`
	AutoMigrate bool   `koanf:"auto_migrate"`
}

// AuthConfig holds the password hashing and token settings.
type AuthConfig struct {
	JWTSecret          string `koanf:"jwt_secret"`
	JWTExpirationHours int    `koanf:"jwt_expiration_hours"`
	BcryptCost         int    `koanf:"bcrypt_cost"`
	PasswordPepper     string `koanf:"password_pepper"`
}

// LLMConfig configures the explanation generator.
type LLMConfig struct {
	APIKey          string        `koanf:"api_key"`
	Model           string        `koanf:"model"` // standard-tier model
	Tier            string        `koanf:"tier"`  // tier used for explanations: lite, standard, advanced
	Temperature     float32       `koanf:"temperature"`
	MaxOutputTokens int32         `koanf:"max_output_tokens"`
	Timeout         time.Duration `koanf:"timeout"`
}

// BreakerConfig configures the circuit breaker around the explainer.
type BreakerConfig struct {
	MaxRequests      uint32        `koanf:"max_requests"`
	Interval         time.Duration `koanf:"interval"`
	Timeout          time.Duration `koanf:"timeout"`
	FailureThreshold uint32        `koanf:"failure_threshold"`
}

// RateLimitConfig configures per-client request limits. Endpoint tiers are
// fixed in the ratelimit package; these values tune the fallback tier.
type RateLimitConfig struct {
	Enabled         bool          `koanf:"enabled"`
	DefaultLimit    int           `koanf:"default_limit"`
	DefaultWindow   time.Duration `koanf:"default_window"`
	CleanupInterval time.Duration `koanf:"cleanup_interval"`
	Whitelist       []string      `koanf:"whitelist"`
	Blacklist       []string      `koanf:"blacklist"`
}

// LoggingConfig configures the zerolog logger.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8000,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    60 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			CORSOrigins:     []string{"*"},
		},
		Database: DatabaseConfig{
			MaxConns:    10,
			AutoMigrate: true,
		},
		Auth: AuthConfig{
			JWTExpirationHours: 24,
			BcryptCost:         12,
		},
		LLM: LLMConfig{
			Model:           "gemini-2.5-flash",
			Tier:            "standard",
			Temperature:     0.4,
			MaxOutputTokens: 1024,
			Timeout:         30 * time.Second,
		},
		Breaker: BreakerConfig{
			MaxRequests:      1,
			Interval:         time.Minute,
			Timeout:          30 * time.Second,
			FailureThreshold: 5,
		},
		RateLimit: RateLimitConfig{
			Enabled:         true,
			DefaultLimit:    1000,
			DefaultWindow:   time.Minute,
			CleanupInterval: 5 * time.Minute,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration. path names an optional YAML file; when
// empty, CONFIG_PATH is consulted. A missing explicit file is an error.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path == "" {
		path = os.Getenv(ConfigPathEnvVar)
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Server.CORSOrigins = splitList(cfg.Server.CORSOrigins)

	return cfg, nil
}

// conventionalEnv maps well-known unprefixed variables to config paths.
var conventionalEnv = map[string]string{
	"PORT":                 "server.port",
	"DATABASE_URL":         "database.url",
	"GEMINI_API_KEY":       "llm.api_key",
	"JWT_SECRET":           "auth.jwt_secret",
	"JWT_EXPIRATION_HOURS": "auth.jwt_expiration_hours",
	"BCRYPT_COST":          "auth.bcrypt_cost",
	"PASSWORD_PEPPER":      "auth.password_pepper",
	"RATE_LIMIT_ENABLED":   "rate_limit.enabled",
	"LOG_LEVEL":            "logging.level",
	"LOG_FORMAT":           "logging.format",
}

// envTransformFunc maps an environment variable name to a koanf path.
// Variables that map to nothing return "" and are ignored.
func envTransformFunc(key string) string {
	if path, ok := conventionalEnv[key]; ok {
		return path
	}
	if !strings.HasPrefix(key, EnvPrefix) {
		return ""
	}
	key = strings.TrimPrefix(key, EnvPrefix)
	return strings.ReplaceAll(strings.ToLower(key), "__", ".")
}

// splitList flattens comma-separated entries, as produced by env overrides.
func splitList(in []string) []string {
	var out []string
	for _, item := range in {
		for _, part := range strings.Split(item, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks required values and ranges for serving.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("config error: server.port must be 1-65535, got %d", c.Server.Port)
	}
	if c.Database.URL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required")
	}
	if c.Database.MaxConns < 0 {
		return fmt.Errorf("config error: database.max_conns must be non-negative")
	}
	if c.LLM.APIKey == "" {
		return fmt.Errorf("config error: GEMINI_API_KEY is required")
	}
	switch c.LLM.Tier {
	case "lite", "standard", "advanced":
	default:
		return fmt.Errorf("config error: llm.tier must be lite, standard or advanced, got %q", c.LLM.Tier)
	}
	if c.LLM.Temperature < 0 || c.LLM.Temperature > 2 {
		return fmt.Errorf("config error: llm.temperature must be between 0 and 2")
	}
	if c.RateLimit.Enabled && (c.RateLimit.DefaultLimit < 1 || c.RateLimit.DefaultWindow <= 0) {
		return fmt.Errorf("config error: rate_limit.default_limit and default_window must be positive")
	}
	if c.Breaker.FailureThreshold == 0 {
		return fmt.Errorf("config error: breaker.failure_threshold must be at least 1")
	}
	if _, err := c.JWT(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if _, err := c.Password(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// JWT derives the token configuration.
func (c *Config) JWT() (*JWTConfig, error) {
	return NewJWTConfig(c.Auth.JWTSecret, c.Auth.JWTExpirationHours)
}

// Password derives the password hashing configuration.
func (c *Config) Password() (*PasswordConfig, error) {
	return NewPasswordConfig(c.Auth.BcryptCost, c.Auth.PasswordPepper)
}
