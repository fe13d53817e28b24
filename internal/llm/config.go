// Package llm wraps the text-generation provider used to explain stream
// recommendations. Callers pick a model tier rather than a model name so the
// backing model can change through configuration alone.
package llm

import (
	"fmt"
	"time"
)

// ModelTier represents the capability level of a model
type ModelTier string

const (
	// TierLite is the cheapest, fastest model
	TierLite ModelTier = "lite"
	// TierStandard is used for recommendation explanations
	TierStandard ModelTier = "standard"
	// TierAdvanced is reserved for longer reasoning
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// ProviderGemini is the Google Gemini provider
const ProviderGemini Provider = "gemini"

// Config holds the model configuration for the application
type Config struct {
	Provider        Provider             `koanf:"provider"`
	Models          map[ModelTier]string `koanf:"models"`
	Temperature     float32              `koanf:"temperature"`
	MaxOutputTokens int32                `koanf:"max_output_tokens"`
	Timeout         time.Duration        `koanf:"timeout"`
}

// DefaultConfig returns the default Gemini configuration
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-2.5-pro",
		},
		Temperature:     0.4,
		MaxOutputTokens: 1024,
		Timeout:         30 * time.Second,
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok && model != "" {
		return model
	}
	// Fallback chain: standard, then lite
	if model, ok := c.Models[TierStandard]; ok && model != "" {
		return model
	}
	if model, ok := c.Models[TierLite]; ok && model != "" {
		return model
	}
	return ""
}

// WithModel returns a copy of c with model set for tier
func (c *Config) WithModel(tier ModelTier, model string) *Config {
	out := *c
	out.Models = make(map[ModelTier]string, len(c.Models)+1)
	for k, v := range c.Models {
		out.Models[k] = v
	}
	out.Models[tier] = model
	return &out
}

// Validate checks the configuration
func (c *Config) Validate() error {
	if c.Provider != ProviderGemini {
		return fmt.Errorf("unsupported LLM provider %q", c.Provider)
	}
	if c.GetModel(TierStandard) == "" {
		return fmt.Errorf("no LLM model configured")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LLM temperature must be between 0 and 2, got %v", c.Temperature)
	}
	if c.MaxOutputTokens < 0 {
		return fmt.Errorf("LLM max_output_tokens must not be negative")
	}
	return nil
}
