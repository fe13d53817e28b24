package recommend

import (
	"context"

	"github.com/Meet-08/SIH2025-Prototype/internal/llm"
)

// LLMExplainer generates explanations with an llm.Client.
type LLMExplainer struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewLLMExplainer returns an Explainer backed by client at the standard tier.
func NewLLMExplainer(client llm.Client) *LLMExplainer {
	return &LLMExplainer{client: client, tier: llm.TierStandard}
}

// WithTier returns a copy using tier.
func (e *LLMExplainer) WithTier(tier llm.ModelTier) *LLMExplainer {
	return &LLMExplainer{client: e.client, tier: tier}
}

// Explain implements Explainer.
func (e *LLMExplainer) Explain(ctx context.Context, prompt string) (string, error) {
	return e.client.GenerateContent(ctx, prompt, e.tier)
}
