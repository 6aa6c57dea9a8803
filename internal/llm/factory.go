package llm

import (
	"context"
	"fmt"

	"github.com/sozercan/symptom-ai/internal/config"
)

// NewProvider builds the provider selected by cfg.LLM.Provider.
func NewProvider(ctx context.Context, cfg *config.Config) (Provider, error) {
	switch cfg.LLM.Provider {
	case config.ProviderGemini:
		return NewGemini(ctx, cfg)
	case config.ProviderOpenAI, config.ProviderAzure:
		return NewOpenAI(cfg)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.LLM.Provider)
	}
}
