// File: internal/llmclient/factory.go
package llmclient

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/promptlens/promptlens-cli/api/schemas"
	"github.com/promptlens/promptlens-cli/internal/config"
)

// NewClient is a factory function that creates a ResponseClient based on the
// configuration. Exactly one provider is active per process.
func NewClient(ctx context.Context, cfg config.LLMConfig, logger *zap.Logger) (schemas.ResponseClient, error) {
	// Using constants defined in config package to avoid magic strings.
	switch cfg.Provider {
	case config.ProviderOpenAI:
		return NewOpenAIClient(cfg.OpenAI, logger)
	case config.ProviderGoogle:
		return NewGoogleClient(ctx, cfg.Google, logger)
	default:
		return nil, fmt.Errorf("unknown or unsupported LLM provider configured: '%s'. Supported: [%s, %s]",
			cfg.Provider, config.ProviderOpenAI, config.ProviderGoogle)
	}
}
