// File: internal/llmclient/google_client.go
package llmclient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/promptlens/promptlens-cli/api/schemas"
	"github.com/promptlens/promptlens-cli/internal/config"
)

// GoogleClient implements schemas.ResponseClient on top of the official
// genai SDK. The SDK handles transport-level retries itself, so unlike the
// OpenAI client there is no backoff loop here. Model identifiers carrying a
// provider prefix are rejected up front; everything else is passed through.
type GoogleClient struct {
	cli    *genai.Client
	logger *zap.Logger
}

// NewGoogleClient initializes the SDK-backed client.
func NewGoogleClient(ctx context.Context, cfg config.GoogleConfig, logger *zap.Logger) (*GoogleClient, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("Google API Key is required")
	}

	cli, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize genai client: %w", err)
	}

	return &GoogleClient{
		cli:    cli,
		logger: logger.Named("llm_client.google"),
	}, nil
}

// Respond sends the instruction as a single user turn and returns the
// concatenated text of the first candidate. Failures surface as a
// *schemas.ProviderError.
func (c *GoogleClient) Respond(ctx context.Context, req schemas.GenerationRequest) (string, error) {
	if strings.Contains(req.Model, "/") {
		return "", &schemas.ProviderError{
			Provider: "google",
			Err:      fmt.Errorf("model %q is not servable by the Gemini API", req.Model),
		}
	}

	startTime := time.Now()
	resp, err := c.cli.Models.GenerateContent(ctx, req.Model,
		[]*genai.Content{{Parts: []*genai.Part{{Text: req.Instruction}}}},
		&genai.GenerateContentConfig{MaxOutputTokens: int32(req.MaxOutputTokens)},
	)
	if err != nil {
		c.logger.Error("Gemini generation failed", zap.String("model", req.Model), zap.Error(err))
		return "", &schemas.ProviderError{Provider: "google", Err: err}
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &schemas.ProviderError{Provider: "google", Err: fmt.Errorf("gemini API returned no content")}
	}

	c.logger.Info("LLM generation complete (Gemini)",
		zap.String("model", req.Model),
		zap.Duration("duration", time.Since(startTime)),
	)

	return resp.Text(), nil
}

// Close is a no-op; the genai client holds no resources needing release.
func (c *GoogleClient) Close() error {
	return nil
}
