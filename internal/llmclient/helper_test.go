package llmclient

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/promptlens/promptlens-cli/api/schemas"
	"github.com/promptlens/promptlens-cli/internal/config"
)

// setupTestLogger is a helper to create a zap logger for testing with an observer.
func setupTestLogger(t *testing.T) *zap.Logger {
	t.Helper()
	core, _ := observer.New(zap.DebugLevel)
	return zap.New(core)
}

// getValidOpenAIConfig returns a valid OpenAIConfig for testing purposes.
func getValidOpenAIConfig() config.OpenAIConfig {
	return config.OpenAIConfig{
		APIKey:     "test-api-key",
		Endpoint:   "",
		APITimeout: 5 * time.Second,
	}
}

// setupOpenAIClient rigs up an OpenAIClient pointed at a mock HTTP server.
// It returns the client, the mock server, and a log observer.
func setupOpenAIClient(t *testing.T, handler http.HandlerFunc) (*OpenAIClient, *httptest.Server, *observer.ObservedLogs) {
	t.Helper()
	if handler == nil {
		// Default handler for tests that don't require HTTP interactions
		handler = func(w http.ResponseWriter, r *http.Request) {
			t.Log("Warning: Unexpected HTTP request in test.")
			w.WriteHeader(http.StatusNotFound)
		}
	}
	server := httptest.NewServer(handler)

	loggerCore, observedLogs := observer.New(zap.InfoLevel)
	logger := zap.New(loggerCore)

	cfg := getValidOpenAIConfig()
	cfg.Endpoint = server.URL

	client, err := NewOpenAIClient(cfg, logger)
	require.NoError(t, err, "NewOpenAIClient initialization failed")

	// Ensure tests fail fast on unexpected hangs
	client.httpClient.Timeout = 5 * time.Second

	t.Cleanup(server.Close)
	return client, server, observedLogs
}

// createTestRequest provides a standard generation request structure.
func createTestRequest() schemas.GenerationRequest {
	return schemas.GenerationRequest{
		Model:           string(schemas.JudgeGPT4),
		Instruction:     "Summarize the following article.",
		MaxOutputTokens: schemas.DefaultMaxOutputTokens,
	}
}
