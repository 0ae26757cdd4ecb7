// File: cmd/helpers.go
package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptlens/promptlens-cli/api/schemas"
	"github.com/promptlens/promptlens-cli/internal/config"
	"github.com/promptlens/promptlens-cli/internal/evaluation"
	"github.com/promptlens/promptlens-cli/internal/llmclient"
	"github.com/promptlens/promptlens-cli/internal/observability"
)

// getConfigFromContext retrieves the config placed there by the root
// command's PersistentPreRunE.
func getConfigFromContext(ctx context.Context) (*config.Config, error) {
	cfg, ok := ctx.Value(configKey).(*config.Config)
	if !ok || cfg == nil {
		return nil, fmt.Errorf("%w: configuration not initialized", errConfiguration)
	}
	return cfg, nil
}

// readPrompt resolves the prompt text: a positional argument wins (a bare
// "-" means stdin), then the --file flag, then stdin. An empty prompt is a
// usage error everywhere.
func readPrompt(cmd *cobra.Command, args []string) (string, error) {
	if len(args) > 0 && args[0] != "" && args[0] != "-" {
		return args[0], nil
	}

	if path, _ := cmd.Flags().GetString("file"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("failed to read prompt file: %w", err)
		}
		return strings.TrimRight(string(raw), "\n"), nil
	}

	raw, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return "", fmt.Errorf("failed to read prompt from stdin: %w", err)
	}
	prompt := strings.TrimRight(string(raw), "\n")
	if prompt == "" {
		return "", fmt.Errorf("no prompt given: pass it as an argument, via --file, or on stdin")
	}
	return prompt, nil
}

// resolveJudge picks the judge identifier from the --judge flag or the
// configured default and validates it against the judge enumeration.
func resolveJudge(cmd *cobra.Command, cfg *config.Config) (schemas.JudgeModel, error) {
	name, _ := cmd.Flags().GetString("judge")
	if name == "" {
		name = cfg.Evaluation.JudgeModel
	}
	return schemas.ParseJudgeModel(name)
}

// evaluatorComponents bundles the provider client with the evaluator built
// on it so commands can release the client when done.
type evaluatorComponents struct {
	Client    schemas.ResponseClient
	Evaluator *evaluation.Evaluator
}

func (c *evaluatorComponents) Close() {
	if err := c.Client.Close(); err != nil {
		observability.GetLogger().Warn("Error closing provider client: " + err.Error())
	}
}

// newEvaluatorComponents wires the configured provider client into an
// evaluator.
func newEvaluatorComponents(ctx context.Context, cfg *config.Config) (*evaluatorComponents, error) {
	client, err := llmclient.NewClient(ctx, cfg.LLM, observability.GetLogger())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errConfiguration, err)
	}
	return &evaluatorComponents{
		Client:    client,
		Evaluator: evaluation.NewEvaluator(client, cfg.Evaluation.MaxOutputTokens),
	}, nil
}

// analysisRuntime carries everything an analysis command resolves before its
// single operation runs.
type analysisRuntime struct {
	Ctx        context.Context
	Prompt     string
	Goal       string
	Judge      schemas.JudgeModel
	Components *evaluatorComponents
}

// runAnalysis performs the shared setup for the judge-driven commands and
// prints whatever the operation produced.
func runAnalysis(cmd *cobra.Command, args []string, op func(*analysisRuntime) (any, error)) error {
	ctx := cmd.Context()
	cfg, err := getConfigFromContext(ctx)
	if err != nil {
		return err
	}
	prompt, err := readPrompt(cmd, args)
	if err != nil {
		return err
	}
	judge, err := resolveJudge(cmd, cfg)
	if err != nil {
		return err
	}
	goal, _ := cmd.Flags().GetString("goal")

	components, err := newEvaluatorComponents(ctx, cfg)
	if err != nil {
		return err
	}
	defer components.Close()

	result, err := op(&analysisRuntime{
		Ctx:        ctx,
		Prompt:     prompt,
		Goal:       goal,
		Judge:      judge,
		Components: components,
	})
	if err != nil {
		return err
	}
	return printJSON(cmd, result)
}

// printJSON pretty-prints a result to the command's stdout.
func printJSON(cmd *cobra.Command, data any) error {
	raw, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize result to JSON: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(raw))
	return nil
}
