package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/promptlens/promptlens-cli/api/schemas"
)

// executeCommand runs a fresh command tree with the given args and returns
// the combined output. A new tree per test keeps flag state isolated.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()

	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(""))
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return buf.String(), err
}

// createTempConfig helper
func createTempConfig(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp(t.TempDir(), "test-config-*.yaml")
	require.NoError(t, err)
	_, err = tmpfile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

// -- Test Cases: Utility Commands --

func TestModelsCommand(t *testing.T) {
	output, err := executeCommand(t, "models")

	require.NoError(t, err)
	assert.Contains(t, output, `"target_models"`)
	assert.Contains(t, output, `"judge_models"`)
	assert.Contains(t, output, string(schemas.JudgeGPT4))
	assert.Contains(t, output, string(schemas.TargetGroqLlama370B))
}

func TestVersionFlag(t *testing.T) {
	output, err := executeCommand(t, "--version")

	require.NoError(t, err)
	assert.Equal(t, Version, strings.TrimSpace(output))
}

// -- Test Cases: Identifier Validation (before any provider wiring) --

func TestExec_UnsupportedTarget(t *testing.T) {
	_, err := executeCommand(t, "exec", "--target", "llama-9000", "Write a haiku")

	require.Error(t, err)
	var modelErr *schemas.UnsupportedModelError
	require.True(t, errors.As(err, &modelErr))
	assert.Equal(t, schemas.RoleTarget, modelErr.Role)
	assert.Equal(t, "llama-9000", modelErr.Name)
}

func TestGoal_UnsupportedJudge(t *testing.T) {
	_, err := executeCommand(t, "goal", "--judge", "gpt-5-imaginary", "Write a haiku")

	require.Error(t, err)
	var modelErr *schemas.UnsupportedModelError
	require.True(t, errors.As(err, &modelErr))
	assert.Equal(t, schemas.RoleJudge, modelErr.Role)
}

// -- Test Cases: Configuration Loading --

func TestConfigFile_InvalidJudgeModel(t *testing.T) {
	configFile := createTempConfig(t, `
evaluation:
  judge_model: "not-a-model"
`)

	_, err := executeCommand(t, "--config", configFile, "models")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errConfiguration), "invalid config should classify as a configuration error")
	assert.Contains(t, err.Error(), "not-a-model")
}

func TestConfigFile_Valid(t *testing.T) {
	configFile := createTempConfig(t, `
evaluation:
  judge_model: "claude-3-opus-20240229"
  max_output_tokens: 500
logger:
  level: "error"
`)

	_, err := executeCommand(t, "--config", configFile, "models")
	assert.NoError(t, err)
}

func TestEnvOverride_InvalidProvider(t *testing.T) {
	t.Setenv("PROMPTLENS_LLM_PROVIDER", "carrier-pigeon")

	_, err := executeCommand(t, "models")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errConfiguration))
	assert.Contains(t, err.Error(), "carrier-pigeon")
}

// -- Test Cases: Exit Code Mapping --

func TestExitCodeFor(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"Configuration Error", errConfiguration, 2},
		{"Unsupported Model", &schemas.UnsupportedModelError{Name: "x", Role: schemas.RoleJudge}, 2},
		{"Provider Failure", &schemas.ProviderError{Provider: "openai", Err: errors.New("status 500")}, 3},
		{"Parse Failure", &schemas.AnalysisParseError{Operation: "log analysis", Err: errors.New("bad json")}, 4},
		{"Anything Else", errors.New("disk full"), 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, exitCodeFor(tt.err))
		})
	}
}
