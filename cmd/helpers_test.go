package cmd

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newPromptTestCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "probe"}
	cmd.Flags().StringP("file", "f", "", "")
	return cmd
}

// -- Test Cases: Prompt Resolution (readPrompt) --

func TestReadPrompt_Argument(t *testing.T) {
	cmd := newPromptTestCmd()

	prompt, err := readPrompt(cmd, []string{"Summarize {article}"})

	require.NoError(t, err)
	assert.Equal(t, "Summarize {article}", prompt)
}

func TestReadPrompt_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("Translate {text}\n"), 0o600))

	cmd := newPromptTestCmd()
	require.NoError(t, cmd.Flags().Set("file", path))

	prompt, err := readPrompt(cmd, nil)

	require.NoError(t, err)
	assert.Equal(t, "Translate {text}", prompt, "trailing newline should be stripped")
}

func TestReadPrompt_FileMissing(t *testing.T) {
	cmd := newPromptTestCmd()
	require.NoError(t, cmd.Flags().Set("file", filepath.Join(t.TempDir(), "absent.txt")))

	_, err := readPrompt(cmd, nil)

	assert.ErrorContains(t, err, "failed to read prompt file")
}

func TestReadPrompt_Stdin(t *testing.T) {
	cmd := newPromptTestCmd()
	cmd.SetIn(strings.NewReader("Write a haiku\n"))

	prompt, err := readPrompt(cmd, nil)

	require.NoError(t, err)
	assert.Equal(t, "Write a haiku", prompt)
}

// A bare "-" argument reads from stdin, the usual Unix convention.
func TestReadPrompt_DashReadsStdin(t *testing.T) {
	cmd := newPromptTestCmd()
	cmd.SetIn(strings.NewReader("Write a haiku\n"))

	prompt, err := readPrompt(cmd, []string{"-"})

	require.NoError(t, err)
	assert.Equal(t, "Write a haiku", prompt)
}

// The argument wins over a file when both are given.
func TestReadPrompt_ArgumentBeatsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompt.txt")
	require.NoError(t, os.WriteFile(path, []byte("from file"), 0o600))

	cmd := newPromptTestCmd()
	require.NoError(t, cmd.Flags().Set("file", path))

	prompt, err := readPrompt(cmd, []string{"from arg"})

	require.NoError(t, err)
	assert.Equal(t, "from arg", prompt)
}

func TestReadPrompt_EmptyStdin(t *testing.T) {
	cmd := newPromptTestCmd()
	cmd.SetIn(strings.NewReader(""))

	_, err := readPrompt(cmd, nil)

	assert.ErrorContains(t, err, "no prompt given")
}
