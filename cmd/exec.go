// File: cmd/exec.go
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/promptlens/promptlens-cli/api/schemas"
)

// newExecCmd creates the `exec` command.
func newExecCmd() *cobra.Command {
	var targetName string

	cmd := &cobra.Command{
		Use:   "exec [prompt]",
		Short: "Execute a prompt against a target model",
		Long: `Sends the prompt to a target model and prints the reply verbatim.
Execution is not an evaluation: the reply is not parsed or judged.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			prompt, err := readPrompt(cmd, args)
			if err != nil {
				return err
			}

			name := targetName
			if name == "" {
				name = cfg.Evaluation.TargetModel
			}
			target, err := schemas.ParseTargetModel(name)
			if err != nil {
				return err
			}

			components, err := newEvaluatorComponents(ctx, cfg)
			if err != nil {
				return err
			}
			defer components.Close()

			output, err := components.Evaluator.ExecutePrompt(ctx, prompt, target)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&targetName, "target", "t", "", "target model identifier (overrides config)")
	return cmd
}
