// File: cmd/goal.go
package cmd

import (
	"github.com/spf13/cobra"
)

// newGoalCmd creates the `goal` command.
func newGoalCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "goal [prompt]",
		Short: "Infer the likely goal behind a prompt",
		Long: `Asks the judge model what the prompt is trying to achieve. A reply that is
not well-formed JSON is returned as plain text rather than failing; some goal
always beats no goal.`,
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
			judge, err := resolveJudge(cmd, cfg)
			if err != nil {
				return err
			}

			components, err := newEvaluatorComponents(ctx, cfg)
			if err != nil {
				return err
			}
			defer components.Close()

			goal, err := components.Evaluator.InferGoal(ctx, prompt, judge)
			if err != nil {
				return err
			}
			return printJSON(cmd, map[string]string{"goal": goal})
		},
	}
}
