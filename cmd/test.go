// File: cmd/test.go
package cmd

import (
	"github.com/spf13/cobra"
)

// newTestCmd creates the `test` command.
func newTestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "test [prompt]",
		Short: "Generate a test case for a prompt",
		Long: `Synthesizes one test case for the prompt: input values for every {name}
placeholder, the expected output, and a goal relevance score.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, args, func(rt *analysisRuntime) (any, error) {
				return rt.Components.Evaluator.GenerateTest(rt.Ctx, rt.Prompt, rt.Judge, rt.Goal)
			})
		},
	}
	cmd.Flags().StringP("goal", "g", "", "explicit goal; inferred from the prompt when omitted")
	return cmd
}
