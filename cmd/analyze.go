// File: cmd/analyze.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/promptlens/promptlens-cli/api/schemas"
)

// The three analysis commands share one shape: resolve the prompt, the judge
// and the optional goal, run a single operation, print the typed result.
// When --goal is omitted the goal is inferred on the judge first.

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze [prompt]",
		Short: "Score a prompt's overall alignment and effectiveness",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, args, func(rt *analysisRuntime) (any, error) {
				return rt.Components.Evaluator.AnalyzePrompt(rt.Ctx, rt.Prompt, rt.Judge, rt.Goal)
			})
		},
	}
	cmd.Flags().StringP("goal", "g", "", "explicit goal; inferred from the prompt when omitted")
	return cmd
}

func newFragmentsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fragments [prompt]",
		Short: "Split a prompt into typed fragments scored for goal alignment",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, args, func(rt *analysisRuntime) (any, error) {
				fragments, err := rt.Components.Evaluator.AnalyzeFragments(rt.Ctx, rt.Prompt, rt.Judge, rt.Goal)
				if err != nil {
					return nil, err
				}
				return map[string][]schemas.Fragment{"fragments": fragments}, nil
			})
		},
	}
	cmd.Flags().StringP("goal", "g", "", "explicit goal; inferred from the prompt when omitted")
	return cmd
}

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs [prompt]",
		Short: "Generate diagnostic log entries about a prompt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, args, func(rt *analysisRuntime) (any, error) {
				logs, err := rt.Components.Evaluator.AnalyzeLogs(rt.Ctx, rt.Prompt, rt.Judge, rt.Goal)
				if err != nil {
					return nil, err
				}
				return map[string][]schemas.LogEntry{"logs": logs}, nil
			})
		},
	}
	cmd.Flags().StringP("goal", "g", "", "explicit goal; inferred from the prompt when omitted")
	return cmd
}
