// File: cmd/report.go
package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/promptlens/promptlens-cli/api/schemas"
	"github.com/promptlens/promptlens-cli/internal/evaluation"
)

// promptReport is the combined result of every analysis operation run over
// one prompt with one goal.
type promptReport struct {
	Prompt    string                  `json:"prompt"`
	Goal      string                  `json:"goal"`
	GoalWas   string                  `json:"goal_source"` // "provided" or "inferred"
	Analysis  *schemas.PromptAnalysis `json:"analysis"`
	Fragments []schemas.Fragment      `json:"fragments"`
	Logs      []schemas.LogEntry      `json:"logs"`
	TestCase  *schemas.TestCase       `json:"test_case"`
	Timestamp time.Time               `json:"timestamp"`
}

// newReportCmd creates the `report` command.
func newReportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report [prompt]",
		Short: "Run every analysis over a prompt and emit one combined report",
		Long: `Resolves the goal once, then runs prompt analysis, fragment analysis, log
analysis and test generation concurrently against the judge. The single
up-front resolution keeps all four operations working from the same goal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAnalysis(cmd, args, func(rt *analysisRuntime) (any, error) {
				return buildReport(rt)
			})
		},
	}
	cmd.Flags().StringP("goal", "g", "", "explicit goal; inferred from the prompt when omitted")
	return cmd
}

func buildReport(rt *analysisRuntime) (*promptReport, error) {
	eval := rt.Components.Evaluator

	goal, inferred, err := eval.ResolveGoal(rt.Ctx, rt.Prompt, rt.Judge, rt.Goal)
	if err != nil {
		return nil, err
	}

	report := &promptReport{
		Prompt:    rt.Prompt,
		Goal:      goal,
		GoalWas:   "provided",
		Timestamp: time.Now().UTC(),
	}
	if inferred {
		report.GoalWas = "inferred"
	}

	g, ctx := errgroup.WithContext(rt.Ctx)
	g.Go(func() error {
		analysis, err := runAnalyzeForReport(ctx, eval, rt, goal, inferred)
		if err != nil {
			return err
		}
		report.Analysis = analysis
		return nil
	})
	g.Go(func() error {
		fragments, err := eval.AnalyzeFragments(ctx, rt.Prompt, rt.Judge, goal)
		if err != nil {
			return err
		}
		report.Fragments = fragments
		return nil
	})
	g.Go(func() error {
		logs, err := eval.AnalyzeLogs(ctx, rt.Prompt, rt.Judge, goal)
		if err != nil {
			return err
		}
		report.Logs = logs
		return nil
	})
	g.Go(func() error {
		tc, err := eval.GenerateTest(ctx, rt.Prompt, rt.Judge, goal)
		if err != nil {
			return err
		}
		report.TestCase = tc
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return report, nil
}

// runAnalyzeForReport preserves the goal's provenance in the analysis record
// even though the report already resolved it: an inferred goal is passed as
// if it were still to be inferred would mean a second inference, so the
// resolved goal is passed explicitly and the provenance patched afterwards.
func runAnalyzeForReport(ctx context.Context, eval *evaluation.Evaluator, rt *analysisRuntime, goal string, inferred bool) (*schemas.PromptAnalysis, error) {
	analysis, err := eval.AnalyzePrompt(ctx, rt.Prompt, rt.Judge, goal)
	if err != nil {
		return nil, err
	}
	if inferred {
		analysis.InferredGoal = goal
		analysis.IsGoalInferred = true
	}
	return analysis, nil
}
