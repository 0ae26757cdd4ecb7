// File: cmd/models.go
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/promptlens/promptlens-cli/api/schemas"
)

// newModelsCmd creates the `models` command.
func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List the supported target and judge model identifiers",
		RunE: func(cmd *cobra.Command, args []string) error {
			return printJSON(cmd, map[string][]string{
				"target_models": schemas.TargetModels(),
				"judge_models":  schemas.JudgeModels(),
			})
		},
	}
}
