// -- cmd/root.go --
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/promptlens/promptlens-cli/api/schemas"
	"github.com/promptlens/promptlens-cli/internal/config"
	"github.com/promptlens/promptlens-cli/internal/observability"
)

// errConfiguration marks failures that happen before any provider call:
// unreadable config, invalid values, unknown model identifiers.
var errConfiguration = errors.New("configuration error")

type contextKey string

const configKey contextKey = "config"

// newRootCmd builds the command tree. A fresh tree per invocation keeps
// tests isolated from each other's flag state.
func newRootCmd() *cobra.Command {
	var cfgFile string

	rootCmd := &cobra.Command{
		Use:     "promptlens",
		Short:   "PromptLens evaluates and stress-tests LLM prompts.",
		Version: Version,
		// Errors are reported once by Execute, not echoed with usage text.
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Provider keys commonly live in a local .env during development.
			_ = godotenv.Load()

			v, err := initializeConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("%w: %v", errConfiguration, err)
			}

			var cfg config.Config
			if err := v.Unmarshal(&cfg); err != nil {
				// Initialize a fallback logger if config unmarshal fails
				observability.InitializeLogger(config.LoggerConfig{Level: "info", Format: "console", ServiceName: "promptlens"})
				return fmt.Errorf("%w: failed to unmarshal config: %v", errConfiguration, err)
			}
			if err := cfg.Validate(); err != nil {
				observability.InitializeLogger(cfg.Logger)
				return fmt.Errorf("%w: %v", errConfiguration, err)
			}

			observability.InitializeLogger(cfg.Logger)
			observability.GetLogger().Debug("Starting PromptLens", zap.String("version", Version))

			// Store the validated config in the command's context for subcommands.
			cmd.SetContext(context.WithValue(cmd.Context(), configKey, &cfg))
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().String("judge", "", "judge model identifier (overrides config)")
	rootCmd.PersistentFlags().StringP("file", "f", "", "read the prompt from a file instead of the argument")
	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)

	rootCmd.AddCommand(
		newGoalCmd(),
		newFragmentsCmd(),
		newLogsCmd(),
		newAnalyzeCmd(),
		newTestCmd(),
		newExecCmd(),
		newReportCmd(),
		newModelsCmd(),
		newServeCmd(),
	)

	return rootCmd
}

// Execute runs the CLI and maps the error taxonomy onto exit codes:
// 2 for configuration and identifier problems, 3 for provider failures,
// 4 for judge replies that could not be parsed, 1 for anything else.
func Execute(ctx context.Context) {
	err := newRootCmd().ExecuteContext(ctx)
	defer observability.Sync()
	if err == nil {
		return
	}

	observability.GetLogger().Error("Command execution failed", zap.Error(err))
	fmt.Fprintln(os.Stderr, "Error:", err)

	observability.Sync()
	osExit(exitCodeFor(err))
}

// exitCodeFor classifies an error by its place in the pipeline's taxonomy.
func exitCodeFor(err error) int {
	var modelErr *schemas.UnsupportedModelError
	var provErr *schemas.ProviderError
	var parseErr *schemas.AnalysisParseError

	switch {
	case errors.Is(err, errConfiguration), errors.As(err, &modelErr):
		return 2
	case errors.As(err, &provErr):
		return 3
	case errors.As(err, &parseErr):
		return 4
	}
	return 1
}

// osExit is swapped out in tests.
var osExit = os.Exit

// initializeConfig reads in config file and ENV variables if set.
func initializeConfig(cfgFile string) (*viper.Viper, error) {
	v := viper.New()
	config.SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	v.SetEnvPrefix("PROMPTLENS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; proceed with defaults/env vars
	}
	return v, nil
}
