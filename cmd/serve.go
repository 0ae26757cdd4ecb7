// File: cmd/serve.go
package cmd

import (
	"context"
	"errors"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/promptlens/promptlens-cli/internal/observability"
	"github.com/promptlens/promptlens-cli/internal/server"
)

// newServeCmd creates the `serve` command.
func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Expose the evaluation pipeline over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg, err := getConfigFromContext(ctx)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Server.Addr = addr
			}

			components, err := newEvaluatorComponents(ctx, cfg)
			if err != nil {
				return err
			}
			defer components.Close()

			srv := server.NewServer(cfg.Server, cfg.Evaluation, components.Evaluator, logger)

			serveErr := make(chan error, 1)
			go func() {
				serveErr <- srv.Start()
			}()

			select {
			case err := <-serveErr:
				if err != nil && !errors.Is(err, http.ErrServerClosed) {
					return err
				}
				return nil
			case <-ctx.Done():
			}

			logger.Info("Shutting down HTTP server")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := srv.Stop(shutdownCtx); err != nil {
				logger.Warn("HTTP server shutdown was not clean", zap.Error(err))
				return err
			}
			<-serveErr
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config, e.g. :8000)")
	return cmd
}
