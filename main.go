// ./main.go
package main

import (
	"context"
	"os/signal"
	"syscall"

	_ "go.uber.org/automaxprocs"

	"github.com/promptlens/promptlens-cli/cmd"
)

// main is the entry point for the PromptLens CLI application.
func main() {
	// Commands observe Ctrl+C through the context rather than each
	// installing their own signal handler.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cmd.Execute(ctx)
}
