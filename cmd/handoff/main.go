package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/KOFI-GYIMAH/handoff-assistant/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Error("%v", err)
		stop()
		os.Exit(1)
	}
}
