package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"worktime_notifier/internal/infra/logger"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logger.Log.WithError(err).Error("Command failed")
		cancel()
		os.Exit(1)
	}
}
