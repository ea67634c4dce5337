package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Checker-Finance/env-fetcher/internal/app"
	"github.com/Checker-Finance/env-fetcher/pkg/config"
	"github.com/Checker-Finance/env-fetcher/pkg/logger"
	"github.com/Checker-Finance/env-fetcher/pkg/secrets"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Init(
		config.GetEnv("SERVICE_NAME", "env-fetcher"),
		config.GetEnv("ENV", "prod"),
		config.GetEnv("LOG_LEVEL", "info"),
	)
	logg := logger.S()

	if err := app.Run(ctx, logger.L(), secrets.NewAWSProvider); err != nil {
		if errors.Is(err, config.ErrMissingEnv) || errors.Is(err, config.ErrInvalidEnv) {
			logg.Fatalw("invalid configuration", "error", err)
		}
		// runtime failures are reported by the syncer
		logger.Sync()
		stop()
		os.Exit(1)
	}
	logger.Sync()
}
